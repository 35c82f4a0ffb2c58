package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/user"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
)

type Dependencies struct {
	JWT     *JWTManager
	Users   *UserRepo
	Refresh *RefreshRepo
}

type Handler struct {
	deps Dependencies
}

func NewHandler(d Dependencies) *Handler {
	return &Handler{deps: d}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type profileReq struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	pwHash, err := HashPassword(req.Password)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "password hash failed")
		return
	}

	u, err := h.deps.Users.Create(c.Request.Context(), req.Email, req.Name, pwHash, "user")
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			httpx.Error(c, http.StatusConflict, "email already exists")
			return
		}
		httpx.DBError(c, err, "registration failed")
		return
	}

	access, accessExp, _ := h.deps.JWT.SignAccess(u.ID, u.Role)
	refresh, refreshExp, _ := h.deps.JWT.SignRefresh(u.ID, u.Role)
	_ = h.deps.Refresh.Store(c.Request.Context(), u.ID, HashToken(refresh), refreshExp)

	c.JSON(http.StatusCreated, gin.H{
		"user":          sanitizeUser(u),
		"access_token":  access,
		"access_exp":    accessExp,
		"refresh_token": refresh,
		"refresh_exp":   refreshExp,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	u, err := h.deps.Users.ByEmail(c.Request.Context(), req.Email)
	if err != nil || !u.IsActive {
		httpx.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		httpx.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	access, accessExp, _ := h.deps.JWT.SignAccess(u.ID, u.Role)
	refresh, refreshExp, _ := h.deps.JWT.SignRefresh(u.ID, u.Role)
	_ = h.deps.Refresh.Store(c.Request.Context(), u.ID, HashToken(refresh), refreshExp)

	c.JSON(http.StatusOK, gin.H{
		"user":          sanitizeUser(u),
		"access_token":  access,
		"access_exp":    accessExp,
		"refresh_token": refresh,
		"refresh_exp":   refreshExp,
	})
}

// Rotate refresh token
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	claims, err := h.deps.JWT.ParseRefresh(req.RefreshToken)
	if err != nil {
		httpx.Error(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	ok, err := h.deps.Refresh.IsValid(c.Request.Context(), claims.UserID, HashToken(req.RefreshToken))
	if err != nil || !ok {
		httpx.Error(c, http.StatusUnauthorized, "refresh token expired or revoked")
		return
	}

	_ = h.deps.Refresh.Revoke(c.Request.Context(), claims.UserID, HashToken(req.RefreshToken))

	access, accessExp, _ := h.deps.JWT.SignAccess(claims.UserID, claims.Role)
	newRefresh, refreshExp, _ := h.deps.JWT.SignRefresh(claims.UserID, claims.Role)
	_ = h.deps.Refresh.Store(c.Request.Context(), claims.UserID, HashToken(newRefresh), refreshExp)

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"access_exp":    accessExp,
		"refresh_token": newRefresh,
		"refresh_exp":   refreshExp,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}
	claims, err := h.deps.JWT.ParseRefresh(req.RefreshToken)
	if err == nil {
		_ = h.deps.Refresh.Revoke(c.Request.Context(), claims.UserID, HashToken(req.RefreshToken))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Me(c *gin.Context) {
	uid, _ := UserID(c)

	u, err := h.deps.Users.ByID(c.Request.Context(), uid)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(u))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, _ := UserID(c)

	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	u, err := h.deps.Users.UpdateProfile(c.Request.Context(), uid, req.Name, req.AvatarURL)
	if err != nil {
		httpx.DBError(c, err, "profile update failed")
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(u))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	uid, _ := UserID(c)

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	u, err := h.deps.Users.ByID(c.Request.Context(), uid)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, "user not found")
		return
	}
	if !CheckPassword(u.PasswordHash, req.CurrentPassword) {
		httpx.Error(c, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	newHash, err := HashPassword(req.NewPassword)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "password hash failed")
		return
	}
	if err := h.deps.Users.UpdatePassword(c.Request.Context(), uid, newHash); err != nil {
		httpx.Error(c, http.StatusInternalServerError, "password update failed")
		return
	}
	// Other devices must log in again with the new password.
	if err := h.deps.Refresh.RevokeAll(c.Request.Context(), uid); err != nil {
		httpx.Error(c, http.StatusInternalServerError, "session revocation failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func sanitizeUser(u user.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"role":       u.Role,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
