package wishlist

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/auth"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.UserID(c)

	items, err := h.repo.List(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to load wishlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AddReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *Handler) Add(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var req AddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	if err := h.repo.Add(c.Request.Context(), userID, req.ProductID); err != nil {
		httpx.DBError(c, err, "failed to add to wishlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Remove(c *gin.Context) {
	userID, _ := auth.UserID(c)
	productID, _ := strconv.ParseInt(c.Param("productId"), 10, 64)

	if err := h.repo.Remove(c.Request.Context(), userID, productID); err != nil {
		httpx.DBError(c, err, "failed to remove from wishlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
