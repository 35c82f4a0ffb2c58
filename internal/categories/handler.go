package categories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListPublic(c *gin.Context) {
	items, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.repo.AdminListAll(c.Request.Context())
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type CreateCategoryReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sort_order"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}
	created, err := h.repo.Create(c.Request.Context(), req.Name, req.Description, req.Image, req.SortOrder)
	if err != nil {
		httpx.DBError(c, err, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, created)
}

type UpdateCategoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}
	updated, err := h.repo.Update(c.Request.Context(), id, req.Name, req.Description, req.Image, req.SortOrder, req.IsActive)
	if err != nil {
		httpx.DBError(c, err, "failed to update category")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	err := h.repo.Delete(c.Request.Context(), id)
	var inUse *InUseError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.As(err, &inUse):
		httpx.Error(c, http.StatusBadRequest, inUse.Error())
	default:
		httpx.DBError(c, err, "failed to delete category")
	}
}
