package cart

import (
	"net/http"

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

func (h *Handler) GetMyCart(c *gin.Context) {
	userID, _ := auth.UserID(c)

	crt, err := h.repo.GetCart(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to load cart")
		return
	}
	c.JSON(http.StatusOK, crt)
}

type AddItemReq struct {
	VariantID int64 `json:"variant_id" binding:"required"`
	Qty       int   `json:"qty" binding:"required,min=1"`
}

func (h *Handler) AddItem(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var req AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	if err := h.repo.AddItem(c.Request.Context(), userID, req.VariantID, req.Qty); err != nil {
		httpx.DBError(c, err, "failed to add item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type UpdateQtyReq struct {
	VariantID int64 `json:"variant_id" binding:"required"`
	Qty       int   `json:"qty" binding:"required,min=1"`
}

func (h *Handler) UpdateQty(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var req UpdateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	if err := h.repo.UpdateQty(c.Request.Context(), userID, req.VariantID, req.Qty); err != nil {
		httpx.DBError(c, err, "failed to update qty")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type RemoveItemReq struct {
	VariantID int64 `json:"variant_id" binding:"required"`
}

func (h *Handler) RemoveItem(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var req RemoveItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	if err := h.repo.RemoveItem(c.Request.Context(), userID, req.VariantID); err != nil {
		httpx.DBError(c, err, "failed to remove item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
