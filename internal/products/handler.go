package products

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/auth"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/product"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Public: list products (category/search/featured/on_sale filters)
func (h *Handler) ListPublic(c *gin.Context) {
	f := ListFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true"
		f.Featured = &b
	}
	if v := c.Query("on_sale"); v != "" {
		b := v == "true"
		f.OnSale = &b
	}

	items, err := h.repo.ListPublic(c.Request.Context(), f)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Public: product details with variants and reviews
func (h *Handler) GetPublic(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.GetPublic(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, "product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

type VariantReq struct {
	Size      string  `json:"size" binding:"required"`
	Color     string  `json:"color" binding:"required"`
	ColorCode string  `json:"color_code"`
	Stock     int     `json:"stock" binding:"min=0"`
	SKU       *string `json:"sku"`
}

type CreateProductReq struct {
	CategoryID    int64    `json:"category_id" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	Image         string   `json:"image"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price"`
	DiscountPrice *float64 `json:"discount_price"`
	SalePrice     *float64 `json:"sale_price"`
	OnSale        bool     `json:"on_sale"`
	Tags          []string `json:"tags"`
	Featured      bool     `json:"featured"`

	Variants []VariantReq `json:"variants" binding:"required,min=1,dive"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	userID, _ := auth.UserID(c)

	p, err := h.repo.Create(c.Request.Context(), CreateProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		Image:         req.Image,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		DiscountPrice: req.DiscountPrice,
		SalePrice:     req.SalePrice,
		OnSale:        req.OnSale,
		Tags:          req.Tags,
		Featured:      req.Featured,
		CreatedBy:     userID,
		Variants:      toVariantInputs(req.Variants),
	})
	if err != nil {
		httpx.DBError(c, err, "failed to create product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

type UpdateProductReq struct {
	CategoryID    *int64   `json:"category_id"`
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Brand         *string  `json:"brand"`
	Image         *string  `json:"image"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	DiscountPrice *float64 `json:"discount_price"`
	SalePrice     *float64 `json:"sale_price"`
	OnSale        *bool    `json:"on_sale"`
	Tags          []string `json:"tags"`
	Featured      *bool    `json:"featured"`

	Variants []VariantReq `json:"variants" binding:"omitempty,dive"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	in := UpdateProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		Image:         req.Image,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		DiscountPrice: req.DiscountPrice,
		SalePrice:     req.SalePrice,
		OnSale:        req.OnSale,
		Tags:          req.Tags,
		Featured:      req.Featured,
	}
	if req.Variants != nil {
		in.Variants = toVariantInputs(req.Variants)
	}

	p, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		httpx.DBError(c, err, "failed to update product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AdminList(c *gin.Context) {
	status := product.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		httpx.Error(c, http.StatusBadRequest, "unknown product status")
		return
	}
	items, err := h.repo.AdminList(c.Request.Context(), status)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminGet(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.AdminGet(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, "product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Archive hides the product from the storefront; data is retained.
func (h *Handler) AdminArchive(c *gin.Context) {
	h.setStatus(c, product.StatusArchived)
}

func (h *Handler) AdminRestore(c *gin.Context) {
	h.setStatus(c, product.StatusActive)
}

func (h *Handler) setStatus(c *gin.Context, status product.Status) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.SetStatus(c.Request.Context(), id, status); err != nil {
		httpx.DBError(c, err, "failed to update product status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status})
}

func (h *Handler) AdminPermanentDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.PermanentDelete(c.Request.Context(), id); err != nil {
		httpx.DBError(c, err, "failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type ReviewReq struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *Handler) AddReview(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	userID, _ := auth.UserID(c)

	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	if err := h.repo.AddReview(c.Request.Context(), id, userID, req.Rating, req.Comment); err != nil {
		httpx.DBError(c, err, "failed to add review")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func toVariantInputs(reqs []VariantReq) []VariantInput {
	var out []VariantInput
	for _, v := range reqs {
		out = append(out, VariantInput{
			Size:      product.Size(v.Size),
			Color:     v.Color,
			ColorCode: v.ColorCode,
			Stock:     v.Stock,
			SKU:       v.SKU,
		})
	}
	return out
}
