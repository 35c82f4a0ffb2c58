package orders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/auth"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/order"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/mail"
)

// CartClearer empties a user's cart after a successful checkout.
type CartClearer interface {
	Clear(ctx context.Context, userID int64) error
}

type Dependencies struct {
	Repo   *Repo
	Mailer mail.Mailer
	Carts  CartClearer
	Log    *logrus.Logger
}

type Handler struct {
	deps Dependencies
}

func NewHandler(d Dependencies) *Handler {
	return &Handler{deps: d}
}

type addressReq struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

func (a addressReq) toDomain() order.Address {
	return order.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Phone:     a.Phone,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Zip:       a.Zip,
		Country:   a.Country,
	}
}

type createItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	VariantID int64 `json:"variant_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type createOrderReq struct {
	Items           []createItemReq `json:"items" binding:"required,min=1,dive"`
	ShippingAddress addressReq      `json:"shipping_address" binding:"required"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
}

// Create places an order for a logged-in user or a guest. Totals are
// recomputed server-side; client-sent figures are not read at all.
func (h *Handler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	in := CreateOrderInput{
		PaymentMethod: req.PaymentMethod,
		Shipping:      req.ShippingAddress.toDomain(),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, CreateItemInput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	userID, authed := auth.UserID(c)
	if authed {
		in.UserID = &userID
	} else {
		guest := req.ShippingAddress.Email
		in.GuestEmail = &guest
	}

	o, err := h.deps.Repo.Create(c.Request.Context(), in)
	if err != nil {
		h.createError(c, err)
		return
	}

	if authed && h.deps.Carts != nil {
		if err := h.deps.Carts.Clear(c.Request.Context(), userID); err != nil {
			h.deps.Log.WithError(err).Warn("failed to clear cart after checkout")
		}
	}
	h.sendConfirmation(o)

	c.JSON(http.StatusCreated, o)
}

func (h *Handler) createError(c *gin.Context, err error) {
	var stock *InsufficientStockError
	switch {
	case errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrUnavailable):
		httpx.Error(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &stock):
		httpx.Error(c, http.StatusConflict, stock.Error())
	case errors.Is(err, pgx.ErrNoRows):
		httpx.Error(c, http.StatusNotFound, "product or variant not found")
	default:
		httpx.DBError(c, err, "failed to create order")
	}
}

// order confirmation mail is best-effort, never fails the request
func (h *Handler) sendConfirmation(o order.Order) {
	to := o.Shipping.Email
	body := fmt.Sprintf(
		"Thank you for your order!\n\nOrder number: %s\nTotal: %.2f\n\nWe will let you know once it ships.",
		o.OrderNumber, o.Total)
	if err := h.deps.Mailer.Send(to, "Order confirmation "+o.OrderNumber, body); err != nil {
		h.deps.Log.WithError(err).WithField("order", o.OrderNumber).Warn("confirmation mail failed")
	}
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := auth.UserID(c)
	f := listFilterFromQuery(c)
	f.UserID = &userID

	items, err := h.deps.Repo.List(c.Request.Context(), f)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to list orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	o, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) Invoice(c *gin.Context) {
	o, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, InvoiceDocument(o))
}

func (h *Handler) ShippingLabel(c *gin.Context) {
	o, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ShippingLabelDocument(o))
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	o, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	updated, err := h.deps.Repo.UpdateAddress(c.Request.Context(), o.ID, req.toDomain())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, updated)
	case errors.Is(err, ErrNotEditable):
		httpx.Error(c, http.StatusConflict, err.Error())
	default:
		httpx.DBError(c, err, "failed to update address")
	}
}

// loadOwned fetches the order and enforces that the caller owns it or is
// an admin.
func (h *Handler) loadOwned(c *gin.Context) (order.Order, bool) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	o, err := h.deps.Repo.Get(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, "order not found")
		return order.Order{}, false
	}

	role := c.GetString(auth.CtxRoleKey)
	userID, _ := auth.UserID(c)
	if role != "admin" && (o.UserID == nil || *o.UserID != userID) {
		httpx.Error(c, http.StatusForbidden, "forbidden")
		return order.Order{}, false
	}
	return o, true
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.deps.Repo.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to list orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (h *Handler) AdminUpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	to := order.Status(req.Status)
	if !to.Valid() {
		httpx.Error(c, http.StatusBadRequest, "unknown order status "+req.Status)
		return
	}

	adminID, _ := auth.UserID(c)
	o, err := h.deps.Repo.UpdateStatus(c.Request.Context(), id, to, req.Note, adminID)
	var trans *order.TransitionError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, o)
	case errors.As(err, &trans):
		httpx.Error(c, http.StatusConflict, trans.Error())
	case errors.Is(err, pgx.ErrNoRows):
		httpx.Error(c, http.StatusNotFound, "order not found")
	default:
		httpx.DBError(c, err, "failed to update status")
	}
}

func (h *Handler) AdminMarkPaid(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	o, err := h.deps.Repo.MarkPaid(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, o)
	case errors.Is(err, ErrAlreadyPaid):
		httpx.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, pgx.ErrNoRows):
		httpx.Error(c, http.StatusNotFound, "order not found")
	default:
		httpx.DBError(c, err, "failed to mark order paid")
	}
}

func listFilterFromQuery(c *gin.Context) ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return ListFilter{
		Status: order.Status(c.Query("status")),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
}
