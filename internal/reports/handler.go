package reports

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.repo.Dashboard(c.Request.Context())
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to load stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		httpx.Error(c, http.StatusBadRequest, "invalid year")
		return
	}

	rows, err := h.repo.Monthly(c.Request.Context(), year)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to build monthly report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "months": rows})
}

func (h *Handler) Yearly(c *gin.Context) {
	rows, err := h.repo.Yearly(c.Request.Context())
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to build yearly report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": rows})
}

// ExportOrders streams a CSV of orders in [from, to). Defaults to the
// last 30 days.
func (h *Handler) ExportOrders(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid from date, want YYYY-MM-DD")
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid to date, want YYYY-MM-DD")
			return
		}
		to = to.AddDate(0, 0, 1) // inclusive end day
	}

	rows, err := h.repo.OrdersBetween(c.Request.Context(), from, to)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to export orders")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"order_number", "created_at", "email", "status", "paid", "subtotal", "shipping", "tax", "total"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.OrderNumber,
			r.CreatedAt.Format(time.RFC3339),
			r.Email,
			r.Status,
			strconv.FormatBool(r.IsPaid),
			fmt.Sprintf("%.2f", r.Subtotal),
			fmt.Sprintf("%.2f", r.Shipping),
			fmt.Sprintf("%.2f", r.Tax),
			fmt.Sprintf("%.2f", r.Total),
		})
	}
	w.Flush()
}
