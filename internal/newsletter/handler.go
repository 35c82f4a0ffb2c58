package newsletter

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/newsletter"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/httpx"
	"github.com/shariorfarhan07/zartaaz-sub000/internal/mail"
)

type Handler struct {
	repo   *Repo
	mailer mail.Mailer
	log    *logrus.Logger
}

func NewHandler(repo *Repo, mailer mail.Mailer, log *logrus.Logger) *Handler {
	return &Handler{repo: repo, mailer: mailer, log: log}
}

type subscribeReq struct {
	Email       string                  `json:"email" binding:"required,email"`
	Source      string                  `json:"source"`
	Preferences *newsletter.Preferences `json:"preferences"`
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	source := newsletter.Source(req.Source)
	if source == "" {
		source = newsletter.SourceWebsite
	}
	if !source.Valid() {
		httpx.Error(c, http.StatusBadRequest, "unknown subscription source")
		return
	}

	prefs := newsletter.Preferences{Promotions: true, NewProducts: true, Sales: true}
	if req.Preferences != nil {
		prefs = *req.Preferences
	}

	sub, err := h.repo.Subscribe(c.Request.Context(), req.Email, source, prefs)
	switch {
	case err == nil:
		h.sendWelcome(sub.Email)
		c.JSON(http.StatusCreated, sub)
	case errors.Is(err, ErrAlreadySubscribed):
		httpx.Error(c, http.StatusBadRequest, err.Error())
	default:
		httpx.DBError(c, err, "failed to subscribe")
	}
}

type unsubscribeReq struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	var req unsubscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	err := h.repo.Unsubscribe(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, pgx.ErrNoRows):
		httpx.Error(c, http.StatusNotFound, "email is not subscribed")
	default:
		httpx.DBError(c, err, "failed to unsubscribe")
	}
}

func (h *Handler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := ListFilter{
		Source: newsletter.Source(c.Query("source")),
		Page:   page,
		Limit:  limit,
	}
	if v := c.Query("active"); v != "" {
		b := v == "true"
		f.Active = &b
	}

	items, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to list subscribers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "failed to load stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// welcome mail is best-effort, never fails the request
func (h *Handler) sendWelcome(to string) {
	body := "You're on the list!\n\nWe'll keep you posted on new arrivals and sales.\n" +
		"You can unsubscribe at any time."
	if err := h.mailer.Send(to, "Welcome to our newsletter", body); err != nil {
		h.log.WithError(err).WithField("email", to).Warn("welcome mail failed")
	}
}
