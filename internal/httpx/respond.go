package httpx

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const CtxRequestIDKey = "request_id"

// Error writes the failure envelope every handler uses. Success payloads
// stay handler-shaped; failures are uniform.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    msg,
		"request_id": c.GetString(CtxRequestIDKey),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorFields is Error plus per-field validation messages.
func ErrorFields(c *gin.Context, status int, msg string, fields map[string]string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    msg,
		"fields":     fields,
		"request_id": c.GetString(CtxRequestIDKey),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// BindError turns a request-binding failure into the envelope. Validation
// failures carry a per-field breakdown so clients can highlight inputs.
func BindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		fields := make(map[string]string, len(verr))
		for _, fe := range verr {
			fields[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
		}
		ErrorFields(c, http.StatusBadRequest, "validation failed", fields)
		return
	}
	Error(c, http.StatusBadRequest, "invalid request body")
}

// DBError classifies storage errors into a status + safe message:
// duplicate key and foreign key violations are caller errors, no rows is
// a 404, anything else is a 500 with the fallback message.
func DBError(c *gin.Context, err error, fallback string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		Error(c, http.StatusNotFound, "not found")
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		Error(c, http.StatusBadRequest, "duplicate value: "+pgErr.ConstraintName)
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		Error(c, http.StatusBadRequest, "referenced record does not exist")
	case errors.As(err, &pgErr) && pgErr.Code == "23514":
		Error(c, http.StatusBadRequest, "value out of range: "+pgErr.ConstraintName)
	default:
		Error(c, http.StatusInternalServerError, fallback)
	}
}
