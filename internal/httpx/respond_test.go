package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestBindError(t *testing.T) {
	t.Run("validation failure lists the fields", func(t *testing.T) {
		c, w := testContext(t)

		type payload struct {
			Email string `validate:"required,email"`
			Qty   int    `validate:"min=1"`
		}
		err := validator.New().Struct(payload{Email: "not-an-email"})
		require.Error(t, err)

		BindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "validation failed", body.Message)
		assert.Contains(t, body.Fields, "email")
		assert.Contains(t, body.Fields, "qty")
	})

	t.Run("malformed body gets a generic message", func(t *testing.T) {
		c, w := testContext(t)

		BindError(c, errors.New("unexpected EOF"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "invalid request body", body.Message)
		assert.Empty(t, body.Fields)
	})
}

func TestDBError(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		c, w := testContext(t)

		DBError(c, pgx.ErrNoRows, "lookup failed")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not found", decode(t, w).Message)
	})

	t.Run("unique violation", func(t *testing.T) {
		c, w := testContext(t)

		DBError(c, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "save failed")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "duplicate value: users_email_key", decode(t, w).Message)
	})

	t.Run("transient failure is not a caller error", func(t *testing.T) {
		c, w := testContext(t)

		DBError(c, errors.New("dial tcp: connection refused"), "save failed")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "save failed", decode(t, w).Message)
	})
}
