package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/authlend-api/internal/auth"
	"github.com/anyulbade/authlend-api/internal/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Envelope {
	t.Helper()
	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped no rows", fmt.Errorf("find: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: "23505", Detail: "Key (name)=(Visa) already exists."}, http.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, http.StatusUnprocessableEntity},
		{"check", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest},
		{"numeric overflow", &pgconn.PgError{Code: "22003", Message: "numeric field overflow"}, http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message, _ := MapDBError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestErrorHandler_RendersEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/dup", func(c *gin.Context) {
		_ = c.Error(&pgconn.PgError{Code: "23505", Detail: "Key (name)=(Visa) already exists."})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dup", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, dto.StatusError, env.Status)
	assert.Equal(t, http.StatusConflict, env.StatusCode)
	assert.Equal(t, []string{"Key (name)=(Visa) already exists."}, env.Errors["detail"])
}

func TestLogger_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(Logger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("caller id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "trace-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "trace-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "trace-123", w.Body.String())
	})
}

func newAdminRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	svc, err := auth.NewJWTService("middleware-secret", "authlend")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", RequireAdmin(svc), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, dto.Success(http.StatusOK, "ok", claims.Subject))
	})
	return r, svc
}

func TestRequireAdmin(t *testing.T) {
	r, svc := newAdminRouter(t)

	admin, err := svc.GenerateToken("7", []string{auth.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	customer, err := svc.GenerateToken("8", []string{"customer"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"not admin", "Bearer " + customer, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.status, decodeEnvelope(t, w).StatusCode)
		})
	}
}

type failingCounter struct{}

func (failingCounter) Hit(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/simulations", RateLimit(NewMemoryCounter(), "simulations", 3, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/simulations", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 3; i++ {
		w := send("198.51.100.1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, fmt.Sprint(2-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := send("198.51.100.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusTooManyRequests, decodeEnvelope(t, w).StatusCode)

	assert.Equal(t, http.StatusCreated, send("198.51.100.2").Code, "limits are per IP")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := gin.New()
	r.POST("/simulations", RateLimit(failingCounter{}, "simulations", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/simulations", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestMemoryCounter_WindowResets(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryCounter()
	m.now = func() time.Time { return now }

	count, ttl, err := m.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, ttl)

	now = now.Add(30 * time.Second)
	count, ttl, _ = m.Hit(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 30*time.Second, ttl)

	now = now.Add(30 * time.Second)
	count, _, _ = m.Hit(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(1), count)
}
