//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"booking-marketplace/internal/handler/httperr"
	"booking-marketplace/internal/handler/middleware"
	"booking-marketplace/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery())
	r.Use(func(c *gin.Context) {
		c.Set(httperr.RequestIDKey, "req-42")
		c.Next()
	})
	r.Use(middleware.ErrorHandler())
	r.GET("/t", h)
	return r
}

func TestErrorHandler(t *testing.T) {
	t.Run("public error recorded without a response is written", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(gin.Error{
				Err:  errors.New("shop closed"),
				Type: gin.ErrorTypePublic,
				Meta: httperr.NewResponse(c, http.StatusUnprocessableEntity, httperr.CodeRuleViolation, "Request could not be processed", nil),
			})
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/t", nil, "")
		body := httptest.AssertErrorCode(t, rec, http.StatusUnprocessableEntity, "rule_violation")
		assert.Equal(t, "req-42", body.RequestID)
	})

	t.Run("private error hides its cause", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(errors.New("pq: relation does not exist"))
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/t", nil, "")
		body := httptest.AssertErrorCode(t, rec, http.StatusInternalServerError, "internal")
		assert.NotContains(t, rec.Body.String(), "relation")
		assert.Equal(t, "Internal server error", body.Error.Message)
	})

	t.Run("handler that already responded is left alone", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusNotFound, errors.New("no row"), "Not found", nil)
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/t", nil, "")
		httptest.AssertErrorCode(t, rec, http.StatusNotFound, "not_found")
	})

	t.Run("gateway outage advertises a retry", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusServiceUnavailable, errors.New("dial tcp"), "Payment gateway is unavailable", nil)
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/t", nil, "")
		httptest.AssertErrorCode(t, rec, http.StatusServiceUnavailable, "gateway_unavailable")
		httptest.AssertHeaders(t, rec, map[string]string{"Retry-After": "30"})
	})
}

func TestCustomRecovery(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) {
		panic("nil map")
	})

	rec := httptest.PerformRequest(t, r, http.MethodGet, "/t", nil, "")
	body := httptest.AssertErrorCode(t, rec, http.StatusInternalServerError, "internal")
	assert.Equal(t, "req-42", body.RequestID)
}
