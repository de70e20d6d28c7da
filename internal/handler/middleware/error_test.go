//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorEngine(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.GET("/", h)
	return r
}

func serve(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestErrorHandler_RendersRecordedPublicError(t *testing.T) {
	r := newErrorEngine(func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusConflict}
		resp.Error.Code = "CONFLICT"
		resp.Error.Reason = "DATES_UNAVAILABLE"
		resp.Error.Message = "Rental is not available for these dates"
		_ = c.Error(&gin.Error{Err: errors.New("overlap"), Type: gin.ErrorTypePublic, Meta: resp})
	})

	w := serve(r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":{"code":"CONFLICT","reason":"DATES_UNAVAILABLE","message":"Rental is not available for these dates"}}`, w.Body.String())
}

func TestErrorHandler_PrivateErrorIsInternal(t *testing.T) {
	r := newErrorEngine(func(c *gin.Context) {
		_ = c.Error(errors.New("pool closed"))
	})

	w := serve(r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pool closed")
}

func TestCustomRecovery(t *testing.T) {
	r := newErrorEngine(func(*gin.Context) { panic("nil map") })

	w := serve(r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL","message":"Internal server error"}}`, w.Body.String())
}
