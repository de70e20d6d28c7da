//go:build unit

package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/handler"
	"rental-booking/internal/handler/api"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/usecase"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/httptest"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerFixture struct {
	engine  *gin.Engine
	jwt     *jwt.Service
	queries *queriesmock.MockBookingQueries
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	cfg := config.NewTestConfig()
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockBookingCommands(ctrl)
	qs := queriesmock.NewMockBookingQueries(ctrl)

	jwtSvc := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, 0)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtSvc))

	engine := httptest.NewTestEngine()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler.NewRouter(engine, cfg, logger, api.NewBookingHandler(cmds, qs), auth)

	return &routerFixture{engine: engine, jwt: jwtSvc, queries: qs}
}

func (f *routerFixture) token(t *testing.T, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	tok, err := f.jwt.GenerateToken(userID, ttl)
	require.NoError(t, err)
	return tok
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/health", nil, "")

	var body map[string]string
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_BookingsRequireBearerToken(t *testing.T) {
	f := newRouterFixture(t)
	foreign := jwt.NewService("some-other-secret", "", 0)
	foreignToken, err := foreign.GenerateToken(uuid.New(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers map[string]string
		message string
	}{
		{
			name:    "no header",
			message: "Access token required",
		},
		{
			name:    "non bearer scheme",
			headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			message: "Access token required",
		},
		{
			name:    "garbage token",
			headers: map[string]string{"Authorization": "Bearer not-a-jwt"},
			message: "Invalid or expired token",
		},
		{
			name:    "expired token",
			headers: map[string]string{"Authorization": "Bearer " + f.token(t, uuid.New(), -time.Minute)},
			message: "Invalid or expired token",
		},
		{
			name:    "signed with another key",
			headers: map[string]string{"Authorization": "Bearer " + foreignToken},
			message: "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.PerformRequestWithHeaders(t, f.engine, http.MethodGet, "/api/bookings", nil, "", tt.headers)

			env := httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, tt.message)
			assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
		})
	}
}

func TestRouter_AuthenticatedRequestReachesHandler(t *testing.T) {
	f := newRouterFixture(t)
	userID := uuid.New()

	f.queries.EXPECT().
		ListBookingsForUser(gomock.Any(), userID, queries.ListAsGuest).
		Return([]*queries.BookingListItem{}, nil)

	w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/api/bookings", nil, f.token(t, userID, time.Hour))

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	f := newRouterFixture(t)

	w := httptest.PerformRequestWithHeaders(t, f.engine, http.MethodGet, "/health", nil, "",
		map[string]string{"X-Request-ID": "req-123"})
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = httptest.PerformRequest(t, f.engine, http.MethodGet, "/health", nil, "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/api/rentals", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
