package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rental-booking/internal/handler/api"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	httperr.Diagnostics = cfg.Server.IsDevelopment()

	// Recovery must be outermost so it also covers the other middleware.
	engine.Use(
		middleware.CustomRecovery(),
		middleware.NewCORSMiddleware(cfg.CORS),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(),
	)

	engine.GET("/health", healthCheck)
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	bookings := engine.Group("/api/bookings", authMiddleware.RequireAuth())
	addRoutes(bookings, []route{
		{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
		{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
		{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
		{Method: http.MethodPatch, Path: "/:id/status", Handler: bookingHandler.UpdateStatus},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, r.Handler)
	}
}
