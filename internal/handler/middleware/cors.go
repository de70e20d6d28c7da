package middleware

import (
	"log/slog"

	"rental-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware exposes Location so browser clients can follow a created booking.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.AllowOrigins
	c.AllowMethods = cfg.AllowMethods
	c.AllowHeaders = cfg.AllowHeaders
	c.ExposeHeaders = cfg.ExposeHeaders
	c.AllowCredentials = cfg.AllowCredentials
	c.MaxAge = cfg.MaxAge

	slog.Debug("cors configured", slog.Any("origins", cfg.AllowOrigins))
	return cors.New(c)
}
