package bootstrap

import (
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	leeway, err := time.ParseDuration(cfg.JWT.Leeway)
	if err != nil {
		panic("invalid JWT_LEEWAY: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, leeway)
}
