package main

import (
	"github.com/joho/godotenv"

	"github.com/hollpacas/erp-console/internal/infrastructure/config"
	"github.com/hollpacas/erp-console/internal/stub"
	"github.com/hollpacas/erp-console/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadStub()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	state, err := stub.NewState(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot seed stub state")
	}

	e := stub.NewRouter(state, cfg.JWTSecret, cfg.TokenTTL, log)

	log.Info().Str("port", cfg.Port).Str("admin", cfg.AdminEmail).Msg("stub backend listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
