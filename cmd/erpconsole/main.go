package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hollpacas/erp-console/internal/console"
	"github.com/hollpacas/erp-console/internal/core/service"
	"github.com/hollpacas/erp-console/internal/infrastructure/config"
	"github.com/hollpacas/erp-console/internal/infrastructure/rest"
	"github.com/hollpacas/erp-console/internal/session"
	"github.com/hollpacas/erp-console/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	tokens := session.NewStore(sessionPath)

	client := rest.NewClient(cfg.APIBaseURL, tokens, log)
	authGW := rest.NewAuthGateway(client)
	inventoryGW := rest.NewInventoryGateway(client)

	auth := service.NewAuthService(authGW, tokens, log)
	guard := service.NewSessionGuard(authGW, tokens, log)
	rec := service.NewReconciler(inventoryGW, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := console.New(os.Stdin, os.Stdout)
	console.NewApp(term, auth, guard, rec, log).Run(ctx)
}
