package stub

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// NewRouter assembles the Echo instance with the same route surface as the
// real backend, plus /health and /metrics for local operation.
func NewRouter(state *State, secret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Each router owns its registry so a second instance in the same
	// process does not trip duplicate collector registration.
	registry := prometheus.NewRegistry()
	_ = registry.Register(LoginsTotal)
	_ = registry.Register(ProductMutationsTotal)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsNamespace,
		Registerer: registry,
	}))

	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	auth := NewAuthHandler(state, secret, tokenTTL)
	inventory := NewInventoryHandler(state)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))

	e.POST("/auth/login", auth.Login)
	e.GET("/auth/me", auth.Me, Auth(secret, state))

	inv := e.Group("/inventory", Auth(secret, state), RequireAdmin())
	inv.GET("/catalogs", inventory.Catalogs)
	inv.POST("/lineas", inventory.CreateLine)
	inv.PATCH("/lineas/:id/deactivate", inventory.DeactivateLine)
	inv.POST("/segmentos", inventory.CreateSegment)
	inv.GET("/products", inventory.ListProducts)
	inv.POST("/products", inventory.CreateProduct)
	inv.PUT("/products/:id", inventory.UpdateProduct)
	inv.PATCH("/products/:id/deactivate", inventory.DeactivateProduct)

	return e
}
