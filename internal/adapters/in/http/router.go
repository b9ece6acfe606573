package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: operational endpoints at the root and
// the validated, identity-checked API under /api/v1.
//
//	GET /health        liveness
//	GET /metrics       Prometheus exposition of gatherer
//	GET /openapi.yaml  the API document
//	GET /swagger/*     Swagger UI over /openapi.yaml
func NewRouter(ctx context.Context, server *Server, gatherer prometheus.Gatherer, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/openapi.yaml", serveOpenAPI)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("/api/v1", Identity(), validator)

	api.POST("/budgets", server.CreateBudget)
	api.GET("/budgets/stranded", server.GetStrandedConversions)
	api.GET("/budgets/:id", server.GetBudget)
	api.PUT("/budgets/:id", server.UpdateBudgetDraft)
	api.POST("/budgets/:id/submit", server.SubmitBudget)
	api.POST("/budgets/:id/approve", server.ApproveBudget)
	api.POST("/budgets/:id/reject", server.RejectBudget)
	api.POST("/budgets/:id/convert", server.ConvertBudgetToOrder)

	api.POST("/orders", server.CreateOrder)
	api.GET("/orders/:id", server.GetOrder)
	api.PATCH("/orders/:id/status", server.SetOrderStatus)
	api.DELETE("/orders/:id", server.DeleteOrder)

	return e, nil
}
