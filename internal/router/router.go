// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps the query endpoint and the
// system endpoints to their handlers
package router

import (
	"github.com/deppfellow/flightdelays/internal/handler"
	"github.com/deppfellow/flightdelays/internal/middleware"
	"github.com/deppfellow/flightdelays/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain.
//
// Order matters: the request id must exist before the logger is built,
// and the New Relic transaction before EnhanceTracing and the logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	router.GET("/", h.Flights.Route())

	return router
}
