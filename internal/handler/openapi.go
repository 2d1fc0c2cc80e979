package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/flightdelays/internal/server"
	"github.com/labstack/echo/v4"
)

// StaticDir holds openapi.html and openapi.json, relative to the working
// directory of the process.
const StaticDir = "static"

// OpenAPIHandler serves the OpenAPI UI. The page loads its JS from a CDN
// and reads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI reads static/openapi.html and serves it uncached.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(filepath.Join(StaticDir, "openapi.html"))

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "OpenAPI UI is unavailable").
			SetInternal(fmt.Errorf("failed to read OpenAPI UI template: %w", err))
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
