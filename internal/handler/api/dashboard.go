package api

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed index.html
var indexHTML []byte

// Index serves the dashboard page.
func (h *MacroHandler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}
