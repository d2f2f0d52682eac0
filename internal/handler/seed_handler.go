package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/seed"
	"github.com/marceloamor/reading-list-manager/internal/service"
)

// SeedHandler exposes demo-data seeding. It is only routed in dev mode.
type SeedHandler struct {
	authService service.AuthService
	bookService service.BookService
	dev         bool
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(authService service.AuthService, bookService service.BookService, dev bool) *SeedHandler {
	return &SeedHandler{authService: authService, bookService: bookService, dev: dev}
}

// SeedDemo godoc
// @Summary Seed demo accounts and books (dev only)
// @Tags seed
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/demo [get]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	accounts, books, err := seed.Demo(c.Request().Context(), h.authService, h.bookService)
	if err != nil {
		return writeError(c, apperrors.NewStorage(err), h.dev)
	}
	return c.JSON(http.StatusOK, map[string]int{
		"accounts": accounts,
		"books":    books,
	})
}
