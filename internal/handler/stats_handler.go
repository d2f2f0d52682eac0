package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/marceloamor/reading-list-manager/internal/model"
	"github.com/marceloamor/reading-list-manager/internal/service"
)

// StatsHandler handles the public, anonymised aggregation endpoints.
type StatsHandler struct {
	statsService service.StatsService
	dev          bool
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService service.StatsService, dev bool) *StatsHandler {
	return &StatsHandler{statsService: statsService, dev: dev}
}

// SearchFilters echoes the filters a public search was run with.
type SearchFilters struct {
	Genre string `json:"genre,omitempty"`
}

// SearchResponse is the public search envelope.
type SearchResponse struct {
	Query   string               `json:"query"`
	Filters SearchFilters        `json:"filters"`
	Results []model.SearchResult `json:"results"`
	Count   int                  `json:"count"`
}

// Community godoc
// @Summary Anonymised statistics over all reading lists
// @Tags public
// @Produce json
// @Success 200 {object} model.CommunityStats
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/public [get]
func (h *StatsHandler) Community(c echo.Context) error {
	stats, err := h.statsService.Community(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, stats)
}

// Search godoc
// @Summary Search all reading lists anonymously
// @Tags public
// @Produce json
// @Param q query string true "Search text, at least 2 characters"
// @Param genre query string false "Exact genre filter"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/public/search [get]
func (h *StatsHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	genre := c.QueryParam("genre")

	results, err := h.statsService.Search(c.Request().Context(), query, genre)
	if err != nil {
		return writeError(c, err, h.dev)
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Query:   query,
		Filters: SearchFilters{Genre: genre},
		Results: results,
		Count:   len(results),
	})
}
