package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/repository"
	"github.com/marceloamor/reading-list-manager/internal/service"
)

// BookHandler handles the authenticated reading-list endpoints.
type BookHandler struct {
	bookService service.BookService
	dev         bool
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService, dev bool) *BookHandler {
	return &BookHandler{bookService: bookService, dev: dev}
}

// BookRequest is the client-settable field set for create and update. Owner
// fields are deliberately absent; ownership always comes from the session.
type BookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	DeletedID uint `json:"deletedId"`
}

func (r BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:  r.Title,
		Author: r.Author,
		Genre:  r.Genre,
		Status: r.Status,
		Notes:  r.Notes,
	}
}

// List godoc
// @Summary List the caller's books
// @Tags books
// @Produce json
// @Param status query string false "Exact status filter"
// @Param genre query string false "Exact genre filter"
// @Param search query string false "Substring match on title or author"
// @Success 200 {array} model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) List(c echo.Context) error {
	filter := repository.ListFilter{
		Status: c.QueryParam("status"),
		Genre:  c.QueryParam("genre"),
		Search: c.QueryParam("search"),
	}

	books, err := h.bookService.List(c.Request().Context(), accountID(c), filter)
	if err != nil {
		return writeError(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, books)
}

// Create godoc
// @Summary Add a book to the caller's list
// @Tags books
// @Accept json
// @Produce json
// @Param request body BookRequest true "Book fields"
// @Success 201 {object} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("invalid request body"), h.dev)
	}

	book, err := h.bookService.Create(c.Request().Context(), accountID(c), req.toInput())
	if err != nil {
		return writeError(c, err, h.dev)
	}
	return c.JSON(http.StatusCreated, book)
}

// Get godoc
// @Summary Fetch one of the caller's books
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return writeError(c, err, h.dev)
	}

	book, err := h.bookService.Get(c.Request().Context(), accountID(c), id)
	if err != nil {
		return writeError(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, book)
}

// Update godoc
// @Summary Replace one of the caller's books
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body BookRequest true "Full book field set"
// @Success 200 {object} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return writeError(c, err, h.dev)
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("invalid request body"), h.dev)
	}

	book, err := h.bookService.Update(c.Request().Context(), accountID(c), id, req.toInput())
	if err != nil {
		return writeError(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, book)
}

// Delete godoc
// @Summary Remove one of the caller's books
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} DeleteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return writeError(c, err, h.dev)
	}

	deletedID, err := h.bookService.Delete(c.Request().Context(), accountID(c), id)
	if err != nil {
		return writeError(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, DeleteResponse{DeletedID: deletedID})
}

// accountID reads the caller's account id set by the session middleware.
func accountID(c echo.Context) uint {
	id, _ := c.Get(ContextAccountID).(uint)
	return id
}

func bookID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, apperrors.NewValidation("invalid book id")
	}
	return uint(id), nil
}
