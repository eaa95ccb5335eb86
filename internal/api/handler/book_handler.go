package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// BookHandler serves the catalogue screens. Listing and lookups are open
// to every signed-in user; mutations are staff routes.
type BookHandler struct {
	books ports.BooksAPI
}

func NewBookHandler(books ports.BooksAPI) *BookHandler {
	return &BookHandler{books: books}
}

type bookRequest struct {
	Title       string   `json:"title" validate:"required"`
	Author      []string `json:"author" validate:"required,min=1"`
	ISBN        string   `json:"isbn" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Genre       string   `json:"genre"`
	PublishYear int      `json:"publishYear" validate:"required,gte=1000"`
	Publisher   string   `json:"publisher"`
	Pages       int      `json:"pages" validate:"gte=0"`
	Quantity    int      `json:"quantity" validate:"required,gte=1"`
	Language    string   `json:"language"`
	Location    string   `json:"location"`
	CoverImage  string   `json:"coverImage"`
	Description string   `json:"description"`
}

type quantityRequest struct {
	Quantity          int `json:"quantity" validate:"required,gte=0"`
	AvailableQuantity int `json:"availableQuantity" validate:"gte=0"`
}

type bookListResponse struct {
	Books      []domain.Book        `json:"books"`
	Pagination *upstream.Pagination `json:"pagination,omitempty"`
}

func (r bookRequest) toInput() upstream.BookInput {
	return upstream.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Category:    r.Category,
		Genre:       r.Genre,
		PublishYear: r.PublishYear,
		Publisher:   r.Publisher,
		Pages:       r.Pages,
		Quantity:    r.Quantity,
		Language:    r.Language,
		Location:    r.Location,
		CoverImage:  r.CoverImage,
		Description: r.Description,
	}
}

// List serves the catalogue with search, category and availability filters.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        q          query     string  false  "Search term"
// @Param        category   query     string  false  "Category filter"
// @Param        available  query     bool    false  "Only books with free copies"
// @Param        page       query     int     false  "Page number"
// @Success      200        {object}  bookListResponse
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	books, pagination, err := h.books.List(c.Request().Context(), upstream.BookListParams{
		Search:        c.QueryParam("q"),
		Category:      c.QueryParam("category"),
		Genre:         c.QueryParam("genre"),
		AvailableOnly: c.QueryParam("available") == "true",
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookListResponse{Books: books, Pagination: pagination})
}

// Get serves the book detail screen.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.books.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Categories lists the distinct catalogue categories.
func (h *BookHandler) Categories(c echo.Context) error {
	categories, err := h.books.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// New lists the most recently added books.
func (h *BookHandler) New(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	books, err := h.books.New(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Create adds a catalogue entry.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  map[string]string
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.books.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update replaces a catalogue entry.
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.books.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateQuantity adjusts the number of copies held.
func (h *BookHandler) UpdateQuantity(c echo.Context) error {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.books.UpdateQuantity(c.Request().Context(), c.Param("id"), upstream.QuantityUpdate{
		Quantity:          req.Quantity,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete removes a catalogue entry.
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.books.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
