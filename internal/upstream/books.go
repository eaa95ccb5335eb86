package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Books talks to the backend catalog endpoints.
type Books struct {
	c *Client
}

func NewBooks(c *Client) *Books {
	return &Books{c: c}
}

// BookListParams filters and paginates catalog listings.
// Zero-valued fields are omitted from the query string.
type BookListParams struct {
	Search        string
	Category      string
	Genre         string
	AvailableOnly bool
	Page          int
	Limit         int
}

func (p BookListParams) values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("q", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Genre != "" {
		q.Set("genre", p.Genre)
	}
	if p.AvailableOnly {
		q.Set("available", "true")
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// BookInput is the create/update payload for a catalog record.
type BookInput struct {
	Title       string   `json:"title"`
	Author      []string `json:"author"`
	ISBN        string   `json:"isbn"`
	Category    string   `json:"category"`
	Genre       string   `json:"genre,omitempty"`
	PublishYear int      `json:"publishYear"`
	Publisher   string   `json:"publisher"`
	Pages       int      `json:"pages"`
	Quantity    int      `json:"quantity"`
	Language    string   `json:"language"`
	Location    string   `json:"location,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Description string   `json:"description,omitempty"`
}

// QuantityUpdate adjusts stock counts for a title.
type QuantityUpdate struct {
	Quantity          int `json:"quantity"`
	AvailableQuantity int `json:"availableQuantity"`
}

// List returns a page of the catalog.
func (b *Books) List(ctx context.Context, params BookListParams) ([]domain.Book, *Pagination, error) {
	var books []domain.Book
	m, err := b.c.get(ctx, "/api/books", params.values(), &books)
	if err != nil {
		return nil, nil, err
	}
	return books, m.Pagination, nil
}

// Get returns one catalog record.
func (b *Books) Get(ctx context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	if _, err := b.c.get(ctx, "/api/books/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Categories returns the distinct catalog categories.
func (b *Books) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if _, err := b.c.get(ctx, "/api/books/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// New returns the most recently added titles.
func (b *Books) New(ctx context.Context, limit int) ([]domain.Book, error) {
	q := url.Values{}
	if limit <= 0 {
		limit = 10
	}
	q.Set("limit", strconv.Itoa(limit))
	var books []domain.Book
	if _, err := b.c.get(ctx, "/api/books/new", q, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Search is List restricted to a free-text query. The backend matches
// title, author and ISBN.
func (b *Books) Search(ctx context.Context, query string) ([]domain.Book, error) {
	books, _, err := b.List(ctx, BookListParams{Search: query})
	return books, err
}

// Create adds a catalog record. Staff only (enforced upstream).
func (b *Books) Create(ctx context.Context, input BookInput) (*domain.Book, error) {
	var book domain.Book
	if _, err := b.c.post(ctx, "/api/books", input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Update replaces a catalog record.
func (b *Books) Update(ctx context.Context, id string, input BookInput) (*domain.Book, error) {
	var book domain.Book
	if _, err := b.c.put(ctx, "/api/books/"+url.PathEscape(id), input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateQuantity adjusts stock counts without touching other fields.
func (b *Books) UpdateQuantity(ctx context.Context, id string, update QuantityUpdate) (*domain.Book, error) {
	var book domain.Book
	if _, err := b.c.put(ctx, "/api/books/"+url.PathEscape(id)+"/quantity", update, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a catalog record.
func (b *Books) Delete(ctx context.Context, id string) error {
	_, err := b.c.delete(ctx, "/api/books/"+url.PathEscape(id))
	return err
}
