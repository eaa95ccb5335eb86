package domain

import "time"

// Book mirrors the backend catalog record. availableQuantity is maintained
// server-side; the backend guarantees 0 <= availableQuantity <= quantity.
type Book struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Author            []string  `json:"author"`
	ISBN              string    `json:"isbn"`
	Category          string    `json:"category"`
	Genre             string    `json:"genre,omitempty"`
	PublishYear       int       `json:"publishYear"`
	Publisher         string    `json:"publisher"`
	Pages             int       `json:"pages"`
	Quantity          int       `json:"quantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	Language          string    `json:"language"`
	Location          string    `json:"location,omitempty"`
	CoverImage        string    `json:"coverImage,omitempty"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Available reports whether at least one copy can be borrowed right now.
func (b *Book) Available() bool {
	return b.AvailableQuantity > 0
}
