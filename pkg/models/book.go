package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Shelf item statuses. Every book starts as reading when it's added to the
// shelf; tsundoku is the stockpile of books bought but not yet read.
const (
	StatusReading  = "reading"
	StatusTsundoku = "tsundoku"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    int       `bun:",nullzero" json:"user_id"`

	// Catalog metadata, copied from the external catalog at add time.
	ISBN           string `bun:",nullzero" json:"isbn"`
	Title          string `bun:",nullzero" json:"title"`
	Author         string `json:"author"`
	ItemCaption    string `json:"item_caption"`
	BooksGenreID   string `json:"books_genre_id"`
	LargeImageURL  string `json:"large_image_url"`
	MediumImageURL string `json:"medium_image_url"`
	SmallImageURL  string `json:"small_image_url"`
	PublisherName  string `json:"publisher_name"`
	SalesDate      string `json:"sales_date"`
	ItemURL        string `json:"item_url"`

	Memo   string `json:"memo"`
	Status string `bun:",nullzero" json:"status"`

	// Derived plain-text memo preview, populated on list responses.
	MemoExcerpt string `bun:"-" json:"memo_excerpt,omitempty"`
}
