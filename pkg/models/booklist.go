package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Booklist visibility. Private lists are readable only by their owner; open
// lists are readable by anyone and can be favorited.
const (
	VisibilityPrivate = "private"
	VisibilityOpen    = "open"
)

type Booklist struct {
	bun.BaseModel `bun:"table:booklists,alias:bl"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     int       `bun:",nullzero" json:"user_id"`
	Name       string    `bun:",nullzero" json:"name"`
	Visibility string    `bun:",nullzero" json:"visibility"`

	Books []*BooklistBook `bun:"rel:has-many,join:id=booklist_id" json:"books,omitempty"`
}

// BooklistBook is a frozen snapshot of a shelf item at the moment the
// booklist was created. It copies the book's fields rather than referencing
// the shelf row, so later shelf edits never propagate into the list.
type BooklistBook struct {
	bun.BaseModel `bun:"table:booklist_books,alias:blb"`

	ID         int `bun:",pk,nullzero" json:"id"`
	BooklistID int `bun:",nullzero" json:"booklist_id"`

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
	Memo           string `json:"memo"`
	Status         string `bun:",nullzero" json:"status"`
}
