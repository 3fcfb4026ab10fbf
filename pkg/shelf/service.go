package shelf

import (
	"context"
	"database/sql"

	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/events"
	"github.com/hondanaapp/hondana/pkg/htmlutil"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// memoExcerptLength is how many runes of the stripped memo appear in list
// responses.
const memoExcerptLength = 120

// Service handles shelf operations.
type Service struct {
	db     *bun.DB
	broker *events.Broker
}

// NewService creates a new shelf service.
func NewService(db *bun.DB, broker *events.Broker) *Service {
	return &Service{db: db, broker: broker}
}

// AddOptions carries the catalog metadata of the book being shelved.
type AddOptions struct {
	ISBN           string
	Title          string
	Author         string
	ItemCaption    string
	BooksGenreID   string
	LargeImageURL  string
	MediumImageURL string
	SmallImageURL  string
	PublisherName  string
	SalesDate      string
	ItemURL        string
}

// Add puts a book on the user's shelf. Adding a catalog id that's already
// shelved is a no-op that returns the existing record and added=false, so
// callers can signal "already present" distinctly from "added".
func (s *Service) Add(ctx context.Context, userID int, opts AddOptions) (*models.Book, bool, error) {
	existing := &models.Book{}
	err := s.db.NewSelect().
		Model(existing).
		Where("user_id = ?", userID).
		Where("isbn = ?", opts.ISBN).
		Scan(ctx)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, errors.WithStack(err)
	}

	book := &models.Book{
		UserID:         userID,
		ISBN:           opts.ISBN,
		Title:          opts.Title,
		Author:         opts.Author,
		ItemCaption:    opts.ItemCaption,
		BooksGenreID:   opts.BooksGenreID,
		LargeImageURL:  opts.LargeImageURL,
		MediumImageURL: opts.MediumImageURL,
		SmallImageURL:  opts.SmallImageURL,
		PublisherName:  opts.PublisherName,
		SalesDate:      opts.SalesDate,
		ItemURL:        opts.ItemURL,
		Status:         models.StatusReading,
	}

	_, err = s.db.NewInsert().Model(book).Exec(ctx)
	if err != nil {
		return nil, false, errors.WithStack(err)
	}

	s.broker.Publish(events.Event{Type: events.TypeBookAdded, UserID: userID, Data: book})

	return book, true, nil
}

// RemoveByISBN deletes every shelf row for the catalog id. Matching on the
// catalog id rather than the row id is deliberate: it clears any accidental
// duplicates in one sweep. Returns the number of rows removed.
func (s *Service) RemoveByISBN(ctx context.Context, userID int, isbn string) (int, error) {
	res, err := s.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("user_id = ?", userID).
		Where("isbn = ?", isbn).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if deleted > 0 {
		s.broker.Publish(events.Event{Type: events.TypeBookRemoved, UserID: userID, Data: map[string]string{"isbn": isbn}})
	}

	return int(deleted), nil
}

// BulkSetStatus moves every named shelf item to the given status in a single
// transaction: either all of them move or none do. Ids that don't resolve to
// the caller's own shelf fail the whole batch.
func (s *Service) BulkSetStatus(ctx context.Context, userID int, ids []int, status string) error {
	ids = uniqueInts(ids)
	if len(ids) == 0 {
		return nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("user_id = ?", userID).
			Where("id IN (?)", bun.In(ids)).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count != len(ids) {
			return errcodes.NotFound("Book")
		}

		_, err = tx.NewUpdate().
			Model((*models.Book)(nil)).
			Set("status = ?", status).
			Set("updated_at = CURRENT_TIMESTAMP").
			Where("user_id = ?", userID).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.broker.Publish(events.Event{
		Type:   events.TypeBookStatusChanged,
		UserID: userID,
		Data:   map[string]interface{}{"ids": ids, "status": status},
	})

	return nil
}

// uniqueInts drops repeated ids so a duplicate in the request doesn't skew
// the all-or-nothing ownership count.
func uniqueInts(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SetMemo overwrites only the memo field of the shelf item.
func (s *Service) SetMemo(ctx context.Context, userID, id int, memo string) (*models.Book, error) {
	res, err := s.db.NewUpdate().
		Model((*models.Book)(nil)).
		Set("memo = ?", memo).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("user_id = ?", userID).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if affected == 0 {
		return nil, errcodes.NotFound("Book")
	}

	book, err := s.Retrieve(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	s.broker.Publish(events.Event{Type: events.TypeBookMemoUpdated, UserID: userID, Data: book})

	return book, nil
}

// Retrieve gets a single shelf item owned by the user.
func (s *Service) Retrieve(ctx context.Context, userID, id int) (*models.Book, error) {
	book := &models.Book{}
	err := s.db.NewSelect().
		Model(book).
		Where("user_id = ?", userID).
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Book")
	}
	return book, nil
}

// ListOptions contains options for listing shelf items.
type ListOptions struct {
	Status string // empty means all statuses
}

// List returns the user's shelf, optionally filtered to one status, with
// memo excerpts populated for display.
func (s *Service) List(ctx context.Context, userID int, opts ListOptions) ([]*models.Book, error) {
	books := []*models.Book{}

	query := s.db.NewSelect().
		Model(&books).
		Where("user_id = ?", userID).
		Order("b.id ASC")

	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, book := range books {
		if book.Memo != "" {
			book.MemoExcerpt = htmlutil.Excerpt(book.Memo, memoExcerptLength)
		}
	}

	return books, nil
}
