package booklists

import (
	"context"

	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/events"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles booklist operations.
type Service struct {
	db     *bun.DB
	broker *events.Broker
}

// NewService creates a new booklist service.
func NewService(db *bun.DB, broker *events.Broker) *Service {
	return &Service{db: db, broker: broker}
}

// CreateFromSelection creates a booklist from a selection of the owner's
// shelf items. The selection is copied into snapshot rows, so later edits or
// removals on the shelf never change the list. Ids that don't resolve to the
// owner's shelf are skipped rather than failing the whole creation.
func (s *Service) CreateFromSelection(ctx context.Context, userID int, name string, bookIDs []int) (*models.Booklist, error) {
	list := &models.Booklist{
		UserID:     userID,
		Name:       name,
		Visibility: models.VisibilityPrivate,
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		books := []*models.Book{}
		if len(bookIDs) > 0 {
			err := tx.NewSelect().
				Model(&books).
				Where("user_id = ?", userID).
				Where("id IN (?)", bun.In(bookIDs)).
				Order("b.id ASC").
				Scan(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		if _, err := tx.NewInsert().Model(list).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}

		if len(books) == 0 {
			return nil
		}

		snapshots := make([]*models.BooklistBook, 0, len(books))
		for _, book := range books {
			snapshots = append(snapshots, &models.BooklistBook{
				BooklistID:     list.ID,
				ISBN:           book.ISBN,
				Title:          book.Title,
				Author:         book.Author,
				ItemCaption:    book.ItemCaption,
				BooksGenreID:   book.BooksGenreID,
				LargeImageURL:  book.LargeImageURL,
				MediumImageURL: book.MediumImageURL,
				SmallImageURL:  book.SmallImageURL,
				PublisherName:  book.PublisherName,
				SalesDate:      book.SalesDate,
				ItemURL:        book.ItemURL,
				Memo:           book.Memo,
				Status:         book.Status,
			})
		}

		if _, err := tx.NewInsert().Model(&snapshots).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}

		list.Books = snapshots
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broker.Publish(events.Event{Type: events.TypeBooklistCreated, UserID: userID, Data: list})

	return list, nil
}

// SetVisibility flips a booklist between private and open. Only the owner
// can change it.
func (s *Service) SetVisibility(ctx context.Context, userID, id int, visibility string) (*models.Booklist, error) {
	res, err := s.db.NewUpdate().
		Model((*models.Booklist)(nil)).
		Set("visibility = ?", visibility).
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
		return nil, errcodes.NotFound("Booklist")
	}

	return s.Retrieve(ctx, userID, id)
}

// Delete removes booklists and their snapshot rows in one transaction. Every
// id must resolve to a list the caller owns or the whole batch fails.
func (s *Service) Delete(ctx context.Context, userID int, ids []int) error {
	ids = uniqueInts(ids)
	if len(ids) == 0 {
		return nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().
			Model((*models.Booklist)(nil)).
			Where("user_id = ?", userID).
			Where("id IN (?)", bun.In(ids)).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count != len(ids) {
			return errcodes.NotFound("Booklist")
		}

		_, err = tx.NewDelete().
			Model((*models.BooklistBook)(nil)).
			Where("booklist_id IN (?)", bun.In(ids)).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Booklist)(nil)).
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
		Type:   events.TypeBooklistDeleted,
		UserID: userID,
		Data:   map[string]interface{}{"ids": ids},
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

// Retrieve fetches a booklist with its snapshot rows. Private lists are
// visible to the owner only; open lists to anyone. Non-owners asking for a
// private list get the same not-found as a missing id, so private lists
// don't leak their existence.
func (s *Service) Retrieve(ctx context.Context, viewerID, id int) (*models.Booklist, error) {
	list := &models.Booklist{}
	err := s.db.NewSelect().
		Model(list).
		Relation("Books", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("blb.id ASC")
		}).
		Where("bl.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Booklist")
	}

	if list.UserID != viewerID && list.Visibility != models.VisibilityOpen {
		return nil, errcodes.NotFound("Booklist")
	}

	return list, nil
}

// ListByOwner returns an owner's booklists, newest first. Viewers other than
// the owner only see open lists.
func (s *Service) ListByOwner(ctx context.Context, viewerID, ownerID int) ([]*models.Booklist, error) {
	lists := []*models.Booklist{}

	query := s.db.NewSelect().
		Model(&lists).
		Where("user_id = ?", ownerID).
		Order("bl.id DESC")

	if viewerID != ownerID {
		query = query.Where("visibility = ?", models.VisibilityOpen)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return lists, nil
}
