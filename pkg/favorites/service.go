package favorites

import (
	"context"
	"database/sql"

	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// unknownName is shown for a favorited booklist whose source was deleted
// before its name was ever cached.
const unknownName = "Unknown"

// Service handles booklist favorites.
type Service struct {
	db *bun.DB
}

// NewService creates a new favorites service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// FavoriteView is a favorite resolved for display. Deleted reports whether
// the source booklist no longer exists; its fields then come from the cache.
type FavoriteView struct {
	BooklistID  int    `json:"booklist_id"`
	ListOwnerID int    `json:"list_owner_id"`
	Name        string `json:"name"`
	Visibility  string `json:"visibility"`
	Deleted     bool   `json:"deleted"`
}

// Toggle favorites the booklist if it isn't favorited yet, and unfavorites
// it otherwise. Favoriting requires the source list to be open and owned by
// someone else; unfavoriting has no such requirement, so a favorite of a
// since-deleted or since-closed list can always be removed.
func (s *Service) Toggle(ctx context.Context, viewerID, booklistID int) (bool, error) {
	existing := &models.Favorite{}
	err := s.db.NewSelect().
		Model(existing).
		Where("user_id = ?", viewerID).
		Where("booklist_id = ?", booklistID).
		Scan(ctx)
	if err == nil {
		_, err = s.db.NewDelete().
			Model((*models.Favorite)(nil)).
			Where("id = ?", existing.ID).
			Exec(ctx)
		if err != nil {
			return false, errors.WithStack(err)
		}
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, errors.WithStack(err)
	}

	list := &models.Booklist{}
	err = s.db.NewSelect().
		Model(list).
		Where("bl.id = ?", booklistID).
		Scan(ctx)
	if err != nil {
		return false, errcodes.NotFound("Booklist")
	}

	if list.UserID == viewerID {
		return false, errcodes.ValidationError("Cannot favorite your own booklist")
	}
	if list.Visibility != models.VisibilityOpen {
		return false, errcodes.NotFound("Booklist")
	}

	favorite := &models.Favorite{
		UserID:      viewerID,
		BooklistID:  list.ID,
		ListOwnerID: list.UserID,
		Name:        list.Name,
		Visibility:  list.Visibility,
	}
	if _, err := s.db.NewInsert().Model(favorite).Exec(ctx); err != nil {
		return false, errors.WithStack(err)
	}

	return true, nil
}

// List returns the viewer's favorites with each source booklist re-resolved
// so name and visibility reflect the live list. Favorites whose source was
// deleted fall back to the cached snapshot.
func (s *Service) List(ctx context.Context, viewerID int) ([]*FavoriteView, error) {
	favorites := []*models.Favorite{}
	err := s.db.NewSelect().
		Model(&favorites).
		Where("user_id = ?", viewerID).
		Order("f.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(favorites) == 0 {
		return []*FavoriteView{}, nil
	}

	ids := make([]int, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.BooklistID)
	}

	lists := []*models.Booklist{}
	err = s.db.NewSelect().
		Model(&lists).
		Where("bl.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	live := map[int]*models.Booklist{}
	for _, list := range lists {
		live[list.ID] = list
	}

	views := make([]*FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		view := &FavoriteView{
			BooklistID:  f.BooklistID,
			ListOwnerID: f.ListOwnerID,
			Name:        f.Name,
			Visibility:  f.Visibility,
		}

		if list, ok := live[f.BooklistID]; ok {
			view.Name = list.Name
			view.Visibility = list.Visibility
			view.ListOwnerID = list.UserID
		} else {
			view.Deleted = true
			if view.Name == "" {
				view.Name = unknownName
			}
		}

		views = append(views, view)
	}

	return views, nil
}
