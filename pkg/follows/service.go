package follows

import (
	"context"
	"database/sql"

	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles the follow graph. Every follow relation is stored twice,
// once under each user, so both sides can list their edges without scanning
// the other's rows. The paired rows are only ever written or deleted inside
// one transaction.
type Service struct {
	db *bun.DB
}

// NewService creates a new follows service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Follow makes the follower follow the target. Following yourself is
// rejected; following someone you already follow is a no-op.
func (s *Service) Follow(ctx context.Context, followerID, targetID int) error {
	if followerID == targetID {
		return errcodes.ValidationError("Cannot follow yourself")
	}

	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", targetID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("User")
	}

	following, err := s.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if following {
		return nil
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		edges := []*models.FollowEdge{
			{UserID: followerID, Direction: models.DirectionFollowing, PeerID: targetID},
			{UserID: targetID, Direction: models.DirectionFollowers, PeerID: followerID},
		}
		if _, err := tx.NewInsert().Model(&edges).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}
		return nil
	})
}

// Unfollow removes both edge rows of the relation. Unfollowing someone you
// don't follow is a no-op.
func (s *Service) Unfollow(ctx context.Context, followerID, targetID int) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.FollowEdge)(nil)).
			Where("user_id = ?", followerID).
			Where("direction = ?", models.DirectionFollowing).
			Where("peer_id = ?", targetID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.FollowEdge)(nil)).
			Where("user_id = ?", targetID).
			Where("direction = ?", models.DirectionFollowers).
			Where("peer_id = ?", followerID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
}

// IsFollowing reports whether viewer follows target. It checks the row
// stored under the target, which is the side a profile page needs.
func (s *Service) IsFollowing(ctx context.Context, viewerID, targetID int) (bool, error) {
	edge := &models.FollowEdge{}
	err := s.db.NewSelect().
		Model(edge).
		Where("user_id = ?", targetID).
		Where("direction = ?", models.DirectionFollowers).
		Where("peer_id = ?", viewerID).
		Scan(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, errors.WithStack(err)
}

// ListEdges returns the peer ids stored under the user for one direction.
func (s *Service) ListEdges(ctx context.Context, userID int, direction string) ([]int, error) {
	ids := []int{}
	err := s.db.NewSelect().
		Model((*models.FollowEdge)(nil)).
		Column("peer_id").
		Where("user_id = ?", userID).
		Where("direction = ?", direction).
		Order("id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ids, nil
}
