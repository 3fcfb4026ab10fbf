package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Follow edge directions. Every follow relationship is stored as two rows:
// one under the follower's following set and one under the followee's
// followers set. The pair is written and deleted in a single transaction so
// both rows exist or neither does.
const (
	DirectionFollowing = "following"
	DirectionFollowers = "followers"
)

type FollowEdge struct {
	bun.BaseModel `bun:"table:follow_edges,alias:fe"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int       `bun:",nullzero" json:"user_id"`
	Direction string    `bun:",nullzero" json:"direction"`
	PeerID    int       `bun:",nullzero" json:"peer_id"`
}
