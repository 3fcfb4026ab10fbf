package users

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // registered for avatar decoding
	"os"
	"path/filepath"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registered for avatar decoding
)

// AvatarSize is the bounding box avatars are downscaled to.
const AvatarSize = 256

// Service handles profile operations.
type Service struct {
	db      *bun.DB
	dataDir string
}

// NewService creates a new users service.
func NewService(db *bun.DB, dataDir string) *Service {
	return &Service{db: db, dataDir: dataDir}
}

// Retrieve gets a user by ID.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("User")
	}
	user.HasAvatar = user.AvatarPath != nil
	return user, nil
}

// UpdateOptions contains options for updating a profile.
type UpdateOptions struct {
	DisplayName *string
}

// Update updates a user's own profile fields.
func (s *Service) Update(ctx context.Context, userID int, opts UpdateOptions) (*models.User, error) {
	if opts.DisplayName != nil {
		_, err := s.db.NewUpdate().
			Model((*models.User)(nil)).
			Set("display_name = ?", *opts.DisplayName).
			Set("updated_at = CURRENT_TIMESTAMP").
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return s.Retrieve(ctx, userID)
}

// SearchOptions contains options for searching users.
type SearchOptions struct {
	Query  string
	Limit  int
	Offset int
}

// Search returns profiles whose display name contains the query.
func (s *Service) Search(ctx context.Context, opts SearchOptions) ([]*models.Profile, int, error) {
	users := []*models.User{}

	query := s.db.NewSelect().
		Model(&users).
		Order("u.display_name ASC", "u.id ASC")

	if opts.Query != "" {
		query = query.Where("display_name LIKE ? COLLATE NOCASE", "%"+opts.Query+"%")
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	profiles := make([]*models.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.ToProfile())
	}

	return profiles, total, nil
}

// ProfilesByIDs resolves a set of user ids to profiles in one query. Ids
// that don't resolve are silently omitted.
func (s *Service) ProfilesByIDs(ctx context.Context, ids []int) ([]*models.Profile, error) {
	if len(ids) == 0 {
		return []*models.Profile{}, nil
	}

	users := []*models.User{}
	err := s.db.NewSelect().
		Model(&users).
		Where("u.id IN (?)", bun.In(ids)).
		Order("u.display_name ASC", "u.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	profiles := make([]*models.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.ToProfile())
	}

	return profiles, nil
}

// SaveAvatar validates, downscales, and stores an avatar image for the user,
// then records its path on the profile.
func (s *Service) SaveAvatar(ctx context.Context, userID int, data []byte) error {
	mtype := mimetype.Detect(data)
	switch mtype.String() {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return errcodes.ValidationError("Avatar must be a JPEG, PNG, or WebP image")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return errcodes.ValidationError("Avatar image could not be decoded")
	}

	dst := scaleDown(src, AvatarSize)

	dir := filepath.Join(s.dataDir, "avatars")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithStack(err)
	}

	path := filepath.Join(dir, strconv.Itoa(userID)+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, dst, &jpeg.Options{Quality: 85}); err != nil {
		return errors.WithStack(err)
	}

	relPath := filepath.Join("avatars", strconv.Itoa(userID)+".jpg")
	_, err = s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("avatar_path = ?", relPath).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// AvatarFilePath returns the absolute path of the user's stored avatar.
func (s *Service) AvatarFilePath(ctx context.Context, userID int) (string, error) {
	user, err := s.Retrieve(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.AvatarPath == nil {
		return "", errcodes.NotFound("Avatar")
	}
	return filepath.Join(s.dataDir, *user.AvatarPath), nil
}

// scaleDown resizes src so its longer side is at most maxSize, preserving
// aspect ratio. Images already within bounds are returned untouched.
func scaleDown(src image.Image, maxSize int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return src
	}

	if w > h {
		h = h * maxSize / w
		w = maxSize
	} else {
		w = w * maxSize / h
		h = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
