package users

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/hondanaapp/hondana/pkg/migrations"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createUser(ctx context.Context, t *testing.T, db *bun.DB, displayName, email string) *models.User {
	t.Helper()

	user := &models.User{
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: "x",
		Provider:     models.ProviderPassword,
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	return user
}

func TestServiceRetrieve_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, t.TempDir())

	_, err := svc.Retrieve(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User not found")
}

func TestServiceUpdate_DisplayName(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, t.TempDir())
	ctx := context.Background()

	user := createUser(ctx, t, db, "Yomiko", "yomiko@example.com")

	name := "Nenene"
	updated, err := svc.Update(ctx, user.ID, UpdateOptions{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Nenene", updated.DisplayName)
}

func TestServiceSearch(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, t.TempDir())
	ctx := context.Background()

	createUser(ctx, t, db, "Yomiko Readman", "yomiko@example.com")
	createUser(ctx, t, db, "Nenene Sumiregawa", "nenene@example.com")
	createUser(ctx, t, db, "Anita King", "anita@example.com")

	profiles, total, err := svc.Search(ctx, SearchOptions{Query: "nenene", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Nenene Sumiregawa", profiles[0].DisplayName)

	_, total, err = svc.Search(ctx, SearchOptions{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestServiceProfilesByIDs(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, t.TempDir())
	ctx := context.Background()

	u1 := createUser(ctx, t, db, "Yomiko", "yomiko@example.com")
	u2 := createUser(ctx, t, db, "Anita", "anita@example.com")

	profiles, err := svc.ProfilesByIDs(ctx, []int{u1.ID, u2.ID, 999})
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	profiles, err = svc.ProfilesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestServiceSaveAvatar(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	dataDir := t.TempDir()
	svc := NewService(db, dataDir)
	ctx := context.Background()

	user := createUser(ctx, t, db, "Yomiko", "yomiko@example.com")

	// Encode a 512x512 PNG so the downscale path runs.
	img := image.NewRGBA(image.Rect(0, 0, 512, 512))
	for x := 0; x < 512; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))

	err := svc.SaveAvatar(ctx, user.ID, buf.Bytes())
	require.NoError(t, err)

	path, err := svc.AvatarFilePath(ctx, user.ID)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, decoded.Bounds().Dx(), AvatarSize)
	assert.LessOrEqual(t, decoded.Bounds().Dy(), AvatarSize)

	updated, err := svc.Retrieve(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, updated.HasAvatar)
}

func TestServiceSaveAvatar_RejectsNonImage(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, t.TempDir())
	ctx := context.Background()

	user := createUser(ctx, t, db, "Yomiko", "yomiko@example.com")

	err := svc.SaveAvatar(ctx, user.ID, []byte("definitely not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JPEG, PNG, or WebP")
}
