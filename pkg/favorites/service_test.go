package favorites

import (
	"context"
	"database/sql"
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

func createBooklist(ctx context.Context, t *testing.T, db *bun.DB, userID int, name, visibility string) *models.Booklist {
	t.Helper()

	list := &models.Booklist{
		UserID:     userID,
		Name:       name,
		Visibility: visibility,
	}
	_, err := db.NewInsert().Model(list).Exec(ctx)
	require.NoError(t, err)

	return list
}

func TestServiceToggle_RoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	owner := createUser(ctx, t, db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, db, "Viewer", "viewer@example.com")
	list := createBooklist(ctx, t, db, owner.ID, "Open picks", models.VisibilityOpen)

	favorited, err := svc.Toggle(ctx, viewer.ID, list.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	views, err := svc.List(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Open picks", views[0].Name)
	assert.Equal(t, owner.ID, views[0].ListOwnerID)
	assert.False(t, views[0].Deleted)

	favorited, err = svc.Toggle(ctx, viewer.ID, list.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	views, err = svc.List(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestServiceToggle_RejectsOwnAndPrivateLists(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	owner := createUser(ctx, t, db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, db, "Viewer", "viewer@example.com")

	own := createBooklist(ctx, t, db, owner.ID, "Own open", models.VisibilityOpen)
	_, err := svc.Toggle(ctx, owner.ID, own.ID)
	require.Error(t, err)

	private := createBooklist(ctx, t, db, owner.ID, "Private", models.VisibilityPrivate)
	_, err = svc.Toggle(ctx, viewer.ID, private.ID)
	require.Error(t, err)

	_, err = svc.Toggle(ctx, viewer.ID, 9999)
	require.Error(t, err)
}

func TestServiceList_ReflectsLiveRename(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	owner := createUser(ctx, t, db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, db, "Viewer", "viewer@example.com")
	list := createBooklist(ctx, t, db, owner.ID, "Before", models.VisibilityOpen)

	_, err := svc.Toggle(ctx, viewer.ID, list.ID)
	require.NoError(t, err)

	_, err = db.NewUpdate().
		Model((*models.Booklist)(nil)).
		Set("name = ?", "After").
		Where("id = ?", list.ID).
		Exec(ctx)
	require.NoError(t, err)

	views, err := svc.List(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "After", views[0].Name)
}

func TestServiceList_FallsBackToCacheWhenSourceDeleted(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	owner := createUser(ctx, t, db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, db, "Viewer", "viewer@example.com")
	list := createBooklist(ctx, t, db, owner.ID, "Vanishing", models.VisibilityOpen)

	_, err := svc.Toggle(ctx, viewer.ID, list.ID)
	require.NoError(t, err)

	_, err = db.NewDelete().
		Model((*models.Booklist)(nil)).
		Where("id = ?", list.ID).
		Exec(ctx)
	require.NoError(t, err)

	views, err := svc.List(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Deleted)
	assert.Equal(t, "Vanishing", views[0].Name)
	assert.Equal(t, owner.ID, views[0].ListOwnerID)

	// A favorite of a deleted list can still be removed.
	favorited, err := svc.Toggle(ctx, viewer.ID, list.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestServiceList_UnknownWhenCacheEmpty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	viewer := createUser(ctx, t, db, "Viewer", "viewer@example.com")

	// A legacy row with no cached name and a long-gone source.
	favorite := &models.Favorite{UserID: viewer.ID, BooklistID: 424242}
	_, err := db.NewInsert().Model(favorite).Exec(ctx)
	require.NoError(t, err)

	views, err := svc.List(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Deleted)
	assert.Equal(t, "Unknown", views[0].Name)
}
