package booklists

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hondanaapp/hondana/pkg/events"
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

func newTestService(t *testing.T) *Service {
	t.Helper()

	broker := events.NewBroker()
	t.Cleanup(broker.Close)

	return NewService(newTestDB(t), broker)
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

func createBook(ctx context.Context, t *testing.T, db *bun.DB, userID int, isbn, title string) *models.Book {
	t.Helper()

	book := &models.Book{
		UserID: userID,
		ISBN:   isbn,
		Title:  title,
		Status: models.StatusReading,
	}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	return book
}

func TestServiceCreateFromSelection_SnapshotIsFrozen(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(ctx, t, svc.db, "Yomiko", "yomiko@example.com")
	book := createBook(ctx, t, svc.db, user.ID, "9784101010014", "Kokoro")

	list, err := svc.CreateFromSelection(ctx, user.ID, "Natsume picks", []int{book.ID})
	require.NoError(t, err)
	require.Len(t, list.Books, 1)
	assert.Equal(t, models.VisibilityPrivate, list.Visibility)
	assert.Equal(t, "Kokoro", list.Books[0].Title)

	// Mutating and deleting the shelf item leaves the snapshot untouched.
	_, err = svc.db.NewUpdate().
		Model((*models.Book)(nil)).
		Set("title = ?", "Renamed").
		Where("id = ?", book.ID).
		Exec(ctx)
	require.NoError(t, err)

	_, err = svc.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", book.ID).
		Exec(ctx)
	require.NoError(t, err)

	got, err := svc.Retrieve(ctx, user.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Books, 1)
	assert.Equal(t, "Kokoro", got.Books[0].Title)
}

func TestServiceCreateFromSelection_SkipsUnresolvableIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(ctx, t, svc.db, "Yomiko", "yomiko@example.com")
	other := createUser(ctx, t, svc.db, "Bob", "bob@example.com")
	mine := createBook(ctx, t, svc.db, user.ID, "1111111111111", "Mine")
	theirs := createBook(ctx, t, svc.db, other.ID, "2222222222222", "Theirs")

	list, err := svc.CreateFromSelection(ctx, user.ID, "Mixed", []int{mine.ID, theirs.ID, 9999})
	require.NoError(t, err)
	require.Len(t, list.Books, 1)
	assert.Equal(t, "Mine", list.Books[0].Title)
}

func TestServiceRetrieve_PrivateHiddenFromOthers(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	owner := createUser(ctx, t, svc.db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, svc.db, "Viewer", "viewer@example.com")

	list, err := svc.CreateFromSelection(ctx, owner.ID, "Secret", nil)
	require.NoError(t, err)

	_, err = svc.Retrieve(ctx, viewer.ID, list.ID)
	require.Error(t, err)

	// Flipping to open makes it readable by anyone.
	_, err = svc.SetVisibility(ctx, owner.ID, list.ID, models.VisibilityOpen)
	require.NoError(t, err)

	got, err := svc.Retrieve(ctx, viewer.ID, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret", got.Name)
}

func TestServiceSetVisibility_OwnerOnly(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	owner := createUser(ctx, t, svc.db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, svc.db, "Viewer", "viewer@example.com")

	list, err := svc.CreateFromSelection(ctx, owner.ID, "Secret", nil)
	require.NoError(t, err)

	_, err = svc.SetVisibility(ctx, viewer.ID, list.ID, models.VisibilityOpen)
	require.Error(t, err)
}

func TestServiceDelete_RemovesListsAndSnapshots(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(ctx, t, svc.db, "Yomiko", "yomiko@example.com")
	book := createBook(ctx, t, svc.db, user.ID, "1111111111111", "One")

	first, err := svc.CreateFromSelection(ctx, user.ID, "First", []int{book.ID})
	require.NoError(t, err)
	second, err := svc.CreateFromSelection(ctx, user.ID, "Second", nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, user.ID, []int{first.ID, second.ID})
	require.NoError(t, err)

	lists, err := svc.ListByOwner(ctx, user.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)

	count, err := svc.db.NewSelect().
		Model((*models.BooklistBook)(nil)).
		Where("booklist_id = ?", first.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestServiceDelete_UnknownIDFailsBatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(ctx, t, svc.db, "Yomiko", "yomiko@example.com")

	list, err := svc.CreateFromSelection(ctx, user.ID, "Keep", nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, user.ID, []int{list.ID, 9999})
	require.Error(t, err)

	got, err := svc.Retrieve(ctx, user.ID, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Name)
}

func TestServiceListByOwner_FiltersPrivateForOthers(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	owner := createUser(ctx, t, svc.db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, svc.db, "Viewer", "viewer@example.com")

	_, err := svc.CreateFromSelection(ctx, owner.ID, "Private one", nil)
	require.NoError(t, err)
	open, err := svc.CreateFromSelection(ctx, owner.ID, "Open one", nil)
	require.NoError(t, err)
	_, err = svc.SetVisibility(ctx, owner.ID, open.ID, models.VisibilityOpen)
	require.NoError(t, err)

	mine, err := svc.ListByOwner(ctx, owner.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	visible, err := svc.ListByOwner(ctx, viewer.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Open one", visible[0].Name)
}

func TestServiceDelete_DuplicateIDsAreHarmless(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(ctx, t, svc.db, "Yomiko", "yomiko@example.com")

	list, err := svc.CreateFromSelection(ctx, user.ID, "Once", nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, user.ID, []int{list.ID, list.ID})
	require.NoError(t, err)

	lists, err := svc.ListByOwner(ctx, user.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}
