package store

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type note struct {
	Model
	Title string `gorm:"size:64;uniqueIndex;not null"`
	Body  string `gorm:"size:200"`
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, g.AutoMigrate(&note{}))
	return New(g)
}

func createNote(t *testing.T, repo *Repo[note, *note], title string) *note {
	t.Helper()
	n := &note{Title: title, Body: "body of " + title}
	require.NoError(t, repo.Create(context.Background(), n))
	return n
}

func TestCreate_AssignsIdentityAndTimestamps(t *testing.T) {
	repo := NewRepo[note](openTestDB(t))

	n := createNote(t, repo, "first")

	assert.NotZero(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.False(t, n.UpdatedAt.IsZero())
	assert.False(t, n.Deleted)
}

func TestCreate_DuplicateRollsBack(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo[note](db)
	createNote(t, repo, "unique-title")

	err := repo.Create(context.Background(), &note{Title: "unique-title"})
	assert.ErrorIs(t, err, ErrDuplicate)

	var count int64
	require.NoError(t, db.Gorm().Model(&note{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdate_TouchesUpdatedAt(t *testing.T) {
	repo := NewRepo[note](openTestDB(t))
	n := createNote(t, repo, "before")
	created := n.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Update(context.Background(), n, map[string]any{"body": "after"}))

	assert.Equal(t, "after", n.Body)
	assert.True(t, n.UpdatedAt.After(created), "updated_at should move forward")
}

func TestSoftDelete_FlipsFlagAndRestores(t *testing.T) {
	repo := NewRepo[note](openTestDB(t))
	n := createNote(t, repo, "flippable")
	ctx := context.Background()

	require.NoError(t, repo.SoftDelete(ctx, n))
	assert.True(t, n.Deleted)

	_, err := repo.GetByID(ctx, n.ID, Visible)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.GetByID(ctx, n.ID, SoftDeleted)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	// A second flip restores the row.
	require.NoError(t, repo.SoftDelete(ctx, n))
	assert.False(t, n.Deleted)

	_, err = repo.GetByID(ctx, n.ID, Visible)
	assert.NoError(t, err)
}

func TestGetByID_VisibilityScopes(t *testing.T) {
	repo := NewRepo[note](openTestDB(t))
	ctx := context.Background()
	kept := createNote(t, repo, "kept")
	gone := createNote(t, repo, "gone")
	require.NoError(t, repo.SoftDelete(ctx, gone))

	_, err := repo.GetByID(ctx, kept.ID, Any)
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, gone.ID, Any)
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, kept.ID, SoftDeleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_Ordering(t *testing.T) {
	repo := NewRepo[note](openTestDB(t))
	ctx := context.Background()
	a := createNote(t, repo, "a")
	b := createNote(t, repo, "b")
	c := createNote(t, repo, "c")

	asc, err := repo.List(ctx, Any, Asc)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []uint{a.ID, b.ID, c.ID}, []uint{asc[0].ID, asc[1].ID, asc[2].ID})

	desc, err := repo.List(ctx, Any, Desc)
	require.NoError(t, err)
	assert.Equal(t, c.ID, desc[0].ID)
}

func TestPaginate_Boundaries(t *testing.T) {
	repo := NewRepo[note](openTestDB(t))
	ctx := context.Background()
	for _, title := range []string{"n1", "n2", "n3", "n4", "n5"} {
		createNote(t, repo, title)
	}

	page, err := repo.Paginate(ctx, Visible, Asc, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages())

	last, err := repo.Paginate(ctx, Visible, Asc, 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)

	beyond, err := repo.Paginate(ctx, Visible, Asc, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(5), beyond.Total)

	invalid, err := repo.Paginate(ctx, Visible, Asc, 0, 2)
	require.NoError(t, err)
	assert.Empty(t, invalid.Items)
	assert.Equal(t, int64(5), invalid.Total)
}

func TestPaginate_ExcludesSoftDeleted(t *testing.T) {
	repo := NewRepo[note](openTestDB(t))
	ctx := context.Background()
	createNote(t, repo, "visible")
	gone := createNote(t, repo, "deleted")
	require.NoError(t, repo.SoftDelete(ctx, gone))

	page, err := repo.Paginate(ctx, Visible, Asc, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "visible", page.Items[0].Title)
	assert.Equal(t, int64(1), page.Total)
}

type recordingHook struct {
	before []*ChangeSet
	after  []*ChangeSet
}

func (h *recordingHook) BeforeCommit(cs *ChangeSet) { h.before = append(h.before, cs) }
func (h *recordingHook) AfterCommit(cs *ChangeSet)  { h.after = append(h.after, cs) }

func TestTransaction_HooksFireOnCommitOnly(t *testing.T) {
	db := openTestDB(t)
	hook := &recordingHook{}
	db.Subscribe(hook)
	ctx := context.Background()

	err := db.Transaction(ctx, func(tx *Tx) error {
		return tx.Create(&note{Title: "committed"})
	})
	require.NoError(t, err)
	require.Len(t, hook.before, 1)
	require.Len(t, hook.after, 1)
	assert.Same(t, hook.before[0], hook.after[0])
	assert.Len(t, hook.after[0].Added, 1)

	// A failing transaction fires neither hook and persists nothing.
	boom := assert.AnError
	err = db.Transaction(ctx, func(tx *Tx) error {
		if err := tx.Create(&note{Title: "doomed"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, hook.before, 1)
	assert.Len(t, hook.after, 1)

	var count int64
	require.NoError(t, db.Gorm().Model(&note{}).Where("title = ?", "doomed").Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransaction_SoftDeletePartitionsChangeSet(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo[note](db)
	hook := &recordingHook{}
	db.Subscribe(hook)
	ctx := context.Background()

	n := createNote(t, repo, "partitioned")
	require.Len(t, hook.after, 1)

	require.NoError(t, repo.SoftDelete(ctx, n))
	require.Len(t, hook.after, 2)
	assert.Len(t, hook.after[1].Deleted, 1)
	assert.Empty(t, hook.after[1].Updated)

	// Restoring surfaces as an update so derived state gets rebuilt.
	require.NoError(t, repo.SoftDelete(ctx, n))
	require.Len(t, hook.after, 3)
	assert.Len(t, hook.after[2].Updated, 1)
	assert.Empty(t, hook.after[2].Deleted)
}
