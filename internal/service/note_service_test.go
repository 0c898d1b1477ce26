package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notely-be/internal/models"
	"notely-be/internal/repository"
)

func TestNoteCreateGuardsCategoryScope(t *testing.T) {
	store := newMemStore()
	svc := NewNoteService(&memNoteRepo{store: store}, nil)

	aliceCategory := store.addCategory("alice", "Work", "#FF5733")
	bobCategory := store.addCategory("bob", "Secret", "#CCCCCC")

	t.Run("own category", func(t *testing.T) {
		created, err := svc.Create("alice", &models.CreateNoteRequest{
			Title:      "Standup",
			Content:    "Notes from standup",
			Date:       "2025-06-10",
			CategoryID: aliceCategory.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Standup", created.Title)
		assert.Equal(t, "2025-06-10", created.Date)
		assert.Equal(t, aliceCategory.ID, created.Category.ID)
		assert.Equal(t, "Work", created.Category.Name)
		assert.Equal(t, "#FF5733", created.Category.Colour)
	})

	t.Run("foreign category is a field error, not a 404", func(t *testing.T) {
		_, err := svc.Create("alice", &models.CreateNoteRequest{
			Title:      "Sneaky",
			Content:    "x",
			Date:       "2025-06-10",
			CategoryID: bobCategory.ID,
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "category_id", vErr.Field)
		assert.Len(t, store.notes, 1, "rejected create persists nothing")
	})

	t.Run("nonexistent category is indistinguishable from foreign", func(t *testing.T) {
		_, err := svc.Create("alice", &models.CreateNoteRequest{
			Title:      "Sneaky",
			Content:    "x",
			Date:       "2025-06-10",
			CategoryID: "cat-none",
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "category_id", vErr.Field)
	})
}

func TestNoteUpdateGuardsCategoryScope(t *testing.T) {
	store := newMemStore()
	svc := NewNoteService(&memNoteRepo{store: store}, nil)

	aliceCategory := store.addCategory("alice", "Work", "#FF5733")
	bobCategory := store.addCategory("bob", "Secret", "#CCCCCC")

	created, err := svc.Create("alice", &models.CreateNoteRequest{
		Title: "Standup", Content: "x", Date: "2025-06-10", CategoryID: aliceCategory.ID,
	})
	require.NoError(t, err)

	_, err = svc.Update("alice", created.ID, &models.CreateNoteRequest{
		Title: "Standup", Content: "x", Date: "2025-06-10", CategoryID: bobCategory.ID,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category_id", vErr.Field)

	// State unchanged after the rejected move.
	assert.Equal(t, aliceCategory.ID, store.notes[created.ID].CategoryID)

	// Patching only category_id hits the same guard.
	_, err = svc.Patch("alice", created.ID, &models.PatchNoteRequest{CategoryID: &bobCategory.ID})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category_id", vErr.Field)
	assert.Equal(t, aliceCategory.ID, store.notes[created.ID].CategoryID)
}

func TestNoteOwnershipIsolation(t *testing.T) {
	store := newMemStore()
	svc := NewNoteService(&memNoteRepo{store: store}, nil)

	aliceCategory := store.addCategory("alice", "Work", "#FF5733")
	note, err := svc.Create("alice", &models.CreateNoteRequest{
		Title: "Private", Content: "secret", Date: "2025-06-10", CategoryID: aliceCategory.ID,
	})
	require.NoError(t, err)

	_, err = svc.Get("bob", note.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Update("bob", note.ID, &models.CreateNoteRequest{
		Title: "Taken", Content: "x", Date: "2025-06-10", CategoryID: aliceCategory.ID,
	})
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.Delete("bob", note.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, store.notes, note.ID)

	page, err := svc.List("bob", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.Empty(t, page.Results)
}

func TestNoteListFiltersByCategory(t *testing.T) {
	store := newMemStore()
	svc := NewNoteService(&memNoteRepo{store: store}, nil)

	work := store.addCategory("alice", "Work", "#FF5733")
	home := store.addCategory("alice", "Home", "#33FF57")
	bobCategory := store.addCategory("bob", "Secret", "#CCCCCC")

	mustCreate := func(userID, title, date, categoryID string) {
		t.Helper()
		_, err := svc.Create(userID, &models.CreateNoteRequest{
			Title: title, Content: "x", Date: date, CategoryID: categoryID,
		})
		require.NoError(t, err)
	}

	mustCreate("alice", "W1", "2025-06-01", work.ID)
	mustCreate("alice", "W2", "2025-06-03", work.ID)
	mustCreate("alice", "H1", "2025-06-02", home.ID)
	mustCreate("bob", "B1", "2025-06-04", bobCategory.ID)

	t.Run("no filter, newest date first", func(t *testing.T) {
		page, err := svc.List("alice", "", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Count)
		titles := make([]string, 0, len(page.Results))
		for _, note := range page.Results {
			titles = append(titles, note.Title)
		}
		assert.Equal(t, []string{"W2", "H1", "W1"}, titles)
	})

	t.Run("category filter", func(t *testing.T) {
		page, err := svc.List("alice", work.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Count)
		for _, note := range page.Results {
			assert.Equal(t, work.ID, note.Category.ID)
		}
	})

	t.Run("foreign category filter matches nothing", func(t *testing.T) {
		page, err := svc.List("alice", bobCategory.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)
		assert.Empty(t, page.Results)
	})
}

func TestNotePatch(t *testing.T) {
	store := newMemStore()
	svc := NewNoteService(&memNoteRepo{store: store}, nil)

	category := store.addCategory("alice", "Work", "#FF5733")
	created, err := svc.Create("alice", &models.CreateNoteRequest{
		Title: "Standup", Content: "original", Date: "2025-06-10", CategoryID: category.ID,
	})
	require.NoError(t, err)

	t.Run("single field", func(t *testing.T) {
		patched, err := svc.Patch("alice", created.ID, &models.PatchNoteRequest{Title: strPtr("Retro")})
		require.NoError(t, err)
		assert.Equal(t, "Retro", patched.Title)
		assert.Equal(t, "original", patched.Content)
		assert.Equal(t, "2025-06-10", patched.Date)
	})

	t.Run("bad date rejected before any write", func(t *testing.T) {
		before := store.notes[created.ID].UpdatedAt
		_, err := svc.Patch("alice", created.ID, &models.PatchNoteRequest{Date: strPtr("June 10th")})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "date", vErr.Field)
		assert.Equal(t, before, store.notes[created.ID].UpdatedAt)
	})

	t.Run("empty patch keeps fields, refreshes updated_at", func(t *testing.T) {
		before := *store.notes[created.ID]
		patched, err := svc.Patch("alice", created.ID, &models.PatchNoteRequest{})
		require.NoError(t, err)
		assert.Equal(t, before.Title, patched.Title)
		assert.Equal(t, before.Content, patched.Content)
		assert.Equal(t, before.Date.Format("2006-01-02"), patched.Date)
		assert.True(t, patched.UpdatedAt.After(before.UpdatedAt))
		assert.Equal(t, before.CreatedAt, patched.CreatedAt)
	})
}

func TestNoteMutationsInvalidateCategoryCache(t *testing.T) {
	store := newMemStore()
	cacheClient := newStubCache()
	categorySvc := NewCategoryService(&memCategoryRepo{store: store}, cacheClient)
	noteSvc := NewNoteService(&memNoteRepo{store: store}, cacheClient)

	category := store.addCategory("alice", "Work", "#FF5733")

	cached, err := categorySvc.Get("alice", category.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cached.NotesCount)

	created, err := noteSvc.Create("alice", &models.CreateNoteRequest{
		Title: "Standup", Content: "x", Date: "2025-06-10", CategoryID: category.ID,
	})
	require.NoError(t, err)

	// The cached zero-count view was dropped; the next read sees the note.
	fresh, err := categorySvc.Get("alice", category.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.NotesCount)

	require.NoError(t, noteSvc.Delete("alice", created.ID))
	afterDelete, err := categorySvc.Get("alice", category.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, afterDelete.NotesCount)
}
