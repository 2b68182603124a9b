package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewDuckDBRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to init DB: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestPreferences(t *testing.T) {
	repo := setupTestDB(t)

	_, ok, err := repo.GetPreference("PreferredReleaseGroup")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetPreference("PreferredReleaseGroup", "1"))
	value, ok, err := repo.GetPreference("PreferredReleaseGroup")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	require.NoError(t, repo.SetPreference("PreferredReleaseGroup", "2"))
	value, _, err = repo.GetPreference("PreferredReleaseGroup")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestSaveAndGetProgress(t *testing.T) {
	repo := setupTestDB(t)

	got, err := repo.GetProgress("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	progress := &Progress{BookID: "book-1", Chapter: 12.5, Page: 3, Group: "2"}
	require.NoError(t, repo.SaveProgress(progress))
	assert.False(t, progress.UpdatedAt.IsZero())

	got, err = repo.GetProgress("book-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12.5, got.Chapter)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, "2", got.Group)

	progress.Page = 4
	progress.UpdatedAt = time.Time{}
	require.NoError(t, repo.SaveProgress(progress))
	got, err = repo.GetProgress("book-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Page)
}

func TestSaveProgressRequiresBook(t *testing.T) {
	repo := setupTestDB(t)

	assert.Error(t, repo.SaveProgress(nil))
	assert.Error(t, repo.SaveProgress(&Progress{}))
}

func TestListAndDeleteProgress(t *testing.T) {
	repo := setupTestDB(t)

	older := time.Now().Add(-time.Hour)
	require.NoError(t, repo.SaveProgress(&Progress{BookID: "a", Chapter: 1, Page: 1, UpdatedAt: older}))
	require.NoError(t, repo.SaveProgress(&Progress{BookID: "b", Chapter: 2, Page: 1}))

	all, err := repo.ListProgress()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].BookID)

	require.NoError(t, repo.DeleteProgress("b"))
	all, err = repo.ListProgress()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].BookID)
}
