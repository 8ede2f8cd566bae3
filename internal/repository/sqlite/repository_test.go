package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"labkit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	repo, err := New(filepath.Join(t.TempDir(), "lab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newSnapshot(id string, savedAt time.Time) *Snapshot {
	return &Snapshot{
		ID:           id,
		SavedAt:      savedAt,
		StudentCount: 3,
		CourseCount:  4,
		Payload:      `{"enrollees":[],"courses":[]}`,
	}
}

func TestCreateAndGetSnapshot(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	savedAt := time.Date(2026, 3, 1, 10, 30, 0, 123456789, time.UTC)

	require.NoError(t, repo.CreateSnapshot(ctx, newSnapshot("s-1", savedAt)))

	got, err := repo.GetSnapshot(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", got.ID)
	assert.True(t, savedAt.Equal(got.SavedAt))
	assert.Equal(t, 3, got.StudentCount)
	assert.Equal(t, 4, got.CourseCount)
	assert.Equal(t, `{"enrollees":[],"courses":[]}`, got.Payload)
}

func TestCreateSnapshot_Duplicate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateSnapshot(ctx, newSnapshot("dup", time.Now())))
	err := repo.CreateSnapshot(ctx, newSnapshot("dup", time.Now()))

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDuplicateKey))
}

func TestGetSnapshot_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetSnapshot(context.Background(), "missing")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = repo.LatestSnapshot(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestListAndLatestSnapshots(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateSnapshot(ctx, newSnapshot("b", base.Add(time.Minute))))
	require.NoError(t, repo.CreateSnapshot(ctx, newSnapshot("a", base)))
	require.NoError(t, repo.CreateSnapshot(ctx, newSnapshot("c", base.Add(2*time.Minute))))

	list, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})

	latest, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", latest.ID)
}

func TestDeleteSnapshot(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateSnapshot(ctx, newSnapshot("gone", time.Now())))
	require.NoError(t, repo.DeleteSnapshot(ctx, "gone"))

	err := repo.DeleteSnapshot(ctx, "gone")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestMemoryRepositoryWithTimeout(t *testing.T) {
	repo, err := NewWithTimeout(":memory:", time.Second)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.CreateSnapshot(ctx, newSnapshot("m", time.Now())))

	list, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
