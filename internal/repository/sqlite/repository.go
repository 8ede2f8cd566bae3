package sqlite

import (
	"context"
	"database/sql"
	"time"

	"labkit/internal/errors"
	"labkit/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for snapshot persistence
type Repository interface {
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	ListSnapshots(ctx context.Context) ([]*Snapshot, error)
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error

	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithTimeout(dbPath, 0)
}

// NewWithTimeout creates a repository that bounds every query by queryTimeout.
// A zero timeout leaves queries bounded only by the caller's context.
func NewWithTimeout(dbPath string, queryTimeout time.Duration) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// one connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, queryTimeout: queryTimeout}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// CreateSnapshot stores a new snapshot; its id must be unique
func (r *SQLiteRepository) CreateSnapshot(ctx context.Context, snapshot *Snapshot) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO snapshots (id, saved_at, student_count, course_count, payload)
	VALUES (?, ?, ?, ?, ?)`

	return ExecuteInsert(ctx, r.db, query, "snapshot", snapshot.ID,
		snapshot.ID, FormatTimeForDB(snapshot.SavedAt), snapshot.StudentCount, snapshot.CourseCount, snapshot.Payload)
}

// GetSnapshot retrieves a snapshot by ID
func (r *SQLiteRepository) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT id, saved_at, student_count, course_count, payload
	FROM snapshots
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanSnapshot, "snapshot", id, id)
}

// ListSnapshots retrieves all snapshots, oldest first
func (r *SQLiteRepository) ListSnapshots(ctx context.Context) ([]*Snapshot, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT id, saved_at, student_count, course_count, payload
	FROM snapshots
	ORDER BY saved_at ASC, rowid ASC`

	return QueryMultiple(ctx, r.db, query, ScanSnapshots, "snapshots")
}

// LatestSnapshot retrieves the most recently saved snapshot
func (r *SQLiteRepository) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT id, saved_at, student_count, course_count, payload
	FROM snapshots
	ORDER BY saved_at DESC, rowid DESC
	LIMIT 1`

	return QuerySingle(ctx, r.db, query, ScanSnapshot, "snapshot", "latest")
}

// DeleteSnapshot deletes a snapshot by ID
func (r *SQLiteRepository) DeleteSnapshot(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM snapshots WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "snapshot", id, id)
}
