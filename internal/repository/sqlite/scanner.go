package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSnapshot scans a single snapshot from a database row
func ScanSnapshot(scanner Scanner) (*Snapshot, error) {
	snapshot := &Snapshot{}
	var savedAt string

	err := scanner.Scan(
		&snapshot.ID,
		&savedAt,
		&snapshot.StudentCount,
		&snapshot.CourseCount,
		&snapshot.Payload,
	)
	if err != nil {
		return nil, err
	}

	snapshot.SavedAt, err = ParseTimeFromDB(savedAt)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// ScanSnapshots scans multiple snapshots from database rows
func ScanSnapshots(rows Rows) ([]*Snapshot, error) {
	var snapshots []*Snapshot
	for rows.Next() {
		snapshot, err := ScanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}
