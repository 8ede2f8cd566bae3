package domain

import (
	"encoding/json"

	"labkit/internal/repository/sqlite"
)

// SnapshotMapper handles conversion between domain and database snapshots.
type SnapshotMapper struct{}

// NewSnapshotMapper creates a new SnapshotMapper instance.
func NewSnapshotMapper() *SnapshotMapper {
	return &SnapshotMapper{}
}

type snapshotPayload struct {
	Enrollees []Enrollee `json:"enrollees"`
	Courses   []string   `json:"courses"`
}

// ToDatabase converts a domain snapshot to its stored row.
func (m *SnapshotMapper) ToDatabase(s PortalSnapshot) (sqlite.Snapshot, error) {
	payload, err := json.Marshal(snapshotPayload{Enrollees: s.Enrollees, Courses: s.Courses})
	if err != nil {
		return sqlite.Snapshot{}, err
	}
	return sqlite.Snapshot{
		ID:           s.ID,
		SavedAt:      s.SavedAt,
		StudentCount: len(s.Enrollees),
		CourseCount:  len(s.Courses),
		Payload:      string(payload),
	}, nil
}

// FromDatabase converts a stored row to a domain snapshot.
func (m *SnapshotMapper) FromDatabase(row sqlite.Snapshot) (PortalSnapshot, error) {
	var payload snapshotPayload
	if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
		return PortalSnapshot{}, err
	}
	return PortalSnapshot{
		ID:        row.ID,
		SavedAt:   row.SavedAt,
		Enrollees: payload.Enrollees,
		Courses:   payload.Courses,
	}, nil
}

// FromDatabaseSlice converts stored rows to domain snapshots.
func (m *SnapshotMapper) FromDatabaseSlice(rows []*sqlite.Snapshot) ([]PortalSnapshot, error) {
	snapshots := make([]PortalSnapshot, len(rows))
	for i, row := range rows {
		s, err := m.FromDatabase(*row)
		if err != nil {
			return nil, err
		}
		snapshots[i] = s
	}
	return snapshots, nil
}
