package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"labkit/internal/domain"
	"labkit/internal/errors"
	"labkit/internal/render"
)

var recordSeed = []domain.StudentRecord{
	{Name: "Abdullah Fawad", Age: 22, Semester: 6, Courses: []string{"Full-Stack Development", "AI & ML", "DevOps"}},
	{Name: "Sara Khan", Age: 20, Semester: 3, Courses: []string{"Data Structures", "OOP", "Linear Algebra"}},
	{Name: "Usman Tariq", Age: 23, Semester: 7, Courses: []string{"Machine Learning", "Cloud Computing", "Software Engineering"}},
}

// RecordCard is one rendered student card.
type RecordCard struct {
	domain.StudentRecord
	Initial  string `json:"initial"`
	AgeText  string `json:"ageText"`
	JSON     string `json:"json"`
	JSONSize int    `json:"jsonSize"`
}

// RecordStats summarises the record set.
type RecordStats struct {
	Students        int    `json:"students"`
	DistinctCourses int    `json:"distinctCourses"`
	AverageAge      string `json:"averageAge"`
	JSONSize        int    `json:"jsonSize"`
	RecordBadge     string `json:"recordBadge"`
}

// RecordsReport is the full serialization demo output.
type RecordsReport struct {
	Cards   []RecordCard `json:"cards"`
	Stats   RecordStats  `json:"stats"`
	Pretty  string       `json:"pretty"`
	Compact string       `json:"compact"`
}

// Records is the JSON round trip exercise over three fixed student records.
type Records struct {
	records []domain.StudentRecord
}

// NewRecords creates the exercise with its seed records.
func NewRecords() *Records {
	return &Records{records: recordSeed}
}

// marshalJSON encodes without HTML escaping, so "AI & ML" stays readable.
func marshalJSON(v interface{}, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encode serializes one record as compact JSON.
func (r *Records) Encode(record domain.StudentRecord) ([]byte, error) {
	data, err := marshalJSON(record, false)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode student record")
	}
	return data, nil
}

// Decode parses one record. Unknown fields are rejected.
func (r *Records) Decode(data []byte) (domain.StudentRecord, error) {
	var record domain.StudentRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&record); err != nil {
		return domain.StudentRecord{}, errors.NewInvalidInputError("json", string(data), fmt.Sprintf("invalid student record: %v", err))
	}
	return record, nil
}

// RoundTrip encodes and decodes every record.
func (r *Records) RoundTrip() ([]domain.StudentRecord, error) {
	out := make([]domain.StudentRecord, 0, len(r.records))
	for _, record := range r.records {
		data, err := r.Encode(record)
		if err != nil {
			return nil, err
		}
		parsed, err := r.Decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// Report round-trips the records and renders cards, stats and both JSON forms.
func (r *Records) Report() (*RecordsReport, error) {
	parsed, err := r.RoundTrip()
	if err != nil {
		return nil, err
	}

	compact, err := marshalJSON(parsed, false)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode student records")
	}
	pretty, err := marshalJSON(parsed, true)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode student records")
	}

	report := &RecordsReport{Pretty: string(pretty), Compact: string(compact)}
	var courses []string
	ages := make([]float64, 0, len(parsed))
	for _, record := range parsed {
		data, err := r.Encode(record)
		if err != nil {
			return nil, err
		}
		initial := ""
		for _, ch := range record.Name {
			initial = string(ch)
			break
		}
		report.Cards = append(report.Cards, RecordCard{
			StudentRecord: record,
			Initial:       initial,
			AgeText:       fmt.Sprintf("%d years old", record.Age),
			JSON:          string(data),
			JSONSize:      len(data),
		})
		courses = append(courses, record.Courses...)
		ages = append(ages, float64(record.Age))
	}

	report.Stats = RecordStats{
		Students:        len(parsed),
		DistinctCourses: len(render.Distinct(courses)),
		AverageAge:      render.Fixed(render.Average(ages), 1),
		JSONSize:        len(compact),
		RecordBadge:     render.Plural(len(parsed), "record", "records"),
	}
	return report, nil
}
