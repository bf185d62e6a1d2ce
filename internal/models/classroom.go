package models

import (
	"time"

	"github.com/lib/pq"
)

// Classroom is the aggregate root: students and attendance records exist only
// inside a classroom and are reachable solely through it.
type Classroom struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartYear int       `db:"start_year" json:"start_year"`
	EndYear   int       `db:"end_year" json:"end_year"`
	ImageURL  *string   `db:"image_url" json:"image_url,omitempty"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Students          []Student          `db:"-" json:"students"`
	AttendanceRecords []AttendanceRecord `db:"-" json:"attendance_records"`
}

// ClassroomSummary is the projection returned by owner-scoped listings.
// Embedded students and attendance records are deliberately omitted.
type ClassroomSummary struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	StartYear int     `db:"start_year" json:"start_year"`
	EndYear   int     `db:"end_year" json:"end_year"`
	ImageURL  *string `db:"image_url" json:"image_url,omitempty"`
}

// Student is a classroom sub-document. Its identifier is generated by the
// service at insertion time, never supplied by the client.
type Student struct {
	ID          string    `db:"id" json:"id"`
	ClassroomID string    `db:"classroom_id" json:"-"`
	Name        string    `db:"name" json:"name"`
	AdmNo       string    `db:"adm_no" json:"adm_no"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AttendanceRecord is a classroom sub-document keyed by day. Presentees hold
// student identifiers; dangling references are tolerated.
type AttendanceRecord struct {
	ID          string         `db:"id" json:"id"`
	ClassroomID string         `db:"classroom_id" json:"-"`
	Day         time.Time      `db:"day" json:"day"`
	Presentees  pq.StringArray `db:"presentees" json:"presentees"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// ClassroomPatch names the only classroom fields an update may touch.
// CreatedBy is intentionally absent so ownership can never change.
type ClassroomPatch struct {
	Name      *string `json:"name"`
	StartYear *int    `json:"start_year"`
	EndYear   *int    `json:"end_year"`
	ImageURL  *string `json:"image_url"`
}

// StudentPatch names the student fields an update may touch.
type StudentPatch struct {
	Name     *string `json:"name"`
	AdmNo    *string `json:"adm_no"`
	ImageURL *string `json:"image_url"`
}

// IsEmpty reports whether the patch changes nothing.
func (p StudentPatch) IsEmpty() bool {
	return p.Name == nil && p.AdmNo == nil && p.ImageURL == nil
}
