package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/models"
)

// ClassroomRepository manages persistence for classrooms and their embedded
// students and attendance records. Sub-document rows live in child tables
// keyed by classroom_id, so every student/attendance mutation is a single
// targeted statement rather than a read-modify-write of the whole aggregate.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository constructs a new classroom repository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// Create persists a classroom together with any initial students in one
// transaction.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	if classroom.ID == "" {
		classroom.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	classroom.CreatedAt = now
	classroom.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create classroom: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertClassroom = `INSERT INTO classrooms (id, name, start_year, end_year, image_url, created_by, created_at, updated_at)
		VALUES (:id, :name, :start_year, :end_year, :image_url, :created_by, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertClassroom, classroom); err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}

	const insertStudent = `INSERT INTO students (id, classroom_id, name, adm_no, image_url, created_at, updated_at)
		VALUES (:id, :classroom_id, :name, :adm_no, :image_url, :created_at, :updated_at)`
	for i := range classroom.Students {
		student := &classroom.Students[i]
		student.ClassroomID = classroom.ID
		student.CreatedAt = now
		student.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertStudent, student); err != nil {
			return fmt.Errorf("create classroom student: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create classroom: %w", err)
	}
	return nil
}

// FindByID loads the full classroom including its student and attendance
// sequences, ordered by insertion.
func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	const query = `SELECT id, name, start_year, end_year, image_url, created_by, created_at, updated_at FROM classrooms WHERE id = $1`
	var classroom models.Classroom
	if err := r.db.GetContext(ctx, &classroom, query, id); err != nil {
		return nil, err
	}

	const studentsQuery = `SELECT id, classroom_id, name, adm_no, image_url, created_at, updated_at FROM students WHERE classroom_id = $1 ORDER BY seq`
	classroom.Students = []models.Student{}
	if err := r.db.SelectContext(ctx, &classroom.Students, studentsQuery, id); err != nil {
		return nil, fmt.Errorf("load classroom students: %w", err)
	}

	const attendanceQuery = `SELECT id, classroom_id, day, presentees, created_at FROM attendance_records WHERE classroom_id = $1 ORDER BY seq`
	classroom.AttendanceRecords = []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &classroom.AttendanceRecords, attendanceQuery, id); err != nil {
		return nil, fmt.Errorf("load classroom attendance: %w", err)
	}

	return &classroom, nil
}

// ListByOwner returns summaries of the owner's classrooms, newest school year
// first. Sub-documents are never part of this projection.
func (r *ClassroomRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ClassroomSummary, error) {
	const query = `SELECT id, name, start_year, end_year, image_url FROM classrooms WHERE created_by = $1 ORDER BY end_year DESC`
	summaries := []models.ClassroomSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, ownerID); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return summaries, nil
}

// Update persists the mutable classroom fields. CreatedBy is never written.
func (r *ClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	classroom.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classrooms SET name = :name, start_year = :start_year, end_year = :end_year, image_url = :image_url, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, classroom); err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

// Delete removes the classroom row; students and attendance records cascade.
func (r *ClassroomRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM classrooms WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete classroom: %w", err)
	}
	return nil
}

// AddStudent appends a student to the classroom sequence in one statement.
func (r *ClassroomRepository) AddStudent(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, classroom_id, name, adm_no, image_url, created_at, updated_at)
		VALUES (:id, :classroom_id, :name, :adm_no, :image_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("add student: %w", err)
	}
	return nil
}

// UpdateStudent applies the patch to the matching student and reports how
// many rows matched.
func (r *ClassroomRepository) UpdateStudent(ctx context.Context, classroomID, studentID string, patch models.StudentPatch) (int64, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.AdmNo != nil {
		args = append(args, *patch.AdmNo)
		sets = append(sets, fmt.Sprintf("adm_no = $%d", len(args)))
	}
	if patch.ImageURL != nil {
		args = append(args, *patch.ImageURL)
		sets = append(sets, fmt.Sprintf("image_url = $%d", len(args)))
	}

	args = append(args, studentID)
	idPos := len(args)
	args = append(args, classroomID)
	classroomPos := len(args)

	query := fmt.Sprintf("UPDATE students SET %s WHERE id = $%d AND classroom_id = $%d",
		strings.Join(sets, ", "), idPos, classroomPos)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update student affected rows: %w", err)
	}
	return affected, nil
}

// DeleteStudent removes the matching student and reports how many rows matched.
func (r *ClassroomRepository) DeleteStudent(ctx context.Context, classroomID, studentID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1 AND classroom_id = $2`, studentID, classroomID)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete student affected rows: %w", err)
	}
	return affected, nil
}

// AddAttendance appends an attendance record to the classroom sequence.
func (r *ClassroomRepository) AddAttendance(ctx context.Context, record *models.AttendanceRecord) error {
	record.CreatedAt = time.Now().UTC()
	if record.Presentees == nil {
		record.Presentees = pq.StringArray{}
	}
	const query = `INSERT INTO attendance_records (id, classroom_id, day, presentees, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.ClassroomID, record.Day, record.Presentees, record.CreatedAt); err != nil {
		return fmt.Errorf("add attendance record: %w", err)
	}
	return nil
}

// DeleteAttendance removes the matching attendance record and reports how
// many rows matched.
func (r *ClassroomRepository) DeleteAttendance(ctx context.Context, classroomID, attendanceID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance_records WHERE id = $1 AND classroom_id = $2`, attendanceID, classroomID)
	if err != nil {
		return 0, fmt.Errorf("delete attendance record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete attendance affected rows: %w", err)
	}
	return affected, nil
}

// FindOwner returns just the created_by column for authorization checks on
// sub-document mutations, avoiding a full aggregate load.
func (r *ClassroomRepository) FindOwner(ctx context.Context, id string) (string, error) {
	var owner string
	if err := r.db.GetContext(ctx, &owner, `SELECT created_by FROM classrooms WHERE id = $1`, id); err != nil {
		return "", err
	}
	return owner, nil
}
