package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/models"
	appErrors "github.com/Sneha-511/auto-attendance-tracker-backend/pkg/errors"
	"github.com/Sneha-511/auto-attendance-tracker-backend/pkg/export"
)

type classroomRepository interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	FindOwner(ctx context.Context, id string) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.ClassroomSummary, error)
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id string) error
	AddStudent(ctx context.Context, student *models.Student) error
	UpdateStudent(ctx context.Context, classroomID, studentID string, patch models.StudentPatch) (int64, error)
	DeleteStudent(ctx context.Context, classroomID, studentID string) (int64, error)
	AddAttendance(ctx context.Context, record *models.AttendanceRecord) error
	DeleteAttendance(ctx context.Context, classroomID, attendanceID string) (int64, error)
}

type classroomCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StudentPayload describes a student supplied by the client. Identifiers are
// always generated server-side.
type StudentPayload struct {
	Name     string `json:"name" validate:"required"`
	AdmNo    string `json:"adm_no" validate:"required"`
	ImageURL string `json:"image_url" validate:"required"`
}

// CreateClassroomRequest captures the classroom creation payload.
type CreateClassroomRequest struct {
	Name      string           `json:"name" validate:"required"`
	StartYear int              `json:"start_year" validate:"required,min=1900,max=3000"`
	EndYear   int              `json:"end_year" validate:"required,min=1900,max=3000"`
	ImageURL  *string          `json:"image_url" validate:"omitempty,url"`
	Students  []StudentPayload `json:"students" validate:"dive"`
}

// AttendancePayload describes a new attendance record.
type AttendancePayload struct {
	Day        time.Time `json:"day" validate:"required"`
	Presentees []string  `json:"presentees"`
}

// ClassroomService holds every business rule for classrooms and their
// embedded students and attendance records.
type ClassroomService struct {
	repo      classroomRepository
	cache     classroomCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewClassroomService constructs a ClassroomService. Cache may be nil when
// the read cache is disabled.
func NewClassroomService(repo classroomRepository, cache classroomCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger, metrics: metrics}
}

// Create builds a new classroom owned by the caller. Initial students, when
// supplied, receive server-generated identifiers just like AddStudent.
func (s *ClassroomService) Create(ctx context.Context, req CreateClassroomRequest, claims *models.JWTClaims) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}
	if req.StartYear > req.EndYear {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end year must be greater than or equal to the start year")
	}

	classroom := &models.Classroom{
		Name:              req.Name,
		StartYear:         req.StartYear,
		EndYear:           req.EndYear,
		ImageURL:          req.ImageURL,
		CreatedBy:         claims.UserID,
		Students:          make([]models.Student, 0, len(req.Students)),
		AttendanceRecords: []models.AttendanceRecord{},
	}
	for _, payload := range req.Students {
		classroom.Students = append(classroom.Students, models.Student{
			ID:       uuid.NewString(),
			Name:     payload.Name,
			AdmNo:    payload.AdmNo,
			ImageURL: payload.ImageURL,
		})
	}

	if err := s.repo.Create(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
	}
	return classroom, nil
}

// List returns summaries of the caller's own classrooms, newest school year
// first. The owner filter is the only authorization this read needs.
func (s *ClassroomService) List(ctx context.Context, claims *models.JWTClaims) ([]models.ClassroomSummary, error) {
	summaries, err := s.repo.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}
	return summaries, nil
}

// Get returns the full classroom including embedded sequences. Open to any
// caller; served read-through from the cache when one is configured.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.Classroom, error) {
	key := classroomCacheKey(id)
	if s.cache != nil {
		start := time.Now()
		var cached models.Classroom
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true, time.Since(start))
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false, time.Since(start))
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("classroom cache read failed", zap.String("classroom_id", id), zap.Error(err))
		}
	}

	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, classroom, s.cacheTTL); err != nil {
			s.logger.Warn("classroom cache write failed", zap.String("classroom_id", id), zap.Error(err))
		}
	}
	return classroom, nil
}

// Update applies the patch to the classroom. Only the fields named by
// ClassroomPatch can change; ownership never does.
func (s *ClassroomService) Update(ctx context.Context, id string, patch models.ClassroomPatch, claims *models.JWTClaims) (*models.Classroom, error) {
	classroom, err := s.loadForManage(ctx, id, claims)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		classroom.Name = *patch.Name
	}
	if patch.StartYear != nil {
		classroom.StartYear = *patch.StartYear
	}
	if patch.EndYear != nil {
		classroom.EndYear = *patch.EndYear
	}
	if patch.ImageURL != nil {
		classroom.ImageURL = patch.ImageURL
	}

	if classroom.StartYear > classroom.EndYear {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end year must be greater than or equal to the start year")
	}

	if err := s.repo.Update(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update classroom")
	}
	s.invalidate(ctx, id)
	return classroom, nil
}

// Delete removes the classroom and, through the store, every embedded
// student and attendance record.
func (s *ClassroomService) Delete(ctx context.Context, id string, claims *models.JWTClaims) error {
	if _, err := s.authorizeOwner(ctx, id, claims); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete classroom")
	}
	s.invalidate(ctx, id)
	return nil
}

// AddStudent appends a student with a fresh identifier to the classroom.
func (s *ClassroomService) AddStudent(ctx context.Context, classroomID string, payload StudentPayload, claims *models.JWTClaims) (*models.Student, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.authorizeOwner(ctx, classroomID, claims); err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:          uuid.NewString(),
		ClassroomID: classroomID,
		Name:        payload.Name,
		AdmNo:       payload.AdmNo,
		ImageURL:    payload.ImageURL,
	}
	if err := s.repo.AddStudent(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add student")
	}
	s.invalidate(ctx, classroomID)
	return student, nil
}

// UpdateStudent applies a field-level patch to the matching student.
// An unmatched student identifier surfaces as NOT_FOUND.
func (s *ClassroomService) UpdateStudent(ctx context.Context, classroomID, studentID string, patch models.StudentPatch, claims *models.JWTClaims) error {
	if _, err := s.authorizeOwner(ctx, classroomID, claims); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return appErrors.Clone(appErrors.ErrValidation, "no student fields to update")
	}

	affected, err := s.repo.UpdateStudent(ctx, classroomID, studentID, patch)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.invalidate(ctx, classroomID)
	return nil
}

// DeleteStudent removes the matching student from the classroom sequence.
func (s *ClassroomService) DeleteStudent(ctx context.Context, classroomID, studentID string, claims *models.JWTClaims) error {
	if _, err := s.authorizeOwner(ctx, classroomID, claims); err != nil {
		return err
	}

	affected, err := s.repo.DeleteStudent(ctx, classroomID, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.invalidate(ctx, classroomID)
	return nil
}

// AddAttendance appends an attendance record with a fresh identifier.
// Presentees are not validated against the student roster; a dangling
// reference is tolerated.
func (s *ClassroomService) AddAttendance(ctx context.Context, classroomID string, payload AttendancePayload, claims *models.JWTClaims) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if _, err := s.authorizeOwner(ctx, classroomID, claims); err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		ID:          uuid.NewString(),
		ClassroomID: classroomID,
		Day:         payload.Day,
		Presentees:  pq.StringArray(payload.Presentees),
	}
	if err := s.repo.AddAttendance(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add attendance record")
	}
	s.invalidate(ctx, classroomID)
	return record, nil
}

// DeleteAttendance removes the matching attendance record.
func (s *ClassroomService) DeleteAttendance(ctx context.Context, classroomID, attendanceID string, claims *models.JWTClaims) error {
	if _, err := s.authorizeOwner(ctx, classroomID, claims); err != nil {
		return err
	}

	affected, err := s.repo.DeleteAttendance(ctx, classroomID, attendanceID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance record")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	}
	s.invalidate(ctx, classroomID)
	return nil
}

// ExportAttendance renders the classroom's attendance sequence as CSV or PDF.
func (s *ClassroomService) ExportAttendance(ctx context.Context, classroomID, format string) ([]byte, string, error) {
	classroom, err := s.Get(ctx, classroomID)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Day", "Present", "Presentees"},
		Rows:    make([]map[string]string, 0, len(classroom.AttendanceRecords)),
	}
	for _, record := range classroom.AttendanceRecords {
		data.Rows = append(data.Rows, map[string]string{
			"Day":        record.Day.Format("2006-01-02"),
			"Present":    fmt.Sprintf("%d", len(record.Presentees)),
			"Presentees": strings.Join(record.Presentees, " "),
		})
	}

	switch format {
	case "pdf":
		payload, err := export.NewPDFExporter().Render(data, fmt.Sprintf("Attendance - %s", classroom.Name))
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance pdf")
		}
		return payload, "application/pdf", nil
	case "", "csv":
		payload, err := export.NewCSVExporter().Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance csv")
		}
		return payload, "text/csv", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

// loadForManage loads the full classroom and enforces the ownership rule.
// Existence is checked first so a missing classroom is always NOT_FOUND,
// never FORBIDDEN.
func (s *ClassroomService) loadForManage(ctx context.Context, id string, claims *models.JWTClaims) (*models.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	if !CanManage(claims, classroom.CreatedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "forbidden")
	}
	return classroom, nil
}

// authorizeOwner resolves just the owner column and enforces the ownership
// rule, in the same existence-before-authorization order.
func (s *ClassroomService) authorizeOwner(ctx context.Context, id string, claims *models.JWTClaims) (string, error) {
	owner, err := s.repo.FindOwner(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	if !CanManage(claims, owner) {
		return "", appErrors.Clone(appErrors.ErrForbidden, "forbidden")
	}
	return owner, nil
}

func (s *ClassroomService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, classroomCacheKey(id)); err != nil {
		s.logger.Warn("classroom cache invalidation failed", zap.String("classroom_id", id), zap.Error(err))
	}
}

func classroomCacheKey(id string) string {
	return "classroom:" + id
}
