package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/models"
	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/service"
	appErrors "github.com/Sneha-511/auto-attendance-tracker-backend/pkg/errors"
	"github.com/Sneha-511/auto-attendance-tracker-backend/pkg/response"
)

type classroomService interface {
	Create(ctx context.Context, req service.CreateClassroomRequest, claims *models.JWTClaims) (*models.Classroom, error)
	List(ctx context.Context, claims *models.JWTClaims) ([]models.ClassroomSummary, error)
	Get(ctx context.Context, id string) (*models.Classroom, error)
	Update(ctx context.Context, id string, patch models.ClassroomPatch, claims *models.JWTClaims) (*models.Classroom, error)
	Delete(ctx context.Context, id string, claims *models.JWTClaims) error
	AddStudent(ctx context.Context, classroomID string, payload service.StudentPayload, claims *models.JWTClaims) (*models.Student, error)
	UpdateStudent(ctx context.Context, classroomID, studentID string, patch models.StudentPatch, claims *models.JWTClaims) error
	DeleteStudent(ctx context.Context, classroomID, studentID string, claims *models.JWTClaims) error
	AddAttendance(ctx context.Context, classroomID string, payload service.AttendancePayload, claims *models.JWTClaims) (*models.AttendanceRecord, error)
	DeleteAttendance(ctx context.Context, classroomID, attendanceID string, claims *models.JWTClaims) error
	ExportAttendance(ctx context.Context, classroomID, format string) ([]byte, string, error)
}

// ClassroomHandler exposes classroom, student and attendance endpoints.
type ClassroomHandler struct {
	service classroomService
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(svc classroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

// Create godoc
// @Summary Create classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateClassroomRequest true "Classroom payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req service.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	classroom, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, classroom)
}

// List godoc
// @Summary List the caller's classrooms
// @Tags Classrooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	summaries, err := h.service.List(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries)
}

// Get godoc
// @Summary Get classroom with students and attendance
// @Tags Classrooms
// @Produce json
// @Param classroomId path string true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{classroomId} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	classroom, err := h.service.Get(c.Request.Context(), c.Param("classroomId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// Update godoc
// @Summary Update classroom fields
// @Tags Classrooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classroomId path string true "Classroom ID"
// @Param payload body models.ClassroomPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{classroomId} [patch]
func (h *ClassroomHandler) Update(c *gin.Context) {
	var patch models.ClassroomPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	classroom, err := h.service.Update(c.Request.Context(), c.Param("classroomId"), patch, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// Delete godoc
// @Summary Delete classroom
// @Tags Classrooms
// @Produce json
// @Security BearerAuth
// @Param classroomId path string true "Classroom ID"
// @Success 204
// @Router /classrooms/{classroomId} [delete]
func (h *ClassroomHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("classroomId"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddStudent godoc
// @Summary Add student to classroom
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classroomId path string true "Classroom ID"
// @Param payload body service.StudentPayload true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms/{classroomId}/students [post]
func (h *ClassroomHandler) AddStudent(c *gin.Context) {
	var payload service.StudentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.service.AddStudent(c.Request.Context(), c.Param("classroomId"), payload, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// UpdateStudent godoc
// @Summary Update student in classroom
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classroomId path string true "Classroom ID"
// @Param studentId path string true "Student ID"
// @Param payload body models.StudentPatch true "Fields to change"
// @Success 204
// @Router /classrooms/{classroomId}/students/{studentId} [patch]
func (h *ClassroomHandler) UpdateStudent(c *gin.Context) {
	var patch models.StudentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.UpdateStudent(c.Request.Context(), c.Param("classroomId"), c.Param("studentId"), patch, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteStudent godoc
// @Summary Remove student from classroom
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param classroomId path string true "Classroom ID"
// @Param studentId path string true "Student ID"
// @Success 204
// @Router /classrooms/{classroomId}/students/{studentId} [delete]
func (h *ClassroomHandler) DeleteStudent(c *gin.Context) {
	if err := h.service.DeleteStudent(c.Request.Context(), c.Param("classroomId"), c.Param("studentId"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddAttendance godoc
// @Summary Add attendance record to classroom
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classroomId path string true "Classroom ID"
// @Param payload body service.AttendancePayload true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms/{classroomId}/attendance [post]
func (h *ClassroomHandler) AddAttendance(c *gin.Context) {
	var payload service.AttendancePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.AddAttendance(c.Request.Context(), c.Param("classroomId"), payload, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// DeleteAttendance godoc
// @Summary Remove attendance record from classroom
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param classroomId path string true "Classroom ID"
// @Param attendanceId path string true "Attendance record ID"
// @Success 204
// @Router /classrooms/{classroomId}/attendance/{attendanceId} [delete]
func (h *ClassroomHandler) DeleteAttendance(c *gin.Context) {
	if err := h.service.DeleteAttendance(c.Request.Context(), c.Param("classroomId"), c.Param("attendanceId"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportAttendance godoc
// @Summary Export classroom attendance as CSV or PDF
// @Tags Attendance
// @Produce text/csv
// @Param classroomId path string true "Classroom ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200
// @Router /classrooms/{classroomId}/attendance/export [get]
func (h *ClassroomHandler) ExportAttendance(c *gin.Context) {
	payload, contentType, err := h.service.ExportAttendance(c.Request.Context(), c.Param("classroomId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, payload)
}
