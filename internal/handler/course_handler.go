package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/middleware"
	"github.com/stemsi/qbank-backend/internal/model"
	"github.com/stemsi/qbank-backend/internal/response"
	"github.com/stemsi/qbank-backend/internal/service"
	"github.com/stemsi/qbank-backend/internal/validator"
)

// CourseHandler handles course endpoints.
type CourseHandler struct {
	courseService *service.CourseService
	log           zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		log:           log.With().Str("component", "course_handler").Logger(),
	}
}

// ListCourses godoc
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// CreateCourse godoc
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), middleware.OwnerID(c), req.Name)
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Created(c, gin.H{"course": course})
}

// DeleteCourse godoc
// DELETE /api/v1/courses/:id
// Courses that still hold questions cannot be deleted.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		failFromService(c, h.log, err, response.ErrDependencyExists)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
