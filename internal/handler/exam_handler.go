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

// ExamHandler handles exam paper endpoints.
type ExamHandler struct {
	examService *service.ExamService
	log         zerolog.Logger
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, log zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		examService: examService,
		log:         log.With().Str("component", "exam_handler").Logger(),
	}
}

// ListExams godoc
// GET /api/v1/exams?q=
// Lists the caller's saved exams, newest first.
func (h *ExamHandler) ListExams(c *gin.Context) {
	exams, err := h.examService.List(c.Request.Context(), middleware.OwnerID(c), c.Query("q"))
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// CreateExam godoc
// POST /api/v1/exams
// Assembles the selection, saves it atomically and returns the stored paper.
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ownerID := middleware.OwnerID(c)
	id, err := h.examService.Create(c.Request.Context(), ownerID, req.Title, req.QuestionIDs)
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	exam, err := h.examService.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Created(c, gin.H{"exam": exam})
}

// GetExam godoc
// GET /api/v1/exams/:id
func (h *ExamHandler) GetExam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	exam, err := h.examService.Get(c.Request.Context(), id, middleware.OwnerID(c))
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// DeleteExam godoc
// DELETE /api/v1/exams/:id
// Removes the paper and its question links in one transaction.
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), id, middleware.OwnerID(c)); err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
