package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/middleware"
	"github.com/stemsi/qbank-backend/internal/model"
	"github.com/stemsi/qbank-backend/internal/response"
	"github.com/stemsi/qbank-backend/internal/service"
	"github.com/stemsi/qbank-backend/internal/validator"
)

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
	log             zerolog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService, log zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		log:             log.With().Str("component", "question_handler").Logger(),
	}
}

// ListQuestions godoc
// GET /api/v1/questions?course_id=&topic=&type=
// Lists the caller's questions in paper order.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	var filter model.QuestionFilter

	if raw := c.Query("course_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"course_id": "invalid course id"})
			return
		}
		filter.CourseID = id
	}
	filter.Topic = c.Query("topic")
	if raw := c.Query("type"); raw != "" {
		filter.QuestionType = model.QuestionType(raw)
		if !filter.QuestionType.Valid() {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"type": "unknown question type"})
			return
		}
	}

	questions, err := h.questionService.List(c.Request.Context(), middleware.OwnerID(c), filter)
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// GetQuestion godoc
// GET /api/v1/questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// CreateQuestion godoc
// POST /api/v1/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.QuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := req.ToQuestion(middleware.OwnerID(c))
	if err := h.questionService.Create(c.Request.Context(), question); err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Created(c, gin.H{"question": question})
}

// UpdateQuestion godoc
// PUT /api/v1/questions/:id
// Replaces every field of an owned question.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.QuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := req.ToQuestion(middleware.OwnerID(c))
	question.ID = id
	if err := h.questionService.Update(c.Request.Context(), question); err != nil {
		failFromService(c, h.log, err, response.ErrConflict)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// DeleteQuestion godoc
// DELETE /api/v1/questions/:id
// Questions used by a saved exam cannot be deleted.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		failFromService(c, h.log, err, response.ErrDependencyExists)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
