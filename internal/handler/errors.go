package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/response"
	"github.com/stemsi/qbank-backend/internal/service"
)

// parseID reads a positive int64 path parameter. It writes the 400 itself.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// failFromService maps a service error onto the response envelope.
// conflict selects between CONFLICT and DEPENDENCY_EXISTS.
func failFromService(c *gin.Context, log zerolog.Logger, err error, conflict response.ErrCode) {
	var (
		ve *service.ValidationError
		ce *service.ConflictError
		pe *service.PersistenceError
	)

	switch {
	case errors.As(err, &ve):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{ve.Field: ve.Reason})
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.As(err, &ce):
		response.FailWithMessage(c, http.StatusConflict, conflict, ce.Reason)
	case errors.As(err, &pe):
		log.Error().Err(pe.Err).Str("op", pe.Op).Str("request_id", response.RequestID(c)).Msg("Persistence failure")
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrPersistenceFailed, pe.Error())
	default:
		log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Unhandled error")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
