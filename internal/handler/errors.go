package handler

import (
	"errors"
	"net/http"

	"work-ledger/internal/engine"
	"work-ledger/internal/logger"

	"github.com/gin-gonic/gin"
)

// writeEngineError maps the engine's error taxonomy to HTTP responses.
// Validation errors go back field-keyed so the UI can surface them next to
// the offending rows.
func writeEngineError(c *gin.Context, err error) {
	var (
		verrs     engine.ValidationErrors
		badTime   *engine.InvalidTimeFormatError
		badValue  *engine.InvalidFieldValueError
		blocked   *engine.AppendBlockedError
		immutable *engine.ImmutableFieldError
		locked    *engine.LockedEntryError
	)
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "validation": verrs})
	case errors.As(err, &badTime), errors.As(err, &immutable), errors.As(err, &badValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &blocked),
		errors.As(err, &locked),
		errors.Is(err, engine.ErrPermissionActive),
		errors.Is(err, engine.ErrSameTimestamp),
		errors.Is(err, engine.ErrLogSaved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrStaleData):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "stale": true})
	case errors.Is(err, engine.ErrEntryIndex):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
