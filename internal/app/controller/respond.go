package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bizdir-backend/internal/app/service"
	apperrors "github.com/ikkim/bizdir-backend/internal/errors"
	"github.com/ikkim/bizdir-backend/internal/middleware"
)

// respondWithServiceError turns field errors and rejected ratings into a 400
// and anything else into a generic 500 that does not leak storage details.
func respondWithServiceError(c *gin.Context, err error, operation string) {
	log := middleware.GetLoggerFromContext(c)

	var invalid *service.InvalidInputError
	if errors.As(err, &invalid) {
		log.Warn("Rejected invalid input", map[string]interface{}{
			"operation": operation,
			"fields":    invalid.Fields,
		})
		apperrors.RespondWithValidationError(c, invalid.Fields)
		return
	}

	log.Error("Request failed", err, map[string]interface{}{
		"operation": operation,
	})
	info := apperrors.ParseError(err, operation)
	switch info.Code {
	case apperrors.ReviewInvalidRating:
		apperrors.BadRequest(c, info.Code, info.Message)
	case apperrors.InternalDatabaseError, apperrors.InternalServerError:
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	default:
		// not-found and conflicts are mapped by the handlers before this point
		apperrors.InternalError(c, "")
	}
}
