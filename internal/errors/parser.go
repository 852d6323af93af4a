package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a message that is safe to show to clients
type ErrorInfo struct {
	Code    string
	Message string
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// gorm translates driver errors when TranslateError is set; the string checks
// cover connections opened without it.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate key") ||
		strings.Contains(lower, "unique constraint") ||
		strings.Contains(lower, "sqlstate 23505")
}

// ParseError maps storage errors to client-facing codes without leaking internals.
// context names the operation, e.g. "create business".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	if IsDuplicateKey(err) {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "slug") {
			return ErrorInfo{Code: BusinessSlugExists, Message: "This listing identifier is already in use"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
	}

	// reviews.rating is the only checked column
	lower := strings.ToLower(err.Error())
	if errors.Is(err, gorm.ErrCheckConstraintViolated) ||
		(strings.Contains(lower, "check constraint") && strings.Contains(lower, "rating")) {
		return ErrorInfo{Code: ReviewInvalidRating, Message: "Rating must be between 1 and 5"}
	}

	if strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The service is temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "business"):
		return "Business not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found"
	case strings.Contains(contextLower, "city"):
		return "City not found"
	}
	return "The requested resource was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "submit") {
		return "We could not save your submission. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "We could not save your changes. Please try again later"
	}
	return "Something went wrong. Please try again later"
}
