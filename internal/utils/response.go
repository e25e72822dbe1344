package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
)

type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Name    string            `json:"name"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSONSuccess writes the {success, message, data} envelope.
func JSONSuccess(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// JSONError is the single translation point from error values to HTTP
// responses. Anything outside the taxonomy becomes a 500.
func JSONError(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status())
	json.NewEncoder(w).Encode(errorEnvelope{
		Success: false,
		Message: headline(appErr),
		Error: errorBody{
			Name:    string(appErr.Kind),
			Message: appErr.Message,
			Errors:  appErr.Fields,
		},
	})
}

func headline(e *apperrors.Error) string {
	switch e.Kind {
	case apperrors.KindValidation, apperrors.KindDuplicateKey:
		return "Validation failed"
	case apperrors.KindInvalidIdentifier:
		return "Invalid book ID format"
	case apperrors.KindNotFound:
		return "Book not found"
	case apperrors.KindMissingFields:
		return "Missing required fields"
	case apperrors.KindInsufficientCopies:
		return "Not enough copies available"
	case apperrors.KindStorage:
		return "Database connection failed"
	default:
		return "Internal server error"
	}
}
