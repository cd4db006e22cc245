package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/recruit-pipeline/internal/usecase"
)

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Details []usecase.ValidationError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[HTTP] failed to encode response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps use case errors to status codes. Anything untyped is a 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, domainStatus(de.Code), ErrorResponse{Error: de.Code, Message: de.Message, Details: de.Details})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		log.Printf("[HTTP] %s: %v", te.Code, te)
		status := http.StatusInternalServerError
		if te.Code == usecase.CodeQueue {
			status = http.StatusServiceUnavailable
		}
		writeErrorResponse(w, status, te.Code, te.Message)
		return
	}

	log.Printf("[HTTP] unexpected error: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeAutomationDisabled:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
