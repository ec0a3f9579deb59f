package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/record"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

const internalErrorMessage = "internal server error"

// envelope is the body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, envelope{Success: true, Data: data})
}

func writeMessage(ctx context.Context, w http.ResponseWriter, status int, message string) {
	ctx, span := startSpan(ctx, "httpapi.writeMessage")
	defer span.End()

	writeJSON(ctx, w, status, envelope{Success: true, Message: message})
}

// writeError maps err onto a status. Unclassified errors are reported as a
// generic internal error so storage details never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status := mapError(ctx, err)
	if status == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}
	writeJSON(ctx, w, status, envelope{Success: false, Error: err.Error()})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, envelope{Success: false, Error: internalErrorMessage})
}

func mapError(ctx context.Context, err error) int {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case crerr.Is(err, usecase.ErrInvalidInput), crerr.Is(err, record.ErrInvalidField):
		return http.StatusBadRequest
	case crerr.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case crerr.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case crerr.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case crerr.Is(err, usecase.ErrConflict):
		return http.StatusConflict
	case crerr.Is(err, usecase.ErrDependencyUnavailable), crerr.Is(err, database.ErrConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
