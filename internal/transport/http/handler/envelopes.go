package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/flexibill/internal/domain"
)

const statusSuccess = "success"

// BaseResponse is the envelope every successful JSON response uses.
type BaseResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Data    any    `json:"data"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func newBaseResponse(msg string, data any) BaseResponse {
	if data == nil {
		data = map[string]any{}
	}
	return BaseResponse{Message: msg, Status: statusSuccess, Code: http.StatusOK, Data: data}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, msg string, data any) {
	writeJSON(w, http.StatusOK, newBaseResponse(msg, data))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Detail: msg})
}

// httpError maps domain errors onto HTTP statuses. Anything unrecognised is
// logged and reported as a 500 without leaking its text.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid OTP or mobile number")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrDeliveryFailed):
		writeError(w, http.StatusBadGateway, "Could not deliver OTP")
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
