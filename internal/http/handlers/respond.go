package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"task-tracker/internal/http/dto"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, dto.ErrorResponse{Error: msg})
}

func writeServiceError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		slog.Error("task operation failed", "error", err)
	}
	writeError(w, code, publicMessage(code))
}
