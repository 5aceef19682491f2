package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"task-tracker/internal/service"
)

// Response describes what an HTML operation produced, independent of the
// ResponseWriter it is eventually written to.
type Response struct {
	Status   int
	Redirect string
	View     string
	Data     any
	Err      error
}

func redirectHome() Response {
	return Response{Status: http.StatusSeeOther, Redirect: "/"}
}

func failure(err error) Response {
	return Response{Status: statusFor(err), Err: err}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return service.ErrInvalidID.Error()
	case http.StatusNotFound:
		return service.ErrNotFound.Error()
	default:
		return http.StatusText(status)
	}
}

// parseID accepts positive base 10 ids only.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidID
	}
	return id, nil
}

func (h *TaskHandler) write(w http.ResponseWriter, r *http.Request, resp Response) {
	switch {
	case resp.Err != nil:
		if resp.Status >= http.StatusInternalServerError {
			slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", resp.Err)
		} else {
			slog.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", resp.Status, "error", resp.Err)
		}
		http.Error(w, publicMessage(resp.Status), resp.Status)

	case resp.Redirect != "":
		http.Redirect(w, r, resp.Redirect, resp.Status)

	default:
		var buf bytes.Buffer
		if err := h.renderer.Render(&buf, resp.View, resp.Data); err != nil {
			slog.Error("render failed", "view", resp.View, "error", err)
			http.Error(w, publicMessage(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(resp.Status)
		_, _ = buf.WriteTo(w)
	}
}
