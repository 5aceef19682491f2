package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"task-tracker/internal/http/dto"

	"github.com/go-chi/chi/v5"
)

// GET /api/tasks
func (h *TaskHandler) APIList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		slog.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed getting tasks")
		return
	}

	writeJSON(w, http.StatusOK, dto.FromTasks(tasks))
}

// POST /api/tasks
func (h *TaskHandler) APICreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	// an empty body creates a task with empty fields, like the form does
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description)
	if err != nil {
		slog.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, dto.FromTask(task))
}

// POST /api/tasks/{id}/complete
func (h *TaskHandler) APIComplete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromTask(task))
}

// DELETE /api/tasks/{id}
func (h *TaskHandler) APIDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /healthz
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
