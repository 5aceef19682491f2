package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"task-tracker/internal/domain"
	"task-tracker/internal/http/render"

	"github.com/go-chi/chi/v5"
)

const maxFormMemory = 1 << 20

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, title, description string) (domain.Task, error)
	CompleteTask(ctx context.Context, id int64) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

type TaskHandler struct {
	taskService TaskService
	renderer    Renderer
}

func New(taskService TaskService, renderer Renderer) *TaskHandler {
	return &TaskHandler{taskService: taskService, renderer: renderer}
}

// IndexData is what the listing view is rendered with.
type IndexData struct {
	Tasks []domain.Task
}

// HandleIndex lists tasks, or creates one when the request is a form post.
// Missing form fields are stored as empty strings.
func (h *TaskHandler) HandleIndex(ctx context.Context, method string, form url.Values) Response {
	if method == http.MethodPost {
		if _, err := h.taskService.CreateTask(ctx, form.Get("title"), form.Get("description")); err != nil {
			return failure(err)
		}
		return redirectHome()
	}

	tasks, err := h.taskService.ListTasks(ctx)
	if err != nil {
		return failure(err)
	}
	return Response{
		Status: http.StatusOK,
		View:   render.IndexView,
		Data:   IndexData{Tasks: tasks},
	}
}

func (h *TaskHandler) HandleComplete(ctx context.Context, rawID string) Response {
	id, err := parseID(rawID)
	if err != nil {
		return failure(err)
	}
	if _, err := h.taskService.CompleteTask(ctx, id); err != nil {
		return failure(err)
	}
	return redirectHome()
}

func (h *TaskHandler) HandleDelete(ctx context.Context, rawID string) Response {
	id, err := parseID(rawID)
	if err != nil {
		return failure(err)
	}
	if err := h.taskService.DeleteTask(ctx, id); err != nil {
		return failure(err)
	}
	return redirectHome()
}

// GET, POST /
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.write(w, r, h.HandleIndex(r.Context(), r.Method, r.PostForm))
}

// parseForm fills r.PostForm from urlencoded and multipart bodies alike.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// /complete/{id}
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.HandleComplete(r.Context(), chi.URLParam(r, "id")))
}

// /delete/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.HandleDelete(r.Context(), chi.URLParam(r, "id")))
}
