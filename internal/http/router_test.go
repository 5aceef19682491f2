package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"task-tracker/internal/http/dto"
	"testing"

	approuter "task-tracker/internal/http"
	"task-tracker/internal/http/handlers"
	"task-tracker/internal/http/render"
	"task-tracker/internal/service"
	"task-tracker/internal/store/memory"
)

func newApp(t *testing.T) http.Handler {
	t.Helper()

	svc, err := service.New(memory.New())
	if err != nil {
		t.Fatalf("service.New err=%v", err)
	}
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New err=%v", err)
	}

	return approuter.New(handlers.New(svc, renderer))
}

func do(t *testing.T, h http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)
	return rr
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body err=%v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)
	return rr
}

func listAPI(t *testing.T, h http.Handler) []dto.TaskResponse {
	t.Helper()

	rr := doJSON(t, h, http.MethodGet, "/api/tasks", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d body=%s", rr.Code, rr.Body.String())
	}
	var out []dto.TaskResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode err=%v", err)
	}
	return out
}

func assertRedirectHome(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status=%d, want %d body=%s", rr.Code, http.StatusSeeOther, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("Location=%q, want /", loc)
	}
}

func TestHTML_Lifecycle(t *testing.T) {
	app := newApp(t)

	rr := do(t, app, http.MethodPost, "/", url.Values{"title": {"Buy milk"}, "description": {"2%"}})
	assertRedirectHome(t, rr)

	page := do(t, app, http.MethodGet, "/", nil)
	if page.Code != http.StatusOK {
		t.Fatalf("index status=%d", page.Code)
	}
	if !strings.Contains(page.Body.String(), "Buy milk") {
		t.Fatalf("index does not list the task:\n%s", page.Body.String())
	}

	tasks := listAPI(t, app)
	if len(tasks) != 1 || tasks[0].Completed || tasks[0].Description != "2%" {
		t.Fatalf("tasks=%+v, want one open task", tasks)
	}
	id := strconv.FormatInt(tasks[0].ID, 10)

	assertRedirectHome(t, do(t, app, http.MethodPost, "/complete/"+id, nil))
	if tasks = listAPI(t, app); !tasks[0].Completed {
		t.Fatalf("tasks=%+v, want completed", tasks)
	}

	// completing again is still a redirect
	assertRedirectHome(t, do(t, app, http.MethodGet, "/complete/"+id, nil))

	assertRedirectHome(t, do(t, app, http.MethodPost, "/delete/"+id, nil))
	if tasks = listAPI(t, app); len(tasks) != 0 {
		t.Fatalf("tasks=%+v, want empty", tasks)
	}

	if rr := do(t, app, http.MethodPost, "/delete/"+id, nil); rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHTML_CreateWithoutFields(t *testing.T) {
	app := newApp(t)

	assertRedirectHome(t, do(t, app, http.MethodPost, "/", url.Values{}))

	tasks := listAPI(t, app)
	if len(tasks) != 1 || tasks[0].Title != "" || tasks[0].Description != "" {
		t.Fatalf("tasks=%+v, want one task with empty fields", tasks)
	}
}

func TestHTML_MissingTask_404(t *testing.T) {
	app := newApp(t)

	for _, path := range []string{"/complete/999", "/delete/999"} {
		rr := do(t, app, http.MethodPost, path, nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s status=%d, want %d", path, rr.Code, http.StatusNotFound)
		}
	}
}

func TestHTML_InvalidID_400(t *testing.T) {
	app := newApp(t)

	rr := do(t, app, http.MethodGet, "/complete/nope", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestAPI_CreateCompleteDelete(t *testing.T) {
	app := newApp(t)

	rr := doJSON(t, app, http.MethodPost, "/api/tasks", map[string]any{
		"title":       "T1",
		"description": "D1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d, want %d body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var created dto.TaskResponse
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("decode err=%v", err)
	}
	if created.ID <= 0 || created.Completed {
		t.Fatalf("created=%+v, want id > 0 and open", created)
	}
	id := strconv.FormatInt(created.ID, 10)

	rr = doJSON(t, app, http.MethodPost, "/api/tasks/"+id+"/complete", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("complete status=%d body=%s", rr.Code, rr.Body.String())
	}
	var done dto.TaskResponse
	_ = json.NewDecoder(rr.Body).Decode(&done)
	if !done.Completed {
		t.Fatalf("done=%+v, want completed", done)
	}

	rr = doJSON(t, app, http.MethodDelete, "/api/tasks/"+id, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, app, http.MethodDelete, "/api/tasks/"+id, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d, want %d", rr.Code, http.StatusNotFound)
	}
	var errBody dto.ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&errBody)
	if errBody.Error != service.ErrNotFound.Error() {
		t.Fatalf("error=%q, want %q", errBody.Error, service.ErrNotFound.Error())
	}
}

func TestAPI_InvalidJSON_400(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader("{bad json}"))
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d body=%s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestAPI_CreateEmptyBody(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d, want %d body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	tasks := listAPI(t, app)
	if len(tasks) != 1 || tasks[0].Title != "" || tasks[0].Description != "" {
		t.Fatalf("tasks=%+v, want one task with empty fields", tasks)
	}
}

func TestAPI_CompleteMissing_404(t *testing.T) {
	app := newApp(t)

	rr := doJSON(t, app, http.MethodPost, "/api/tasks/12345/complete", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHealth(t *testing.T) {
	app := newApp(t)

	rr := do(t, app, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusOK)
	}
}
