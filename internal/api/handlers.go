package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"taskboard/internal/errors"
	"taskboard/internal/services"
)

type taskHandler struct {
	tasks  services.TaskService
	logger *log.Logger
}

// list handles GET /api/tasks
func (h *taskHandler) list(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// get handles GET /api/tasks/{id}
func (h *taskHandler) get(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// create handles POST /api/tasks
func (h *taskHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, decodeError(err))
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req.toInput())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// update handles PATCH /api/tasks/{id}
func (h *taskHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, decodeError(err))
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// delete handles DELETE /api/tasks/{id}
func (h *taskHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Task deleted successfully", ID: id})
}

func (h *taskHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, errors.NewNotFoundError("route", r.Method+" "+r.URL.Path))
}

func (h *taskHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error:   "METHOD_NOT_ALLOWED",
		Message: r.Method + " is not supported on " + r.URL.Path,
	})
}
