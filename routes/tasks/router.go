// Task CRUD endpoints, the thin surface the reminder subsystem feeds from.
package tasks

import (
	"errors"
	"net/http"

	"lifeos/api"
	taskstore "lifeos/tasks"
	"lifeos/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Router struct {
	Store     taskstore.Store
	Validator *validator.Validate
	Logger    *zap.SugaredLogger
}

func (b Router) Routes(r chi.Router) {
	r.Get("/tasks", b.list)
	r.Post("/tasks", b.create)
	r.Post("/tasks/{id}/complete", b.complete)
}

func (b Router) list(w http.ResponseWriter, r *http.Request) {
	list, err := b.Store.List(r.Context())

	if err != nil {
		b.Logger.Errorw("Error listing tasks", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Error listing tasks")
		return
	}

	if list == nil {
		list = []types.Task{}
	}

	api.WriteJSON(w, http.StatusOK, list)
}

func (b Router) create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTask

	err := json.NewDecoder(r.Body).Decode(&req)

	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = b.Validator.Struct(req)

	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid task: "+err.Error())
		return
	}

	task, err := b.Store.Create(r.Context(), req)

	if err != nil {
		b.Logger.Errorw("Error creating task", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Error creating task")
		return
	}

	api.WriteJSON(w, http.StatusCreated, task)
}

func (b Router) complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := b.Store.SetCompleted(r.Context(), id, true)

	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "Task not found")
			return
		}

		b.Logger.Errorw("Error completing task", "error", err, "task_id", id)
		api.WriteError(w, http.StatusInternalServerError, "Error completing task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
