package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/beldeveloper/repo-keeper/controller"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/julienschmidt/httprouter"
)

// NewHandler creates a new instance of the REST API handler.
func NewHandler(c controller.Service) Handler {
	return Handler{c: c}
}

// Handler handles the REST API requests.
type Handler struct {
	c controller.Service
}

// AddComponent registers a new component and enqueues its initial sync.
func (h Handler) AddComponent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var f model.FormAddComponent
	err := json.NewDecoder(r.Body).Decode(&f)
	if err != nil {
		apiError(w, model.ErrBadInput)
		return
	}
	res, err := h.c.AddComponent(r.Context(), f)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// Components returns the list of components.
func (h Handler) Components(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.c.Components(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// RemoveComponent enqueues the removal of the component.
func (h Handler) RemoveComponent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.ParseUint(ps.ByName("id"), 10, 64)
	if err != nil {
		apiError(w, model.ErrBadInput)
		return
	}
	actor := r.Header.Get("X-Actor")
	res, err := h.c.RemoveComponent(r.Context(), id, actor)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// ComponentAlerts returns the active alerts of the component.
func (h Handler) ComponentAlerts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.ParseUint(ps.ByName("id"), 10, 64)
	if err != nil {
		apiError(w, model.ErrBadInput)
		return
	}
	res, err := h.c.ComponentAlerts(r.Context(), id)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// SubmitTask enqueues a new task.
func (h Handler) SubmitTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var f model.FormSubmitTask
	err := json.NewDecoder(r.Body).Decode(&f)
	if err != nil {
		apiError(w, model.ErrBadInput)
		return
	}
	res, err := h.c.SubmitTask(r.Context(), f)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// Tasks returns the list of tasks.
func (h Handler) Tasks(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.c.Tasks(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}
