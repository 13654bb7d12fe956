package rest

import (
	"net/http"

	"github.com/beldeveloper/repo-keeper/controller"
	"github.com/julienschmidt/httprouter"
)

// CreateRouter creates and configures a new instance of the router.
func CreateRouter(c controller.Service) *httprouter.Router {
	h := NewHandler(c)
	r := httprouter.New()

	r.POST("/components", h.AddComponent)
	r.GET("/components", h.Components)
	r.DELETE("/components/:id", h.RemoveComponent)
	r.GET("/components/:id/alerts", h.ComponentAlerts)
	r.POST("/tasks", h.SubmitTask)
	r.GET("/tasks", h.Tasks)

	r.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetDefaultHeaders(w)
		h := w.Header()
		h.Set("Access-Control-Allow-Methods", h.Get("Allow"))
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
