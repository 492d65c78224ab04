// Liveness endpoint. Unauthenticated.
package diagnostics

import (
	"net/http"

	"lifeos/api"

	"github.com/go-chi/chi/v5"
)

type Router struct{}

func (b Router) Routes(r chi.Router) {
	r.Get("/ping", b.ping)
}

func (b Router) ping(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}
