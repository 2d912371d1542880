package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homelists/homelists/internal/api/respond"
	"github.com/homelists/homelists/internal/services"
)

// PublicHandler serves the unauthenticated read-only view of public lists.
type PublicHandler struct {
	svc *services.ListService
}

func NewPublicHandler(svc *services.ListService) *PublicHandler { return &PublicHandler{svc: svc} }

// ViewList GET /api/view/{listId}
// Private and nonexistent lists produce the same 404, so the endpoint leaks
// nothing about lists that were never shared.
func (h *PublicHandler) ViewList(w http.ResponseWriter, r *http.Request) {
	pv, err := h.svc.PublicView(r.Context(), mux.Vars(r)["listId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, pv)
}
