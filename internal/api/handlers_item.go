package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homelists/homelists/internal/api/respond"
	"github.com/homelists/homelists/internal/services"
)

// ItemHandler is a thin HTTP transport over ItemService.
type ItemHandler struct {
	svc *services.ItemService
}

func NewItemHandler(svc *services.ItemService) *ItemHandler { return &ItemHandler{svc: svc} }

// ListItems GET /api/lists/{listId}/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	its, err := h.svc.List(r.Context(), mux.Vars(r)["listId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": its, "count": len(its)})
}

// CreateItem POST /api/lists/{listId}/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	it, err := h.svc.Add(r.Context(), mux.Vars(r)["listId"], req.Content)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, it)
}

// UpdateItem PATCH /api/lists/{listId}/items/{itemId}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req struct {
		Checked *bool `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Checked == nil {
		respond.WriteBadRequest(w, "checked is required")
		return
	}

	if err := h.svc.SetChecked(r.Context(), mux.Vars(r)["itemId"], *req.Checked); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem DELETE /api/lists/{listId}/items/{itemId}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
