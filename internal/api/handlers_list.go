package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homelists/homelists/internal/api/respond"
	"github.com/homelists/homelists/internal/api/validate"
	"github.com/homelists/homelists/internal/auth"
	"github.com/homelists/homelists/internal/services"
)

// ListHandler is a thin HTTP transport over ListService.
type ListHandler struct {
	svc   *services.ListService
	items *services.ItemService
}

func NewListHandler(svc *services.ListService, items *services.ItemService) *ListHandler {
	return &ListHandler{svc: svc, items: items}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
	}
	return userID, ok
}

// Overview GET /api/lists
func (h *ListHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ov, err := h.svc.Overview(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ov)
}

// CreateList POST /api/lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name   string `json:"name"`
		Shared bool   `json:"shared"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.ListName(req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	l, err := h.svc.Create(r.Context(), userID, req.Name, req.Shared)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, l)
}

// GetList GET /api/lists/{listId}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	listID := mux.Vars(r)["listId"]
	l, err := h.svc.Get(r.Context(), listID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	its, err := h.items.List(r.Context(), listID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"list": l, "items": its, "count": len(its)})
}

// DeleteList DELETE /api/lists/{listId}
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), userID, mux.Vars(r)["listId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite POST /api/lists/{listId}/favorite
func (h *ListHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	l, err := h.svc.ToggleFavorite(r.Context(), mux.Vars(r)["listId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, l)
}

// TogglePublic POST /api/lists/{listId}/public
func (h *ListHandler) TogglePublic(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	l, shareURL, err := h.svc.TogglePublic(r.Context(), mux.Vars(r)["listId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"list": l, "shareUrl": shareURL})
}

// ToggleShared POST /api/lists/{listId}/share
func (h *ListHandler) ToggleShared(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	l, err := h.svc.ToggleShared(r.Context(), mux.Vars(r)["listId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, l)
}

// SaveAsTemplate POST /api/lists/{listId}/template
func (h *ListHandler) SaveAsTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	tpl, err := h.svc.SaveAsTemplate(r.Context(), userID, mux.Vars(r)["listId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, tpl)
}

// UseTemplate POST /api/lists/{listId}/use
func (h *ListHandler) UseTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	// An empty or absent body means "use the default name".
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	l, err := h.svc.UseTemplate(r.Context(), userID, mux.Vars(r)["listId"], req.Name)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, l)
}
