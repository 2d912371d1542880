package api

import (
	"github.com/gorilla/mux"

	"github.com/homelists/homelists/internal/api/recovery"
	"github.com/homelists/homelists/internal/auth"
	"github.com/homelists/homelists/internal/services"
	"github.com/homelists/homelists/internal/store"
)

// NewRouter wires all HTTP routes to handlers. Auth endpoints and the public
// view are open; everything else sits behind the session middleware.
func NewRouter(st store.Store, tokens *auth.Tokens, publicBaseURL string) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	authSvc := services.NewAuthService(st)
	listSvc := services.NewListService(st, publicBaseURL)
	itemSvc := services.NewItemService(st)

	authHandler := NewAuthHandler(authSvc, tokens)
	listHandler := NewListHandler(listSvc, itemSvc)
	itemHandler := NewItemHandler(itemSvc)
	publicHandler := NewPublicHandler(listSvc)
	healthHandler := NewHealthHandler()

	// Open endpoints
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	root.HandleFunc("/api/auth/signup", authHandler.SignUp).Methods("POST")
	root.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	root.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	root.HandleFunc("/api/view/{listId}", publicHandler.ViewList).Methods("GET")

	// Session-guarded endpoints
	authed := root.PathPrefix("/api").Subrouter()
	authed.Use(tokens.Middleware)

	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	authed.HandleFunc("/lists", listHandler.Overview).Methods("GET")
	authed.HandleFunc("/lists", listHandler.CreateList).Methods("POST")
	authed.HandleFunc("/lists/{listId}", listHandler.GetList).Methods("GET")
	authed.HandleFunc("/lists/{listId}", listHandler.DeleteList).Methods("DELETE")
	authed.HandleFunc("/lists/{listId}/favorite", listHandler.ToggleFavorite).Methods("POST")
	authed.HandleFunc("/lists/{listId}/public", listHandler.TogglePublic).Methods("POST")
	authed.HandleFunc("/lists/{listId}/share", listHandler.ToggleShared).Methods("POST")
	authed.HandleFunc("/lists/{listId}/template", listHandler.SaveAsTemplate).Methods("POST")
	authed.HandleFunc("/lists/{listId}/use", listHandler.UseTemplate).Methods("POST")

	authed.HandleFunc("/lists/{listId}/items", itemHandler.ListItems).Methods("GET")
	authed.HandleFunc("/lists/{listId}/items", itemHandler.CreateItem).Methods("POST")
	authed.HandleFunc("/lists/{listId}/items/{itemId}", itemHandler.UpdateItem).Methods("PATCH")
	authed.HandleFunc("/lists/{listId}/items/{itemId}", itemHandler.DeleteItem).Methods("DELETE")

	return root
}
