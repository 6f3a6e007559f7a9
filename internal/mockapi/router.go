package mockapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the full route table. Everything except login and the
// health probe sits behind bearer auth.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(s.requireAuth)

	authed.HandleFunc("/admin/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/admin/all-admins", s.handleListAdmins).Methods(http.MethodGet)
	authed.HandleFunc("/admin/add-admin", s.handleAddAdmin).Methods(http.MethodPost)
	authed.HandleFunc("/admin/delete-admin/{id}", s.handleDeleteAdmin).Methods(http.MethodDelete)
	authed.HandleFunc("/admin/add-location", s.handleAddLocation).Methods(http.MethodPost)
	authed.HandleFunc("/admin/delete-location", s.handleDeleteLocation).Methods(http.MethodDelete)

	authed.HandleFunc("/doors/create/", s.handleCreateDoor).Methods(http.MethodPost)
	authed.HandleFunc("/doors", s.handleListDoors).Methods(http.MethodGet)

	authed.HandleFunc("/users/check-email-update", s.handleCheckEmail).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id}", s.handleUpdateUser).Methods(http.MethodPut)
	authed.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)

	authed.HandleFunc("/history/recent-access", s.handleRecentAccess).Methods(http.MethodGet)
	authed.HandleFunc("/permission-requests/rejected-requests/{id}", s.handleRejectedRequests).Methods(http.MethodGet)
	authed.HandleFunc("/permission-requests/make", s.handleMakePermissionRequest).Methods(http.MethodPost)

	return r
}
