package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"accessdesk/internal/entity"
)

// Server holds the store and serves the endpoint surface.
type Server struct {
	store     *Store
	logger    *zap.Logger
	jwtSecret string
}

// NewServer wires a server over store.
func NewServer(store *Store, jwtSecret string, logger *zap.Logger) *Server {
	return &Server{store: store, logger: logger, jwtSecret: jwtSecret}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMessage emits the API's {"message": ...} failure envelope.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeStoreError maps store sentinels onto response statuses. The
// duplicate door code message is byte-for-byte what the console matches.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrDoorCodeExists):
		writeMessage(w, http.StatusBadRequest, "Door code already exists.")
	case errors.Is(err, entity.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, entity.ErrLocationExists),
		errors.Is(err, entity.ErrLocationNotFound),
		errors.Is(err, entity.ErrLocationEmpty),
		errors.Is(err, entity.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.store.CheckLogin(body.Email, body.Password) {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := s.issueToken(body.Email)
	if err != nil {
		s.logger.Error("issue token", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]entity.Company{"company": s.store.Company()})
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Admins())
}

func (s *Server) handleAddAdmin(w http.ResponseWriter, r *http.Request) {
	var admin entity.Admin
	if err := json.NewDecoder(r.Body).Decode(&admin); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if admin.Name == "" || admin.Email == "" {
		writeMessage(w, http.StatusBadRequest, "name and email are required")
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddAdmin(admin))
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAdmin(mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "admin deleted"})
}

type locationBody struct {
	CompanyID string `json:"companyId"`
	Location  string `json:"location"`
}

func (s *Server) handleAddLocation(w http.ResponseWriter, r *http.Request) {
	var body locationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.AddLocation(body.Location); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "location added"})
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	var body locationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.DeleteLocation(body.Location); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "location deleted"})
}

func (s *Server) handleCreateDoor(w http.ResponseWriter, r *http.Request) {
	var door entity.Door
	if err := json.NewDecoder(r.Body).Decode(&door); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if door.DoorCode == "" || door.RoomName == "" || door.Location == "" {
		writeMessage(w, http.StatusBadRequest, "doorCode, roomName and location are required")
		return
	}
	created, err := s.store.CreateDoor(door)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListDoors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Doors())
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.User(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		UserID    string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.UpdateUser(mux.Vars(r)["id"], body.FirstName, body.LastName, body.Email, body.UserID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user updated"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUser(mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	userID := r.URL.Query().Get("userId")
	writeJSON(w, http.StatusOK, map[string]bool{"isUnique": s.store.EmailFree(email, userID)})
}

func (s *Server) handleRecentAccess(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.History())
}

func (s *Server) handleRejectedRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.RejectedRequests(mux.Vars(r)["id"]))
}

func (s *Server) handleMakePermissionRequest(w http.ResponseWriter, r *http.Request) {
	var req entity.PermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.MakePermissionRequest(req); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "permission request created"})
}
