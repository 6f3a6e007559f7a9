// Package mockapi is an in-memory stand-in for the remote door-access
// API, covering the endpoint surface the console consumes. It exists for
// local development and for exercising the client against real HTTP.
package mockapi

import (
	"sync"

	"github.com/google/uuid"

	"accessdesk/internal/entity"
)

// Store keeps every record in memory behind one lock. Data does not
// survive a restart; that is the point of a development stub.
type Store struct {
	mu       sync.RWMutex
	company  entity.Company
	admins   map[string]entity.Admin
	doors    map[string]entity.Door
	users    map[string]entity.User
	rejected map[string][]entity.PermissionRequest
	requests []entity.PermissionRequest
	history  []entity.HistoryRecord

	// Login accepted by the auth endpoint.
	adminEmail    string
	adminPassword string
}

// NewStore returns an empty store accepting the given login.
func NewStore(adminEmail, adminPassword string) *Store {
	return &Store{
		company:       entity.Company{ID: uuid.NewString(), Name: "Acme Corp"},
		admins:        make(map[string]entity.Admin),
		doors:         make(map[string]entity.Door),
		users:         make(map[string]entity.User),
		rejected:      make(map[string][]entity.PermissionRequest),
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Seed loads a small fixture set: a couple of admins, locations, doors,
// one user with history and a rejected request.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.company.Locations = []string{"Main St", "Harbor Ave"}

	for _, a := range []entity.Admin{
		{ID: uuid.NewString(), Name: "Dana Reyes", Email: "dana@acme.test", Role: "Owner"},
		{ID: uuid.NewString(), Name: "Jun Park", Email: "jun@acme.test", Role: "Admin"},
	} {
		s.admins[a.ID] = a
	}

	door := entity.Door{
		ID:       uuid.NewString(),
		DoorCode: "D100",
		RoomName: "Server Room",
		Location: "Main St",
		QRData:   "D100",
		Company:  s.company.ID,
	}
	s.doors[door.ID] = door

	user := entity.User{
		ID:        uuid.NewString(),
		UserID:    "EMP-0042",
		FirstName: "Mia",
		LastName:  "Novak",
		Email:     "mia@acme.test",
		DoorAccess: []entity.DoorAccess{
			{Door: door, Date: "2026-08-20", InTime: "09:00", OutTime: "18:00"},
		},
	}
	s.users[user.ID] = user

	s.rejected[user.ID] = []entity.PermissionRequest{{
		ID: uuid.NewString(), User: user.ID, Door: door.ID,
		Date: "2026-08-10", InTime: "22:00", OutTime: "23:00",
		Message: "after-hours maintenance", Status: entity.StatusRejected,
	}}

	s.history = []entity.HistoryRecord{{
		ID:        uuid.NewString(),
		User:      entity.RecordUser{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName},
		Door:      door,
		Action:    "entry",
		Timestamp: "2026-08-21T09:02:11Z",
	}}
}

// CheckLogin reports whether the credentials match the configured admin.
func (s *Store) CheckLogin(email, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return email == s.adminEmail && password == s.adminPassword
}

// Company returns the tenant with its current location set.
func (s *Store) Company() entity.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.company
	c.Locations = append([]string(nil), s.company.Locations...)
	return c
}

// Admins lists all admin accounts.
func (s *Store) Admins() []entity.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, a)
	}
	return out
}

// AddAdmin stores a new admin account.
func (s *Store) AddAdmin(admin entity.Admin) entity.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin.ID = uuid.NewString()
	s.admins[admin.ID] = admin
	return admin
}

// DeleteAdmin removes an admin account by id.
func (s *Store) DeleteAdmin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.admins, id)
	return nil
}

// AddLocation appends a location to the company set.
func (s *Store) AddLocation(location string) error {
	if location == "" {
		return entity.ErrLocationEmpty
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.company.Locations {
		if l == location {
			return entity.ErrLocationExists
		}
	}
	s.company.Locations = append(s.company.Locations, location)
	return nil
}

// DeleteLocation removes a location from the company set.
func (s *Store) DeleteLocation(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.company.Locations {
		if l == location {
			s.company.Locations = append(s.company.Locations[:i], s.company.Locations[i+1:]...)
			return nil
		}
	}
	return entity.ErrLocationNotFound
}

// CreateDoor stores a door, enforcing door-code uniqueness.
func (s *Store) CreateDoor(door entity.Door) (entity.Door, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.doors {
		if d.DoorCode == door.DoorCode {
			return entity.Door{}, entity.ErrDoorCodeExists
		}
	}
	door.ID = uuid.NewString()
	s.doors[door.ID] = door
	return door, nil
}

// Doors lists all doors.
func (s *Store) Doors() []entity.Door {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Door, 0, len(s.doors))
	for _, d := range s.doors {
		out = append(out, d)
	}
	return out
}

// User reads one user by id.
func (s *Store) User(id string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return entity.User{}, entity.ErrNotFound
	}
	return u, nil
}

// UpdateUser writes the editable profile fields, enforcing email
// uniqueness across other users.
func (s *Store) UpdateUser(id, firstName, lastName, email, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return entity.ErrNotFound
	}
	if !s.emailFreeLocked(email, id) {
		return entity.ErrEmailTaken
	}
	u.FirstName, u.LastName, u.Email = firstName, lastName, email
	if userID != "" {
		u.UserID = userID
	}
	s.users[id] = u
	return nil
}

// DeleteUser removes a user by id.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// EmailFree reports whether email is unused by any user other than
// userID (matched against the human-facing id, as the API does).
func (s *Store) EmailFree(email, userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.UserID == userID || u.ID == userID {
			continue
		}
		if u.Email == email {
			return false
		}
	}
	return true
}

func (s *Store) emailFreeLocked(email, id string) bool {
	for _, u := range s.users {
		if u.ID == id {
			continue
		}
		if u.Email == email {
			return false
		}
	}
	return true
}

// History returns all access events, newest first as seeded.
func (s *Store) History() []entity.HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.HistoryRecord(nil), s.history...)
}

// RejectedRequests returns a user's rejected permission requests.
func (s *Store) RejectedRequests(userID string) []entity.PermissionRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.PermissionRequest(nil), s.rejected[userID]...)
}

// MakePermissionRequest records a request; approved ones are appended to
// the user's door-access list immediately, mirroring the backend.
func (s *Store) MakePermissionRequest(req entity.PermissionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.User]
	if !ok {
		return entity.ErrNotFound
	}
	door, ok := s.doors[req.Door]
	if !ok {
		return entity.ErrNotFound
	}

	req.ID = uuid.NewString()
	s.requests = append(s.requests, req)

	switch req.Status {
	case entity.StatusApproved:
		u.DoorAccess = append(u.DoorAccess, entity.DoorAccess{
			Door: door, Date: req.Date, InTime: req.InTime, OutTime: req.OutTime,
		})
	case entity.StatusRejected:
		s.rejected[u.ID] = append(s.rejected[u.ID], req)
	default:
		u.PendingRequests = append(u.PendingRequests, req)
	}
	s.users[u.ID] = u
	return nil
}

// SeededUserID returns the id of any one user, for development output.
func (s *Store) SeededUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.users {
		return id
	}
	return ""
}
