// Package entity defines the records exchanged with the door-access API.
// The API owns persistence; these are wire shapes, transient per page
// visit on the console side. JSON names mirror the API, including the
// Mongo-style "_id" object ids.
package entity

// Admin is an administrator account shown on the admin management page.
type Admin struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Company is the tenant the logged-in admin belongs to. Locations is an
// unordered set of names, unique within the company.
type Company struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Locations []string `json:"locations"`
}

// Door is a physical door with its generated QR payload. DoorCode is
// intended unique per company; Location must name one of the company's
// locations.
type Door struct {
	ID       string `json:"_id"`
	DoorCode string `json:"doorCode"`
	RoomName string `json:"roomName"`
	Location string `json:"location"`
	QRData   string `json:"qrData"`
	QRImage  string `json:"qrImage,omitempty"`
	Company  string `json:"company"`
}

// User is a door-access user profile. UserID is the human-facing id;
// Email is unique across users.
type User struct {
	ID              string              `json:"_id"`
	UserID          string              `json:"userId"`
	FirstName       string              `json:"firstName"`
	LastName        string              `json:"lastName"`
	Email           string              `json:"email"`
	ProfilePicture  string              `json:"profilePicture,omitempty"`
	DoorAccess      []DoorAccess        `json:"doorAccess"`
	PendingRequests []PermissionRequest `json:"pendingRequests"`
}

// DoorAccess is one entry of a user's granted-door list.
type DoorAccess struct {
	Door    Door   `json:"door"`
	Date    string `json:"date"`
	InTime  string `json:"inTime"`
	OutTime string `json:"outTime"`
}

// Permission request statuses as the API spells them.
const (
	StatusApproved = "Approved"
	StatusPending  = "Pending"
	StatusRejected = "Rejected"
)

// PermissionRequest asks for access to one door during a same-day time
// window. Date is YYYY-MM-DD; InTime/OutTime are HH:MM.
type PermissionRequest struct {
	ID      string `json:"_id,omitempty"`
	User    string `json:"user"`
	Door    string `json:"door"`
	Date    string `json:"date"`
	InTime  string `json:"inTime"`
	OutTime string `json:"outTime"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// HistoryRecord is one access event. Read-only on the console.
type HistoryRecord struct {
	ID        string     `json:"_id"`
	User      RecordUser `json:"user"`
	Door      Door       `json:"door"`
	Action    string     `json:"action"`
	Timestamp string     `json:"timestamp"`
}

// RecordUser is the embedded user reference inside a history record.
type RecordUser struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
