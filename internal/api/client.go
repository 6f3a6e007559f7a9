// Package api is the typed client for the remote door-access API. The
// API owns all business rules (uniqueness, authorization, persistence);
// this client is a thin request/response wrapper with an explicit bearer
// credential injected at construction.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"accessdesk/internal/entity"
)

// Credentials carries the bearer token for authenticated calls. It is
// passed in explicitly rather than read from ambient storage so call
// sites stay testable.
type Credentials struct {
	Token string
}

// Anonymous is the zero credential used for the login call itself.
var Anonymous = Credentials{}

// Client issues requests against a fixed endpoint set. Each call is
// independent and stateless; context cancels in-flight requests.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// ClientInterface is what the UI layer depends on; tests substitute it.
type ClientInterface interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	Me(ctx context.Context) (entity.Company, error)
	ListAdmins(ctx context.Context) ([]entity.Admin, error)
	AddAdmin(ctx context.Context, admin entity.Admin) (entity.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
	AddLocation(ctx context.Context, companyID, location string) error
	DeleteLocation(ctx context.Context, companyID, location string) error
	CreateDoor(ctx context.Context, door entity.Door) (entity.Door, error)
	ListDoors(ctx context.Context) ([]entity.Door, error)
	GetUser(ctx context.Context, id string) (entity.User, error)
	UpdateUser(ctx context.Context, id string, update UserUpdate) error
	DeleteUser(ctx context.Context, id string) error
	CheckEmailUpdate(ctx context.Context, email, userID string) (bool, error)
	RecentAccess(ctx context.Context) ([]entity.HistoryRecord, error)
	RejectedRequests(ctx context.Context, userID string) ([]entity.PermissionRequest, error)
	MakePermissionRequest(ctx context.Context, request entity.PermissionRequest) error
}

var _ ClientInterface = (*Client)(nil)

// New builds a client for baseURL carrying creds on every request.
// Transport-level retry covers transient network errors only; a rejected
// credential is surfaced, never retried.
func New(baseURL string, creds Credentials, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if creds.Token != "" {
		httpClient.SetAuthToken(creds.Token)
	}

	return &Client{http: httpClient, logger: logger}
}

// errorBody is the message envelope the API uses for failures.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// do runs a prepared request and folds non-2xx responses into the error
// taxonomy.
func (c *Client) do(req *resty.Request, method, path string) (*resty.Response, error) {
	var body errorBody
	req.SetError(&body)

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		c.logger.Warn("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.String("message", body.text()),
		)
		return resp, wrapStatus(resp.StatusCode(), body.text())
	}
	return resp, nil
}

// loginResponse is the token envelope from POST /api/auth/login.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var out loginResponse
	req := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out)
	if _, err := c.do(req, resty.MethodPost, "/api/auth/login"); err != nil {
		return Credentials{}, err
	}
	return Credentials{Token: out.Token}, nil
}

// meResponse wraps the company object in GET /api/admin/me.
type meResponse struct {
	Company entity.Company `json:"company"`
}

// Me returns the logged-in admin's company with its location set.
func (c *Client) Me(ctx context.Context) (entity.Company, error) {
	var out meResponse
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if _, err := c.do(req, resty.MethodGet, "/api/admin/me"); err != nil {
		return entity.Company{}, err
	}
	return out.Company, nil
}

// ListAdmins returns every admin account visible to the caller.
func (c *Client) ListAdmins(ctx context.Context) ([]entity.Admin, error) {
	var out []entity.Admin
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if _, err := c.do(req, resty.MethodGet, "/api/admin/all-admins"); err != nil {
		return nil, err
	}
	return out, nil
}

// AddAdmin creates an admin account and returns it with its id filled in.
func (c *Client) AddAdmin(ctx context.Context, admin entity.Admin) (entity.Admin, error) {
	var out entity.Admin
	req := c.http.R().SetContext(ctx).SetBody(admin).SetResult(&out)
	if _, err := c.do(req, resty.MethodPost, "/api/admin/add-admin"); err != nil {
		return entity.Admin{}, err
	}
	return out, nil
}

// DeleteAdmin removes an admin account.
func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	req := c.http.R().SetContext(ctx)
	_, err := c.do(req, resty.MethodDelete, "/api/admin/delete-admin/"+id)
	return err
}

// locationBody is the shared payload for location add and delete.
type locationBody struct {
	CompanyID string `json:"companyId"`
	Location  string `json:"location"`
}

// AddLocation appends a location name to the company's set.
func (c *Client) AddLocation(ctx context.Context, companyID, location string) error {
	req := c.http.R().SetContext(ctx).SetBody(locationBody{CompanyID: companyID, Location: location})
	_, err := c.do(req, resty.MethodPost, "/api/admin/add-location")
	return err
}

// DeleteLocation removes a location name from the company's set. The
// DELETE carries a JSON body, matching the API's contract.
func (c *Client) DeleteLocation(ctx context.Context, companyID, location string) error {
	req := c.http.R().SetContext(ctx).SetBody(locationBody{CompanyID: companyID, Location: location})
	_, err := c.do(req, resty.MethodDelete, "/api/admin/delete-location")
	return err
}

// CreateDoor persists a door with its QR payload and rendered image.
// Returns ErrDoorCodeExists when the code is already taken.
func (c *Client) CreateDoor(ctx context.Context, door entity.Door) (entity.Door, error) {
	var out entity.Door
	req := c.http.R().SetContext(ctx).SetBody(door).SetResult(&out)
	if _, err := c.do(req, resty.MethodPost, "/api/doors/create/"); err != nil {
		return entity.Door{}, err
	}
	return out, nil
}

// ListDoors returns all doors, used for permission-request selection.
func (c *Client) ListDoors(ctx context.Context) ([]entity.Door, error) {
	var out []entity.Door
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if _, err := c.do(req, resty.MethodGet, "/api/doors"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser reads one user profile including pending requests.
func (c *Client) GetUser(ctx context.Context, id string) (entity.User, error) {
	var out entity.User
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if _, err := c.do(req, resty.MethodGet, "/api/users/"+id); err != nil {
		return entity.User{}, err
	}
	return out, nil
}

// UserUpdate is the editable subset of a user profile.
type UserUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	UserID    string `json:"userId"`
}

// UpdateUser writes the editable profile fields.
func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) error {
	req := c.http.R().SetContext(ctx).SetBody(update)
	_, err := c.do(req, resty.MethodPut, "/api/users/"+id)
	return err
}

// DeleteUser removes a user profile.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	req := c.http.R().SetContext(ctx)
	_, err := c.do(req, resty.MethodDelete, "/api/users/"+id)
	return err
}

// uniqueResponse is the envelope of the email uniqueness check.
type uniqueResponse struct {
	IsUnique bool `json:"isUnique"`
}

// CheckEmailUpdate reports whether email is free, excluding the user's
// own current record.
func (c *Client) CheckEmailUpdate(ctx context.Context, email, userID string) (bool, error) {
	var out uniqueResponse
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"email": email, "userId": userID}).
		SetResult(&out)
	if _, err := c.do(req, resty.MethodGet, "/api/users/check-email-update"); err != nil {
		return false, err
	}
	return out.IsUnique, nil
}

// RecentAccess returns recent access events across all users; the
// profile page filters them client-side.
func (c *Client) RecentAccess(ctx context.Context) ([]entity.HistoryRecord, error) {
	var out []entity.HistoryRecord
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if _, err := c.do(req, resty.MethodGet, "/api/history/recent-access"); err != nil {
		return nil, err
	}
	return out, nil
}

// RejectedRequests returns a user's rejected permission requests.
func (c *Client) RejectedRequests(ctx context.Context, userID string) ([]entity.PermissionRequest, error) {
	var out []entity.PermissionRequest
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if _, err := c.do(req, resty.MethodGet, "/api/permission-requests/rejected-requests/"+userID); err != nil {
		return nil, err
	}
	return out, nil
}

// MakePermissionRequest submits a new permission request. Status is
// whatever the caller set; the console submits "Approved".
func (c *Client) MakePermissionRequest(ctx context.Context, request entity.PermissionRequest) error {
	req := c.http.R().SetContext(ctx).SetBody(request)
	_, err := c.do(req, resty.MethodPost, "/api/permission-requests/make")
	return err
}
