package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"accessdesk/internal/api"
	"accessdesk/internal/entity"
	"accessdesk/internal/mockapi"
)

func newTestServer(t *testing.T) (*httptest.Server, *mockapi.Store) {
	t.Helper()
	store := mockapi.NewStore("dana@acme.test", "hunter2")
	store.Seed()
	server := mockapi.NewServer(store, "test-secret", zap.NewNop())
	ts := httptest.NewServer(server.NewRouter())
	t.Cleanup(ts.Close)
	return ts, store
}

func login(t *testing.T, baseURL string) api.Credentials {
	t.Helper()
	anon := api.New(baseURL, api.Anonymous, 5*time.Second, zap.NewNop())
	creds, err := anon.Login(context.Background(), "dana@acme.test", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, creds.Token)
	return creds
}

func newTestClient(t *testing.T) (*api.Client, *mockapi.Store) {
	t.Helper()
	ts, store := newTestServer(t)
	creds := login(t, ts.URL)
	return api.New(ts.URL, creds, 5*time.Second, zap.NewNop()), store
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts, _ := newTestServer(t)
	anon := api.New(ts.URL, api.Anonymous, 5*time.Second, zap.NewNop())
	_, err := anon.Login(context.Background(), "dana@acme.test", "wrong")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestUnauthenticatedCallsRejected(t *testing.T) {
	ts, _ := newTestServer(t)
	anon := api.New(ts.URL, api.Anonymous, 5*time.Second, zap.NewNop())
	_, err := anon.Me(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	client, _ := newTestClient(t)
	company, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", company.Name)
	assert.NotEmpty(t, company.ID)
	assert.Contains(t, company.Locations, "Main St")
}

func TestAdminLifecycle(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	admins, err := client.ListAdmins(ctx)
	require.NoError(t, err)
	before := len(admins)

	created, err := client.AddAdmin(ctx, entity.Admin{Name: "New Admin", Email: "new@acme.test", Role: "Admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	admins, err = client.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, before+1)

	require.NoError(t, client.DeleteAdmin(ctx, created.ID))
	admins, err = client.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, before)
}

func TestLocationAddDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	company, err := client.Me(ctx)
	require.NoError(t, err)

	require.NoError(t, client.AddLocation(ctx, company.ID, "Dockside"))
	company, err = client.Me(ctx)
	require.NoError(t, err)
	assert.Contains(t, company.Locations, "Dockside")

	require.NoError(t, client.DeleteLocation(ctx, company.ID, "Dockside"))
	company, err = client.Me(ctx)
	require.NoError(t, err)
	assert.NotContains(t, company.Locations, "Dockside")
}

func TestDeleteMissingLocationFails(t *testing.T) {
	client, _ := newTestClient(t)
	company, err := client.Me(context.Background())
	require.NoError(t, err)

	err = client.DeleteLocation(context.Background(), company.ID, "Nowhere")
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestCreateDoorAndDuplicate(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	company, err := client.Me(ctx)
	require.NoError(t, err)

	door := entity.Door{
		DoorCode: "D101", RoomName: "Lobby", Location: "Main St",
		QRData: "D101", QRImage: "data:image/png;base64,aGk=", Company: company.ID,
	}
	created, err := client.CreateDoor(ctx, door)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "D101", created.DoorCode)

	_, err = client.CreateDoor(ctx, door)
	assert.ErrorIs(t, err, api.ErrDoorCodeExists)

	doors, err := client.ListDoors(ctx)
	require.NoError(t, err)
	codes := make([]string, 0, len(doors))
	for _, d := range doors {
		codes = append(codes, d.DoorCode)
	}
	assert.Contains(t, codes, "D101")
}

func TestUserReadUpdateDelete(t *testing.T) {
	client, store := newTestClient(t)
	ctx := context.Background()
	id := store.SeededUserID()

	user, err := client.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mia", user.FirstName)
	assert.NotEmpty(t, user.DoorAccess)

	err = client.UpdateUser(ctx, id, api.UserUpdate{
		FirstName: "Mia", LastName: "Horvat", Email: "mia@acme.test", UserID: user.UserID,
	})
	require.NoError(t, err)

	user, err = client.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Horvat", user.LastName)

	require.NoError(t, client.DeleteUser(ctx, id))
	_, err = client.GetUser(ctx, id)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestCheckEmailUpdate(t *testing.T) {
	client, store := newTestClient(t)
	ctx := context.Background()
	id := store.SeededUserID()
	user, err := client.GetUser(ctx, id)
	require.NoError(t, err)

	// Own email excluded from the check.
	unique, err := client.CheckEmailUpdate(ctx, user.Email, user.UserID)
	require.NoError(t, err)
	assert.True(t, unique)

	unique, err = client.CheckEmailUpdate(ctx, "fresh@acme.test", user.UserID)
	require.NoError(t, err)
	assert.True(t, unique)

	// Someone else's email is taken.
	unique, err = client.CheckEmailUpdate(ctx, user.Email, "someone-else")
	require.NoError(t, err)
	assert.False(t, unique)
}

func TestHistoryAndRejected(t *testing.T) {
	client, store := newTestClient(t)
	ctx := context.Background()
	id := store.SeededUserID()

	records, err := client.RecentAccess(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, id, records[0].User.ID)

	rejected, err := client.RejectedRequests(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, rejected)
	assert.Equal(t, entity.StatusRejected, rejected[0].Status)
}

func TestMakePermissionRequest(t *testing.T) {
	client, store := newTestClient(t)
	ctx := context.Background()
	id := store.SeededUserID()

	doors, err := client.ListDoors(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, doors)

	before, err := client.GetUser(ctx, id)
	require.NoError(t, err)

	err = client.MakePermissionRequest(ctx, entity.PermissionRequest{
		User: id, Door: doors[0].ID,
		Date: "2030-01-02", InTime: "09:00", OutTime: "17:00",
		Message: "contractor visit", Status: entity.StatusApproved,
	})
	require.NoError(t, err)

	after, err := client.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Len(t, after.DoorAccess, len(before.DoorAccess)+1)
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Me(ctx)
	assert.Error(t, err)
}
