package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessdesk/internal/access"
	"accessdesk/internal/api"
	"accessdesk/internal/entity"
)

type profileStubClient struct {
	api.ClientInterface

	emailAvailable bool
	checkedEmails  []string
	checkedIDs     []string

	doors    []entity.Door
	updates  []api.UserUpdate
	requests []entity.PermissionRequest
}

func (s *profileStubClient) CheckEmailUpdate(_ context.Context, email, userID string) (bool, error) {
	s.checkedEmails = append(s.checkedEmails, email)
	s.checkedIDs = append(s.checkedIDs, userID)
	return s.emailAvailable, nil
}

func (s *profileStubClient) ListDoors(_ context.Context) ([]entity.Door, error) {
	return s.doors, nil
}

func (s *profileStubClient) UpdateUser(_ context.Context, _ string, update api.UserUpdate) error {
	s.updates = append(s.updates, update)
	return nil
}

func (s *profileStubClient) MakePermissionRequest(_ context.Context, request entity.PermissionRequest) error {
	s.requests = append(s.requests, request)
	return nil
}

func testProfileModel(client api.ClientInterface) profileModel {
	p := newProfileModel(client, DefaultTheme, DefaultKeyMap)
	p.mode = profileModeView
	p.userID = "user-1"
	p.userLoaded = true
	p.user = entity.User{
		ID:        "user-1",
		UserID:    "EMP-0042",
		FirstName: "Mia",
		LastName:  "Novak",
		Email:     "mia@example.com",
	}
	return p
}

func openEditModal(p profileModel) profileModel {
	p.mode = profileModeEdit
	p.firstInput.SetValue(p.user.FirstName)
	p.lastInput.SetValue(p.user.LastName)
	p.emailInput.SetValue(p.user.Email)
	p.empIDInput.SetValue(p.user.UserID)
	p.emailChecked = true
	return p
}

func TestEditUnchangedEmailSavesWithoutCheck(t *testing.T) {
	client := &profileStubClient{}
	p := openEditModal(testProfileModel(client))
	p.firstInput.SetValue("Mira")

	p, cmd := p.submitEdit()
	require.NotNil(t, cmd)
	p, _ = p.update(cmd(), true)

	assert.Empty(t, client.checkedEmails)
	require.Len(t, client.updates, 1)
	assert.Equal(t, "Mira", client.updates[0].FirstName)
	assert.Equal(t, profileModeView, p.mode)
	assert.Equal(t, "Mira", p.user.FirstName)
}

func TestEditChangedEmailBlockedUntilChecked(t *testing.T) {
	client := &profileStubClient{emailAvailable: true}
	p := openEditModal(testProfileModel(client))
	p.emailInput.SetValue("new@example.com")
	p.emailChecked = false

	p, cmd := p.submitEdit()

	assert.Nil(t, cmd)
	assert.Equal(t, "Check the new email address first", p.editErr)
	assert.Empty(t, client.updates)
}

func TestEditEmailCheckUnlocksSave(t *testing.T) {
	client := &profileStubClient{emailAvailable: true}
	p := openEditModal(testProfileModel(client))
	p.emailInput.SetValue("new@example.com")
	p.emailChecked = false

	p, cmd := p.startEmailCheck()
	require.NotNil(t, cmd)
	p, _ = p.update(cmd(), true)

	require.True(t, p.emailChecked)
	assert.Equal(t, []string{"new@example.com"}, client.checkedEmails)

	p, cmd = p.submitEdit()
	require.NotNil(t, cmd)
	p, _ = p.update(cmd(), true)
	require.Len(t, client.updates, 1)
	assert.Equal(t, "new@example.com", client.updates[0].Email)
	assert.Equal(t, "new@example.com", p.user.Email)
}

func TestEditEmailTakenStaysBlocked(t *testing.T) {
	client := &profileStubClient{emailAvailable: false}
	p := openEditModal(testProfileModel(client))
	p.emailInput.SetValue("taken@example.com")
	p.emailChecked = false

	p, cmd := p.startEmailCheck()
	require.NotNil(t, cmd)
	p, _ = p.update(cmd(), true)

	assert.False(t, p.emailChecked)
	assert.Equal(t, "Email is already in use", p.editErr)
}

func TestStaleEmailCheckIgnored(t *testing.T) {
	p := openEditModal(testProfileModel(&profileStubClient{}))
	p.emailInput.SetValue("current@example.com")
	p.emailChecked = false

	// The probe answered for an address the admin has since retyped.
	p, _ = p.update(emailCheckedMsg{seq: p.seq, email: "old@example.com", available: true}, true)

	assert.False(t, p.emailChecked)
}

func TestEditRejectsMalformedEmail(t *testing.T) {
	p := openEditModal(testProfileModel(&profileStubClient{}))
	p.emailInput.SetValue("not-an-email")
	p.emailChecked = false

	p, cmd := p.startEmailCheck()

	assert.Nil(t, cmd)
	assert.Equal(t, "Enter a valid email address", p.editErr)
}

func TestPermissionSubmitValidatesAgainstSnapshot(t *testing.T) {
	client := &profileStubClient{}
	p := testProfileModel(client)
	p.mode = profileModePermission
	p.doors = []entity.Door{{ID: "door-1", DoorCode: "D100"}}
	p.permNow = access.Now{Date: "2026-08-29", Time: "14:30"}
	p.dateInput.SetValue("2026-08-28")
	p.inInput.SetValue("09:00")
	p.outInput.SetValue("17:00")

	p, cmd := p.submitPermissionForm()

	assert.Nil(t, cmd)
	assert.Equal(t, "Cannot select a date in the past", p.permErrs[access.FieldDate])
	assert.Empty(t, client.requests)
}

func TestPermissionSubmitApproved(t *testing.T) {
	client := &profileStubClient{}
	p := testProfileModel(client)
	p.mode = profileModePermission
	p.doors = []entity.Door{{ID: "door-1", DoorCode: "D100"}}
	p.permNow = access.Now{Date: "2026-08-29", Time: "14:30"}
	p.dateInput.SetValue("2026-08-30")
	p.inInput.SetValue("09:00")
	p.outInput.SetValue("17:00")
	p.noteInput.SetValue("weekend shift")

	p, cmd := p.submitPermissionForm()
	require.NotNil(t, cmd)
	_, reload := p.update(cmd(), true)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "user-1", req.User)
	assert.Equal(t, "door-1", req.Door)
	assert.Equal(t, entity.StatusApproved, req.Status)
	assert.NotNil(t, reload, "the profile refetches after a grant")
}

func TestPermissionSubmitRequiresAllFields(t *testing.T) {
	p := testProfileModel(&profileStubClient{})
	p.mode = profileModePermission
	p.doors = []entity.Door{{ID: "door-1"}}
	p.dateInput.SetValue("2026-08-30")

	p, cmd := p.submitPermissionForm()

	assert.Nil(t, cmd)
	assert.Equal(t, "Please fill in all fields", p.permErr)
}

func TestEmailCheckExcludesByEmployeeID(t *testing.T) {
	client := &profileStubClient{emailAvailable: true}
	p := openEditModal(testProfileModel(client))
	p.emailInput.SetValue("new@example.com")
	p.emailChecked = false

	p, cmd := p.startEmailCheck()
	require.NotNil(t, cmd)
	p.update(cmd(), true)

	assert.Equal(t, []string{"EMP-0042"}, client.checkedIDs)
}

func TestRetypingClearsCheckingState(t *testing.T) {
	p := openEditModal(testProfileModel(&profileStubClient{}))
	p.editFocus = 2
	p.applyEditFocus()
	p.checkingMail = true
	p.emailChecked = false

	// The edit lands mid-probe and leaves the address malformed, so no
	// new probe fires and the in-progress note must not linger.
	p, cmd := p.handleEditKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("@")})

	assert.False(t, p.checkingMail)
	assert.False(t, p.emailChecked)
	if cmd != nil {
		_, isCheck := cmd().(emailCheckedMsg)
		assert.False(t, isCheck)
	}
}

func TestPendingRequestsRendered(t *testing.T) {
	p := testProfileModel(&profileStubClient{})
	p.user.PendingRequests = []entity.PermissionRequest{
		{Date: "2026-09-01", InTime: "09:00", OutTime: "11:00", Status: entity.StatusPending},
	}

	view := p.viewProfile()

	assert.Contains(t, view, "Pending Requests")
	assert.Contains(t, view, "2026-09-01 09:00-11:00")
}

func TestPermissionModalRefetchesDoors(t *testing.T) {
	client := &profileStubClient{doors: []entity.Door{{ID: "door-1", DoorCode: "D100"}}}
	p := testProfileModel(client)
	p.doorsErr = "Failed to load doors"

	p, cmd := p.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, true)
	require.Equal(t, profileModePermission, p.mode)
	require.NotNil(t, cmd)

	var fetched *profileDoorsMsg
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if m, isDoors := c().(profileDoorsMsg); isDoors {
			fetched = &m
		}
	}
	require.NotNil(t, fetched, "opening the modal fetches the door list")

	p, _ = p.update(*fetched, true)
	assert.Empty(t, p.doorsErr)
	require.Len(t, p.doors, 1)
	assert.Equal(t, "D100", p.doors[0].DoorCode)
}

func TestDoorsFetchErrorSurfaced(t *testing.T) {
	p := testProfileModel(&profileStubClient{})
	p.mode = profileModePermission

	p, _ = p.update(profileDoorsMsg{seq: p.seq, err: context.DeadlineExceeded}, true)

	assert.Equal(t, "Failed to load doors", p.doorsErr)
	assert.Contains(t, p.permissionForm(), "Failed to load doors")
}

func TestHistoryFilteredToCurrentUser(t *testing.T) {
	p := testProfileModel(&profileStubClient{})

	p, _ = p.update(profileHistoryMsg{seq: p.seq, records: []entity.HistoryRecord{
		{ID: "h1", User: entity.RecordUser{ID: "user-1"}, Action: "entry"},
		{ID: "h2", User: entity.RecordUser{ID: "user-2"}, Action: "entry"},
		{ID: "h3", User: entity.RecordUser{ID: "user-1"}, Action: "exit"},
	}}, true)

	require.Len(t, p.history, 2)
	assert.Equal(t, "h1", p.history[0].ID)
	assert.Equal(t, "h3", p.history[1].ID)
}

func TestStaleUserLoadDropped(t *testing.T) {
	p := testProfileModel(&profileStubClient{})
	p.seq = 5

	p, _ = p.update(profileUserMsg{seq: 4, user: entity.User{FirstName: "Ghost"}}, true)

	assert.Equal(t, "Mia", p.user.FirstName)
}

func TestResetDropsInFlightResponses(t *testing.T) {
	p := testProfileModel(&profileStubClient{})
	before := p.seq
	p.reset()

	assert.Equal(t, profileModeEntry, p.mode)
	assert.Greater(t, p.seq, before)

	p, _ = p.update(profileUserMsg{seq: before, user: entity.User{FirstName: "Ghost"}}, true)
	assert.False(t, p.userLoaded)
}
