package ui

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"accessdesk/internal/access"
	"accessdesk/internal/api"
	"accessdesk/internal/entity"
)

// Profile fetch results. Each carries the visit seq so responses that
// arrive after the admin moved on to another user are dropped.
type profileUserMsg struct {
	seq  int
	user entity.User
	err  error
}

type profileHistoryMsg struct {
	seq     int
	records []entity.HistoryRecord
	err     error
}

type profileRejectedMsg struct {
	seq      int
	requests []entity.PermissionRequest
	err      error
}

type profileDoorsMsg struct {
	seq   int
	doors []entity.Door
	err   error
}

// emailCheckedMsg reports the uniqueness probe for one candidate email.
type emailCheckedMsg struct {
	seq       int
	email     string
	available bool
	err       error
}

type userUpdatedMsg struct {
	seq    int
	update api.UserUpdate
	err    error
}

type userDeletedMsg struct {
	seq int
	err error
}

type permissionSubmittedMsg struct {
	seq int
	err error
}

type profileMode int

const (
	profileModeEntry profileMode = iota
	profileModeView
	profileModeEdit
	profileModePermission
	profileModeConfirmDelete
)

// profileModel is the user profile page: look up a user by id, then
// view door access, access history and rejected requests, edit the
// profile, grant a permission window, or delete the user.
type profileModel struct {
	client api.ClientInterface
	theme  Theme
	keys   KeyMap

	seq  int
	mode profileMode

	idInput textinput.Model

	userID     string
	user       entity.User
	userLoaded bool
	userErr    string

	history       []entity.HistoryRecord
	historyLoaded bool
	historyErr    string

	rejected       []entity.PermissionRequest
	rejectedLoaded bool
	rejectedErr    string

	doors    []entity.Door
	doorsErr string

	// Edit form state. emailChecked gates saving: it holds while the
	// email matches the stored one or after a probe confirmed the new
	// address is free, and drops on every email keystroke.
	firstInput   textinput.Model
	lastInput    textinput.Model
	emailInput   textinput.Model
	empIDInput   textinput.Model
	editFocus    int
	emailChecked bool
	checkingMail bool
	editErr      string
	savingEdit   bool

	// Permission form state. permNow is captured once when the modal
	// opens so every validation during the session uses the same clock.
	permDoorIdx int
	dateInput   textinput.Model
	inInput     textinput.Model
	outInput    textinput.Model
	noteInput   textinput.Model
	permFocus   int
	permNow     access.Now
	permErrs    access.Errors
	permErr     string
	submitting  bool

	toast pendingToast
}

func newProfileModel(client api.ClientInterface, theme Theme, keys KeyMap) profileModel {
	id := textinput.New()
	id.Placeholder = "User ID"
	id.Focus()

	first := textinput.New()
	first.Placeholder = "First name"
	last := textinput.New()
	last.Placeholder = "Last name"
	email := textinput.New()
	email.Placeholder = "Email"
	empID := textinput.New()
	empID.Placeholder = "Employee ID"

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	in := textinput.New()
	in.Placeholder = "HH:MM"
	out := textinput.New()
	out.Placeholder = "HH:MM"
	note := textinput.New()
	note.Placeholder = "Message (optional)"

	return profileModel{
		client:     client,
		theme:      theme,
		keys:       keys,
		idInput:    id,
		firstInput: first,
		lastInput:  last,
		emailInput: email,
		empIDInput: empID,
		dateInput:  date,
		inInput:    in,
		outInput:   out,
		noteInput:  note,
	}
}

func (p *profileModel) pending() *pendingToast { return &p.toast }

func (p profileModel) capturing() bool {
	switch p.mode {
	case profileModeEntry:
		return p.idInput.Focused()
	case profileModeEdit, profileModePermission:
		return true
	}
	return false
}

// loadAll fires the four independent fetches behind the profile view.
// They resolve in any order; each section renders as its data lands.
func (p profileModel) loadAll(id string) tea.Cmd {
	return tea.Batch(p.loadUser(id), p.loadHistory(), p.loadRejected(id), p.loadDoors())
}

func (p profileModel) loadUser(id string) tea.Cmd {
	client := p.client
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := client.GetUser(ctx, id)
		return profileUserMsg{seq: seq, user: user, err: err}
	}
}

func (p profileModel) loadHistory() tea.Cmd {
	client := p.client
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		records, err := client.RecentAccess(ctx)
		return profileHistoryMsg{seq: seq, records: records, err: err}
	}
}

func (p profileModel) loadRejected(id string) tea.Cmd {
	client := p.client
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		requests, err := client.RejectedRequests(ctx, id)
		return profileRejectedMsg{seq: seq, requests: requests, err: err}
	}
}

func (p profileModel) loadDoors() tea.Cmd {
	client := p.client
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		doors, err := client.ListDoors(ctx)
		return profileDoorsMsg{seq: seq, doors: doors, err: err}
	}
}

func (p profileModel) checkEmail(email string) tea.Cmd {
	client := p.client
	// Exclusion is keyed on the human-facing employee id, not the
	// record id.
	id := p.user.UserID
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		available, err := client.CheckEmailUpdate(ctx, email, id)
		return emailCheckedMsg{seq: seq, email: email, available: available, err: err}
	}
}

func (p profileModel) saveUser(update api.UserUpdate) tea.Cmd {
	client := p.client
	id := p.userID
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.UpdateUser(ctx, id, update)
		return userUpdatedMsg{seq: seq, update: update, err: err}
	}
}

func (p profileModel) deleteUser() tea.Cmd {
	client := p.client
	id := p.userID
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteUser(ctx, id)
		return userDeletedMsg{seq: seq, err: err}
	}
}

func (p profileModel) submitPermission(request entity.PermissionRequest) tea.Cmd {
	client := p.client
	seq := p.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.MakePermissionRequest(ctx, request)
		return permissionSubmittedMsg{seq: seq, err: err}
	}
}

func (p profileModel) update(msg tea.Msg, active bool) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileUserMsg:
		if msg.seq != p.seq {
			return p, nil
		}
		p.userLoaded = true
		if msg.err != nil {
			p.userErr = "Failed to load user"
			return p, nil
		}
		p.userErr = ""
		p.user = msg.user
		return p, nil

	case profileHistoryMsg:
		if msg.seq != p.seq {
			return p, nil
		}
		p.historyLoaded = true
		if msg.err != nil {
			p.historyErr = "Failed to load access history"
			return p, nil
		}
		p.historyErr = ""
		// The history feed is company-wide; keep this user's rows.
		p.history = p.history[:0]
		for _, r := range msg.records {
			if r.User.ID == p.userID {
				p.history = append(p.history, r)
			}
		}
		return p, nil

	case profileRejectedMsg:
		if msg.seq != p.seq {
			return p, nil
		}
		p.rejectedLoaded = true
		if msg.err != nil {
			p.rejectedErr = "Failed to load rejected requests"
			return p, nil
		}
		p.rejectedErr = ""
		p.rejected = msg.requests
		return p, nil

	case profileDoorsMsg:
		if msg.seq != p.seq {
			return p, nil
		}
		if msg.err != nil {
			p.doorsErr = "Failed to load doors"
			return p, nil
		}
		p.doorsErr = ""
		p.doors = msg.doors
		return p, nil

	case emailCheckedMsg:
		if msg.seq != p.seq || msg.email != p.emailInput.Value() {
			return p, nil
		}
		p.checkingMail = false
		switch {
		case msg.err != nil:
			p.editErr = "Could not verify the email address"
		case !msg.available:
			p.editErr = "Email is already in use"
		default:
			p.emailChecked = true
			p.editErr = ""
			p.toast = pendingToast{kind: toastSuccess, text: "Email is available"}
		}
		return p, nil

	case userUpdatedMsg:
		if msg.seq != p.seq {
			return p, nil
		}
		p.savingEdit = false
		if msg.err != nil {
			p.toast = pendingToast{kind: toastError, text: "Failed to update user"}
			return p, nil
		}
		p.user.FirstName = msg.update.FirstName
		p.user.LastName = msg.update.LastName
		p.user.Email = msg.update.Email
		p.user.UserID = msg.update.UserID
		p.mode = profileModeView
		p.toast = pendingToast{kind: toastSuccess, text: "User updated successfully"}
		return p, nil

	case userDeletedMsg:
		if msg.seq != p.seq {
			return p, nil
		}
		if msg.err != nil {
			p.mode = profileModeView
			p.toast = pendingToast{kind: toastError, text: "Failed to delete user"}
			return p, nil
		}
		p.toast = pendingToast{kind: toastSuccess, text: "User deleted successfully"}
		p.reset()
		return p, textinput.Blink

	case permissionSubmittedMsg:
		if msg.seq != p.seq {
			return p, nil
		}
		p.submitting = false
		if msg.err != nil {
			p.toast = pendingToast{kind: toastError, text: "Failed to grant permission"}
			return p, nil
		}
		p.mode = profileModeView
		p.toast = pendingToast{kind: toastSuccess, text: "Permission granted successfully"}
		// The grant lands in the user's door access list; refetch it.
		return p, p.loadUser(p.userID)

	case tea.KeyMsg:
		if !active {
			return p, nil
		}
		return p.handleKey(msg)
	}

	return p, nil
}

// reset returns the page to the id prompt and bumps seq so anything
// still in flight for the previous user is discarded on arrival.
func (p *profileModel) reset() {
	p.seq++
	p.mode = profileModeEntry
	p.userID = ""
	p.user = entity.User{}
	p.userLoaded, p.historyLoaded, p.rejectedLoaded = false, false, false
	p.userErr, p.historyErr, p.rejectedErr = "", "", ""
	p.history = nil
	p.rejected = nil
	p.idInput.SetValue("")
	p.idInput.Focus()
}

func (p profileModel) handleKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch p.mode {
	case profileModeEntry:
		return p.handleEntryKey(msg)
	case profileModeView:
		return p.handleViewKey(msg)
	case profileModeEdit:
		return p.handleEditKey(msg)
	case profileModePermission:
		return p.handlePermissionKey(msg)
	case profileModeConfirmDelete:
		switch {
		case key.Matches(msg, p.keys.Select):
			return p, p.deleteUser()
		case key.Matches(msg, p.keys.Back):
			p.mode = profileModeView
		}
	}
	return p, nil
}

func (p profileModel) handleEntryKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if !p.idInput.Focused() {
		if key.Matches(msg, p.keys.Select) {
			p.idInput.Focus()
			return p, textinput.Blink
		}
		return p, nil
	}
	switch {
	case key.Matches(msg, p.keys.Back):
		p.idInput.Blur()
		return p, nil
	case key.Matches(msg, p.keys.Select):
		id := strings.TrimSpace(p.idInput.Value())
		if id == "" {
			p.toast = pendingToast{kind: toastError, text: "Enter a user ID"}
			return p, nil
		}
		p.seq++
		p.userID = id
		p.mode = profileModeView
		p.userLoaded, p.historyLoaded, p.rejectedLoaded = false, false, false
		return p, p.loadAll(id)
	}
	var cmd tea.Cmd
	p.idInput, cmd = p.idInput.Update(msg)
	return p, cmd
}

func (p profileModel) handleViewKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Back):
		p.reset()
		return p, textinput.Blink

	case key.Matches(msg, p.keys.Edit):
		if !p.userLoaded || p.userErr != "" {
			return p, nil
		}
		p.mode = profileModeEdit
		p.firstInput.SetValue(p.user.FirstName)
		p.lastInput.SetValue(p.user.LastName)
		p.emailInput.SetValue(p.user.Email)
		p.empIDInput.SetValue(p.user.UserID)
		p.editFocus = 0
		p.emailChecked = true
		p.editErr = ""
		p.applyEditFocus()
		return p, textinput.Blink

	case key.Matches(msg, p.keys.Request):
		if !p.userLoaded || p.userErr != "" {
			return p, nil
		}
		p.mode = profileModePermission
		p.permDoorIdx = 0
		p.permFocus = 0
		p.dateInput.SetValue("")
		p.inInput.SetValue("")
		p.outInput.SetValue("")
		p.noteInput.SetValue("")
		p.permErrs = access.Errors{}
		p.permErr = ""
		p.permNow = access.Snapshot(time.Now())
		p.applyPermFocus()
		// The door list is fetched fresh each time the modal opens, so
		// a failure at profile mount does not pin it empty.
		return p, tea.Batch(textinput.Blink, p.loadDoors())

	case key.Matches(msg, p.keys.Delete):
		if !p.userLoaded || p.userErr != "" {
			return p, nil
		}
		p.mode = profileModeConfirmDelete
		return p, nil
	}
	return p, nil
}

func (p profileModel) handleEditKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Back):
		p.mode = profileModeView
		return p, nil

	case key.Matches(msg, p.keys.PrevFld):
		p.editFocus = (p.editFocus + 3) % 4
		p.applyEditFocus()
		return p, nil

	case key.Matches(msg, p.keys.NextFld):
		p.editFocus = (p.editFocus + 1) % 4
		p.applyEditFocus()
		return p, nil

	case key.Matches(msg, p.keys.Select):
		// Enter on the email field runs the uniqueness probe; anywhere
		// else it advances.
		if p.editFocus == 2 && !p.emailChecked {
			return p.startEmailCheck()
		}
		p.editFocus = (p.editFocus + 1) % 4
		p.applyEditFocus()
		return p, nil

	case key.Matches(msg, p.keys.Save):
		return p.submitEdit()
	}

	inputs := []*textinput.Model{&p.firstInput, &p.lastInput, &p.emailInput, &p.empIDInput}
	before := p.emailInput.Value()
	var cmd tea.Cmd
	*inputs[p.editFocus], cmd = inputs[p.editFocus].Update(msg)
	if p.emailInput.Value() != before {
		// Each change drops the previous verdict; a well-formed address
		// triggers a fresh uniqueness probe, malformed input stays local.
		email := strings.TrimSpace(p.emailInput.Value())
		p.emailChecked = email == p.user.Email
		p.checkingMail = false
		p.editErr = ""
		if !p.emailChecked {
			if _, err := mail.ParseAddress(email); err == nil {
				p.checkingMail = true
				return p, tea.Batch(cmd, p.checkEmail(email))
			}
		}
	}
	return p, cmd
}

func (p profileModel) startEmailCheck() (profileModel, tea.Cmd) {
	email := strings.TrimSpace(p.emailInput.Value())
	if _, err := mail.ParseAddress(email); err != nil {
		p.editErr = "Enter a valid email address"
		return p, nil
	}
	p.checkingMail = true
	p.editErr = ""
	return p, p.checkEmail(email)
}

func (p profileModel) submitEdit() (profileModel, tea.Cmd) {
	if p.savingEdit {
		return p, nil
	}
	update := api.UserUpdate{
		FirstName: strings.TrimSpace(p.firstInput.Value()),
		LastName:  strings.TrimSpace(p.lastInput.Value()),
		Email:     strings.TrimSpace(p.emailInput.Value()),
		UserID:    strings.TrimSpace(p.empIDInput.Value()),
	}
	if update.FirstName == "" || update.LastName == "" || update.Email == "" || update.UserID == "" {
		p.editErr = "Please fill in all fields"
		return p, nil
	}
	if _, err := mail.ParseAddress(update.Email); err != nil {
		p.editErr = "Enter a valid email address"
		return p, nil
	}
	if update.Email != p.user.Email && !p.emailChecked {
		p.editErr = "Check the new email address first"
		return p, nil
	}
	p.savingEdit = true
	return p, p.saveUser(update)
}

func (p *profileModel) applyEditFocus() {
	inputs := []*textinput.Model{&p.firstInput, &p.lastInput, &p.emailInput, &p.empIDInput}
	for i, in := range inputs {
		if i == p.editFocus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// Permission form focus order: door picker, date, in time, out time,
// message.
const permFields = 5

func (p profileModel) handlePermissionKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Back):
		p.mode = profileModeView
		return p, nil

	case key.Matches(msg, p.keys.Save):
		return p.submitPermissionForm()

	case key.Matches(msg, p.keys.PrevFld):
		p.permFocus = (p.permFocus + permFields - 1) % permFields
		p.applyPermFocus()
		return p, nil

	case key.Matches(msg, p.keys.NextFld):
		p.permFocus = (p.permFocus + 1) % permFields
		p.applyPermFocus()
		return p, nil
	}

	if p.permFocus == 0 {
		// The door picker cycles with left/right so up/down keep moving
		// between fields.
		switch msg.String() {
		case "left", "h":
			if len(p.doors) > 0 {
				p.permDoorIdx = (p.permDoorIdx + len(p.doors) - 1) % len(p.doors)
			}
		case "right", "l":
			if len(p.doors) > 0 {
				p.permDoorIdx = (p.permDoorIdx + 1) % len(p.doors)
			}
		}
		return p, nil
	}

	inputs := []*textinput.Model{nil, &p.dateInput, &p.inInput, &p.outInput, &p.noteInput}
	var cmd tea.Cmd
	*inputs[p.permFocus], cmd = inputs[p.permFocus].Update(msg)
	// Re-validate on every change to the window fields; the message
	// field does not participate.
	if p.permFocus < 4 {
		p.permErrs = access.Validate(p.window(), p.permNow)
	}
	return p, cmd
}

func (p profileModel) window() access.Window {
	return access.Window{
		Date:    strings.TrimSpace(p.dateInput.Value()),
		InTime:  strings.TrimSpace(p.inInput.Value()),
		OutTime: strings.TrimSpace(p.outInput.Value()),
	}
}

func (p profileModel) submitPermissionForm() (profileModel, tea.Cmd) {
	if p.submitting {
		return p, nil
	}
	if len(p.doors) == 0 {
		p.permErr = "No doors available"
		return p, nil
	}
	w := p.window()
	if w.Date == "" || w.InTime == "" || w.OutTime == "" {
		p.permErr = "Please fill in all fields"
		return p, nil
	}
	p.permErr = ""
	p.permErrs = access.Validate(w, p.permNow)
	if !p.permErrs.Valid() {
		return p, nil
	}
	p.submitting = true
	request := entity.PermissionRequest{
		User:    p.user.ID,
		Door:    p.doors[p.permDoorIdx].ID,
		Date:    w.Date,
		InTime:  w.InTime,
		OutTime: w.OutTime,
		Message: strings.TrimSpace(p.noteInput.Value()),
		Status:  entity.StatusApproved,
	}
	return p, p.submitPermission(request)
}

func (p *profileModel) applyPermFocus() {
	inputs := []*textinput.Model{nil, &p.dateInput, &p.inInput, &p.outInput, &p.noteInput}
	for i, in := range inputs {
		if in == nil {
			continue
		}
		if i == p.permFocus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (p profileModel) view() string {
	if p.mode == profileModeEntry {
		return p.viewEntry()
	}
	return p.viewProfile()
}

func (p profileModel) viewEntry() string {
	label := lipgloss.NewStyle().Foreground(p.theme.FaintText)
	return lipgloss.JoinVertical(lipgloss.Left,
		label.Render("Look up a user by ID"),
		p.idInput.View(),
		"",
		label.Render("enter: open profile"),
	)
}

func (p profileModel) viewProfile() string {
	faint := lipgloss.NewStyle().Foreground(p.theme.FaintText)
	normal := lipgloss.NewStyle().Foreground(p.theme.NormalText)

	var sections []string

	switch {
	case !p.userLoaded:
		sections = append(sections, faint.Render("Loading user…"))
	case p.userErr != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(p.theme.ErrorText).Render(p.userErr))
	default:
		sections = append(sections,
			normal.Render(p.user.FirstName+" "+p.user.LastName),
			faint.Render("Employee ID  ")+p.user.UserID,
			faint.Render("Email        ")+p.user.Email,
		)
		sections = append(sections, "", faint.Render("Door Access"))
		if len(p.user.DoorAccess) == 0 {
			sections = append(sections, faint.Render("  none"))
		}
		for _, a := range p.user.DoorAccess {
			sections = append(sections, normal.Render(fmt.Sprintf(
				"  %-10s %-20s %s %s-%s",
				a.Door.DoorCode, a.Door.RoomName, a.Date, a.InTime, a.OutTime,
			)))
		}

		sections = append(sections, "", faint.Render("Pending Requests"))
		if len(p.user.PendingRequests) == 0 {
			sections = append(sections, faint.Render("  none"))
		}
		for _, r := range p.user.PendingRequests {
			status := lipgloss.NewStyle().Foreground(p.theme.StatusColor(r.Status)).Render(r.Status)
			sections = append(sections, normal.Render(fmt.Sprintf(
				"  %s %s-%s ", r.Date, r.InTime, r.OutTime,
			))+status)
		}
	}

	sections = append(sections, "", faint.Render("Recent Access"))
	switch {
	case !p.historyLoaded:
		sections = append(sections, faint.Render("  loading…"))
	case p.historyErr != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(p.theme.ErrorText).Render("  "+p.historyErr))
	case len(p.history) == 0:
		sections = append(sections, faint.Render("  none"))
	default:
		for _, r := range p.history {
			sections = append(sections, normal.Render(fmt.Sprintf(
				"  %-10s %-8s %s", r.Door.DoorCode, r.Action, r.Timestamp,
			)))
		}
	}

	sections = append(sections, "", faint.Render("Rejected Requests"))
	switch {
	case !p.rejectedLoaded:
		sections = append(sections, faint.Render("  loading…"))
	case p.rejectedErr != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(p.theme.ErrorText).Render("  "+p.rejectedErr))
	case len(p.rejected) == 0:
		sections = append(sections, faint.Render("  none"))
	default:
		for _, r := range p.rejected {
			status := lipgloss.NewStyle().Foreground(p.theme.StatusColor(r.Status)).Render(r.Status)
			sections = append(sections, normal.Render(fmt.Sprintf(
				"  %s %s-%s ", r.Date, r.InTime, r.OutTime,
			))+status)
		}
	}

	sections = append(sections, "",
		lipgloss.NewStyle().Foreground(p.theme.HelpText).
			Render("e: edit • p: grant permission • x: delete • esc: back"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p profileModel) modalView(width, height int) string {
	switch p.mode {
	case profileModeEdit:
		return renderModal(p.theme, width, height, "Edit User", p.editForm())
	case profileModePermission:
		return renderModal(p.theme, width, height, "Grant Permission", p.permissionForm())
	case profileModeConfirmDelete:
		content := lipgloss.JoinVertical(lipgloss.Left,
			"Delete "+p.user.FirstName+" "+p.user.LastName+"?",
			"",
			lipgloss.NewStyle().Foreground(p.theme.HelpText).Render("enter: delete • esc: cancel"),
		)
		return renderModal(p.theme, width, height, "Delete User", content)
	}
	return ""
}

func (p profileModel) editForm() string {
	label := lipgloss.NewStyle().Foreground(p.theme.FaintText)

	emailNote := ""
	switch {
	case p.checkingMail:
		emailNote = label.Render("checking…")
	case !p.emailChecked:
		emailNote = label.Render("enter: check availability")
	}

	lines := []string{
		label.Render("First Name"),
		p.firstInput.View(),
		label.Render("Last Name"),
		p.lastInput.View(),
		label.Render("Email"),
		p.emailInput.View(),
	}
	if emailNote != "" {
		lines = append(lines, emailNote)
	}
	lines = append(lines,
		label.Render("Employee ID"),
		p.empIDInput.View(),
	)
	if p.editErr != "" {
		lines = append(lines, "", renderFieldError(p.theme, p.editErr))
	}
	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(p.theme.HelpText).Render("ctrl+s: save • esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p profileModel) permissionForm() string {
	label := lipgloss.NewStyle().Foreground(p.theme.FaintText)

	doorLine := "no doors"
	if len(p.doors) > 0 {
		d := p.doors[p.permDoorIdx]
		doorLine = fmt.Sprintf("%s (%s)", d.DoorCode, d.RoomName)
	}
	if p.permFocus == 0 {
		doorLine = "< " + doorLine + " >"
	}

	lines := []string{
		label.Render("Door"),
		lipgloss.NewStyle().Foreground(p.theme.NormalText).Render(doorLine),
	}
	if p.doorsErr != "" {
		lines = append(lines, renderFieldError(p.theme, p.doorsErr))
	}
	lines = append(lines,
		label.Render("Date"),
		p.dateInput.View(),
	)
	if msg := p.permErrs[access.FieldDate]; msg != "" {
		lines = append(lines, renderFieldError(p.theme, msg))
	}
	lines = append(lines, label.Render("In Time"), p.inInput.View())
	if msg := p.permErrs[access.FieldInTime]; msg != "" {
		lines = append(lines, renderFieldError(p.theme, msg))
	}
	lines = append(lines, label.Render("Out Time"), p.outInput.View())
	if msg := p.permErrs[access.FieldOutTime]; msg != "" {
		lines = append(lines, renderFieldError(p.theme, msg))
	}
	lines = append(lines, label.Render("Message"), p.noteInput.View())
	if p.permErr != "" {
		lines = append(lines, "", renderFieldError(p.theme, p.permErr))
	}
	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(p.theme.HelpText).Render("ctrl+s: submit • esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
