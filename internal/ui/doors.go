package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"accessdesk/internal/api"
	"accessdesk/internal/entity"
	"accessdesk/internal/qr"
)

// doorsLoadedMsg delivers the door list for visit seq.
type doorsLoadedMsg struct {
	seq   int
	doors []entity.Door
	err   error
}

// locationAddedMsg reports a remote location add; the local list is
// only touched on success.
type locationAddedMsg struct {
	seq  int
	name string
	err  error
}

// locationDeletedMsg reports a remote location delete.
type locationDeletedMsg struct {
	seq  int
	name string
	err  error
}

// doorSavedMsg reports the persistence attempt of a generated code.
type doorSavedMsg struct {
	seq int
	err error
}

// qrDownloadedMsg reports a local image export.
type qrDownloadedMsg struct {
	path string
	err  error
}

type doorMode int

const (
	doorModeList doorMode = iota
	doorModeCreate
)

type doorFocus int

const (
	focusDoorCode doorFocus = iota
	focusRoomName
	focusLocation
	focusNewLocation
)

// doorModel is the doors page: a listing plus the create-a-door flow
// with QR generation, the location set editor, and persistence.
type doorModel struct {
	client api.ClientInterface
	theme  Theme
	keys   KeyMap

	seq     int
	loaded  bool
	loadErr string

	doors      []entity.Door
	listCursor int

	company entity.Company

	mode             doorMode
	focus            doorFocus
	codeInput        textinput.Model
	roomInput        textinput.Model
	newLocInput      textinput.Model
	selectedLocation string
	dropdownOpen     bool
	locCursor        int

	code   qr.Code
	saving bool

	toast pendingToast
}

func newDoorModel(client api.ClientInterface, theme Theme, keys KeyMap) doorModel {
	codeInput := textinput.New()
	codeInput.Placeholder = "Enter door ID"
	roomInput := textinput.New()
	roomInput.Placeholder = "Enter room name"
	newLocInput := textinput.New()
	newLocInput.Placeholder = "Add new location"
	return doorModel{
		client:      client,
		theme:       theme,
		keys:        keys,
		codeInput:   codeInput,
		roomInput:   roomInput,
		newLocInput: newLocInput,
	}
}

func (d *doorModel) pending() *pendingToast { return &d.toast }

func (d doorModel) capturing() bool { return d.mode == doorModeCreate }

func (d *doorModel) setCompany(company entity.Company) {
	d.company = company
	if d.selectedLocation != "" && !contains(company.Locations, d.selectedLocation) {
		d.selectedLocation = ""
	}
	if d.locCursor >= len(company.Locations) {
		d.locCursor = 0
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func (d doorModel) load() tea.Cmd {
	client := d.client
	seq := d.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		doors, err := client.ListDoors(ctx)
		return doorsLoadedMsg{seq: seq, doors: doors, err: err}
	}
}

func (d doorModel) addLocation(name string) tea.Cmd {
	client := d.client
	companyID := d.company.ID
	seq := d.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.AddLocation(ctx, companyID, name)
		return locationAddedMsg{seq: seq, name: name, err: err}
	}
}

func (d doorModel) deleteLocation(name string) tea.Cmd {
	client := d.client
	companyID := d.company.ID
	seq := d.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteLocation(ctx, companyID, name)
		return locationDeletedMsg{seq: seq, name: name, err: err}
	}
}

func (d doorModel) saveDoor(door entity.Door) tea.Cmd {
	client := d.client
	seq := d.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := client.CreateDoor(ctx, door)
		return doorSavedMsg{seq: seq, err: err}
	}
}

func (d doorModel) downloadQR() tea.Cmd {
	code := d.code
	companyName := d.company.Name
	return func() tea.Msg {
		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}
		path, err := code.WriteFile(dir, companyName)
		return qrDownloadedMsg{path: path, err: err}
	}
}

// update handles page messages. The third result asks the root model to
// re-fetch the company after a confirmed location change.
func (d doorModel) update(msg tea.Msg, active bool) (doorModel, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case doorsLoadedMsg:
		if msg.seq != d.seq {
			return d, nil, false
		}
		d.loaded = true
		if msg.err != nil {
			d.loadErr = "Failed to load doors"
			return d, nil, false
		}
		d.loadErr = ""
		d.doors = msg.doors
		if d.listCursor >= len(d.doors) {
			d.listCursor = 0
		}
		return d, nil, false

	case locationAddedMsg:
		if msg.seq != d.seq {
			return d, nil, false
		}
		if msg.err != nil {
			d.toast = pendingToast{kind: toastError, text: "Failed to add location."}
			return d, nil, false
		}
		// Local append only after confirmed success; the new location
		// becomes the selection.
		d.company.Locations = append(d.company.Locations, msg.name)
		d.selectLocation(msg.name)
		d.newLocInput.SetValue("")
		d.toast = pendingToast{kind: toastSuccess, text: "Location added successfully"}
		return d, nil, true

	case locationDeletedMsg:
		if msg.seq != d.seq {
			return d, nil, false
		}
		if msg.err != nil {
			d.toast = pendingToast{kind: toastError, text: "Failed to delete location."}
			return d, nil, false
		}
		for i, l := range d.company.Locations {
			if l == msg.name {
				d.company.Locations = append(d.company.Locations[:i], d.company.Locations[i+1:]...)
				break
			}
		}
		if d.selectedLocation == msg.name {
			d.selectLocation("")
		}
		if d.locCursor >= len(d.company.Locations) && d.locCursor > 0 {
			d.locCursor--
		}
		d.toast = pendingToast{kind: toastSuccess, text: "Location deleted successfully"}
		return d, nil, true

	case doorSavedMsg:
		if msg.seq != d.seq {
			return d, nil, false
		}
		d.saving = false
		switch {
		case errors.Is(msg.err, api.ErrDoorCodeExists):
			d.toast = pendingToast{kind: toastError, text: "Door code already exists. Please choose a different one."}
		case msg.err != nil:
			d.toast = pendingToast{kind: toastError, text: "Failed to save QR Code."}
		default:
			// Navigate back to the listing and refresh it.
			_ = d.code.MarkPersisted()
			d.toast = pendingToast{kind: toastSuccess, text: "Door created successfully"}
			d.resetForm()
			d.mode = doorModeList
			d.seq++
			return d, d.load(), false
		}
		return d, nil, false

	case qrDownloadedMsg:
		if msg.err != nil {
			d.toast = pendingToast{kind: toastError, text: "Failed to download QR Code."}
		} else {
			d.toast = pendingToast{kind: toastSuccess, text: "Saved " + msg.path}
		}
		return d, nil, false

	case tea.KeyMsg:
		if !active {
			return d, nil, false
		}
		return d.handleKey(msg)
	}

	return d, nil, false
}

// selectLocation changes the chosen location, invalidating any
// generated code since a source field changed.
func (d *doorModel) selectLocation(name string) {
	if d.selectedLocation != name {
		d.code.Invalidate()
	}
	d.selectedLocation = name
}

func (d *doorModel) resetForm() {
	d.codeInput.SetValue("")
	d.roomInput.SetValue("")
	d.newLocInput.SetValue("")
	d.selectedLocation = ""
	d.dropdownOpen = false
	d.code = qr.Code{}
	d.focus = focusDoorCode
	d.applyFocus()
}

func (d doorModel) handleKey(msg tea.KeyMsg) (doorModel, tea.Cmd, bool) {
	if d.mode == doorModeList {
		switch {
		case key.Matches(msg, d.keys.Up):
			if d.listCursor > 0 {
				d.listCursor--
			}
		case key.Matches(msg, d.keys.Down):
			if d.listCursor < len(d.doors)-1 {
				d.listCursor++
			}
		case key.Matches(msg, d.keys.Add):
			d.mode = doorModeCreate
			d.resetForm()
			return d, textinput.Blink, false
		}
		return d, nil, false
	}

	// Create mode.
	switch {
	case key.Matches(msg, d.keys.Back):
		if d.dropdownOpen {
			d.dropdownOpen = false
			return d, nil, false
		}
		d.mode = doorModeList
		return d, nil, false

	case key.Matches(msg, d.keys.Generate):
		return d.generate()

	case key.Matches(msg, d.keys.Save):
		return d.persist()

	case key.Matches(msg, d.keys.Download):
		if d.code.State() == qr.StateEmpty {
			d.toast = pendingToast{kind: toastError, text: "Generate a QR Code first."}
			return d, nil, false
		}
		return d, d.downloadQR(), false
	}

	if d.dropdownOpen {
		return d.handleDropdownKey(msg)
	}

	switch {
	case key.Matches(msg, d.keys.PrevFld):
		d.focus = (d.focus + 3) % 4
		d.applyFocus()
		return d, nil, false
	case key.Matches(msg, d.keys.NextFld):
		d.focus = (d.focus + 1) % 4
		d.applyFocus()
		return d, nil, false
	case key.Matches(msg, d.keys.Select):
		switch d.focus {
		case focusLocation:
			if len(d.company.Locations) > 0 {
				d.dropdownOpen = true
				d.locCursor = 0
			}
			return d, nil, false
		case focusNewLocation:
			name := d.newLocInput.Value()
			if name == "" {
				d.toast = pendingToast{kind: toastError, text: "Please enter a location name."}
				return d, nil, false
			}
			return d, d.addLocation(name), false
		}
		return d, nil, false
	}

	// Text entry into the focused field. An edit to door code or room
	// name invalidates a generated payload.
	var cmd tea.Cmd
	switch d.focus {
	case focusDoorCode:
		before := d.codeInput.Value()
		d.codeInput, cmd = d.codeInput.Update(msg)
		if d.codeInput.Value() != before {
			d.code.Invalidate()
		}
	case focusRoomName:
		before := d.roomInput.Value()
		d.roomInput, cmd = d.roomInput.Update(msg)
		if d.roomInput.Value() != before {
			d.code.Invalidate()
		}
	case focusNewLocation:
		d.newLocInput, cmd = d.newLocInput.Update(msg)
	}
	return d, cmd, false
}

func (d doorModel) handleDropdownKey(msg tea.KeyMsg) (doorModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, d.keys.Up):
		d.locCursor--
		if d.locCursor < 0 {
			d.locCursor = len(d.company.Locations) - 1
		}
	case key.Matches(msg, d.keys.Down):
		d.locCursor++
		if d.locCursor >= len(d.company.Locations) {
			d.locCursor = 0
		}
	case key.Matches(msg, d.keys.Select):
		if d.locCursor < len(d.company.Locations) {
			d.selectLocation(d.company.Locations[d.locCursor])
		}
		d.dropdownOpen = false
	case key.Matches(msg, d.keys.Delete):
		if d.locCursor < len(d.company.Locations) {
			return d, d.deleteLocation(d.company.Locations[d.locCursor]), false
		}
	}
	return d, nil, false
}

func (d *doorModel) applyFocus() {
	inputs := map[doorFocus]*textinput.Model{
		focusDoorCode:    &d.codeInput,
		focusRoomName:    &d.roomInput,
		focusNewLocation: &d.newLocInput,
	}
	for f, in := range inputs {
		if f == d.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (d doorModel) generate() (doorModel, tea.Cmd, bool) {
	if d.company.ID == "" {
		d.toast = pendingToast{kind: toastError, text: "Company details not loaded yet."}
		return d, nil, false
	}
	err := d.code.Generate(qr.Details{
		DoorCode: d.codeInput.Value(),
		RoomName: d.roomInput.Value(),
		Location: d.selectedLocation,
	})
	if errors.Is(err, qr.ErrMissingDetails) {
		d.toast = pendingToast{kind: toastError, text: "Please fill in all fields."}
		return d, nil, false
	}
	if err != nil {
		d.toast = pendingToast{kind: toastError, text: "Failed to generate QR Code."}
		return d, nil, false
	}
	return d, nil, false
}

func (d doorModel) persist() (doorModel, tea.Cmd, bool) {
	if d.saving {
		return d, nil, false
	}
	door, err := d.code.Door(d.company.ID)
	if err != nil {
		d.toast = pendingToast{kind: toastError, text: "Generate a QR Code first."}
		return d, nil, false
	}
	d.saving = true
	return d, d.saveDoor(door), false
}

func (d doorModel) view() string {
	if d.mode == doorModeCreate {
		return d.viewCreate()
	}
	return d.viewList()
}

func (d doorModel) viewList() string {
	if !d.loaded {
		return lipgloss.NewStyle().Foreground(d.theme.FaintText).Render("Loading doors…")
	}
	if d.loadErr != "" {
		return lipgloss.NewStyle().Foreground(d.theme.ErrorText).Render(d.loadErr)
	}

	faint := lipgloss.NewStyle().Foreground(d.theme.FaintText)
	if len(d.doors) == 0 {
		return faint.Render("No doors yet. Press a to create one.")
	}

	normal := lipgloss.NewStyle().Foreground(d.theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(d.theme.SelectedForeground).
		Background(d.theme.SelectedBackground)

	var lines []string
	for i, door := range d.doors {
		line := fmt.Sprintf("%-12s %-24s %s", door.DoorCode, door.RoomName, door.Location)
		if i == d.listCursor {
			lines = append(lines, selected.Render("> "+line))
		} else {
			lines = append(lines, normal.Render("  "+line))
		}
	}
	lines = append(lines, "", faint.Render("a: create door"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (d doorModel) viewCreate() string {
	label := lipgloss.NewStyle().Foreground(d.theme.FaintText)

	locationLine := d.selectedLocation
	if locationLine == "" {
		locationLine = "Select a location"
	}
	if d.focus == focusLocation {
		locationLine = "> " + locationLine
	} else {
		locationLine = "  " + locationLine
	}

	form := []string{
		label.Render("Door ID"),
		d.codeInput.View(),
		label.Render("Room Name"),
		d.roomInput.View(),
		label.Render("Location (enter to choose)"),
		lipgloss.NewStyle().Foreground(d.theme.NormalText).Render(locationLine),
	}
	if d.dropdownOpen {
		form = append(form, d.viewDropdown())
	}
	form = append(form,
		label.Render("New location (enter to add)"),
		d.newLocInput.View(),
		"",
		label.Render("ctrl+g: generate • ctrl+s: add door • ctrl+d: download • esc: back"),
	)
	left := lipgloss.JoinVertical(lipgloss.Left, form...)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", d.viewCodePanel())
}

func (d doorModel) viewDropdown() string {
	normal := lipgloss.NewStyle().Foreground(d.theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(d.theme.SelectedForeground).
		Background(d.theme.SelectedBackground)

	var lines []string
	for i, loc := range d.company.Locations {
		marker := "  "
		style := normal
		if i == d.locCursor {
			marker = "> "
			style = selected
		}
		lines = append(lines, style.Render(marker+loc))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(d.theme.HelpText).
		Render("enter: select • x: delete • esc: close"))
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(d.theme.BorderColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (d doorModel) viewCodePanel() string {
	faint := lipgloss.NewStyle().Foreground(d.theme.FaintText)
	if d.code.State() == qr.StateEmpty {
		return faint.Render("No QR Code generated yet.")
	}

	preview, err := d.code.Terminal()
	if err != nil {
		preview = ""
	}

	details := d.code.Details()
	info := []string{
		preview,
		faint.Render("Company Name  ") + d.company.Name,
		faint.Render("Door Code     ") + details.DoorCode,
		faint.Render("Room Name     ") + details.RoomName,
		faint.Render("Location      ") + details.Location,
		faint.Render("QR Data       ") + d.code.Payload(),
	}
	if d.saving {
		info = append(info, faint.Render("Saving…"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, info...)
}

func (d doorModel) modalView(width, height int) string { return "" }
