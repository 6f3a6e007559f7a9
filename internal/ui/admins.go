package ui

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"accessdesk/internal/api"
	"accessdesk/internal/entity"
)

// adminsLoadedMsg delivers the admin list for visit seq.
type adminsLoadedMsg struct {
	seq    int
	admins []entity.Admin
	err    error
}

// adminAddedMsg delivers the result of an add-admin submission.
type adminAddedMsg struct {
	seq   int
	admin entity.Admin
	err   error
}

// adminDeletedMsg delivers the result of an admin deletion.
type adminDeletedMsg struct {
	seq int
	id  string
	err error
}

type adminsMode int

const (
	adminsModeList adminsMode = iota
	adminsModeAdd
	adminsModeConfirmDelete
)

// adminsModel is the admin management page: list, add form, delete
// confirmation.
type adminsModel struct {
	client api.ClientInterface
	theme  Theme
	keys   KeyMap

	seq     int
	loaded  bool
	loadErr string

	admins []entity.Admin
	cursor int

	mode       adminsMode
	nameInput  textinput.Model
	emailInput textinput.Model
	roleInput  textinput.Model
	focusIdx   int
	formErr    string

	deleteTarget *entity.Admin

	toast pendingToast
}

func newAdminsModel(client api.ClientInterface, theme Theme, keys KeyMap) adminsModel {
	name := textinput.New()
	name.Placeholder = "Full name"
	email := textinput.New()
	email.Placeholder = "Email"
	role := textinput.New()
	role.Placeholder = "Role"
	return adminsModel{
		client:     client,
		theme:      theme,
		keys:       keys,
		nameInput:  name,
		emailInput: email,
		roleInput:  role,
	}
}

func (a *adminsModel) pending() *pendingToast { return &a.toast }

func (a adminsModel) capturing() bool { return a.mode == adminsModeAdd }

// load fetches the admin list for the current visit.
func (a adminsModel) load() tea.Cmd {
	client := a.client
	seq := a.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		admins, err := client.ListAdmins(ctx)
		return adminsLoadedMsg{seq: seq, admins: admins, err: err}
	}
}

func (a adminsModel) addAdmin(admin entity.Admin) tea.Cmd {
	client := a.client
	seq := a.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		created, err := client.AddAdmin(ctx, admin)
		return adminAddedMsg{seq: seq, admin: created, err: err}
	}
}

func (a adminsModel) deleteAdmin(id string) tea.Cmd {
	client := a.client
	seq := a.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteAdmin(ctx, id)
		return adminDeletedMsg{seq: seq, id: id, err: err}
	}
}

func (a adminsModel) update(msg tea.Msg, active bool) (adminsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminsLoadedMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loaded = true
		if msg.err != nil {
			a.loadErr = "Failed to load admins"
			return a, nil
		}
		a.loadErr = ""
		a.admins = msg.admins
		if a.cursor >= len(a.admins) {
			a.cursor = 0
		}
		return a, nil

	case adminAddedMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		if msg.err != nil {
			a.toast = pendingToast{kind: toastError, text: "Failed to add admin"}
			return a, nil
		}
		a.admins = append(a.admins, msg.admin)
		a.mode = adminsModeList
		a.toast = pendingToast{kind: toastSuccess, text: "Admin added successfully"}
		return a, nil

	case adminDeletedMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		if msg.err != nil {
			a.toast = pendingToast{kind: toastError, text: "Failed to delete admin"}
			return a, nil
		}
		// Local removal only after the remote delete succeeded.
		for i, admin := range a.admins {
			if admin.ID == msg.id {
				a.admins = append(a.admins[:i], a.admins[i+1:]...)
				break
			}
		}
		if a.cursor >= len(a.admins) && a.cursor > 0 {
			a.cursor--
		}
		a.toast = pendingToast{kind: toastSuccess, text: "Admin deleted successfully"}
		return a, nil

	case tea.KeyMsg:
		if !active {
			return a, nil
		}
		return a.handleKey(msg)
	}

	return a, nil
}

func (a adminsModel) handleKey(msg tea.KeyMsg) (adminsModel, tea.Cmd) {
	switch a.mode {
	case adminsModeConfirmDelete:
		switch {
		case key.Matches(msg, a.keys.Select):
			target := a.deleteTarget
			a.mode = adminsModeList
			a.deleteTarget = nil
			if target != nil {
				return a, a.deleteAdmin(target.ID)
			}
			return a, nil
		case key.Matches(msg, a.keys.Back):
			a.mode = adminsModeList
			a.deleteTarget = nil
			return a, nil
		}
		return a, nil

	case adminsModeAdd:
		switch {
		case key.Matches(msg, a.keys.Back):
			a.mode = adminsModeList
			a.formErr = ""
			return a, nil
		case key.Matches(msg, a.keys.PrevFld):
			a.setFocus((a.focusIdx + 2) % 3)
			return a, nil
		case key.Matches(msg, a.keys.NextFld):
			a.setFocus((a.focusIdx + 1) % 3)
			return a, nil
		case key.Matches(msg, a.keys.Select):
			return a.submitAdd()
		}
		var cmd tea.Cmd
		switch a.focusIdx {
		case 0:
			a.nameInput, cmd = a.nameInput.Update(msg)
		case 1:
			a.emailInput, cmd = a.emailInput.Update(msg)
		case 2:
			a.roleInput, cmd = a.roleInput.Update(msg)
		}
		return a, cmd

	default: // list
		switch {
		case key.Matches(msg, a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, a.keys.Down):
			if a.cursor < len(a.admins)-1 {
				a.cursor++
			}
		case key.Matches(msg, a.keys.Add):
			a.mode = adminsModeAdd
			a.formErr = ""
			a.nameInput.SetValue("")
			a.emailInput.SetValue("")
			a.roleInput.SetValue("")
			a.setFocus(0)
			return a, textinput.Blink
		case key.Matches(msg, a.keys.Delete):
			if len(a.admins) > 0 {
				target := a.admins[a.cursor]
				a.deleteTarget = &target
				a.mode = adminsModeConfirmDelete
			}
		}
		return a, nil
	}
}

func (a *adminsModel) setFocus(idx int) {
	a.focusIdx = idx
	inputs := []*textinput.Model{&a.nameInput, &a.emailInput, &a.roleInput}
	for i, in := range inputs {
		if i == idx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (a adminsModel) submitAdd() (adminsModel, tea.Cmd) {
	name := a.nameInput.Value()
	email := a.emailInput.Value()
	role := a.roleInput.Value()
	if name == "" || email == "" {
		a.formErr = "Name and email are required"
		return a, nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		a.formErr = "Invalid email address"
		return a, nil
	}
	a.formErr = ""
	return a, a.addAdmin(entity.Admin{Name: name, Email: email, Role: role})
}

func (a adminsModel) view() string {
	if !a.loaded {
		return lipgloss.NewStyle().Foreground(a.theme.FaintText).Render("Loading admins…")
	}
	if a.loadErr != "" {
		return lipgloss.NewStyle().Foreground(a.theme.ErrorText).Render(a.loadErr)
	}

	if a.mode == adminsModeAdd {
		return a.viewAddForm()
	}

	if len(a.admins) == 0 {
		return lipgloss.NewStyle().Foreground(a.theme.FaintText).
			Render("No admins yet. Press a to add one.")
	}

	normal := lipgloss.NewStyle().Foreground(a.theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(a.theme.SelectedForeground).
		Background(a.theme.SelectedBackground)
	faint := lipgloss.NewStyle().Foreground(a.theme.FaintText)

	var lines []string
	for i, admin := range a.admins {
		line := fmt.Sprintf("%-24s %-28s %s", admin.Name, admin.Email, admin.Role)
		if i == a.cursor {
			lines = append(lines, selected.Render("> "+line))
		} else {
			lines = append(lines, normal.Render("  "+line))
		}
	}
	lines = append(lines, "", faint.Render("a: add admin • x: delete admin"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a adminsModel) viewAddForm() string {
	label := lipgloss.NewStyle().Foreground(a.theme.FaintText)
	parts := []string{
		label.Render("Name"),
		a.nameInput.View(),
		label.Render("Email"),
		a.emailInput.View(),
		label.Render("Role"),
		a.roleInput.View(),
	}
	if a.formErr != "" {
		parts = append(parts, renderFieldError(a.theme, a.formErr))
	}
	parts = append(parts, "", label.Render("enter: save • esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a adminsModel) modalView(width, height int) string {
	if a.mode != adminsModeConfirmDelete || a.deleteTarget == nil {
		return ""
	}
	content := fmt.Sprintf(
		"Delete admin %s?\nThis action cannot be undone.\n\nenter: delete • esc: cancel",
		a.deleteTarget.Name,
	)
	return renderModal(a.theme, width, height, "Confirm Delete", content)
}
