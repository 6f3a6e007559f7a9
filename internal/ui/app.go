// Package ui is the terminal console: three pages (admin management,
// door creation with QR generation, user profiles) over the remote API.
// Elm architecture throughout; every network call is an independent
// tea.Cmd whose typed result message updates only its own slice of
// state, so pages render fine while some fetches are still in flight.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"accessdesk/internal/api"
	"accessdesk/internal/entity"
)

// requestTimeout bounds every call issued from the UI. Abandoned pages
// also bump their sequence number, so a late response is dropped rather
// than applied (see the seq fields on each page model).
const requestTimeout = 15 * time.Second

// Page identifies the active screen.
type Page int

const (
	PageAdmins Page = iota
	PageDoors
	PageProfile
)

var pageTitles = map[Page]string{
	PageAdmins:  "Admin Management",
	PageDoors:   "Doors",
	PageProfile: "User Profile",
}

// companyLoadedMsg delivers the admin's company, fetched once at start
// and re-fetched after location edits elsewhere reported success.
type companyLoadedMsg struct {
	company entity.Company
	err     error
}

// Model is the root console model.
type Model struct {
	client api.ClientInterface
	logger *zap.Logger
	theme  Theme
	keys   KeyMap

	width  int
	height int

	page    Page
	company entity.Company

	admins  adminsModel
	doors   doorModel
	profile profileModel

	notice   *toast
	toastSeq int
}

// New builds the console over an authenticated client.
func New(client api.ClientInterface, logger *zap.Logger) Model {
	theme := DefaultTheme
	keys := DefaultKeyMap
	return Model{
		client:  client,
		logger:  logger,
		theme:   theme,
		keys:    keys,
		page:    PageAdmins,
		admins:  newAdminsModel(client, theme, keys),
		doors:   newDoorModel(client, theme, keys),
		profile: newProfileModel(client, theme, keys),
	}
}

// Init fires the company fetch and the first page's load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCompany(), m.admins.load())
}

func (m Model) fetchCompany() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		company, err := client.Me(ctx)
		return companyLoadedMsg{company: company, err: err}
	}
}

// Update routes messages: global chrome first, then the active page.
// Result messages are routed to the page that owns their type even when
// it is no longer active, so its state stays coherent.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case toastFadeMsg:
		if m.notice != nil && m.notice.id == msg.id {
			m.notice = nil
		}
		return m, nil

	case companyLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("load company", zap.Error(msg.err))
			return m, m.pushToast(toastError, "Failed to load company details")
		}
		m.company = msg.company
		m.doors.setCompany(msg.company)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.capturing() {
			return m, tea.Quit
		}
		if !m.capturing() {
			switch {
			case key.Matches(msg, m.keys.NextPage):
				return m.switchPage((m.page + 1) % 3)
			case key.Matches(msg, m.keys.PrevPage):
				return m.switchPage((m.page + 2) % 3)
			}
		}
	}

	return m.routeToPages(msg)
}

// capturing reports whether the active page is consuming raw text
// input, in which case page-switch and quit keys type instead.
func (m Model) capturing() bool {
	switch m.page {
	case PageAdmins:
		return m.admins.capturing()
	case PageDoors:
		return m.doors.capturing()
	case PageProfile:
		return m.profile.capturing()
	}
	return false
}

// switchPage activates a page, firing its load when it has none of its
// data yet.
func (m Model) switchPage(page Page) (tea.Model, tea.Cmd) {
	m.page = page
	var cmd tea.Cmd
	switch page {
	case PageAdmins:
		if !m.admins.loaded {
			cmd = m.admins.load()
		}
	case PageDoors:
		if !m.doors.loaded {
			cmd = m.doors.load()
		}
	}
	return m, cmd
}

func (m Model) routeToPages(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Key input goes only to the active page; everything else (fetch
	// results, ticks) goes wherever it belongs.
	_, isKey := msg.(tea.KeyMsg)

	if !isKey || m.page == PageAdmins {
		var cmd tea.Cmd
		m.admins, cmd = m.admins.update(msg, m.page == PageAdmins)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.page == PageDoors {
		var cmd tea.Cmd
		var refreshCompany bool
		m.doors, cmd, refreshCompany = m.doors.update(msg, m.page == PageDoors)
		cmds = append(cmds, cmd)
		if refreshCompany {
			cmds = append(cmds, m.fetchCompany())
		}
	}
	if !isKey || m.page == PageProfile {
		var cmd tea.Cmd
		m.profile, cmd = m.profile.update(msg, m.page == PageProfile)
		cmds = append(cmds, cmd)
	}

	// Pages surface notices through their pendingToast fields instead
	// of writing to the shared status bar directly.
	for _, p := range []*pendingToast{m.admins.pending(), m.doors.pending(), m.profile.pending()} {
		if p != nil && p.text != "" {
			cmds = append(cmds, m.pushToast(p.kind, p.text))
			p.text = ""
		}
	}

	return m, tea.Batch(cmds...)
}

// pendingToast is a page's outgoing notice, drained by the root model
// each update.
type pendingToast struct {
	kind toastKind
	text string
}

// View renders sidebar, header, the active page, and the status bar.
func (m Model) View() string {
	if modal := m.activeModal(); modal != "" {
		return modal
	}

	sidebar := m.renderSidebar()
	header := lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render(pageTitles[m.page])

	companyLine := ""
	if m.company.Name != "" {
		companyLine = lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(m.company.Name)
	}

	var body string
	switch m.page {
	case PageAdmins:
		body = m.admins.view()
	case PageDoors:
		body = m.doors.view()
	case PageProfile:
		body = m.profile.view()
	}

	status := m.renderToast()
	if status == "" {
		status = lipgloss.NewStyle().Foreground(m.theme.HelpText).
			Render("tab: switch page • q: quit")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, companyLine, "", body, "", status)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content)
}

// activeModal returns the active page's modal view, or "".
func (m Model) activeModal() string {
	switch m.page {
	case PageAdmins:
		return m.admins.modalView(m.width, m.height)
	case PageDoors:
		return m.doors.modalView(m.width, m.height)
	case PageProfile:
		return m.profile.modalView(m.width, m.height)
	}
	return ""
}

func (m Model) renderSidebar() string {
	item := lipgloss.NewStyle().Foreground(m.theme.FaintText).Padding(0, 1)
	active := lipgloss.NewStyle().
		Foreground(m.theme.SelectedForeground).
		Background(m.theme.SelectedBackground).
		Padding(0, 1)

	var lines []string
	for _, p := range []Page{PageAdmins, PageDoors, PageProfile} {
		style := item
		if p == m.page {
			style = active
		}
		lines = append(lines, style.Render(pageTitles[p]))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(m.theme.BorderColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
