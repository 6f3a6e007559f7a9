package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastFadeDelay is how long a notice stays visible in the status bar.
const toastFadeDelay = 3 * time.Second

// toastKind selects the notice accent.
type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// toast is a transient status-bar notice.
type toast struct {
	kind toastKind
	text string
	id   int
}

// toastFadeMsg clears the notice with the matching id. Ids keep an old
// fade timer from clearing a newer notice.
type toastFadeMsg struct{ id int }

// pushToast replaces the current notice and schedules its fade.
func (m *Model) pushToast(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	m.notice = &toast{kind: kind, text: text, id: m.toastSeq}
	id := m.toastSeq
	return tea.Tick(toastFadeDelay, func(time.Time) tea.Msg {
		return toastFadeMsg{id: id}
	})
}

// renderToast renders the active notice, or "" when there is none.
func (m *Model) renderToast() string {
	if m.notice == nil {
		return ""
	}
	color := m.theme.SuccessText
	if m.notice.kind == toastError {
		color = m.theme.ErrorText
	}
	return lipgloss.NewStyle().Foreground(color).Render(m.notice.text)
}
