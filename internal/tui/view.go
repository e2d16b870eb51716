package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgallion1/paperdesk/internal/chunker"
	"github.com/dgallion1/paperdesk/internal/player"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.styles

	title := "PDF → Audiobook"
	if t := m.session.Title(); t != "" {
		title += "  " + s.Muted.Render(t)
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.controlsLine())
	b.WriteString("\n\n")

	switch m.mode {
	case modeNotice:
		b.WriteString(m.noticeView())
	case modeOpen, modeExport:
		b.WriteString(s.Prompt.Render(m.prompt.View()))
	default:
		label := "Page Text Preview (editable):"
		box := s.Preview
		if m.mode == modeEdit {
			label = "Editing page text (tab or esc when done):"
			box = s.Editing
		}
		b.WriteString(s.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(box.Render(m.preview.View()))
	}
	b.WriteString("\n")

	b.WriteString(m.session.Label())
	if text := m.preview.Value(); strings.TrimSpace(text) != "" {
		est := chunker.SpeakingTime(text, m.player.Rate()).Round(time.Second)
		b.WriteString(s.Muted.Render(fmt.Sprintf("  %d words, ~%s", chunker.CountWords(text), est)))
	}
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(s.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) controlsLine() string {
	s := m.styles
	state := m.player.State()
	stateText := state.String()
	if state == player.Playing {
		stateText = s.Playing.Render(stateText)
	}
	line := fmt.Sprintf("State: %s   Rate: %d wpm   Volume: %.1f", stateText, m.player.Rate(), m.player.Volume())
	if m.player.Exporting() {
		line += "   " + m.spinner.View() + " exporting"
	}
	return line
}

func (m *Model) noticeView() string {
	s := m.styles
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Headline[m.notice.level].Render(m.notice.title),
		"",
		m.notice.body,
		"",
		s.Muted.Render("enter to dismiss"),
	)
	return s.Notice[m.notice.level].Width(max(20, m.width-4)).Render(body)
}
