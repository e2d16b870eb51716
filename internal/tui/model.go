// Package tui is the interactive terminal reader: it previews a document
// page by page and drives the player.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgallion1/paperdesk/internal/document"
	"github.com/dgallion1/paperdesk/internal/player"
	"github.com/dgallion1/paperdesk/internal/session"
)

const (
	rateStep   = 10
	volumeStep = 0.1
)

// Player is the part of *player.Player the reader drives.
type Player interface {
	Play(text string, onDone func(error)) error
	Stop()
	Pause() error
	Save(text, outPath string, onDone func(path string, err error)) error
	SetRate(r int) int
	SetVolume(v float64) float64
	Rate() int
	Volume() float64
	State() player.State
	Exporting() bool
}

// Opener loads a document from a path.
type Opener func(path string) (*document.Document, error)

type mode int

const (
	modeView mode = iota
	modeEdit
	modeOpen
	modeExport
	modeNotice
)

// Model is the reader's tea.Model.
type Model struct {
	player  Player
	open    Opener
	log     *slog.Logger
	keys    *KeyMap
	styles  *Styles
	session *session.Session

	preview textarea.Model
	prompt  textinput.Model
	spinner spinner.Model
	help    help.Model

	mode     mode
	notice   notice
	status   string
	path     string
	initial  string
	events   chan tea.Msg
	width    int
	height   int
	quitting bool
}

var (
	_ tea.Model = (*Model)(nil)
	_ Player    = (*player.Player)(nil)
)

// New creates a reader model.
func New(p Player, open Opener, log *slog.Logger) *Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Placeholder = "Open a document with o, or type text to read."
	ta.Blur()

	ti := textinput.New()
	ti.CharLimit = 4096

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		player:  p,
		open:    open,
		log:     log,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		session: session.New(),
		preview: ta,
		prompt:  ti,
		spinner: sp,
		help:    help.New(),
		events:  make(chan tea.Msg, 16),
		width:   80,
		height:  24,
	}
}

// WithFile makes the reader open path on start.
func (m *Model) WithFile(path string) *Model {
	m.initial = path
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent(), tea.SetWindowTitle("PDF → Audiobook")}
	if m.initial != "" {
		cmds = append(cmds, m.openCmd(m.initial))
	}
	return tea.Batch(cmds...)
}

// waitForEvent delivers the next background event to Update.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// send queues a background event. It never blocks the player's goroutine.
func (m *Model) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
		m.log.Warn("dropped reader event", "event", fmt.Sprintf("%T", msg))
	}
}

func (m *Model) openCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.open(path)
		return documentLoadedMsg{path: path, doc: doc, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case documentLoadedMsg:
		return m, m.handleLoaded(msg)

	case playbackDoneMsg:
		m.handlePlaybackDone(msg)
		return m, m.waitForEvent()

	case exportDoneMsg:
		m.handleExportDone(msg)
		return m, m.waitForEvent()

	case spinner.TickMsg:
		if !m.player.Exporting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		switch m.mode {
		case modeNotice:
			return m, m.handleNoticeKey(msg)
		case modeOpen, modeExport:
			return m, m.handlePromptKey(msg)
		case modeEdit:
			return m, m.handleEditKey(msg)
		}
		return m.handleViewKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeEdit:
		m.preview, cmd = m.preview.Update(msg)
	case modeOpen, modeExport:
		m.prompt, cmd = m.prompt.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()

	case key.Matches(msg, k.Open):
		return m, m.startPrompt(modeOpen, "Open: ", m.path)

	case key.Matches(msg, k.Play):
		m.play()

	case key.Matches(msg, k.Stop):
		m.player.Stop()
		m.status = "Stopped."

	case key.Matches(msg, k.Pause):
		if err := m.player.Pause(); err != nil {
			m.showNotice(levelInfo, "Note", err.Error())
		}

	case key.Matches(msg, k.Next):
		if m.session.Next() {
			m.showPage()
		}

	case key.Matches(msg, k.Prev):
		if m.session.Prev() {
			m.showPage()
		}

	case key.Matches(msg, k.Faster):
		m.player.SetRate(m.player.Rate() + rateStep)

	case key.Matches(msg, k.Slower):
		m.player.SetRate(m.player.Rate() - rateStep)

	case key.Matches(msg, k.Louder):
		m.player.SetVolume(roundVolume(m.player.Volume() + volumeStep))

	case key.Matches(msg, k.Quieter):
		m.player.SetVolume(roundVolume(m.player.Volume() - volumeStep))

	case key.Matches(msg, k.Export):
		if strings.TrimSpace(m.exportText()) == "" {
			m.showNotice(levelWarn, "No text", "No text to export.")
			return m, nil
		}
		return m, m.startPrompt(modeExport, "Save as (.wav or .mp3): ", m.defaultExportPath())

	case key.Matches(msg, k.Edit):
		m.mode = modeEdit
		m.status = "Editing page text."
		return m, m.preview.Focus()
	}
	return m, nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.EndEdit) {
		m.commitEdit()
		m.preview.Blur()
		m.mode = modeView
		m.status = ""
		return nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return cmd
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endPrompt()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.prompt.Value())
		which := m.mode
		m.endPrompt()
		if value == "" {
			return nil
		}
		if which == modeOpen {
			m.status = "Opening " + value + "..."
			return m.openCmd(value)
		}
		return m.export(value)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) handleNoticeKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) || msg.String() == " " {
		m.mode = modeView
	}
	return nil
}

func (m *Model) startPrompt(md mode, label, value string) tea.Cmd {
	m.mode = md
	m.prompt.Prompt = label
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	return m.prompt.Focus()
}

func (m *Model) endPrompt() {
	m.prompt.Blur()
	m.prompt.Reset()
	m.mode = modeView
}

func (m *Model) handleLoaded(msg documentLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("open document", "path", msg.path, "error", msg.err)
		m.status = ""
		m.showNotice(levelError, "Error", "Failed to open document: "+msg.err.Error())
		return nil
	}
	n := m.session.Load(msg.doc)
	m.path = msg.path
	m.showPage()
	m.status = ""
	m.log.Info("document loaded", "path", msg.path, "pages", n)
	m.showNotice(levelInfo, "Loaded", fmt.Sprintf("Loaded %d non-empty pages.", n))
	return nil
}

func (m *Model) play() {
	m.commitEdit()
	text := strings.TrimSpace(m.preview.Value())
	if text == "" {
		m.showNotice(levelWarn, "No text", "No text to play.")
		return
	}
	err := m.player.Play(text, func(err error) {
		m.send(playbackDoneMsg{err: err})
	})
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Playing " + m.session.Label() + "."
}

func (m *Model) handlePlaybackDone(msg playbackDoneMsg) {
	switch {
	case msg.err == nil:
		m.status = "Finished."
	case errors.Is(msg.err, context.Canceled):
		// stopped or replaced by a newer playback
	default:
		m.log.Error("playback failed", "error", msg.err)
		m.showNotice(levelError, "Playback failed", msg.err.Error())
	}
}

// exportText is the whole document, or the preview when nothing is loaded.
func (m *Model) exportText() string {
	m.commitEdit()
	if m.session.Len() > 0 {
		return m.session.All()
	}
	return strings.TrimSpace(m.preview.Value())
}

func (m *Model) defaultExportPath() string {
	if m.path == "" {
		return "audiobook.wav"
	}
	return strings.TrimSuffix(m.path, filepath.Ext(m.path)) + ".wav"
}

func (m *Model) export(out string) tea.Cmd {
	if filepath.Ext(out) == "" {
		out += ".wav"
	}
	err := m.player.Save(m.exportText(), out, func(path string, err error) {
		m.send(exportDoneMsg{path: path, err: err})
	})
	switch {
	case errors.Is(err, player.ErrUnsupportedFormat):
		m.showNotice(levelError, "Unsupported format", err.Error())
		return nil
	case err != nil:
		m.status = err.Error()
		return nil
	}
	m.status = "Exporting to " + out + "..."
	return m.spinner.Tick
}

func (m *Model) handleExportDone(msg exportDoneMsg) {
	m.status = ""
	var fallback *player.FallbackError
	switch {
	case msg.err == nil:
		format := strings.ToUpper(strings.TrimPrefix(filepath.Ext(msg.path), "."))
		m.showNotice(levelInfo, "Saved", fmt.Sprintf("Saved %s to: %s", format, msg.path))
	case errors.As(msg.err, &fallback):
		m.log.Warn("mp3 conversion failed", "wav", fallback.WAVPath, "error", fallback.Err)
		m.showNotice(levelWarn, "Saved as WAV instead",
			fmt.Sprintf("Could not convert to MP3 automatically: %v\nSaved WAV at %s", fallback.Err, fallback.WAVPath))
	case errors.Is(msg.err, context.Canceled):
		m.status = "Export cancelled."
	default:
		m.log.Error("export failed", "path", msg.path, "error", msg.err)
		m.showNotice(levelError, "Export failed", msg.err.Error())
	}
}

func (m *Model) showNotice(level noticeLevel, title, body string) {
	if m.mode == modeEdit {
		m.commitEdit()
		m.preview.Blur()
	}
	m.notice = notice{level: level, title: title, body: body}
	m.mode = modeNotice
}

// showPage replaces the preview with the current page.
func (m *Model) showPage() {
	m.preview.SetValue(m.session.Current())
	m.preview.MoveToBegin()
}

// commitEdit stores preview edits back into the session.
func (m *Model) commitEdit() {
	if m.session.Len() == 0 {
		return
	}
	if v := m.preview.Value(); v != m.session.Current() {
		m.session.Edit(v)
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.player.Stop()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) layout() {
	m.preview.SetWidth(max(20, m.width-4))
	m.preview.SetHeight(max(3, m.height-10))
	m.prompt.Width = max(20, m.width-30)
	m.help.Width = m.width
}

func roundVolume(v float64) float64 {
	return math.Round(v*10) / 10
}

// Session exposes the reader's session.
func (m *Model) Session() *session.Session { return m.session }
