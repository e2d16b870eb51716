package tui

import "github.com/dgallion1/paperdesk/internal/document"

// documentLoadedMsg is sent when an open request finishes.
type documentLoadedMsg struct {
	path string
	doc  *document.Document
	err  error
}

// playbackDoneMsg is sent from the player's completion callback.
type playbackDoneMsg struct {
	err error
}

// exportDoneMsg is sent from the player's export callback.
type exportDoneMsg struct {
	path string
	err  error
}

type noticeLevel int

const (
	levelInfo noticeLevel = iota
	levelWarn
	levelError
)

// notice is a modal message the user must dismiss.
type notice struct {
	level noticeLevel
	title string
	body  string
}
