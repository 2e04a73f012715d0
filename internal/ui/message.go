package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/listenr/internal/models"
	"github.com/desertthunder/listenr/internal/nav"
)

// restoredMsg reports that the persisted token has been resolved.
type restoredMsg struct{ err error }

// navigateMsg carries an intent that has already been narrowed.
type navigateMsg struct{ intent nav.Intent }

// cancelMsg asks to return to the previous target.
type cancelMsg struct{}

// backMsg steps back through history, the same as the global back key.
type backMsg struct{}

type authDoneMsg struct{ err error }

type loggedOutMsg struct{ err error }

type sharedMsg struct {
	url string
	err error
}

// Fetch results carry the selector they were issued for so a page can drop
// results that arrive after its selector changed.
type profileFetchedMsg struct {
	username string
	profile  *models.Profile
	err      error
}

type listFetchedMsg struct {
	id   string
	list *models.List
	err  error
}

type albumFetchedMsg struct {
	id    string
	album *models.Album
	err   error
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
