package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/services"
	"github.com/desertthunder/listenr/internal/session"
)

// Authenticator is what the login page needs from the session store.
type Authenticator interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, username, email, password string) error
}

// Props is everything a page receives. Navigate, Cancel and Back return
// commands so the transition happens on the update loop.
type Props struct {
	Ctx      context.Context
	Navigate func(nav.Intent) tea.Cmd
	Cancel   func() tea.Cmd
	// Back steps back through history for pages that capture the global
	// back key.
	Back     func() tea.Cmd

	AlbumID  string
	Username string
	ListID   string

	// ReadOnly hides edit, delete and collaborator actions.
	ReadOnly bool
	// Self is nil for guests.
	Self *session.Identity

	Directory services.Directory
	Auth      Authenticator

	Width  int
	Height int
}

// Page is one screen.
type Page interface {
	Init() tea.Cmd
	Update(tea.Msg) (Page, tea.Cmd)
	View() string
	Keys() []key.Binding
}

// capturer is implemented by pages that are taking text input; global
// single-key bindings are suspended while Capturing returns true.
type capturer interface {
	Capturing() bool
}

var registry = map[route.View]func(Props) Page{
	route.Landing:     newLandingPage,
	route.Onboarding:  newOnboardingPage,
	route.Login:       newLoginPage,
	route.Home:        newHomePage,
	route.Diary:       newDiaryPage,
	route.Profile:     newProfilePage,
	route.Lists:       newListsPage,
	route.ListDetail:  newListDetailPage,
	route.LogAlbum:    newLogAlbumPage,
	route.WriteReview: newWriteReviewPage,
	route.AlbumDetail: newAlbumDetailPage,
	route.Admin:       newAdminPage,
	route.NotFound:    newNotFoundPage,
}

// mount builds the page registered for v, falling back to not-found.
func mount(v route.View, p Props) Page {
	if ctor, ok := registry[v]; ok {
		return ctor(p)
	}
	return newNotFoundPage(p)
}

func capturing(p Page) bool {
	c, ok := p.(capturer)
	return ok && c.Capturing()
}
