// Package gate picks the render branch for the current session and route and
// narrows the navigation a page may perform from inside that branch.
package gate

import (
	"fmt"

	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/views"
)

// Branch is a render branch.
type Branch int

const (
	Loading Branch = iota
	Landing
	GuestProfile
	GuestList
	GuestAlbum
	GuestNotFound
	Login
	Shell
	Bare
)

var branchNames = [...]string{
	Loading:       "loading",
	Landing:       "landing",
	GuestProfile:  "guest-profile",
	GuestList:     "guest-list",
	GuestAlbum:    "guest-album",
	GuestNotFound: "guest-not-found",
	Login:         "login",
	Shell:         "shell",
	Bare:          "bare",
}

func (b Branch) String() string {
	if b < 0 || int(b) >= len(branchNames) {
		return fmt.Sprintf("branch(%d)", int(b))
	}
	return branchNames[b]
}

// Guest reports whether the branch renders a restricted guest shell.
func (b Branch) Guest() bool {
	switch b {
	case GuestProfile, GuestList, GuestAlbum, GuestNotFound:
		return true
	}
	return false
}

// Input is everything the gate looks at.
type Input struct {
	Loading       bool
	Authenticated bool
	// RawPath is the address as typed or restored, before decoding.
	RawPath string
	Current route.Target
}

// Decision is the outcome of [Evaluate].
type Decision struct {
	Branch Branch
	// View is the page to mount. It differs from the current target's view for
	// the landing and login branches.
	View route.View
	// Chrome is true when the page is drawn inside the sidebar/header layout.
	Chrome bool
	// ReadOnly disables edit, delete and collaborator actions.
	ReadOnly bool
	// SignIn shows a persistent sign in affordance.
	SignIn bool
}

type rule struct {
	branch Branch
	match  func(Input) bool
}

func anonymous(in Input) bool { return !in.Loading && !in.Authenticated }

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{Loading, func(in Input) bool { return in.Loading }},
	{Landing, func(in Input) bool { return anonymous(in) && route.IsRoot(in.RawPath) }},
	{GuestProfile, func(in Input) bool {
		return anonymous(in) && in.Current.View == route.Profile && in.Current.Username != ""
	}},
	{GuestList, func(in Input) bool {
		return anonymous(in) && in.Current.View == route.ListDetail && in.Current.ListID != ""
	}},
	{GuestAlbum, func(in Input) bool {
		return anonymous(in) && in.Current.View == route.AlbumDetail && in.Current.AlbumID != ""
	}},
	{GuestNotFound, func(in Input) bool { return anonymous(in) && in.Current.View == route.NotFound }},
	{Login, anonymous},
	{Bare, func(in Input) bool { return !views.Lookup(in.Current.View).Chrome }},
	{Shell, func(Input) bool { return true }},
}

// Evaluate returns the render branch for in.
func Evaluate(in Input) Decision {
	branch := Shell
	for _, r := range rules {
		if r.match(in) {
			branch = r.branch
			break
		}
	}

	d := Decision{Branch: branch, View: in.Current.View}
	switch branch {
	case Landing:
		d.View = route.Landing
	case Login:
		d.View = route.Login
	case Shell:
		d.Chrome = true
	case GuestProfile, GuestList, GuestAlbum:
		d.ReadOnly = true
		d.SignIn = true
	case GuestNotFound:
		d.SignIn = true
	}
	return d
}
