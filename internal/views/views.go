// Package views lists every screen the client can show together with the
// contract a page for it must honour: the selector it needs, whether it is
// drawn inside the navigation chrome and whether guests may reach it.
package views

import (
	"github.com/desertthunder/listenr/internal/route"
)

// Contract describes one view.
type Contract struct {
	View     route.View
	Title    string
	Requires route.Selector
	// Chrome is true when an authenticated user sees the view inside the
	// sidebar/header layout.
	Chrome bool
	// AuthOnly views are never reachable from a guest branch.
	AuthOnly bool
}

var contracts = [...]Contract{
	route.Landing:     {View: route.Landing, Title: "Welcome"},
	route.Onboarding:  {View: route.Onboarding, Title: "Getting Started", AuthOnly: true},
	route.Login:       {View: route.Login, Title: "Sign In"},
	route.Home:        {View: route.Home, Title: "Home", Chrome: true},
	route.Diary:       {View: route.Diary, Title: "Diary", Chrome: true, AuthOnly: true},
	route.Profile:     {View: route.Profile, Title: "Profile", Chrome: true},
	route.Lists:       {View: route.Lists, Title: "Lists", Chrome: true, AuthOnly: true},
	route.ListDetail:  {View: route.ListDetail, Title: "List", Chrome: true},
	route.LogAlbum:    {View: route.LogAlbum, Title: "Log an Album", AuthOnly: true},
	route.WriteReview: {View: route.WriteReview, Title: "Write a Review", AuthOnly: true},
	route.AlbumDetail: {View: route.AlbumDetail, Title: "Album", Chrome: true},
	route.Admin:       {View: route.Admin, Title: "Admin", Chrome: true, AuthOnly: true},
	route.NotFound:    {View: route.NotFound, Title: "Not Found", Chrome: true},
}

func init() {
	for _, v := range route.Views() {
		contracts[v].Requires = v.Requires()
	}
}

// Lookup returns the contract for v. Unknown views resolve to the not-found
// contract.
func Lookup(v route.View) Contract {
	if !v.Valid() {
		return contracts[route.NotFound]
	}
	return contracts[v]
}

// All returns every contract in enumeration order.
func All() []Contract {
	out := make([]Contract, len(contracts))
	copy(out, contracts[:])
	return out
}

// Sidebar returns the views offered in the authenticated sidebar, in display
// order. Admin is included only for administrators.
func Sidebar(admin bool) []route.View {
	items := []route.View{route.Home, route.Diary, route.LogAlbum, route.Lists, route.Profile}
	if admin {
		items = append(items, route.Admin)
	}
	return items
}

// AuthOnly reports whether t can only be shown to an authenticated user. A
// profile without a username means the caller's own profile.
func AuthOnly(t route.Target) bool {
	if t.View == route.Profile && t.Username == "" {
		return true
	}
	return Lookup(t.View).AuthOnly
}
