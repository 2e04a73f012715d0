package nav

import "github.com/desertthunder/listenr/internal/route"

// State is what is on screen.
type State struct {
	Current  route.Target
	Previous route.Target
	// SidebarOpen is a layout affordance and carries no navigation meaning.
	SidebarOpen bool
}

// Env is the context a transition is evaluated in.
type Env struct {
	// Self is the authenticated username, empty for guests.
	Self string
}

// Reduce applies in to s. Previous becomes the old Current; omitted selectors
// survive, cleared ones are emptied.
//
// A profile target left without a username resolves to the caller's own
// profile when Env.Self is known, so the address is always shareable.
func Reduce(s State, in Intent, env Env) State {
	if !in.View.Valid() {
		in.View = route.NotFound
	}

	next := s
	next.Previous = s.Current
	next.Current = in.Apply(s.Current)

	if next.Current.View == route.Profile && next.Current.Username == "" && env.Self != "" {
		next.Current.Username = env.Self
	}
	return next
}
