package gate

import (
	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/views"
)

// Narrower filters an intent issued from inside a branch. cur is the target
// the intent will be applied to. The second result is false when the intent
// must be dropped.
type Narrower func(cur route.Target, in nav.Intent) (nav.Intent, bool)

// Narrower returns the filter pages in this branch navigate through.
func (d Decision) Narrower() Narrower {
	switch d.Branch {
	case Loading:
		return func(route.Target, nav.Intent) (nav.Intent, bool) { return nav.Intent{}, false }
	case GuestProfile:
		return guarded(guestProfile)
	case GuestList:
		return guarded(guestList)
	case GuestAlbum:
		return guarded(guestAlbum)
	case GuestNotFound:
		return guarded(guestNotFound)
	case Landing, Login:
		return guarded(func(_ route.Target, in nav.Intent) nav.Intent { return in.Clearing() })
	}
	return func(_ route.Target, in nav.Intent) (nav.Intent, bool) { return in, true }
}

// Narrow is shorthand for d.Narrower()(cur, in).
func (d Decision) Narrow(cur route.Target, in nav.Intent) (nav.Intent, bool) {
	return d.Narrower()(cur, in)
}

// guarded applies policy and rewrites anything that would land on an
// authenticated-only target, or on a guest page without its selector, to the
// login screen.
func guarded(policy func(route.Target, nav.Intent) nav.Intent) Narrower {
	return func(cur route.Target, in nav.Intent) (nav.Intent, bool) {
		out := policy(cur, in)
		next := out.Apply(cur)
		if views.AuthOnly(next) || (next.View.Requires() != route.NoSelector && next.Selector() == "") {
			return nav.To(route.Login).Clearing(), true
		}
		return out, true
	}
}

// guestProfile lets the page pick a view and an album; the viewed username
// is fixed while on the profile and dropped on the way out.
func guestProfile(_ route.Target, in nav.Intent) nav.Intent {
	out := nav.Intent{View: in.View, AlbumID: in.AlbumID, ListID: nav.Clear()}
	if in.View != route.Profile {
		out.Username = nav.Clear()
	}
	return out
}

func guestList(_ route.Target, in nav.Intent) nav.Intent {
	return nav.Intent{View: in.View, AlbumID: in.AlbumID, ListID: in.ListID, Username: nav.Clear()}
}

func guestAlbum(_ route.Target, in nav.Intent) nav.Intent {
	return nav.Intent{View: in.View, AlbumID: in.AlbumID, Username: nav.Clear(), ListID: nav.Clear()}
}

func guestNotFound(_ route.Target, in nav.Intent) nav.Intent {
	if in.View != route.Login {
		in.View = route.Home
	}
	return nav.To(in.View).Clearing()
}
