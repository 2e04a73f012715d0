package route

import "fmt"

// View is a named screen in the closed set the client can render.
type View int

const (
	Landing View = iota
	Onboarding
	Login
	Home
	Diary
	Profile
	Lists
	ListDetail
	LogAlbum
	WriteReview
	AlbumDetail
	Admin
	NotFound
)

var viewNames = [...]string{
	Landing:     "landing",
	Onboarding:  "onboarding",
	Login:       "login",
	Home:        "home",
	Diary:       "diary",
	Profile:     "profile",
	Lists:       "lists",
	ListDetail:  "list-detail",
	LogAlbum:    "log-album",
	WriteReview: "write-review",
	AlbumDetail: "album-detail",
	Admin:       "admin",
	NotFound:    "not-found",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return viewNames[v]
}

// Valid reports whether v is a member of the enumeration.
func (v View) Valid() bool {
	return v >= 0 && int(v) < len(viewNames)
}

// ParseView resolves a kebab-case view name such as "list-detail".
func ParseView(name string) (View, error) {
	for i, n := range viewNames {
		if n == name {
			return View(i), nil
		}
	}
	return NotFound, fmt.Errorf("unknown view %q", name)
}

// Views returns every view in declaration order.
func Views() []View {
	out := make([]View, len(viewNames))
	for i := range viewNames {
		out[i] = View(i)
	}
	return out
}

// Selector names the view-scoped identifier a view needs to render its subject.
type Selector int

const (
	NoSelector Selector = iota
	AlbumSelector
	UsernameSelector
	ListSelector
)

func (s Selector) String() string {
	switch s {
	case AlbumSelector:
		return "albumId"
	case UsernameSelector:
		return "username"
	case ListSelector:
		return "listId"
	default:
		return "none"
	}
}

// Requires returns the selector v depends on.
//
// Profile only needs a username when it shows someone other than the caller.
func (v View) Requires() Selector {
	switch v {
	case AlbumDetail, WriteReview:
		return AlbumSelector
	case Profile:
		return UsernameSelector
	case ListDetail:
		return ListSelector
	default:
		return NoSelector
	}
}
