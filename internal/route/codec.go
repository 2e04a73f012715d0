package route

import (
	"net/url"
	"strings"
)

const (
	profilePrefix = "/u/"
	listPrefix    = "/l/"
	albumPrefix   = "/album/"
	rootPath      = "/"
)

// Target is the unit of navigation intent: a view plus its selectors.
//
// A target whose view needs a selector but carries none is a loading or
// not-found state for the page, never an error.
type Target struct {
	View     View
	AlbumID  string
	Username string
	ListID   string
}

// Selector returns the value of the selector the view depends on.
func (t Target) Selector() string {
	switch t.View.Requires() {
	case AlbumSelector:
		return t.AlbumID
	case UsernameSelector:
		return t.Username
	case ListSelector:
		return t.ListID
	default:
		return ""
	}
}

// HasSelectors reports whether any selector field is populated.
func (t Target) HasSelectors() bool {
	return t.AlbumID != "" || t.Username != "" || t.ListID != ""
}

func (t Target) String() string {
	if s := t.Selector(); s != "" {
		return t.View.String() + ":" + s
	}
	return t.View.String()
}

var exactPaths = map[string]View{
	"/lists": Lists,
	"/diary": Diary,
	"/log":   LogAlbum,
	"/login": Login,
	"/admin": Admin,
}

// Normalize strips any query or fragment and trailing slashes.
// The empty path and "/" both normalize to "/".
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return rootPath
	}
	return path
}

// IsRoot reports whether path is the bare root once normalized.
func IsRoot(path string) bool {
	return Normalize(path) == rootPath
}

// Decode maps a client path to a [Target]. Unmatched input is [NotFound].
func Decode(path string) Target {
	p := Normalize(path)

	if seg, ok := segment(p, profilePrefix); ok {
		return Target{View: Profile, Username: seg}
	}
	if seg, ok := segment(p, listPrefix); ok {
		return Target{View: ListDetail, ListID: seg}
	}
	if seg, ok := segment(p, albumPrefix); ok {
		return Target{View: AlbumDetail, AlbumID: seg}
	}
	if v, ok := exactPaths[p]; ok {
		return Target{View: v}
	}
	if p == rootPath {
		return Target{View: Home}
	}
	return Target{View: NotFound}
}

// segment extracts the single path segment following prefix.
func segment(p, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(p, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	if unescaped, err := url.PathUnescape(rest); err == nil && unescaped != "" {
		return unescaped, true
	}
	return rest, true
}

// Encode produces the canonical path for t. Views without a path of their own,
// and views missing the selector they need, fall back to "/".
func Encode(t Target) string {
	switch t.View {
	case Profile:
		if t.Username != "" {
			return profilePrefix + url.PathEscape(t.Username)
		}
	case ListDetail:
		if t.ListID != "" {
			return listPrefix + url.PathEscape(t.ListID)
		}
	case AlbumDetail:
		if t.AlbumID != "" {
			return albumPrefix + url.PathEscape(t.AlbumID)
		}
	case Lists:
		return "/lists"
	case Diary:
		return "/diary"
	case LogAlbum:
		return "/log"
	case Login:
		return "/login"
	case Admin:
		return "/admin"
	}
	return rootPath
}

// Addressable reports whether t has a canonical path that decodes back to it.
func Addressable(t Target) bool {
	switch t.View {
	case Home, Lists, Diary, LogAlbum, Login, Admin:
		return true
	case Profile, ListDetail, AlbumDetail:
		return t.Selector() != ""
	default:
		return false
	}
}

// Equivalent compares the view and the selector that view requires.
func Equivalent(a, b Target) bool {
	return a.View == b.View && a.Selector() == b.Selector()
}
