package nav

import (
	"fmt"

	"github.com/desertthunder/listenr/internal/route"
)

type fieldOp uint8

const (
	keepField fieldOp = iota
	clearField
	setField
)

// Field is a selector update: leave unchanged, clear, or set to a value.
// The zero value is [Keep].
type Field struct {
	op    fieldOp
	value string
}

// Keep leaves the selector as it is.
func Keep() Field { return Field{} }

// Clear empties the selector.
func Clear() Field { return Field{op: clearField} }

// Set replaces the selector. An empty value clears it.
func Set(v string) Field {
	if v == "" {
		return Clear()
	}
	return Field{op: setField, value: v}
}

// IsKeep reports whether the field leaves the selector untouched.
func (f Field) IsKeep() bool { return f.op == keepField }

// Value returns the value being set, if any.
func (f Field) Value() (string, bool) {
	return f.value, f.op == setField
}

func (f Field) apply(cur string) string {
	switch f.op {
	case clearField:
		return ""
	case setField:
		return f.value
	default:
		return cur
	}
}

func (f Field) String() string {
	switch f.op {
	case clearField:
		return "clear"
	case setField:
		return fmt.Sprintf("set(%s)", f.value)
	default:
		return "keep"
	}
}

// Intent is a request to show a view, with per-selector updates.
type Intent struct {
	View     route.View
	AlbumID  Field
	Username Field
	ListID   Field
}

// To builds an intent for v that keeps every selector.
func To(v route.View) Intent {
	return Intent{View: v}
}

// IntentFor builds an intent that reproduces t exactly, clearing selectors t
// does not carry.
func IntentFor(t route.Target) Intent {
	return Intent{
		View:     t.View,
		AlbumID:  Set(t.AlbumID),
		Username: Set(t.Username),
		ListID:   Set(t.ListID),
	}
}

func (i Intent) WithAlbum(id string) Intent {
	i.AlbumID = Set(id)
	return i
}

func (i Intent) WithUser(username string) Intent {
	i.Username = Set(username)
	return i
}

func (i Intent) WithList(id string) Intent {
	i.ListID = Set(id)
	return i
}

// Clearing clears every selector.
func (i Intent) Clearing() Intent {
	i.AlbumID, i.Username, i.ListID = Clear(), Clear(), Clear()
	return i
}

// Apply returns t with the intent's view and selector updates applied.
func (i Intent) Apply(t route.Target) route.Target {
	return route.Target{
		View:     i.View,
		AlbumID:  i.AlbumID.apply(t.AlbumID),
		Username: i.Username.apply(t.Username),
		ListID:   i.ListID.apply(t.ListID),
	}
}

func (i Intent) String() string {
	return fmt.Sprintf("%s{album:%s user:%s list:%s}", i.View, i.AlbumID, i.Username, i.ListID)
}
