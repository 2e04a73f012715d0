package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/listenr/internal/models"
	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/views"
)

var _ list.Item = albumItem{}

// albumItem wraps [models.ListAlbum] to implement [list.Item].
type albumItem struct {
	rank  int
	album models.ListAlbum
}

func (i albumItem) FilterValue() string { return i.album.Title }
func (i albumItem) Title() string       { return fmt.Sprintf("%d. %s", i.rank, i.album.Title) }
func (i albumItem) Description() string { return i.album.Artist }

// sidebarItem is one entry of the authenticated sidebar. A zero view with
// signOut set is the sign out action.
type sidebarItem struct {
	view    route.View
	signOut bool
}

func (i sidebarItem) Title() string {
	if i.signOut {
		return "Sign out"
	}
	return views.Lookup(i.view).Title
}

func sidebarItems(admin bool) []sidebarItem {
	var items []sidebarItem
	for _, v := range views.Sidebar(admin) {
		items = append(items, sidebarItem{view: v})
	}
	return append(items, sidebarItem{signOut: true})
}
