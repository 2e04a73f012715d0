// Package ui implements the terminal client using bubbletea's Elm architecture.
//
// The root [Model] owns the session store and, once the persisted token has
// been restored, the navigation [nav.Machine]. After every message it asks the
// gate for a render branch and mounts the page registered for the branch's
// view. Pages never see the machine: they receive [Props] carrying the
// selectors they need and a navigation callback already narrowed for the
// branch they were mounted in.
//
// Global keys: [ and ] walk history, ctrl+l opens the address bar, m toggles
// the sidebar, o opens a share link for the current address, q quits.
package ui
