// Package models defines the wire types exchanged with the music diary API.
//
//   - [User] : the authenticated identity returned by auth/me
//   - [Profile] : a public profile looked up by username
//   - [List] : a curated album list with its entries and collaborators
//   - [Album] : album metadata shown on the album page
package models
