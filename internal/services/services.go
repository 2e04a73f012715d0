package services

import (
	"context"

	"github.com/desertthunder/listenr/internal/models"
)

// Auth covers the credential endpoints.
type Auth interface {
	// Login exchanges email and password for an access token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates an account and returns its access token.
	Register(ctx context.Context, username, email, password string) (string, error)
	// Me resolves token to the identity it belongs to.
	Me(ctx context.Context, token string) (*models.User, error)
}

// Directory looks up public resources by their selector.
type Directory interface {
	// UserByUsername returns the public profile for username.
	UserByUsername(ctx context.Context, username string) (*models.Profile, error)
	// List returns a list with its albums and collaborators.
	List(ctx context.Context, id string) (*models.List, error)
	// Album returns album metadata.
	Album(ctx context.Context, id string) (*models.Album, error)
}

var (
	_ Auth      = (*APIService)(nil)
	_ Directory = (*APIService)(nil)
)
