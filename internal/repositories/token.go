package repositories

import (
	"context"
	"database/sql"
)

// TokenKey is the fixed key the credential token lives under.
const TokenKey = "musicboxd_token"

// TokenRepository persists the single credential token.
type TokenRepository struct {
	meta *MetadataRepository
}

// NewTokenRepository creates a new [TokenRepository] with the given database connection
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{meta: NewMetadataRepository(db)}
}

// Load returns the stored token, or "" when none is stored.
func (r *TokenRepository) Load(ctx context.Context) (string, error) {
	value, err := r.meta.Get(ctx, TokenKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Save replaces the stored token.
func (r *TokenRepository) Save(ctx context.Context, token string) error {
	return r.meta.Set(ctx, TokenKey, []byte(token))
}

// Clear removes the stored token.
func (r *TokenRepository) Clear(ctx context.Context) error {
	return r.meta.Delete(ctx, TokenKey)
}
