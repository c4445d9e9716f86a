// Package legacy reads and revokes tokens issued before the cache cutover.
// New tokens are never written here.
package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/logger"
	"github.com/milanbella/sa-oauthdb/model"
	"github.com/milanbella/sa-oauthdb/scope"
)

const (
	queryAccessTokenByID = `
		SELECT token, clientId, userId, email, type, scope, createdAt, expiresAt, profileChangedAt
		FROM tokens
		WHERE token = ?`

	deleteAccessTokenByID = `
		DELETE FROM tokens
		WHERE token = ?`

	queryActiveClientsByUID = `
		SELECT tokens.clientId, clients.name, tokens.scope, tokens.createdAt, tokens.expiresAt
		FROM tokens
		LEFT OUTER JOIN clients ON clients.id = tokens.clientId
		WHERE tokens.userId = ? AND tokens.expiresAt > NOW() AND clients.canGrant = 0
		ORDER BY tokens.createdAt DESC`

	queryAccessTokensByUID = `
		SELECT tokens.token, tokens.clientId, tokens.userId, tokens.email, tokens.type, tokens.scope,
			tokens.createdAt, tokens.expiresAt, tokens.profileChangedAt,
			clients.name, clients.canGrant
		FROM tokens
		LEFT OUTER JOIN clients ON clients.id = tokens.clientId
		WHERE tokens.userId = ?
		ORDER BY tokens.createdAt DESC`

	queryRefreshTokensByUID = `
		SELECT token, clientId, userId, scope, createdAt, lastUsedAt
		FROM refreshTokens
		WHERE userId = ?
		ORDER BY lastUsedAt DESC`
)

// MySQLStore serves the legacy tokens and refreshTokens tables.
type MySQLStore struct {
	db      *sql.DB
	timeout time.Duration
}

// NewMySQLStore returns a store over db. Each query is bounded by timeout.
func NewMySQLStore(db *sql.DB, timeout time.Duration) *MySQLStore {
	return &MySQLStore{db: db, timeout: timeout}
}

func (s *MySQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Health checks that MySQL answers.
func (s *MySQLStore) Health(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: mysql ping: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

// GetByTokenID returns the legacy access token with the given id, or
// errs.ErrNotFound.
func (s *MySQLStore) GetByTokenID(ctx context.Context, tokenID []byte) (*model.AccessToken, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, queryAccessTokenByID, tokenID)
	t, err := scanAccessToken(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("legacy access token %x: %w", tokenID, errs.ErrNotFound)
		}
		return nil, logger.LogErr(fmt.Errorf("query legacy access token %x: %w", tokenID, err))
	}
	return t, nil
}

// RemoveByTokenID deletes the legacy access token. Deleting a missing row
// is not an error.
func (s *MySQLStore) RemoveByTokenID(ctx context.Context, tokenID []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, deleteAccessTokenByID, tokenID); err != nil {
		return logger.LogErr(fmt.Errorf("delete legacy access token %x: %w", tokenID, err))
	}
	return nil
}

// GetActiveClientsByUID lists unexpired legacy tokens of uid issued to
// clients that cannot grant.
func (s *MySQLStore) GetActiveClientsByUID(ctx context.Context, uid []byte) ([]model.ActiveClient, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, queryActiveClientsByUID, uid)
	if err != nil {
		return nil, logger.LogErr(fmt.Errorf("query legacy active clients for %x: %w", uid, err))
	}
	defer rows.Close()

	clients := []model.ActiveClient{}
	for rows.Next() {
		var (
			c         model.ActiveClient
			name      sql.NullString
			scopeText string
		)
		if err := rows.Scan(&c.ClientID, &name, &scopeText, &c.CreatedAt, &c.ExpiresAt); err != nil {
			return nil, logger.LogErr(fmt.Errorf("scan legacy active client for %x: %w", uid, err))
		}
		c.Name = name.String
		c.Scope = scope.FromString(scopeText)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, logger.LogErr(fmt.Errorf("iterate legacy active clients for %x: %w", uid, err))
	}
	return clients, nil
}

// GetAccessTokensByUID lists every legacy access token of uid, expired or
// not, with the client name and canGrant flag filled in.
func (s *MySQLStore) GetAccessTokensByUID(ctx context.Context, uid []byte) ([]*model.AccessToken, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, queryAccessTokensByUID, uid)
	if err != nil {
		return nil, logger.LogErr(fmt.Errorf("query legacy access tokens for %x: %w", uid, err))
	}
	defer rows.Close()

	tokens := []*model.AccessToken{}
	for rows.Next() {
		var (
			name     sql.NullString
			canGrant sql.NullBool
		)
		t, err := scanAccessToken(rows, &name, &canGrant)
		if err != nil {
			return nil, logger.LogErr(fmt.Errorf("scan legacy access token for %x: %w", uid, err))
		}
		t.ClientName = name.String
		t.ClientCanGrant = canGrant.Bool
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, logger.LogErr(fmt.Errorf("iterate legacy access tokens for %x: %w", uid, err))
	}
	return tokens, nil
}

// GetRefreshTokensByUID lists the legacy refresh tokens of uid.
func (s *MySQLStore) GetRefreshTokensByUID(ctx context.Context, uid []byte) ([]model.RefreshToken, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, queryRefreshTokensByUID, uid)
	if err != nil {
		return nil, logger.LogErr(fmt.Errorf("query legacy refresh tokens for %x: %w", uid, err))
	}
	defer rows.Close()

	tokens := []model.RefreshToken{}
	for rows.Next() {
		var (
			t          model.RefreshToken
			scopeText  string
			lastUsedAt sql.NullTime
		)
		if err := rows.Scan(&t.TokenID, &t.ClientID, &t.UserID, &scopeText, &t.CreatedAt, &lastUsedAt); err != nil {
			return nil, logger.LogErr(fmt.Errorf("scan legacy refresh token for %x: %w", uid, err))
		}
		t.Scope = scope.FromString(scopeText)
		t.LastUsedAt = lastUsedAt.Time
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, logger.LogErr(fmt.Errorf("iterate legacy refresh tokens for %x: %w", uid, err))
	}
	return tokens, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAccessToken reads the common token columns followed by extra.
func scanAccessToken(row rowScanner, extra ...interface{}) (*model.AccessToken, error) {
	var (
		t                model.AccessToken
		email            sql.NullString
		scopeText        string
		profileChangedAt sql.NullInt64
	)
	dest := []interface{}{
		&t.TokenID, &t.ClientID, &t.UserID, &email, &t.Type, &scopeText,
		&t.CreatedAt, &t.ExpiresAt, &profileChangedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	t.Email = email.String
	t.Scope = scope.FromString(scopeText)
	if profileChangedAt.Valid && profileChangedAt.Int64 > 0 {
		t.ProfileChangedAt = time.UnixMilli(profileChangedAt.Int64).UTC()
	}
	return &t, nil
}
