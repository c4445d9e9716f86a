// Package clients resolves OAuth client metadata from the clients table and
// reconciles it against the statically configured client list at startup.
package clients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/logger"
	"github.com/milanbella/sa-oauthdb/model"
	"github.com/milanbella/sa-oauthdb/stringutils"
)

const (
	queryClientByID = `
		SELECT id, name, imageUri, redirectUri, hashedSecret, hashedSecretPrevious,
			trusted, canGrant, publicClient, createdAt
		FROM clients
		WHERE id = ?`

	insertClient = `
		INSERT INTO clients (
			id, name, imageUri, redirectUri, hashedSecret, hashedSecretPrevious,
			trusted, canGrant, publicClient
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateClient = `
		UPDATE clients
		SET name = ?, imageUri = ?, redirectUri = ?, hashedSecret = ?, hashedSecretPrevious = ?,
			trusted = ?, canGrant = ?, publicClient = ?
		WHERE id = ?`
)

// Registry serves client records from MySQL.
type Registry struct {
	db      *sql.DB
	timeout time.Duration
}

// NewRegistry returns a registry over db. Each query is bounded by timeout.
func NewRegistry(db *sql.DB, timeout time.Duration) *Registry {
	return &Registry{db: db, timeout: timeout}
}

func (r *Registry) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// GetClient returns the client with the given id, or errs.ErrNotFound.
func (r *Registry) GetClient(ctx context.Context, id []byte) (*model.Client, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		c                    model.Client
		imageURI             sql.NullString
		hashedSecretPrevious []byte
	)
	err := r.db.QueryRowContext(ctx, queryClientByID, id).Scan(
		&c.ID, &c.Name, &imageURI, &c.RedirectURI, &c.HashedSecret, &hashedSecretPrevious,
		&c.Trusted, &c.CanGrant, &c.PublicClient, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %x: %w", id, errs.ErrNotFound)
		}
		return nil, logger.LogErr(fmt.Errorf("query client %x: %w", id, err))
	}

	c.ImageURI = imageURI.String
	if len(hashedSecretPrevious) > 0 {
		c.HashedSecretPrevious = hashedSecretPrevious
	}
	return &c, nil
}

// RegisterClient inserts a new client row.
func (r *Registry) RegisterClient(ctx context.Context, c *model.Client) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertClient,
		c.ID,
		c.Name,
		stringutils.NullIfBlank(c.ImageURI),
		c.RedirectURI,
		c.HashedSecret,
		stringutils.NullIfEmpty(c.HashedSecretPrevious),
		c.Trusted,
		c.CanGrant,
		c.PublicClient,
	)
	if err != nil {
		return logger.LogErr(fmt.Errorf("insert client %x: %w", c.ID, err))
	}
	return nil
}

// UpdateClient overwrites the mutable columns of an existing client.
func (r *Registry) UpdateClient(ctx context.Context, c *model.Client) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, updateClient,
		c.Name,
		stringutils.NullIfBlank(c.ImageURI),
		c.RedirectURI,
		c.HashedSecret,
		stringutils.NullIfEmpty(c.HashedSecretPrevious),
		c.Trusted,
		c.CanGrant,
		c.PublicClient,
		c.ID,
	)
	if err != nil {
		return logger.LogErr(fmt.Errorf("update client %x: %w", c.ID, err))
	}
	return nil
}
