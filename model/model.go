// Package model defines the records shared by the token store layers.
package model

import (
	"time"

	"github.com/milanbella/sa-oauthdb/scope"
)

// TokenTypeBearer is the only access token type issued.
const TokenTypeBearer = "bearer"

// AccessToken represents an issued bearer token.
//
// TokenID is the hash of Token and the storage key. Token is the raw
// secret; it is only set on the value returned at issuance.
type AccessToken struct {
	TokenID          []byte
	Token            []byte
	ClientID         []byte
	UserID           []byte
	Email            string
	Scope            scope.Set
	Type             string
	ExpiresAt        time.Time
	CreatedAt        time.Time
	ProfileChangedAt time.Time

	// Filled in by listing operations.
	ClientName     string
	ClientCanGrant bool
}

// Expired reports whether the token expiry is not after now.
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// RefreshToken is a legacy refresh credential row.
type RefreshToken struct {
	TokenID    []byte
	ClientID   []byte
	UserID     []byte
	Scope      scope.Set
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// ActiveClient is one entry of a user's connected services list.
type ActiveClient struct {
	ClientID   []byte
	Name       string
	Scope      scope.Set
	CreatedAt  time.Time
	LastUsedAt time.Time
	ExpiresAt  time.Time
}

// Client represents an OAuth client application registered with the authorization server.
type Client struct {
	ID                   []byte
	HashedSecret         []byte
	HashedSecretPrevious []byte
	Name                 string
	ImageURI             string
	RedirectURI          string
	Trusted              bool
	CanGrant             bool
	PublicClient         bool
	CreatedAt            time.Time
}

// SessionToken is the payload kept for a user session. The cache stores it
// without looking inside.
type SessionToken struct {
	ID             string    `json:"id"`
	UID            string    `json:"uid"`
	UAString       string    `json:"uaString,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastAccessTime time.Time `json:"lastAccessTime"`
}
