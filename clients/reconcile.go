package clients

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/logger"
	"github.com/milanbella/sa-oauthdb/model"
)

// ErrPlaintextSecret rejects client definitions that carry a raw secret.
var ErrPlaintextSecret = errors.New("do not keep client secrets in the config file, use hashedSecret instead")

// ErrMissingKeys rejects client definitions without a required key.
var ErrMissingKeys = errors.New("client config has missing keys")

// Definition is one statically configured client. Pointer fields are
// required keys; nil means the key was absent.
type Definition struct {
	ID                   *string `yaml:"id"`
	Secret               string  `yaml:"secret,omitempty"`
	HashedSecret         *string `yaml:"hashedSecret"`
	HashedSecretPrevious string  `yaml:"hashedSecretPrevious,omitempty"`
	Name                 *string `yaml:"name"`
	ImageURI             *string `yaml:"imageUri"`
	RedirectURI          *string `yaml:"redirectUri"`
	Trusted              *bool   `yaml:"trusted"`
	CanGrant             *bool   `yaml:"canGrant"`
	PublicClient         bool    `yaml:"publicClient,omitempty"`
}

// LoadFile reads a YAML list of client definitions.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clients file: %w", err)
	}

	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse clients file %s: %w", path, err)
	}
	return defs, nil
}

// Client validates the definition and converts it to a client record with
// strict booleans.
func (d Definition) Client() (*model.Client, error) {
	name := "unknown"
	if d.Name != nil {
		name = *d.Name
	}

	if d.Secret != "" {
		return nil, fmt.Errorf("client %s: %w", name, ErrPlaintextSecret)
	}

	var missing []string
	check := func(key string, present bool) {
		if !present {
			missing = append(missing, key)
		}
	}
	check("id", d.ID != nil)
	check("hashedSecret", d.HashedSecret != nil)
	check("name", d.Name != nil)
	check("imageUri", d.ImageURI != nil)
	check("redirectUri", d.RedirectURI != nil)
	check("trusted", d.Trusted != nil)
	check("canGrant", d.CanGrant != nil)
	if len(missing) > 0 {
		return nil, fmt.Errorf("client %s: %w: %v", name, ErrMissingKeys, missing)
	}

	id, err := hex.DecodeString(*d.ID)
	if err != nil {
		return nil, fmt.Errorf("client %s: id: %w", name, err)
	}
	hashedSecret, err := hex.DecodeString(*d.HashedSecret)
	if err != nil {
		return nil, fmt.Errorf("client %s: hashedSecret: %w", name, err)
	}
	var previous []byte
	if d.HashedSecretPrevious != "" {
		if previous, err = hex.DecodeString(d.HashedSecretPrevious); err != nil {
			return nil, fmt.Errorf("client %s: hashedSecretPrevious: %w", name, err)
		}
	}

	return &model.Client{
		ID:                   id,
		HashedSecret:         hashedSecret,
		HashedSecretPrevious: previous,
		Name:                 *d.Name,
		ImageURI:             *d.ImageURI,
		RedirectURI:          *d.RedirectURI,
		Trusted:              *d.Trusted,
		CanGrant:             *d.CanGrant,
		PublicClient:         d.PublicClient,
	}, nil
}

// Reconcile validates every definition and, when autoUpdate is set,
// registers missing clients and updates those that differ. Any invalid
// definition aborts before the database is touched. Running it twice is a
// no-op the second time.
func (r *Registry) Reconcile(ctx context.Context, defs []Definition, autoUpdate bool) error {
	wanted := make([]*model.Client, 0, len(defs))
	for _, d := range defs {
		c, err := d.Client()
		if err != nil {
			return logger.LogErr(err)
		}
		wanted = append(wanted, c)
	}

	if !autoUpdate {
		logger.Debug("clients.reconcile: %d definitions validated, auto update disabled", len(wanted))
		return nil
	}

	for _, c := range wanted {
		existing, err := r.GetClient(ctx, c.ID)
		switch {
		case errors.Is(err, errs.ErrNotFound):
			logger.Info("clients.register: id=%x name=%q", c.ID, c.Name)
			if err := r.RegisterClient(ctx, c); err != nil {
				return err
			}
		case err != nil:
			return err
		case clientEquals(existing, c):
			logger.Debug("clients.compare.equal: id=%x", c.ID)
		default:
			logger.Warn("clients.compare.differs: id=%x name=%q", c.ID, c.Name)
			if err := r.UpdateClient(ctx, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func clientEquals(a, b *model.Client) bool {
	return bytes.Equal(a.ID, b.ID) &&
		bytes.Equal(a.HashedSecret, b.HashedSecret) &&
		bytes.Equal(a.HashedSecretPrevious, b.HashedSecretPrevious) &&
		a.Name == b.Name &&
		a.ImageURI == b.ImageURI &&
		a.RedirectURI == b.RedirectURI &&
		a.Trusted == b.Trusted &&
		a.CanGrant == b.CanGrant &&
		a.PublicClient == b.PublicClient
}
