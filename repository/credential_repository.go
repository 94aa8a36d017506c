package repository

import (
	"context"
	"errors"

	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"
)

// Storage keys for the single registered account.
const (
	UsernameKey = "auth_username"
	PasswordKey = "auth_password"
)

// CredentialRepository stores the one registered credential. Saving again
// overwrites the previous account. Unlike favorites and theme, credential
// writes propagate their errors: a failed sign-up must not look successful.
type CredentialRepository struct {
	storage database.LocalStorage
}

func NewCredentialRepository(storage database.LocalStorage) *CredentialRepository {
	return &CredentialRepository{storage: storage}
}

// Find returns the stored credential, or database.ErrKeyNotFound when no
// account has been registered.
func (r *CredentialRepository) Find(ctx context.Context) (*models.Credential, error) {
	username, err := r.storage.Get(ctx, UsernameKey)
	if err != nil {
		return nil, err
	}
	hash, err := r.storage.Get(ctx, PasswordKey)
	if err != nil {
		return nil, err
	}
	return &models.Credential{Username: username, PasswordHash: hash}, nil
}

// Save stores the credential, replacing any previous one.
func (r *CredentialRepository) Save(ctx context.Context, cred models.Credential) error {
	if err := r.storage.Set(ctx, UsernameKey, cred.Username); err != nil {
		return err
	}
	return r.storage.Set(ctx, PasswordKey, cred.PasswordHash)
}

// Exists reports whether an account has been registered.
func (r *CredentialRepository) Exists(ctx context.Context) (bool, error) {
	_, err := r.storage.Get(ctx, UsernameKey)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, database.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}
