package database

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value has been stored under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// ChangeEvent describes a mutation of one storage key, delivered to watchers
// in other sessions. Origin identifies the session that wrote, so a watcher
// can ignore its own writes the way a browser tab ignores its own storage
// events.
type ChangeEvent struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Origin string `json:"origin"`
}

// LocalStorage is the persistence adapter every store writes through: a flat
// string key-value store scoped to the deployment. There are no transactions
// across keys; concurrent get-modify-set writers are last-writer-wins.
type LocalStorage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key and notifies watchers in other sessions.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Watch delivers change events produced by other sessions until ctx is
	// done. The channel is closed when the watch ends.
	Watch(ctx context.Context) (<-chan ChangeEvent, error)
}
