package repository

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront/database"
)

// FavoritesKey is the storage key holding the favorited product ids.
const FavoritesKey = "product-favorites"

// FavoritesRepository persists the favorite set as a JSON array of product
// ids under a single storage key.
type FavoritesRepository struct {
	storage database.LocalStorage
	logger  *zap.Logger
}

func NewFavoritesRepository(storage database.LocalStorage, logger *zap.Logger) *FavoritesRepository {
	return &FavoritesRepository{storage: storage, logger: logger}
}

// Load returns the persisted favorite ids. An absent key, an unavailable
// backend or malformed JSON all read as an empty set.
func (r *FavoritesRepository) Load(ctx context.Context) []int {
	raw, err := r.storage.Get(ctx, FavoritesKey)
	if err != nil {
		if !errors.Is(err, database.ErrKeyNotFound) {
			r.logger.Warn("Failed to read favorites, falling back to empty set", zap.Error(err))
		}
		return []int{}
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		r.logger.Warn("Malformed favorites state, falling back to empty set", zap.Error(err))
		return []int{}
	}
	return ids
}

// Save writes the favorite ids back. Failures are logged, not propagated.
func (r *FavoritesRepository) Save(ctx context.Context, ids []int) {
	data, err := json.Marshal(ids)
	if err != nil {
		r.logger.Warn("Failed to encode favorites", zap.Error(err))
		return
	}
	if err := r.storage.Set(ctx, FavoritesKey, string(data)); err != nil {
		r.logger.Warn("Failed to save favorites", zap.Error(err))
	}
}

// Decode parses a raw favorites payload, as carried by a change event.
func (r *FavoritesRepository) Decode(raw string) ([]int, error) {
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
