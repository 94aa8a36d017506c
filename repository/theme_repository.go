package repository

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"
)

// ThemeKey is the storage key holding the persisted theme preference.
const ThemeKey = "theme-preference"

// ThemeRepository persists the theme preference as a small JSON record.
type ThemeRepository struct {
	storage database.LocalStorage
	logger  *zap.Logger
}

func NewThemeRepository(storage database.LocalStorage, logger *zap.Logger) *ThemeRepository {
	return &ThemeRepository{storage: storage, logger: logger}
}

// Load returns the persisted theme. Absent, unreadable or malformed state
// reads as the default theme.
func (r *ThemeRepository) Load(ctx context.Context) models.Theme {
	raw, err := r.storage.Get(ctx, ThemeKey)
	if err != nil {
		if !errors.Is(err, database.ErrKeyNotFound) {
			r.logger.Warn("Failed to read theme preference, using default", zap.Error(err))
		}
		return models.DefaultTheme
	}

	var pref models.ThemePreference
	if err := json.Unmarshal([]byte(raw), &pref); err != nil || !pref.Theme.Valid() {
		r.logger.Warn("Malformed theme preference, using default", zap.String("raw", raw))
		return models.DefaultTheme
	}
	return pref.Theme
}

// Save persists the theme. Failures are logged, not propagated.
func (r *ThemeRepository) Save(ctx context.Context, theme models.Theme) {
	data, err := json.Marshal(models.ThemePreference{Theme: theme})
	if err != nil {
		r.logger.Warn("Failed to encode theme preference", zap.Error(err))
		return
	}
	if err := r.storage.Set(ctx, ThemeKey, string(data)); err != nil {
		r.logger.Warn("Failed to save theme preference", zap.Error(err))
	}
}

// Decode parses a raw theme payload, as carried by a change event.
func (r *ThemeRepository) Decode(raw string) (models.Theme, error) {
	var pref models.ThemePreference
	if err := json.Unmarshal([]byte(raw), &pref); err != nil {
		return "", err
	}
	if !pref.Theme.Valid() {
		return "", errors.New("unknown theme value")
	}
	return pref.Theme, nil
}
