package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/repository"
)

// FavoritesService tracks the favorited product ids. Every read goes back to
// storage, so a write by another session is visible on the next read; the
// Subscribe loop exists to tell listeners that such a write happened.
type FavoritesService struct {
	repo    *repository.FavoritesRepository
	storage database.LocalStorage
	logger  *zap.Logger
}

func NewFavoritesService(repo *repository.FavoritesRepository, storage database.LocalStorage, logger *zap.Logger) *FavoritesService {
	return &FavoritesService{repo: repo, storage: storage, logger: logger}
}

// IsFavorite reports whether productID is in the persisted set.
func (s *FavoritesService) IsFavorite(ctx context.Context, productID int) bool {
	return contains(s.repo.Load(ctx), productID)
}

// ToggleFavorite flips membership for productID and returns the new status.
// The read-modify-write is not atomic across sessions; last write wins.
func (s *FavoritesService) ToggleFavorite(ctx context.Context, productID int) bool {
	ids := s.repo.Load(ctx)

	var next []int
	var nowFavorite bool
	if contains(ids, productID) {
		next = removeID(ids, productID)
		nowFavorite = false
	} else {
		next = append(ids, productID)
		nowFavorite = true
	}

	s.repo.Save(ctx, next)
	return nowFavorite
}

// ListFavorites returns the persisted set as an ordered slice.
func (s *FavoritesService) ListFavorites(ctx context.Context) []int {
	return s.repo.Load(ctx)
}

// Subscribe invokes onChange with the new favorite set whenever another
// session rewrites the favorites key, until ctx is done. Best-effort: a
// failed watch is logged and cross-session updates are then only seen on
// the next read.
func (s *FavoritesService) Subscribe(ctx context.Context, onChange func([]int)) {
	events, err := s.storage.Watch(ctx)
	if err != nil {
		s.logger.Warn("Favorites watch unavailable", zap.Error(err))
		return
	}

	go func() {
		for ev := range events {
			if ev.Key != repository.FavoritesKey {
				continue
			}
			ids, err := s.repo.Decode(ev.Value)
			if err != nil {
				s.logger.Warn("Ignoring malformed favorites event", zap.Error(err))
				continue
			}
			onChange(ids)
		}
	}()
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
