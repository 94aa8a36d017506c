package services

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"
)

// PresentationFlag is the process-wide dark-mode signal, the document-class
// analogue: every mounted view reads it instead of asking the store.
type PresentationFlag struct {
	dark atomic.Bool
}

func NewPresentationFlag() *PresentationFlag {
	return &PresentationFlag{}
}

func (f *PresentationFlag) Dark() bool {
	return f.dark.Load()
}

func (f *PresentationFlag) apply(theme models.Theme) {
	f.dark.Store(theme == models.ThemeDark)
}

// ThemeService holds the theme preference. The constructor loads the
// persisted value and synchronizes the presentation flag before anything
// renders, so there is no flash of the wrong theme.
type ThemeService struct {
	mu      sync.Mutex
	theme   models.Theme
	flag    *PresentationFlag
	repo    *repository.ThemeRepository
	storage database.LocalStorage
	logger  *zap.Logger
}

func NewThemeService(ctx context.Context, repo *repository.ThemeRepository, storage database.LocalStorage, flag *PresentationFlag, logger *zap.Logger) *ThemeService {
	s := &ThemeService{
		theme:   repo.Load(ctx),
		flag:    flag,
		repo:    repo,
		storage: storage,
		logger:  logger,
	}
	s.flag.apply(s.theme)
	return s
}

// GetTheme returns the current theme.
func (s *ThemeService) GetTheme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips between light and dark, persists the result and updates
// the presentation flag.
func (s *ThemeService) ToggleTheme(ctx context.Context) models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := models.ThemeDark
	if s.theme == models.ThemeDark {
		next = models.ThemeLight
	}
	s.applyLocked(ctx, next, true)
	return next
}

// SetTheme sets the theme, persists it and updates the presentation flag.
// Unknown values are ignored.
func (s *ThemeService) SetTheme(ctx context.Context, theme models.Theme) {
	if !theme.Valid() {
		s.logger.Warn("Ignoring unknown theme value", zap.String("theme", string(theme)))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(ctx, theme, true)
}

// Subscribe keeps this session's theme in sync with writes from other
// sessions, last writer wins. Best-effort, like the favorites watch.
func (s *ThemeService) Subscribe(ctx context.Context) {
	events, err := s.storage.Watch(ctx)
	if err != nil {
		s.logger.Warn("Theme watch unavailable", zap.Error(err))
		return
	}

	go func() {
		for ev := range events {
			if ev.Key != repository.ThemeKey {
				continue
			}
			theme, err := s.repo.Decode(ev.Value)
			if err != nil {
				s.logger.Warn("Ignoring malformed theme event", zap.Error(err))
				continue
			}
			s.mu.Lock()
			// Already persisted by the other session; only adopt it here.
			s.applyLocked(ctx, theme, false)
			s.mu.Unlock()
		}
	}()
}

func (s *ThemeService) applyLocked(ctx context.Context, theme models.Theme, persist bool) {
	s.theme = theme
	s.flag.apply(theme)
	if persist {
		s.repo.Save(ctx, theme)
	}
}
