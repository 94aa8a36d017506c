package database

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is a map-backed LocalStorage. It backs tests and serves as
// the degraded fallback when redis is unreachable (state then lives only for
// the process lifetime, which the stores already tolerate).
type MemoryStorage struct {
	mu       sync.Mutex
	values   map[string]string
	watchers map[int]chan ChangeEvent
	nextID   int
	origin   string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values:   make(map[string]string),
		watchers: make(map[int]chan ChangeEvent),
		origin:   uuid.NewString(),
	}
}

func (s *MemoryStorage) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (s *MemoryStorage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	watchers := s.snapshotWatchers()
	s.mu.Unlock()

	s.notify(watchers, ChangeEvent{Key: key, Value: value, Origin: s.origin})
	return nil
}

func (s *MemoryStorage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	watchers := s.snapshotWatchers()
	s.mu.Unlock()

	s.notify(watchers, ChangeEvent{Key: key, Value: "", Origin: s.origin})
	return nil
}

func (s *MemoryStorage) Watch(ctx context.Context) (<-chan ChangeEvent, error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan ChangeEvent, 16)
	s.watchers[id] = ch
	s.mu.Unlock()

	out := make(chan ChangeEvent)
	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *MemoryStorage) snapshotWatchers() []chan ChangeEvent {
	watchers := make([]chan ChangeEvent, 0, len(s.watchers))
	for _, ch := range s.watchers {
		watchers = append(watchers, ch)
	}
	return watchers
}

func (s *MemoryStorage) notify(watchers []chan ChangeEvent, ev ChangeEvent) {
	for _, ch := range watchers {
		select {
		case ch <- ev:
		default:
			// A slow watcher loses the event; delivery is best-effort.
		}
	}
}
