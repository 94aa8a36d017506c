package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStorage is the durable LocalStorage implementation. Values live as
// plain redis strings; change events travel over a pub/sub channel shared by
// all sessions on the same deployment.
type RedisStorage struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *zap.Logger
}

func NewRedisStorage(client *redis.Client, channel string, logger *zap.Logger) *RedisStorage {
	return &RedisStorage{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		logger:  logger,
	}
}

// Origin returns the id this session stamps on its own change events.
func (s *RedisStorage) Origin() string {
	return s.origin
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	s.publish(ctx, ChangeEvent{Key: key, Value: value, Origin: s.origin})
	return nil
}

func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	s.publish(ctx, ChangeEvent{Key: key, Value: "", Origin: s.origin})
	return nil
}

// Watch subscribes to the shared event channel and forwards events written by
// other sessions. The returned channel closes when ctx is done.
func (s *RedisStorage) Watch(ctx context.Context) (<-chan ChangeEvent, error) {
	sub := s.client.Subscribe(ctx, s.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan ChangeEvent)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					s.logger.Warn("Dropping malformed storage event", zap.Error(err))
					continue
				}
				if ev.Origin == s.origin {
					continue
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

// publish is best-effort: a lost notification degrades cross-session
// freshness, not correctness.
func (s *RedisStorage) publish(ctx context.Context, ev ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Warn("Failed to encode storage event", zap.Error(err))
		return
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.logger.Warn("Failed to publish storage event", zap.String("key", ev.Key), zap.Error(err))
	}
}
