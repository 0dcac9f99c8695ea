package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
	"github.com/mobicorp/spaceplanner-backend/pkg/redis"
)

// Store persists whole carts. Every Save overwrites the previous value; the last
// writer wins.
type Store interface {
	Load(ctx context.Context, cartID string) ([]Line, error)
	Save(ctx context.Context, cartID string, lines []Line) error
}

// MemoryStore keeps carts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Line)}
}

func (m *MemoryStore) Load(_ context.Context, cartID string) ([]Line, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.carts[cartID]), nil
}

func (m *MemoryStore) Save(_ context.Context, cartID string, lines []Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(lines) == 0 {
		delete(m.carts, cartID)
		return nil
	}
	m.carts[cartID] = slices.Clone(lines)
	return nil
}

type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(cartID string) string
}

// RedisStore keeps each cart as a JSON array under its own key.
type RedisStore struct {
	kv   keyValue
	ttl  time.Duration
	logg *logger.Logger
}

func NewRedisStore(kv keyValue, ttl time.Duration, logg *logger.Logger) *RedisStore {
	if logg == nil {
		logg = logger.Nop()
	}
	return &RedisStore{kv: kv, ttl: ttl, logg: logg}
}

// Load returns the stored lines. A missing key is an empty cart, and so is a value
// that no longer decodes.
func (s *RedisStore) Load(ctx context.Context, cartID string) ([]Line, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(cartID))
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logg.Warn(s.logg.WithCartID(ctx, cartID), "cart.decode_failed")
		return nil, nil
	}
	return normalize(lines), nil
}

func (s *RedisStore) Save(ctx context.Context, cartID string, lines []Line) error {
	key := s.kv.CartKey(cartID)
	if len(lines) == 0 {
		if err := s.kv.Del(ctx, key); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(payload), s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
