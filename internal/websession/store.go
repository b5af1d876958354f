// Package websession keeps per-visitor state on the server.  The browser
// only holds a signed cookie naming the session; the logged-in user and the
// in-progress reservation live in a Store.
package websession

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-ticketing/internal/model"
)

// User is the part of model.User kept in the session.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Data is everything stored for one visitor.
type Data struct {
	User        *User             `json:"user,omitempty"`
	Reservation model.Reservation `json:"reservation"`
	LastTicket  *model.Ticket     `json:"last_ticket,omitempty"`
}

// Store persists session data by id.  Load reports ok=false for unknown or
// expired ids.
type Store interface {
	Load(ctx context.Context, id string) (Data, bool, error)
	Save(ctx context.Context, id string, d Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions as JSON strings with a TTL.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sess"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }

func (s *RedisStore) Load(ctx context.Context, id string) (Data, bool, error) {
	bs, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, err
	}
	var d Data
	if err := json.Unmarshal(bs, &d); err != nil {
		// unreadable payloads are treated as a fresh session
		return Data{}, false, nil
	}
	return d, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, d Data, ttl time.Duration) error {
	bs, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(id), bs, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

type memItem struct {
	data    []byte
	expires time.Time
}

// MemoryStore is a process-local Store used when Redis is unavailable and
// in tests.  Data is copied through JSON so callers never share pointers.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memItem
	saves int
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, id string) (Data, bool, error) {
	s.mu.Lock()
	it, ok := s.items[id]
	if ok && !s.now().Before(it.expires) {
		delete(s.items, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return Data{}, false, nil
	}
	var d Data
	if err := json.Unmarshal(it.data, &d); err != nil {
		return Data{}, false, err
	}
	return d, true, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, d Data, ttl time.Duration) error {
	bs, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.items[id] = memItem{data: bs, expires: now.Add(ttl)}
	s.saves++
	if s.saves%256 == 0 {
		for k, it := range s.items {
			if !now.Before(it.expires) {
				delete(s.items, k)
			}
		}
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// Len reports how many sessions are held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
