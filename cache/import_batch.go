package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"kartvizit.link/configs/configsredis"
	"kartvizit.link/pkg/csvimport"

	"github.com/redis/go-redis/v9"
)

// Import batch deposu: sihirbaz durumu oturum kapsamındadır ve TTL ile
// yaşar. Redis varsa JSON olarak orada, yoksa (testler) süreç içi map'te
// tutulur.

// ErrBatchNotFound batch süresi dolduğunda veya hiç oluşmadığında döner.
var ErrBatchNotFound = errors.New("import oturumu bulunamadı veya süresi doldu")

// IBatchStore import batch durum deposu.
type IBatchStore interface {
	Save(ctx context.Context, batch *csvimport.Batch, ttl time.Duration) error
	Get(ctx context.Context, id string) (*csvimport.Batch, error)
	Delete(ctx context.Context, id string) error
}

func batchKey(id string) string {
	return configsredis.Key("import-batch", id)
}

// RedisBatchStore batch'i redis'te saklar.
type RedisBatchStore struct{}

// NewBatchStore redis varsa redis, yoksa bellek içi depo döndürür.
func NewBatchStore() IBatchStore {
	if configsredis.GetClient() != nil {
		return &RedisBatchStore{}
	}
	return NewMemoryBatchStore()
}

func (s *RedisBatchStore) Save(ctx context.Context, batch *csvimport.Batch, ttl time.Duration) error {
	raw, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return configsredis.GetClient().Set(ctx, batchKey(batch.ID), raw, ttl).Err()
}

func (s *RedisBatchStore) Get(ctx context.Context, id string) (*csvimport.Batch, error) {
	raw, err := configsredis.GetClient().Get(ctx, batchKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, err
	}
	var batch csvimport.Batch
	if err := json.Unmarshal([]byte(raw), &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *RedisBatchStore) Delete(ctx context.Context, id string) error {
	return configsredis.GetClient().Del(ctx, batchKey(id)).Err()
}

// MemoryBatchStore süreç içi depo; testlerde ve redis'siz geliştirmede
// kullanılır. TTL kontrolü okuma anında yapılır.
type MemoryBatchStore struct {
	mu      sync.Mutex
	batches map[string]memoryBatchEntry
}

type memoryBatchEntry struct {
	batch     *csvimport.Batch
	expiresAt time.Time
}

// NewMemoryBatchStore boş bir bellek deposu üretir.
func NewMemoryBatchStore() *MemoryBatchStore {
	return &MemoryBatchStore{batches: make(map[string]memoryBatchEntry)}
}

func (s *MemoryBatchStore) Save(_ context.Context, batch *csvimport.Batch, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = memoryBatchEntry{batch: batch, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryBatchStore) Get(_ context.Context, id string) (*csvimport.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.batches[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.batches, id)
		return nil, ErrBatchNotFound
	}
	return entry.batch, nil
}

func (s *MemoryBatchStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, id)
	return nil
}

var (
	_ IBatchStore = (*RedisBatchStore)(nil)
	_ IBatchStore = (*MemoryBatchStore)(nil)
)
