package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero = sem expiração
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// sweepInterval é o intervalo mínimo entre varreduras de chaves expiradas.
const sweepInterval = time.Minute

// MemoryClient implementa Client em memória do processo. Usado quando
// REDIS_ADDR não está definido e nos testes.
//
// Chaves expiradas que nunca mais são lidas (contadores de rate limit por IP,
// sessões abandonadas) são removidas por uma varredura feita nas escritas,
// no máximo uma vez por sweepInterval.
type MemoryClient struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryClient cria um cache em memória vazio.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return "", ErrCacheMiss
	}
	return e.value, nil
}

func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	e := memoryEntry{value: s}
	if expiration > 0 {
		e.expiresAt = now.Add(expiration)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryClient) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	e, ok := c.entries[key]
	if !ok || e.expired(now) {
		e = memoryEntry{value: "0"}
		if window > 0 {
			e.expiresAt = now.Add(window)
		}
	}

	n, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("valor da chave %s não é inteiro: %w", key, err)
	}
	n++
	e.value = strconv.FormatInt(n, 10)
	c.entries[key] = e
	return n, nil
}

// Len retorna o número de chaves armazenadas, expiradas ou não.
func (c *MemoryClient) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweep remove as chaves expiradas. Deve ser chamado com c.mu travado.
func (c *MemoryClient) sweep(now time.Time) {
	if now.Sub(c.lastSweep) < sweepInterval {
		return
	}
	c.lastSweep = now
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}
