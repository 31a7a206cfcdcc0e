package storage

import (
	"context"
	"strconv"
	"strings"
	"sync"

	logging "github.com/ipfs/go-log"
	"github.com/meppu/eight/errs"
)

var memoryLog = logging.Logger("eight/storage/memory")

// MemoryOption configures a Memory backend at construction time,
// following the functional-options convention used throughout this
// codebase for multi-field constructors.
type MemoryOption func(*Memory)

// WithSeed pre-populates a Memory backend with initial key-value pairs,
// useful for tests and for restoring a snapshot taken elsewhere.
func WithSeed(seed map[string]string) MemoryOption {
	return func(m *Memory) {
		for k, v := range seed {
			m.values[k] = v
		}
	}
}

// Memory is an in-memory Storage backend guarded by a single
// reader/writer lock.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory constructs an empty Memory backend, applying any options.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{values: make(map[string]string)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", errs.New(errs.GetKeyFail)
	}
	return value, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return errs.New(errs.DeleteKeyFail)
	}
	delete(m.values, key)
	return nil
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok, nil
}

// Increment is not atomic across concurrent callers: it takes the shared
// lock to read, releases it, then takes the exclusive lock to write,
// matching the Rust implementation's separate get/set round trip and the
// spec's explicit allowance for lost updates under concurrency.
func (m *Memory) Increment(ctx context.Context, key string, n uint64) (uint64, error) {
	return m.crement(ctx, key, n, true)
}

func (m *Memory) Decrement(ctx context.Context, key string, n uint64) (uint64, error) {
	return m.crement(ctx, key, n, false)
}

func (m *Memory) crement(ctx context.Context, key string, n uint64, up bool) (uint64, error) {
	raw, err := m.Get(ctx, key)
	if err != nil {
		return 0, err
	}

	current, parseErr := strconv.ParseUint(raw, 10, 64)
	if parseErr != nil {
		return 0, errs.New(errs.UIntParseFail)
	}

	var updated uint64
	if up {
		updated = current + n
	} else {
		if n > current {
			memoryLog.Debugf("decrement underflow: key=%q current=%d n=%d", key, current, n)
			return 0, errs.New(errs.UIntParseFail)
		}
		updated = current - n
	}

	if err := m.Set(ctx, key, strconv.FormatUint(updated, 10)); err != nil {
		return 0, err
	}
	return updated, nil
}

func (m *Memory) Search(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []string
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, key)
		}
	}
	return matches, nil
}

func (m *Memory) Flush(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string)
	return nil
}
