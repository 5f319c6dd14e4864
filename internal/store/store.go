// Package store is the persistence gateway: a key-value port plus typed JSON
// load/save helpers that never let a malformed record reach the caller.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Record keys.
const (
	KeyState    = "pomodoro_state"
	KeySettings = "pomodoro_settings"
	KeyTheme    = "pomodoro_theme"
	KeyHistory  = "pomodoro_history"
)

// KV is durable string storage.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// ParseError explains why a stored record was discarded.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("discarded %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadJSON reads key and runs decode over it. A missing key yields fallback
// and no error; a read, parse or validation failure yields fallback and a
// *ParseError so the caller can log it.
func LoadJSON[T any](kv KV, key string, decode func([]byte) (T, error), fallback T) (T, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fallback, &ParseError{Key: key, Err: err}
	}
	if !ok {
		return fallback, nil
	}
	v, err := decode([]byte(raw))
	if err != nil {
		return fallback, &ParseError{Key: key, Err: err}
	}
	return v, nil
}

// SaveJSON serializes value under key.
func SaveJSON(kv KV, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return kv.Set(key, string(b))
}

// Memory is an in-process KV used in tests and when no database is available.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
	// FailWrites makes Set return an error, simulating a full disk.
	FailWrites bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return fmt.Errorf("set %s: storage full", key)
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }
