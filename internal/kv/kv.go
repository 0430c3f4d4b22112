// ABOUTME: Durable key-value storage capability for the note collection.
// ABOUTME: Selects a backend by name and resolves XDG data paths.

package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrKeyNotFound = errors.New("key not found")

// Storage is a get/set blob store addressed by key.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

const (
	BackendBadger = "badger"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendBadger, BackendBolt, BackendSQLite, BackendMemory}
}

// Open opens the named backend at path. Path is ignored for memory.
func Open(backend, path string) (Storage, error) {
	if backend != BackendMemory {
		if path == "" {
			path = DefaultPath(backend)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	switch backend {
	case BackendBadger:
		return OpenBadger(path)
	case BackendBolt:
		return OpenBolt(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notes")
}

// DefaultPath returns the backend's file (or directory, for badger) under DataDir.
func DefaultPath(backend string) string {
	switch backend {
	case BackendBolt:
		return filepath.Join(DataDir(), "notes.bolt")
	case BackendSQLite:
		return filepath.Join(DataDir(), "notes.db")
	default:
		return filepath.Join(DataDir(), "badger")
	}
}
