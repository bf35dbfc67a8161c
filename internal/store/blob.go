// Package store persists whole documents under short keys. Every durable piece of
// state (clipboard history, pomodoro sessions, app catalog) is written as one
// JSON blob and replaced atomically.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Well-known keys.
const (
	KeyClipboardHistory = "clipboard_history"
	KeyPomodoroSessions = "pomodoro_sessions"
	KeyAppCatalog       = "app_catalog"
)

// ErrNotFound is returned by Load when nothing was ever saved under the key.
var ErrNotFound = errors.New("store: key not found")

// Blob is a durable key-value store of opaque documents.
type Blob interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the document stored under key into v.
func LoadJSON(ctx context.Context, b Blob, key string, v any) error {
	data, err := b.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, b Blob, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return b.Save(ctx, key, data)
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}
