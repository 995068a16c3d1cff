// Package cache keeps completed analyses so the API can serve them by ID.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"property-dcf/internal/model"
)

var ErrNotFound = errors.New("analysis not found")

// Entry is one stored analysis.
type Entry struct {
	ID        string        `json:"id"`
	InputHash string        `json:"input_hash"`
	Input     model.Input   `json:"input"`
	Result    *model.Result `json:"result"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store is implemented by MemoryStore and RedisStore.
type Store interface {
	Get(ctx context.Context, id string) (*Entry, error)
	Set(ctx context.Context, e *Entry) error
	Close() error
}

// Key is a stable hash of an input record. Identical inputs share a key.
func Key(in model.Input) string {
	// Field order is fixed, so the encoding is canonical. Non-finite values
	// fail to encode and hash the error text instead.
	raw, err := json.Marshal(in)
	if err != nil {
		raw = []byte(err.Error())
	}
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:])
}
