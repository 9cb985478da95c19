// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Badger is an on-disk store that survives restarts. Entries carry a
// Badger TTL so expiry is handled by the database itself.
type Badger struct {
	db     *badger.DB
	prefix []byte
}

// NewBadger opens (or creates) a database at path. An empty path opens an
// in-memory database.
func NewBadger(path, prefix string) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Badger{db: db, prefix: []byte(prefix)}, nil
}

func (b *Badger) key(k string) []byte {
	out := make([]byte, 0, len(b.prefix)+len(k))
	out = append(out, b.prefix...)
	return append(out, k...)
}

// Get returns a copy of the stored value.
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value with ttl.
func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(b.key(key), value).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

// Clear drops every key under the store prefix.
func (b *Badger) Clear(context.Context) error {
	if err := b.db.DropPrefix(b.prefix); err != nil {
		return fmt.Errorf("badger clear: %w", err)
	}
	return nil
}

// Backend returns "badger".
func (b *Badger) Backend() string { return BackendBadger }

// Close flushes and closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}
