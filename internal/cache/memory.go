// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package cache

import (
	"context"
	"sync"
	"time"
)

type lruEntry struct {
	key       string
	value     []byte
	prev      *lruEntry
	next      *lruEntry
	expiresAt time.Time
}

// Memory is a thread-safe in-process LRU cache with per-entry TTL.
//
// A doubly-linked list orders entries by recency (head.next is newest,
// tail.prev the eviction candidate); the map gives O(1) lookup. Expired
// entries are removed lazily on access or by CleanupExpired.
type Memory struct {
	mu sync.Mutex

	capacity int
	items    map[string]*lruEntry
	head     *lruEntry
	tail     *lruEntry

	hits   int64
	misses int64

	now func() time.Time
}

// NewMemory creates an LRU store holding at most capacity entries.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 10000
	}
	m := &Memory{
		capacity: capacity,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
		now:      time.Now,
	}
	m.head.next = m.tail
	m.tail.prev = m.head
	return m
}

// Get returns a copy-free view of the stored bytes. Callers must not modify it.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.items[key]
	if !ok {
		m.misses++
		return nil, false, nil
	}
	if m.now().After(entry.expiresAt) {
		m.removeEntry(entry)
		m.misses++
		return nil, false, nil
	}
	m.moveToFront(entry)
	m.hits++
	return entry.value, true, nil
}

// Set adds or replaces key, evicting the least recently used entry when full.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := m.now().Add(ttl)
	if entry, ok := m.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		m.moveToFront(entry)
		return nil
	}

	entry := &lruEntry{key: key, value: value, expiresAt: expiresAt}
	m.addToFront(entry)
	m.items[key] = entry

	for len(m.items) > m.capacity {
		m.evictOldest()
	}
	return nil
}

// Clear removes all entries.
func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*lruEntry, m.capacity)
	m.head.next = m.tail
	m.tail.prev = m.head
	return nil
}

// Backend returns "memory".
func (m *Memory) Backend() string { return BackendMemory }

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len returns the number of entries, including expired ones not yet removed.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Stats returns hit and miss counts and the current size.
func (m *Memory) Stats() (hits, misses int64, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses, len(m.items)
}

// CleanupExpired removes expired entries and returns how many were dropped.
func (m *Memory) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for entry := m.tail.prev; entry != m.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			m.removeEntry(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

// list helpers; callers hold mu

func (m *Memory) addToFront(entry *lruEntry) {
	entry.prev = m.head
	entry.next = m.head.next
	m.head.next.prev = entry
	m.head.next = entry
}

func (m *Memory) moveToFront(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	m.addToFront(entry)
}

func (m *Memory) removeEntry(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(m.items, entry.key)
}

func (m *Memory) evictOldest() {
	oldest := m.tail.prev
	if oldest == m.head {
		return
	}
	m.removeEntry(oldest)
}
