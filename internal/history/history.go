// Package history persists the list of past queries, most recent first.
//
// The log is append-if-absent: a query that is already recorded keeps its
// position. New queries go to the front and the oldest entry is dropped
// once the log is over capacity.
package history

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"ragclient/internal/kvstore"
)

// DefaultCapacity is the maximum number of queries kept.
const DefaultCapacity = 20

// Store reads and writes the history log under kvstore.KeyQueryHistory.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Storage
	capacity int
	logger   *zap.Logger
}

// New returns a Store over kv. A non-positive capacity means DefaultCapacity.
func New(kv kvstore.Storage, capacity int, logger *zap.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, capacity: capacity, logger: logger}
}

// Load returns the stored log. Missing, unreadable or corrupt state yields an
// empty log; Load never fails.
func (s *Store) Load() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append records query unless it is already present, then persists the log
// before returning. Invalid UTF-8 is stored as U+FFFD, the form Load returns.
func (s *Store) Append(query string) error {
	query = strings.ToValidUTF8(query, "\uFFFD")

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	if slices.Contains(entries, query) {
		return nil
	}
	entries = append([]string{query}, entries...)
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Put(kvstore.KeyQueryHistory, string(data)); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// Clear forgets every recorded query.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(kvstore.KeyQueryHistory); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *Store) load() []string {
	raw, ok, err := s.kv.Get(kvstore.KeyQueryHistory)
	if err != nil {
		s.logger.Warn("read history failed", zap.Error(err))
		return []string{}
	}
	if !ok {
		return []string{}
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("discarding corrupt history", zap.Error(err))
		return []string{}
	}
	if entries == nil {
		return []string{}
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	return entries
}
