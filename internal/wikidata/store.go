// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package wikidata

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/models"
)

// crosswalkKey is the BadgerDB key for the stored crosswalk.
const crosswalkKey = "crosswalk:wikidata:imdb-freebase"

// Store persists a resolved crosswalk between runs.
type Store interface {
	// Load returns the stored crosswalk, or ok=false when there is none.
	Load(ctx context.Context) (pairs []models.Crosswalk, ok bool, err error)
	Save(ctx context.Context, pairs []models.Crosswalk) error
	Clear(ctx context.Context) error
}

// BadgerStore implements Store on BadgerDB. Entries expire after TTL.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadger opens (or creates) a BadgerDB directory with logging muted.
func OpenBadger(dir string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open crosswalk cache %s: %w", dir, err)
	}
	return db, nil
}

// NewBadgerStore creates a store on db. A non-positive ttl keeps entries
// forever.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl}
}

// Save replaces the stored crosswalk.
func (s *BadgerStore) Save(_ context.Context, pairs []models.Crosswalk) error {
	data, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("marshal crosswalk: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(crosswalkKey), data)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Load retrieves the stored crosswalk.
func (s *BadgerStore) Load(_ context.Context) ([]models.Crosswalk, bool, error) {
	var (
		pairs []models.Crosswalk
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(crosswalkKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &pairs)
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("load crosswalk: %w", err)
	}
	return pairs, found, nil
}

// Clear removes the stored crosswalk.
func (s *BadgerStore) Clear(_ context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(crosswalkKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// InMemoryStore implements Store in memory.
type InMemoryStore struct {
	mu    sync.Mutex
	pairs []models.Crosswalk
	set   bool
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Save stores a copy of pairs.
func (s *InMemoryStore) Save(_ context.Context, pairs []models.Crosswalk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs = append([]models.Crosswalk(nil), pairs...)
	s.set = true
	return nil
}

// Load returns a copy of the stored pairs.
func (s *InMemoryStore) Load(_ context.Context) ([]models.Crosswalk, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, false, nil
	}
	return append([]models.Crosswalk(nil), s.pairs...), true, nil
}

// Clear removes the stored pairs.
func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs, s.set = nil, false
	return nil
}

// CachedResolver serves the crosswalk from a Store and falls back to the
// wrapped Resolver on a miss, saving what it resolves.
type CachedResolver struct {
	Resolver Resolver
	Store    Store
	// Refresh skips the stored copy and re-resolves.
	Refresh bool
}

// Resolve implements Resolver.
func (c CachedResolver) Resolve(ctx context.Context) ([]models.Crosswalk, error) {
	if !c.Refresh {
		pairs, ok, err := c.Store.Load(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			metrics.RecordCrosswalk("cache", "success", 0)
			logging.Ctx(ctx).Debug().Int("pairs", len(pairs)).Msg("crosswalk served from cache")
			return pairs, nil
		}
	}

	pairs, err := c.Resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Store.Save(ctx, pairs); err != nil {
		// The crosswalk itself is fine; only the next run pays for this.
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to cache crosswalk")
	}
	return pairs, nil
}
