// Package store holds the application state for the dashboard: the last
// fetched ontology snapshot, resource lists, and the current error. Views
// read through accessors and trigger explicit fetch actions; there is no
// ambient singleton; a *Store is passed by reference to whatever needs it.
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"lynxdash/internal/deeplynx"
)

// Fetcher is the slice of the Deep Lynx client the store depends on.
type Fetcher interface {
	FetchOntology(ctx context.Context) (deeplynx.GraphSnapshot, error)
	FetchDataSources(ctx context.Context) ([]deeplynx.DataSource, error)
	FetchTypeMappings(ctx context.Context) ([]deeplynx.TypeMapping, error)
}

// Store is the single owner of fetched dashboard state. Each fetch replaces
// the stored value wholesale; there is no incremental merge. A fetch
// failure is recorded as the current error and also returned so the caller
// can skip dependent work. Any successful fetch clears the error.
// Fetch actions may run concurrently (the UI fires all three on startup),
// so access is guarded by a mutex.
type Store struct {
	client Fetcher
	logger *zap.Logger

	mu           sync.RWMutex
	snapshot     deeplynx.GraphSnapshot
	dataSources  []deeplynx.DataSource
	typeMappings []deeplynx.TypeMapping
	lastErr      string
}

// New creates an empty store backed by the given client.
func New(client Fetcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, logger: logger}
}

// Snapshot returns the last fetched ontology graph.
func (s *Store) Snapshot() deeplynx.GraphSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// DataSources returns the last fetched data-source list.
func (s *Store) DataSources() []deeplynx.DataSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataSources
}

// TypeMappings returns the last fetched type-mapping list.
func (s *Store) TypeMappings() []deeplynx.TypeMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typeMappings
}

// Err returns the current error message, empty when there is none.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr dismisses the current error without fetching.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// FetchGraph replaces the stored ontology snapshot.
func (s *Store) FetchGraph(ctx context.Context) error {
	snapshot, err := s.client.FetchOntology(ctx)
	if err != nil {
		s.record(err)
		return err
	}
	s.mu.Lock()
	s.snapshot = snapshot
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// FetchDataSources replaces the stored data-source list.
func (s *Store) FetchDataSources(ctx context.Context) error {
	sources, err := s.client.FetchDataSources(ctx)
	if err != nil {
		s.record(err)
		return err
	}
	s.mu.Lock()
	s.dataSources = sources
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// FetchTypeMappings replaces the stored type-mapping list.
func (s *Store) FetchTypeMappings(ctx context.Context) error {
	mappings, err := s.client.FetchTypeMappings(ctx)
	if err != nil {
		s.record(err)
		return err
	}
	s.mu.Lock()
	s.typeMappings = mappings
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// record converts a fetch failure into the stored human-readable error.
// The server's detail message wins over the transport error text.
func (s *Store) record(err error) {
	var fe *deeplynx.FetchError
	msg := err.Error()
	if errors.As(err, &fe) && fe.Detail != "" {
		msg = fe.Detail
	}
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	s.logger.Warn("fetch failed", zap.Error(err))
}
