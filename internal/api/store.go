package api

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/kernreg/internal/graph"
)

var errNetworkNotFound = errors.New("network not found")

type networkRecord struct {
	// mu serializes dump calls on one tree.
	mu        sync.Mutex
	root      *graph.Cell
	createdAt time.Time
}

// NetworkStore keeps uploaded network trees in memory.
type NetworkStore struct {
	mu       sync.Mutex
	networks map[string]*networkRecord
}

func NewNetworkStore() *NetworkStore {
	return &NetworkStore{networks: make(map[string]*networkRecord)}
}

func (s *NetworkStore) Create(root *graph.Cell, now time.Time) string {
	id := "net_" + uuid.NewString()
	s.mu.Lock()
	s.networks[id] = &networkRecord{root: root, createdAt: now}
	s.mu.Unlock()
	return id
}

func (s *NetworkStore) get(id string) (*networkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.networks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNetworkNotFound, id)
	}
	return rec, nil
}

// With runs fn while holding the network's lock.
func (s *NetworkStore) With(id string, fn func(root *graph.Cell, createdAt time.Time) error) error {
	rec, err := s.get(id)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return fn(rec.root, rec.createdAt)
}

func (s *NetworkStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.networks[id]; !ok {
		return false
	}
	delete(s.networks, id)
	return true
}

func (s *NetworkStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.networks)
}
