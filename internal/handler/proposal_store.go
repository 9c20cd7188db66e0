package handler

import (
	"sync"
	"time"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

const (
	proposalPending = "pending"
	proposalDone    = "done"
	proposalFailed  = "failed"
)

type proposalEntry struct {
	status    string
	entries   []domain.ScheduleEntry
	errMsg    string
	expiresAt time.Time
}

// proposalStore holds async generate results in memory, bounded by a TTL.
// It is a collaborator for the job queue, not part of the generator core.
type proposalStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]proposalEntry
}

func newProposalStore(ttl time.Duration) *proposalStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &proposalStore{ttl: ttl, m: make(map[string]proposalEntry)}
}

func (s *proposalStore) putPending(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = proposalEntry{status: proposalPending, expiresAt: time.Now().Add(s.ttl)}
}

func (s *proposalStore) complete(id string, entries []domain.ScheduleEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = proposalEntry{status: proposalDone, entries: entries, expiresAt: time.Now().Add(s.ttl)}
}

func (s *proposalStore) fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = proposalEntry{status: proposalFailed, errMsg: err.Error(), expiresAt: time.Now().Add(s.ttl)}
}

// get returns the entry for id and whether it was found and still live.
func (s *proposalStore) get(id string) (proposalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		return proposalEntry{}, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.m, id)
		return proposalEntry{}, false
	}
	return e, true
}

// sweep drops expired entries. Called periodically by
// ScheduleHandler.StartProposalSweeper.
func (s *proposalStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, e := range s.m {
		if now.After(e.expiresAt) {
			delete(s.m, id)
		}
	}
}
