// Package session keeps in-memory per-session usage counters and QA
// conversation history. Sessions are identified by an opaque client-supplied
// ID and expire after a period of inactivity.
package session

import (
	"sync"
	"time"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

const (
	defaultTTL        = 2 * time.Hour
	defaultMaxHistory = 100
	cleanupInterval   = 10 * time.Minute
)

// HistoryEntry is one question/answer exchange in a session.
type HistoryEntry struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Confidence float64   `json:"confidence"`
	AnswerType string    `json:"answer_type"`
	Timestamp  time.Time `json:"timestamp"`
}

// Info is the externally visible snapshot of a session.
type Info struct {
	ID            string           `json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	LastActive    time.Time        `json:"last_active"`
	FeatureCounts map[string]int64 `json:"feature_counts"`
	History       []HistoryEntry   `json:"history"`
}

type session struct {
	createdAt     time.Time
	lastActive    time.Time
	featureCounts map[string]int64
	history       []HistoryEntry
}

// Store holds all live sessions.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]*session
	ttl        time.Duration
	maxHistory int
}

// NewStore creates a session store with background expiry.
func NewStore() *Store {
	s := &Store{
		sessions:   make(map[string]*session),
		ttl:        defaultTTL,
		maxHistory: defaultMaxHistory,
	}
	go s.cleanup()
	return s
}

// Touch records one use of a feature for the session, creating the session
// on first sight. Blank IDs are ignored.
func (s *Store) Touch(id, feature string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(id)
	sess.featureCounts[feature]++
	sess.lastActive = time.Now()
}

// AppendHistory adds a QA exchange to the session's history, creating the
// session on first sight. History is capped at maxHistory entries; the
// oldest entries are evicted first.
func (s *Store) AppendHistory(id string, entry HistoryEntry) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(id)
	sess.history = append(sess.history, entry)
	if len(sess.history) > s.maxHistory {
		sess.history = sess.history[len(sess.history)-s.maxHistory:]
	}
	sess.lastActive = time.Now()
}

// Get returns a snapshot of the session, or ErrInvalidInput if it does not
// exist.
func (s *Store) Get(id string) (*Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "unknown session %q", id)
	}

	info := &Info{
		ID:            id,
		CreatedAt:     sess.createdAt,
		LastActive:    sess.lastActive,
		FeatureCounts: make(map[string]int64, len(sess.featureCounts)),
		History:       make([]HistoryEntry, len(sess.history)),
	}
	for feature, count := range sess.featureCounts {
		info.FeatureCounts[feature] = count
	}
	copy(info.History, sess.history)
	return info, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) getOrCreateLocked(id string) *session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{
			createdAt:     time.Now(),
			lastActive:    time.Now(),
			featureCounts: make(map[string]int64),
		}
		s.sessions[id] = sess
	}
	return sess
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		cutoff := time.Now().Add(-s.ttl)
		for id, sess := range s.sessions {
			if sess.lastActive.Before(cutoff) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
