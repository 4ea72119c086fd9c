package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AlainJulien/portfolio/internal/theme"
)

// session is one visitor's live theme state. The signal stands in for the
// visitor's OS color-scheme preference and is fed by their browser.
type session struct {
	ctrl     *theme.Controller
	signal   *theme.Signal
	lastSeen time.Time
	streams  int
}

// sessions keeps a controller per visitor and drops idle ones.
type sessions struct {
	stores func(visitorID string) theme.Store
	ttl    time.Duration

	mu        sync.Mutex
	byVisitor map[string]*session
}

func newSessions(stores func(visitorID string) theme.Store, ttl time.Duration) *sessions {
	return &sessions{
		stores:    stores,
		ttl:       ttl,
		byVisitor: make(map[string]*session),
	}
}

// get returns the visitor's session, loading their stored preference the
// first time they are seen.
func (s *sessions) get(visitorID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(visitorID)
}

func (s *sessions) getLocked(visitorID string) *session {
	sess, ok := s.byVisitor[visitorID]
	if !ok {
		signal := theme.NewSignal(false)
		ctrl := theme.NewController(s.stores(visitorID), signal)
		ctrl.Initialize()
		sess = &session{ctrl: ctrl, signal: signal}
		s.byVisitor[visitorID] = sess
	}
	sess.lastSeen = time.Now()
	return sess
}

// stream pins the session while an event stream is open. Pinned sessions
// are never evicted.
func (s *sessions) stream(visitorID string) (*session, func()) {
	s.mu.Lock()
	sess := s.getLocked(visitorID)
	sess.streams++
	s.mu.Unlock()

	var once sync.Once
	return sess, func() {
		once.Do(func() {
			s.mu.Lock()
			sess.streams--
			sess.lastSeen = time.Now()
			s.mu.Unlock()
		})
	}
}

func (s *sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byVisitor)
}

// evictIdle closes sessions not seen within the TTL before now.
func (s *sessions) evictIdle(now time.Time) int {
	s.mu.Lock()
	cutoff := now.Add(-s.ttl)
	var idle []*session
	for id, sess := range s.byVisitor {
		if sess.streams == 0 && sess.lastSeen.Before(cutoff) {
			idle = append(idle, sess)
			delete(s.byVisitor, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.ctrl.Close()
	}
	return len(idle)
}

const minSweepInterval = time.Second

// run evicts idle sessions until ctx is done, then closes the rest.
func (s *sessions) run(ctx context.Context) error {
	ticker := time.NewTicker(max(s.ttl/2, minSweepInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return nil
		case <-ticker.C:
			if n := s.evictIdle(time.Now()); n > 0 {
				log.Printf("Evicted %d idle theme sessions", n)
			}
		}
	}
}

func (s *sessions) closeAll() {
	s.mu.Lock()
	all := s.byVisitor
	s.byVisitor = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.ctrl.Close()
	}
}
