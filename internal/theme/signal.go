package theme

import "sync"

// OSSignal reports whether the operating system prefers dark rendering and
// notifies subscribers when that changes.
type OSSignal interface {
	PrefersDark() (bool, error)
	Subscribe(fn func(prefersDark bool)) (unsubscribe func())
}

// Signal is an OSSignal whose value is pushed in from outside, for example
// from a browser's client hints or its matchMedia listener.
type Signal struct {
	setMu     sync.Mutex // held across Set so listeners see values in order
	mu        sync.Mutex
	dark      bool
	nextID    int
	listeners map[int]func(bool)
}

func NewSignal(prefersDark bool) *Signal {
	return &Signal{dark: prefersDark, listeners: make(map[int]func(bool))}
}

func (s *Signal) PrefersDark() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark, nil
}

// Set updates the value and notifies listeners if it changed.
func (s *Signal) Set(prefersDark bool) {
	s.setMu.Lock()
	defer s.setMu.Unlock()

	s.mu.Lock()
	if s.dark == prefersDark {
		s.mu.Unlock()
		return
	}
	s.dark = prefersDark
	fns := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(prefersDark)
	}
}

func (s *Signal) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
