package theme

import (
	"errors"
	"log"
	"sync"
)

// Controller holds one user's preference, keeps it in a Store, and
// republishes the resolved appearance when the preference or the OS signal
// changes.
type Controller struct {
	store  Store
	signal OSSignal
	logger *log.Logger

	// notifyMu serializes state changes with their notifications so
	// listeners observe flips in order. Always taken before mu.
	notifyMu sync.Mutex

	mu        sync.Mutex
	pref      Preference
	osDark    bool
	dark      bool
	nextID    int
	listeners map[int]func(bool)
	unsub     func()
	closed    bool
}

type Option func(*Controller)

// WithLogger routes swallowed storage and signal errors to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController returns a controller at the default preference. Either
// dependency may be nil: a nil store keeps the preference in memory only and
// a nil signal always reports a light OS preference.
func NewController(store Store, signal OSSignal, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		signal:    signal,
		logger:    log.Default(),
		pref:      DefaultPreference,
		listeners: make(map[int]func(bool)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize loads the persisted preference and starts following the OS
// signal. It falls back to DefaultPreference on any storage problem.
func (c *Controller) Initialize() Preference {
	pref := c.load()
	osDark := c.queryOS()

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.pref = pref
	c.osDark = osDark
	if c.unsub == nil && !c.closed && c.signal != nil {
		c.unsub = c.signal.Subscribe(c.osChanged)
	}
	fns := c.recomputeLocked()
	dark := c.dark
	c.mu.Unlock()

	notify(fns, dark)
	return pref
}

func (c *Controller) load() Preference {
	if c.store == nil {
		return DefaultPreference
	}
	raw, err := c.store.Load(StorageKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Printf("theme: reading stored preference: %v", err)
		}
		return DefaultPreference
	}
	pref, err := ParsePreference(raw)
	if err != nil {
		c.logger.Printf("theme: ignoring stored preference: %v", err)
		return DefaultPreference
	}
	return pref
}

func (c *Controller) queryOS() bool {
	if c.signal == nil {
		return false
	}
	dark, err := c.signal.PrefersDark()
	if err != nil {
		c.logger.Printf("theme: OS preference unavailable: %v", err)
		return false
	}
	return dark
}

// SetPreference applies p immediately and persists it. A failed write only
// costs durability; the choice still holds for this session.
func (c *Controller) SetPreference(p Preference) error {
	if !p.Valid() {
		return ErrUnknownPreference
	}

	c.notifyMu.Lock()
	c.mu.Lock()
	c.pref = p
	fns := c.recomputeLocked()
	dark := c.dark
	c.mu.Unlock()

	notify(fns, dark)
	c.notifyMu.Unlock()

	if c.store != nil {
		if err := c.store.Save(StorageKey, p.String()); err != nil {
			c.logger.Printf("theme: persisting preference %q: %v", p, err)
		}
	}
	return nil
}

func (c *Controller) Preference() Preference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pref
}

// IsDark returns the currently resolved appearance.
func (c *Controller) IsDark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dark
}

// OnChange registers fn to run whenever the resolved appearance flips.
// Calls are delivered one at a time in the order the flips happened, so
// consecutive calls always alternate. fn must not call SetPreference or
// Initialize on the same controller.
func (c *Controller) OnChange(fn func(isDark bool)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Close stops following the OS signal and drops all listeners.
func (c *Controller) Close() {
	c.mu.Lock()
	unsub := c.unsub
	c.unsub = nil
	c.closed = true
	c.listeners = make(map[int]func(bool))
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (c *Controller) osChanged(dark bool) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.osDark = dark
	fns := c.recomputeLocked()
	resolved := c.dark
	c.mu.Unlock()

	notify(fns, resolved)
}

// recomputeLocked updates the resolved appearance and returns the listeners
// to notify, or nil when nothing changed. c.mu must be held.
func (c *Controller) recomputeLocked() []func(bool) {
	dark := Resolve(c.pref, c.osDark)
	if dark == c.dark {
		return nil
	}
	c.dark = dark
	fns := make([]func(bool), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func(bool), dark bool) {
	for _, fn := range fns {
		fn(dark)
	}
}
