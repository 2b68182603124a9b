// Package preferences keeps the reader settings shared by every screen and
// command: preferred group, layout direction and scaling mode.
package preferences

import (
	"fmt"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Key names a preference. Observers receive only the key that changed.
type Key string

const (
	PreferredGroup Key = "preferred_group"
	Layout         Key = "layout_direction"
	Scaling        Key = "scaling_mode"
)

// Keys lists every preference in display order.
var Keys = []Key{PreferredGroup, Layout, Scaling}

// Backend persists raw preference values. data.Repository implements it.
type Backend interface {
	GetPreference(name string) (string, bool, error)
	SetPreference(name, value string) error
}

type observer struct {
	id int
	fn func(Key)
}

// Store reads and writes typed preferences and notifies observers after each
// successful write.
type Store struct {
	backend      Backend
	defaultGroup string
	log          *zap.SugaredLogger

	mu        sync.Mutex
	observers []observer
	nextID    int
}

func NewStore(backend Backend, defaultGroup string, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{backend: backend, defaultGroup: defaultGroup, log: log}
}

func (s *Store) raw(key Key) (string, bool) {
	v, ok, err := s.backend.GetPreference(string(key))
	if err != nil {
		s.log.Warnw("failed to read preference, using default", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *Store) write(key Key, value string) error {
	if err := s.backend.SetPreference(string(key), value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	s.notify(key)
	return nil
}

// PreferredGroup returns the preferred group identifier, empty for none.
func (s *Store) PreferredGroup() string {
	if v, ok := s.raw(PreferredGroup); ok {
		return v
	}
	return s.defaultGroup
}

// SetPreferredGroup stores group; an empty string clears the preference.
func (s *Store) SetPreferredGroup(group string) error {
	return s.write(PreferredGroup, group)
}

func (s *Store) Layout() LayoutDirection {
	v, ok := s.raw(Layout)
	if !ok {
		return LeftToRight
	}
	n, err := strconv.Atoi(v)
	if err != nil || !LayoutDirection(n).Valid() {
		return LeftToRight
	}
	return LayoutDirection(n)
}

func (s *Store) SetLayout(d LayoutDirection) error {
	if !d.Valid() {
		return fmt.Errorf("invalid layout direction %d", int(d))
	}
	return s.write(Layout, strconv.Itoa(int(d)))
}

func (s *Store) Scaling() ScalingMode {
	v, ok := s.raw(Scaling)
	if !ok {
		return ScaleWidth
	}
	n, err := strconv.Atoi(v)
	if err != nil || !ScalingMode(n).Valid() {
		return ScaleWidth
	}
	return ScalingMode(n)
}

func (s *Store) SetScaling(m ScalingMode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid scaling mode %d", int(m))
	}
	return s.write(Scaling, strconv.Itoa(int(m)))
}

// Get returns the display form of a preference.
func (s *Store) Get(key Key) (string, error) {
	switch key {
	case PreferredGroup:
		return s.PreferredGroup(), nil
	case Layout:
		return s.Layout().String(), nil
	case Scaling:
		return s.Scaling().String(), nil
	}
	return "", fmt.Errorf("unknown preference %q", key)
}

// Set parses value in display form and stores it.
func (s *Store) Set(key Key, value string) error {
	switch key {
	case PreferredGroup:
		return s.SetPreferredGroup(value)
	case Layout:
		d, err := ParseLayoutDirection(value)
		if err != nil {
			return err
		}
		return s.SetLayout(d)
	case Scaling:
		m, err := ParseScalingMode(value)
		if err != nil {
			return err
		}
		return s.SetScaling(m)
	}
	return fmt.Errorf("unknown preference %q", key)
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Key)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(o observer) bool { return o.id == id })
	}
}

func (s *Store) notify(key Key) {
	s.mu.Lock()
	fns := make([]func(Key), len(s.observers))
	for i, o := range s.observers {
		fns[i] = o.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

// MemoryBackend keeps preferences in memory.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) GetPreference(name string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	return v, ok, nil
}

func (m *MemoryBackend) SetPreference(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
	return nil
}
