package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/ofirka2/brand-manager/internal/models"
)

// ErrUninitialized is the panic value for using a Store that New did not build
var ErrUninitialized = errors.New("store: used before initialization")

// Adapter persists named state slices. Load must report any missing or unreadable
// slice as an error; the store then keeps its default for that slice.
type Adapter interface {
	Save(slice string, value any) error
	Load(slice string, dst any) error
}

// Options configures a new Store
type Options struct {
	// Timezone seeds UserSettings.Timezone when nothing was saved
	Timezone string
}

// Store owns the current State snapshot. Dispatch is the only way to change it.
type Store struct {
	dispatchMu sync.Mutex // one writer at a time, writes applied in dispatch order
	mu         sync.RWMutex
	state      State
	adapter    Adapter
	saveErrs   int
	ready      atomic.Bool
}

// New builds a store from whatever the adapter has saved. A nil adapter keeps
// everything in memory.
func New(adapter Adapter, opts Options) *Store {
	s := &Store{
		state:   Initial(opts.Timezone),
		adapter: adapter,
	}
	s.ready.Store(true)
	if adapter != nil {
		s.load(opts.Timezone)
	}
	return s
}

func (s *Store) load(timezone string) {
	var brands []models.Brand
	if s.loadSlice(SliceBrands, &brands) {
		s.state = Reduce(s.state, SetBrands{Brands: brands})
	}

	var projects []models.Project
	if s.loadSlice(SliceProjects, &projects) {
		s.state = Reduce(s.state, SetProjects{Projects: projects})
	}

	var templates []models.ProjectTemplate
	if s.loadSlice(SliceTemplates, &templates) {
		s.state = Reduce(s.state, SetTemplates{Templates: templates})
	}

	var settings models.UserSettings
	if s.loadSlice(SliceUserSettings, &settings) {
		if settings.Timezone == "" {
			settings.Timezone = timezone
		}
		s.state = Reduce(s.state, SetUserSettings{Settings: settings})
	}

	var notifications models.NotificationSettings
	if s.loadSlice(SliceNotifications, &notifications) {
		s.state = Reduce(s.state, SetNotifications{Settings: notifications})
	}
}

func (s *Store) loadSlice(name Slice, dst any) bool {
	if err := s.adapter.Load(string(name), dst); err != nil {
		log.Printf("store: no saved %s, using defaults (%v)", name, err)
		return false
	}
	log.Printf("store: loaded %s", name)
	return true
}

func (s *Store) mustReady() {
	if s == nil || !s.ready.Load() {
		panic(ErrUninitialized)
	}
}

// State returns the current snapshot. Callers must treat it as read-only.
func (s *Store) State() State {
	s.mustReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action, swaps in the new snapshot and writes the slices the
// action touched through to the adapter. Write failures are logged, counted and
// never roll back the in-memory transition. A nil action changes nothing.
func (s *Store) Dispatch(action Action) State {
	s.mustReady()
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.mustReady()

	if action == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.state
	}

	s.mu.Lock()
	next := Reduce(s.state, action)
	s.state = next
	s.mu.Unlock()

	if s.adapter != nil {
		for _, name := range action.touches() {
			if err := s.adapter.Save(string(name), next.sliceValue(name)); err != nil {
				log.Printf("store: failed to save %s: %v", name, err)
				s.mu.Lock()
				s.saveErrs++
				s.mu.Unlock()
			}
		}
	}
	return next
}

// SaveErrors returns how many write-throughs have failed since New
func (s *Store) SaveErrors() int {
	s.mustReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveErrs
}

// Close ends the store's lifecycle. There is nothing to flush: every
// Dispatch has already written through.
func (s *Store) Close() {
	s.mustReady()
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.ready.Store(false)
}

type ctxKey struct{}

// WithContext attaches s to ctx
func WithContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store attached by WithContext and panics when there is none
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		panic(ErrUninitialized)
	}
	return s
}
