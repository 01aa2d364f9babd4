// Package collection implements the cached collection store: an in-memory
// mirror of a remote list resource with pagination metadata, read-only state
// streams, and post-write reducers that keep the mirror reconciled.
//
// One Store instance exists per resource type (companies, users, proposals,
// groups). The remote server stays the source of truth; the mirror is only
// ever updated from server response bodies, never from client drafts.
package collection

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by GetByID on a local-cache miss.
	ErrNotFound = errors.New("entity not in local cache")
	// ErrNotLoaded is returned by mutations before the first successful fetch.
	ErrNotLoaded = errors.New("collection not loaded")
)

// Entity is anything cacheable by a Store: it has a stable identity.
type Entity interface {
	EntityID() string
}

// Phase is the store's lifecycle phase.
type Phase string

const (
	PhaseEmpty   Phase = "empty"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// Pagination is the paging metadata of the last fetch: the request parameters
// plus the server-reported totals.
type Pagination struct {
	Page       int
	Size       int
	SortField  string
	SortDir    string
	Filter     string
	TotalSize  int
	TotalPages int
}

// Query describes a page request.
type Query struct {
	Page      int
	Size      int
	SortField string
	SortDir   string
	Filter    string
}

// Page is one fetched page of entities with the server-reported totals.
type Page[E Entity] struct {
	Items      []E
	TotalSize  int
	TotalPages int
}

// State is a snapshot of a store, published to every subscriber. The store
// never mutates a published Items slice or Selected entity in place (the
// reducers copy on write), but the slice backing is shared with the store:
// treat a received State as read-only.
type State[E Entity] struct {
	Phase      Phase
	Items      []E
	Selected   *E
	Pagination Pagination
	// LastError is set only in PhaseError (a failed initial fetch). Mutation
	// failures never appear here: an already-loaded page stays displayable.
	LastError error
}

// Fetcher performs the remote calls for one resource. Implementations absorb
// each endpoint's envelope quirks and return plain entities; a server-side
// soft-delete that reports success=false must come back as an error.
type Fetcher[E Entity] interface {
	List(ctx context.Context, q Query) (Page[E], error)
	Search(ctx context.Context, query string) ([]E, error)
	Create(ctx context.Context, draft E) (E, error)
	Update(ctx context.Context, id string, patch E) (E, error)
	Delete(ctx context.Context, id string) error
}

// Store mirrors one remote collection. Safe for concurrent use; remote calls
// run outside the lock, and a monotonic fence keeps a slow, stale list or
// search response from clobbering a newer one (last-write-wins was the
// observed client behavior; the fence is the deliberate upgrade).
type Store[E Entity] struct {
	fetcher Fetcher[E]
	log     *zap.Logger

	mu      sync.Mutex
	state   State[E]
	fence   uint64 // stamp handed to each replace-wholesale request
	applied uint64 // stamp of the last applied replace
	subs    map[uint64]chan State[E]
	nextSub uint64
}

// NewStore returns an empty Store over the given fetcher. log may be nil.
func NewStore[E Entity](fetcher Fetcher[E], log *zap.Logger) *Store[E] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store[E]{
		fetcher: fetcher,
		log:     log,
		state:   State[E]{Phase: PhaseEmpty},
		subs:    make(map[uint64]chan State[E]),
	}
}

// subscriberBuffer bounds a lagging subscriber; older snapshots are dropped
// first, so a slow consumer always converges on the latest state.
const subscriberBuffer = 8

// Subscribe registers a state stream. The current state is replayed
// immediately; cancel unregisters and closes the channel.
func (s *Store[E]) Subscribe() (<-chan State[E], func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State[E], subscriberBuffer)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Snapshot returns the current state.
func (s *Store[E]) Snapshot() State[E] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// List fetches one page and, on success, replaces items and pagination
// wholesale and republishes. On failure the cached items are left untouched
// and the error goes to the caller only: a store that already held a page
// returns to PhaseReady, one that never loaded moves to PhaseError.
func (s *Store[E]) List(ctx context.Context, q Query) (State[E], error) {
	stamp, prevPhase := s.beginReplace()

	page, err := s.fetcher.List(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.settleFailureLocked(stamp, prevPhase, err)
		return s.state, err
	}
	if !s.advanceLocked(stamp) {
		return s.state, nil
	}
	s.state.Items = page.Items
	s.state.Pagination = Pagination{
		Page:       q.Page,
		Size:       q.Size,
		SortField:  q.SortField,
		SortDir:    q.SortDir,
		Filter:     q.Filter,
		TotalSize:  page.TotalSize,
		TotalPages: page.TotalPages,
	}
	s.settleSuccessLocked()
	return s.state, nil
}

// Search fetches by server-side full-text filter and replaces items wholesale.
// Pagination is left as it was.
func (s *Store[E]) Search(ctx context.Context, query string) ([]E, error) {
	stamp, prevPhase := s.beginReplace()

	items, err := s.fetcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.settleFailureLocked(stamp, prevPhase, err)
		return nil, err
	}
	if !s.advanceLocked(stamp) {
		return items, nil
	}
	s.state.Items = items
	s.settleSuccessLocked()
	return items, nil
}

// GetByID looks id up in the current local snapshot only; no remote call is
// made, so the result is as stale as the last fetch. On a hit the entity
// becomes the selected one and the new state is published.
func (s *Store[E]) GetByID(id string) (E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.state.Items {
		if item.EntityID() == id {
			selected := item
			s.state.Selected = &selected
			s.publishLocked()
			return item, nil
		}
	}
	var zero E
	return zero, ErrNotFound
}

// Select clears the selected entity when id is empty, otherwise behaves like
// GetByID without returning the entity.
func (s *Store[E]) Select(id string) error {
	if id == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state.Selected = nil
		s.publishLocked()
		return nil
	}
	_, err := s.GetByID(id)
	return err
}

// Create performs the remote create and, on success, prepends the server's
// returned entity (never the local draft) to the cached items.
func (s *Store[E]) Create(ctx context.Context, draft E) (E, error) {
	var zero E
	if !s.ready() {
		return zero, ErrNotLoaded
	}
	created, err := s.fetcher.Create(ctx, draft)
	if err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = prepend(s.state.Items, created)
	s.publishLocked()
	return created, nil
}

// Update performs the remote update and, on success, replaces the cached
// element by id with the server's returned representation. If that entity is
// selected, the selection is swapped to the same representation, not merged.
func (s *Store[E]) Update(ctx context.Context, id string, patch E) (E, error) {
	var zero E
	if !s.ready() {
		return zero, ErrNotLoaded
	}
	updated, err := s.fetcher.Update(ctx, id, patch)
	if err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = replaceByID(s.state.Items, id, updated)
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == id {
		selected := updated
		s.state.Selected = &selected
	}
	s.publishLocked()
	return updated, nil
}

// Delete performs the remote delete and, on success, removes the cached
// element and clears the selection if it pointed at it. On failure the cache
// is untouched and the error is surfaced.
func (s *Store[E]) Delete(ctx context.Context, id string) error {
	if !s.ready() {
		return ErrNotLoaded
	}
	if err := s.fetcher.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = removeByID(s.state.Items, id)
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == id {
		s.state.Selected = nil
	}
	s.publishLocked()
	return nil
}

// Reset drops the mirror back to empty. Best-effort UI hygiene on
// navigation away, not a correctness requirement.
func (s *Store[E]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State[E]{Phase: PhaseEmpty}
	s.publishLocked()
}

func (s *Store[E]) ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase == PhaseReady
}

// beginReplace stamps a replace-wholesale request, publishes the loading
// phase, and remembers what to fall back to on failure.
func (s *Store[E]) beginReplace() (stamp uint64, prevPhase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fence++
	prevPhase = s.state.Phase
	s.state.Phase = PhaseLoading
	s.publishLocked()
	return s.fence, prevPhase
}

// advanceLocked reports whether a response with the given stamp may be
// applied, and records it as the newest if so.
func (s *Store[E]) advanceLocked(stamp uint64) bool {
	if stamp <= s.applied {
		s.log.Debug("stale response discarded",
			zap.Uint64("stamp", stamp),
			zap.Uint64("applied", s.applied))
		if s.fence == s.applied { // no replace still in flight
			s.state.Phase = PhaseReady
			s.publishLocked()
		}
		return false
	}
	s.applied = stamp
	return true
}

func (s *Store[E]) settleSuccessLocked() {
	s.state.Phase = PhaseReady
	s.state.LastError = nil
	if s.state.Selected != nil {
		s.state.Selected = reselect(s.state.Items, (*s.state.Selected).EntityID())
	}
	s.publishLocked()
}

func (s *Store[E]) settleFailureLocked(stamp uint64, prevPhase Phase, err error) {
	if stamp <= s.applied {
		// A newer replace already landed; this failure is as stale as a
		// stale success and must not disturb the fresher state.
		s.log.Debug("stale failure discarded",
			zap.Uint64("stamp", stamp),
			zap.Uint64("applied", s.applied))
		if s.fence == s.applied { // no replace still in flight
			s.state.Phase = PhaseReady
			s.publishLocked()
		}
		return
	}
	if prevPhase == PhaseReady {
		// The page already on display stays valid; only the direct caller
		// learns about the failure.
		s.state.Phase = PhaseReady
	} else {
		s.state.Phase = PhaseError
		s.state.LastError = err
	}
	s.publishLocked()
}

// publishLocked fans the current state out to every subscriber, dropping the
// oldest buffered snapshot for any subscriber that is full.
func (s *Store[E]) publishLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.state:
			default:
			}
		}
	}
}
