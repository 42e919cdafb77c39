// Package slice holds one partition of application state: a keyed
// collection with its selection mirror, a loading flag and the last error,
// together with the runners that perform one network call and apply the
// result.
//
// # Request lifecycle
//
// Every runner (Fetch, Load, Create, Update, Delete, Do) follows the same
// steps:
//
//  1. mark the slice loading and clear the stored error
//  2. perform the call outside the lock
//  3. on failure store the display message and typed error, return err
//  4. on success apply the result to the collection, unless a newer request
//     for the same record (or list) was issued meanwhile
//
// Steps 3 and 4 make the last request issued win instead of the last
// response to arrive: two quick edits of one record can complete out of
// order and only the newer one is applied. Stale responses, failed or not,
// are logged and dropped.
//
// A list response is applied record by record against local changes that
// finished after the list was requested: updated records keep their local
// version, deleted ones stay gone and created ones are kept.
//
// # Concurrency
//
// A Slice is safe for concurrent use. The collection is only touched under
// the slice mutex and Snapshot returns copies.
package slice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/kindred/internal/collection"
	"github.com/mmcdole/kindred/internal/domain"
)

// Slice is the state of one entity type
type Slice[T any, K comparable] struct {
	name   string
	logger *slog.Logger
	insert func(c *collection.Collection[T, K], item T)

	mu       sync.RWMutex
	coll     *collection.Collection[T, K]
	inflight int
	err      error
	errMsg   string
	updated  time.Time
	seq      sequencer[K]
}

// Option configures a Slice
type Option[T any, K comparable] func(*Slice[T, K])

// PrependNew puts created records at the front (recent-first lists). This is
// the default.
func PrependNew[T any, K comparable]() Option[T, K] {
	return func(s *Slice[T, K]) {
		s.insert = func(c *collection.Collection[T, K], item T) { c.Prepend(item) }
	}
}

// AppendNew puts created records at the end
func AppendNew[T any, K comparable]() Option[T, K] {
	return func(s *Slice[T, K]) {
		s.insert = func(c *collection.Collection[T, K], item T) { c.Append(item) }
	}
}

// SortedBy inserts created records and re-sorts the list with less
func SortedBy[T any, K comparable](less func(a, b T) int) Option[T, K] {
	return func(s *Slice[T, K]) {
		s.insert = func(c *collection.Collection[T, K], item T) { c.InsertSorted(item, less) }
	}
}

// New creates an empty slice named name (used in logs)
func New[T any, K comparable](name string, key collection.KeyFunc[T, K], logger *slog.Logger, opts ...Option[T, K]) *Slice[T, K] {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Slice[T, K]{
		name:   name,
		logger: logger.With("slice", name),
		coll:   collection.New(key),
		seq:    newSequencer[K](),
	}
	PrependNew[T, K]()(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the slice name
func (s *Slice[T, K]) Name() string { return s.name }

// Fetch replaces the list with the result of call
func (s *Slice[T, K]) Fetch(ctx context.Context, fallback string, call func(context.Context) ([]T, domain.Pagination, error)) error {
	n := s.start(func() uint64 { return s.seq.beginList() })
	items, page, err := call(ctx)
	if err != nil {
		return s.fail("fetch", fallback, err, func() bool { return s.seq.currentList(n) })
	}
	s.succeed(func() {
		if !s.seq.currentList(n) {
			s.logger.Debug("dropping stale list response", "seq", n)
			return
		}
		s.replace(n, items, page)
		s.logger.Debug("fetched", "count", len(items), "total", page.Total)
	})
	return nil
}

// replace applies list response n, keeping local changes made after the
// list was requested. Called with the lock held.
func (s *Slice[T, K]) replace(n uint64, items []T, page domain.Pagination) {
	var created []T
	for _, k := range s.seq.createdAfter(n) {
		if item, ok := s.coll.Get(k); ok {
			created = append(created, item)
		}
	}

	merged := make([]T, 0, len(items))
	for _, item := range items {
		k := s.coll.Key(item)
		if s.seq.deletedAfter(k, n) {
			s.logger.Debug("skipping record deleted since list request", "key", k)
			continue
		}
		if s.seq.changedAfter(k, n) {
			if local, ok := s.local(k); ok {
				item = local
			}
		}
		merged = append(merged, item)
	}
	s.coll.Replace(merged, page)

	for _, item := range created {
		if _, ok := s.coll.Get(s.coll.Key(item)); !ok {
			s.insert(s.coll, item)
		}
	}
	s.seq.settle(n)
}

// local returns the listed record with key, or the selection when it is
// detached from the list
func (s *Slice[T, K]) local(k K) (T, bool) {
	if item, ok := s.coll.Get(k); ok {
		return item, true
	}
	if sk, ok := s.coll.SelectedKey(); ok && sk == k {
		return s.coll.Selected()
	}
	var zero T
	return zero, false
}

// Load fetches one record and makes it the selection
func (s *Slice[T, K]) Load(ctx context.Context, key K, fallback string, call func(context.Context) (T, error)) (T, error) {
	n := s.start(func() uint64 { return s.seq.begin(key) })
	item, err := call(ctx)
	if err != nil {
		return item, s.fail("load", fallback, err, s.isCurrent(key, n))
	}
	s.succeed(func() {
		if !s.seq.current(key, n) {
			s.logger.Debug("dropping stale record response", "key", key, "seq", n)
			return
		}
		s.coll.SetSelected(item)
		s.seq.markChanged(key)
	})
	return item, nil
}

// Create inserts the record returned by call
func (s *Slice[T, K]) Create(ctx context.Context, fallback string, call func(context.Context) (T, error)) (T, error) {
	g := s.start(s.seq.generation)
	item, err := call(ctx)
	if err != nil {
		return item, s.fail("create", fallback, err, s.inGeneration(g))
	}
	s.succeed(func() {
		if !s.seq.currentGeneration(g) {
			s.logger.Debug("dropping create response after reset")
			return
		}
		s.insert(s.coll, item)
		s.seq.markCreated(s.coll.Key(item))
		s.logger.Debug("created", "key", s.coll.Key(item))
	})
	return item, nil
}

// Update overwrites the record with key using the result of call
func (s *Slice[T, K]) Update(ctx context.Context, key K, fallback string, call func(context.Context) (T, error)) (T, error) {
	n := s.start(func() uint64 { return s.seq.begin(key) })
	item, err := call(ctx)
	if err != nil {
		return item, s.fail("update", fallback, err, s.isCurrent(key, n))
	}
	s.succeed(func() {
		if !s.seq.current(key, n) {
			s.logger.Debug("dropping stale update response", "key", key, "seq", n)
			return
		}
		if !s.coll.ReplaceByKey(item) {
			// not in the list; keep a detached selection fresh
			if k, ok := s.coll.SelectedKey(); ok && k == key {
				s.coll.SetSelected(item)
			}
		}
		s.seq.markChanged(key)
	})
	return item, nil
}

// Delete removes the record with key once call succeeds
func (s *Slice[T, K]) Delete(ctx context.Context, key K, fallback string, call func(context.Context) error) error {
	n := s.start(func() uint64 { return s.seq.begin(key) })
	if err := call(ctx); err != nil {
		return s.fail("delete", fallback, err, s.isCurrent(key, n))
	}
	s.succeed(func() {
		if !s.seq.current(key, n) {
			s.logger.Debug("dropping stale delete response", "key", key, "seq", n)
			return
		}
		s.coll.RemoveByKey(key)
		s.seq.markDeleted(key)
	})
	return nil
}

// Do runs call with the usual loading and error bookkeeping and, on success,
// hands the collection to apply. Use it for operations that do not map to a
// single list mutation (reorder, status transitions, child records).
func (s *Slice[T, K]) Do(ctx context.Context, op, fallback string, call func(context.Context) error, apply func(c *collection.Collection[T, K])) error {
	g := s.start(s.seq.generation)
	if err := call(ctx); err != nil {
		return s.fail(op, fallback, err, s.inGeneration(g))
	}
	s.succeed(func() {
		if !s.seq.currentGeneration(g) {
			s.logger.Debug("dropping response after reset", "op", op)
			return
		}
		if apply != nil {
			apply(s.coll)
		}
	})
	return nil
}

// Mutate applies fn to the collection under the slice lock, without any
// network call. Used for cross-slice effects such as parent counters.
func (s *Slice[T, K]) Mutate(fn func(c *collection.Collection[T, K])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.coll)
}

// Patch applies fn to the record and mirrored selection with key
func (s *Slice[T, K]) Patch(key K, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Patch(key, fn)
}

// Select makes the listed record with key the selection
func (s *Slice[T, K]) Select(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Select(key)
}

// ClearSelection drops the selection
func (s *Slice[T, K]) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll.ClearSelection()
}

// ClearError drops the stored error
func (s *Slice[T, K]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.errMsg = ""
}

// Reset empties the slice (navigation away)
func (s *Slice[T, K]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll.Reset()
	s.err = nil
	s.errMsg = ""
	s.updated = time.Time{}
	s.seq.invalidate()
}

// Items returns a copy of the list
func (s *Slice[T, K]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Items()
}

// Get returns the listed record with key
func (s *Slice[T, K]) Get(key K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Get(key)
}

// Selected returns the selection
func (s *Slice[T, K]) Selected() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Selected()
}

// SelectedKey returns the selection's key
func (s *Slice[T, K]) SelectedKey() (K, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.SelectedKey()
}

// Loading reports whether a request is in flight
func (s *Slice[T, K]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err returns the typed error of the last failed request
func (s *Slice[T, K]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot returns a copy of the slice state
func (s *Slice[T, K]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot[T]{
		Items:       s.coll.Items(),
		Pagination:  s.coll.Pagination(),
		Loading:     s.inflight > 0,
		Error:       s.errMsg,
		LastUpdated: s.updated,
	}
	snap.Selected, snap.HasSelected = s.coll.Selected()
	if s.err != nil {
		snap.ErrorKind = domain.KindOf(s.err)
	}
	return snap
}

// start marks a request in flight and clears the stored error. begin issues
// the request's sequence number under the lock.
func (s *Slice[T, K]) start(begin func() uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.err = nil
	s.errMsg = ""
	return begin()
}

func (s *Slice[T, K]) isCurrent(key K, n uint64) func() bool {
	return func() bool { return s.seq.current(key, n) }
}

func (s *Slice[T, K]) inGeneration(g uint64) func() bool {
	return func() bool { return s.seq.currentGeneration(g) }
}

func (s *Slice[T, K]) succeed(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	apply()
	s.updated = time.Now()
}

// fail records err unless current reports that a newer request has taken
// over. current is called with the lock held.
func (s *Slice[T, K]) fail(op, fallback string, err error, current func() bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if errors.Is(err, context.Canceled) {
		// caller walked away; nothing to show
		s.logger.Debug("request canceled", "op", op)
		return err
	}
	if !current() {
		s.logger.Debug("dropping stale failure", "op", op, "error", err)
		return err
	}
	s.err = err
	s.errMsg = domain.Message(err, fallback)
	s.logger.Error("failed to "+op, "error", err, "kind", domain.KindOf(err).String())
	return err
}

// Unpaged adapts a list call without pagination to Fetch. The whole list is
// reported as one page.
func Unpaged[T any](call func(context.Context) ([]T, error)) func(context.Context) ([]T, domain.Pagination, error) {
	return func(ctx context.Context) ([]T, domain.Pagination, error) {
		items, err := call(ctx)
		if err != nil {
			return nil, domain.Pagination{}, err
		}
		page := domain.Pagination{Total: len(items), Page: 1, Limit: len(items)}
		if len(items) > 0 {
			page.TotalPages = 1
		}
		return items, page, nil
	}
}
