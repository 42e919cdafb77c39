package slice

import (
	"cmp"
	"maps"
	"slices"
)

// sequencer hands out monotonic request numbers per record key and for the
// list as a whole. Local changes are stamped from the same counter, so a
// list response can be compared with the changes applied after it was
// requested.
type sequencer[K comparable] struct {
	next   uint64
	list   uint64
	epoch  uint64 // bumped by invalidate; guards unkeyed requests
	latest map[K]uint64

	// local changes by the number stamped when they were applied
	changed map[K]uint64
	deleted map[K]uint64
	created map[K]uint64
}

func newSequencer[K comparable]() sequencer[K] {
	return sequencer[K]{
		latest:  make(map[K]uint64),
		changed: make(map[K]uint64),
		deleted: make(map[K]uint64),
		created: make(map[K]uint64),
	}
}

func (s *sequencer[K]) begin(key K) uint64 {
	s.next++
	s.latest[key] = s.next
	return s.next
}

func (s *sequencer[K]) current(key K, n uint64) bool {
	return s.latest[key] == n
}

func (s *sequencer[K]) beginList() uint64 {
	s.next++
	s.list = s.next
	return s.next
}

func (s *sequencer[K]) currentList(n uint64) bool {
	return s.list == n
}

// generation returns the epoch an unkeyed request (create, Do) belongs to
func (s *sequencer[K]) generation() uint64 {
	return s.epoch
}

func (s *sequencer[K]) currentGeneration(g uint64) bool {
	return s.epoch == g
}

// stamp takes a fresh number for a local change applied now. A list
// request issued before the change finished may not reflect it.
func (s *sequencer[K]) stamp() uint64 {
	s.next++
	return s.next
}

func (s *sequencer[K]) markChanged(key K) {
	s.changed[key] = s.stamp()
}

func (s *sequencer[K]) markDeleted(key K) {
	s.deleted[key] = s.stamp()
	delete(s.changed, key)
	delete(s.created, key)
}

func (s *sequencer[K]) markCreated(key K) {
	s.created[key] = s.stamp()
	delete(s.deleted, key)
}

func (s *sequencer[K]) changedAfter(key K, n uint64) bool {
	return after(s.changed, key, n)
}

func (s *sequencer[K]) deletedAfter(key K, n uint64) bool {
	return after(s.deleted, key, n)
}

// createdAfter returns the keys created after list request n, oldest first
func (s *sequencer[K]) createdAfter(n uint64) []K {
	var keys []K
	for k, c := range s.created {
		if c > n {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(s.created[a], s.created[b])
	})
	return keys
}

// settle forgets local changes that list response n already reflects
func (s *sequencer[K]) settle(n uint64) {
	for _, m := range []map[K]uint64{s.changed, s.deleted, s.created} {
		maps.DeleteFunc(m, func(_ K, c uint64) bool { return c <= n })
	}
}

// invalidate makes every outstanding response stale
func (s *sequencer[K]) invalidate() {
	s.epoch++
	s.next++
	s.list = s.next
	clear(s.latest)
	clear(s.changed)
	clear(s.deleted)
	clear(s.created)
}

func after[K comparable](m map[K]uint64, key K, n uint64) bool {
	c, ok := m[key]
	return ok && c > n
}
