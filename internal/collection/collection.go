// Package collection keeps an ordered, keyed list of records together with an
// optional "current selection" that mirrors one of them.
//
// Every mutation updates the list and the selection together, so a selected
// record is never stale: replacing a record by key overwrites the selection
// with the same key, and removing it clears the selection. Operations are
// in-memory and cannot fail. A Collection is not safe for concurrent use;
// callers (see package slice) serialize access.
package collection

import (
	"slices"

	"github.com/mmcdole/kindred/internal/domain"
)

// KeyFunc extracts the identifier of a record
type KeyFunc[T any, K comparable] func(T) K

// Collection is an ordered sequence of T keyed by K, plus at most one
// selected record.
type Collection[T any, K comparable] struct {
	key        KeyFunc[T, K]
	items      []T
	selected   *T
	pagination domain.Pagination
}

// New creates an empty collection using key to identify records
func New[T any, K comparable](key KeyFunc[T, K]) *Collection[T, K] {
	return &Collection[T, K]{key: key}
}

// Replace swaps in a freshly fetched list and its pagination. A selection
// still present in items is refreshed from it; one that disappeared is
// cleared.
func (c *Collection[T, K]) Replace(items []T, page domain.Pagination) {
	c.items = slices.Clone(items)
	c.pagination = page
	if c.selected == nil {
		return
	}
	if i := c.index(c.key(*c.selected)); i >= 0 {
		item := c.items[i]
		c.selected = &item
	} else {
		c.selected = nil
	}
}

// Prepend inserts item at the front ("recent first" lists). An existing
// record with the same key is dropped first.
func (c *Collection[T, K]) Prepend(item T) {
	c.drop(c.key(item))
	c.items = slices.Insert(c.items, 0, item)
	c.mirror(item)
}

// Append inserts item at the end. An existing record with the same key is
// dropped first.
func (c *Collection[T, K]) Append(item T) {
	c.drop(c.key(item))
	c.items = append(c.items, item)
	c.mirror(item)
}

// InsertSorted appends item and re-sorts the list with less, keeping the
// relative order of equal records.
func (c *Collection[T, K]) InsertSorted(item T, less func(a, b T) int) {
	c.Append(item)
	slices.SortStableFunc(c.items, less)
}

// ReplaceByKey overwrites the record with item's key in place. It never
// inserts: false means no record had that key.
func (c *Collection[T, K]) ReplaceByKey(item T) bool {
	k := c.key(item)
	i := c.index(k)
	if i < 0 {
		return false
	}
	c.items[i] = item
	c.mirror(item)
	return true
}

// RemoveByKey deletes the record with key k and clears a selection
// mirroring it.
func (c *Collection[T, K]) RemoveByKey(k K) bool {
	removed := c.drop(k)
	if c.selected != nil && c.key(*c.selected) == k {
		c.selected = nil
	}
	return removed
}

// Patch applies fn to the record with key k and to the selection when it
// mirrors that key. It reports whether anything changed.
func (c *Collection[T, K]) Patch(k K, fn func(T) T) bool {
	patched := false
	if i := c.index(k); i >= 0 {
		c.items[i] = fn(c.items[i])
		patched = true
	}
	if c.selected != nil && c.key(*c.selected) == k {
		if i := c.index(k); i >= 0 {
			item := c.items[i]
			c.selected = &item
		} else {
			item := fn(*c.selected)
			c.selected = &item
		}
		patched = true
	}
	return patched
}

// Select makes the record with key k the selection
func (c *Collection[T, K]) Select(k K) bool {
	i := c.index(k)
	if i < 0 {
		return false
	}
	item := c.items[i]
	c.selected = &item
	return true
}

// SetSelected stores a record fetched on its own (detail views). When the
// list holds the same key that entry is overwritten too.
func (c *Collection[T, K]) SetSelected(item T) {
	if i := c.index(c.key(item)); i >= 0 {
		c.items[i] = item
	}
	c.selected = &item
}

// ClearSelection drops the selection
func (c *Collection[T, K]) ClearSelection() {
	c.selected = nil
}

// Selected returns a copy of the selection
func (c *Collection[T, K]) Selected() (T, bool) {
	if c.selected == nil {
		var zero T
		return zero, false
	}
	return *c.selected, true
}

// SelectedKey returns the key of the selection
func (c *Collection[T, K]) SelectedKey() (K, bool) {
	if c.selected == nil {
		var zero K
		return zero, false
	}
	return c.key(*c.selected), true
}

// Get returns the record with key k
func (c *Collection[T, K]) Get(k K) (T, bool) {
	if i := c.index(k); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Items returns a copy of the records in display order
func (c *Collection[T, K]) Items() []T {
	return slices.Clone(c.items)
}

// Len returns the number of records
func (c *Collection[T, K]) Len() int {
	return len(c.items)
}

// Key returns the key of item
func (c *Collection[T, K]) Key(item T) K {
	return c.key(item)
}

// Pagination returns the descriptor from the last list replace
func (c *Collection[T, K]) Pagination() domain.Pagination {
	return c.pagination
}

// Reset empties the collection, selection and pagination
func (c *Collection[T, K]) Reset() {
	c.items = nil
	c.selected = nil
	c.pagination = domain.Pagination{}
}

func (c *Collection[T, K]) index(k K) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.key(item) == k })
}

func (c *Collection[T, K]) drop(k K) bool {
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(item T) bool { return c.key(item) == k })
	return len(c.items) != before
}

// mirror overwrites the selection when it has item's key
func (c *Collection[T, K]) mirror(item T) {
	if c.selected != nil && c.key(*c.selected) == c.key(item) {
		c.selected = &item
	}
}
