package slice

import (
	"time"

	"github.com/mmcdole/kindred/internal/domain"
)

// Snapshot is an immutable view of a slice
type Snapshot[T any] struct {
	Items       []T
	Selected    T
	HasSelected bool
	Pagination  domain.Pagination
	Loading     bool
	Error       string // display message of the last failure, "" when none
	ErrorKind   domain.ErrorKind
	LastUpdated time.Time
}

// HasError reports whether the last request failed
func (s Snapshot[T]) HasError() bool {
	return s.Error != ""
}
