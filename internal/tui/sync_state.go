package tui

// SliceStatus represents the refresh status of a slice
type SliceStatus int

const (
	StatusSyncing SliceStatus = iota
	StatusSynced
	StatusError
)

// SliceState tracks one slice in the sync view
type SliceState struct {
	Name   string
	Status SliceStatus
	Count  int   // records held after refresh
	Err    error // error if any
}
