package tui

import "github.com/mmcdole/kindred/internal/domain"

// Message types for the sync view

// ProgressMsg reports that one slice finished refreshing
type ProgressMsg struct {
	Slice string
	Done  int
	Total int
	Err   error
}

// DoneMsg signals that the whole refresh returned
type DoneMsg struct {
	Results []domain.RefreshResult
	Err     error
}
