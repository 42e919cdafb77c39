package domain

// ProgressFunc reports refresh progress to the CLI.
// Called once per slice as it finishes: ("contacts", 1, 9, nil), ...
type ProgressFunc func(slice string, done, total int, err error)

// RefreshResult summarizes one slice's refresh.
type RefreshResult struct {
	Slice string // which slice this result is for
	Count int    // records held after refresh
	Err   error  // nil on success
}
