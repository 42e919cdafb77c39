package cases

import (
	"context"
	"log/slog"

	"github.com/mmcdole/kindred/internal/collection"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates case client calls, the case list and the notes of
// the selected case. New cases and notes go to the top of their lists.
type Service struct {
	client domain.CaseClient
	cases  *slice.Slice[domain.Case, string]
	notes  *slice.Slice[domain.CaseNote, string]
	logger *slog.Logger
}

// NewService creates a new cases service.
func NewService(client domain.CaseClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		cases:  slice.New[domain.Case, string]("cases", caseKey, logger),
		notes:  slice.New[domain.CaseNote, string]("case_notes", noteKey, logger),
		logger: logger,
	}
}

func caseKey(c domain.Case) string { return c.ID }

func noteKey(n domain.CaseNote) string { return n.ID }

// Cases returns the case list state
func (s *Service) Cases() *slice.Slice[domain.Case, string] { return s.cases }

// Notes returns the selected case's note state
func (s *Service) Notes() *slice.Slice[domain.CaseNote, string] { return s.notes }

func (s *Service) FetchCases(ctx context.Context, q domain.ListQuery) error {
	return s.cases.Fetch(ctx, "Failed to fetch cases", func(ctx context.Context) ([]domain.Case, domain.Pagination, error) {
		return s.client.ListCases(ctx, q)
	})
}

func (s *Service) LoadCase(ctx context.Context, id string) (domain.Case, error) {
	return s.cases.Load(ctx, id, "Failed to fetch case", func(ctx context.Context) (domain.Case, error) {
		return s.client.GetCase(ctx, id)
	})
}

func (s *Service) CreateCase(ctx context.Context, c domain.Case) (domain.Case, error) {
	return s.cases.Create(ctx, "Failed to create case", func(ctx context.Context) (domain.Case, error) {
		return s.client.CreateCase(ctx, c)
	})
}

func (s *Service) UpdateCase(ctx context.Context, c domain.Case) (domain.Case, error) {
	return s.cases.Update(ctx, c.ID, "Failed to update case", func(ctx context.Context) (domain.Case, error) {
		return s.client.UpdateCase(ctx, c)
	})
}

// UpdateStatus moves a case to status. It shares the case's request
// sequence with UpdateCase, so the later of two edits wins.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (domain.Case, error) {
	return s.cases.Update(ctx, id, "Failed to update case status", func(ctx context.Context) (domain.Case, error) {
		return s.client.UpdateCaseStatus(ctx, id, status)
	})
}

func (s *Service) DeleteCase(ctx context.Context, id string) error {
	selected, _ := s.cases.SelectedKey()
	if err := s.cases.Delete(ctx, id, "Failed to delete case", func(ctx context.Context) error {
		return s.client.DeleteCase(ctx, id)
	}); err != nil {
		return err
	}
	if selected == id {
		s.notes.Reset()
	}
	return nil
}

// ClearCurrent drops the selected case and its notes
func (s *Service) ClearCurrent() {
	s.cases.ClearSelection()
	s.notes.Reset()
}

func (s *Service) FetchNotes(ctx context.Context, caseID string) error {
	return s.notes.Fetch(ctx, "Failed to fetch case notes", slice.Unpaged(func(ctx context.Context) ([]domain.CaseNote, error) {
		return s.client.ListCaseNotes(ctx, caseID)
	}))
}

// AddNote records a note and bumps notes_count on the selected case
func (s *Service) AddNote(ctx context.Context, n domain.CaseNote) (domain.CaseNote, error) {
	note, err := s.notes.Create(ctx, "Failed to add case note", func(ctx context.Context) (domain.CaseNote, error) {
		return s.client.CreateCaseNote(ctx, n)
	})
	if err != nil {
		return note, err
	}
	s.adjustNotesCount(note.CaseID, collection.Increment)
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, caseID, noteID string) error {
	if err := s.notes.Delete(ctx, noteID, "Failed to delete case note", func(ctx context.Context) error {
		return s.client.DeleteCaseNote(ctx, caseID, noteID)
	}); err != nil {
		return err
	}
	s.adjustNotesCount(caseID, collection.Decrement)
	return nil
}

func (s *Service) adjustNotesCount(caseID string, step func(int) int) {
	if current, ok := s.cases.SelectedKey(); !ok || current != caseID {
		return
	}
	s.cases.Patch(caseID, func(c domain.Case) domain.Case {
		c.NotesCount = step(c.NotesCount)
		return c
	})
}
