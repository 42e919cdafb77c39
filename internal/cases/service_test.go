package cases

import (
	"context"
	"sync"
	"testing"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/nalgeon/be"
)

type fakeClient struct {
	domain.CaseClient
	statusGate map[string]chan struct{} // blocks UpdateCaseStatus for a status
}

func (f *fakeClient) ListCases(context.Context, domain.ListQuery) ([]domain.Case, domain.Pagination, error) {
	cases := []domain.Case{
		{ID: "k1", CaseNumber: "C-001", Status: "open", NotesCount: 1},
		{ID: "k2", CaseNumber: "C-002", Status: "open"},
	}
	return cases, domain.Pagination{Total: 2, Page: 1, Limit: 20, TotalPages: 1}, nil
}

func (f *fakeClient) CreateCase(_ context.Context, c domain.Case) (domain.Case, error) {
	c.ID = "k3"
	c.CaseNumber = "C-003"
	return c, nil
}

func (f *fakeClient) UpdateCaseStatus(_ context.Context, id, status string) (domain.Case, error) {
	if gate, ok := f.statusGate[status]; ok {
		<-gate
	}
	return domain.Case{ID: id, Status: status}, nil
}

func (f *fakeClient) CreateCaseNote(_ context.Context, n domain.CaseNote) (domain.CaseNote, error) {
	n.ID = "n-new"
	return n, nil
}

func (f *fakeClient) DeleteCaseNote(context.Context, string, string) error { return nil }

func (f *fakeClient) DeleteCase(context.Context, string) error { return nil }

func TestCreatePrepends(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeClient{}, nil)
	be.Err(t, svc.FetchCases(ctx, domain.ListQuery{}), nil)

	_, err := svc.CreateCase(ctx, domain.Case{Title: "Rent assistance"})
	be.Err(t, err, nil)
	items := svc.Cases().Items()
	be.Equal(t, len(items), 3)
	be.Equal(t, items[0].CaseNumber, "C-003")
}

func TestNotesCountOnSelectedCase(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeClient{}, nil)
	be.Err(t, svc.FetchCases(ctx, domain.ListQuery{}), nil)
	svc.Cases().Select("k1")

	note, err := svc.AddNote(ctx, domain.CaseNote{CaseID: "k1", Body: "Landlord called"})
	be.Err(t, err, nil)
	got, _ := svc.Cases().Get("k1")
	be.Equal(t, got.NotesCount, 2)
	be.Equal(t, svc.Notes().Items()[0].ID, note.ID)

	be.Err(t, svc.DeleteNote(ctx, "k1", note.ID), nil)
	be.Err(t, svc.DeleteNote(ctx, "k1", "older"), nil)
	be.Err(t, svc.DeleteNote(ctx, "k1", "oldest"), nil)
	sel, _ := svc.Cases().Selected()
	be.Equal(t, sel.NotesCount, 0)
}

// A slow status change must not overwrite a newer one that finished first.
func TestLatestStatusChangeWins(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	svc := NewService(&fakeClient{statusGate: map[string]chan struct{}{"pending": gate}}, nil)
	be.Err(t, svc.FetchCases(ctx, domain.ListQuery{}), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = svc.UpdateStatus(ctx, "k2", "pending")
	}()

	// wait until the first request has been issued
	for !svc.Cases().Loading() {
	}
	_, err := svc.UpdateStatus(ctx, "k2", "closed")
	be.Err(t, err, nil)

	close(gate)
	wg.Wait()

	got, _ := svc.Cases().Get("k2")
	be.Equal(t, got.Status, "closed")
}

func TestDeleteSelectedCaseClearsNotes(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeClient{}, nil)
	be.Err(t, svc.FetchCases(ctx, domain.ListQuery{}), nil)
	svc.Cases().Select("k1")
	_, _ = svc.AddNote(ctx, domain.CaseNote{CaseID: "k1"})

	be.Err(t, svc.DeleteCase(ctx, "k1"), nil)
	be.Equal(t, len(svc.Notes().Items()), 0)
	_, ok := svc.Cases().Selected()
	be.True(t, !ok)
}
