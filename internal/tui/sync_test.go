package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nalgeon/be"

	"github.com/mmcdole/kindred/internal/domain"
)

func update(t *testing.T, m SyncModel, msg tea.Msg) (SyncModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SyncModel)
	be.True(t, ok)
	return sm, cmd
}

func TestProgressMarksSlices(t *testing.T) {
	m := NewSyncModel([]string{"contacts", "donations", "events"}, nil)

	m, _ = update(t, m, ProgressMsg{Slice: "contacts", Done: 1, Total: 3})
	m, _ = update(t, m, ProgressMsg{Slice: "donations", Done: 2, Total: 3, Err: &domain.Error{Kind: domain.KindUnauthorized, Message: "Insufficient permissions"}})

	be.Equal(t, m.states[0].Status, StatusSynced)
	be.Equal(t, m.states[1].Status, StatusError)
	be.Equal(t, m.states[2].Status, StatusSyncing)

	view := m.View()
	be.True(t, strings.Contains(view, "Syncing 2/3 slices"))
	be.True(t, strings.Contains(view, "Insufficient permissions"))
}

func TestDoneQuitsWithResults(t *testing.T) {
	m := NewSyncModel([]string{"contacts", "events"}, nil)
	wantErr := errors.New("boom")
	results := []domain.RefreshResult{
		{Slice: "contacts", Count: 12},
		{Slice: "events", Err: wantErr},
	}

	m, cmd := update(t, m, DoneMsg{Results: results, Err: wantErr})
	be.True(t, cmd != nil)
	_, isQuit := cmd().(tea.QuitMsg)
	be.True(t, isQuit)

	got, err := m.Results()
	be.Equal(t, len(got), 2)
	be.Err(t, err, wantErr)

	view := m.View()
	be.True(t, strings.Contains(view, "Synced 1/2 slices"))
	be.True(t, strings.Contains(view, "12 records"))
}

func TestQuitCancelsRefresh(t *testing.T) {
	canceled := false
	m := NewSyncModel([]string{"contacts"}, func() { canceled = true })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	be.True(t, canceled)
	be.True(t, cmd != nil)
	be.True(t, strings.Contains(m.View(), "Sync canceled"))
}

func TestHideFinished(t *testing.T) {
	m := NewSyncModel([]string{"contacts", "events"}, nil)
	m, _ = update(t, m, ProgressMsg{Slice: "contacts", Done: 1, Total: 2})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})

	view := m.View()
	be.True(t, !strings.Contains(view, "contacts"))
	be.True(t, strings.Contains(view, "events"))
}
