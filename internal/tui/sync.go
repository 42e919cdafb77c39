// Package tui renders the interactive sync progress view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/tui/styles"
)

const progressBarWidth = 30

// Refresher loads every top-level list, reporting progress as it goes
type Refresher interface {
	Slices() []string
	Refresh(ctx context.Context, progress domain.ProgressFunc) ([]domain.RefreshResult, error)
}

// SyncModel is the bubbletea model of `kindred sync`.
type SyncModel struct {
	spinner  spinner.Model
	states   []SliceState
	index    map[string]int
	done     int
	finished bool
	canceled bool
	hideDone bool
	results  []domain.RefreshResult
	err      error
	cancel   context.CancelFunc
}

// NewSyncModel creates the view for the named slices. cancel is called when
// the user quits early.
func NewSyncModel(slices []string, cancel context.CancelFunc) SyncModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	states := make([]SliceState, len(slices))
	index := make(map[string]int, len(slices))
	for i, name := range slices {
		states[i] = SliceState{Name: name, Status: StatusSyncing}
		index[name] = i
	}
	return SyncModel{spinner: sp, states: states, index: index, cancel: cancel}
}

func (m SyncModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit):
			m.canceled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, Keys.Hide):
			m.hideDone = !m.hideDone
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.done = msg.Done
		if i, ok := m.index[msg.Slice]; ok {
			if msg.Err != nil {
				m.states[i].Status = StatusError
				m.states[i].Err = msg.Err
			} else {
				m.states[i].Status = StatusSynced
			}
		}
		return m, nil

	case DoneMsg:
		m.finished = true
		m.results = msg.Results
		m.err = msg.Err
		for _, r := range msg.Results {
			if i, ok := m.index[r.Slice]; ok {
				m.states[i].Count = r.Count
				if r.Err != nil {
					m.states[i].Status = StatusError
					m.states[i].Err = r.Err
				} else {
					m.states[i].Status = StatusSynced
				}
			}
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m SyncModel) View() string {
	var b strings.Builder

	total := len(m.states)
	switch {
	case m.canceled:
		b.WriteString(styles.WarningStyle.Render("Sync canceled"))
	case m.finished:
		b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Synced %d/%d slices", m.synced(), total)))
	default:
		b.WriteString(m.spinner.View() + " " + styles.TitleStyle.Render(fmt.Sprintf("Syncing %d/%d slices...", m.done, total)))
	}
	b.WriteString("\n")
	b.WriteString(styles.RenderProgressBar(m.done, total, progressBarWidth))
	b.WriteString("\n\n")

	width := 0
	for _, s := range m.states {
		width = max(width, lipgloss.Width(s.Name))
	}
	for _, s := range m.states {
		if m.hideDone && s.Status == StatusSynced {
			continue
		}
		b.WriteString(renderState(s, width, m.finished))
		b.WriteString("\n")
	}

	if !m.finished && !m.canceled {
		b.WriteString("\n" + styles.DimStyle.Render(Keys.Quit.Help().Key+" "+Keys.Quit.Help().Desc+" · "+Keys.Hide.Help().Key+" "+Keys.Hide.Help().Desc))
		b.WriteString("\n")
	}
	return b.String()
}

func renderState(s SliceState, width int, finished bool) string {
	name := styles.Pad(s.Name, width)
	switch s.Status {
	case StatusSynced:
		line := styles.SuccessStyle.Render(styles.DoneChar) + " " + name
		if finished {
			line += "  " + styles.DimStyle.Render(fmt.Sprintf("%d records", s.Count))
		}
		return line
	case StatusError:
		return styles.ErrorStyle.Render(styles.FailedChar) + " " + name + "  " +
			styles.ErrorStyle.Render(domain.Message(s.Err, "failed"))
	default:
		return styles.DimStyle.Render(styles.PendingChar+" "+name)
	}
}

func (m SyncModel) synced() int {
	n := 0
	for _, s := range m.states {
		if s.Status == StatusSynced {
			n++
		}
	}
	return n
}

// Results returns what the refresh reported once it finished
func (m SyncModel) Results() ([]domain.RefreshResult, error) {
	return m.results, m.err
}

// RunSync refreshes r while showing the progress view on out.
func RunSync(ctx context.Context, r Refresher, out io.Writer) ([]domain.RefreshResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSyncModel(r.Slices(), cancel), tea.WithOutput(out), tea.WithContext(ctx))

	doneCh := make(chan DoneMsg, 1)
	go func() {
		results, err := r.Refresh(ctx, func(slice string, done, total int, err error) {
			p.Send(ProgressMsg{Slice: slice, Done: done, Total: total, Err: err})
		})
		msg := DoneMsg{Results: results, Err: err}
		doneCh <- msg
		p.Send(msg)
	}()

	// quitting cancels ctx, which makes Run report the program as killed
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		cancel()
		<-doneCh
		return nil, fmt.Errorf("sync view failed: %w", err)
	}
	done := <-doneCh
	return done.Results, done.Err
}
