package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pthm/hxbs"
)

// runMsg carries a scheduled Panel callback back into Update.
type runMsg func()

// Scheduler runs Panel callbacks on the Bubble Tea update loop.
//
// Scheduling only records a command; Flush hands the recorded commands to
// the program, whose messages come back through Update, so callbacks
// never race the model.
type Scheduler struct {
	ticks []tea.Cmd
	ends  []tea.Cmd
}

// Next implements hxbs.Scheduler.
func (s *Scheduler) Next(fn func()) {
	s.ticks = append(s.ticks, func() tea.Msg {
		return runMsg(fn)
	})
}

// TransitionEnd implements hxbs.Scheduler.
func (s *Scheduler) TransitionEnd(el hxbs.Element, d time.Duration, fn func()) {
	s.ends = append(s.ends, tea.Tick(d, func(time.Time) tea.Msg {
		return runMsg(fn)
	}))
}

// Flush returns the commands scheduled since the last Flush.
func (s *Scheduler) Flush() tea.Cmd {
	if s.Len() == 0 {
		return nil
	}
	cmds := append(s.ticks, s.ends...)
	s.ticks, s.ends = nil, nil
	return tea.Batch(cmds...)
}

// Len reports how many commands await Flush.
func (s *Scheduler) Len() int {
	return len(s.ticks) + len(s.ends)
}
