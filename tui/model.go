package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pthm/hxbs"
)

// Section is one collapsible block of the accordion view.
type Section struct {
	Title     string
	Lines     []string
	Collapsed bool
}

// Options configures the model.
type Options struct {
	// Duration is the transition duration. Zero means
	// hxbs.DefaultTransitionDuration.
	Duration time.Duration
	// KeepSize leaves the inline height in place after a transition.
	KeepSize bool
	// Logger receives panel transition logs. Nil discards them.
	Logger *slog.Logger
}

// entry pairs a section with the panel animating it.
type entry struct {
	title string
	panel *hxbs.Panel
	box   *Box
}

// Model is the Bubble Tea model for the collapse demo.
type Model struct {
	entries  []entry
	sched    *Scheduler
	selected int
	width    int
	height   int
	ticking  bool
	quitting bool
}

// Animation interval while any box is moving.
const frameInterval = time.Second / 30

// frameMsg redraws a moving box.
type frameMsg time.Time

// NewModel builds a model with one panel per section.
func NewModel(sections []Section, opts Options) (Model, error) {
	if opts.Duration == 0 {
		opts.Duration = hxbs.DefaultTransitionDuration
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	m := Model{sched: &Scheduler{}}
	for _, s := range sections {
		box := NewBox(s.Lines, !s.Collapsed, opts.Duration)
		panel, err := hxbs.NewPanel(box, m.sched,
			hxbs.WithCollapsed(s.Collapsed),
			hxbs.WithTransitionDuration(opts.Duration),
			hxbs.WithResetSize(!opts.KeepSize),
			hxbs.WithLogger(log.With("section", s.Title)),
			hxbs.WithHooks(hxbs.Hooks{
				OnShow: func() { box.SetExpanded(true) },
				OnHide: func() { box.SetExpanded(false) },
			}),
		)
		if err != nil {
			return Model{}, fmt.Errorf("section %q: %w", s.Title, err)
		}
		m.entries = append(m.entries, entry{title: s.Title, panel: panel, box: box})
	}
	return m, nil
}

// Init returns the initial command for the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case runMsg:
		msg()
		return m.schedule()

	case frameMsg:
		m.ticking = false
		return m.schedule()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
		return m, nil

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "g", "home":
		m.selected = 0
		return m, nil

	case "G", "end":
		if len(m.entries) > 0 {
			m.selected = len(m.entries) - 1
		}
		return m, nil

	case "enter", " ":
		if len(m.entries) > 0 {
			m.entries[m.selected].panel.Toggle()
		}
		return m.schedule()

	case "o":
		for _, e := range m.entries {
			e.panel.Show()
		}
		return m.schedule()

	case "c":
		for _, e := range m.entries {
			e.panel.Hide()
		}
		return m.schedule()

	case "q", "ctrl+c":
		for _, e := range m.entries {
			e.panel.Destroy()
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// schedule hands pending panel callbacks to the program and keeps a frame
// tick running while any box is moving.
func (m Model) schedule() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.sched.Flush()}
	if !m.ticking && m.moving() {
		m.ticking = true
		cmds = append(cmds, tea.Tick(frameInterval, func(t time.Time) tea.Msg {
			return frameMsg(t)
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) moving() bool {
	for _, e := range m.entries {
		if e.box.Animating() || e.panel.Transitioning() {
			return true
		}
	}
	return false
}

// Panel returns the panel of section i.
func (m Model) Panel(i int) *hxbs.Panel {
	return m.entries[i].panel
}

// View renders the accordion.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("hxbs collapse"))
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		marker := "▸"
		if e.panel.Active() {
			marker = "▾"
		}
		title := titleStyle.Render(marker + " " + e.title)
		if i == m.selected {
			title = selectedStyle.Render(marker + " " + e.title)
		}
		sb.WriteString(title)

		phase := phaseStyle
		if e.panel.Transitioning() {
			phase = movingStyle
		}
		sb.WriteString(" " + phase.Render(e.panel.Phase().String()))
		sb.WriteString("\n")

		if lines := e.box.Visible(); len(lines) > 0 {
			sb.WriteString(bodyStyle.Render(strings.Join(lines, "\n")))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(footerStyle.Render("j/k move · enter toggle · o open all · c collapse all · q quit"))
	sb.WriteString("\n")
	return sb.String()
}
