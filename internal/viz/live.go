package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/field"
	"github.com/san-kum/constellate/internal/metrics"
	"go.uber.org/zap"
)

const (
	// canvas position inside the rendered view, set by canvasStyle padding
	canvasLeft = 2
	canvasTop  = 1

	historyCapacity = 120
)

type TickMsg time.Time

// Model is the Bubble Tea model hosting one field.
type Model struct {
	field    *field.Field
	queue    *anim.FrameQueue
	screen   *Screen
	metrics  metrics.Set
	interval time.Duration
	theme    Theme
	seed     int64

	lineHistory []float64
	showHelp    bool
	quitting    bool
}

// NewModel mounts f onto a terminal screen. f must have been created with
// q as its scheduler and a Factory surface.
func NewModel(f *field.Field, q *anim.FrameQueue, fps int, theme string) (*Model, error) {
	screen := &Screen{}
	if err := f.Mount(screen); err != nil {
		return nil, err
	}
	if screen.Surface() == nil {
		return nil, fmt.Errorf("viz: field is already mounted elsewhere")
	}
	if fps <= 0 {
		fps = 30
	}
	return &Model{
		field:       f,
		queue:       q,
		screen:      screen,
		metrics:     metrics.Default(),
		interval:    time.Second / time.Duration(fps),
		theme:       GetTheme(theme),
		seed:        f.Seed(),
		lineHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.field.Destroy()
			return m, tea.Quit
		case " ":
			m.field.SetPaused(!m.field.Paused())
		case "r":
			m.seed++
			if err := m.field.Reseed(m.seed); err != nil {
				m.field.Logger().Warn("reseed failed", zap.Int64("seed", m.seed), zap.Error(err))
			}
			m.metrics.Reset()
			m.lineHistory = m.lineHistory[:0]
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.trackMouse(msg.X, msg.Y)
	case TickMsg:
		before := m.field.Frames()
		m.queue.RunFrame()
		if m.field.Frames() != before {
			m.observe()
		}
		if m.quitting || m.field.Destroyed() {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) trackMouse(x, y int) {
	s := m.screen.Surface()
	col, row := x-canvasLeft, y-canvasTop
	inside := col >= 0 && row >= 0 && col < s.Canvas.Width && row < s.Canvas.Height
	fx, fy := s.FieldPos(col, row)
	s.Track(fx, fy, inside)
}

func (m *Model) observe() {
	stats := m.field.Stats()
	m.metrics.Observe(metrics.NewFrame(m.field.LastElapsed(), stats, m.field.Particles()))
	m.lineHistory = append(m.lineHistory, float64(stats.Lines))
	if len(m.lineHistory) > historyCapacity {
		m.lineHistory = m.lineHistory[1:]
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.theme
	canvasColor := th.Canvas
	if canvasColor == "" {
		canvasColor = lipgloss.Color(m.field.Config().Color)
	}
	canvasView := lipgloss.NewStyle().
		Padding(canvasTop, canvasLeft).
		Foreground(canvasColor).
		Render(m.screen.Surface().Canvas.String())

	header := lipgloss.NewStyle().Foreground(th.Accent).Bold(true).MarginBottom(1)
	label := lipgloss.NewStyle().Foreground(th.Muted).Width(10)
	value := lipgloss.NewStyle().Foreground(th.Text)

	var s strings.Builder
	s.WriteString(header.Render("CONSTELLATE") + "\n")
	status := "RUNNING"
	if m.field.Paused() {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.lineHistory) > 1 {
		chart := asciigraph.Plot(m.lineHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Lines"))
		s.WriteString(lipgloss.NewStyle().Foreground(th.Graph).Padding(1, 0).Render(chart) + "\n\n")
	}

	cfg := m.field.Config()
	vals := m.metrics.Values()
	ptr := "-"
	if p := m.field.Pointer(); p.Present {
		ptr = fmt.Sprintf("%.0f,%.0f", p.X, p.Y)
	}
	rows := [][2]string{
		{"Field", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)},
		{"Particles", fmt.Sprintf("%d", cfg.Count)},
		{"Lines", fmt.Sprintf("%d", m.field.Stats().Lines)},
		{"FPS", fmt.Sprintf("%.1f", vals["fps"])},
		{"Speed", fmt.Sprintf("%.1f px/s", vals["speed"])},
		{"Pointer", ptr},
		{"Seed", fmt.Sprintf("%d", m.seed)},
		{"Theme", th.Name},
	}
	for _, r := range rows {
		s.WriteString(label.Render(r[0]) + value.Render(r[1]) + "\n")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(th.Muted).MarginTop(2).Render("─────────────────────\nSP:Pause R:Reseed Q:Quit\nT:Theme  ?:Help"))

	stats := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(th.Muted).
		Padding(1, 2).
		Width(45).
		Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, stats)

	if m.showHelp {
		// below the canvas so mouse rows keep their offset
		return mainView + "\n" + `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Re-seed particles        ║
║  T        - Cycle themes             ║
║  Mouse    - Attract particles        ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
	}
	return mainView
}

// Run starts the terminal program and blocks until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
