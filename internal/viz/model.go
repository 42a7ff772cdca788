package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spinlab/internal/ising"
)

const (
	historyCapacity = 240
	frameRate       = 60

	// cellLimit is the largest lattice drawn with one coloured cell per spin.
	cellLimit = 48

	// DefaultStepsPerTick is the number of Metropolis trials per frame.
	DefaultStepsPerTick = 500
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Options struct {
	Size         int
	Temperature  float64
	Seed         int64
	StepsPerTick int
	Theme        string
}

// Model is the Bubble Tea model for a live lattice.
type Model struct {
	opts    Options
	sim     *ising.Simulator
	canvas  *Canvas
	theme   Theme
	running bool
	braille bool
	help    bool

	lastAccepted int
	magHistory   []float64
	accHistory   []float64
}

// NewModel builds a simulator from opts. Reset rebuilds it from the same
// seed, so the initial lattice is restored exactly.
func NewModel(opts Options) (Model, error) {
	if opts.StepsPerTick <= 0 {
		opts.StepsPerTick = DefaultStepsPerTick
	}
	sim, err := newSimulator(opts)
	if err != nil {
		return Model{}, err
	}
	return Model{
		opts:       opts,
		sim:        sim,
		canvas:     CanvasFor(opts.Size),
		theme:      GetTheme(opts.Theme),
		running:    true,
		braille:    opts.Size > cellLimit,
		magHistory: make([]float64, 0, historyCapacity),
		accHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func newSimulator(opts Options) (*ising.Simulator, error) {
	return ising.New(opts.Size, ising.WithTemperature(opts.Temperature), ising.WithSeed(opts.Seed))
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.scaleTemperature(1.05)
		case "down", "j":
			m.scaleTemperature(0.95)
		case "c":
			_ = m.sim.SetTemperature(ising.CriticalTemperature)
		case "b":
			m.braille = !m.braille
		case "t":
			m.theme = nextTheme(m.theme.Name)
		case "?":
			m.help = !m.help
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	for i := 0; i < m.opts.StepsPerTick; i++ {
		m.sim.Update()
	}
	accepted := m.sim.Accepted()
	m.accHistory = push(m.accHistory, float64(accepted-m.lastAccepted)/float64(m.opts.StepsPerTick))
	m.magHistory = push(m.magHistory, m.sim.AverageMagnetism())
	m.lastAccepted = accepted
}

func push(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) scaleTemperature(factor float64) {
	// SetTemperature only fails for non-positive values, which scaling a
	// positive temperature cannot produce.
	_ = m.sim.SetTemperature(m.sim.Temperature() * factor)
}

func (m *Model) reset() {
	sim, err := newSimulator(m.opts)
	if err != nil {
		return
	}
	m.sim = sim
	m.lastAccepted = 0
	m.magHistory = m.magHistory[:0]
	m.accHistory = m.accHistory[:0]
}

// Simulator exposes the underlying simulator, mainly for tests.
func (m Model) Simulator() *ising.Simulator { return m.sim }

func (m Model) Running() bool { return m.running }

func (m Model) View() string {
	lattice := latticeStyle.Render(m.renderLattice())
	stats := statsStyle.Render(m.renderStats())
	view := lipgloss.JoinHorizontal(lipgloss.Top, lattice, stats)
	if m.help {
		return helpText + "\n" + view
	}
	return view
}

func (m Model) renderLattice() string {
	snap := m.sim.Snapshot()
	if m.braille {
		m.canvas.DrawLattice(snap)
		return lipgloss.NewStyle().Foreground(m.theme.Up).Render(m.canvas.String())
	}

	up := lipgloss.NewStyle().Foreground(m.theme.Up)
	down := lipgloss.NewStyle().Foreground(m.theme.Down)

	n := snap.Size()
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		// Render runs of equal spins with one style call.
		for j := 0; j < n; {
			s := snap.At(i, j)
			k := j
			for k < n && snap.At(i, k) == s {
				k++
			}
			style := down
			if s == ising.Up {
				style = up
			}
			b.WriteString(style.Render(strings.Repeat("██", k-j)))
			j = k
		}
	}
	return b.String()
}

func (m Model) renderStats() string {
	var s strings.Builder

	title := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	s.WriteString(title.Render(fmt.Sprintf("ISING %d×%d", m.opts.Size, m.opts.Size)) + "  ")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING"))
	} else {
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	spins := float64(m.opts.Size * m.opts.Size)
	mag := m.sim.AverageMagnetism()
	t := m.sim.Temperature()

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Temperature", fmt.Sprintf("%.1f K", t))
	row("T/Tc", fmt.Sprintf("%.3f", t/ising.CriticalTemperature))
	row("Steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("Energy/spin", fmt.Sprintf("%.5f eV", m.sim.Energy()/spins))
	row("Magnetism", fmt.Sprintf("%+.4f", mag))
	row("|m|", ProgressBar(math.Abs(mag), 20))

	if len(m.accHistory) > 0 {
		row("Acceptance", fmt.Sprintf("%.3f", m.accHistory[len(m.accHistory)-1]))
		s.WriteString(labelStyle.Render("") + SparklineChart(m.accHistory, 24) + "\n")
	}

	if len(m.magHistory) > 1 {
		chart := asciigraph.Plot(m.magHistory,
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.LowerBound(-1),
			asciigraph.UpperBound(1),
			asciigraph.Caption("magnetism"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	s.WriteString(helpStyle.Render(muted.Render(fmt.Sprintf("theme %s · SP:Pause R:Reset ↑↓:Temp C:Tc B:Braille T:Theme ?:Help Q:Quit", m.theme.Name))))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial lattice ║
║  Up/K     - Temperature +5%          ║
║  Down/J   - Temperature -5%          ║
║  C        - Critical temperature     ║
║  B        - Toggle braille lattice   ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts an interactive session in the alternate screen.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
