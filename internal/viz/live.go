package viz

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 46
	historyCapacity = 600
	maxStepsPerTick = 1 << 16
)

// ErrSequenceEnded is reported when the state sequence stops yielding.
var ErrSequenceEnded = errors.New("viz: state sequence ended")

type TickMsg time.Time

type Options struct {
	Title         string
	Extent        float64
	StepsPerFrame int
	FrameRate     int
	TrailLength   int
	Colors        []string

	// SnapshotDir receives frames saved with the s key.
	SnapshotDir string
}

// Model pulls simulation states one frame at a time and draws them.
type Model struct {
	title string
	next  func() (sim.Snapshot, error, bool)
	stop  func()
	g     float64
	dt    float64

	snap          sim.Snapshot
	err           error
	running       bool
	stepsPerFrame int
	frame         time.Duration

	canvas      *Canvas
	view        Projection
	colors      []lipgloss.Color
	trails      [][]r2.Vec
	trailLength int
	energy      []float64

	snapshotDir string
	notice      string
}

// NewModel takes over the simulator's state sequence. Call Close, or quit
// the program, to release it.
func NewModel(s *sim.Simulator, opts Options) Model {
	return newModel(s.Run(), s.Snapshot(), s.G(), s.Dt(), opts)
}

func newModel(seq iter.Seq2[sim.Snapshot, error], initial sim.Snapshot, g, dt float64, opts Options) Model {
	if opts.StepsPerFrame < 1 {
		opts.StepsPerFrame = 1
	}
	if opts.FrameRate < 1 {
		opts.FrameRate = 30
	}
	if opts.TrailLength < 1 {
		opts.TrailLength = 200
	}
	if opts.Extent <= 0 {
		opts.Extent = 1
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = "."
	}

	next, stop := iter.Pull2(seq)
	canvas := NewCanvas(width, height)
	cw, ch := canvas.Pixels()

	m := Model{
		title:         opts.Title,
		next:          next,
		stop:          stop,
		g:             g,
		dt:            dt,
		snap:          initial,
		running:       true,
		stepsPerFrame: opts.StepsPerFrame,
		frame:         time.Second / time.Duration(opts.FrameRate),
		canvas:        canvas,
		view:          Projection{Extent: opts.Extent, Width: cw, Height: ch},
		colors:        BodyColors(len(initial.Bodies), opts.Colors),
		trails:        make([][]r2.Vec, len(initial.Bodies)),
		trailLength:   opts.TrailLength,
		energy:        make([]float64, 0, historyCapacity),
		snapshotDir:   opts.SnapshotDir,
	}
	m.record()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Err returns the error that stopped stepping, if any.
func (m Model) Err() error {
	return m.err
}

// Close stops the underlying sequence.
func (m Model) Close() {
	m.stop()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "+", "=":
			m.view.Extent /= 1.25
		case "-", "_":
			m.view.Extent *= 1.25
		case "]":
			m.stepsPerFrame = min(m.stepsPerFrame*2, maxStepsPerTick)
		case "[":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		case "c":
			m.trails = make([][]r2.Vec, len(m.trails))
		case "s":
			path, err := m.saveSVG()
			if err != nil {
				m.notice = "save failed: " + err.Error()
			} else {
				m.notice = "saved " + path
			}
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-statsWidth-6, 20)
		h := max(msg.Height-4, 10)
		m.canvas = NewCanvas(w, h)
		m.view.Width, m.view.Height = m.canvas.Pixels()
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance pulls stepsPerFrame states. A failed step stops stepping for
// good.
func (m *Model) advance() {
	for range m.stepsPerFrame {
		snap, err, ok := m.next()
		if !ok {
			err = ErrSequenceEnded
		}
		if err != nil {
			m.err = err
			m.running = false
			break
		}
		m.snap = snap
	}
	m.record()
}

func (m *Model) record() {
	for i, b := range m.snap.Bodies {
		trail := append(m.trails[i], b.Position)
		if len(trail) > m.trailLength {
			trail = trail[len(trail)-m.trailLength:]
		}
		m.trails[i] = trail
	}

	// Coincident bodies have infinite potential energy, which the chart
	// cannot scale.
	e := physics.TotalEnergy(m.snap.Bodies, m.g)
	if math.IsInf(e, 0) || math.IsNaN(e) {
		return
	}
	m.energy = append(m.energy, e)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[len(m.energy)-historyCapacity:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	for i, trail := range m.trails {
		color := m.colors[i]
		for j := 1; j < len(trail); j++ {
			x0, y0 := m.view.Project(trail[j-1])
			x1, y1 := m.view.Project(trail[j])
			if m.view.Visible(x0, y0) && m.view.Visible(x1, y1) {
				m.canvas.DrawLine(x0, y0, x1, y1, color)
			}
		}
	}
	for i, b := range m.snap.Bodies {
		x, y := m.view.Project(b.Position)
		m.canvas.Disc(x, y, 1, m.colors[i])
	}
}

// saveSVG writes the current frame to the snapshot directory.
func (m *Model) saveSVG() (string, error) {
	m.draw()
	name := m.title
	if name == "" {
		name = "orbitsim"
	}
	path := filepath.Join(m.snapshotDir, fmt.Sprintf("%s-%d.svg", name, m.snap.Step))
	if err := os.WriteFile(path, []byte(m.canvas.SVG(4)), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusError.Render("STOPPED") + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(fmt.Sprintf("time: %g secs\n\n", m.snap.Time))

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.snap.Step)) + "\n")
	s.WriteString(labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%g", m.dt)) + "\n")
	s.WriteString(labelStyle.Render("Steps/frame") + valueStyle.Render(fmt.Sprintf("%d", m.stepsPerFrame)) + "\n")
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(fmt.Sprintf("%.3g m", m.view.Extent)) + "\n")

	s.WriteString("\nBODIES\n")
	for i, b := range m.snap.Bodies {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		dot := lipgloss.NewStyle().Foreground(m.colors[i]).Render("●")
		s.WriteString(fmt.Sprintf("%s %s %s\n", dot, labelStyle.Render(name), valueStyle.Render(fmt.Sprintf("%.3g m/s", b.Speed()))))
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.notice != "" {
		s.WriteString("\n" + valueStyle.Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause Q:Quit C:Clear\n+/-:Zoom [ ]:Speed S:Save SVG"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
