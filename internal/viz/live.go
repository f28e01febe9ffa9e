package viz

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/particlefield/internal/export"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	panelWidth      = 40
	historyCapacity = 600
)

type TickMsg time.Time

type Options struct {
	Effect  sim.Effect
	Config  sim.Config
	Metrics []sim.Metric
	Theme   string
	GIFPath string
	Logger  *log.Logger
}

// frameStats keeps what the panel shows. It is shared by every copy of
// the Model bubbletea makes.
type frameStats struct {
	last    sim.FrameInfo
	history []float64
}

func (s *frameStats) OnFrame(f sim.FrameInfo) {
	s.last = f
	s.history = append(s.history, float64(f.Connections))
	if len(s.history) > historyCapacity {
		s.history = s.history[1:]
	}
}

// host is the mutable part of the Model, behind a pointer.
type host struct {
	opts       Options
	loop       *sim.Loop
	braille    *BrailleSurface
	surface    field.Surface
	stats      *frameStats
	gif        *export.GIFRecorder
	lastTick   time.Time
	focused    bool
	userPaused bool
	recording  bool
	err        error
}

// Model is the bubbletea host: the tick is the frame scheduler, window
// size changes feed the debounced resize and focus drives visibility.
type Model struct {
	*host
	name       string
	cols, rows int
}

func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "particlefield.gif"
	}
	braille, surface := NewSurface(NewCanvas(defaultCols-panelWidth, defaultRows-1))
	name := "none"
	if opts.Effect != nil {
		name = opts.Effect.Name()
	}
	return Model{
		host: &host{
			opts:    opts,
			braille: braille,
			surface: surface,
			stats:   &frameStats{},
			gif:     export.NewGIFRecorder(2),
			focused: true,
		},
		name: name,
		cols: braille.Canvas.Width,
		rows: braille.Canvas.Height,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	interval := time.Second / sim.DefaultFPS
	if fps := m.opts.Config.FPS; fps > 0 {
		interval = time.Duration(float64(time.Second) / fps)
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Err is the error that ended the program, if any.
func (m Model) Err() error { return m.err }

// start builds the loop once the terminal size is known, so the effect is
// generated for the real canvas.
func (m *Model) start() {
	if m.loop != nil || m.err != nil {
		return
	}
	cfg := m.opts.Config
	cfg.Width, cfg.Height = LogicalSize(m.cols, m.rows)
	loop, err := sim.NewLoop(m.opts.Effect, m.surface, cfg)
	if err != nil {
		m.err = err
		return
	}
	loop.SetLogger(m.opts.Logger)
	loop.AddObserver(m.stats)
	for _, metric := range m.opts.Metrics {
		loop.AddMetric(metric)
	}
	m.loop = loop
	m.err = loop.Start()
}

func (m *Model) resize(w, h int) {
	cols, rows := max(w-panelWidth, 10), max(h-1, 4)
	if m.loop == nil {
		m.cols, m.rows = cols, rows
		m.braille.Canvas = NewCanvas(cols, rows)
		m.start()
		return
	}
	if m.opts.Config.ReducedMotion {
		// the static frame stays as drawn
		return
	}
	m.cols, m.rows = cols, rows
	m.braille.Canvas = NewCanvas(cols, rows)
	m.loop.Resize(LogicalSize(cols, rows))
}

func (m *Model) applyVisibility() {
	if m.loop != nil {
		m.loop.SetVisible(m.focused && !m.userPaused)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, m.quit()
		case " ":
			m.userPaused = !m.userPaused
			m.applyVisibility()
		case "t":
			SetTheme(NextTheme().Name)
		case "g":
			m.toggleRecording()
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		m.focused = true
		m.applyVisibility()
	case tea.BlurMsg:
		m.focused = false
		m.applyVisibility()
	case TickMsg:
		m.start()
		if m.err != nil {
			return m, tea.Quit
		}
		now := time.Time(msg)
		dt := m.loop.Interval()
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		if m.loop.Tick(dt) && m.recording {
			m.gif.Add(CaptureFrame(m.braille.Canvas, canvasColor()))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.gif.Reset()
		return
	}
	m.recording = false
	m.saveGIF()
}

func (m *Model) saveGIF() {
	if m.gif.Len() == 0 {
		return
	}
	if err := m.gif.Save(m.opts.GIFPath); err != nil {
		m.opts.Logger.Error("saving recording", "path", m.opts.GIFPath, "err", err)
	} else {
		m.opts.Logger.Info("saved recording", "path", m.opts.GIFPath, "frames", m.gif.Len())
	}
	m.gif.Reset()
}

func (m *Model) quit() tea.Cmd {
	if m.recording {
		m.recording = false
		m.saveGIF()
	}
	if m.loop != nil {
		m.loop.Stop()
	}
	return tea.Quit
}

func canvasColor() color.Color {
	c, err := field.ParseColor(string(CurrentTheme.Canvas))
	if err != nil {
		return color.White
	}
	return c.NRGBA()
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return "ERROR"
	case m.recording:
		return "● REC"
	case m.loop == nil:
		return "STARTING"
	case m.opts.Config.ReducedMotion:
		return "STATIC"
	case m.loop.State() == sim.Running:
		return "RUNNING"
	default:
		return "PAUSED"
	}
}

func (m Model) View() string {
	canvasView := canvasStyle().Render(m.braille.Canvas.String())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), CurrentTheme.Primary, CurrentTheme.Accent) + "\n")
	running := m.loop != nil && m.loop.State() == sim.Running
	s.WriteString(statusStyle(running, m.recording).Render(m.status()) + "\n\n")

	last := m.stats.last
	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", last.Frame))
	row("Time", fmt.Sprintf("%.1fs", last.Elapsed.Seconds()))
	row("Surface", fmt.Sprintf("%.0f x %.0f", last.Width, last.Height))
	if last.Particles > 0 {
		row("Particles", fmt.Sprintf("%d", last.Particles))
		row("Lines", fmt.Sprintf("%d", last.Connections))
		row("Opacity", fmt.Sprintf("%.2f", last.MeanOpacity))
	}
	if m.loop != nil && m.loop.ResizePending() {
		row("Resize", "pending")
	}
	row("Theme", CurrentTheme.Name)

	if hist := m.stats.history; last.Particles > 0 && len(hist) > 1 {
		window := hist[max(0, len(hist)-120):]
		chart := asciigraph.Plot(window, asciigraph.Height(4), asciigraph.Width(panelWidth-14), asciigraph.Caption("connections"))
		s.WriteString(graphStyle().Render(chart) + "\n")
		s.WriteString(graphStyle().UnsetPadding().Render(SparklineChart(hist, panelWidth-8)) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + m.err.Error() + "\n")
	}

	s.WriteString(helpStyle().Render("SP:Pause T:Theme G:Record Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle().Render(s.String()))
}

// Run shows the model full screen until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithReportFocus())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
