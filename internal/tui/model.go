package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fractal/internal/cli"
	"github.com/agbru/fractal/internal/config"
	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/render"
	"github.com/agbru/fractal/internal/rules"
	"github.com/agbru/fractal/internal/sysmon"
)

// Timing of the explorer loops.
const (
	// FrameInterval is the redraw pacing, 60 frames per second.
	FrameInterval = time.Second / 60
	// SysSampleInterval is the host sampling period.
	SysSampleInterval = time.Second
)

// Model is the bubbletea model of the interactive explorer.
//
// All view state lives here and is only touched by Update. Frames are
// rendered by a command from a snapshot of that state; at most one frame is
// in flight, and a state change while it renders schedules another.
type Model struct {
	keymap KeyMap
	help   help.Model
	header HeaderModel

	ctx      context.Context
	renderer *render.Renderer
	palettes *palette.Registry
	sampler  *sysmon.Sampler

	viewport    *plane.Viewport
	rule        rules.Rule
	paletteName string
	pal         *palette.Palette
	seed        plane.Complex
	initialSeed plane.Complex
	batched     bool

	width  int
	height int
	canvas string

	shouldRedraw bool
	rendering    bool
	paused       bool
	generation   uint64
	err          error
	exitCode     int
}

// NewModel builds the explorer for cfg. The renderer is borrowed: the
// caller closes it.
func NewModel(ctx context.Context, renderer *render.Renderer, palettes *palette.Registry, cfg config.AppConfig, version string) (Model, error) {
	kind, err := rules.ParseKind(cfg.Rule)
	if err != nil {
		return Model{}, err
	}
	poly, err := rules.ParsePolynomial(cfg.Poly)
	if err != nil {
		return Model{}, err
	}
	pal, err := palettes.Get(cfg.Palette)
	if err != nil {
		return Model{}, err
	}
	vp, err := plane.NewViewportAt(cfg.Width, cfg.Height, cfg.Scale, cfg.Center)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.Styles.ShortKey = helpKey
	h.Styles.ShortDesc = helpDesc
	h.Styles.FullKey = helpKey
	h.Styles.FullDesc = helpDesc

	return Model{
		keymap:       DefaultKeyMap(),
		help:         h,
		header:       NewHeaderModel(version),
		ctx:          ctx,
		renderer:     renderer,
		palettes:     palettes,
		sampler:      sysmon.NewSampler(),
		viewport:     vp,
		rule:         rules.New(kind, poly),
		paletteName:  cfg.Palette,
		pal:          pal,
		seed:         cfg.Seed,
		initialSeed:  cfg.Seed,
		batched:      cfg.Batch,
		shouldRedraw: true,
		exitCode:     apperrors.ExitSuccess,
	}, nil
}

// Init starts the frame and sampling loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameTickCmd(),
		sampleSysStatsCmd(m.sampler),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// The wheel zooms like the scroll wheel of a windowed viewer.
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.ZoomOut()
			m.shouldRedraw = true
		case tea.MouseButtonWheelDown:
			m.viewport.ZoomIn()
			m.shouldRedraw = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case frameTickMsg:
		next, cmd := m.nextFrame()
		return next, tea.Batch(cmd, frameTickCmd())

	case frameMsg:
		// Stale frames still end the in-flight render.
		m.rendering = false
		if msg.generation != m.generation {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.canvas = msg.canvas
		m.header.RecordFrame(msg.elapsed, msg.width, msg.height)
		return m, nil

	case sysTickMsg:
		return m, sampleSysStatsCmd(m.sampler)

	case sysStatsMsg:
		m.header.SetSysStats(sysmon.Stats(msg))
		return m, sysTickCmd()

	case contextDoneMsg:
		m.exitCode = apperrors.ExitCode(msg.err)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit

	case key.Matches(msg, km.PanUp):
		m.viewport.Translate(plane.Up)
	case key.Matches(msg, km.PanDown):
		m.viewport.Translate(plane.Down)
	case key.Matches(msg, km.PanLeft):
		m.viewport.Translate(plane.Left)
	case key.Matches(msg, km.PanRight):
		m.viewport.Translate(plane.Right)

	case key.Matches(msg, km.SeedUp):
		m.seed = plane.NudgeSeed(m.seed, plane.Up, m.viewport.Scale())
	case key.Matches(msg, km.SeedDown):
		m.seed = plane.NudgeSeed(m.seed, plane.Down, m.viewport.Scale())
	case key.Matches(msg, km.SeedLeft):
		m.seed = plane.NudgeSeed(m.seed, plane.Left, m.viewport.Scale())
	case key.Matches(msg, km.SeedRight):
		m.seed = plane.NudgeSeed(m.seed, plane.Right, m.viewport.Scale())

	// ZoomOut shrinks the scale, which magnifies the picture.
	case key.Matches(msg, km.Magnify):
		m.viewport.ZoomOut()
	case key.Matches(msg, km.Widen):
		m.viewport.ZoomIn()

	case key.Matches(msg, km.Reset):
		m.viewport.Reset()
		m.seed = m.initialSeed
		m.header.Reset()

	case key.Matches(msg, km.Palette):
		name := m.palettes.Next(m.paletteName)
		pal, err := m.palettes.Get(name)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.paletteName, m.pal = name, pal

	case key.Matches(msg, km.Rule):
		m.rule = rules.New(nextKind(m.rule.Kind), m.rule.Poly)

	case key.Matches(msg, km.Polynomial):
		m.rule.Poly = nextPolynomial(m.rule.Poly)

	case key.Matches(msg, km.Batch):
		m.batched = !m.batched

	case key.Matches(msg, km.Pause):
		m.paused = !m.paused

	case key.Matches(msg, km.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	default:
		return m, nil
	}
	m.shouldRedraw = true
	return m, nil
}

func nextKind(k rules.Kind) rules.Kind {
	kinds := rules.Kinds()
	for i, c := range kinds {
		if c == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func nextPolynomial(p rules.Polynomial) rules.Polynomial {
	names := rules.PolynomialNames()
	next := names[0]
	for i, n := range names {
		if n == p.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	poly, err := rules.ParsePolynomial(next)
	if err != nil {
		return p
	}
	return poly
}

// layout sizes the canvas to the space left by the chrome. Each text row
// shows two pixel rows.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.header.SetWidth(m.width)
	m.help.Width = m.width
	rows := max(m.height-headerHeight-lipgloss.Height(m.help.View(m.keymap)), 1)
	if err := m.viewport.Resize(m.width, rows*2); err != nil {
		m.err = err
		return
	}
	m.generation++
	m.shouldRedraw = true
}

// scene snapshots the current state for a render.
func (m Model) scene() render.Scene {
	return render.Scene{
		Viewport: m.viewport.Snapshot(),
		Rule:     m.rule,
		Palette:  m.pal,
		Seed:     m.seed,
		Batched:  m.batched,
	}
}

// nextFrame starts a render when the state changed and no frame is in
// flight.
func (m Model) nextFrame() (Model, tea.Cmd) {
	if !m.shouldRedraw || m.rendering || m.paused || m.width == 0 {
		return m, nil
	}
	m.shouldRedraw = false
	m.rendering = true
	return m, renderCmd(m.ctx, m.renderer, m.scene(), m.generation)
}

// View renders the explorer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	info := HeaderInfo{
		Rule:     m.rule.String(),
		Palette:  m.paletteName,
		Strategy: m.scene().Strategy(),
		Workers:  m.renderer.Workers(),
		Scale:    m.viewport.Scale(),
		Offset:   m.viewport.Offset().String(),
		Seed:     m.seed.String(),
		Paused:   m.paused,
		Err:      m.err,
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(info),
		m.canvas,
		m.help.View(m.keymap),
	)
}

// ExitCode returns the code the explorer ended with.
func (m Model) ExitCode() int { return m.exitCode }

// Run is the public entry point for explore mode.
func Run(ctx context.Context, renderer *render.Renderer, palettes *palette.Registry, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model, err := NewModel(ctx, renderer, palettes, cfg, version)
	if err != nil {
		return apperrors.ExitCode(err)
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// renderCmd renders scene and converts it into terminal cells.
func renderCmd(ctx context.Context, renderer *render.Renderer, scene render.Scene, gen uint64) tea.Cmd {
	return func() tea.Msg {
		w, h := scene.Viewport.Width(), scene.Viewport.Height()
		start := time.Now()
		frame, err := renderer.RenderScene(ctx, scene)
		elapsed := time.Since(start)
		if err != nil {
			return frameMsg{generation: gen, err: err}
		}
		var b strings.Builder
		if err := cli.PrintPreview(&b, frame, w, h); err != nil {
			return frameMsg{generation: gen, err: err}
		}
		return frameMsg{
			generation: gen,
			canvas:     strings.TrimSuffix(b.String(), "\n"),
			elapsed:    elapsed,
			width:      w,
			height:     h,
		}
	}
}

func frameTickCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return frameTickMsg(t) })
}

func sysTickCmd() tea.Cmd {
	return tea.Tick(SysSampleInterval, func(t time.Time) tea.Msg { return sysTickMsg(t) })
}

func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg { return sysStatsMsg(s.Sample()) }
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{err: ctx.Err()}
	}
}
