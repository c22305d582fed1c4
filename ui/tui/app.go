package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"rtop/internal/collector"
	"rtop/internal/config"
	"rtop/internal/engine"
	"rtop/internal/logging"
	"rtop/ui/tui/components"
	"rtop/ui/tui/state"
	"rtop/ui/tui/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"
)

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	provider  collector.StatsProvider
	cfg       *config.Config
	engineCfg engine.Config
	logger    *log.Logger

	state   state.AppState
	spinner spinner.Model
	keys    keyMap
	help    help.Model

	pages   [][]components.Widget
	widgets widgetSettings

	fast *collector.RawStats
	slow *collector.RawStats

	tabCursor float64
	velocity  float64 // Physics velocity
	spring    harmonica.Spring

	width    int
	height   int
	quitting bool
	now      func() time.Time
}

// widgetSettings are the config values baked into widgets at construction.
// A reload that changes any of them rebuilds the widgets.
type widgetSettings struct {
	thresholds     engine.Config
	historySize    int
	showPercentage bool
	smoothCPU      bool
}

// Messages
type FastTickMsg time.Time
type SlowTickMsg time.Time
type AnimateMsg time.Time

type FastMetricsMsg struct {
	Stats *collector.RawStats
	Err   error
}

type SlowMetricsMsg struct {
	Stats *collector.RawStats
	Err   error
}

// ConfigReloadedMsg carries the result of a config file reload.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// New builds the dashboard model. Every widget named in cfg.Pages must be
// registered.
func New(provider collector.StatsProvider, cfg *config.Config, logger *log.Logger) (*MainModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := components.Validate(cfg.Pages); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	zone.NewGlobal()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &MainModel{
		provider:  provider,
		cfg:       cfg,
		engineCfg: cfg.Engine(),
		logger:    logger,
		spinner:   s,
		keys:      defaultKeyMap(),
		help:      help.New(),
		// Frequency 12 with damping 0.9 settles quickly without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9),
		now:    time.Now,
	}
	pages, err := m.buildPages(cfg)
	if err != nil {
		return nil, err
	}
	m.pages = pages
	m.widgets = settingsFor(cfg)
	return m, nil
}

func settingsFor(cfg *config.Config) widgetSettings {
	return widgetSettings{
		thresholds:     cfg.Engine(),
		historySize:    cfg.HistorySize,
		showPercentage: cfg.ShowPercentage,
		smoothCPU:      cfg.SmoothCPU,
	}
}

func (m *MainModel) buildPages(cfg *config.Config) ([][]components.Widget, error) {
	opts := components.Options{
		Thresholds:     cfg.Engine(),
		HistorySize:    cfg.HistorySize,
		ShowPercentage: cfg.ShowPercentage,
		SmoothCPU:      cfg.SmoothCPU,
		Logger:         m.logger,
	}
	if t, ok := m.provider.(collector.ProcessTerminator); ok {
		opts.Terminator = t
	}

	pages := make([][]components.Widget, 0, len(cfg.Pages))
	for _, names := range cfg.Pages {
		page := make([]components.Widget, 0, len(names))
		for _, name := range names {
			w, err := components.New(name, opts)
			if err != nil {
				return nil, err
			}
			page = append(page, w)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchFastCmd(m.provider, m.cfg.FastInterval),
		fetchSlowCmd(m.provider, m.cfg.SlowInterval),
		fastTickCmd(m.cfg.FastInterval),
		slowTickCmd(m.cfg.SlowInterval),
		animateCmd(),
	)
}

// Commands
func fastTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FastTickMsg(t)
	})
}

func slowTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return SlowTickMsg(t)
	})
}

func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

// fetchFastCmd bounds a collection by its poll interval so a stuck sensor
// never queues more than one request behind it.
func fetchFastCmd(p collector.StatsProvider, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), max(timeout, time.Second))
		defer cancel()
		stats, err := p.GetFastMetrics(ctx)
		return FastMetricsMsg{Stats: stats, Err: err}
	}
}

func fetchSlowCmd(p collector.StatsProvider, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), max(timeout, 2*time.Second))
		defer cancel()
		stats, err := p.GetSlowMetrics(ctx)
		return SlowMetricsMsg{Stats: stats, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case FastTickMsg:
		return m, tea.Batch(
			fetchFastCmd(m.provider, m.cfg.FastInterval),
			fastTickCmd(m.cfg.FastInterval),
		)

	case SlowTickMsg:
		return m, tea.Batch(
			fetchSlowCmd(m.provider, m.cfg.SlowInterval),
			slowTickCmd(m.cfg.SlowInterval),
		)

	case FastMetricsMsg:
		return m.handleFastMetricsMsg(msg)

	case SlowMetricsMsg:
		return m.handleSlowMetricsMsg(msg)

	case components.ProcessTerminatedMsg:
		return m.handleProcessTerminatedMsg(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloadedMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.setPage((m.state.Page + 1) % len(m.pages))
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.setPage((m.state.Page - 1 + len(m.pages)) % len(m.pages))
		return m, nil

	case key.Matches(msg, m.keys.JumpPage):
		if n := int(msg.String()[0] - '1'); n < len(m.pages) {
			m.setPage(n)
		}
		return m, nil
	}

	if w := m.focused(); w != nil {
		return m, w.HandleKey(msg.String())
	}
	return m, nil
}

func (m *MainModel) cycleFocus(delta int) {
	n := len(m.pages[m.state.Page])
	m.state.Focus = (m.state.Focus + delta + n) % n
}

func (m *MainModel) setPage(page int) {
	if page == m.state.Page {
		return
	}
	m.state.Page = page
	m.state.Focus = 0
	m.resize()
}

func (m *MainModel) focused() components.Widget {
	page := m.pages[m.state.Page]
	if m.state.Focus < 0 || m.state.Focus >= len(page) {
		return nil
	}
	return page[m.state.Focus]
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	var v float64 = m.velocity
	m.tabCursor, v = m.spring.Update(m.tabCursor, float64(m.state.Page), v)
	m.velocity = v
	return m, animateCmd()
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.resize()
	return m, nil
}

// paneRects lays out the current page below the header and above the footer.
func (m *MainModel) paneRects() []Rect {
	bodyH := m.height - views.ChromeLines - views.FooterHeight(m.help.View(m.keys))
	return Arrange(len(m.pages[m.state.Page]), m.width, bodyH)
}

// resize tells the widgets of the current page their inner (borderless) size.
func (m *MainModel) resize() {
	rects := m.paneRects()
	for i, w := range m.pages[m.state.Page] {
		if i >= len(rects) {
			break
		}
		w.Resize(max(rects[i].H-2, 0), max(rects[i].W-2, 0))
	}
}

func (m *MainModel) handleFastMetricsMsg(msg FastMetricsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("fast collection failed", "err", msg.Err)
		m.state.Err = msg.Err
		return m, nil
	}
	m.fast = msg.Stats
	m.refresh()
	return m, nil
}

func (m *MainModel) handleSlowMetricsMsg(msg SlowMetricsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("slow collection failed", "err", msg.Err)
		m.state.Err = msg.Err
		return m, nil
	}
	m.slow = msg.Stats
	// Charts sample on fast results only; wait for the first one.
	if m.fast != nil {
		m.refresh()
	}
	return m, nil
}

// refresh merges the latest snapshots and feeds every widget, including those
// on hidden pages, so their history stays continuous.
func (m *MainModel) refresh() {
	stats := collector.Merge(m.fast, m.slow)
	m.state.Stats = stats
	m.state.Results = engine.Evaluate(stats, m.engineCfg)
	m.state.Overall = engine.Overall(m.state.Results)
	m.state.LastUpdate = m.now()
	m.state.Err = nil

	for _, page := range m.pages {
		for _, w := range page {
			w.Update(stats)
		}
	}
	m.logger.Debug("metrics refreshed", "cpu", stats.CPUUsage, "ram", stats.RAMUsage, "status", m.state.Overall)
}

func (m *MainModel) handleProcessTerminatedMsg(msg components.ProcessTerminatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Error("terminate failed", "pid", msg.PID, "name", msg.Name, "err", msg.Err)
		m.state.Flash = fmt.Sprintf("could not terminate %s (%d): %v", msg.Name, msg.PID, msg.Err)
		return m, nil
	}
	m.logger.Info("process terminated", "pid", msg.PID, "name", msg.Name)
	m.state.Flash = fmt.Sprintf("terminated %s (%d)", msg.Name, msg.PID)
	return m, fetchSlowCmd(m.provider, m.cfg.SlowInterval)
}

// handleConfigReloadedMsg applies a reloaded config. A failed reload keeps the
// current one. Intervals and thresholds apply immediately; widgets are rebuilt
// only when the pages or their settings changed.
func (m *MainModel) handleConfigReloadedMsg(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil && msg.Config != nil {
		msg.Err = components.Validate(msg.Config.Pages)
	}
	if msg.Err != nil || msg.Config == nil {
		m.logger.Warn("config reload rejected", "err", msg.Err)
		m.state.Flash = fmt.Sprintf("config reload failed: %v", msg.Err)
		return m, nil
	}

	cfg := msg.Config
	settings := settingsFor(cfg)
	if settings != m.widgets || !samePages(cfg.Pages, m.cfg.Pages) {
		pages, err := m.buildPages(cfg)
		if err != nil {
			m.state.Flash = fmt.Sprintf("config reload failed: %v", err)
			return m, nil
		}
		m.pages = pages
		m.widgets = settings
		if m.state.Page >= len(pages) {
			m.state.Page = 0
		}
		m.state.Focus = 0
		if m.state.Stats != nil {
			for _, page := range m.pages {
				for _, w := range page {
					w.Update(m.state.Stats)
				}
			}
		}
	}

	m.cfg = cfg
	m.engineCfg = cfg.Engine()
	if m.state.Stats != nil {
		m.state.Results = engine.Evaluate(m.state.Stats, m.engineCfg)
		m.state.Overall = engine.Overall(m.state.Results)
	}
	m.resize()
	m.logger.Info("config reloaded", "source", cfg.Source)
	m.state.Flash = "config reloaded"
	return m, nil
}

func samePages(a, b [][]string) bool {
	return slices.EqualFunc(a, b, func(x, y []string) bool { return slices.Equal(x, y) })
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i := range m.pages {
		if zone.Get(views.TabZone(i)).InBounds(msg) {
			m.setPage(i)
			return m, nil
		}
	}
	for i := range m.pages[m.state.Page] {
		if zone.Get(views.PaneZone(i)).InBounds(msg) {
			m.state.Focus = i
			return m, nil
		}
	}
	return m, nil
}

// tabNames labels each page by its widgets.
func (m *MainModel) tabNames() []string {
	names := make([]string, len(m.cfg.Pages))
	for i, page := range m.cfg.Pages {
		names[i] = strings.Join(page, "+")
	}
	return names
}

func (m *MainModel) platform() string {
	s := m.state.Stats
	if s == nil || s.Platform == "" {
		return ""
	}
	return strings.TrimSpace(s.Platform + " " + s.PlatformVersion)
}

func (m *MainModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return m.spinner.View() + " starting rtop"
	}

	rects := m.paneRects()
	panes := make([]views.PaneProps, 0, len(rects))
	for i, w := range m.pages[m.state.Page] {
		if i >= len(rects) {
			break
		}
		r := rects[i]
		panes = append(panes, views.PaneProps{
			Title:   w.Title(),
			Body:    w.Display(max(r.H-2, 0), max(r.W-2, 0)),
			X:       r.X,
			Y:       r.Y,
			W:       r.W,
			H:       r.H,
			Focused: i == m.state.Focus,
		})
	}

	return views.RenderDashboard(m.state, views.ViewProps{
		Width:       m.width,
		Height:      m.height,
		Platform:    m.platform(),
		Clock:       m.now().Format("15:04:05"),
		SpinnerView: m.spinner.View(),
		HelpView:    m.help.View(m.keys),
		Tabs:        m.tabNames(),
		Indicator:   m.tabCursor,
		Panes:       panes,
	})
}

// Start runs the dashboard until the user quits or ctx is cancelled. When
// loader is non-nil and cfg came from a file, that file is watched and
// reloads are applied live.
func Start(ctx context.Context, provider collector.StatsProvider, cfg *config.Config, loader *config.Loader, logger *log.Logger) error {
	m, err := New(provider, cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if loader != nil && cfg.Source != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := loader.Watch(watchCtx, cfg.Source, func(c *config.Config, err error) {
				p.Send(ConfigReloadedMsg{Config: c, Err: err})
			})
			if err != nil {
				m.logger.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Cancelled from outside (SIGTERM); not a failure.
		return nil
	}
	return err
}
