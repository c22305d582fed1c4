package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"rtop/internal/collector"
	"rtop/internal/config"
	"rtop/ui/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockStatsProvider for testing
type MockStatsProvider struct {
	terminated []int32
}

func (m *MockStatsProvider) GetFastMetrics(ctx context.Context) (*collector.RawStats, error) {
	return &collector.RawStats{CPUUsage: 42, RAMUsage: 30, CPUCores: 4, LoadAvg1: 0.5, CollectedAt: time.Now()}, nil
}

func (m *MockStatsProvider) GetSlowMetrics(ctx context.Context) (*collector.RawStats, error) {
	return &collector.RawStats{
		Platform:    "ubuntu",
		Processes:   []collector.ProcessStat{{PID: 1, Name: "init", CPU: 1}, {PID: 2, Name: "sshd", CPU: 3}},
		CollectedAt: time.Now(),
	}, nil
}

func (m *MockStatsProvider) Terminate(ctx context.Context, pid int32) error {
	m.terminated = append(m.terminated, pid)
	return nil
}

func newTestModel(t *testing.T) *MainModel {
	t.Helper()
	m, err := New(&MockStatsProvider{}, config.DefaultConfig(), nil)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewRejectsUnknownWidget(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pages = [][]string{{"cpu", "gpu"}}
	_, err := New(&MockStatsProvider{}, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"gpu"`)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pages = [][]string{{"cpu", "cpu", "cpu", "cpu", "cpu"}}
	_, err := New(&MockStatsProvider{}, cfg, nil)
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pages[0]", verr.Field)
}

func TestPageNavigation(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.pages, 2)

	tests := []struct {
		name string
		key  tea.KeyMsg
		want int
	}{
		{"next", runes("]"), 1},
		{"wraps forward", runes("]"), 0},
		{"wraps backward", runes("["), 1},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{"jump", runes("2"), 1},
		{"jump out of range", runes("9"), 1},
	}
	for _, tt := range tests {
		m.Update(tt.key)
		assert.Equal(t, tt.want, m.state.Page, tt.name)
	}
}

func TestFocusCycling(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0, m.state.Focus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2, m.state.Focus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.state.Focus, "focus wraps")

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, m.state.Focus)

	m.Update(runes("]"))
	assert.Equal(t, 0, m.state.Focus, "page switch resets focus")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestTabIndicatorAnimation(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("]"))
	assert.Zero(t, m.tabCursor)

	m.Update(AnimateMsg(time.Now()))
	first := m.tabCursor
	assert.Greater(t, first, 0.0)
	assert.Less(t, first, 1.0)

	m.Update(AnimateMsg(time.Now()))
	m.Update(AnimateMsg(time.Now()))
	assert.Greater(t, m.tabCursor, first)
}

func TestMetricsRefreshState(t *testing.T) {
	m := newTestModel(t)
	p := &MockStatsProvider{}
	assert.False(t, m.state.Loaded())

	slow, _ := p.GetSlowMetrics(context.Background())
	m.Update(SlowMetricsMsg{Stats: slow})
	assert.False(t, m.state.Loaded(), "slow results wait for the first fast one")

	fast, _ := p.GetFastMetrics(context.Background())
	m.Update(FastMetricsMsg{Stats: fast})
	require.True(t, m.state.Loaded())
	assert.Equal(t, 42.0, m.state.Stats.CPUUsage)
	assert.Equal(t, "ubuntu", m.state.Stats.Platform)
	assert.Equal(t, "OK", m.state.Overall)
	assert.NotEmpty(t, m.state.Results)

	cpu := m.pages[0][0].(*components.ChartWidget)
	assert.Equal(t, []int{42}, cpu.Samples())

	procs := m.pages[0][2].(*components.ProcessWidget)
	assert.Equal(t, 2, procs.List().Len())
}

func TestMetricsErrorKeepsLastSnapshot(t *testing.T) {
	m := newTestModel(t)
	fast, _ := (&MockStatsProvider{}).GetFastMetrics(context.Background())
	m.Update(FastMetricsMsg{Stats: fast})

	m.Update(FastMetricsMsg{Err: errors.New("sensor timeout")})
	require.Error(t, m.state.Err)
	assert.Equal(t, 42.0, m.state.Stats.CPUUsage)
}

func TestKeysReachFocusedWidget(t *testing.T) {
	m := newTestModel(t)
	slow, _ := (&MockStatsProvider{}).GetSlowMetrics(context.Background())
	fast, _ := (&MockStatsProvider{}).GetFastMetrics(context.Background())
	m.Update(SlowMetricsMsg{Stats: slow})
	m.Update(FastMetricsMsg{Stats: fast})

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab}) // processes pane
	m.Update(runes("n"))
	procs := m.pages[0][2].(*components.ProcessWidget)
	assert.Equal(t, "Name", procs.List().SortKey())
}

func TestTerminateFlowsThroughProvider(t *testing.T) {
	p := &MockStatsProvider{}
	m, err := New(p, config.DefaultConfig(), nil)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	slow, _ := p.GetSlowMetrics(context.Background())
	fast, _ := p.GetFastMetrics(context.Background())
	m.Update(SlowMetricsMsg{Stats: slow})
	m.Update(FastMetricsMsg{Stats: fast})

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	_, cmd := m.Update(runes("x"))
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(components.ProcessTerminatedMsg)
	require.True(t, ok)
	assert.Equal(t, []int32{2}, p.terminated, "highest CPU first")

	m.Update(done)
	assert.Contains(t, m.state.Flash, "terminated sshd (2)")
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t)

	m.Update(ConfigReloadedMsg{Err: errors.New("bad yaml")})
	assert.Contains(t, m.state.Flash, "config reload failed")
	assert.Len(t, m.pages, 2)

	bad := config.DefaultConfig()
	bad.Pages = [][]string{{"gpu"}}
	m.Update(ConfigReloadedMsg{Config: bad})
	assert.Contains(t, m.state.Flash, "gpu")
	assert.Len(t, m.pages, 2)

	m.Update(runes("2"))
	good := config.DefaultConfig()
	good.Pages = [][]string{{"host"}}
	good.FastInterval = time.Second
	m.Update(ConfigReloadedMsg{Config: good})
	assert.Equal(t, "config reloaded", m.state.Flash)
	require.Len(t, m.pages, 1)
	assert.Equal(t, 0, m.state.Page)
	assert.Equal(t, time.Second, m.cfg.FastInterval)
}

func TestViewRendersPanes(t *testing.T) {
	m := newTestModel(t)
	fast, _ := (&MockStatsProvider{}).GetFastMetrics(context.Background())
	m.Update(FastMetricsMsg{Stats: fast})

	out := m.View()
	for _, want := range []string{"rtop", "CPU Usage", "Memory Usage", "Process List", "cpu+memory+processes", "03:04:05"} {
		assert.Contains(t, out, want)
	}
}

func TestArrangeTiles(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for _, size := range [][2]int{{80, 24}, {81, 25}, {3, 3}} {
			rects := Arrange(n, size[0], size[1])
			require.Len(t, rects, n)
			area := 0
			for _, r := range rects {
				area += r.W * r.H
			}
			assert.Equal(t, size[0]*size[1], area, "n=%d size=%v", n, size)
		}
	}
	assert.Nil(t, Arrange(0, 80, 24))
	assert.Nil(t, Arrange(5, 80, 24))
	assert.Nil(t, Arrange(2, 0, 24))
}

func TestArrangeThreePanes(t *testing.T) {
	want := []Rect{{0, 0, 11, 4}, {0, 4, 5, 5}, {5, 4, 6, 5}}
	if diff := cmp.Diff(want, Arrange(3, 11, 9)); diff != "" {
		t.Errorf("Arrange(3, 11, 9) mismatch (-want +got):\n%s", diff)
	}
}
