package components

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"rtop/internal/collector"
	"rtop/internal/engine"
	"rtop/internal/markup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Thresholds:     engine.DefaultConfig(),
		HistorySize:    64,
		ShowPercentage: true,
	}
}

func snapshot(at time.Time, cpu, mem float64) *collector.RawStats {
	return &collector.RawStats{CPUUsage: cpu, RAMUsage: mem, CollectedAt: at, CPUCores: 4, LoadAvg1: 1.5}
}

func TestRegistryBuiltins(t *testing.T) {
	names := Names()
	for _, want := range []string{"cpu", "host", "load", "memory", "processes"} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)
}

func TestRegistryNewUnknown(t *testing.T) {
	_, err := New("gpu", testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: cpu")
}

func TestRegistryValidate(t *testing.T) {
	assert.NoError(t, Validate([][]string{{"cpu", "memory"}, {"processes"}}))
	err := Validate([][]string{{"cpu"}, {"cpu", "disk"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() { Register("cpu", NewCPUWidget) })
	assert.Panics(t, func() { Register("", NewCPUWidget) })
	assert.Panics(t, func() { Register("nil-factory", nil) })
}

func TestChartWidgetSkipsRepeatedSnapshot(t *testing.T) {
	w := NewCPUWidget(testOptions()).(*ChartWidget)
	at := time.Now()

	w.Update(snapshot(at, 40, 10))
	w.Update(snapshot(at, 90, 10))
	w.Update(&collector.RawStats{CPUUsage: 70})
	assert.Equal(t, []int{40}, w.Samples())

	w.Update(snapshot(at.Add(time.Second), 60, 10))
	assert.Equal(t, []int{40, 60}, w.Samples())
}

func TestChartWidgetSmoothing(t *testing.T) {
	opts := testOptions()
	opts.SmoothCPU = true
	w := NewCPUWidget(opts).(*ChartWidget)
	at := time.Now()

	w.Update(snapshot(at, 20, 0))
	w.Update(snapshot(at.Add(time.Second), 60, 0))
	w.Update(snapshot(at.Add(2*time.Second), 60, 0))
	// First reading raw, then the mean with the previous raw reading.
	assert.Equal(t, []int{20, 40, 60}, w.Samples())
}

func TestChartWidgetDisplayColorsByThreshold(t *testing.T) {
	w := NewMemoryWidget(testOptions())
	at := time.Now()
	w.Update(snapshot(at, 0, 95))

	out := w.Display(4, 6)
	assert.True(t, strings.HasPrefix(out, markup.Tag(markup.ColorRed)))
	assert.True(t, markup.Balanced(out))

	lines := strings.Split(markup.Strip(out), "\n")
	require.Len(t, lines, 4, "label line plus three glyph rows")
	assert.Equal(t, "   95%", lines[0])
}

func TestChartWidgetDisplayEmptyAndDegenerate(t *testing.T) {
	w := NewCPUWidget(testOptions())
	assert.Equal(t, "", w.Display(0, 10))
	assert.Equal(t, "", w.Display(1, 10), "a label-only height leaves no glyph rows")

	out := w.Display(3, 4)
	assert.Equal(t, "    \n    ", out, "no samples: blank rows, no label")
}

func processSnapshot() *collector.RawStats {
	return &collector.RawStats{
		CollectedAt: time.Now(),
		Processes: []collector.ProcessStat{
			{PID: 10, Name: "alpha", User: "root", CPU: 5.0, Memory: 1.0, RSS: 2048},
			{PID: 20, Name: "bravo", User: "me", CPU: 50.0, Memory: 3.0, RSS: 4096},
			{PID: 30, Name: "charlie", User: "me", CPU: 0.5, Memory: 9.0, RSS: 1 << 20},
		},
	}
}

func TestProcessWidgetSortKeys(t *testing.T) {
	w := NewProcessWidget(testOptions()).(*ProcessWidget)
	w.Update(processSnapshot())

	first := func() string {
		item, ok := w.List().Select()
		require.True(t, ok)
		return item.Name
	}

	w.HandleKey("g")
	assert.Equal(t, "bravo", first(), "defaults to CPU descending")

	w.HandleKey("m")
	w.HandleKey("g")
	assert.Equal(t, "charlie", first())

	w.HandleKey("n")
	w.HandleKey("g")
	assert.Equal(t, "alpha", first())

	w.HandleKey("r")
	w.HandleKey("g")
	assert.Equal(t, "charlie", first())

	w.HandleKey("p")
	w.HandleKey("g")
	assert.Equal(t, "charlie", first(), "PID sorts descending")
}

func TestProcessWidgetNavigationKeepsCursorAcrossUpdates(t *testing.T) {
	w := NewProcessWidget(testOptions()).(*ProcessWidget)
	w.Resize(10, 60)
	w.Update(processSnapshot())

	w.HandleKey("down")
	w.HandleKey("j")
	assert.Equal(t, 2, w.List().Cursor())

	w.Update(processSnapshot())
	assert.Equal(t, 2, w.List().Cursor())

	w.HandleKey("up")
	assert.Equal(t, 1, w.List().Cursor())
	w.HandleKey("end")
	assert.Equal(t, 2, w.List().Cursor())
}

func TestProcessWidgetDisplay(t *testing.T) {
	w := NewProcessWidget(testOptions())
	w.Update(processSnapshot())

	out := w.Display(4, 70)
	assert.True(t, markup.Balanced(out))
	lines := strings.Split(markup.Strip(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Name"))
	assert.Contains(t, lines[1], "bravo")
	assert.Contains(t, out, markup.Tag(markup.Reverse))
}

func TestProcessWidgetTitleCountsProcesses(t *testing.T) {
	w := NewProcessWidget(testOptions())
	assert.Equal(t, "Process List", w.Title())

	w.Update(processSnapshot())
	assert.Equal(t, "Process List (3)", w.Title())
}

func TestProcessWidgetShowsFullPID(t *testing.T) {
	w := NewProcessWidget(testOptions())
	w.Update(&collector.RawStats{
		CollectedAt: time.Now(),
		Processes:   []collector.ProcessStat{{PID: 4194304, Name: "postgres", User: "postgres", CPU: 100}},
	})

	out := markup.Strip(w.Display(2, 80))
	assert.Contains(t, out, "4194304")
	assert.Contains(t, out, " postgres ")
	assert.Contains(t, out, "100.0")
}

type fakeTerminator struct {
	pid int32
	err error
}

func (f *fakeTerminator) Terminate(ctx context.Context, pid int32) error {
	f.pid = pid
	return f.err
}

func TestProcessWidgetTerminate(t *testing.T) {
	term := &fakeTerminator{err: errors.New("permission denied")}
	opts := testOptions()
	opts.Terminator = term
	w := NewProcessWidget(opts)
	w.Update(processSnapshot())

	cmd := w.HandleKey("x")
	require.NotNil(t, cmd)

	msg, ok := cmd().(ProcessTerminatedMsg)
	require.True(t, ok)
	assert.Equal(t, int32(20), msg.PID)
	assert.Equal(t, "bravo", msg.Name)
	assert.EqualError(t, msg.Err, "permission denied")
	assert.Equal(t, int32(20), term.pid)
}

func TestProcessWidgetTerminateWithoutSelection(t *testing.T) {
	opts := testOptions()
	opts.Terminator = &fakeTerminator{}
	w := NewProcessWidget(opts)
	assert.Nil(t, w.HandleKey("x"))
}

func TestLoadWidget(t *testing.T) {
	w := NewLoadWidget(testOptions()).(*LoadWidget)
	at := time.Now()
	for i := 0; i < 5; i++ {
		w.Update(&collector.RawStats{CollectedAt: at.Add(time.Duration(i) * time.Second), LoadAvg1: float64(i), LoadAvg5: 0.5, LoadAvg15: 0.25, CPUCores: 2})
	}
	assert.Len(t, w.history, 5)

	out := w.Display(10, 40)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "4.00 0.50 0.25", lines[0])
	assert.Len(t, lines, 10)

	small := w.Display(3, 40)
	assert.Equal(t, "4.00 0.50 0.25", small, "too small for a chart")
}

func TestLoadWidgetHistoryBounded(t *testing.T) {
	opts := testOptions()
	opts.HistorySize = 3
	w := NewLoadWidget(opts).(*LoadWidget)
	for i := 0; i < 10; i++ {
		w.Push(float64(i))
	}
	assert.Equal(t, []float64{7, 8, 9}, w.history)
}

func TestHostWidget(t *testing.T) {
	w := NewHostWidget(testOptions())
	w.Update(&collector.RawStats{
		Hostname:  "box",
		Platform:  "arch",
		CPUUsage:  95,
		CPUCores:  8,
		Uptime:    26 * time.Hour,
		RAMTotal:  1 << 30,
		Processes: make([]collector.ProcessStat, 3),
	})

	out := w.Display(30, 40)
	assert.True(t, markup.Balanced(out))
	plain := markup.Strip(out)
	assert.Contains(t, plain, "Hostname   box")
	assert.Contains(t, plain, "Uptime     1d 2h0m0s")
	assert.Contains(t, plain, "Processes  3")
	assert.Contains(t, plain, "CRIT CPU Usage 95.0")
	assert.Contains(t, out, markup.Tag(markup.ColorRed))

	narrow := strings.Split(w.Display(2, 8), "\n")
	require.Len(t, narrow, 2)
	for _, line := range narrow {
		assert.LessOrEqual(t, len([]rune(line)), 8)
	}
}

func TestWidgetsIgnoreNilStats(t *testing.T) {
	for _, name := range Names() {
		w, err := New(name, testOptions())
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			w.Update(nil)
			w.Resize(5, 20)
			_ = w.Display(5, 20)
			_ = w.HandleKey("q")
		}, name)
		assert.NotEmpty(t, w.Title())
	}
}
