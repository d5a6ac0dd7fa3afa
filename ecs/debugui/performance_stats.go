package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/momo/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		history: NewFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStatsComponent) Render(d *Debugger, frameTime time.Duration) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ps.history.Push(frameTime)
	stats := d.Catalog.Stats()

	imgui.Text(fmt.Sprintf("Issued Entities: %d (%d destroyed)", stats.IssuedEntities, stats.Destroyed))
	imgui.Text(fmt.Sprintf("Stores: %d", stats.StoreCount))
	imgui.Text(fmt.Sprintf("Components: %d", stats.TotalComponents))

	if avg := ps.history.Average(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := ps.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if d.Scheduler != nil && imgui.TreeNodeStr("Scheduler") {
		renderSchedulerStats(d.Scheduler.Stats())
		imgui.TreePop()
	}

	if d.Pipeline != nil && imgui.TreeNodeStr("Systems") {
		renderPipelineStats(*d.Pipeline.Stats())
		imgui.TreePop()
	}

	if stats.Pending > 0 && imgui.TreeNodeStr("Pending Changes") {
		for op, n := range stats.PendingByOp {
			imgui.BulletText(fmt.Sprintf("%s: %d", op, n))
		}
		imgui.TreePop()
	}
}

func renderSchedulerStats(s ecs.SchedulerStats) {
	imgui.Text(fmt.Sprintf("State: %s", s.State))
	imgui.Text(fmt.Sprintf("Frames: %d  Ticks: %d", s.Frames, s.Ticks))
	imgui.Text(fmt.Sprintf("Tick: avg %s  min %s  max %s", s.AvgTick, s.MinTick, s.MaxTick))
	if s.DroppedFrames > 0 {
		imgui.TextColored(imgui.NewVec4(1.0, 0.6, 0.0, 1.0),
			fmt.Sprintf("Dropped: %d frames, %s", s.DroppedFrames, s.DroppedTime.Round(time.Millisecond)))
	} else {
		imgui.Text("Dropped: none")
	}
	imgui.Text(fmt.Sprintf("Last frame: %d ticks, alpha %.2f", s.LastFrame.Ticks, s.LastFrame.Alpha))
}

func renderPipelineStats(p ecs.PipelineStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, sys := range p.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.MaxDuration.String())
	}
	imgui.EndTable()
}

// FrameHistory is a fixed ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	if size < 1 {
		size = 1
	}
	return &FrameHistory{samples: make([]float32, size)}
}

// Push records one frame, overwriting the oldest once the ring is full.
func (h *FrameHistory) Push(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average returns the mean of the recorded frames, ignoring unused slots.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

// Samples returns the ring in storage order, for plotting.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

// FrameTimer measures the time between successive Delta calls.
type FrameTimer struct {
	clock ecs.Clock
	last  time.Time
}

func NewFrameTimer(clock ecs.Clock) *FrameTimer {
	return &FrameTimer{clock: clock, last: clock.Now()}
}

func (ft *FrameTimer) Delta() time.Duration {
	now := ft.clock.Now()
	d := now.Sub(ft.last)
	ft.last = now
	return d
}
