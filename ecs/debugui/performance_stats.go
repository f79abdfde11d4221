package debugui

import (
	"fmt"
	"slices"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shmup/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		history:       newFrameHistory(historyFrames),
		systemHistory: make(map[string]*frameHistory),
	}
}

// Record adds one frame's wall time and the latest per-system timings to the history.
func (ps *PerformanceStatsComponent) Record(frameTime time.Duration, stats *ecs.SchedulerStats) {
	ps.history.Push(float32(frameTime.Seconds() * 1000))

	if stats == nil {
		return
	}
	for _, sys := range stats.Systems {
		h := ps.systemHistory[sys.Name]
		if h == nil {
			h = newFrameHistory(len(ps.history.samples))
			ps.systemHistory[sys.Name] = h
		}
		h.Push(float32(sys.LastDuration.Microseconds()) / 1000)
	}
}

func (ps *PerformanceStatsComponent) Render(storage *ecs.Storage, scheduler *ecs.Scheduler, frameTime time.Duration) {
	var schedulerStats *ecs.SchedulerStats
	if scheduler != nil {
		schedulerStats = scheduler.GetStats()
	}
	ps.Record(frameTime, schedulerStats)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avgFrameTime := ps.history.Average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := ps.history.Ordered()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if schedulerStats != nil && imgui.TreeNodeStr("Systems") {
		imgui.Text(fmt.Sprintf("Ticks failed: %d", schedulerStats.Failures))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("History")
			imgui.TableHeadersRow()

			for _, sys := range schedulerStats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
				imgui.TableNextColumn()
				if h := ps.systemHistory[sys.Name]; h != nil {
					latency := h.Ordered()
					imgui.PlotLinesFloatPtr("##"+sys.Name, &latency[0], int32(len(latency)))
				}
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// SystemNames lists the systems seen so far in name order.
func (ps *PerformanceStatsComponent) SystemNames() []string {
	names := make([]string, 0, len(ps.systemHistory))
	for name := range ps.systemHistory {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// Tick returns the wall time since the previous call.
func (ft *FrameTimer) Tick() time.Duration {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime)
	ft.lastFrameTime = now
	return delta
}
