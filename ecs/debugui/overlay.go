// Package debugui is a Dear ImGui overlay over an ecs.Storage. Each window is an
// entity holding an ImguiItem; ImguiSystem queues the visible ones for rendering
// once the frame's systems have run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shmup/ecs"
)

// ImguiItem is one overlay window.
type ImguiItem struct {
	Title  string
	Hidden bool
	Render func()
}

// ImguiInputState is refreshed every overlay frame. Hosts check it before treating
// keys or mouse buttons as game input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	visible := 0
	for item := range i.Items.Values() {
		if item.ImguiItem.Hidden || item.ImguiItem.Render == nil {
			continue
		}
		frame.Commands.Defer(item.ImguiItem.Render)
		visible++
	}

	// a hidden overlay never steals input
	state := i.InputState.Get()
	if visible == 0 {
		*state = ImguiInputState{}
		return
	}
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()
}

// SetVisible shows or hides every overlay window and returns how many it changed.
func SetVisible(storage *ecs.Storage, visible bool) int {
	items := ecs.NewView[struct{ *ImguiItem }](storage)
	changed := 0
	for item := range items.Values() {
		if item.ImguiItem.Hidden == visible {
			item.ImguiItem.Hidden = !visible
			changed++
		}
	}
	return changed
}

// SpawnDebugUI spawns the stock windows: performance stats, archetype table and
// entity inspector. scheduler supplies per-system timings and may be nil.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	perf := NewPerformanceStatsComponent(120)
	archetypes := NewArchetypeViewerComponent()
	inspector := NewEntityInspectorComponent(100)
	timer := NewFrameTimer()

	// clicking an archetype row filters the inspector; clicking it again clears the filter
	var archetypeFilter *uint32
	storage.Spawn(ImguiItem{Title: "performance", Render: func() {
		perf.Render(storage, scheduler, timer.Tick())
	}})
	storage.Spawn(ImguiItem{Title: "archetypes", Render: func() {
		if clicked := archetypes.Render(storage); clicked != nil {
			if archetypeFilter != nil && *archetypeFilter == *clicked {
				archetypeFilter = nil
			} else {
				archetypeFilter = clicked
			}
		}
	}})
	storage.Spawn(ImguiItem{Title: "entities", Render: func() {
		inspector.Render(storage, archetypeFilter)
	}})
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
