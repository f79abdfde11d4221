package main

import (
	"fmt"
	"math"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shmup/ecs/debugui"
	"github.com/plus3/shmup/shooter"
)

// spawnSimulationPanel adds a window with the live state of the world.
func spawnSimulationPanel(world *shooter.World) {
	world.Storage().Spawn(debugui.ImguiItem{
		Title: "simulation",
		Render: func() {
			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)

			if !imgui.BeginV("Simulation", nil, 0) {
				imgui.End()
				return
			}

			imgui.Text(fmt.Sprintf("Score: %d", world.Score()))
			imgui.Text(fmt.Sprintf("Tick: %d", world.Tick()))
			imgui.Text(fmt.Sprintf("Seed: %d", world.Seed()))
			imgui.Separator()

			counts := world.Counts()
			lifecycle := world.Lifecycle()
			imgui.Text(fmt.Sprintf("Bullets: %d (fired %d)", counts.Bullets, lifecycle.Spawned[shooter.KindBullet]))
			imgui.Text(fmt.Sprintf("Enemies: %d", counts.Enemies))

			if world.Config().Simulation.Enemies {
				timer := world.SpawnTimer()
				imgui.Text(fmt.Sprintf("Next enemy in: %s", timer.Remaining().Round(time.Millisecond)))
			}
			imgui.Separator()

			if pose, err := world.Player(); err == nil {
				imgui.Text(fmt.Sprintf("Player: (%.1f, %.1f)", pose.Position.X(), pose.Position.Y()))
				imgui.Text(fmt.Sprintf("Heading: %.1f°", pose.Angle()*180/math.Pi))
			} else {
				imgui.Text(err.Error())
			}

			imgui.End()
		},
	})
}
