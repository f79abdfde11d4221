package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/shmup/shooter"
)

type Report struct {
	// Configuration
	RunID     uuid.UUID
	Worlds    int
	Ticks     int
	Duration  time.Duration
	RealDelta time.Duration
	Enemies   bool

	// Results
	Results       []WorldResult
	TotalTime     time.Duration
	TotalTicks    uint64
	TickTime      Stats
	Lifecycle     shooter.Lifecycle
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// Finalize merges the per-world results into the run totals.
func (r *Report) Finalize() {
	r.TotalTicks = 0
	r.Lifecycle = shooter.Lifecycle{}
	r.TickTime = Stats{}

	for i := range r.Results {
		result := &r.Results[i]
		result.TickTime.Finalize()

		r.TotalTicks += result.Ticks
		r.TickTime.Samples = append(r.TickTime.Samples, result.TickTime.Samples...)
		for kind := range result.Lifecycle.Spawned {
			r.Lifecycle.Spawned[kind] += result.Lifecycle.Spawned[kind]
			r.Lifecycle.Despawned[kind] += result.Lifecycle.Despawned[kind]
		}
	}
	r.TickTime.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `# Arena Soak Report

Run {{.RunID}}

## Configuration
- **Worlds:** {{.Worlds}}
- **Ticks per world:** {{if .Ticks}}{{.Ticks}}{{else}}unbounded{{end}}
- **Time limit:** {{if .Duration}}{{.Duration}}{{else}}none{{end}}
- **Real delta per tick:** {{.RealDelta}}
- **Enemies:** {{.Enemies}}

## Performance
- **Total ticks:** {{.TotalTicks}}
- **Wall time:** {{.TotalTime}}
- **Tick time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
  - **P99:** {{.TickTime.P99}}

## Entities
| Kind | Spawned | Despawned | Alive |
|---|---|---|---|
{{- range $kind := kinds}}
| {{$kind}} | {{index $.Lifecycle.Spawned $kind}} | {{index $.Lifecycle.Despawned $kind}} | {{$.Lifecycle.Alive $kind}} |
{{- end}}

## Worlds
| Seed | Ticks | Avg tick | Max tick | Bullets (max) | Enemies (max) |
|---|---|---|---|---|---|
{{- range .Results}}
| {{.Seed}} | {{.Ticks}} | {{.TickTime.Avg}} | {{.TickTime.Max}} | {{.Final.Bullets}} ({{.MaxBullets}}) | {{.Final.Enemies}} ({{.MaxEnemies}}) |
{{- end}}

## Memory (bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- Total Alloc: {{.MemStatsStart.TotalAlloc}} -> {{.MemStatsEnd.TotalAlloc}} (delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}})
- Sys:         {{.MemStatsStart.Sys}} -> {{.MemStatsEnd.Sys}} (delta {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}})
- GC cycles:   {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}, total pause {{ns .MemStatsEnd.PauseTotalNs}}
`

	fm := template.FuncMap{
		"kinds": func() []shooter.Kind {
			return []shooter.Kind{shooter.KindPlayer, shooter.KindBullet, shooter.KindEnemy}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
