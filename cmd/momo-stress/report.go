package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/rotisserie/eris"

	"github.com/plus3/momo/ecs"
)

// slowestSystems is how many systems the report lists by total time.
const slowestSystems = 5

type Report struct {
	// Configuration
	Duration     time.Duration
	Entities     int
	Components   int
	Systems      int
	TickInterval time.Duration
	Churn        int

	// Results
	TotalTime      time.Duration
	UpdateTime     Stats
	Scheduler      ecs.SchedulerStats
	Pipeline       *ecs.PipelineStats
	Catalog        ecs.CatalogStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarises frame durations.
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
	s.P99 = sorted[(len(sorted)*99)/100]
}

// Slowest returns the systems with the largest total duration, slowest first.
func (r *Report) Slowest() []ecs.SystemStats {
	if r.Pipeline == nil {
		return nil
	}
	systems := slices.Clone(r.Pipeline.Systems)
	slices.SortStableFunc(systems, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.TotalDuration, a.TotalDuration)
	})
	if len(systems) > slowestSystems {
		systems = systems[:slowestSystems]
	}
	return systems
}

const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Generated Components:** {{.Components}}
- **Generated Systems:** {{.Systems}}
- **Tick Interval:** {{.TickInterval}}
- **Churn Per Frame:** {{.Churn}}

## Performance Results
- **Frames:** {{.Scheduler.Frames}}
- **Ticks:** {{.Scheduler.Ticks}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}
- **Tick Time:** avg {{.Scheduler.AvgTick}}, min {{.Scheduler.MinTick}}, max {{.Scheduler.MaxTick}}
- **Dropped Backlog:** {{.Scheduler.DroppedFrames}} frames, {{.Scheduler.DroppedTime}}

## Slowest Systems
{{range .Slowest}}- {{.Name}}: total {{.TotalDuration}}, avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Catalog
- Stores: {{.Catalog.StoreCount}}
- Live Components: {{.Catalog.TotalComponents}}
- Issued Entities: {{.Catalog.IssuedEntities}} ({{.Catalog.Destroyed}} destroyed)

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{mb (bsub .MemStatsEnd.Sys .MemStatsStart.Sys)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns int64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return eris.Wrap(err, "failed to parse report template")
	}
	if err := tmpl.Execute(w, r); err != nil {
		return eris.Wrap(err, "failed to render report")
	}
	return nil
}
