package ecs

import (
	"reflect"
	"time"
)

// PipelineStats provides statistics about system execution.
type PipelineStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Pipeline runs registered systems in order, once per tick.
type Pipeline struct {
	registry    *Registry
	systems     []System
	systemStats []*systemStatsInternal
}

// NewPipeline creates a pipeline whose systems act on reg and its catalog.
func NewPipeline(reg *Registry) *Pipeline {
	return &Pipeline{
		registry: reg,
		systems:  make([]System, 0),
	}
}

// Register appends a system. Systems run in registration order.
func (p *Pipeline) Register(system System) {
	p.systems = append(p.systems, system)
	p.systemStats = append(p.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if n, ok := system.(Named); ok {
		return n.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Tick executes every system once. Structural changes made by any system are
// held back until the last system has run, so every system in a tick sees the
// same set of entities. Tick has the TickFunc signature and can be handed to a
// Scheduler directly.
func (p *Pipeline) Tick(t Tick) {
	c := p.registry.Catalog()
	frame := newUpdateFrame(t, p.registry)

	c.begin()
	defer c.end()

	for i, system := range p.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := p.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Len returns the number of registered systems.
func (p *Pipeline) Len() int {
	return len(p.systems)
}

// Stats returns statistics about system execution.
func (p *Pipeline) Stats() *PipelineStats {
	stats := &PipelineStats{
		SystemCount: len(p.systems),
		Systems:     make([]SystemStats, len(p.systemStats)),
	}

	var totalExecs int64
	for i, internal := range p.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
