package engine

import (
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/plus3/momo/ecs"
)

// GravitySystem accelerates every entity holding a Velocity and a Gravity.
type GravitySystem struct{}

func (GravitySystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	ecs.ForEach2(frame.Catalog, func(_ ecs.Entity, v *Velocity, g *Gravity) {
		v.Y -= g.MetersPerSecond * dt
	})
}

// MovementSystem integrates Velocity into Position.
type MovementSystem struct{}

func (MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	ecs.ForEach2(frame.Catalog, func(_ ecs.Entity, p *Position, v *Velocity) {
		*p = Position(Vec2(*p).Add(Vec2(*v).Scale(dt)))
	})
}

// ScriptSystem runs the script attached to every entity holding a Script.
// A script that fails or panics is logged and skipped; the other entities
// still run.
type ScriptSystem struct {
	host     ScriptHost
	log      *slog.Logger
	failures uint64
}

// NewScriptSystem creates a system that runs scripts on host.
func NewScriptSystem(host ScriptHost, log *slog.Logger) *ScriptSystem {
	if log == nil {
		log = discardLogger
	}
	return &ScriptSystem{host: host, log: log}
}

func (s *ScriptSystem) Name() string {
	return "ScriptSystem"
}

func (s *ScriptSystem) Execute(frame *ecs.UpdateFrame) {
	if s.host == nil {
		return
	}
	ecs.ForEach(frame.Catalog, func(e ecs.Entity, script *Script) {
		if err := s.run(e, frame.Catalog); err != nil {
			s.failures++
			s.log.Error("script update failed",
				"entity", uint64(e),
				"script", script.Name,
				"error", err)
		}
	})
}

func (s *ScriptSystem) run(e ecs.Entity, c *ecs.Catalog) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("script panicked: %v", r)
		}
	}()
	return s.host.RunUpdate(e, c)
}

// Failures returns how many script updates have failed.
func (s *ScriptSystem) Failures() uint64 {
	return s.failures
}
