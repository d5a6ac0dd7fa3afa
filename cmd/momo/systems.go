package main

import (
	"log/slog"

	"github.com/plus3/momo/ecs"
	"github.com/plus3/momo/engine"
)

// tickReporter logs the running tick count once every `every` ticks.
type tickReporter struct {
	log   *slog.Logger
	every uint64
}

func (r *tickReporter) Name() string {
	return "tick-reporter"
}

func (r *tickReporter) Execute(f *ecs.UpdateFrame) {
	if r.every > 0 && f.Tick.Number%r.every == 0 {
		r.log.Info("ticks so far", "ticks", f.Tick.Number)
	}
}

// escapeSystem quits when Escape is held, whether or not a script handles it.
type escapeSystem struct {
	input engine.InputSource
	quit  func()
}

func (s *escapeSystem) Name() string {
	return "escape"
}

func (s *escapeSystem) Execute(*ecs.UpdateFrame) {
	if s.input.KeyPressed(engine.KeyEscape) {
		s.quit()
	}
}
