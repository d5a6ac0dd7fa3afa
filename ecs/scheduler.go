package ecs

import (
	"log/slog"
	"time"

	"github.com/rotisserie/eris"
)

// SchedulerState is the lifecycle state of a Scheduler: Idle, then Running, then Stopped.
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateRunning
	StateStopped
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SchedulerConfig holds the fixed-timestep settings.
type SchedulerConfig struct {
	// TickInterval is the simulated duration of one tick.
	TickInterval time.Duration
	// MaxTicksPerFrame caps the ticks run in one frame. Backlog left over once
	// the cap is reached is discarded. Zero means no cap.
	MaxTicksPerFrame int
	// MinFrameDuration paces Run: a frame that finishes early sleeps for the rest.
	// Zero disables pacing.
	MinFrameDuration time.Duration
}

// DefaultSchedulerConfig ticks at 60Hz with at most 5 ticks per frame.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TickInterval:     time.Second / 60,
		MaxTicksPerFrame: 5,
	}
}

// Validate checks the configuration for values the scheduler cannot run with.
func (c SchedulerConfig) Validate() error {
	if c.TickInterval <= 0 {
		return eris.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.MaxTicksPerFrame < 0 {
		return eris.Errorf("max ticks per frame must not be negative, got %d", c.MaxTicksPerFrame)
	}
	if c.MinFrameDuration < 0 {
		return eris.Errorf("min frame duration must not be negative, got %s", c.MinFrameDuration)
	}
	return nil
}

// Tick describes one fixed simulation step.
type Tick struct {
	// Number counts ticks since the scheduler started, starting at 1.
	Number   uint64
	Interval time.Duration
}

// Seconds returns the tick interval in seconds.
func (t Tick) Seconds() float64 {
	return t.Interval.Seconds()
}

// TickFunc is the simulation logic run once per tick.
type TickFunc func(Tick)

// PresentFunc runs once per frame after the frame's ticks.
type PresentFunc func(FrameResult) error

// FrameResult reports what one frame did.
type FrameResult struct {
	Frame   uint64
	Elapsed time.Duration
	Ticks   int
	// Dropped is the backlog discarded because the tick budget ran out.
	Dropped time.Duration
	// Alpha is the leftover accumulator as a fraction of a tick, for interpolation.
	Alpha float64
}

// SchedulerStats summarises scheduler execution.
type SchedulerStats struct {
	State         SchedulerState
	Frames        uint64
	Ticks         uint64
	DroppedFrames uint64
	DroppedTime   time.Duration
	MinTick       time.Duration
	MaxTick       time.Duration
	AvgTick       time.Duration
	LastTick      time.Duration
	LastFrame     FrameResult
}

type schedulerStatsInternal struct {
	droppedFrames uint64
	droppedTime   time.Duration
	minTick       time.Duration
	maxTick       time.Duration
	totalTick     time.Duration
	lastTick      time.Duration
	lastFrame     FrameResult
}

// Scheduler runs the fixed-timestep loop. It turns variable frame time into a
// bounded number of fixed ticks per frame and hands control back to the host
// once per frame for presentation.
//
// All timing state lives on the instance; schedulers are independent of each other.
type Scheduler struct {
	cfg   SchedulerConfig
	clock Clock
	log   *slog.Logger

	state       SchedulerState
	accumulator time.Duration
	previous    time.Time
	frames      uint64
	ticks       uint64

	stats schedulerStatsInternal
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces the wall clock, typically with a ManualClock in tests.
func WithClock(clock Clock) SchedulerOption {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithSchedulerLogger sets the logger used for backlog warnings.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScheduler creates an idle scheduler.
func NewScheduler(cfg SchedulerConfig, opts ...SchedulerOption) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid scheduler config")
	}

	s := &Scheduler{
		cfg:   cfg,
		clock: SystemClock{},
		log:   discardLogger,
		state: StateIdle,
		stats: schedulerStatsInternal{
			minTick: time.Duration(1<<63 - 1),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the scheduler configuration.
func (s *Scheduler) Config() SchedulerConfig {
	return s.cfg
}

// State returns the current lifecycle state.
func (s *Scheduler) State() SchedulerState {
	return s.state
}

// Accumulator returns the simulated time not yet consumed by ticks.
func (s *Scheduler) Accumulator() time.Duration {
	return s.accumulator
}

// Run drives frames until shouldStop returns true. See RunWithPresenter.
func (s *Scheduler) Run(tick TickFunc, shouldStop func() bool) error {
	return s.RunWithPresenter(tick, shouldStop, nil)
}

// RunWithPresenter moves the scheduler from Idle to Running and loops frames:
// each frame runs its ticks, then present (if set), then checks shouldStop. A
// tick that has started always finishes. The scheduler ends Stopped whether
// the loop ends through shouldStop or a present error, which is returned.
func (s *Scheduler) RunWithPresenter(tick TickFunc, shouldStop func() bool, present PresentFunc) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Stop()

	for {
		frameStart := s.clock.Now()

		result, err := s.Frame(tick)
		if err != nil {
			return err
		}

		if present != nil {
			if err := present(result); err != nil {
				return eris.Wrapf(err, "present frame %d", result.Frame)
			}
		}

		if shouldStop != nil && shouldStop() {
			return nil
		}

		s.pace(frameStart)
	}
}

// Start moves an idle scheduler to Running and starts measuring frame time.
func (s *Scheduler) Start() error {
	if s.state != StateIdle {
		return eris.Wrapf(ErrSchedulerState, "cannot start a %s scheduler", s.state)
	}
	s.state = StateRunning
	s.previous = s.clock.Now()
	return nil
}

// Stop moves the scheduler to the terminal Stopped state.
func (s *Scheduler) Stop() {
	if s.state == StateStopped {
		return
	}
	s.state = StateStopped
	s.log.Debug("scheduler stopped", "frames", s.frames, "ticks", s.ticks)
}

// Frame measures the time since the previous frame and runs the ticks it pays for.
// Hosts whose windowing library owns the main loop call this once per frame
// between Start and Stop.
func (s *Scheduler) Frame(tick TickFunc) (FrameResult, error) {
	if s.state != StateRunning {
		return FrameResult{}, eris.Wrapf(ErrSchedulerState, "cannot run a frame on a %s scheduler", s.state)
	}

	now := s.clock.Now()
	dt := now.Sub(s.previous)
	s.previous = now
	if dt < 0 {
		dt = 0
	}
	return s.advance(dt, tick), nil
}

// Advance runs one frame as if dt had elapsed since the previous one.
func (s *Scheduler) Advance(dt time.Duration, tick TickFunc) (FrameResult, error) {
	if s.state != StateRunning {
		return FrameResult{}, eris.Wrapf(ErrSchedulerState, "cannot advance a %s scheduler", s.state)
	}
	if dt < 0 {
		dt = 0
	}
	return s.advance(dt, tick), nil
}

func (s *Scheduler) advance(dt time.Duration, tick TickFunc) FrameResult {
	s.frames++
	result := FrameResult{
		Frame:   s.frames,
		Elapsed: dt,
	}

	interval := s.cfg.TickInterval
	budget := s.cfg.MaxTicksPerFrame

	s.accumulator += dt
	for s.accumulator >= interval && (budget == 0 || result.Ticks < budget) {
		s.ticks++
		start := s.clock.Now()
		tick(Tick{Number: s.ticks, Interval: interval})
		s.recordTick(s.clock.Now().Sub(start))

		s.accumulator -= interval
		result.Ticks++
	}

	// Catching up on this backlog would make the next frame longer still.
	if s.accumulator >= interval {
		result.Dropped = s.accumulator
		s.accumulator = 0
		s.stats.droppedFrames++
		s.stats.droppedTime += result.Dropped
		s.log.Warn("tick budget exhausted, discarding backlog",
			"frame", result.Frame,
			"ticks", result.Ticks,
			"dropped", result.Dropped)
	}

	result.Alpha = float64(s.accumulator) / float64(interval)
	s.stats.lastFrame = result
	return result
}

func (s *Scheduler) recordTick(d time.Duration) {
	st := &s.stats
	st.lastTick = d
	st.totalTick += d
	if d < st.minTick {
		st.minTick = d
	}
	if d > st.maxTick {
		st.maxTick = d
	}
}

func (s *Scheduler) pace(frameStart time.Time) {
	if s.cfg.MinFrameDuration <= 0 {
		return
	}
	if elapsed := s.clock.Now().Sub(frameStart); elapsed < s.cfg.MinFrameDuration {
		s.clock.Sleep(s.cfg.MinFrameDuration - elapsed)
	}
}

// Stats returns statistics about scheduler execution.
func (s *Scheduler) Stats() SchedulerStats {
	stats := SchedulerStats{
		State:         s.state,
		Frames:        s.frames,
		Ticks:         s.ticks,
		DroppedFrames: s.stats.droppedFrames,
		DroppedTime:   s.stats.droppedTime,
		MaxTick:       s.stats.maxTick,
		LastTick:      s.stats.lastTick,
		LastFrame:     s.stats.lastFrame,
	}
	if s.ticks > 0 {
		stats.MinTick = s.stats.minTick
		stats.AvgTick = s.stats.totalTick / time.Duration(s.ticks)
	}
	return stats
}
