package ecs_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/momo/ecs"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newScheduler(t *testing.T, cfg ecs.SchedulerConfig) (*ecs.Scheduler, *ecs.ManualClock) {
	t.Helper()
	clock := ecs.NewManualClock(epoch)
	s, err := ecs.NewScheduler(cfg, ecs.WithClock(clock))
	require.NoError(t, err)
	return s, clock
}

func TestSchedulerConfig(t *testing.T) {
	cfg := ecs.DefaultSchedulerConfig()
	assert.Equal(t, time.Second/60, cfg.TickInterval)
	assert.Equal(t, 5, cfg.MaxTicksPerFrame)
	assert.NoError(t, cfg.Validate())

	bad := []ecs.SchedulerConfig{
		{TickInterval: 0},
		{TickInterval: -time.Millisecond},
		{TickInterval: time.Millisecond, MaxTicksPerFrame: -1},
		{TickInterval: time.Millisecond, MinFrameDuration: -1},
	}
	for _, cfg := range bad {
		_, err := ecs.NewScheduler(cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestSchedulerAdvance(t *testing.T) {
	t.Run("50ms at 60Hz runs three ticks", func(t *testing.T) {
		s, _ := newScheduler(t, ecs.SchedulerConfig{TickInterval: time.Second / 60})
		require.NoError(t, s.Start())

		var ticks []ecs.Tick
		result, err := s.Advance(50*time.Millisecond, func(tick ecs.Tick) {
			ticks = append(ticks, tick)
		})
		require.NoError(t, err)

		assert.Equal(t, 3, result.Ticks)
		assert.Len(t, ticks, 3)
		assert.Equal(t, uint64(1), ticks[0].Number)
		assert.Equal(t, uint64(3), ticks[2].Number)
		assert.Less(t, s.Accumulator(), time.Second/60)
		assert.Equal(t, 50*time.Millisecond-3*(time.Second/60), s.Accumulator())
		assert.Zero(t, result.Dropped)
	})

	t.Run("remainder carries into the next frame", func(t *testing.T) {
		s, _ := newScheduler(t, ecs.SchedulerConfig{TickInterval: 10 * time.Millisecond})
		require.NoError(t, s.Start())

		count := 0
		tick := func(ecs.Tick) { count++ }

		r, _ := s.Advance(15*time.Millisecond, tick)
		assert.Equal(t, 1, r.Ticks)
		assert.InDelta(t, 0.5, r.Alpha, 1e-9)

		r, _ = s.Advance(5*time.Millisecond, tick)
		assert.Equal(t, 1, r.Ticks)
		assert.Zero(t, s.Accumulator())
		assert.Equal(t, 2, count)
	})

	t.Run("zero elapsed runs no ticks", func(t *testing.T) {
		s, _ := newScheduler(t, ecs.DefaultSchedulerConfig())
		require.NoError(t, s.Start())

		r, err := s.Advance(0, func(ecs.Tick) { t.Fatal("unexpected tick") })
		require.NoError(t, err)
		assert.Equal(t, 0, r.Ticks)
		assert.Equal(t, uint64(1), r.Frame)
	})

	t.Run("stall is capped and backlog discarded", func(t *testing.T) {
		s, _ := newScheduler(t, ecs.SchedulerConfig{TickInterval: time.Second / 60, MaxTicksPerFrame: 5})
		require.NoError(t, s.Start())

		count := 0
		r, err := s.Advance(10*time.Second, func(ecs.Tick) { count++ })
		require.NoError(t, err)

		assert.Equal(t, 5, count)
		assert.Equal(t, 5, r.Ticks)
		assert.Equal(t, 10*time.Second-5*(time.Second/60), r.Dropped)
		assert.Zero(t, s.Accumulator())
		assert.Zero(t, r.Alpha)

		stats := s.Stats()
		assert.Equal(t, uint64(1), stats.DroppedFrames)
		assert.Equal(t, r.Dropped, stats.DroppedTime)

		// the next frame starts from a clean accumulator
		r, _ = s.Advance(time.Second/60, func(ecs.Tick) { count++ })
		assert.Equal(t, 1, r.Ticks)
		assert.Zero(t, r.Dropped)
	})

	t.Run("unbounded budget catches up", func(t *testing.T) {
		s, _ := newScheduler(t, ecs.SchedulerConfig{TickInterval: 10 * time.Millisecond})
		require.NoError(t, s.Start())

		r, _ := s.Advance(time.Second, func(ecs.Tick) {})
		assert.Equal(t, 100, r.Ticks)
		assert.Zero(t, r.Dropped)
	})
}

func TestSchedulerFrameUsesClock(t *testing.T) {
	s, clock := newScheduler(t, ecs.SchedulerConfig{TickInterval: 10 * time.Millisecond})
	require.NoError(t, s.Start())

	clock.Advance(25 * time.Millisecond)
	r, err := s.Frame(func(ecs.Tick) {})
	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, r.Elapsed)
	assert.Equal(t, 2, r.Ticks)

	clock.Advance(5 * time.Millisecond)
	r, _ = s.Frame(func(ecs.Tick) {})
	assert.Equal(t, 1, r.Ticks)

	clock.Set(epoch)
	r, _ = s.Frame(func(ecs.Tick) {})
	assert.Zero(t, r.Elapsed, "time going backwards counts as zero")
}

func TestSchedulerState(t *testing.T) {
	s, _ := newScheduler(t, ecs.DefaultSchedulerConfig())
	assert.Equal(t, ecs.StateIdle, s.State())

	_, err := s.Frame(func(ecs.Tick) {})
	assert.True(t, errors.Is(err, ecs.ErrSchedulerState))

	require.NoError(t, s.Start())
	assert.Equal(t, ecs.StateRunning, s.State())
	assert.True(t, errors.Is(s.Start(), ecs.ErrSchedulerState))

	s.Stop()
	s.Stop()
	assert.Equal(t, ecs.StateStopped, s.State())
	assert.Equal(t, "stopped", s.State().String())

	_, err = s.Advance(time.Second, func(ecs.Tick) {})
	assert.True(t, errors.Is(err, ecs.ErrSchedulerState))
	assert.True(t, errors.Is(s.Start(), ecs.ErrSchedulerState), "stopped is terminal")
}

func TestSchedulerRun(t *testing.T) {
	t.Run("stops at a frame boundary", func(t *testing.T) {
		s, clock := newScheduler(t, ecs.SchedulerConfig{
			TickInterval:     10 * time.Millisecond,
			MinFrameDuration: 20 * time.Millisecond,
		})

		frames := 0
		ticks := 0
		err := s.RunWithPresenter(
			func(ecs.Tick) {
				ticks++
				clock.Advance(time.Millisecond)
			},
			func() bool { return frames == 5 },
			func(ecs.FrameResult) error {
				frames++
				return nil
			},
		)
		require.NoError(t, err)

		assert.Equal(t, ecs.StateStopped, s.State())
		assert.Equal(t, 5, frames)
		stats := s.Stats()
		assert.Equal(t, uint64(5), stats.Frames)
		assert.Equal(t, uint64(ticks), stats.Ticks)
		// first frame sees no elapsed time, each later one is paced to 20ms
		assert.Equal(t, 8, ticks)
		assert.Equal(t, time.Millisecond, stats.MaxTick)
		assert.Equal(t, time.Millisecond, stats.AvgTick)
	})

	t.Run("presenter error stops the loop", func(t *testing.T) {
		s, clock := newScheduler(t, ecs.SchedulerConfig{TickInterval: time.Millisecond})
		boom := errors.New("boom")

		frames := 0
		err := s.RunWithPresenter(
			func(ecs.Tick) {},
			func() bool { return false },
			func(ecs.FrameResult) error {
				frames++
				clock.Advance(time.Millisecond)
				if frames == 3 {
					return boom
				}
				return nil
			},
		)
		assert.True(t, errors.Is(err, boom))
		assert.Equal(t, 3, frames)
		assert.Equal(t, ecs.StateStopped, s.State())
	})

	t.Run("run twice fails", func(t *testing.T) {
		s, _ := newScheduler(t, ecs.DefaultSchedulerConfig())
		require.NoError(t, s.Run(func(ecs.Tick) {}, func() bool { return true }))

		err := s.Run(func(ecs.Tick) {}, func() bool { return true })
		assert.True(t, errors.Is(err, ecs.ErrSchedulerState))
	})

	t.Run("independent instances", func(t *testing.T) {
		a, _ := newScheduler(t, ecs.SchedulerConfig{TickInterval: time.Millisecond})
		b, _ := newScheduler(t, ecs.SchedulerConfig{TickInterval: time.Millisecond})
		require.NoError(t, a.Start())
		require.NoError(t, b.Start())

		_, _ = a.Advance(5*time.Millisecond, func(ecs.Tick) {})
		assert.Equal(t, uint64(5), a.Stats().Ticks)
		assert.Equal(t, uint64(0), b.Stats().Ticks)
	})
}
