package engine

import (
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/plus3/momo/ecs"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Session owns the entity world and the collaborators of one running host. It
// starts the collaborators in order, drives the scheduler, and shuts the
// collaborators down in reverse.
type Session struct {
	cfg    Config
	log    *slog.Logger
	clock  ecs.Clock
	assets *Assets

	catalog   *ecs.Catalog
	registry  *ecs.Registry
	pipeline  *ecs.Pipeline
	scheduler *ecs.Scheduler

	renderer Renderer
	input    InputSource
	scripts  ScriptHost

	started []stage
	running bool
	quit    bool

	drawables []Drawable
}

type stage struct {
	name     string
	shutdown func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

func WithRenderer(r Renderer) SessionOption {
	return func(s *Session) {
		s.renderer = r
	}
}

func WithInput(in InputSource) SessionOption {
	return func(s *Session) {
		s.input = in
	}
}

func WithScripts(host ScriptHost) SessionOption {
	return func(s *Session) {
		s.scripts = host
	}
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces the scheduler's wall clock.
func WithClock(clock ecs.Clock) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

// NewSession creates a session. Renderer and input default to the null
// collaborators; without a script host no scripts run.
func NewSession(cfg Config, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid config")
	}

	s := &Session{
		cfg:    cfg,
		log:    discardLogger,
		assets: NewAssets(cfg.Assets.Root),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = &NullRenderer{}
	}
	if s.input == nil {
		s.input = &NullInput{}
	}

	s.catalog = ecs.NewCatalog(ecs.WithLogger(s.log))
	s.registry = ecs.NewRegistry(s.catalog)
	s.pipeline = ecs.NewPipeline(s.registry)

	schedOpts := []ecs.SchedulerOption{ecs.WithSchedulerLogger(s.log)}
	if s.clock != nil {
		schedOpts = append(schedOpts, ecs.WithClock(s.clock))
	}
	scheduler, err := ecs.NewScheduler(cfg.Scheduler(), schedOpts...)
	if err != nil {
		return nil, err
	}
	s.scheduler = scheduler

	return s, nil
}

func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) Catalog() *ecs.Catalog {
	return s.catalog
}

func (s *Session) Registry() *ecs.Registry {
	return s.registry
}

func (s *Session) Pipeline() *ecs.Pipeline {
	return s.pipeline
}

func (s *Session) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

func (s *Session) Renderer() Renderer {
	return s.renderer
}

func (s *Session) Input() InputSource {
	return s.input
}

func (s *Session) Scripts() ScriptHost {
	return s.scripts
}

func (s *Session) Assets() *Assets {
	return s.assets
}

func (s *Session) Logger() *slog.Logger {
	return s.log
}

// Started reports whether Startup succeeded and Shutdown has not run since.
func (s *Session) Started() bool {
	return s.running
}

// Startup brings up the renderer, the input source and the script host, in
// that order. If one fails, the ones already started are shut down again and
// a *StartupError naming the failed stage is returned.
func (s *Session) Startup() error {
	if s.running {
		return ErrAlreadyStarted
	}

	s.log.Info("engine starting up",
		"title", s.cfg.Window.Title,
		"width", s.cfg.Window.Width,
		"height", s.cfg.Window.Height)

	if err := s.start("renderer", s.renderer.Startup, s.renderer.Shutdown); err != nil {
		return err
	}
	if err := s.start("input", s.input.Startup, s.input.Shutdown); err != nil {
		return err
	}
	if s.scripts != nil {
		startup := func() error { return nil }
		shutdown := func() {}
		if st, ok := s.scripts.(Starter); ok {
			startup = st.Startup
		}
		if sp, ok := s.scripts.(Stopper); ok {
			shutdown = sp.Shutdown
		}
		if err := s.start("scripts", startup, shutdown); err != nil {
			return err
		}
	}

	s.running = true
	s.quit = false
	s.input.PollEvents()
	return nil
}

func (s *Session) start(name string, startup func() error, shutdown func()) error {
	if err := startup(); err != nil {
		s.log.Error("startup failed", "stage", name, "error", err)
		s.teardown()
		return &StartupError{Stage: name, Err: err}
	}
	s.log.Debug("started", "stage", name)
	s.started = append(s.started, stage{name: name, shutdown: shutdown})
	return nil
}

// Shutdown stops every started collaborator in reverse start order. Calling it
// again does nothing.
func (s *Session) Shutdown() {
	if !s.running && len(s.started) == 0 {
		return
	}
	s.teardown()
	s.running = false
	s.log.Info("engine shutting down")
}

func (s *Session) teardown() {
	for i := len(s.started) - 1; i >= 0; i-- {
		st := s.started[i]
		st.shutdown()
		s.log.Debug("stopped", "stage", st.name)
	}
	s.started = nil
}

// Quit asks RunLoop to return at the next frame boundary. The tick in
// progress finishes.
func (s *Session) Quit() {
	if !s.quit {
		s.log.Info("quit requested")
	}
	s.quit = true
}

// QuitRequested reports whether Quit has been called since Startup.
func (s *Session) QuitRequested() bool {
	return s.quit
}

// LoadTexture resolves path against the asset root and hands it to the
// renderer under name.
func (s *Session) LoadTexture(name, path string) error {
	loader, ok := s.renderer.(TextureLoader)
	if !ok {
		return eris.Wrapf(ErrNoTextureLoader, "texture %q", name)
	}
	resolved := s.assets.Resolve(path)
	if err := loader.LoadTexture(name, resolved); err != nil {
		return eris.Wrapf(err, "failed to load texture %q from %s", name, resolved)
	}
	s.log.Info("loaded texture", "name", name, "path", resolved)
	return nil
}

// RunLoop drives the scheduler until shouldStop returns true or Quit is
// called. Each frame runs the ticks the elapsed time pays for, then draws
// every sprite once and polls input for the next frame. A nil tick runs the
// session's pipeline.
//
// RunLoop requires a successful Startup; the session scheduler runs once.
func (s *Session) RunLoop(tick ecs.TickFunc, shouldStop func() bool) error {
	if !s.running {
		return ErrNotStarted
	}
	if tick == nil {
		tick = s.pipeline.Tick
	}

	stop := func() bool {
		return s.quit || (shouldStop != nil && shouldStop())
	}

	if driver, ok := s.renderer.(LoopDriver); ok {
		return s.drive(driver, tick, stop)
	}
	return s.scheduler.RunWithPresenter(tick, stop, s.present)
}

func (s *Session) drive(driver LoopDriver, tick ecs.TickFunc, stop func() bool) error {
	if err := s.scheduler.Start(); err != nil {
		return err
	}
	defer s.scheduler.Stop()

	return driver.Drive(func() (bool, error) {
		result, err := s.scheduler.Frame(tick)
		if err != nil {
			return true, err
		}
		if err := s.present(result); err != nil {
			return true, err
		}
		return stop(), nil
	})
}

func (s *Session) present(ecs.FrameResult) error {
	s.drawables = AppendDrawables(s.drawables, s.catalog)
	if err := s.renderer.Draw(s.drawables); err != nil {
		return eris.Wrap(err, "draw failed")
	}
	s.input.PollEvents()
	return nil
}
