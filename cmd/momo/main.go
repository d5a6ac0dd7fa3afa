// Command momo runs the demo scene: one sprite driven by a Lua script.
//
//	momo -config momo.toml -backend ebiten
//
// Backends are ebiten (a window), term (the terminal) and headless (no
// output, stops after -frames frames).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rotisserie/eris"

	"github.com/plus3/momo/ecs"
	"github.com/plus3/momo/ecs/debugui"
	debugui_ebiten "github.com/plus3/momo/ecs/debugui/ebiten"
	"github.com/plus3/momo/engine"
	"github.com/plus3/momo/engine/ebitenhost"
	"github.com/plus3/momo/engine/luahost"
	"github.com/plus3/momo/engine/termhost"
)

// headlessFrames bounds a headless run when -frames is not given.
const headlessFrames = 600

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "momo: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	config   string
	backend  string
	assets   string
	logLevel string
	frames   int
	debug    bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("momo", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.config, "config", "", "TOML config file. Defaults are used when empty.")
	fs.StringVar(&opts.backend, "backend", "ebiten", "Output backend: ebiten, term or headless.")
	fs.StringVar(&opts.assets, "assets", "", "Asset root, overriding the config.")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level, overriding the config.")
	fs.IntVar(&opts.frames, "frames", 0, "Stop after this many frames. 0 runs until quit.")
	fs.BoolVar(&opts.debug, "debug", false, "Show the ImGui debug panels (ebiten backend only).")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.backend {
	case "ebiten", "term", "headless":
	default:
		return options{}, eris.Errorf("unknown backend %q", opts.backend)
	}
	if opts.frames < 0 {
		return options{}, eris.Errorf("-frames must not be negative, got %d", opts.frames)
	}
	if opts.backend == "headless" && opts.frames == 0 {
		opts.frames = headlessFrames
	}
	return opts, nil
}

func loadConfig(opts options) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = engine.LoadConfig(opts.config); err != nil {
			return engine.Config{}, err
		}
	}
	if opts.assets != "" {
		cfg.Assets.Root = opts.assets
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, cfg.Validate()
}

// backend bundles the collaborators a -backend value selects.
type backend struct {
	renderer engine.Renderer
	input    engine.InputSource
	// stop ends the loop for backend-specific reasons such as Ctrl-C in a terminal.
	stop func() bool
	// attach runs once the session exists.
	attach func(*engine.Session)
}

func newBackend(opts options, cfg engine.Config, log *slog.Logger) backend {
	switch opts.backend {
	case "term":
		b := termhost.New(termhost.WithLogger(log))
		return backend{renderer: b, input: b, stop: b.Interrupted}

	case "ebiten":
		b := ebitenhost.New(cfg.Window, ebitenhost.WithLogger(log))
		be := backend{renderer: b, input: b}
		if opts.debug {
			be.attach = func(s *engine.Session) {
				d := debugui.NewDebugger(s.Catalog(), s.Scheduler(), s.Pipeline())
				b.SetOverlay(debugui_ebiten.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, d))
				debugui.SpawnDebugUI(s.Registry())
			}
		}
		return be

	default:
		return backend{renderer: &engine.NullRenderer{}, input: &engine.NullInput{}}
	}
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	be := newBackend(opts, cfg, log)

	var session *engine.Session
	host := luahost.New(
		luahost.WithInput(be.input),
		luahost.WithQuit(func() { session.Quit() }),
		luahost.WithLogger(log),
		luahost.WithAssets(engine.NewAssets(cfg.Assets.Root)),
		luahost.WithTextureLoader(func(name, path string) error {
			return session.LoadTexture(name, path)
		}),
	)

	session, err = engine.NewSession(cfg,
		engine.WithRenderer(be.renderer),
		engine.WithInput(be.input),
		engine.WithScripts(host),
		engine.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if be.attach != nil {
		be.attach(session)
	}

	if err := session.Startup(); err != nil {
		return err
	}
	defer session.Shutdown()

	momo, err := setupScene(session, host, log)
	if err != nil {
		return err
	}

	frames := 0
	shouldStop := func() bool {
		frames++
		if opts.frames > 0 && frames >= opts.frames {
			return true
		}
		return be.stop != nil && be.stop()
	}
	if err := session.RunLoop(nil, shouldStop); err != nil {
		return err
	}

	teardownScene(session, momo, log)
	return nil
}

// setupScene loads the configured assets, registers the systems and creates
// the scripted sprite.
func setupScene(s *engine.Session, host *luahost.Host, log *slog.Logger) (ecs.Entity, error) {
	cfg := s.Config()

	for _, t := range cfg.Textures {
		// A missing image is drawn as a placeholder, so keep going.
		if err := s.LoadTexture(t.Name, t.Path); err != nil {
			log.Warn("texture not loaded", "texture", t.Name, "error", err)
		}
	}
	for _, sc := range cfg.Scripts {
		if err := host.Load(sc.Name, s.Assets().Resolve(sc.Path)); err != nil {
			return ecs.Nil, err
		}
	}

	p := s.Pipeline()
	p.Register(engine.NewScriptSystem(host, log))
	p.Register(engine.MovementSystem{})
	p.Register(&tickReporter{log: log, every: uint64(cfg.Loop.TickRate)})
	p.Register(&escapeSystem{input: s.Input(), quit: s.Quit})

	reg := s.Registry()
	c := s.Catalog()
	momo := reg.Create()
	ecs.Add(c, momo, engine.NewSprite("momo"))
	ecs.Add(c, momo, engine.Position{
		X: float32(cfg.Window.Width) / 2,
		Y: float32(cfg.Window.Height) / 2,
	})
	ecs.Add(c, momo, engine.Velocity{})
	if len(cfg.Scripts) > 0 {
		ecs.Add(c, momo, engine.Script{Name: cfg.Scripts[0].Name})
	}
	ecs.Add(c, momo, engine.NewHealth())

	log.Info("scene ready", "entity", uint64(momo), "scripts", len(cfg.Scripts))
	return momo, nil
}

// teardownScene removes the sprite and then the entity, and reports how the
// catalog answers for each.
func teardownScene(s *engine.Session, momo ecs.Entity, log *slog.Logger) {
	c := s.Catalog()

	ecs.Remove[engine.Sprite](c, momo)
	if _, err := ecs.Get[engine.Sprite](c, momo); errors.Is(err, ecs.ErrComponentNotFound) {
		log.Info("sprite removed", "entity", uint64(momo))
	} else {
		log.Warn("sprite still present after remove", "entity", uint64(momo))
	}

	s.Registry().Destroy(momo)
	if _, err := ecs.Get[engine.Position](c, momo); errors.Is(err, ecs.ErrInvalidEntity) {
		log.Info("entity destroyed", "entity", uint64(momo))
	} else {
		log.Warn("entity still answers after destroy", "entity", uint64(momo), "error", err)
	}
}
