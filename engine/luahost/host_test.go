package luahost_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/momo/ecs"
	"github.com/plus3/momo/engine"
	"github.com/plus3/momo/engine/luahost"
)

type world struct {
	catalog  *ecs.Catalog
	registry *ecs.Registry
	pipeline *ecs.Pipeline
	host     *luahost.Host
	input    *engine.NullInput
	logs     *bytes.Buffer
	quits    int
	system   *engine.ScriptSystem
}

func newWorld(t *testing.T, opts ...luahost.Option) *world {
	t.Helper()
	w := &world{
		catalog: ecs.NewCatalog(),
		input:   &engine.NullInput{},
		logs:    &bytes.Buffer{},
	}
	w.registry = ecs.NewRegistry(w.catalog)
	w.pipeline = ecs.NewPipeline(w.registry)

	log := slog.New(slog.NewTextHandler(w.logs, nil))
	opts = append([]luahost.Option{
		luahost.WithInput(w.input),
		luahost.WithQuit(func() { w.quits++ }),
		luahost.WithLogger(log),
	}, opts...)
	w.host = luahost.New(opts...)
	require.NoError(t, w.host.Startup())
	t.Cleanup(w.host.Shutdown)

	w.system = engine.NewScriptSystem(w.host, log)
	w.pipeline.Register(w.system)
	return w
}

func (w *world) spawn(script string) ecs.Entity {
	e := w.registry.Create()
	ecs.Add(w.catalog, e, engine.Script{Name: script})
	return e
}

func (w *world) tick() {
	w.pipeline.Tick(ecs.Tick{Number: 1, Interval: time.Second / 60})
}

func TestHostBindings(t *testing.T) {
	t.Run("update sees its entity and moves it", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("mover", `
function Update()
	local x, y = GetPosition(entity)
	SetPosition(entity, x + 1, y + 2)
end
`))
		e := w.spawn("mover")
		ecs.Add(w.catalog, e, engine.Position{X: 10})

		w.tick()
		w.tick()

		pos, err := ecs.Get[engine.Position](w.catalog, e)
		require.NoError(t, err)
		assert.Equal(t, engine.Position{X: 12, Y: 4}, *pos)
		assert.Zero(t, w.system.Failures())
	})

	t.Run("velocity", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("push", `
function Update()
	if GetVelocity(entity) == nil then
		SetVelocity(entity, 3, 4)
	end
end
`))
		e := w.spawn("push")
		w.tick()
		w.tick()

		v, err := ecs.Get[engine.Velocity](w.catalog, e)
		require.NoError(t, err)
		assert.Equal(t, engine.Velocity{X: 3, Y: 4}, *v)
	})

	t.Run("keyboard and quit", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("keys", `
function Update()
	if KeyIsDown(KEYBOARD.ESCAPE) then
		Quit()
	end
end
`))
		w.spawn("keys")

		w.tick()
		assert.Equal(t, 0, w.quits)

		w.input.Press(engine.KeyEscape)
		w.tick()
		assert.Equal(t, 1, w.quits)
	})

	t.Run("print goes to the logger", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("hello", `
print("loaded", 42)
function Update() end
`))
		assert.Contains(t, w.logs.String(), "[lua] loaded 42")
	})

	t.Run("destroy is applied after the tick", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("doomed", `
function Update()
	Destroy(entity)
	local x = GetPosition(entity)
	if x == nil then error("destroyed too early") end
end
`))
		e := w.spawn("doomed")
		ecs.Add(w.catalog, e, engine.Position{})

		w.tick()
		assert.Zero(t, w.system.Failures())
		assert.False(t, ecs.Has[engine.Position](w.catalog, e))
		assert.False(t, ecs.Has[engine.Script](w.catalog, e))
	})

	t.Run("each script keeps its own update", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("left", `function Update() SetPosition(entity, -1, 0) end`))
		require.NoError(t, w.host.LoadString("right", `function Update() SetPosition(entity, 1, 0) end`))

		l := w.spawn("left")
		r := w.spawn("right")
		w.tick()

		lp, _ := ecs.Get[engine.Position](w.catalog, l)
		rp, _ := ecs.Get[engine.Position](w.catalog, r)
		assert.Equal(t, float32(-1), lp.X)
		assert.Equal(t, float32(1), rp.X)
	})
}

func TestHostErrors(t *testing.T) {
	t.Run("runtime error does not stop other entities", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("broken", `function Update() error("kaput") end`))
		require.NoError(t, w.host.LoadString("fine", `function Update() SetPosition(entity, 5, 5) end`))

		w.spawn("broken")
		ok := w.spawn("fine")
		w.tick()

		assert.Equal(t, uint64(1), w.system.Failures())
		assert.Contains(t, w.logs.String(), "kaput")
		assert.True(t, ecs.Has[engine.Position](w.catalog, ok))
	})

	t.Run("script without update", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("empty", `x = 1`))
		assert.True(t, w.host.Loaded("empty"))

		e := w.spawn("empty")
		err := w.host.RunUpdate(e, w.catalog)
		assert.True(t, errors.Is(err, luahost.ErrNoUpdate))
	})

	t.Run("unknown script", func(t *testing.T) {
		w := newWorld(t)
		e := w.spawn("nope")
		err := w.host.RunUpdate(e, w.catalog)
		var notLoaded *engine.ScriptNotLoadedError
		assert.True(t, errors.As(err, &notLoaded))
	})

	t.Run("syntax error", func(t *testing.T) {
		w := newWorld(t)
		assert.Error(t, w.host.LoadString("bad", `function Update(`))
		assert.False(t, w.host.Loaded("bad"))
	})

	t.Run("bad argument", func(t *testing.T) {
		w := newWorld(t)
		require.NoError(t, w.host.LoadString("typo", `function Update() SetPosition(entity, "left", 0) end`))
		e := w.spawn("typo")
		assert.Error(t, w.host.RunUpdate(e, w.catalog))
	})

	t.Run("entity id out of range", func(t *testing.T) {
		for name, id := range map[string]string{
			"nan":        "0/0",
			"zero":       "0",
			"huge":       "2^70",
			"fractional": "1.5",
		} {
			t.Run(name, func(t *testing.T) {
				w := newWorld(t)
				require.NoError(t, w.host.LoadString(name, `function Update() SetPosition(`+id+`, 1, 1) end`))
				e := w.spawn(name)
				err := w.host.RunUpdate(e, w.catalog)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "entity id expected")
				assert.False(t, ecs.Has[engine.Position](w.catalog, e))
			})
		}
	})

	t.Run("not started", func(t *testing.T) {
		h := luahost.New()
		assert.True(t, errors.Is(h.LoadString("x", ""), luahost.ErrNotStarted))
		assert.True(t, errors.Is(h.RunUpdate(1, ecs.NewCatalog()), luahost.ErrNotStarted))

		require.NoError(t, h.Startup())
		h.Shutdown()
		h.Shutdown()
		assert.True(t, errors.Is(h.Load("x", "x.lua"), luahost.ErrNotStarted))
	})
}

func TestHostFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lua"), []byte(`
LoadScript("child", "child.lua")
LoadTexture("momo", "momo.png")
function Update() end
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "child.lua"), []byte(`function Update() end`), 0o644))

	var textures []string
	w := newWorld(t,
		luahost.WithAssets(engine.NewAssets(dir)),
		luahost.WithTextureLoader(func(name, path string) error {
			textures = append(textures, name+"="+path)
			return nil
		}),
	)

	require.NoError(t, w.host.Load("main", filepath.Join(dir, "main.lua")))
	assert.True(t, w.host.Loaded("child"))
	assert.Equal(t, []string{"momo=momo.png"}, textures)

	assert.Error(t, w.host.Load("missing", filepath.Join(dir, "missing.lua")))
}

func TestHostInSession(t *testing.T) {
	clock := ecs.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	input := &engine.NullInput{}

	var session *engine.Session
	host := luahost.New(
		luahost.WithInput(input),
		luahost.WithQuit(func() { session.Quit() }),
	)

	session, err := engine.NewSession(engine.DefaultConfig(),
		engine.WithInput(input),
		engine.WithScripts(host),
		engine.WithClock(clock),
	)
	require.NoError(t, err)
	require.NoError(t, session.Startup())
	defer session.Shutdown()

	require.NoError(t, host.LoadString("quitter", `
count = 0
function Update()
	count = count + 1
	if count == 3 then Quit() end
end
`))
	session.Pipeline().Register(engine.NewScriptSystem(host, nil))
	e := session.Registry().Create()
	ecs.Add(session.Catalog(), e, engine.Script{Name: "quitter"})

	frames := 0
	require.NoError(t, session.RunLoop(nil, func() bool {
		frames++
		clock.Advance(time.Second / 60)
		return frames > 100
	}))
	assert.True(t, session.QuitRequested())
	// the frame that quits skips shouldStop
	assert.Equal(t, 3, frames)
}
