// Package luahost runs entity scripts written in Lua.
//
// Each script is a Lua chunk that defines a global Update function. The chunk
// runs once when loaded; afterwards Update is called every tick for every
// entity whose Script component names it, with the global entity set to the
// entity id.
//
// Scripts can call:
//
//	print(...)                 log at info level
//	KeyIsDown(KEYBOARD.SPACE)  keyboard state from the last poll
//	Quit()                     end the run loop at the next frame boundary
//	GetPosition(e)             x, y or nil
//	SetPosition(e, x, y)
//	GetVelocity(e)             x, y or nil
//	SetVelocity(e, x, y)
//	Destroy(e)                 applied at the end of the tick
//	LoadScript(name, path)     true on success
//	LoadTexture(name, path)    true on success
package luahost

import (
	"log/slog"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"

	"github.com/plus3/momo/ecs"
	"github.com/plus3/momo/engine"
)

var (
	// ErrNotStarted is returned by Load and RunUpdate before Startup or after Shutdown.
	ErrNotStarted = eris.New("lua host not started")

	// ErrNoUpdate is returned for a script that did not define an Update function.
	ErrNoUpdate = eris.New("script has no Update function")
)

// Host is an engine.ScriptHost backed by one Lua VM shared by every script.
type Host struct {
	L   *lua.LState
	log *slog.Logger

	input    engine.InputSource
	quit     func()
	assets   *engine.Assets
	textures func(name, path string) error

	updates map[string]*lua.LFunction

	// valid while RunUpdate is calling into the VM
	catalog *ecs.Catalog
}

// Option configures a Host.
type Option func(*Host)

// WithInput answers KeyIsDown from in.
func WithInput(in engine.InputSource) Option {
	return func(h *Host) {
		h.input = in
	}
}

// WithQuit is called by the Quit binding.
func WithQuit(quit func()) Option {
	return func(h *Host) {
		h.quit = quit
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// WithAssets resolves the paths given to LoadScript against assets.
func WithAssets(assets *engine.Assets) Option {
	return func(h *Host) {
		h.assets = assets
	}
}

// WithTextureLoader backs the LoadTexture binding.
func WithTextureLoader(load func(name, path string) error) Option {
	return func(h *Host) {
		h.textures = load
	}
}

func New(opts ...Option) *Host {
	h := &Host{
		log:     slog.New(slog.DiscardHandler),
		updates: make(map[string]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Startup creates the VM and installs the engine bindings.
func (h *Host) Startup() error {
	if h.L != nil {
		return nil
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.OsLibName, lua.OpenOs},
		{lua.DebugLibName, lua.OpenDebug},
	} {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			L.Close()
			return eris.Wrapf(err, "failed to open lua library %q", lib.name)
		}
	}

	h.L = L
	h.bind()
	h.log.Info("lua scripting initialized")
	return nil
}

// Shutdown closes the VM and forgets every loaded script.
func (h *Host) Shutdown() {
	if h.L == nil {
		return
	}
	h.L.Close()
	h.L = nil
	clear(h.updates)
	h.log.Info("lua scripting shutting down")
}

// Load runs the Lua file at path and keeps the Update function it defines
// under name. Loading a name again replaces the earlier script.
func (h *Host) Load(name, path string) error {
	if h.L == nil {
		return ErrNotStarted
	}
	fn, err := h.L.LoadFile(path)
	if err != nil {
		return eris.Wrapf(err, "failed to load script %q from %s", name, path)
	}
	if err := h.capture(name, fn); err != nil {
		return err
	}
	h.log.Info("loaded script", "script", name, "path", path)
	return nil
}

// LoadString is Load for source already in memory.
func (h *Host) LoadString(name, source string) error {
	if h.L == nil {
		return ErrNotStarted
	}
	fn, err := h.L.LoadString(source)
	if err != nil {
		return eris.Wrapf(err, "failed to compile script %q", name)
	}
	return h.capture(name, fn)
}

// capture runs a compiled chunk and takes the Update it leaves behind. The
// global is cleared so the next script cannot inherit it.
func (h *Host) capture(name string, chunk *lua.LFunction) error {
	h.L.SetGlobal("Update", lua.LNil)

	if err := h.L.CallByParam(lua.P{Fn: chunk, NRet: 0, Protect: true}); err != nil {
		return eris.Wrapf(err, "error running script %q top level", name)
	}

	update, _ := h.L.GetGlobal("Update").(*lua.LFunction)
	h.L.SetGlobal("Update", lua.LNil)
	if update == nil {
		h.log.Warn("script has no Update function", "script", name)
	}
	h.updates[name] = update
	return nil
}

// Loaded reports whether a script called name has been loaded.
func (h *Host) Loaded(name string) bool {
	_, ok := h.updates[name]
	return ok
}

// RunUpdate calls the Update function of e's script with the global entity
// set to e. Lua errors are returned, never raised.
func (h *Host) RunUpdate(e ecs.Entity, c *ecs.Catalog) error {
	if h.L == nil {
		return ErrNotStarted
	}

	script, err := ecs.Get[engine.Script](c, e)
	if err != nil {
		return eris.Wrapf(err, "entity %d has no script", uint64(e))
	}

	update, ok := h.updates[script.Name]
	if !ok {
		return &engine.ScriptNotLoadedError{Entity: e, Name: script.Name}
	}
	if update == nil {
		return eris.Wrapf(ErrNoUpdate, "script %q", script.Name)
	}

	h.catalog = c
	defer func() { h.catalog = nil }()

	h.L.SetGlobal("entity", lua.LNumber(e))
	if err := h.L.CallByParam(lua.P{Fn: update, NRet: 0, Protect: true}); err != nil {
		return eris.Wrapf(err, "lua error in Update for entity %d", uint64(e))
	}
	return nil
}

func (h *Host) bind() {
	L := h.L

	L.SetGlobal("print", L.NewFunction(h.luaPrint))
	L.SetGlobal("KeyIsDown", L.NewFunction(h.luaKeyIsDown))
	L.SetGlobal("Quit", L.NewFunction(h.luaQuit))
	L.SetGlobal("GetPosition", L.NewFunction(getVec[engine.Position](h, func(p *engine.Position) (float32, float32) { return p.X, p.Y })))
	L.SetGlobal("SetPosition", L.NewFunction(setVec(h, func(x, y float32) engine.Position { return engine.Position{X: x, Y: y} })))
	L.SetGlobal("GetVelocity", L.NewFunction(getVec[engine.Velocity](h, func(v *engine.Velocity) (float32, float32) { return v.X, v.Y })))
	L.SetGlobal("SetVelocity", L.NewFunction(setVec(h, func(x, y float32) engine.Velocity { return engine.Velocity{X: x, Y: y} })))
	L.SetGlobal("Destroy", L.NewFunction(h.luaDestroy))
	L.SetGlobal("LoadScript", L.NewFunction(h.luaLoadScript))
	L.SetGlobal("LoadTexture", L.NewFunction(h.luaLoadTexture))

	keyboard := L.NewTable()
	for _, k := range engine.Keys() {
		L.SetField(keyboard, k.String(), lua.LNumber(k))
	}
	L.SetGlobal("KEYBOARD", keyboard)
}

func (h *Host) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	h.log.Info("[lua] " + strings.Join(parts, " "))
	return 0
}

func (h *Host) luaKeyIsDown(L *lua.LState) int {
	key := engine.Key(L.CheckInt(1))
	L.Push(lua.LBool(h.input != nil && h.input.KeyPressed(key)))
	return 1
}

func (h *Host) luaQuit(L *lua.LState) int {
	if h.quit != nil {
		h.log.Info("quit requested by script")
		h.quit()
	}
	return 0
}

func (h *Host) luaDestroy(L *lua.LState) int {
	e := checkEntity(L, 1)
	if h.catalog != nil && h.catalog.Registry() != nil {
		h.catalog.Registry().Destroy(e)
	}
	return 0
}

func (h *Host) luaLoadScript(L *lua.LState) int {
	name := L.CheckString(1)
	path := L.CheckString(2)
	if h.assets != nil {
		path = h.assets.Resolve(path)
	}
	if err := h.Load(name, path); err != nil {
		h.log.Error("LoadScript failed", "script", name, "error", err)
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LTrue)
	return 1
}

func (h *Host) luaLoadTexture(L *lua.LState) int {
	name := L.CheckString(1)
	path := L.CheckString(2)
	if h.textures == nil {
		L.Push(lua.LFalse)
		return 1
	}
	if err := h.textures(name, path); err != nil {
		h.log.Error("LoadTexture failed", "texture", name, "error", err)
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LTrue)
	return 1
}

func checkEntity(L *lua.LState, n int) ecs.Entity {
	v := float64(L.CheckNumber(n))
	// NaN fails every comparison, so test for the valid range.
	if !(v >= 1 && v < float64(ecs.MaxEntity)) || v != math.Trunc(v) {
		L.ArgError(n, "entity id expected")
	}
	return ecs.Entity(v)
}

func getVec[T any](h *Host, fields func(*T) (float32, float32)) lua.LGFunction {
	return func(L *lua.LState) int {
		e := checkEntity(L, 1)
		if h.catalog == nil {
			L.Push(lua.LNil)
			return 1
		}
		v, err := ecs.Get[T](h.catalog, e)
		if err != nil {
			L.Push(lua.LNil)
			return 1
		}
		x, y := fields(v)
		L.Push(lua.LNumber(x))
		L.Push(lua.LNumber(y))
		return 2
	}
}

func setVec[T any](h *Host, build func(x, y float32) T) lua.LGFunction {
	return func(L *lua.LState) int {
		e := checkEntity(L, 1)
		x := float32(L.CheckNumber(2))
		y := float32(L.CheckNumber(3))
		if h.catalog != nil {
			ecs.Add(h.catalog, e, build(x, y))
		}
		return 0
	}
}
