package engine

import (
	"github.com/rotisserie/eris"

	"github.com/plus3/momo/ecs"
)

// ScriptFunc is the update logic of a script written in Go.
type ScriptFunc func(e ecs.Entity, c *ecs.Catalog) error

// FuncScripts is a ScriptHost for scripts written as Go functions.
type FuncScripts struct {
	scripts map[string]ScriptFunc
}

func NewFuncScripts() *FuncScripts {
	return &FuncScripts{scripts: make(map[string]ScriptFunc)}
}

// Register makes fn available under name, replacing any earlier registration.
func (f *FuncScripts) Register(name string, fn ScriptFunc) {
	f.scripts[name] = fn
}

// Loaded reports whether a script called name is registered.
func (f *FuncScripts) Loaded(name string) bool {
	_, ok := f.scripts[name]
	return ok
}

func (f *FuncScripts) RunUpdate(e ecs.Entity, c *ecs.Catalog) error {
	script, err := ecs.Get[Script](c, e)
	if err != nil {
		return eris.Wrapf(err, "entity %d has no script", uint64(e))
	}

	fn, ok := f.scripts[script.Name]
	if !ok {
		return &ScriptNotLoadedError{Entity: e, Name: script.Name}
	}
	return fn(e, c)
}
