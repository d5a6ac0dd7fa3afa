package engine

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/plus3/momo/ecs"
)

var (
	// ErrNotStarted is returned by RunLoop before Startup or after Shutdown.
	ErrNotStarted = eris.New("session not started")

	// ErrAlreadyStarted is returned by a second Startup.
	ErrAlreadyStarted = eris.New("session already started")

	// ErrNoTextureLoader is returned by LoadTexture when the renderer cannot load images.
	ErrNoTextureLoader = eris.New("renderer cannot load textures")
)

// StartupError reports the collaborator that failed to start.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s startup failed: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// ScriptNotLoadedError is returned when an entity refers to a script that was never loaded.
type ScriptNotLoadedError struct {
	Entity ecs.Entity
	Name   string
}

func (e *ScriptNotLoadedError) Error() string {
	return fmt.Sprintf("entity %d has script %q that is not loaded", uint64(e.Entity), e.Name)
}
