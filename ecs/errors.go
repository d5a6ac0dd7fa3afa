package ecs

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	// ErrComponentNotFound matches every failed component lookup.
	ErrComponentNotFound = eris.New("component not found")

	// ErrInvalidEntity matches lookups against ids that were never issued.
	ErrInvalidEntity = eris.New("invalid entity")

	// ErrSchedulerState is returned when a scheduler operation is not legal in its current state.
	ErrSchedulerState = eris.New("illegal scheduler state")
)

// ComponentNotFoundError is returned by Get when the entity holds no component of Kind.
type ComponentNotFoundError struct {
	Entity Entity
	Kind   Kind
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %s does not exist on entity %d", e.Kind, uint64(e.Entity))
}

func (e *ComponentNotFoundError) Is(target error) bool {
	return target == ErrComponentNotFound
}

// InvalidEntityError is returned by readers given an id the registry never issued.
// It also matches ErrComponentNotFound so callers that only care about presence
// can treat both the same way.
type InvalidEntityError struct {
	Entity Entity
	Kind   Kind
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("entity %d was never issued (reading %s)", uint64(e.Entity), e.Kind)
}

func (e *InvalidEntityError) Is(target error) bool {
	return target == ErrInvalidEntity || target == ErrComponentNotFound
}
