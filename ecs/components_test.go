package ecs_test

import "github.com/plus3/momo/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

type Score int32

func newWorld() (*ecs.Catalog, *ecs.Registry) {
	c := ecs.NewCatalog()
	return c, ecs.NewRegistry(c)
}
