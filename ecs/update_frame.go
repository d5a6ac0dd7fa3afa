package ecs

// UpdateFrame is what a System sees for one tick.
type UpdateFrame struct {
	Tick Tick
	// DeltaTime is the fixed tick interval in seconds.
	DeltaTime float64
	Catalog   *Catalog
	Registry  *Registry
}

func newUpdateFrame(t Tick, reg *Registry) *UpdateFrame {
	return &UpdateFrame{
		Tick:      t,
		DeltaTime: t.Seconds(),
		Catalog:   reg.Catalog(),
		Registry:  reg,
	}
}
