package ecs_test

import (
	"fmt"
	"time"

	"github.com/plus3/momo/ecs"
)

// ExampleForEach2 shows a two-kind query. Only entities holding both kinds are
// visited, in the order their first kind was added.
func ExampleForEach2() {
	c := ecs.NewCatalog()
	reg := ecs.NewRegistry(c)

	ship := reg.Create()
	ecs.Add(c, ship, Position{X: 0, Y: 0})
	ecs.Add(c, ship, Velocity{DX: 1, DY: 2})

	rock := reg.Create()
	ecs.Add(c, rock, Position{X: 5, Y: 5})

	ecs.ForEach2(c, func(e ecs.Entity, p *Position, v *Velocity) {
		p.X += v.DX
		p.Y += v.DY
	})

	ecs.ForEach(c, func(e ecs.Entity, p *Position) {
		fmt.Printf("%s at (%.0f, %.0f)\n", e, p.X, p.Y)
	})

	// Output:
	// entity(1) at (1, 2)
	// entity(2) at (5, 5)
}

// ExampleRegistry_Destroy shows that destroying an entity while a query is
// walking takes effect once the query returns.
func ExampleRegistry_Destroy() {
	c := ecs.NewCatalog()
	reg := ecs.NewRegistry(c)

	for i := 0; i < 3; i++ {
		e := reg.Create()
		ecs.Add(c, e, Health{Current: i, Max: 2})
	}

	ecs.ForEach(c, func(e ecs.Entity, h *Health) {
		if h.Current == 0 {
			reg.Destroy(e)
		}
		fmt.Println("visited", e)
	})

	fmt.Println("remaining", ecs.StoreFor[Health](c).Len())

	// Output:
	// visited entity(1)
	// visited entity(2)
	// visited entity(3)
	// remaining 2
}

// ExampleScheduler shows the fixed-timestep loop running a pipeline of systems.
// A 50ms frame at 60Hz pays for three ticks; the rest is carried over.
func ExampleScheduler() {
	c := ecs.NewCatalog()
	reg := ecs.NewRegistry(c)

	e := reg.Create()
	ecs.Add(c, e, Position{})
	ecs.Add(c, e, Velocity{DX: 60})

	pipeline := ecs.NewPipeline(reg)
	pipeline.Register(&MovementSystem{})

	scheduler, err := ecs.NewScheduler(ecs.SchedulerConfig{TickInterval: time.Second / 60})
	if err != nil {
		panic(err)
	}
	if err := scheduler.Start(); err != nil {
		panic(err)
	}

	result, _ := scheduler.Advance(50*time.Millisecond, pipeline.Tick)
	pos, _ := ecs.Get[Position](c, e)

	fmt.Println("ticks:", result.Ticks)
	fmt.Printf("x: %.1f\n", pos.X)
	fmt.Println("carried:", scheduler.Accumulator())

	// Output:
	// ticks: 3
	// x: 3.0
	// carried: 2ns
}
