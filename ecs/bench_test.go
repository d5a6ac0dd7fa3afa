package ecs_test

import (
	"testing"

	"github.com/plus3/momo/ecs"
)

func populate(b *testing.B, n int) (*ecs.Catalog, *ecs.Registry) {
	b.Helper()
	c, reg := newWorld()
	for i := 0; i < n; i++ {
		e := reg.Create()
		ecs.Add(c, e, Position{X: float32(i)})
		if i%2 == 0 {
			ecs.Add(c, e, Velocity{DX: 1, DY: 1})
		}
	}
	return c, reg
}

func BenchmarkCreateAdd(b *testing.B) {
	c, reg := newWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := reg.Create()
		ecs.Add(c, e, Position{X: 1.0, Y: 2.0})
		ecs.Add(c, e, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkDestroy(b *testing.B) {
	c, reg := newWorld()
	ids := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = reg.Create()
		ecs.Add(c, ids[i], Position{})
		ecs.Add(c, ids[i], Velocity{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.Destroy(ids[i])
	}
}

func BenchmarkGet(b *testing.B) {
	c, reg := populate(b, 1000)
	e := reg.Create()
	ecs.Add(c, e, Position{})
	s := ecs.StoreFor[Position](c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get(e)
	}
}

func BenchmarkForEach2(b *testing.B) {
	for _, size := range []struct {
		name string
		n    int
	}{
		{"1k", 1_000},
		{"100k", 100_000},
	} {
		b.Run(size.name, func(b *testing.B) {
			c, _ := populate(b, size.n)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ecs.ForEach2(c, func(_ ecs.Entity, p *Position, v *Velocity) {
					p.X += v.DX
					p.Y += v.DY
				})
			}
		})
	}
}

func BenchmarkForEach2SmallDriver(b *testing.B) {
	c, _ := populate(b, 100_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.ForEach2(c, func(_ ecs.Entity, v *Velocity, p *Position) {
			p.X += v.DX
		})
	}
}
