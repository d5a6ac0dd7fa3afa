// Command momo-stressgen writes the component and system definitions used by
// momo-stress. Each generated system joins two components with ForEach2; every
// few systems also remove components mid-query to exercise deferred changes.
package main

import (
	"bytes"
	"flag"
	"log/slog"
	"os"
	"text/template"

	"github.com/rotisserie/eris"
	"golang.org/x/tools/imports"
)

type systemDef struct {
	Index  int
	A, B   int
	Churn  bool
	Period int
}

type workload struct {
	Components       int
	Systems          []systemDef
	ComponentIndices []int
}

func newWorkload(components, systems, churnEvery int) workload {
	s := workload{Components: components}
	for i := range components {
		s.ComponentIndices = append(s.ComponentIndices, i)
	}
	for i := range systems {
		sys := systemDef{
			Index: i,
			A:     (i * 7) % components,
			B:     (i*7 + 1 + i%3) % components,
		}
		if sys.A == sys.B {
			sys.B = (sys.B + 1) % components
		}
		if churnEvery > 0 && i%churnEvery == 0 {
			sys.Churn = true
			sys.Period = 97 + i
		}
		s.Systems = append(s.Systems, sys)
	}
	return s
}

const source = `// Code generated by momo-stressgen; DO NOT EDIT.

package main

import (
	"math/rand/v2"

	"github.com/plus3/momo/ecs"
)

const (
	componentCount = {{.Components}}
	systemCount    = {{len .Systems}}
)
{{range .ComponentIndices}}
type Component{{.}} struct {
	Value float64
	Count int
}
{{end}}
{{- range .Systems}}
type System{{.Index}} struct{}

func (System{{.Index}}) Execute(f *ecs.UpdateFrame) {
	ecs.ForEach2(f.Catalog, func(e ecs.Entity, a *Component{{.A}}, b *Component{{.B}}) {
		a.Value += b.Value * f.DeltaTime
		a.Count++
{{- if .Churn}}
		if a.Count%{{.Period}} == 0 {
			ecs.Remove[Component{{.B}}](f.Catalog, e)
		}
{{- end}}
	})
}
{{end}}
// RegisterAllGeneratedSystems adds every generated system to p.
func RegisterAllGeneratedSystems(p *ecs.Pipeline) {
{{- range .Systems}}
	p.Register(System{{.Index}}{})
{{- end}}
}

// SpawnRandomEntity creates an entity holding n distinct random components.
func SpawnRandomEntity(reg *ecs.Registry, rng *rand.Rand, n int) ecs.Entity {
	c := reg.Catalog()
	e := reg.Create()
	for _, k := range rng.Perm(componentCount)[:min(n, componentCount)] {
		addComponent(c, e, k, rng.Float64())
	}
	return e
}

func addComponent(c *ecs.Catalog, e ecs.Entity, k int, v float64) {
	switch k {
{{- range .ComponentIndices}}
	case {{.}}:
		ecs.Add(c, e, Component{{.}}{Value: v})
{{- end}}
	}
}
`

// generate renders the source for s and runs it through goimports.
func generate(s workload, filename string) ([]byte, error) {
	tmpl, err := template.New("stress").Parse(source)
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return nil, eris.Wrap(err, "failed to render template")
	}

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, eris.Wrap(err, "generated source does not parse")
	}
	return out, nil
}

func main() {
	components := flag.Int("components", 64, "Number of component types to generate.")
	systems := flag.Int("systems", 24, "Number of systems to generate.")
	churn := flag.Int("churn-every", 4, "Every nth system removes components mid-query. 0 disables.")
	out := flag.String("out", "generated.go", "Output file.")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *components < 2 || *systems < 1 {
		log.Error("need at least two components and one system",
			"components", *components,
			"systems", *systems)
		os.Exit(2)
	}

	src, err := generate(newWorkload(*components, *systems, *churn), *out)
	if err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Error("failed to write output", "path", *out, "error", err)
		os.Exit(1)
	}
	log.Info("wrote stress definitions",
		"path", *out,
		"components", *components,
		"systems", *systems)
}
