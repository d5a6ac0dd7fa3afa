package ecs

import (
	"fmt"
	"math"
	"reflect"
)

// Entity is an opaque identifier issued by a Registry.
// Ids come from a monotonically increasing counter and are never reused in-process.
type Entity uint64

// Nil is the zero Entity. It is never issued.
const Nil Entity = 0

// MaxEntity is the last id a Registry can issue; creating past it panics.
const MaxEntity Entity = math.MaxUint64

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d)", uint64(e))
}

// Kind is the per-type token a Catalog uses to find the store for a component type.
type Kind struct {
	t reflect.Type
}

// KindOf returns the Kind for component type T.
func KindOf[T any]() Kind {
	return Kind{t: reflect.TypeFor[T]()}
}

// Type returns the reflected component type.
func (k Kind) Type() reflect.Type {
	return k.t
}

func (k Kind) String() string {
	if k.t == nil {
		return "<nil>"
	}
	return k.t.String()
}

// Registry allocates entity ids for a Catalog and destroys entities by sweeping
// every store the catalog owns.
//
// The registry does not track liveness. An entity "has" a component kind iff that
// kind's store holds an entry for it.
type Registry struct {
	catalog   *Catalog
	next      Entity
	destroyed uint64
}

// NewRegistry creates the registry for catalog. A catalog accepts one registry.
func NewRegistry(catalog *Catalog) *Registry {
	r := &Registry{
		catalog: catalog,
		next:    1,
	}
	catalog.bind(r)
	return r
}

// Catalog returns the catalog this registry destroys entities in.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Create returns the next unused id.
// It panics once MaxEntity has been issued.
func (r *Registry) Create() Entity {
	if r.next == Nil {
		panic("ecs: entity id space exhausted")
	}
	id := r.next
	r.next++
	r.catalog.log.Debug("created entity", "entity", uint64(id))
	return id
}

// Issued reports whether e was ever returned by Create. It says nothing about
// whether e has been destroyed since.
func (r *Registry) Issued(e Entity) bool {
	if e == Nil {
		return false
	}
	// next wraps to Nil after MaxEntity is handed out
	return r.next == Nil || e < r.next
}

// Destroy removes every component of e from every store in the catalog.
// Destroying an unknown or already destroyed entity is a no-op. While a query is
// iterating the sweep is queued and applied when the outermost query returns.
func (r *Registry) Destroy(e Entity) {
	if !r.Issued(e) {
		r.catalog.log.Debug("destroy of unissued entity ignored", "entity", uint64(e))
		return
	}

	if r.catalog.Iterating() {
		// Stores holding e must queue later replacements behind the sweep.
		var held []AnyStore
		r.catalog.ForAllStores(func(s AnyStore) bool {
			if s.Contains(e) {
				s.hold(1)
				held = append(held, s)
			}
			return true
		})
		r.catalog.enqueue(command{
			op:     opDestroy,
			entity: e,
			apply: func() {
				for _, s := range held {
					s.hold(-1)
				}
				r.sweep(e)
			},
		})
		return
	}

	r.sweep(e)
}

func (r *Registry) sweep(e Entity) {
	removed := 0
	r.catalog.ForAllStores(func(s AnyStore) bool {
		if s.removeEntity(e) {
			removed++
		}
		return true
	})

	if removed > 0 {
		r.destroyed++
		r.catalog.log.Debug("destroyed entity", "entity", uint64(e), "components", removed)
	}
}

// Len returns how many ids have been issued.
func (r *Registry) Len() uint64 {
	if r.next == Nil {
		return uint64(MaxEntity)
	}
	return uint64(r.next) - 1
}

// Destroyed returns how many Destroy calls removed at least one component.
func (r *Registry) Destroyed() uint64 {
	return r.destroyed
}
