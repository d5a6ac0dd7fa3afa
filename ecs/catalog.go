package ecs

import (
	"log/slog"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Catalog maps component kinds to their stores. It is the only place that knows
// about every kind that has ever been used; stores are created on first use and
// live as long as the catalog.
//
// A catalog is not safe for concurrent use. Queries, mutations and the scheduler
// are expected to run on one goroutine.
type Catalog struct {
	stores   map[Kind]AnyStore
	order    []AnyStore
	registry *Registry

	depth    int
	flushing bool
	pending  Commands

	log *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithLogger sets the logger used for entity and store lifecycle messages.
func WithLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		stores: make(map[Kind]AnyStore),
		log:    discardLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) bind(r *Registry) {
	if c.registry != nil {
		panic("ecs: catalog already has a registry")
	}
	c.registry = r
}

// Registry returns the registry bound to this catalog, or nil.
func (c *Catalog) Registry() *Registry {
	return c.registry
}

// StoreFor returns the store for T, creating it on first use.
func StoreFor[T any](c *Catalog) *Store[T] {
	kind := KindOf[T]()
	if s, ok := c.stores[kind]; ok {
		return s.(*Store[T])
	}

	s := newStore[T](c)
	c.stores[kind] = s
	c.order = append(c.order, s)
	c.log.Debug("created component store", "kind", kind.String())
	return s
}

// LookupStore returns the store for T without creating it.
func LookupStore[T any](c *Catalog) (*Store[T], bool) {
	s, ok := c.stores[KindOf[T]()]
	if !ok {
		return nil, false
	}
	return s.(*Store[T]), true
}

// StoreOf returns the type-erased store for kind, if one exists.
func (c *Catalog) StoreOf(kind Kind) (AnyStore, bool) {
	s, ok := c.stores[kind]
	return s, ok
}

// ForAllStores calls visit for every store in creation order until visit returns false.
func (c *Catalog) ForAllStores(visit func(AnyStore) bool) {
	for _, s := range c.order {
		if !visit(s) {
			return
		}
	}
}

// Add stores value as e's component of type T. See Store.Add.
func Add[T any](c *Catalog, e Entity, value T) {
	if !c.issued(e) {
		c.log.Warn("add to unissued entity ignored", "entity", uint64(e), "kind", KindOf[T]().String())
		return
	}
	StoreFor[T](c).Add(e, value)
}

// Get returns e's component of type T. A kind that has no store yet yields
// ComponentNotFound without creating one.
func Get[T any](c *Catalog, e Entity) (*T, error) {
	s, ok := LookupStore[T](c)
	if !ok {
		if !c.issued(e) {
			return nil, &InvalidEntityError{Entity: e, Kind: KindOf[T]()}
		}
		return nil, &ComponentNotFoundError{Entity: e, Kind: KindOf[T]()}
	}
	return s.Get(e)
}

// Remove erases e's component of type T, if any.
func Remove[T any](c *Catalog, e Entity) {
	if s, ok := LookupStore[T](c); ok {
		s.Remove(e)
	}
}

// Has reports whether e holds a component of type T.
func Has[T any](c *Catalog, e Entity) bool {
	s, ok := LookupStore[T](c)
	return ok && s.Contains(e)
}

// Iterating reports whether a query is currently walking this catalog.
func (c *Catalog) Iterating() bool {
	return c.depth > 0
}

// Defer runs fn once no query is iterating: immediately when called outside a
// query, otherwise after the outermost query returns, in request order with the
// other queued changes.
func (c *Catalog) Defer(fn func()) {
	if !c.Iterating() {
		fn()
		return
	}
	c.enqueue(command{op: opDefer, apply: fn})
}

// Pending returns the number of queued structural changes.
func (c *Catalog) Pending() int {
	return c.pending.Len()
}

func (c *Catalog) enqueue(cmd command) {
	c.pending.push(cmd)
}

func (c *Catalog) begin() {
	c.depth++
}

func (c *Catalog) end() {
	c.depth--
	if c.depth > 0 || c.flushing {
		return
	}
	c.flush()
}

// flush applies queued commands. Commands queued by a command that itself runs a
// query are picked up by the next pass of the loop.
func (c *Catalog) flush() {
	c.flushing = true
	defer func() { c.flushing = false }()

	for c.pending.Len() > 0 {
		ops := c.pending.drain()
		c.log.Debug("applying deferred changes", "count", len(ops))
		for _, cmd := range ops {
			cmd.apply()
		}
	}

	for _, s := range c.order {
		s.maybeCompact()
	}
}

func (c *Catalog) issued(e Entity) bool {
	if c.registry == nil {
		return e != Nil
	}
	return c.registry.Issued(e)
}
