package ecs

// The ForEach family answers "which entities hold all of these kinds" and calls
// visit once per match.
//
// The store of the first kind drives the walk: its entries are visited in
// insertion order, and each candidate is checked for membership in the other
// stores. Only entries present when the call starts are considered. Visitors may
// modify the components they are handed, and any other component value in place.
// Adds of new entries, removals and destroys requested during the walk are queued
// and applied when the outermost ForEach returns.
//
// A kind that has never had a store behaves as an empty result.

// ForEach visits every entity holding an A.
func ForEach[A any](c *Catalog, visit func(Entity, *A)) {
	sa, ok := LookupStore[A](c)
	if !ok {
		return
	}

	c.begin()
	defer c.end()

	n := len(sa.owners)
	for i := 0; i < n; i++ {
		e := sa.owners[i]
		if e == Nil {
			continue
		}
		visit(e, sa.at(i))
	}
}

// ForEach2 visits every entity holding both an A and a B.
func ForEach2[A, B any](c *Catalog, visit func(Entity, *A, *B)) {
	sa, ok := LookupStore[A](c)
	if !ok {
		return
	}
	sb, ok := LookupStore[B](c)
	if !ok {
		return
	}

	c.begin()
	defer c.end()

	n := len(sa.owners)
	for i := 0; i < n; i++ {
		e := sa.owners[i]
		if e == Nil {
			continue
		}
		b, ok := sb.lookup(e)
		if !ok {
			continue
		}
		visit(e, sa.at(i), b)
	}
}

// ForEach3 visits every entity holding an A, a B and a C.
func ForEach3[A, B, C any](c *Catalog, visit func(Entity, *A, *B, *C)) {
	sa, ok := LookupStore[A](c)
	if !ok {
		return
	}
	sb, ok := LookupStore[B](c)
	if !ok {
		return
	}
	sc, ok := LookupStore[C](c)
	if !ok {
		return
	}

	c.begin()
	defer c.end()

	n := len(sa.owners)
	for i := 0; i < n; i++ {
		e := sa.owners[i]
		if e == Nil {
			continue
		}
		b, ok := sb.lookup(e)
		if !ok {
			continue
		}
		cc, ok := sc.lookup(e)
		if !ok {
			continue
		}
		visit(e, sa.at(i), b, cc)
	}
}

// ForEach4 visits every entity holding an A, a B, a C and a D.
func ForEach4[A, B, C, D any](c *Catalog, visit func(Entity, *A, *B, *C, *D)) {
	sa, ok := LookupStore[A](c)
	if !ok {
		return
	}
	sb, ok := LookupStore[B](c)
	if !ok {
		return
	}
	sc, ok := LookupStore[C](c)
	if !ok {
		return
	}
	sd, ok := LookupStore[D](c)
	if !ok {
		return
	}

	c.begin()
	defer c.end()

	n := len(sa.owners)
	for i := 0; i < n; i++ {
		e := sa.owners[i]
		if e == Nil {
			continue
		}
		b, ok := sb.lookup(e)
		if !ok {
			continue
		}
		cc, ok := sc.lookup(e)
		if !ok {
			continue
		}
		d, ok := sd.lookup(e)
		if !ok {
			continue
		}
		visit(e, sa.at(i), b, cc, d)
	}
}

// Count2 returns how many entities hold both an A and a B.
func Count2[A, B any](c *Catalog) int {
	count := 0
	ForEach2(c, func(Entity, *A, *B) {
		count++
	})
	return count
}
