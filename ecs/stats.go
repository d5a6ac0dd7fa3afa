package ecs

// CatalogStats is a point-in-time summary of a catalog, used by debug tooling.
type CatalogStats struct {
	StoreCount      int
	TotalComponents int
	IssuedEntities  uint64
	Destroyed       uint64
	Pending         int
	PendingByOp     map[string]int
	Stores          []StoreStats
}

// Stats collects per-store occupancy in store creation order.
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		StoreCount:  len(c.order),
		Pending:     c.pending.Len(),
		PendingByOp: make(map[string]int),
		Stores:      make([]StoreStats, 0, len(c.order)),
	}

	for _, s := range c.order {
		st := s.Stats()
		stats.TotalComponents += st.Len
		stats.Stores = append(stats.Stores, st)
	}

	for _, cmd := range c.pending.ops {
		stats.PendingByOp[cmd.op.String()]++
	}

	if c.registry != nil {
		stats.IssuedEntities = c.registry.Len()
		stats.Destroyed = c.registry.Destroyed()
	}

	return stats
}

// KindsOf returns the kinds e currently holds, in store creation order.
func (c *Catalog) KindsOf(e Entity) []Kind {
	var kinds []Kind
	for _, s := range c.order {
		if s.Contains(e) {
			kinds = append(kinds, s.Kind())
		}
	}
	return kinds
}
