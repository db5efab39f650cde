package graph

// sideCache holds per-property access counters and auto-built value indices.
// It lives alongside the graph's semantic state but never inside it: Equal
// ignores it and Clone starts fresh. Counters survive invalidation so a hot
// property re-indexes on its next lookup.
type sideCache struct {
	accessCounts map[string]int
	indices      map[string]map[string][]string
}

func newSideCache() *sideCache {
	return &sideCache{
		accessCounts: make(map[string]int),
		indices:      make(map[string]map[string][]string),
	}
}

func (c *sideCache) invalidateAll() {
	c.indices = make(map[string]map[string][]string)
}

func (c *sideCache) invalidateProperty(name string) {
	delete(c.indices, name)
}

// FindByProperty returns the IDs of nodes whose named property equals the
// given value, sorted. Each lookup on a property increments its access
// counter; once the counter reaches the index threshold an index is built by
// scanning all nodes and grouping IDs by the property value's canonical
// string form. Indexed lookups are O(1); pre-threshold lookups scan.
func (g *Graph) FindByProperty(name string, value any) []string {
	key := canonicalString(value)

	if idx, ok := g.cache.indices[name]; ok {
		return append([]string(nil), idx[key]...)
	}

	g.cache.accessCounts[name]++
	if g.cache.accessCounts[name] >= g.indexThreshold {
		idx := g.buildIndex(name)
		return append([]string(nil), idx[key]...)
	}

	var ids []string
	for _, id := range g.NodeIDs() {
		if v, ok := g.nodes[id].Properties[name]; ok && canonicalString(v) == key {
			ids = append(ids, id)
		}
	}
	return ids
}

func (g *Graph) buildIndex(name string) map[string][]string {
	idx := make(map[string][]string)
	for _, id := range g.NodeIDs() {
		if v, ok := g.nodes[id].Properties[name]; ok {
			key := canonicalString(v)
			idx[key] = append(idx[key], id)
		}
	}
	g.cache.indices[name] = idx
	countIndexBuild(name)
	return idx
}

// IndexedProperties returns the property names with a live index, sorted.
func (g *Graph) IndexedProperties() []string {
	return sortedKeys(g.cache.indices)
}

// PropertyAccessCount returns the lookup counter for a property.
func (g *Graph) PropertyAccessCount(name string) int {
	return g.cache.accessCounts[name]
}
