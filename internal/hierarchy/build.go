package hierarchy

import "sort"

// Build constructs the index for one snapshot. Construction is synchronous
// and CPU-bound; the returned Index is immutable.
//
// Records with duplicate IDs collapse to the last occurrence in input
// order. A record whose ParentID is empty, or names an ID absent from the
// snapshot, becomes a root: dangling references are absorbed, never
// rejected, and there is no error path.
func Build(records []Conversation) *Index {
	snapshot, byID := dedupe(records)

	children := make(map[string][]Conversation)
	roots := make([]Conversation, 0, len(snapshot))
	for _, c := range snapshot {
		if c.ParentID == "" {
			roots = append(roots, c)
			continue
		}
		if _, known := byID[c.ParentID]; !known {
			// Orphan: the declared parent is not in this snapshot.
			roots = append(roots, c)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	for parentID := range children {
		sortByActivity(children[parentID])
	}
	sortByActivity(roots)

	ix := &Index{
		byID:     byID,
		children: children,
		roots:    roots,
	}
	ix.aggregates = aggregate(snapshot, roots, byID, children)
	ix.sortedRoots = sortRootsByEffective(roots, ix.aggregates)
	return ix
}

// dedupe collapses duplicate IDs. The last record for each ID wins and
// keeps the position of its final occurrence, so the deduplicated snapshot
// order is deterministic.
func dedupe(records []Conversation) ([]Conversation, map[string]Conversation) {
	byID := make(map[string]Conversation, len(records))
	last := make(map[string]int, len(records))
	for i, c := range records {
		byID[c.ID] = c
		last[c.ID] = i
	}
	out := make([]Conversation, 0, len(byID))
	for i, c := range records {
		if last[c.ID] == i {
			out = append(out, c)
		}
	}
	return out, byID
}

// sortByActivity orders conversations by LastActivity descending, ties by
// ID ascending, so bucket and root order is deterministic.
func sortByActivity(list []Conversation) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastActivity != list[j].LastActivity {
			return list[i].LastActivity > list[j].LastActivity
		}
		return list[i].ID < list[j].ID
	})
}

// sortRootsByEffective orders roots by EffectiveLastActivity descending,
// ties by ID ascending. A root missing from the aggregate map falls back to
// its own LastActivity.
func sortRootsByEffective(roots []Conversation, aggregates map[string]Aggregate) []Conversation {
	effective := func(c Conversation) uint64 {
		if agg, ok := aggregates[c.ID]; ok {
			return agg.EffectiveLastActivity
		}
		return c.LastActivity
	}
	sorted := make([]Conversation, len(roots))
	copy(sorted, roots)
	sort.Slice(sorted, func(i, j int) bool {
		ei, ej := effective(sorted[i]), effective(sorted[j])
		if ei != ej {
			return ei > ej
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
