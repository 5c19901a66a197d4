package hierarchy

// Index is the built hierarchy for one snapshot. Construct with [Build].
// It is immutable once built and safe for concurrent readers without
// locking; there is no mutation API.
type Index struct {
	byID        map[string]Conversation
	children    map[string][]Conversation
	roots       []Conversation
	aggregates  map[string]Aggregate
	sortedRoots []Conversation
}

// Len returns the number of indexed conversations.
func (ix *Index) Len() int {
	return len(ix.byID)
}

// Get returns the stored record for id.
func (ix *Index) Get(id string) (Conversation, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// Data returns the aggregate for id. IDs outside the snapshot return the
// zero Aggregate; the lookup never fails.
func (ix *Index) Data(id string) Aggregate {
	return ix.aggregates[id]
}

// Children returns id's direct children, most recently active first, ties
// by ID ascending.
func (ix *Index) Children(id string) []Conversation {
	bucket := ix.children[id]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]Conversation, len(bucket))
	copy(out, bucket)
	return out
}

// Roots returns the root conversations in build order: own LastActivity
// descending, ties by ID ascending. SortedRoots is the contractual
// presentation order.
func (ix *Index) Roots() []Conversation {
	out := make([]Conversation, len(ix.roots))
	copy(out, ix.roots)
	return out
}

// SortedRoots returns the roots ordered by effective last activity
// descending, ties broken by ID ascending. The order is fixed at build
// time; repeated calls observe the identical sequence.
func (ix *Index) SortedRoots() []Conversation {
	out := make([]Conversation, len(ix.sortedRoots))
	copy(out, ix.sortedRoots)
	return out
}

// Ancestors returns the parent chain for id, nearest parent first. The
// walk stops at a root, at a dangling reference, or before revisiting a
// node on a cycle. Unknown IDs return nil.
func (ix *Index) Ancestors(id string) []Conversation {
	cur, ok := ix.byID[id]
	if !ok {
		return nil
	}
	seen := map[string]bool{cur.ID: true}
	var out []Conversation
	for cur.ParentID != "" {
		parent, ok := ix.byID[cur.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		out = append(out, parent)
		seen[parent.ID] = true
		cur = parent
	}
	return out
}

// OutlineEntry is one row of a depth-first flattening of the forest.
type OutlineEntry struct {
	Conversation Conversation
	Depth        int
}

// Outline flattens the forest depth-first: roots in SortedRoots order,
// children in bucket order. Conversations no root reaches (parent cycles)
// do not appear; Stats still counts them.
func (ix *Index) Outline() []OutlineEntry {
	out := make([]OutlineEntry, 0, len(ix.byID))
	visited := make(map[string]bool, len(ix.byID))
	for _, root := range ix.sortedRoots {
		out = ix.appendOutline(out, root, 0, visited)
	}
	return out
}

// OutlineFrom flattens the subtree rooted at id. Unknown IDs return nil.
func (ix *Index) OutlineFrom(id string) []OutlineEntry {
	c, ok := ix.byID[id]
	if !ok {
		return nil
	}
	return ix.appendOutline(nil, c, 0, make(map[string]bool))
}

func (ix *Index) appendOutline(out []OutlineEntry, c Conversation, depth int, visited map[string]bool) []OutlineEntry {
	if visited[c.ID] {
		return out
	}
	visited[c.ID] = true
	out = append(out, OutlineEntry{Conversation: c, Depth: depth})
	for _, child := range ix.children[c.ID] {
		out = ix.appendOutline(out, child, depth+1, visited)
	}
	return out
}

// Stats summarizes one built index.
type Stats struct {
	Conversations int
	Roots         int
	Orphans       int // roots promoted because their declared parent is missing
	Agents        int // distinct author pubkeys
	MaxDepth      int // deepest outline nesting, 1-based; 0 when empty
}

// Stats computes summary counts for the index.
func (ix *Index) Stats() Stats {
	s := Stats{
		Conversations: len(ix.byID),
		Roots:         len(ix.roots),
	}
	for _, root := range ix.roots {
		if root.ParentID != "" {
			s.Orphans++
		}
	}
	agents := make(map[string]struct{}, len(ix.byID))
	for _, c := range ix.byID {
		agents[c.AuthorPubkey] = struct{}{}
	}
	s.Agents = len(agents)
	for _, entry := range ix.Outline() {
		if entry.Depth+1 > s.MaxDepth {
			s.MaxDepth = entry.Depth + 1
		}
	}
	return s
}
