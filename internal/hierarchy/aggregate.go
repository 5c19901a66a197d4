package hierarchy

import "sort"

// aggregate computes one Aggregate per snapshot record.
//
// Because every record declares at most one parent, children buckets are
// disjoint: a snapshot decomposes into trees under roots plus parent cycles
// with subtrees hanging off the cycle members. Trees fold bottom-up in
// depth-first post-order, child accumulators merging into the parent, so
// the forest is traversed once. Cycle components are accumulated once and
// each member's aggregate derived from the component total: a member
// reaches the entire component except itself.
//
// When a pubkey repeats with differing names, the later accumulation wins.
// Accumulation runs post-order over sorted children buckets and is
// deterministic for a given snapshot.
func aggregate(snapshot, roots []Conversation, byID map[string]Conversation, children map[string][]Conversation) map[string]Aggregate {
	g := &aggregator{
		byID:     byID,
		children: children,
		visited:  make(map[string]bool, len(snapshot)),
		out:      make(map[string]Aggregate, len(snapshot)),
	}
	for _, root := range roots {
		g.fold(root)
	}
	// Everything still unvisited sits on a parent cycle.
	for _, c := range snapshot {
		if !g.visited[c.ID] {
			g.component(c)
		}
	}
	return g.out
}

type aggregator struct {
	byID     map[string]Conversation
	children map[string][]Conversation
	visited  map[string]bool
	out      map[string]Aggregate
}

// fold aggregates the subtree rooted at c and returns its accumulator for
// the parent to merge. Already-visited IDs fold to nothing, which bounds
// traversal on malformed graphs.
func (g *aggregator) fold(c Conversation) *accumulator {
	if g.visited[c.ID] {
		return newAccumulator()
	}
	g.visited[c.ID] = true

	acc := newAccumulator()
	for _, child := range g.children[c.ID] {
		acc.merge(g.fold(child))
	}

	// Snapshot the descendant view before folding c itself in.
	delegation := sortedInfos(acc.infos, c.AuthorPubkey)
	descendants := acc.count

	acc.add(c)
	g.out[c.ID] = g.finish(c, acc, delegation, descendants)
	return acc
}

// component aggregates one parent cycle and the subtrees hanging off it.
// Members share the component-wide totals; only the per-member pubkey
// exclusion and author info differ.
func (g *aggregator) component(start Conversation) {
	cycle := g.findCycle(start.ID)
	if len(cycle) == 0 {
		// The chain did not close on itself; treat as an ordinary subtree.
		g.fold(start)
		return
	}

	onCycle := make(map[string]bool, len(cycle))
	for _, id := range cycle {
		onCycle[id] = true
		g.visited[id] = true
	}

	acc := newAccumulator()
	for _, id := range cycle {
		acc.add(g.byID[id])
	}
	for _, id := range cycle {
		for _, child := range g.children[id] {
			if onCycle[child.ID] {
				continue
			}
			acc.merge(g.fold(child))
		}
	}

	for _, id := range cycle {
		c := g.byID[id]
		delegation := sortedInfos(acc.infos, c.AuthorPubkey)
		g.out[id] = g.finish(c, acc, delegation, acc.count-1)
	}
}

// findCycle walks the parent chain from id until it revisits a node and
// returns the closed portion. Chains that lead to a root were folded before
// component processing, so an open chain means there is nothing to do.
func (g *aggregator) findCycle(id string) []string {
	seen := make(map[string]int)
	var path []string
	cur := id
	for {
		if at, ok := seen[cur]; ok {
			return path[at:]
		}
		rec, ok := g.byID[cur]
		if !ok || g.visited[cur] {
			return nil
		}
		seen[cur] = len(path)
		path = append(path, cur)
		cur = rec.ParentID
	}
}

// finish assembles the stored Aggregate for c from its accumulated totals.
// The accumulator already includes c itself; delegation and descendants
// describe the view with c excluded.
func (g *aggregator) finish(c Conversation, acc *accumulator, delegation []AgentInfo, descendants int) Aggregate {
	author := AgentInfo{Name: c.Author, Pubkey: c.AuthorPubkey}
	participating := make([]AgentInfo, 0, len(delegation)+1)
	participating = append(participating, delegation...)
	participating = append(participating, author)
	sortInfos(participating)

	return Aggregate{
		EffectiveLastActivity:   acc.maxActivity,
		ActivitySpan:            acc.maxActivity - acc.minActivity,
		ParticipatingAgents:     sortedNames(acc.names),
		ParticipatingAgentInfos: participating,
		AuthorInfo:              &author,
		DelegationAgentInfos:    delegation,
		DescendantCount:         descendants,
	}
}

// accumulator carries the running totals for one subtree or cycle
// component: activity bounds, participant sets, and the node count.
type accumulator struct {
	maxActivity uint64
	minActivity uint64
	names       map[string]struct{}
	infos       map[string]AgentInfo // keyed by pubkey, later write wins
	count       int
}

func newAccumulator() *accumulator {
	return &accumulator{
		names: make(map[string]struct{}),
		infos: make(map[string]AgentInfo),
	}
}

// add folds a single conversation into the accumulator.
func (a *accumulator) add(c Conversation) {
	if a.count == 0 || c.LastActivity > a.maxActivity {
		a.maxActivity = c.LastActivity
	}
	if a.count == 0 || c.LastActivity < a.minActivity {
		a.minActivity = c.LastActivity
	}
	a.names[c.Author] = struct{}{}
	a.infos[c.AuthorPubkey] = AgentInfo{Name: c.Author, Pubkey: c.AuthorPubkey}
	a.count++
}

// merge folds a child subtree's totals into this accumulator. Child info
// entries overwrite existing ones, so the later accumulation wins.
func (a *accumulator) merge(child *accumulator) {
	if child.count == 0 {
		return
	}
	if a.count == 0 || child.maxActivity > a.maxActivity {
		a.maxActivity = child.maxActivity
	}
	if a.count == 0 || child.minActivity < a.minActivity {
		a.minActivity = child.minActivity
	}
	for name := range child.names {
		a.names[name] = struct{}{}
	}
	for pubkey, info := range child.infos {
		a.infos[pubkey] = info
	}
	a.count += child.count
}

// sortedInfos returns the accumulated infos minus the excluded pubkey,
// sorted for output.
func sortedInfos(infos map[string]AgentInfo, exclude string) []AgentInfo {
	out := make([]AgentInfo, 0, len(infos))
	for pubkey, info := range infos {
		if pubkey == exclude {
			continue
		}
		out = append(out, info)
	}
	sortInfos(out)
	return out
}

// sortInfos orders infos by name, then pubkey when names collide.
func sortInfos(infos []AgentInfo) {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].Pubkey < infos[j].Pubkey
	})
}

func sortedNames(names map[string]struct{}) []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
