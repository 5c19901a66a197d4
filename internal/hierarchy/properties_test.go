package hierarchy

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// drawSnapshot generates a snapshot with roots, dangling parents, self
// references, cycles, and the occasional duplicate ID.
func drawSnapshot(t *rapid.T) []Conversation {
	n := rapid.IntRange(0, 25).Draw(t, "count")
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("conv-%02d", i)
	}

	records := make([]Conversation, 0, n+2)
	for i := 0; i < n; i++ {
		parent := ""
		switch rapid.IntRange(0, 3).Draw(t, "parentKind") {
		case 0:
			// root
		case 1:
			parent = fmt.Sprintf("ghost-%02d", rapid.IntRange(0, 5).Draw(t, "ghost"))
		default:
			parent = ids[rapid.IntRange(0, n-1).Draw(t, "parentIdx")]
		}
		records = append(records, Conversation{
			ID:           ids[i],
			ParentID:     parent,
			Author:       rapid.SampledFrom([]string{"alice", "bob", "carol", "dave"}).Draw(t, "author"),
			AuthorPubkey: rapid.SampledFrom([]string{"pk-1", "pk-2", "pk-3"}).Draw(t, "pubkey"),
			LastActivity: uint64(rapid.IntRange(0, 1000).Draw(t, "activity")),
		})
	}

	if n > 0 {
		for d := rapid.IntRange(0, 2).Draw(t, "dups"); d > 0; d-- {
			dup := records[rapid.IntRange(0, n-1).Draw(t, "dupIdx")]
			dup.LastActivity = uint64(rapid.IntRange(0, 1000).Draw(t, "dupActivity"))
			records = append(records, dup)
		}
	}
	return records
}

func uniqueByID(records []Conversation) map[string]Conversation {
	unique := make(map[string]Conversation, len(records))
	for _, r := range records {
		unique[r.ID] = r
	}
	return unique
}

func TestBuild_RandomSnapshotsPartition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := drawSnapshot(t)
		ix := Build(records)

		unique := uniqueByID(records)
		require.Equal(t, len(unique), ix.Len())

		want := make([]string, 0, len(unique))
		placed := ids(ix.Roots())
		for id, r := range unique {
			want = append(want, id)
			placed = append(placed, ids(ix.Children(r.ID))...)
		}
		require.ElementsMatch(t, want, placed, "every conversation sits in exactly one bucket")

		rootSet := make(map[string]bool, len(placed))
		for _, id := range ids(ix.Roots()) {
			rootSet[id] = true
		}
		for id, r := range unique {
			_, known := unique[r.ParentID]
			wantRoot := r.ParentID == "" || !known
			require.Equal(t, wantRoot, rootSet[id], "root membership for %s", id)
		}
	})
}

func TestAggregate_RandomSnapshotsInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := drawSnapshot(t)
		ix := Build(records)
		unique := uniqueByID(records)

		for id, r := range unique {
			agg := ix.Data(id)
			require.NotNil(t, agg.AuthorInfo, "aggregate missing for %s", id)
			require.Equal(t, r.AuthorPubkey, agg.AuthorInfo.Pubkey)

			require.GreaterOrEqual(t, agg.EffectiveLastActivity, r.LastActivity)
			require.LessOrEqual(t, agg.ActivitySpan, agg.EffectiveLastActivity)
			require.GreaterOrEqual(t, agg.DescendantCount, 0)
			require.Less(t, agg.DescendantCount, ix.Len())

			require.True(t, sort.StringsAreSorted(agg.ParticipatingAgents))
			for i := 1; i < len(agg.ParticipatingAgents); i++ {
				require.NotEqual(t, agg.ParticipatingAgents[i-1], agg.ParticipatingAgents[i])
			}
			require.Contains(t, agg.ParticipatingAgents, r.Author)

			for _, info := range agg.DelegationAgentInfos {
				require.NotEqual(t, r.AuthorPubkey, info.Pubkey, "delegations never carry the author pubkey")
			}
			require.Len(t, agg.ParticipatingAgentInfos, len(agg.DelegationAgentInfos)+1)

			if parent, known := unique[r.ParentID]; known {
				require.GreaterOrEqual(t, ix.Data(parent.ID).EffectiveLastActivity, agg.EffectiveLastActivity,
					"effective activity is monotone toward the root")
			}
		}

		require.Equal(t, Aggregate{}, ix.Data("ghost-99"), "IDs outside the snapshot stay zero")
	})
}

func TestSortedRoots_RandomSnapshotsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := drawSnapshot(t)
		ix := Build(records)

		sorted := ix.SortedRoots()
		require.ElementsMatch(t, ids(ix.Roots()), ids(sorted))

		for i := 1; i < len(sorted); i++ {
			prev, cur := ix.Data(sorted[i-1].ID).EffectiveLastActivity, ix.Data(sorted[i].ID).EffectiveLastActivity
			if prev == cur {
				require.Less(t, sorted[i-1].ID, sorted[i].ID)
			} else {
				require.Greater(t, prev, cur)
			}
		}

		require.Equal(t, ids(sorted), ids(Build(records).SortedRoots()), "rebuild is deterministic")
	})
}
