package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zjrosen/tresse/internal/cachemanager"
	"github.com/zjrosen/tresse/internal/log"
)

// Full agent pubkeys are 64 hex characters. Conversation events often carry
// a truncated prefix instead, so lookups shorter than the full length fall
// back to a prefix scan over stored profiles.
const (
	fullPubkeyLen = 64
	minPrefixLen  = 8
)

// resolveTTL bounds how long resolved names, including negative results,
// stay cached.
const resolveTTL = 15 * time.Minute

// Resolver maps agent pubkeys to display names. Lookups go through a
// read-through cache so rendering many records does not hit the store once
// per row.
type Resolver struct {
	repo  Repository
	cache *cachemanager.ReadThroughCache[string, string, string]
}

// NewResolver creates a resolver backed by repo. manager holds resolved
// names; skipCache bypasses it for callers that need fresh reads.
func NewResolver(repo Repository, manager cachemanager.CacheManager[string, string], skipCache bool) *Resolver {
	r := &Resolver{repo: repo}
	r.cache = cachemanager.NewReadThroughCache[string, string, string](manager, r.lookup, skipCache)
	return r
}

// Resolve returns the display name for pubkey, or the empty string when no
// stored profile matches. Callers fall back to the name carried on the
// conversation record itself. Only storage failures surface as errors.
func (r *Resolver) Resolve(ctx context.Context, pubkey string) (string, error) {
	if pubkey == "" {
		return "", nil
	}
	return r.cache.Get(ctx, pubkey, pubkey, resolveTTL)
}

// ResolveAll resolves each pubkey, returning one map entry per pubkey that
// resolved to a name.
func (r *Resolver) ResolveAll(ctx context.Context, pubkeys []string) (map[string]string, error) {
	names := make(map[string]string, len(pubkeys))
	for _, pk := range pubkeys {
		name, err := r.Resolve(ctx, pk)
		if err != nil {
			return nil, err
		}
		if name != "" {
			names[pk] = name
		}
	}
	return names, nil
}

// lookup is the cache miss path: exact match first, then the prefix scan
// for truncated pubkeys. Unknown pubkeys resolve to "" rather than an error
// so negative results are cached too.
func (r *Resolver) lookup(_ context.Context, pubkey string) (string, error) {
	p, err := r.repo.FindByPubkey(pubkey)
	if err == nil {
		return p.DisplayName, nil
	}

	var notFound *ProfileNotFoundError
	if !errors.As(err, &notFound) {
		return "", err
	}

	if len(pubkey) >= fullPubkeyLen || len(pubkey) < minPrefixLen {
		return "", nil
	}

	return r.lookupByPrefix(pubkey)
}

// lookupByPrefix scans stored profiles for a unique pubkey prefix match.
// Ambiguous prefixes resolve to nothing.
func (r *Resolver) lookupByPrefix(prefix string) (string, error) {
	all, err := r.repo.ListAll()
	if err != nil {
		return "", err
	}

	found := -1
	for i := range all {
		if !strings.HasPrefix(all[i].Pubkey, prefix) {
			continue
		}
		if found >= 0 {
			log.Debug(log.CatProfiles, "ambiguous pubkey prefix", "prefix", prefix)
			return "", nil
		}
		found = i
	}

	if found < 0 {
		return "", nil
	}
	return all[found].DisplayName, nil
}
