// Decision cache: a small bounded LRU from constraint-set snapshot to
// decision outcome.
//
// The host invokes the theory twice per goal state — once to decide,
// once to extract a model — and may re-probe the same proof state many
// times while backtracking. The cache guarantees both callbacks observe
// the same outcome and that the expensive external search runs at most
// once per distinct snapshot. Insertion for a key is a single atomic
// step: concurrent proof branches racing on one key share a single
// computation.
package strtheory

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheCapacity is the default number of decision outcomes
// retained. Hosts probe only a handful of proof states at a time, so
// the cache stays deliberately small.
const DefaultCacheCapacity = 3

// Outcome is a cached decision: either a concrete model or "no model".
type Outcome struct {
	Sat   bool
	Model *Model
}

// DecisionCache is a bounded, strictly least-recently-used cache of
// decision outcomes. Safe for concurrent use.
type DecisionCache struct {
	entries *lru.Cache[string, Outcome]
	group   singleflight.Group
}

// NewDecisionCache creates a cache with the given capacity. A capacity
// of 0 or less selects DefaultCacheCapacity.
func NewDecisionCache(capacity int) *DecisionCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	// lru.New only fails for non-positive sizes, which the guard above
	// excludes.
	entries, err := lru.New[string, Outcome](capacity)
	if err != nil {
		panic(err)
	}
	return &DecisionCache{entries: entries}
}

// Lookup returns the cached outcome for a snapshot key, marking the
// entry most recently used.
func (c *DecisionCache) Lookup(key string) (Outcome, bool) {
	return c.entries.Get(key)
}

// Resolve returns the outcome for a key, computing it at most once.
// Concurrent callers with the same key share one computation; the
// outcome is inserted (evicting the least-recently-used entry at
// capacity) before any caller observes it. Errors are not cached: a
// failed computation leaves no entry behind.
func (c *DecisionCache) Resolve(key string, compute func() (Outcome, error)) (Outcome, error) {
	if out, ok := c.entries.Get(key); ok {
		return out, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if out, ok := c.entries.Get(key); ok {
			return out, nil
		}
		out, err := compute()
		if err != nil {
			return Outcome{}, err
		}
		c.entries.Add(key, out)
		return out, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return v.(Outcome), nil
}

// Len returns the number of cached outcomes.
func (c *DecisionCache) Len() int { return c.entries.Len() }
