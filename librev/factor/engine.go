package factor

import (
	"math/big"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/2x3systems/gorev/rev"
)

// DefaultCacheMinBits is the smallest number (in bits) worth a cache round trip.
const DefaultCacheMinBits = 40

// EngineOpts specifies params for a factorization Engine
type EngineOpts struct {
	UseCache     bool           // if set, factorizations are memoized in a Cache
	CachePath    string         // omit for an in-memory cache
	CacheMinBits int            // 0 denotes DefaultCacheMinBits
	OnLookup     func(hit bool) // optional; called for each cache lookup
}

// Engine is a rev.Factorizer with an optional cache.
// Concurrent requests to factor the same number are coalesced into one computation.
type Engine struct {
	opts   EngineOpts
	cache  *Cache
	flight singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// NewEngine returns an Engine ready for use.  Call Close() when done.
func NewEngine(opts EngineOpts) (*Engine, error) {
	if opts.CacheMinBits <= 0 {
		opts.CacheMinBits = DefaultCacheMinBits
	}
	eng := &Engine{
		opts: opts,
	}
	if opts.UseCache {
		cache, err := OpenCache(opts.CachePath)
		if err != nil {
			return nil, err
		}
		eng.cache = cache
	}
	return eng, nil
}

// Factorize implements rev.Factorizer.
func (eng *Engine) Factorize(n *big.Int) rev.Factorization {
	if eng.cache == nil || n == nil || n.BitLen() < eng.opts.CacheMinBits {
		return Factorize(n)
	}

	num := new(big.Int).Abs(n)
	val, _, shared := eng.flight.Do(num.String(), func() (interface{}, error) {
		if F, hit := eng.cache.Get(num); hit {
			eng.noteLookup(true)
			return F, nil
		}
		eng.noteLookup(false)
		F := Factorize(num)
		eng.cache.Put(num, F)
		return F, nil
	})

	F := val.(rev.Factorization)
	if shared {
		F = F.Clone()
	}
	return F
}

func (eng *Engine) noteLookup(hit bool) {
	if hit {
		eng.hits.Add(1)
	} else {
		eng.misses.Add(1)
	}
	if eng.opts.OnLookup != nil {
		eng.opts.OnLookup(hit)
	}
}

// CacheStats returns the number of cache hits and misses so far.
func (eng *Engine) CacheStats() (hits, misses int64) {
	return eng.hits.Load(), eng.misses.Load()
}

// Close closes the cache, if any.
func (eng *Engine) Close() error {
	if eng.cache != nil {
		return eng.cache.Close()
	}
	return nil
}
