package factor

import (
	"math/big"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/gorev/rev"
)

const cacheKeyPrefix = 'F'

// Cache is a badger-backed store of factorizations keyed by the factored number.
// Lookups and stores are best-effort: failures are logged and treated as misses.
type Cache struct {
	db *badger.DB
}

// OpenDB opens a quiet badger store at pathname, or an in-memory one if pathname is empty.
func OpenDB(pathname string) (*badger.DB, error) {
	dbOpts := badger.DefaultOptions(pathname).WithInMemory(len(pathname) == 0)
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	return badger.Open(dbOpts)
}

// OpenCache opens (or creates) a factorization cache.  An empty pathname denotes an in-memory cache.
func OpenCache(pathname string) (*Cache, error) {
	db, err := OpenDB(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "opening factor cache")
	}
	return &Cache{db: db}, nil
}

func formCacheKey(n *big.Int) []byte {
	nb := n.Bytes()
	key := make([]byte, 0, len(nb)+1)
	key = append(key, cacheKeyPrefix)
	return append(key, nb...)
}

// Get returns the cached factorization of n, if present.
func (c *Cache) Get(n *big.Int) (rev.Factorization, bool) {
	var F rev.Factorization
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(formCacheKey(n))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			F, err = rev.UnmarshalFactorization(val)
			return err
		})
	})

	if err != nil {
		if err != badger.ErrKeyNotFound {
			klog.Warningf("factor cache read error for %v: %v", n, err)
		}
		return nil, false
	}
	return F, true
}

// Put stores the factorization of n.
func (c *Cache) Put(n *big.Int, F rev.Factorization) {
	val, err := rev.MarshalFactorization(F)
	if err == nil {
		err = c.db.Update(func(txn *badger.Txn) error {
			return txn.Set(formCacheKey(n), val)
		})
	}
	if err != nil {
		klog.Warningf("factor cache write error for %v: %v", n, err)
	}
}

// Close flushes and closes the underlying store.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
