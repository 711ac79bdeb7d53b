package librev

import (
	"math/big"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/2x3systems/gorev/librev/factor"
)

// NumberSet tracks which graph numbers have been seen.
type NumberSet interface {

	// TryAdd adds n and returns true, or returns false if n was already added.
	TryAdd(n *big.Int) (bool, error)

	// Close releases the set and everything added to it.
	Close() error
}

// NewNumberSet returns an empty NumberSet held in an in-memory badger store.
func NewNumberSet() (NumberSet, error) {
	db, err := factor.OpenDB("")
	if err != nil {
		return nil, errors.Wrap(err, "opening number set")
	}
	return &numberSet{db: db}, nil
}

type numberSet struct {
	db *badger.DB
}

// setKey prefixes the magnitude with the sign so 0, n and -n stay distinct.
func setKey(n *big.Int) []byte {
	return append([]byte{byte(n.Sign() + 1)}, n.Bytes()...)
}

func (set *numberSet) TryAdd(n *big.Int) (bool, error) {
	key := setKey(n)
	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	return added, err
}

func (set *numberSet) Close() error {
	if set.db == nil {
		return nil
	}
	err := set.db.Close()
	set.db = nil
	return err
}
