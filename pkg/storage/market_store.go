// Package storage persists the serialized engine state between contract
// calls. The engine exposes plain, fully-owned state with no external
// references, so this is a pure encode/decode contract: what is saved must
// load back byte-for-byte equivalent, FIFO order included.
package storage

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"

	"github.com/princesinha19/nearbook/pkg/contract"
	"github.com/princesinha19/nearbook/pkg/engine"
)

// keys: ob:state (gob-encoded engine state), ob:root (latest state root)
func kState() []byte { return []byte("ob:state") }
func kRoot() []byte  { return []byte("ob:root") }

// MarketStore is a pebble-backed contract.Store.
type MarketStore struct {
	db *pebble.DB
}

func NewMarketStore(path string) (*MarketStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &MarketStore{db: db}, nil
}

func (s *MarketStore) Close() error { return s.db.Close() }

// SaveState persists the full engine state under a fixed key. Sync write:
// the book must survive a host restart mid-session.
func (s *MarketStore) SaveState(state engine.State[contract.Asset]) error {
	val, err := encodeGob(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.db.Set(kState(), val, pebble.Sync); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// LoadState reads the persisted engine state. found is false when nothing has
// been saved yet.
func (s *MarketStore) LoadState() (engine.State[contract.Asset], bool, error) {
	var out engine.State[contract.Asset]
	val, closer, err := s.db.Get(kState())
	if err != nil {
		if err == pebble.ErrNotFound {
			return out, false, nil
		}
		return out, false, err
	}
	defer closer.Close()
	if err := decodeGob(val, &out); err != nil {
		return out, false, fmt.Errorf("decode state: %w", err)
	}
	return out, true, nil
}

// SaveRoot records the latest state root next to the state itself.
func (s *MarketStore) SaveRoot(root common.Hash) error {
	return s.db.Set(kRoot(), root[:], pebble.Sync)
}

// LoadRoot reads the last recorded state root.
func (s *MarketStore) LoadRoot() (common.Hash, bool, error) {
	val, closer, err := s.db.Get(kRoot())
	if err != nil {
		if err == pebble.ErrNotFound {
			return common.Hash{}, false, nil
		}
		return common.Hash{}, false, err
	}
	defer closer.Close()
	var out common.Hash
	copy(out[:], val)
	return out, true, nil
}

var _ contract.Store = (*MarketStore)(nil)
