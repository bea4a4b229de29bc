package contract

import (
	"bytes"
	"encoding/gob"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/princesinha19/nearbook/pkg/engine"
)

// Trade pairs the two parties of one match for the settlement layer: the
// buyer receives Qty of the order asset, the seller receives Price*Qty of the
// price asset.
type Trade struct {
	Buyer      string
	Seller     string
	OrderAsset Asset
	PriceAsset Asset
	Price      float64
	Qty        float64
}

// Settler observes fills and performs the actual value transfer. The engine
// itself never touches custody.
type Settler interface {
	Settle(trades []Trade) error
}

// Store persists the engine's full state between calls. The encoding is the
// store's business; the contract only demands an exact round trip.
type Store interface {
	SaveState(s engine.State[Asset]) error
	LoadState() (engine.State[Asset], bool, error)
}

// RootStore is an optional Store extension that records the state root
// alongside the state. Stores implementing it get an integrity check on
// restore: a root mismatch means the persisted state was tampered with or
// decoded differently than it was written.
type RootStore interface {
	SaveRoot(root common.Hash) error
	LoadRoot() (common.Hash, bool, error)
}

// Market exposes one order-asset/price-asset pair to outside callers, the way
// the chain runtime would: every mutating call builds a request from the Env,
// runs it through the engine, settles fills, persists state and refreshes the
// state root.
type Market struct {
	orderAsset Asset
	priceAsset Asset
	book       *engine.Orderbook[Asset]
	env        Env
	store      Store
	settler    Settler
	log        *zap.SugaredLogger
	stateRoot  common.Hash
}

// Options carries the optional collaborators of a Market. Nil fields disable
// the corresponding concern.
type Options struct {
	Env     Env
	Store   Store
	Settler Settler
	Logger  *zap.Logger
}

// NewMarket builds a market for the given pair. If the store already holds a
// state snapshot for this pair, the book is restored from it; otherwise a
// fresh book is created.
func NewMarket(orderAsset, priceAsset Asset, opts Options) (*Market, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Market{
		orderAsset: orderAsset,
		priceAsset: priceAsset,
		env:        opts.Env,
		store:      opts.Store,
		settler:    opts.Settler,
		log:        logger.Sugar(),
	}

	if opts.Store != nil {
		state, found, err := opts.Store.LoadState()
		if err != nil {
			return nil, err
		}
		if found && state.OrderAsset == orderAsset && state.PriceAsset == priceAsset {
			m.book = engine.RestoreOrderbook(state)
			m.log.Infow("market_state_restored",
				"pair", orderAsset.String()+"/"+priceAsset.String(),
				"resting_bids", len(state.Bids), "resting_asks", len(state.Asks))
		}
	}
	if m.book == nil {
		m.book = engine.NewOrderbook(orderAsset, priceAsset)
	}
	m.stateRoot = m.computeStateRoot()

	if rs, ok := opts.Store.(RootStore); ok {
		if saved, found, err := rs.LoadRoot(); err != nil {
			return nil, err
		} else if found && saved != m.stateRoot {
			m.log.Warnw("state_root_mismatch_on_restore",
				"saved", saved.Hex(), "computed", m.stateRoot.Hex())
		}
	}
	return m, nil
}

// NewLimitOrder submits a limit order signed by the current env identity.
func (m *Market) NewLimitOrder(price, qty float64, side string) ([]engine.Outcome, error) {
	s, err := ParseSide(side)
	if err != nil {
		return nil, err
	}
	req := engine.NewLimitOrderRequest(m.orderAsset, m.priceAsset, s, price, qty,
		m.env.SignerAccountID(), m.env.BlockTimestamp())
	return m.process(req), nil
}

// NewMarketOrder submits a market order signed by the current env identity.
func (m *Market) NewMarketOrder(qty float64, side string) ([]engine.Outcome, error) {
	s, err := ParseSide(side)
	if err != nil {
		return nil, err
	}
	req := engine.NewMarketOrderRequest(m.orderAsset, m.priceAsset, s, qty,
		m.env.SignerAccountID(), m.env.BlockTimestamp())
	return m.process(req), nil
}

// AmendOrder updates price/qty of a resting order. The side must match the
// order's existing side.
func (m *Market) AmendOrder(id uint64, side string, price, qty float64) ([]engine.Outcome, error) {
	s, err := ParseSide(side)
	if err != nil {
		return nil, err
	}
	req := engine.AmendOrderRequest[Asset](id, s, price, qty, m.env.BlockTimestamp())
	return m.process(req), nil
}

// CancelLimitOrder removes a resting order by id.
func (m *Market) CancelLimitOrder(id uint64, side string) ([]engine.Outcome, error) {
	s, err := ParseSide(side)
	if err != nil {
		return nil, err
	}
	return m.process(engine.LimitOrderCancelRequest[Asset](id, s)), nil
}

func (m *Market) process(req engine.OrderRequest[Asset]) []engine.Outcome {
	out := m.book.ProcessOrder(req)

	if trades := m.pairTrades(out); len(trades) > 0 && m.settler != nil {
		// Settlement failures are logged, never unwound: the fills stand and
		// the ledger operator reconciles out of band.
		if err := m.settler.Settle(trades); err != nil {
			m.log.Errorw("settlement_failed", "err", err, "trades", len(trades))
		}
	}

	if m.store != nil {
		if err := m.store.SaveState(m.book.Snapshot()); err != nil {
			m.log.Errorw("state_persist_failed", "err", err)
		}
	}
	m.stateRoot = m.computeStateRoot()
	if rs, ok := m.store.(RootStore); ok {
		if err := rs.SaveRoot(m.stateRoot); err != nil {
			m.log.Errorw("root_persist_failed", "err", err)
		}
	}

	for _, o := range out {
		if engine.IsFailure(o) {
			m.log.Infow("order_rejected", "outcome", o)
		}
	}
	return out
}

// pairTrades walks an outcome sequence and pairs each incoming fill with the
// resting fill that follows it. The engine emits them adjacently, incoming
// first.
func (m *Market) pairTrades(out []engine.Outcome) []Trade {
	type fill struct {
		side    engine.Side
		creator string
		price   float64
		qty     float64
	}
	asFill := func(o engine.Outcome) (fill, bool) {
		switch e := o.(type) {
		case engine.Filled:
			return fill{e.Side, e.Creator, e.Price, e.Qty}, true
		case engine.PartiallyFilled:
			return fill{e.Side, e.Creator, e.Price, e.Qty}, true
		default:
			return fill{}, false
		}
	}

	var trades []Trade
	for i := 0; i+1 < len(out); i++ {
		taker, ok := asFill(out[i])
		if !ok {
			continue
		}
		maker, ok := asFill(out[i+1])
		if !ok || maker.side == taker.side {
			continue
		}
		t := Trade{
			OrderAsset: m.orderAsset,
			PriceAsset: m.priceAsset,
			Price:      taker.price,
			Qty:        taker.qty,
		}
		if taker.side == engine.Bid {
			t.Buyer, t.Seller = taker.creator, maker.creator
		} else {
			t.Buyer, t.Seller = maker.creator, taker.creator
		}
		trades = append(trades, t)
		i++ // consume the maker record
	}
	return trades
}

// GetAskOrders returns the resting ask side, best price first.
func (m *Market) GetAskOrders() []engine.OrderIndex { return m.book.AskQueue() }

// GetBidOrders returns the resting bid side, best price first.
func (m *Market) GetBidOrders() []engine.OrderIndex { return m.book.BidQueue() }

// GetCurrentSpread returns [ask, bid] best prices, zeros when either side is
// empty.
func (m *Market) GetCurrentSpread() [2]float64 {
	bid, ask, ok := m.book.CurrentSpread()
	if !ok {
		return [2]float64{0, 0}
	}
	return [2]float64{ask, bid}
}

// OrderAsset returns the configured order asset.
func (m *Market) OrderAsset() Asset { return m.orderAsset }

// PriceAsset returns the configured price asset.
func (m *Market) PriceAsset() Asset { return m.priceAsset }

// StateRoot returns the keccak hash of the current engine state. Hosts use it
// the way a chain uses an app hash: to agree on the book without replaying it.
func (m *Market) StateRoot() common.Hash { return m.stateRoot }

func (m *Market) computeStateRoot() common.Hash {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.book.Snapshot()); err != nil {
		m.log.Errorw("state_root_encode_failed", "err", err)
		return common.Hash{}
	}
	return crypto.Keccak256Hash(buf.Bytes())
}
