package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princesinha19/nearbook/pkg/engine"
)

type memStore struct {
	state engine.State[Asset]
	found bool
	saves int
}

func (s *memStore) SaveState(state engine.State[Asset]) error {
	s.state, s.found = state, true
	s.saves++
	return nil
}

func (s *memStore) LoadState() (engine.State[Asset], bool, error) {
	return s.state, s.found, nil
}

type recordingSettler struct {
	trades []Trade
}

func (r *recordingSettler) Settle(trades []Trade) error {
	r.trades = append(r.trades, trades...)
	return nil
}

func newTestMarket(t *testing.T, opts Options) *Market {
	t.Helper()
	if opts.Env == nil {
		opts.Env = StaticEnv{Signer: "alice.near", Ts: 42}
	}
	m, err := NewMarket(BTC, USD, opts)
	require.NoError(t, err)
	return m
}

func TestParseHelpers(t *testing.T) {
	a, err := ParseAsset("BTC")
	require.NoError(t, err)
	assert.Equal(t, BTC, a)

	_, err = ParseAsset("DOGE")
	assert.Error(t, err)

	s, err := ParseSide("Ask")
	require.NoError(t, err)
	assert.Equal(t, engine.Ask, s)

	_, err = ParseSide("Long")
	assert.Error(t, err)
}

func TestSpreadShapeMatchesHostConvention(t *testing.T) {
	m := newTestMarket(t, Options{})

	// empty book: zeros, not an error
	assert.Equal(t, [2]float64{0, 0}, m.GetCurrentSpread())

	_, err := m.NewLimitOrder(1.25, 1.0, "Ask")
	require.NoError(t, err)
	_, err = m.NewLimitOrder(1.22, 0.56, "Bid")
	require.NoError(t, err)

	// [ask, bid]
	assert.Equal(t, [2]float64{1.25, 1.22}, m.GetCurrentSpread())
	require.Len(t, m.GetAskOrders(), 1)
	require.Len(t, m.GetBidOrders(), 1)
}

func TestEnvSuppliesIdentityAndTime(t *testing.T) {
	m := newTestMarket(t, Options{Env: StaticEnv{Signer: "carol.near", Ts: 777}})

	out, err := m.NewLimitOrder(10.0, 1.0, "Bid")
	require.NoError(t, err)
	acc := out[0].(engine.Accepted)
	assert.Equal(t, "carol.near", acc.Creator)
	assert.Equal(t, uint64(777), acc.Ts)
}

func TestFillsReachSettler(t *testing.T) {
	settler := &recordingSettler{}
	m := newTestMarket(t, Options{Settler: settler})

	_, err := m.NewLimitOrder(10.0, 1.0, "Bid") // rests
	require.NoError(t, err)
	_, err = m.NewLimitOrder(9.0, 0.5, "Ask") // crosses
	require.NoError(t, err)

	require.Len(t, settler.trades, 1)
	tr := settler.trades[0]
	assert.Equal(t, "alice.near", tr.Buyer)
	assert.Equal(t, "alice.near", tr.Seller)
	assert.Equal(t, 10.0, tr.Price)
	assert.Equal(t, 0.5, tr.Qty)
	assert.Equal(t, BTC, tr.OrderAsset)
	assert.Equal(t, USD, tr.PriceAsset)
}

func TestStatePersistedAfterEveryCall(t *testing.T) {
	store := &memStore{}
	m := newTestMarket(t, Options{Store: store})

	_, err := m.NewLimitOrder(10.0, 1.0, "Bid")
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	require.Len(t, store.state.Bids, 1)

	_, err = m.CancelLimitOrder(1, "Bid")
	require.NoError(t, err)
	assert.Equal(t, 2, store.saves)
	assert.Empty(t, store.state.Bids)
}

func TestMarketRestoresFromStore(t *testing.T) {
	store := &memStore{}
	m := newTestMarket(t, Options{Store: store})

	_, err := m.NewLimitOrder(10.0, 1.0, "Bid")
	require.NoError(t, err)
	root := m.StateRoot()

	reborn := newTestMarket(t, Options{Store: store})
	assert.Equal(t, m.GetBidOrders(), reborn.GetBidOrders())
	assert.Equal(t, root, reborn.StateRoot(), "same book state must hash to the same root")

	// ids continue after restore
	out, err := reborn.NewLimitOrder(11.0, 1.0, "Ask")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), out[0].(engine.Accepted).ID)
}

func TestStateRootTracksBook(t *testing.T) {
	m := newTestMarket(t, Options{})
	empty := m.StateRoot()

	_, err := m.NewLimitOrder(10.0, 1.0, "Bid")
	require.NoError(t, err)
	assert.NotEqual(t, empty, m.StateRoot())

	_, err = m.CancelLimitOrder(1, "Bid")
	require.NoError(t, err)
	// cancel does not roll back the id counter, so the root differs from the
	// fresh-book root too
	assert.NotEqual(t, empty, m.StateRoot())
}

func TestBadSideRejectedBeforeEngine(t *testing.T) {
	store := &memStore{}
	m := newTestMarket(t, Options{Store: store})

	_, err := m.NewLimitOrder(10.0, 1.0, "Sideways")
	assert.Error(t, err)
	assert.Zero(t, store.saves)
}
