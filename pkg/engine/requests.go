package engine

// OrderRequest is the closed set of operations an engine accepts. Requests are
// transient: the engine never stores one. Constructors below build variants
// directly from caller-supplied fields and perform no validation.
type OrderRequest[A comparable] interface {
	request()
}

// MarketOrderRequest asks for an immediate trade at whatever prices the
// opposite side offers. Any unfilled remainder is discarded.
type MarketOrderRequest[A comparable] struct {
	OrderAsset A
	PriceAsset A
	Side       Side
	Qty        float64
	Creator    string
	Ts         uint64
}

// LimitOrderRequest trades up to its limit price; the remainder rests.
type LimitOrderRequest[A comparable] struct {
	OrderAsset A
	PriceAsset A
	Side       Side
	Price      float64
	Qty        float64
	Creator    string
	Ts         uint64
}

// AmendRequest updates price and quantity of a still-resting order. The side
// must match the order's existing side; changing side is unsupported — cancel
// and resubmit instead.
type AmendRequest[A comparable] struct {
	ID    uint64
	Side  Side
	Price float64
	Qty   float64
	Ts    uint64
}

// CancelRequest removes a resting order by id.
type CancelRequest[A comparable] struct {
	ID   uint64
	Side Side
}

func (MarketOrderRequest[A]) request() {}
func (LimitOrderRequest[A]) request()  {}
func (AmendRequest[A]) request()       {}
func (CancelRequest[A]) request()      {}

// NewMarketOrderRequest builds a request for a new market order.
func NewMarketOrderRequest[A comparable](orderAsset, priceAsset A, side Side, qty float64, creator string, ts uint64) OrderRequest[A] {
	return MarketOrderRequest[A]{
		OrderAsset: orderAsset,
		PriceAsset: priceAsset,
		Side:       side,
		Qty:        qty,
		Creator:    creator,
		Ts:         ts,
	}
}

// NewLimitOrderRequest builds a request for a new limit order.
func NewLimitOrderRequest[A comparable](orderAsset, priceAsset A, side Side, price, qty float64, creator string, ts uint64) OrderRequest[A] {
	return LimitOrderRequest[A]{
		OrderAsset: orderAsset,
		PriceAsset: priceAsset,
		Side:       side,
		Price:      price,
		Qty:        qty,
		Creator:    creator,
		Ts:         ts,
	}
}

// AmendOrderRequest builds a request for changing price/qty of an active
// limit order.
func AmendOrderRequest[A comparable](id uint64, side Side, price, qty float64, ts uint64) OrderRequest[A] {
	return AmendRequest[A]{ID: id, Side: side, Price: price, Qty: qty, Ts: ts}
}

// LimitOrderCancelRequest builds a request for cancelling an active limit order.
func LimitOrderCancelRequest[A comparable](id uint64, side Side) OrderRequest[A] {
	return CancelRequest[A]{ID: id, Side: side}
}
