package engine

import "errors"

// Validation errors, named for the violated field.
var (
	ErrBadOrderAsset = errors.New("bad order asset")
	ErrBadPriceAsset = errors.New("bad price asset")
	ErrBadPrice      = errors.New("price must be positive")
	ErrBadQty        = errors.New("quantity must be positive")
	ErrBadCreator    = errors.New("order creator can't be empty")
	ErrBadSeqID      = errors.New("order id out of range")
)

// requestValidator checks preconditions against the engine's configured asset
// pair and the currently valid id range. It is a pure check: it never inspects
// whether an id is actually resting — that is the queue's job, surfaced as
// OrderNotFound.
type requestValidator[A comparable] struct {
	orderAsset A
	priceAsset A
	minSeqID   uint64
	maxSeqID   uint64 // highest id ever assigned
}

func newRequestValidator[A comparable](orderAsset, priceAsset A) *requestValidator[A] {
	return &requestValidator[A]{
		orderAsset: orderAsset,
		priceAsset: priceAsset,
		minSeqID:   1,
	}
}

func (v *requestValidator[A]) validate(req OrderRequest[A]) error {
	switch r := req.(type) {
	case MarketOrderRequest[A]:
		return v.validateMarket(r.OrderAsset, r.PriceAsset, r.Qty, r.Creator)
	case LimitOrderRequest[A]:
		return v.validateLimit(r.OrderAsset, r.PriceAsset, r.Price, r.Qty, r.Creator)
	case AmendRequest[A]:
		return v.validateAmend(r.ID, r.Price, r.Qty)
	case CancelRequest[A]:
		return v.validateCancel(r.ID)
	default:
		return errors.New("unknown request kind")
	}
}

func (v *requestValidator[A]) validateMarket(orderAsset, priceAsset A, qty float64, creator string) error {
	if v.orderAsset != orderAsset {
		return ErrBadOrderAsset
	}
	if v.priceAsset != priceAsset {
		return ErrBadPriceAsset
	}
	if qty <= 0 {
		return ErrBadQty
	}
	if creator == "" {
		return ErrBadCreator
	}
	return nil
}

func (v *requestValidator[A]) validateLimit(orderAsset, priceAsset A, price, qty float64, creator string) error {
	if v.orderAsset != orderAsset {
		return ErrBadOrderAsset
	}
	if v.priceAsset != priceAsset {
		return ErrBadPriceAsset
	}
	if price <= 0 {
		return ErrBadPrice
	}
	if qty <= 0 {
		return ErrBadQty
	}
	if creator == "" {
		return ErrBadCreator
	}
	return nil
}

func (v *requestValidator[A]) validateAmend(id uint64, price, qty float64) error {
	if id < v.minSeqID || id > v.maxSeqID {
		return ErrBadSeqID
	}
	if price <= 0 {
		return ErrBadPrice
	}
	if qty <= 0 {
		return ErrBadQty
	}
	return nil
}

func (v *requestValidator[A]) validateCancel(id uint64) error {
	if id < v.minSeqID || id > v.maxSeqID {
		return ErrBadSeqID
	}
	return nil
}
