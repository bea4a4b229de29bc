// Package engine implements a single-pair price-time priority matching engine.
// It owns no custody and performs no I/O: callers feed it OrderRequest values
// and consume the ordered Outcome records it returns.
package engine

// Side is the side of the book an order belongs to. The zero value is Bid.
type Side int8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	switch s {
	case Bid:
		return "Bid"
	case Ask:
		return "Ask"
	default:
		return "Unknown"
	}
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

// OrderType is derived per request and reported on outcomes; it is never
// stored on a resting order (only limit orders rest).
type OrderType int8

const (
	Market OrderType = iota
	Limit
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "Market"
	case Limit:
		return "Limit"
	default:
		return "Unknown"
	}
}

// Order is the resident record for a resting limit order. It exists only
// while quantity remains unfilled and uncancelled. Creator and Ts are carried
// so fills against the resting side can report them.
type Order[A comparable] struct {
	ID         uint64
	OrderAsset A
	PriceAsset A
	Side       Side
	Price      float64
	Qty        float64
	Creator    string
	Ts         uint64
}

// OrderIndex is the external-facing summary of a resting order, used to
// expose book contents without leaking internal queue structure.
type OrderIndex struct {
	ID    uint64  `json:"id"`
	Side  Side    `json:"side"`
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
	Ts    uint64  `json:"ts"`
}
