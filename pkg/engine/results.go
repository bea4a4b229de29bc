package engine

// Outcome is one record in the ordered result of ProcessOrder. The concrete
// type is either a success variant (Accepted, Filled, PartiallyFilled,
// Amended, Cancelled) or a failure variant (ValidationFailed, OrderNotFound,
// NoMatch). Dispatch sites are expected to type-switch exhaustively.
type Outcome interface {
	outcome()
}

// Accepted reports that a new order passed validation and was assigned an id.
type Accepted struct {
	ID        uint64
	OrderType OrderType
	Creator   string
	Ts        uint64
}

// Filled reports a trade that consumed the order's full remaining quantity.
// Price is the resting order's price, never the incoming limit.
type Filled struct {
	OrderID   uint64
	Side      Side
	OrderType OrderType
	Price     float64
	Qty       float64
	Creator   string
	Ts        uint64
}

// PartiallyFilled reports a trade that left the order with remaining quantity.
type PartiallyFilled struct {
	OrderID   uint64
	Side      Side
	OrderType OrderType
	Price     float64
	Qty       float64
	Creator   string
	Ts        uint64
}

// Amended reports a successful in-place price/qty update.
type Amended struct {
	ID    uint64
	Price float64
	Qty   float64
	Ts    uint64
}

// Cancelled reports a successful removal of a resting order.
type Cancelled struct {
	ID uint64
	Ts uint64
}

// ValidationFailed reports a malformed or out-of-range request. The request
// was rejected before any mutation.
type ValidationFailed struct {
	Reason error
}

// OrderNotFound reports a cancel/amend id that is not currently resting
// (already filled or already cancelled). No mutation was performed.
type OrderNotFound struct {
	ID uint64
}

// NoMatch reports that a market order's unfilled remainder was discarded.
// Informational: it follows any fills already reported for the same request
// and never undoes them.
type NoMatch struct {
	ID uint64
}

func (Accepted) outcome()         {}
func (Filled) outcome()           {}
func (PartiallyFilled) outcome()  {}
func (Amended) outcome()          {}
func (Cancelled) outcome()        {}
func (ValidationFailed) outcome() {}
func (OrderNotFound) outcome()    {}
func (NoMatch) outcome()          {}

// IsFailure reports whether an outcome is a failure variant.
func IsFailure(o Outcome) bool {
	switch o.(type) {
	case Accepted, Filled, PartiallyFilled, Amended, Cancelled:
		return false
	case ValidationFailed, OrderNotFound, NoMatch:
		return true
	default:
		return true
	}
}
