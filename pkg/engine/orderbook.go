package engine

// Orderbook is the matching engine for one order-asset/price-asset pair.
// It is a single self-contained value: both queues, the id counter and the
// validator are private state, and the surrounding host guarantees calls are
// serialized — there is no locking here and no global state.
type Orderbook[A comparable] struct {
	orderAsset A
	priceAsset A
	askQueue   *orderQueue[A]
	bidQueue   *orderQueue[A]
	nextID     uint64
	validator  *requestValidator[A]
}

// NewOrderbook creates an empty book for the given pair. Order ids start at 1.
func NewOrderbook[A comparable](orderAsset, priceAsset A) *Orderbook[A] {
	return &Orderbook[A]{
		orderAsset: orderAsset,
		priceAsset: priceAsset,
		askQueue:   newOrderQueue[A](Ask),
		bidQueue:   newOrderQueue[A](Bid),
		nextID:     1,
		validator:  newRequestValidator(orderAsset, priceAsset),
	}
}

// ProcessOrder runs one request through the engine state machine and returns
// the ordered sequence of outcome records describing exactly what happened.
// The call is atomic: a validation failure rejects the request before any
// mutation.
func (ob *Orderbook[A]) ProcessOrder(req OrderRequest[A]) []Outcome {
	if err := ob.validator.validate(req); err != nil {
		return []Outcome{ValidationFailed{Reason: err}}
	}

	switch r := req.(type) {
	case MarketOrderRequest[A]:
		id := ob.assignID()
		out := []Outcome{Accepted{ID: id, OrderType: Market, Creator: r.Creator, Ts: r.Ts}}
		return ob.matchNew(out, Market, id, r.Side, 0, r.Qty, r.Creator, r.Ts)
	case LimitOrderRequest[A]:
		id := ob.assignID()
		out := []Outcome{Accepted{ID: id, OrderType: Limit, Creator: r.Creator, Ts: r.Ts}}
		return ob.matchNew(out, Limit, id, r.Side, r.Price, r.Qty, r.Creator, r.Ts)
	case AmendRequest[A]:
		return ob.amend(r)
	case CancelRequest[A]:
		return ob.cancel(r)
	default:
		// validator already rejects unknown kinds
		return nil
	}
}

func (ob *Orderbook[A]) assignID() uint64 {
	id := ob.nextID
	ob.nextID++
	ob.validator.maxSeqID = id
	return id
}

func (ob *Orderbook[A]) sideQueue(s Side) *orderQueue[A] {
	if s == Ask {
		return ob.askQueue
	}
	return ob.bidQueue
}

// marketable reports whether an incoming limit price can trade against the
// opposite best. Market orders match unconditionally while liquidity exists.
func marketable(typ OrderType, side Side, limit, best float64) bool {
	if typ == Market {
		return true
	}
	if side == Bid {
		return best <= limit
	}
	return best >= limit
}

// matchNew runs the matching loop for a freshly accepted order, then disposes
// of the remainder: a limit remainder rests, a market remainder is discarded
// with a trailing NoMatch record.
func (ob *Orderbook[A]) matchNew(out []Outcome, typ OrderType, id uint64, side Side, price, qty float64, creator string, ts uint64) []Outcome {
	opposite := ob.sideQueue(side.Opposite())
	remaining := qty

	for remaining > 0 {
		resting := opposite.peekBest()
		if resting == nil || !marketable(typ, side, price, resting.Price) {
			break
		}

		traded := min(remaining, resting.Qty)
		remaining -= traded

		// Incoming order's record first, then the resting order's. The trade
		// executes at the resting price: price-time priority grants the
		// incoming order the resting price, never its own limit.
		if remaining == 0 {
			out = append(out, Filled{
				OrderID: id, Side: side, OrderType: typ,
				Price: resting.Price, Qty: traded, Creator: creator, Ts: ts,
			})
		} else {
			out = append(out, PartiallyFilled{
				OrderID: id, Side: side, OrderType: typ,
				Price: resting.Price, Qty: traded, Creator: creator, Ts: ts,
			})
		}

		if resting.Qty == traded {
			out = append(out, Filled{
				OrderID: resting.ID, Side: resting.Side, OrderType: Limit,
				Price: resting.Price, Qty: traded, Creator: resting.Creator, Ts: resting.Ts,
			})
			opposite.popBest()
		} else {
			resting.Qty -= traded // in place, keeps price level position
			out = append(out, PartiallyFilled{
				OrderID: resting.ID, Side: resting.Side, OrderType: Limit,
				Price: resting.Price, Qty: traded, Creator: resting.Creator, Ts: resting.Ts,
			})
		}
	}

	if remaining > 0 {
		if typ == Limit {
			ob.sideQueue(side).insert(&Order[A]{
				ID:         id,
				OrderAsset: ob.orderAsset,
				PriceAsset: ob.priceAsset,
				Side:       side,
				Price:      price,
				Qty:        remaining,
				Creator:    creator,
				Ts:         ts,
			})
		} else {
			// market orders never rest
			out = append(out, NoMatch{ID: id})
		}
	}
	return out
}

// amend updates price and quantity of a still-resting order. No re-matching
// is performed even if the new price crosses the opposite book; the order is
// reinserted at the back of its new price level.
func (ob *Orderbook[A]) amend(r AmendRequest[A]) []Outcome {
	queue := ob.sideQueue(r.Side)
	o, ok := queue.remove(r.ID)
	if !ok {
		return []Outcome{OrderNotFound{ID: r.ID}}
	}
	o.Price = r.Price
	o.Qty = r.Qty
	o.Ts = r.Ts
	queue.insert(o)
	return []Outcome{Amended{ID: r.ID, Price: r.Price, Qty: r.Qty, Ts: r.Ts}}
}

func (ob *Orderbook[A]) cancel(r CancelRequest[A]) []Outcome {
	o, ok := ob.sideQueue(r.Side).remove(r.ID)
	if !ok {
		return []Outcome{OrderNotFound{ID: r.ID}}
	}
	return []Outcome{Cancelled{ID: r.ID, Ts: o.Ts}}
}

// CurrentSpread returns the best bid and best ask prices. ok is false when
// either side is empty.
func (ob *Orderbook[A]) CurrentSpread() (bid, ask float64, ok bool) {
	bestBid := ob.bidQueue.peekBest()
	bestAsk := ob.askQueue.peekBest()
	if bestBid == nil || bestAsk == nil {
		return 0, 0, false
	}
	return bestBid.Price, bestAsk.Price, true
}

// AskQueue returns the ask side's resting orders, best price first, FIFO
// within a level.
func (ob *Orderbook[A]) AskQueue() []OrderIndex { return ob.askQueue.snapshot() }

// BidQueue returns the bid side's resting orders, best price first, FIFO
// within a level.
func (ob *Orderbook[A]) BidQueue() []OrderIndex { return ob.bidQueue.snapshot() }
