package engine

// State is a plain, fully-owned copy of an engine's entire state: the pair,
// the id counter, and both sides' resting orders in price-then-FIFO order.
// It carries no references into the live book, which makes persistence a pure
// encode/decode contract for the layer that stores it.
type State[A comparable] struct {
	OrderAsset A
	PriceAsset A
	NextID     uint64
	Bids       []Order[A]
	Asks       []Order[A]
}

// Snapshot captures the current state.
func (ob *Orderbook[A]) Snapshot() State[A] {
	return State[A]{
		OrderAsset: ob.orderAsset,
		PriceAsset: ob.priceAsset,
		NextID:     ob.nextID,
		Bids:       ob.bidQueue.orders(),
		Asks:       ob.askQueue.orders(),
	}
}

// RestoreOrderbook rebuilds an engine from a snapshot. Orders are reinserted
// in the snapshot's order, which preserves FIFO priority inside each price
// level exactly.
func RestoreOrderbook[A comparable](s State[A]) *Orderbook[A] {
	ob := NewOrderbook(s.OrderAsset, s.PriceAsset)
	for i := range s.Bids {
		o := s.Bids[i]
		ob.bidQueue.insert(&o)
	}
	for i := range s.Asks {
		o := s.Asks[i]
		ob.askQueue.insert(&o)
	}
	if s.NextID > 0 {
		ob.nextID = s.NextID
		ob.validator.maxSeqID = s.NextID - 1
	}
	return ob
}
