package engine

import (
	"container/heap"

	"github.com/gammazero/deque"
)

// orderQueue holds one side's resting orders: a FIFO deque per price level,
// a heap of level prices for O(1) best-price peeks, and an id→price index so
// cancel/amend never scans the whole side (only the one level it lands in).
type orderQueue[A comparable] struct {
	side   Side
	levels map[float64]*deque.Deque[*Order[A]]
	prices *priceHeap
	ids    map[uint64]float64 // order id -> resting price
}

func newOrderQueue[A comparable](side Side) *orderQueue[A] {
	less := func(a, b float64) bool { return a < b } // asks: lowest first
	if side == Bid {
		less = func(a, b float64) bool { return a > b } // bids: highest first
	}
	return &orderQueue[A]{
		side:   side,
		levels: make(map[float64]*deque.Deque[*Order[A]]),
		prices: newPriceHeap(less),
		ids:    make(map[uint64]float64),
	}
}

func (q *orderQueue[A]) len() int { return len(q.ids) }

// insert appends the order to the FIFO at its price level, creating the level
// if absent, and records it in the id index.
func (q *orderQueue[A]) insert(o *Order[A]) {
	level, ok := q.levels[o.Price]
	if !ok {
		level = &deque.Deque[*Order[A]]{}
		q.levels[o.Price] = level
		heap.Push(q.prices, o.Price)
	}
	level.PushBack(o)
	q.ids[o.ID] = o.Price
}

// peekBest returns the earliest-arrival order at the best price level, or nil
// if the side is empty.
func (q *orderQueue[A]) peekBest() *Order[A] {
	best, ok := q.prices.peek()
	if !ok {
		return nil
	}
	return q.levels[best].Front()
}

// popBest removes and returns the order peekBest would return.
func (q *orderQueue[A]) popBest() *Order[A] {
	best, ok := q.prices.peek()
	if !ok {
		return nil
	}
	level := q.levels[best]
	o := level.PopFront()
	delete(q.ids, o.ID)
	if level.Len() == 0 {
		delete(q.levels, best)
		q.prices.removePrice(best)
	}
	return o
}

// remove deletes the order with the given id. The second return is false when
// the id is not resting on this side; that is a plain not-found signal, not
// an error.
func (q *orderQueue[A]) remove(id uint64) (*Order[A], bool) {
	price, ok := q.ids[id]
	if !ok {
		return nil, false
	}
	level := q.levels[price]
	i := level.Index(func(o *Order[A]) bool { return o.ID == id })
	if i < 0 {
		// index and level disagree; treat as not found rather than panic
		delete(q.ids, id)
		return nil, false
	}
	o := level.Remove(i)
	delete(q.ids, id)
	if level.Len() == 0 {
		delete(q.levels, price)
		q.prices.removePrice(price)
	}
	return o, true
}

// reduceQty decreases a resting order's quantity in place. When the result is
// exactly zero the order is removed; it is never left dangling.
func (q *orderQueue[A]) reduceQty(id uint64, delta float64) {
	price, ok := q.ids[id]
	if !ok {
		return
	}
	level := q.levels[price]
	i := level.Index(func(o *Order[A]) bool { return o.ID == id })
	if i < 0 {
		return
	}
	o := level.At(i)
	o.Qty -= delta
	if o.Qty == 0 {
		q.remove(id)
	}
}

// snapshot produces a read-only view of all resting orders on this side in
// price-then-FIFO order.
func (q *orderQueue[A]) snapshot() []OrderIndex {
	out := make([]OrderIndex, 0, len(q.ids))
	for _, price := range q.prices.sorted() {
		level := q.levels[price]
		for i := 0; i < level.Len(); i++ {
			o := level.At(i)
			out = append(out, OrderIndex{
				ID:    o.ID,
				Side:  o.Side,
				Price: o.Price,
				Qty:   o.Qty,
				Ts:    o.Ts,
			})
		}
	}
	return out
}

// orders returns all resting orders in price-then-FIFO order. Used by state
// snapshots, which must preserve arrival order exactly.
func (q *orderQueue[A]) orders() []Order[A] {
	out := make([]Order[A], 0, len(q.ids))
	for _, price := range q.prices.sorted() {
		level := q.levels[price]
		for i := 0; i < level.Len(); i++ {
			out = append(out, *level.At(i))
		}
	}
	return out
}
