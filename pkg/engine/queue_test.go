package engine

import "testing"

func restingOrder(id uint64, side Side, price, qty float64) *Order[asset] {
	return &Order[asset]{
		ID: id, OrderAsset: btc, PriceAsset: usd,
		Side: side, Price: price, Qty: qty,
		Creator: "alice.near", Ts: id,
	}
}

func TestQueueBestPriceOrdering(t *testing.T) {
	bids := newOrderQueue[asset](Bid)
	bids.insert(restingOrder(1, Bid, 10.0, 1.0))
	bids.insert(restingOrder(2, Bid, 12.0, 1.0))
	bids.insert(restingOrder(3, Bid, 11.0, 1.0))

	if best := bids.peekBest(); best == nil || best.Price != 12.0 {
		t.Fatalf("bid queue best should be highest price, got %+v", best)
	}

	asks := newOrderQueue[asset](Ask)
	asks.insert(restingOrder(4, Ask, 10.0, 1.0))
	asks.insert(restingOrder(5, Ask, 9.0, 1.0))

	if best := asks.peekBest(); best == nil || best.Price != 9.0 {
		t.Fatalf("ask queue best should be lowest price, got %+v", best)
	}
}

func TestQueueFIFOAtSamePrice(t *testing.T) {
	q := newOrderQueue[asset](Bid)
	q.insert(restingOrder(1, Bid, 10.0, 1.0))
	q.insert(restingOrder(2, Bid, 10.0, 2.0))
	q.insert(restingOrder(3, Bid, 10.0, 3.0))

	for want := uint64(1); want <= 3; want++ {
		o := q.popBest()
		if o == nil || o.ID != want {
			t.Fatalf("popBest out of order: got %+v, want id %d", o, want)
		}
	}
	if q.len() != 0 {
		t.Fatalf("queue should be empty, has %d orders", q.len())
	}
}

func TestQueueRemoveMissingID(t *testing.T) {
	q := newOrderQueue[asset](Ask)
	if _, ok := q.remove(42); ok {
		t.Fatal("remove of unknown id must report not found")
	}

	q.insert(restingOrder(1, Ask, 10.0, 1.0))
	if _, ok := q.remove(1); !ok {
		t.Fatal("remove of resting id must succeed")
	}
	if _, ok := q.remove(1); ok {
		t.Fatal("second remove must report not found")
	}
	if best := q.peekBest(); best != nil {
		t.Fatalf("emptied price level must be dropped, got %+v", best)
	}
}

func TestQueueRemoveMiddleOfLevel(t *testing.T) {
	q := newOrderQueue[asset](Bid)
	q.insert(restingOrder(1, Bid, 10.0, 1.0))
	q.insert(restingOrder(2, Bid, 10.0, 2.0))
	q.insert(restingOrder(3, Bid, 10.0, 3.0))

	if _, ok := q.remove(2); !ok {
		t.Fatal("remove by id failed")
	}

	snap := q.snapshot()
	if len(snap) != 2 || snap[0].ID != 1 || snap[1].ID != 3 {
		t.Fatalf("FIFO order broken after middle removal: %+v", snap)
	}
}

func TestQueueReduceQtyRemovesAtZero(t *testing.T) {
	q := newOrderQueue[asset](Ask)
	q.insert(restingOrder(1, Ask, 10.0, 1.0))

	q.reduceQty(1, 0.4)
	if best := q.peekBest(); best == nil || best.Qty != 0.6 {
		t.Fatalf("qty not reduced in place: %+v", best)
	}

	q.reduceQty(1, 0.6)
	if q.len() != 0 {
		t.Fatal("order at exactly zero qty must be removed, never left dangling")
	}
}

func TestQueueSnapshotPriceThenFIFO(t *testing.T) {
	q := newOrderQueue[asset](Ask)
	q.insert(restingOrder(1, Ask, 11.0, 1.0))
	q.insert(restingOrder(2, Ask, 10.0, 1.0))
	q.insert(restingOrder(3, Ask, 10.0, 2.0))
	q.insert(restingOrder(4, Ask, 12.0, 1.0))

	snap := q.snapshot()
	wantIDs := []uint64{2, 3, 1, 4}
	if len(snap) != len(wantIDs) {
		t.Fatalf("snapshot length = %d, want %d", len(snap), len(wantIDs))
	}
	for i, want := range wantIDs {
		if snap[i].ID != want {
			t.Errorf("snapshot[%d].ID = %d, want %d", i, snap[i].ID, want)
		}
	}
}
