package tests

import (
	"math/rand"
	"testing"

	"github.com/princesinha19/nearbook/pkg/engine"
)

func prefilledBook(levels int) *engine.Orderbook[string] {
	ob := engine.NewOrderbook[string]("BTC", "USD")
	for i := 0; i < levels; i++ {
		ob.ProcessOrder(engine.NewLimitOrderRequest("BTC", "USD", engine.Bid, 1000-float64(i), 100, "maker.near", uint64(i)))
		ob.ProcessOrder(engine.NewLimitOrderRequest("BTC", "USD", engine.Ask, 1100+float64(i), 100, "maker.near", uint64(i)))
	}
	return ob
}

func BenchmarkLimitPlace(b *testing.B) {
	ob := prefilledBook(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Deep in the book so nothing crosses; measures pure insertion.
		price := 500 - float64(i%400)
		ob.ProcessOrder(engine.NewLimitOrderRequest("BTC", "USD", engine.Bid, price, 10, "bench.near", uint64(i)))
	}
}

func BenchmarkMarketSweep(b *testing.B) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		ob := prefilledBook(50)
		b.StartTimer()
		ob.ProcessOrder(engine.NewMarketOrderRequest("BTC", "USD", engine.Ask, 2000, "taker.near", 1))
		b.StopTimer()
	}
}

func BenchmarkMixedFlow(b *testing.B) {
	ob := prefilledBook(100)
	rng := rand.New(rand.NewSource(42))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := engine.Bid
		if rng.Intn(2) == 1 {
			side = engine.Ask
		}
		price := 1000 + rng.Float64()*100
		ob.ProcessOrder(engine.NewLimitOrderRequest("BTC", "USD", side, price, float64(1+rng.Intn(10)), "bench.near", uint64(i)))
	}
}
