package api

// API request/response types for REST endpoints and WebSocket messages

import "github.com/princesinha19/nearbook/pkg/engine"

// BookSnapshot is the current state of the book, asks and bids best first.
type BookSnapshot struct {
	OrderAsset string              `json:"orderAsset"`
	PriceAsset string              `json:"priceAsset"`
	Asks       []engine.OrderIndex `json:"asks"`
	Bids       []engine.OrderIndex `json:"bids"`
	StateRoot  string              `json:"stateRoot"`
	Timestamp  int64               `json:"timestamp"` // Unix milliseconds
}

// SpreadInfo mirrors the contract convention: best ask and best bid, zeros
// when either side is empty.
type SpreadInfo struct {
	Ask float64 `json:"ask"`
	Bid float64 `json:"bid"`
}

// SubmitOrderRequest is the POST body for new orders.
type SubmitOrderRequest struct {
	Type  string  `json:"type"`  // "Limit" or "Market"
	Side  string  `json:"side"`  // "Bid" or "Ask"
	Price float64 `json:"price"` // ignored for market orders
	Qty   float64 `json:"qty"`
}

// CancelOrderRequest is the POST body for cancels.
type CancelOrderRequest struct {
	ID   uint64 `json:"id"`
	Side string `json:"side"`
}

// AmendOrderRequest is the POST body for amends.
type AmendOrderRequest struct {
	ID    uint64  `json:"id"`
	Side  string  `json:"side"`
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

// OutcomeView is the JSON rendering of one engine outcome record.
type OutcomeView struct {
	Kind      string  `json:"kind"`
	OK        bool    `json:"ok"`
	ID        uint64  `json:"id,omitempty"`
	Side      string  `json:"side,omitempty"`
	OrderType string  `json:"orderType,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Qty       float64 `json:"qty,omitempty"`
	Creator   string  `json:"creator,omitempty"`
	Ts        uint64  `json:"ts,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// BalancesInfo lists one account's holdings.
type BalancesInfo struct {
	Account  string             `json:"account"`
	Balances map[string]float64 `json:"balances"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// viewOutcome flattens an engine outcome into its JSON form. The type switch
// is exhaustive over the engine's outcome variants.
func viewOutcome(o engine.Outcome) OutcomeView {
	switch e := o.(type) {
	case engine.Accepted:
		return OutcomeView{Kind: "Accepted", OK: true, ID: e.ID, OrderType: e.OrderType.String(), Creator: e.Creator, Ts: e.Ts}
	case engine.Filled:
		return OutcomeView{Kind: "Filled", OK: true, ID: e.OrderID, Side: e.Side.String(), OrderType: e.OrderType.String(), Price: e.Price, Qty: e.Qty, Creator: e.Creator, Ts: e.Ts}
	case engine.PartiallyFilled:
		return OutcomeView{Kind: "PartiallyFilled", OK: true, ID: e.OrderID, Side: e.Side.String(), OrderType: e.OrderType.String(), Price: e.Price, Qty: e.Qty, Creator: e.Creator, Ts: e.Ts}
	case engine.Amended:
		return OutcomeView{Kind: "Amended", OK: true, ID: e.ID, Price: e.Price, Qty: e.Qty, Ts: e.Ts}
	case engine.Cancelled:
		return OutcomeView{Kind: "Cancelled", OK: true, ID: e.ID, Ts: e.Ts}
	case engine.ValidationFailed:
		return OutcomeView{Kind: "ValidationFailed", Reason: e.Reason.Error()}
	case engine.OrderNotFound:
		return OutcomeView{Kind: "OrderNotFound", ID: e.ID, Reason: "order not found"}
	case engine.NoMatch:
		return OutcomeView{Kind: "NoMatch", ID: e.ID, Reason: "no matching liquidity"}
	default:
		return OutcomeView{Kind: "Unknown"}
	}
}

func viewOutcomes(out []engine.Outcome) []OutcomeView {
	views := make([]OutcomeView, len(out))
	for i, o := range out {
		views[i] = viewOutcome(o)
	}
	return views
}
