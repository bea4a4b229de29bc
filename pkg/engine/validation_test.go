package engine

import (
	"errors"
	"testing"
)

func TestValidateNewOrders(t *testing.T) {
	v := newRequestValidator(btc, usd)
	v.maxSeqID = 3

	tests := []struct {
		name    string
		req     OrderRequest[asset]
		wantErr error
	}{
		{
			name: "valid limit",
			req:  NewLimitOrderRequest(btc, usd, Bid, 10.0, 1.0, "alice.near", 1),
		},
		{
			name: "valid market",
			req:  NewMarketOrderRequest(btc, usd, Ask, 1.0, "alice.near", 1),
		},
		{
			name:    "wrong order asset",
			req:     NewLimitOrderRequest(asset("ETH"), usd, Bid, 10.0, 1.0, "alice.near", 1),
			wantErr: ErrBadOrderAsset,
		},
		{
			name:    "wrong price asset",
			req:     NewLimitOrderRequest(btc, asset("EUR"), Bid, 10.0, 1.0, "alice.near", 1),
			wantErr: ErrBadPriceAsset,
		},
		{
			name:    "zero price",
			req:     NewLimitOrderRequest(btc, usd, Bid, 0, 1.0, "alice.near", 1),
			wantErr: ErrBadPrice,
		},
		{
			name:    "negative qty",
			req:     NewLimitOrderRequest(btc, usd, Bid, 10.0, -1.0, "alice.near", 1),
			wantErr: ErrBadQty,
		},
		{
			name:    "market zero qty",
			req:     NewMarketOrderRequest(btc, usd, Bid, 0, "alice.near", 1),
			wantErr: ErrBadQty,
		},
		{
			name:    "empty creator",
			req:     NewLimitOrderRequest(btc, usd, Bid, 10.0, 1.0, "", 1),
			wantErr: ErrBadCreator,
		},
		{
			name: "valid amend",
			req:  AmendOrderRequest[asset](2, Bid, 10.0, 1.0, 1),
		},
		{
			name:    "amend id above range",
			req:     AmendOrderRequest[asset](4, Bid, 10.0, 1.0, 1),
			wantErr: ErrBadSeqID,
		},
		{
			name:    "amend id below range",
			req:     AmendOrderRequest[asset](0, Bid, 10.0, 1.0, 1),
			wantErr: ErrBadSeqID,
		},
		{
			name:    "amend zero price",
			req:     AmendOrderRequest[asset](2, Bid, 0, 1.0, 1),
			wantErr: ErrBadPrice,
		},
		{
			name:    "amend zero qty",
			req:     AmendOrderRequest[asset](2, Bid, 10.0, 0, 1),
			wantErr: ErrBadQty,
		},
		{
			name: "valid cancel",
			req:  LimitOrderCancelRequest[asset](3, Ask),
		},
		{
			name:    "cancel id out of range",
			req:     LimitOrderCancelRequest[asset](9, Ask),
			wantErr: ErrBadSeqID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.validate(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatorRangeTracksAssignedIDs(t *testing.T) {
	ob := newTestBook()

	// nothing assigned yet: every cancel id is out of range
	out := ob.ProcessOrder(LimitOrderCancelRequest[asset](1, Bid))
	if _, ok := out[0].(ValidationFailed); !ok {
		t.Fatalf("expected ValidationFailed before any id is assigned, got %T", out[0])
	}

	ob.ProcessOrder(limit(Bid, 10.0, 1.0)) // id 1

	out = ob.ProcessOrder(LimitOrderCancelRequest[asset](1, Bid))
	if _, ok := out[0].(Cancelled); !ok {
		t.Fatalf("expected Cancelled, got %T", out[0])
	}
}
