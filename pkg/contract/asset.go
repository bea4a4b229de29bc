// Package contract hosts the market "smart contract": it converts
// host-supplied identities and timestamps into engine requests, settles the
// resulting fills, persists engine state between calls, and maintains a
// keccak state root over the book.
package contract

import (
	"fmt"

	"github.com/princesinha19/nearbook/pkg/engine"
)

// Asset tags a tradable instrument. The engine only ever compares assets for
// equality; the meaning lives here in the host.
type Asset int8

const (
	USD Asset = iota
	EUR
	BTC
	ETH
)

func (a Asset) String() string {
	switch a {
	case USD:
		return "USD"
	case EUR:
		return "EUR"
	case BTC:
		return "BTC"
	case ETH:
		return "ETH"
	default:
		return "Unknown"
	}
}

// ParseAsset maps a caller-supplied symbol to an Asset.
func ParseAsset(s string) (Asset, error) {
	switch s {
	case "USD":
		return USD, nil
	case "EUR":
		return EUR, nil
	case "BTC":
		return BTC, nil
	case "ETH":
		return ETH, nil
	default:
		return 0, fmt.Errorf("unknown asset %q", s)
	}
}

// ParseSide maps a caller-supplied side name to an engine side.
func ParseSide(s string) (engine.Side, error) {
	switch s {
	case "Bid":
		return engine.Bid, nil
	case "Ask":
		return engine.Ask, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}
