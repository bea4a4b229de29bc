package contract

import (
	"github.com/princesinha19/nearbook/pkg/util"
)

// Env is the identity/time source the surrounding execution environment
// supplies on every call. The engine treats both values as inert data.
type Env interface {
	SignerAccountID() string
	BlockTimestamp() uint64
}

// HostEnv derives timestamps from a clock and signs calls as a fixed account.
// Real chain hosts substitute their own implementation per call.
type HostEnv struct {
	Signer string
	Clock  util.Clock
}

func (e HostEnv) SignerAccountID() string { return e.Signer }

func (e HostEnv) BlockTimestamp() uint64 {
	return uint64(e.Clock.Now().UnixNano())
}

// StaticEnv is a fixed identity/time pair, used by tests and replay tooling.
type StaticEnv struct {
	Signer string
	Ts     uint64
}

func (e StaticEnv) SignerAccountID() string { return e.Signer }
func (e StaticEnv) BlockTimestamp() uint64  { return e.Ts }
