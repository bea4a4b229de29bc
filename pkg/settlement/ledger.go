// Package settlement implements the value-transfer side of the exchange: an
// in-memory ledger of per-account asset balances that consumes the trades the
// contract reports and moves both legs atomically.
package settlement

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/princesinha19/nearbook/pkg/contract"
)

// Ledger holds balances per account per asset. All methods are safe for
// concurrent use; the contract itself calls Settle serially.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]map[contract.Asset]float64
	log      *zap.SugaredLogger
}

func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		balances: make(map[string]map[contract.Asset]float64),
		log:      logger.Sugar(),
	}
}

func (l *Ledger) account(id string) map[contract.Asset]float64 {
	acc, ok := l.balances[id]
	if !ok {
		acc = make(map[contract.Asset]float64)
		l.balances[id] = acc
	}
	return acc
}

// Deposit credits an account. Amount must be positive.
func (l *Ledger) Deposit(account string, asset contract.Asset, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("deposit amount must be positive: %v", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.account(account)[asset] += amount
	return nil
}

// Withdraw debits an account, rejecting overdrafts.
func (l *Ledger) Withdraw(account string, asset contract.Asset, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("withdraw amount must be positive: %v", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	acc := l.account(account)
	if acc[asset] < amount {
		return fmt.Errorf("insufficient %s balance: have %v, need %v", asset, acc[asset], amount)
	}
	acc[asset] -= amount
	return nil
}

// Balance returns an account's holding of one asset.
func (l *Ledger) Balance(account string, asset contract.Asset) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account][asset]
}

// Transfer moves an amount of one asset between two accounts, rejecting
// overdrafts.
func (l *Ledger) Transfer(from, to string, asset contract.Asset, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(from, to, asset, amount)
}

// transfer moves one leg between two accounts. Caller holds the lock.
func (l *Ledger) transfer(from, to string, asset contract.Asset, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive: %v", amount)
	}
	src := l.account(from)
	if src[asset] < amount {
		return fmt.Errorf("insufficient %s balance on %s: have %v, need %v", asset, from, src[asset], amount)
	}
	src[asset] -= amount
	l.account(to)[asset] += amount
	return nil
}

// Settle executes the value transfer for each reported trade: the seller
// delivers Qty of the order asset, the buyer pays Price*Qty of the price
// asset. A leg that would overdraw fails the trade before either leg moves.
func (l *Ledger) Settle(trades []contract.Trade) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range trades {
		cost := t.Price * t.Qty
		if l.account(t.Seller)[t.OrderAsset] < t.Qty {
			return fmt.Errorf("seller %s short of %s: need %v", t.Seller, t.OrderAsset, t.Qty)
		}
		if l.account(t.Buyer)[t.PriceAsset] < cost {
			return fmt.Errorf("buyer %s short of %s: need %v", t.Buyer, t.PriceAsset, cost)
		}
		if err := l.transfer(t.Seller, t.Buyer, t.OrderAsset, t.Qty); err != nil {
			return err
		}
		if err := l.transfer(t.Buyer, t.Seller, t.PriceAsset, cost); err != nil {
			return err
		}
		l.log.Infow("trade_settled",
			"buyer", t.Buyer, "seller", t.Seller,
			"price", t.Price, "qty", t.Qty)
	}
	return nil
}

var _ contract.Settler = (*Ledger)(nil)
