package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princesinha19/nearbook/pkg/contract"
)

func TestDepositWithdraw(t *testing.T) {
	l := NewLedger(nil)

	require.NoError(t, l.Deposit("alice.near", contract.USD, 100))
	assert.Equal(t, 100.0, l.Balance("alice.near", contract.USD))

	require.NoError(t, l.Withdraw("alice.near", contract.USD, 40))
	assert.Equal(t, 60.0, l.Balance("alice.near", contract.USD))

	assert.Error(t, l.Withdraw("alice.near", contract.USD, 1000))
	assert.Error(t, l.Deposit("alice.near", contract.USD, -5))
	assert.Equal(t, 60.0, l.Balance("alice.near", contract.USD))
}

func TestTransferBetweenAccounts(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.Deposit("alice.near", contract.ETH, 3))

	require.NoError(t, l.Transfer("alice.near", "bob.near", contract.ETH, 2))
	assert.Equal(t, 1.0, l.Balance("alice.near", contract.ETH))
	assert.Equal(t, 2.0, l.Balance("bob.near", contract.ETH))

	assert.Error(t, l.Transfer("alice.near", "bob.near", contract.ETH, 5))
}

func TestSettleMovesBothLegs(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.Deposit("buyer.near", contract.USD, 100))
	require.NoError(t, l.Deposit("seller.near", contract.BTC, 2))

	err := l.Settle([]contract.Trade{{
		Buyer: "buyer.near", Seller: "seller.near",
		OrderAsset: contract.BTC, PriceAsset: contract.USD,
		Price: 10.0, Qty: 0.5,
	}})
	require.NoError(t, err)

	assert.Equal(t, 0.5, l.Balance("buyer.near", contract.BTC))
	assert.Equal(t, 95.0, l.Balance("buyer.near", contract.USD))
	assert.Equal(t, 1.5, l.Balance("seller.near", contract.BTC))
	assert.Equal(t, 5.0, l.Balance("seller.near", contract.USD))
}

func TestSettleRejectsOverdraftBeforeMoving(t *testing.T) {
	l := NewLedger(nil)
	require.NoError(t, l.Deposit("buyer.near", contract.USD, 1))
	require.NoError(t, l.Deposit("seller.near", contract.BTC, 1))

	err := l.Settle([]contract.Trade{{
		Buyer: "buyer.near", Seller: "seller.near",
		OrderAsset: contract.BTC, PriceAsset: contract.USD,
		Price: 10.0, Qty: 1.0, // buyer owes 10 USD, has 1
	}})
	require.Error(t, err)

	// neither leg moved
	assert.Equal(t, 1.0, l.Balance("buyer.near", contract.USD))
	assert.Equal(t, 0.0, l.Balance("buyer.near", contract.BTC))
	assert.Equal(t, 1.0, l.Balance("seller.near", contract.BTC))
}
