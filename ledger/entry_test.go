package ledger_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/payments/ledger"
)

func TestEntryExecute(t *testing.T) {
	t.Run("Input", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewInputEntry(1, 1, 5)
		assert.Equal(t, ledger.StatusNonExecuted, entry.Status())

		assert.NoError(t, entry.Execute(acc))
		assert.Equal(t, ledger.StatusExecuted, entry.Status())
		assert.Equal(t, float32(5), acc.Available())
	})

	t.Run("OutputWithoutFunds", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewOutputEntry(1, 1, 5)

		assert.NoError(t, entry.Execute(acc))
		assert.Equal(t, ledger.StatusNonExecuted, entry.Status())
		assert.Equal(t, float32(0), acc.Available())
	})

	t.Run("AlreadyExecuted", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewInputEntry(9, 1, 5)
		assert.NoError(t, entry.Execute(acc))

		err := entry.Execute(acc)
		var target *ledger.AlreadyExecutedTransactionError
		assert.True(t, errors.As(err, &target))
		assert.Equal(t, uint32(9), target.GetTransaction())
		assert.Equal(t, float32(5), acc.Available())
	})

	t.Run("AlreadyExecutedWhileDisputed", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewInputEntry(9, 1, 5)
		assert.NoError(t, entry.Execute(acc))
		assert.NoError(t, entry.Dispute(acc))

		err := entry.Execute(acc)
		var target *ledger.AlreadyExecutedTransactionError
		assert.True(t, errors.As(err, &target))
	})
}

func TestEntryDisputeLifecycle(t *testing.T) {
	acc := ledger.NewAccount(1)
	entry := ledger.NewInputEntry(1, 1, 4)
	assert.NoError(t, entry.Execute(acc))

	assert.NoError(t, entry.Dispute(acc))
	assert.Equal(t, ledger.StatusDisputed, entry.Status())
	assert.Equal(t, float32(0), acc.Available())
	assert.Equal(t, float32(4), acc.Held())

	assert.NoError(t, entry.Resolve(acc))
	assert.Equal(t, ledger.StatusExecuted, entry.Status())
	assert.Equal(t, float32(4), acc.Available())
	assert.Equal(t, float32(0), acc.Held())

	// The entry can be disputed again once resolved
	assert.NoError(t, entry.Dispute(acc))
	assert.NoError(t, entry.Chargeback(acc))
	assert.Equal(t, ledger.StatusExecuted, entry.Status())
	assert.True(t, acc.IsLocked())
	assert.Equal(t, float32(0), acc.Total())
}

func TestEntryGuards(t *testing.T) {
	t.Run("DisputeNonExecuted", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewOutputEntry(2, 1, 5)
		assert.NoError(t, entry.Execute(acc))

		err := entry.Dispute(acc)
		var target *ledger.DisputeTransactionError
		assert.True(t, errors.As(err, &target))
		assert.Equal(t, ledger.StatusNonExecuted, target.Status)
	})

	t.Run("DisputeDisputed", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewInputEntry(2, 1, 5)
		assert.NoError(t, entry.Execute(acc))
		assert.NoError(t, entry.Dispute(acc))

		var target *ledger.DisputeTransactionError
		assert.True(t, errors.As(entry.Dispute(acc), &target))
		assert.Equal(t, ledger.StatusDisputed, target.Status)
	})

	t.Run("ResolveExecuted", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewInputEntry(3, 1, 5)
		assert.NoError(t, entry.Execute(acc))

		var target *ledger.ResolveTransactionError
		assert.True(t, errors.As(entry.Resolve(acc), &target))
		assert.Equal(t, float32(5), acc.Available())
	})

	t.Run("ChargebackExecuted", func(t *testing.T) {
		acc := ledger.NewAccount(1)
		entry := ledger.NewInputEntry(4, 1, 5)
		assert.NoError(t, entry.Execute(acc))

		var target *ledger.ChargebackTransactionError
		assert.True(t, errors.As(entry.Chargeback(acc), &target))
		assert.False(t, acc.IsLocked())
	})
}

func TestEntryRefusedDisputeKeepsStatus(t *testing.T) {
	acc := ledger.NewAccount(1)
	entry := ledger.NewInputEntry(1, 1, 5)
	assert.NoError(t, entry.Execute(acc))
	assert.True(t, acc.Withdraw(3))

	// Only 2 available, holding 5 is refused
	assert.NoError(t, entry.Dispute(acc))
	assert.Equal(t, ledger.StatusExecuted, entry.Status())
	assert.Equal(t, float32(2), acc.Available())
	assert.Equal(t, float32(0), acc.Held())
}

func TestEntryStrings(t *testing.T) {
	assert.Equal(t, "input", ledger.EntryInput.String())
	assert.Equal(t, "output", ledger.EntryOutput.String())
	assert.Equal(t, "non-executed", ledger.StatusNonExecuted.String())
	assert.Equal(t, "executed", ledger.StatusExecuted.String())
	assert.Equal(t, "disputed", ledger.StatusDisputed.String())
}
