package ledger_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/payments/ledger"
	"github.com/robinvdvleuten/payments/record"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		amount *float32
		want   ledger.Operation
	}{
		{"deposit", record.Float32(1.5), ledger.Operation{Kind: ledger.OpDeposit, Amount: 1.5}},
		{"withdraw", record.Float32(2), ledger.Operation{Kind: ledger.OpWithdraw, Amount: 2}},
		{"withdrawal", record.Float32(2), ledger.Operation{Kind: ledger.OpWithdraw, Amount: 2}},
		{"dispute", nil, ledger.Operation{Kind: ledger.OpDispute}},
		{"resolve", nil, ledger.Operation{Kind: ledger.OpResolve}},
		{"chargeback", nil, ledger.Operation{Kind: ledger.OpChargeback}},
		// Amounts on dispute-type operations are ignored
		{"dispute", record.Float32(3), ledger.Operation{Kind: ledger.OpDispute}},
		{"chargeback", record.Float32(3), ledger.Operation{Kind: ledger.OpChargeback}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := ledger.Classify(tt.name, tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, op)
		})
	}
}

func TestClassifyMissingAmount(t *testing.T) {
	for _, name := range []string{"deposit", "withdraw", "withdrawal"} {
		t.Run(name, func(t *testing.T) {
			_, err := ledger.Classify(name, nil)
			var target *ledger.MissingAmountError
			assert.True(t, errors.As(err, &target))
			assert.Equal(t, name, target.Operation)
			assert.Equal(t, "Invalid transaction: missing amount", err.Error())
		})
	}
}

func TestClassifyUnknownOperation(t *testing.T) {
	for _, name := range []string{"Deposit", "transfer", "", "withdrawals"} {
		t.Run(name, func(t *testing.T) {
			_, err := ledger.Classify(name, record.Float32(1))
			var target *ledger.UnknownOperationError
			assert.True(t, errors.As(err, &target))
			assert.Equal(t, name, target.Name)
		})
	}
}

func TestOperationKindString(t *testing.T) {
	assert.Equal(t, "deposit", ledger.OpDeposit.String())
	assert.Equal(t, "withdraw", ledger.OpWithdraw.String())
	assert.Equal(t, "dispute", ledger.OpDispute.String())
	assert.Equal(t, "resolve", ledger.OpResolve.String())
	assert.Equal(t, "chargeback", ledger.OpChargeback.String())
}
