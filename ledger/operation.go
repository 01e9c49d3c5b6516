package ledger

// OperationKind enumerates the operations a record can request.
type OperationKind int

const (
	OpDeposit OperationKind = iota
	OpWithdraw
	OpDispute
	OpResolve
	OpChargeback
)

// String returns the canonical operation name
func (k OperationKind) String() string {
	switch k {
	case OpDeposit:
		return "deposit"
	case OpWithdraw:
		return "withdraw"
	case OpDispute:
		return "dispute"
	case OpResolve:
		return "resolve"
	case OpChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Operation is a classified record. Amount is only meaningful for deposits
// and withdrawals.
type Operation struct {
	Kind   OperationKind
	Amount float32
}

// Classify converts an operation name and optional amount into an
// Operation. Names are matched exactly; "withdraw" and "withdrawal" are
// synonyms because upstream producers disagree on the spelling.
func Classify(name string, amount *float32) (Operation, error) {
	switch name {
	case "deposit":
		if amount == nil {
			return Operation{}, NewMissingAmountError(name)
		}
		return Operation{Kind: OpDeposit, Amount: *amount}, nil
	case "withdraw", "withdrawal":
		if amount == nil {
			return Operation{}, NewMissingAmountError(name)
		}
		return Operation{Kind: OpWithdraw, Amount: *amount}, nil
	case "dispute":
		return Operation{Kind: OpDispute}, nil
	case "resolve":
		return Operation{Kind: OpResolve}, nil
	case "chargeback":
		return Operation{Kind: OpChargeback}, nil
	default:
		return Operation{}, NewUnknownOperationError(name)
	}
}
