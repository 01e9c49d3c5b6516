package ledger

// EntryKind tells whether an entry moved funds into or out of an account.
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntryOutput
)

// String returns the string representation of the entry kind
func (k EntryKind) String() string {
	switch k {
	case EntryInput:
		return "input"
	case EntryOutput:
		return "output"
	default:
		return "unknown"
	}
}

// EntryStatus is the position of an entry in its dispute lifecycle.
//
//	NonExecuted --execute--> Executed --dispute--> Disputed
//	                            ^                      |
//	                            +--resolve/chargeback--+
type EntryStatus int

const (
	StatusNonExecuted EntryStatus = iota
	StatusExecuted
	StatusDisputed
)

// String returns the string representation of the entry status
func (s EntryStatus) String() string {
	switch s {
	case StatusNonExecuted:
		return "non-executed"
	case StatusExecuted:
		return "executed"
	case StatusDisputed:
		return "disputed"
	default:
		return "unknown"
	}
}

// Entry is a deposit or withdrawal recorded in the ledger together with its
// dispute state. Entries never own the account they affect; the account is
// handed in by the caller on every transition.
type Entry struct {
	ID     uint32
	Kind   EntryKind
	Amount float32
	Client uint16 // Client of the record that created the entry

	status EntryStatus
}

// NewInputEntry creates a non-executed deposit entry.
func NewInputEntry(id uint32, client uint16, amount float32) *Entry {
	return &Entry{ID: id, Kind: EntryInput, Amount: amount, Client: client}
}

// NewOutputEntry creates a non-executed withdrawal entry.
func NewOutputEntry(id uint32, client uint16, amount float32) *Entry {
	return &Entry{ID: id, Kind: EntryOutput, Amount: amount, Client: client}
}

// Status returns the current status of the entry.
func (e *Entry) Status() EntryStatus {
	return e.status
}

// Execute applies the entry to account. The entry becomes executed only if
// the account accepted the deposit or withdrawal; a refusal keeps it
// non-executed without an error.
func (e *Entry) Execute(account *Account) error {
	if e.status != StatusNonExecuted {
		return NewAlreadyExecutedTransactionError(e.ID)
	}

	var ok bool
	switch e.Kind {
	case EntryInput:
		ok = account.Deposit(e.Amount)
	case EntryOutput:
		ok = account.Withdraw(e.Amount)
	}

	if ok {
		e.status = StatusExecuted
	}
	return nil
}

// Dispute holds the entry amount on account.
func (e *Entry) Dispute(account *Account) error {
	if e.status != StatusExecuted {
		return NewDisputeTransactionError(e.ID, e.status)
	}

	if account.Hold(e.Amount) {
		e.status = StatusDisputed
	}
	return nil
}

// Resolve releases the held amount and settles the dispute.
func (e *Entry) Resolve(account *Account) error {
	if e.status != StatusDisputed {
		return NewResolveTransactionError(e.ID, e.status)
	}

	if account.Release(e.Amount) {
		e.status = StatusExecuted
	}
	return nil
}

// Chargeback reverses the disputed amount and freezes account. The entry
// goes back to executed; the frozen account makes it final.
func (e *Entry) Chargeback(account *Account) error {
	if e.status != StatusDisputed {
		return NewChargebackTransactionError(e.ID, e.status)
	}

	if account.Chargeback(e.Amount) {
		e.status = StatusExecuted
	}
	return nil
}
