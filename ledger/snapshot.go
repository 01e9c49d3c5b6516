package ledger

// Snapshot is the final state of an account as reported to the outside.
type Snapshot struct {
	Client    uint16
	Available float32
	Held      float32
	Total     float32
	Locked    bool
}

// Snapshot captures the current balances of the account.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Client:    a.ID,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.frozen,
	}
}

// Stats counts the records applied by a ledger, refused ones included.
type Stats struct {
	Records     int `json:"records"`
	Deposits    int `json:"deposits"`
	Withdrawals int `json:"withdrawals"`
	Disputes    int `json:"disputes"`
	Resolves    int `json:"resolves"`
	Chargebacks int `json:"chargebacks"`
}

func (s *Stats) add(kind OperationKind) {
	s.Records++

	switch kind {
	case OpDeposit:
		s.Deposits++
	case OpWithdraw:
		s.Withdrawals++
	case OpDispute:
		s.Disputes++
	case OpResolve:
		s.Resolves++
	case OpChargeback:
		s.Chargebacks++
	}
}
