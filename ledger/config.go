package ledger

// Option configures a Ledger.
type Option func(*Ledger)

// WithOwnershipCheck makes disputes, resolves and chargebacks apply only
// when they come from the client that created the transaction. Mismatches
// are ignored like disputes of unknown transactions.
func WithOwnershipCheck() Option {
	return func(l *Ledger) {
		l.ownershipCheck = true
	}
}
