// Package ledger replays payment operations against client accounts and
// produces the resulting balances.
//
// The ledger consumes records in arrival order. Deposits and withdrawals
// create entries; disputes, resolves and chargebacks move an entry through
// its dispute lifecycle and shift funds between the available and held
// pools of an account. A chargeback freezes the account for good.
//
// Processing is fail-fast: a malformed record, a reused transaction id or a
// dispute transition from the wrong state stops the run with a typed error.
// Requests the account cannot honour (insufficient funds, frozen account)
// and disputes of unknown transactions are silently ignored.
//
// Example usage:
//
//	r := record.NewReader(file, record.WithFilename("transactions.csv"))
//
//	l := ledger.New()
//	if err := l.Process(ctx, r); err != nil {
//	    var dup *ledger.DuplicatedTransactionError
//	    if errors.As(err, &dup) {
//	        fmt.Println("duplicated transaction", dup.Tx)
//	    }
//	    return err
//	}
//
//	for _, s := range l.Snapshots() {
//	    fmt.Println(s.Client, s.Available, s.Held, s.Total, s.Locked)
//	}
package ledger

import (
	"context"
	"fmt"
	"io"

	"github.com/robinvdvleuten/payments/record"
	"github.com/robinvdvleuten/payments/telemetry"
)

// Source yields records until it returns io.EOF.
type Source interface {
	Read() (record.Record, error)
}

// Ledger owns all accounts and entries of a single run. It is not safe for
// concurrent use; create a fresh ledger per run.
type Ledger struct {
	accounts map[uint16]*Account
	entries  map[uint32]*Entry
	stats    Stats

	ownershipCheck bool
}

// New creates a new empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{
		accounts: make(map[uint16]*Account),
		entries:  make(map[uint32]*Entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Process applies every record of src in order. It stops at the first
// decoding or ledger error and returns it.
func (l *Ledger) Process(ctx context.Context, src Source) error {
	timer := telemetry.StartTimer(ctx, "ledger.process")
	applied := 0
	defer func() {
		timer.Count(applied)
		timer.End()
	}()

	for {
		// Check for cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := src.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := l.Apply(rec); err != nil {
			return err
		}
		applied++
	}
}

// MustProcess is like Process but panics on error. Intended for tests.
func (l *Ledger) MustProcess(ctx context.Context, src Source) {
	if err := l.Process(ctx, src); err != nil {
		panic(fmt.Sprintf("ledger: %v", err))
	}
}

// Apply applies a single record.
func (l *Ledger) Apply(rec record.Record) error {
	account := l.account(rec.Client)

	op, err := Classify(rec.Type, rec.Amount)
	if err != nil {
		return locateError(err, rec)
	}

	if err := l.dispatch(account, rec, op); err != nil {
		return locateError(err, rec)
	}

	l.stats.add(op.Kind)
	return nil
}

func (l *Ledger) dispatch(account *Account, rec record.Record, op Operation) error {
	entry, exists := l.entries[rec.Tx]

	switch op.Kind {
	case OpDeposit:
		if exists {
			return NewDuplicatedTransactionError(rec.Tx)
		}
		return l.execute(account, NewInputEntry(rec.Tx, rec.Client, op.Amount))

	case OpWithdraw:
		if exists {
			return NewDuplicatedTransactionError(rec.Tx)
		}
		return l.execute(account, NewOutputEntry(rec.Tx, rec.Client, op.Amount))

	case OpDispute:
		if !l.targets(entry, exists, rec) {
			return nil
		}
		return entry.Dispute(account)

	case OpResolve:
		if !l.targets(entry, exists, rec) {
			return nil
		}
		return entry.Resolve(account)

	case OpChargeback:
		if !l.targets(entry, exists, rec) {
			return nil
		}
		return entry.Chargeback(account)
	}

	return nil
}

// execute runs a new entry and records it, whether or not the account
// accepted it.
func (l *Ledger) execute(account *Account, entry *Entry) error {
	if err := entry.Execute(account); err != nil {
		return err
	}
	l.entries[entry.ID] = entry
	return nil
}

// targets reports whether a dispute-type record applies to entry. Unknown
// entries are skipped; with the ownership check enabled, so are entries
// created by another client.
func (l *Ledger) targets(entry *Entry, exists bool, rec record.Record) bool {
	if !exists {
		return false
	}
	if l.ownershipCheck && entry.Client != rec.Client {
		return false
	}
	return true
}

// account returns the account for id, creating it on first use.
func (l *Ledger) account(id uint16) *Account {
	acc, ok := l.accounts[id]
	if !ok {
		acc = NewAccount(id)
		l.accounts[id] = acc
	}
	return acc
}

// GetAccount returns an account by client id
func (l *Ledger) GetAccount(id uint16) (*Account, bool) {
	acc, ok := l.accounts[id]
	return acc, ok
}

// GetEntry returns an entry by transaction id
func (l *Ledger) GetEntry(id uint32) (*Entry, bool) {
	entry, ok := l.entries[id]
	return entry, ok
}

// Accounts returns all accounts
func (l *Ledger) Accounts() map[uint16]*Account {
	return l.accounts
}

// Stats returns counters of the records applied so far.
func (l *Ledger) Stats() Stats {
	return l.stats
}

// Snapshots returns the balances of every known account. The order is
// unspecified.
func (l *Ledger) Snapshots() []Snapshot {
	snapshots := make([]Snapshot, 0, len(l.accounts))
	for _, acc := range l.accounts {
		snapshots = append(snapshots, acc.Snapshot())
	}
	return snapshots
}
