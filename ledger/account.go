package ledger

// Account holds the funds of a single client. Balances are split into an
// available pool and a held pool; holds back disputed funds.
//
// Every balance-changing method reports whether it was applied. A refusal
// (frozen account, insufficient funds) leaves the account untouched and is
// not an error.
type Account struct {
	ID uint16

	available float32
	held      float32
	frozen    bool
}

// NewAccount creates an active account with empty balances.
func NewAccount(id uint16) *Account {
	return &Account{ID: id}
}

// Deposit credits amount to the available funds.
func (a *Account) Deposit(amount float32) bool {
	if a.frozen {
		return false
	}

	a.available += amount
	return true
}

// Withdraw debits amount from the available funds.
func (a *Account) Withdraw(amount float32) bool {
	if a.frozen || !a.hasAvailable(amount) {
		return false
	}

	a.available -= amount
	return true
}

// Hold moves amount from available to held funds.
func (a *Account) Hold(amount float32) bool {
	if a.frozen || !a.hasAvailable(amount) {
		return false
	}

	a.available -= amount
	a.held += amount
	return true
}

// Release moves amount from held back to available funds.
func (a *Account) Release(amount float32) bool {
	if a.frozen || !a.hasHeld(amount) {
		return false
	}

	a.available += amount
	a.held -= amount
	return true
}

// Chargeback removes amount from the held funds and freezes the account.
// A frozen account refuses every further balance change.
func (a *Account) Chargeback(amount float32) bool {
	if a.frozen || !a.hasHeld(amount) {
		return false
	}

	a.held -= amount
	a.frozen = true
	return true
}

// Available returns the funds available for withdrawal.
func (a *Account) Available() float32 {
	return a.available
}

// Held returns the funds held by open disputes.
func (a *Account) Held() float32 {
	return a.held
}

// Total returns available plus held funds.
func (a *Account) Total() float32 {
	return a.available + a.held
}

// IsLocked returns true once a chargeback froze the account.
func (a *Account) IsLocked() bool {
	return a.frozen
}

func (a *Account) hasAvailable(amount float32) bool {
	return amount <= a.available
}

func (a *Account) hasHeld(amount float32) bool {
	return amount <= a.held
}
