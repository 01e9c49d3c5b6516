package ledger

import (
	"fmt"

	"github.com/robinvdvleuten/payments/record"
)

// Error types for hard ledger failures. Every one of them aborts the run.
// Refused balance changes are not errors and have no type here.

// recordContext locates an error at the record that triggered it.
type recordContext struct {
	Pos    record.Position // Position in source file (includes filename)
	Tx     uint32
	Client uint16
}

func (c *recordContext) GetPosition() record.Position {
	return c.Pos
}

func (c *recordContext) GetTransaction() uint32 {
	return c.Tx
}

func (c *recordContext) GetClient() uint16 {
	return c.Client
}

func (c *recordContext) locate(rec record.Record) {
	c.Pos = rec.Pos
	c.Tx = rec.Tx
	c.Client = rec.Client
}

// format prefixes message with "filename:line: " when the position is known.
func (c *recordContext) format(message string) string {
	if location := c.Pos.Location(); location != "" {
		return fmt.Sprintf("%s: %s", location, message)
	}
	return message
}

// locator is implemented by all errors embedding recordContext.
type locator interface {
	locate(rec record.Record)
}

// MissingAmountError is returned when a deposit or withdrawal has no amount
type MissingAmountError struct {
	recordContext
	Operation string
}

func (e *MissingAmountError) Error() string {
	return e.format("Invalid transaction: missing amount")
}

// UnknownOperationError is returned for an unrecognized operation name
type UnknownOperationError struct {
	recordContext
	Name string
}

func (e *UnknownOperationError) Error() string {
	return e.format(fmt.Sprintf("Unknown operation '%s'", e.Name))
}

// DuplicatedTransactionError is returned when a deposit or withdrawal reuses
// a transaction id that is already in the ledger
type DuplicatedTransactionError struct {
	recordContext
}

func (e *DuplicatedTransactionError) Error() string {
	return e.format(fmt.Sprintf("Duplicated transaction '%d'", e.Tx))
}

// AlreadyExecutedTransactionError is returned when an executed or disputed
// entry is executed again
type AlreadyExecutedTransactionError struct {
	recordContext
}

func (e *AlreadyExecutedTransactionError) Error() string {
	return e.format(fmt.Sprintf("Transaction '%d' already executed", e.Tx))
}

// DisputeTransactionError is returned when disputing an entry that is not executed
type DisputeTransactionError struct {
	recordContext
	Status EntryStatus // Status of the entry at the time of the dispute
}

func (e *DisputeTransactionError) Error() string {
	return e.format(fmt.Sprintf("Could not dispute transaction '%d'", e.Tx))
}

// ResolveTransactionError is returned when resolving an entry that is not disputed
type ResolveTransactionError struct {
	recordContext
	Status EntryStatus
}

func (e *ResolveTransactionError) Error() string {
	return e.format(fmt.Sprintf("Could not resolve transaction '%d'", e.Tx))
}

// ChargebackTransactionError is returned when charging back an entry that is not disputed
type ChargebackTransactionError struct {
	recordContext
	Status EntryStatus
}

func (e *ChargebackTransactionError) Error() string {
	return e.format(fmt.Sprintf("Could not chargeback transaction '%d'", e.Tx))
}

// Constructor functions for ledger errors.
// The record position is attached by the ledger once the error surfaces.

// NewMissingAmountError creates an error for a deposit or withdrawal without amount.
func NewMissingAmountError(operation string) *MissingAmountError {
	return &MissingAmountError{Operation: operation}
}

// NewUnknownOperationError creates an error for an unrecognized operation name.
func NewUnknownOperationError(name string) *UnknownOperationError {
	return &UnknownOperationError{Name: name}
}

// NewDuplicatedTransactionError creates an error for a reused transaction id.
func NewDuplicatedTransactionError(tx uint32) *DuplicatedTransactionError {
	return &DuplicatedTransactionError{recordContext: recordContext{Tx: tx}}
}

// NewAlreadyExecutedTransactionError creates an error for an entry executed twice.
func NewAlreadyExecutedTransactionError(tx uint32) *AlreadyExecutedTransactionError {
	return &AlreadyExecutedTransactionError{recordContext: recordContext{Tx: tx}}
}

// NewDisputeTransactionError creates an error for a dispute of an entry in the wrong state.
func NewDisputeTransactionError(tx uint32, status EntryStatus) *DisputeTransactionError {
	return &DisputeTransactionError{recordContext: recordContext{Tx: tx}, Status: status}
}

// NewResolveTransactionError creates an error for a resolve of an entry in the wrong state.
func NewResolveTransactionError(tx uint32, status EntryStatus) *ResolveTransactionError {
	return &ResolveTransactionError{recordContext: recordContext{Tx: tx}, Status: status}
}

// NewChargebackTransactionError creates an error for a chargeback of an entry in the wrong state.
func NewChargebackTransactionError(tx uint32, status EntryStatus) *ChargebackTransactionError {
	return &ChargebackTransactionError{recordContext: recordContext{Tx: tx}, Status: status}
}

// locateError attaches the record context to a ledger error. Other errors
// are returned unchanged.
func locateError(err error, rec record.Record) error {
	if l, ok := err.(locator); ok {
		l.locate(rec)
	}
	return err
}
