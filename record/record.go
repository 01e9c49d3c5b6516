// Package record decodes and encodes the CSV record stream consumed by the
// payments ledger.
//
// A record stream starts with a header naming its columns. The accepted
// columns are "type", "client", "tx" and "amount"; the first three are
// required, "amount" may be left out entirely or left empty on rows that
// don't need it:
//
//	type,       client, tx, amount
//	deposit,         1,  1,    5.0
//	withdrawal,      1,  2,    3.0
//	dispute,         1,  1,
//
// Example usage:
//
//	r := record.NewReader(file, record.WithFilename("transactions.csv"))
//	for {
//	    rec, err := r.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(rec.Type, rec.Tx, rec.Client)
//	}
package record

// Column names of a record stream.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

// Header is the canonical column order written by Writer.
var Header = []string{ColumnType, ColumnClient, ColumnTx, ColumnAmount}

// Record is a single decoded row of the stream. The operation name is kept
// as raw text; classifying it is up to the ledger.
type Record struct {
	Type   string
	Tx     uint32
	Client uint16
	Amount *float32
	Pos    Position
}

// HasAmount reports whether the record carries an amount.
func (r Record) HasAmount() bool {
	return r.Amount != nil
}

// AmountOr returns the amount or def when the record has none.
func (r Record) AmountOr(def float32) float32 {
	if r.Amount == nil {
		return def
	}
	return *r.Amount
}

// Float32 returns a pointer to v. Handy for building records by hand.
func Float32(v float32) *float32 {
	return &v
}
