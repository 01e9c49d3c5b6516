package record_test

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/payments/record"
)

func TestReaderDecodesRecords(t *testing.T) {
	source := `type, client, tx, amount
deposit, 1, 1, 1.5
withdrawal, 2, 2, 0.25
dispute, 1, 1,
resolve,1,1
`
	r := record.NewReader(strings.NewReader(source), record.WithFilename("input.csv"))
	records, err := r.ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 4, len(records))

	assert.Equal(t, "deposit", records[0].Type)
	assert.Equal(t, uint16(1), records[0].Client)
	assert.Equal(t, uint32(1), records[0].Tx)
	assert.True(t, records[0].HasAmount())
	assert.Equal(t, float32(1.5), *records[0].Amount)
	assert.Equal(t, "input.csv", records[0].Pos.Filename)
	assert.Equal(t, 2, records[0].Pos.Line)

	assert.Equal(t, "withdrawal", records[1].Type)
	assert.Equal(t, uint16(2), records[1].Client)
	assert.Equal(t, float32(0.25), records[1].AmountOr(0))

	assert.Equal(t, "dispute", records[2].Type)
	assert.False(t, records[2].HasAmount())

	assert.Equal(t, "resolve", records[3].Type)
	assert.False(t, records[3].HasAmount())
	assert.Equal(t, 5, records[3].Pos.Line)
}

func TestReaderColumnOrder(t *testing.T) {
	t.Run("ArbitraryOrder", func(t *testing.T) {
		source := "amount,tx,type,client\n2.0,7,deposit,3\n"
		records, err := record.NewReader(strings.NewReader(source)).ReadAll()
		assert.NoError(t, err)
		assert.Equal(t, 1, len(records))
		assert.Equal(t, uint32(7), records[0].Tx)
		assert.Equal(t, uint16(3), records[0].Client)
		assert.Equal(t, float32(2), *records[0].Amount)
	})

	t.Run("WithoutAmountColumn", func(t *testing.T) {
		source := "type,client,tx\ndispute,1,1\n"
		records, err := record.NewReader(strings.NewReader(source)).ReadAll()
		assert.NoError(t, err)
		assert.Equal(t, 1, len(records))
		assert.False(t, records[0].HasAmount())
	})
}

func TestReaderEmptyInput(t *testing.T) {
	r := record.NewReader(strings.NewReader(""))
	_, err := r.Read()
	assert.Equal(t, io.EOF, err)

	r = record.NewReader(strings.NewReader("type,client,tx,amount\n"))
	_, err = r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		field  string
		line   int
		want   string
	}{
		{"UnknownColumn", "type,client,tx,amount,memo\n", "", 1, `unknown field "memo"`},
		{"DuplicateColumn", "type,client,tx,tx\n", "", 1, `duplicate field "tx"`},
		{"MissingColumn", "type,client,amount\n", "", 1, `missing field "tx"`},
		{"InvalidTx", "type,client,tx,amount\ndeposit,1,abc,1.0\n", "tx", 2, `invalid tx "abc"`},
		{"NegativeTx", "type,client,tx,amount\ndeposit,1,-1,1.0\n", "tx", 2, `invalid tx "-1"`},
		{"ClientOutOfRange", "type,client,tx,amount\ndeposit,70000,1,1.0\n", "client", 2, `invalid client "70000"`},
		{"NegativeAmount", "type,client,tx,amount\ndeposit,1,1,-1.0\n", "amount", 2, "amount must not be negative"},
		{"NotANumber", "type,client,tx,amount\ndeposit,1,1,NaN\n", "amount", 2, `invalid amount "NaN"`},
		{"AmountOverflow", "type,client,tx,amount\ndeposit,1,1,1e40\n", "amount", 2, "single precision"},
		{"TooManyFields", "type,client,tx\ndeposit,1,1,1.0\n", "", 2, "too many fields"},
		{"UnterminatedQuote", "type,client,tx,amount\n\"deposit,1,1,1.0\n", "", 0, "quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record.NewReader(strings.NewReader(tt.source), record.WithFilename("bad.csv"))
			_, err := r.ReadAll()
			assert.Error(t, err)

			var parseErr *record.ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.field, parseErr.Field)
			if tt.line > 0 {
				assert.Equal(t, tt.line, parseErr.GetPosition().Line)
			}
			assert.Contains(t, err.Error(), "bad.csv:")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReaderKeepsEmptyType(t *testing.T) {
	records, err := record.NewReader(strings.NewReader("type,client,tx,amount\n,1,1,1.0\n")).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(records))
	assert.Equal(t, "", records[0].Type)
	assert.Equal(t, uint32(1), records[0].Tx)
}

func TestReaderSmallBuffer(t *testing.T) {
	var b strings.Builder
	b.WriteString("type,client,tx,amount\n")
	for i := 0; i < 100; i++ {
		b.WriteString("deposit,1,")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(",1.0\n")
	}

	records, err := record.NewReader(strings.NewReader(b.String()), record.WithBufferSize(16)).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 100, len(records))
}

func TestParseAmount(t *testing.T) {
	amount, err := record.ParseAmount("")
	assert.NoError(t, err)
	assert.True(t, amount == nil)

	amount, err = record.ParseAmount("0.5")
	assert.NoError(t, err)
	assert.Equal(t, float32(0.5), *amount)

	amount, err = record.ParseAmount("0")
	assert.NoError(t, err)
	assert.Equal(t, float32(0), *amount)

	_, err = record.ParseAmount("1,5")
	assert.Error(t, err)
}
