package record_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/payments/record"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := record.NewWriter(&buf)

	assert.NoError(t, w.Write(record.Record{Type: "deposit", Client: 1, Tx: 1, Amount: record.Float32(0.123)}))
	assert.NoError(t, w.Write(record.Record{Type: "dispute", Client: 1, Tx: 1}))
	assert.NoError(t, w.Flush())

	expected := "type,client,tx,amount\ndeposit,1,1,0.123\ndispute,1,1,\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := record.NewWriter(&buf)
	assert.NoError(t, w.Write(record.Record{Type: "withdrawal", Client: 65535, Tx: 4294967295, Amount: record.Float32(2.5)}))
	assert.NoError(t, w.Flush())

	records, err := record.NewReader(strings.NewReader(buf.String())).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(records))
	assert.Equal(t, uint16(65535), records[0].Client)
	assert.Equal(t, uint32(4294967295), records[0].Tx)
	assert.Equal(t, float32(2.5), *records[0].Amount)
}
