package ledger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/robinvdvleuten/payments/generator"
	"github.com/robinvdvleuten/payments/ledger"
	"github.com/robinvdvleuten/payments/record"
)

func generate(b *testing.B, size uint32, opts ...generator.Option) []byte {
	b.Helper()
	var buf bytes.Buffer
	if _, err := generator.New(size, opts...).WriteTo(&buf); err != nil {
		b.Fatal(err)
	}
	return buf.Bytes()
}

func benchmarkReplay(b *testing.B, input []byte, opts ...ledger.Option) {
	b.Helper()
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := ledger.New(opts...)
		if err := l.Process(context.Background(), record.NewReader(bytes.NewReader(input))); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkProcessDeposits replays a single client receiving deposits.
func BenchmarkProcessDeposits(b *testing.B) {
	benchmarkReplay(b, generate(b, 10_000))
}

// BenchmarkProcessMixed replays all five operations across many clients.
func BenchmarkProcessMixed(b *testing.B) {
	benchmarkReplay(b, generate(b, 10_000, generator.WithMixed(100, 1)))
}

// BenchmarkProcessMixedOwnership adds the ownership check to the mixed replay.
func BenchmarkProcessMixedOwnership(b *testing.B) {
	benchmarkReplay(b, generate(b, 10_000, generator.WithMixed(100, 1)), ledger.WithOwnershipCheck())
}

// BenchmarkApply measures applying a deposit to an existing account.
func BenchmarkApply(b *testing.B) {
	l := ledger.New()
	amount := record.Float32(0.5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Apply(record.Record{Type: "deposit", Client: 1, Tx: uint32(i), Amount: amount})
	}
}
