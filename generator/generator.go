// Package generator produces synthetic transaction files for load testing
// and demos.
//
// By default it writes a run of deposits for a single client, one per
// transaction id starting at zero. The mixed mode emits a reproducible
// random blend of all five operations that always replays without hard
// errors: disputes only target executed deposits, resolves and chargebacks
// only target disputed ones, and locked clients drop out of the pool.
package generator

import (
	"io"
	"math/rand/v2"
	"slices"

	"github.com/robinvdvleuten/payments/record"
)

// DefaultAmount is the deposit amount of the plain generator.
const DefaultAmount float32 = 0.123

// Generator produces records.
type Generator struct {
	size    uint32
	client  uint16
	amount  float32
	mixed   bool
	clients uint16
	seed    uint64

	rng       *rand.Rand
	next      uint32
	open      []target // executed deposits that may be disputed
	disputed  []target
	locked    map[uint16]bool
	available map[uint16]float32 // mirrors the ledger so disputes are never refused unnoticed
	held      map[uint16]float32
}

// target is a deposit the generator can refer back to.
type target struct {
	tx     uint32
	client uint16
	amount float32
}

// Option configures a Generator.
type Option func(*Generator)

// WithClient sets the client of the plain generator.
func WithClient(client uint16) Option {
	return func(g *Generator) {
		g.client = client
	}
}

// WithAmount sets the deposit amount of the plain generator.
func WithAmount(amount float32) Option {
	return func(g *Generator) {
		g.amount = amount
	}
}

// WithMixed switches to a random mix of operations over clients 1..clients,
// drawn from a generator seeded with seed.
func WithMixed(clients uint16, seed uint64) Option {
	return func(g *Generator) {
		g.mixed = true
		g.clients = max(clients, 1)
		g.seed = seed
	}
}

// New creates a generator for size records.
func New(size uint32, opts ...Option) *Generator {
	g := &Generator{
		size:   size,
		client: 1,
		amount: DefaultAmount,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.rng = rand.New(rand.NewPCG(g.seed, g.seed))
	g.locked = make(map[uint16]bool)
	g.available = make(map[uint16]float32)
	g.held = make(map[uint16]float32)
	return g
}

// Next returns the next record. It returns false once size records have
// been produced.
func (g *Generator) Next() (record.Record, bool) {
	if g.next >= g.size {
		return record.Record{}, false
	}
	tx := g.next
	g.next++

	if !g.mixed {
		return record.Record{
			Type:   "deposit",
			Tx:     tx,
			Client: g.client,
			Amount: record.Float32(g.amount),
		}, true
	}

	return g.mixedRecord(tx), true
}

// WriteTo writes all remaining records as CSV.
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writer := record.NewWriter(cw)
	for {
		rec, ok := g.Next()
		if !ok {
			break
		}
		if err := writer.Write(rec); err != nil {
			return cw.n, err
		}
	}
	err := writer.Flush()
	return cw.n, err
}

func (g *Generator) mixedRecord(tx uint32) record.Record {
	roll := g.rng.IntN(100)

	switch {
	case roll < 10 && len(g.open) > 0:
		i := g.rng.IntN(len(g.open))
		t := g.open[i]
		// A refused dispute leaves the deposit open for a later attempt.
		if t.amount <= g.available[t.client] {
			g.open = slices.Delete(g.open, i, i+1)
			g.available[t.client] -= t.amount
			g.held[t.client] += t.amount
			g.disputed = append(g.disputed, t)
		}
		return record.Record{Type: "dispute", Tx: t.tx, Client: t.client}

	case roll < 16 && len(g.disputed) > 0:
		t := g.take(&g.disputed)
		if t.amount <= g.held[t.client] {
			g.held[t.client] -= t.amount
			g.available[t.client] += t.amount
		}
		return record.Record{Type: "resolve", Tx: t.tx, Client: t.client}

	case roll < 18 && len(g.disputed) > 0:
		t := g.take(&g.disputed)
		if t.amount <= g.held[t.client] {
			g.held[t.client] -= t.amount
			g.lock(t.client)
		}
		return record.Record{Type: "chargeback", Tx: t.tx, Client: t.client}

	case roll < 40:
		client := g.randomClient()
		amount := g.randomAmount()
		if !g.locked[client] && amount <= g.available[client] {
			g.available[client] -= amount
		}
		return record.Record{Type: "withdrawal", Tx: tx, Client: client, Amount: record.Float32(amount)}
	}

	client := g.randomClient()
	amount := g.randomAmount()
	if !g.locked[client] {
		g.available[client] += amount
		g.open = append(g.open, target{tx: tx, client: client, amount: amount})
	}
	return record.Record{Type: "deposit", Tx: tx, Client: client, Amount: record.Float32(amount)}
}

// take removes a random target from pool.
func (g *Generator) take(pool *[]target) target {
	i := g.rng.IntN(len(*pool))
	t := (*pool)[i]
	*pool = slices.Delete(*pool, i, i+1)
	return t
}

// lock freezes client and drops its deposits from both pools.
func (g *Generator) lock(client uint16) {
	g.locked[client] = true
	owned := func(t target) bool { return t.client == client }
	g.open = slices.DeleteFunc(g.open, owned)
	g.disputed = slices.DeleteFunc(g.disputed, owned)
}

func (g *Generator) randomClient() uint16 {
	return uint16(g.rng.IntN(int(g.clients))) + 1
}

// randomAmount returns an amount between 0.0001 and 100 with four decimals.
func (g *Generator) randomAmount() float32 {
	return float32(g.rng.IntN(1_000_000)+1) / 10_000
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
