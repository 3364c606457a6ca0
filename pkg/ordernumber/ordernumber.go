package ordernumber

import (
	"crypto/rand"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	prefix         = "CHX"
	suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLength   = 9
)

// Generator produces human-readable order numbers of the form
// CHX-<unix-millis>-<base36 suffix>. The timestamp keeps numbers roughly
// sortable; the suffix guards against same-millisecond submissions. Collisions
// are still possible, so storage enforces uniqueness and callers regenerate on
// conflict.
type Generator struct {
	now    func() time.Time
	random io.Reader
}

// Option overrides a Generator dependency.
type Option func(*Generator)

// WithClock swaps the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRandom swaps the randomness source.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.random = r
		}
	}
}

// New builds a Generator backed by the wall clock and crypto/rand.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a fresh order number.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))
	b.WriteByte('-')
	b.WriteString(g.suffix())
	return b.String()
}

func (g *Generator) suffix() string {
	buf := make([]byte, suffixLength)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock so an order can still be placed.
		nanos := strconv.FormatInt(g.now().UnixNano(), 36)
		return strings.ToUpper(nanos[len(nanos)-suffixLength:])
	}
	for i, c := range buf {
		buf[i] = suffixAlphabet[int(c)%len(suffixAlphabet)]
	}
	return string(buf)
}
