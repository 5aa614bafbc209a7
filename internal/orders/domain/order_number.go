package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	orderNumberMinLen = 3
	orderNumberMaxLen = 30
	orderNumberPrefix = "ORD"
)

// OrderNumber is the unique business key of an order.
type OrderNumber struct {
	value string
}

// NewOrderNumber validates a caller-supplied order number.
func NewOrderNumber(value string) (OrderNumber, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OrderNumber{}, NewInvalidArgument("order number required")
	}
	if len(trimmed) < orderNumberMinLen || len(trimmed) > orderNumberMaxLen {
		return OrderNumber{}, NewInvalidArgument(fmt.Sprintf("order number must be between %d and %d characters", orderNumberMinLen, orderNumberMaxLen))
	}
	return OrderNumber{value: trimmed}, nil
}

// String returns the raw order number.
func (n OrderNumber) String() string {
	return n.value
}

// IsZero reports whether the order number is unset.
func (n OrderNumber) IsZero() bool {
	return n.value == ""
}

// NumberGenerator produces order numbers of the form
// ORD-<UTC yyyyMMddHHmmss>-<4 random digits>. Clock and random source
// are injectable so tests can pin both.
type NumberGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

// NewNumberGenerator builds a generator backed by the wall clock and a
// time-seeded random source.
func NewNumberGenerator() *NumberGenerator {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &NumberGenerator{
		now:  time.Now,
		intn: rng.Intn,
	}
}

// NewNumberGeneratorWith builds a generator with an explicit clock and
// random source, for deterministic tests.
func NewNumberGeneratorWith(now func() time.Time, intn func(n int) int) *NumberGenerator {
	return &NumberGenerator{now: now, intn: intn}
}

// Generate creates a fresh order number.
func (g *NumberGenerator) Generate() OrderNumber {
	timestamp := g.now().UTC().Format("20060102150405")
	suffix := g.intn(10000)
	return OrderNumber{value: fmt.Sprintf("%s-%s-%04d", orderNumberPrefix, timestamp, suffix)}
}
