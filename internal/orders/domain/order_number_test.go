package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
)

func TestNewOrderNumber(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "ORD-20240101120000-0042", false},
		{"minimum length", "abc", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("x", 31), true},
		{"maximum length", strings.Repeat("x", 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, err := domain.NewOrderNumber(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewOrderNumber(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && number.String() != strings.TrimSpace(tt.value) {
				t.Errorf("expected %q, got %q", tt.value, number.String())
			}
			if err != nil && !domain.IsInvalidArgument(err) {
				t.Errorf("expected InvalidArgument, got %v", err)
			}
		})
	}
}

func TestNumberGeneratorFormat(t *testing.T) {
	number := domain.NewNumberGenerator().Generate()

	if !strings.HasPrefix(number.String(), "ORD-") {
		t.Errorf("expected ORD- prefix, got %q", number.String())
	}
	if len(number.String()) <= 10 {
		t.Errorf("expected length > 10, got %d", len(number.String()))
	}
}

func TestNumberGeneratorDeterministic(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	}
	gen := domain.NewNumberGeneratorWith(clock, func(int) int { return 7 })

	number := gen.Generate()
	if got, want := number.String(), "ORD-20240315093000-0007"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNumberGeneratorNoCollisions(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	}
	next := 0
	gen := domain.NewNumberGeneratorWith(clock, func(n int) int {
		next++
		return next % n
	})

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := gen.Generate().String()
		if seen[number] {
			t.Fatalf("collision after %d generations: %s", i, number)
		}
		seen[number] = true
	}
}
