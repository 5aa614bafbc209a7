package domain_test

import (
	"testing"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/shopspring/decimal"
)

func TestNewOrderItem(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		product string
		amount  int
		price   string
		wantErr bool
	}{
		{"valid", "p1", "widget", 2, "9.99", false},
		{"empty id", "", "widget", 2, "9.99", true},
		{"whitespace id", "  ", "widget", 2, "9.99", true},
		{"empty name", "p1", "", 2, "9.99", true},
		{"zero amount", "p1", "widget", 0, "9.99", true},
		{"negative amount", "p1", "widget", -1, "9.99", true},
		{"zero price", "p1", "widget", 2, "0", true},
		{"negative price", "p1", "widget", 2, "-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewOrderItem(tt.id, tt.product, tt.amount, decimal.RequireFromString(tt.price))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOrderItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderItemTotalPrice(t *testing.T) {
	item, err := domain.NewOrderItem("p1", "widget", 3, decimal.RequireFromString("19.99"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if want := decimal.RequireFromString("59.97"); !item.TotalPrice().Equal(want) {
		t.Errorf("expected total %s, got %s", want, item.TotalPrice())
	}
}

func TestOrderItemTrimsFields(t *testing.T) {
	item, err := domain.NewOrderItem("  p1  ", "  widget  ", 1, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if item.ProductID() != "p1" || item.ProductName() != "widget" {
		t.Errorf("fields not trimmed: %q %q", item.ProductID(), item.ProductName())
	}
}

func TestNewInvoiceAddress(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"valid", "1 Main Street", "1 Main Street", false},
		{"trims whitespace", "  1 Main Street  ", "1 Main Street", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, err := domain.NewInvoiceAddress(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewInvoiceAddress(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && address.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, address.String())
			}
		})
	}
}
