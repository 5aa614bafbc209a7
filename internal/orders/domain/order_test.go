package domain_test

import (
	"strings"
	"testing"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/shopspring/decimal"
)

func mustItem(t *testing.T, productID, name string, amount int, price string) domain.OrderItem {
	t.Helper()
	item, err := domain.NewOrderItem(productID, name, amount, decimal.RequireFromString(price))
	if err != nil {
		t.Fatalf("failed to build item: %v", err)
	}
	return item
}

func mustAddress(t *testing.T) domain.InvoiceAddress {
	t.Helper()
	address, err := domain.NewInvoiceAddress("1 Main Street, Springfield")
	if err != nil {
		t.Fatalf("failed to build address: %v", err)
	}
	return address
}

func mustCard(t *testing.T) domain.CreditCardNumber {
	t.Helper()
	card, err := domain.NewCreditCardNumber("4532015112830366")
	if err != nil {
		t.Fatalf("failed to build card: %v", err)
	}
	return card
}

func mustNumber(t *testing.T) domain.OrderNumber {
	t.Helper()
	number, err := domain.NewOrderNumber("ORD-TEST-0001")
	if err != nil {
		t.Fatalf("failed to build order number: %v", err)
	}
	return number
}

// productID generates distinct short ids for bulk item fixtures.
func productID(i int) string {
	return "p" + string(rune('a'+i%26)) + string(rune('a'+i/26))
}

func newPendingOrder(t *testing.T, items ...domain.OrderItem) *domain.Order {
	t.Helper()
	if len(items) == 0 {
		items = []domain.OrderItem{mustItem(t, "12345", "widget", 2, "1499.99")}
	}
	order, err := domain.NewOrder(mustNumber(t), "test@example.com", mustAddress(t), mustCard(t), items, "")
	if err != nil {
		t.Fatalf("failed to build order: %v", err)
	}
	return order
}

func TestNewOrderValidation(t *testing.T) {
	validItems := func() []domain.OrderItem {
		return []domain.OrderItem{mustItem(t, "p1", "widget", 1, "10")}
	}

	tooManyItems := make([]domain.OrderItem, 0, domain.MaxDistinctItems+1)
	for i := 0; i < domain.MaxDistinctItems+1; i++ {
		tooManyItems = append(tooManyItems, mustItem(t, productID(i), "widget", 1, "1"))
	}

	tests := []struct {
		name      string
		email     string
		address   domain.InvoiceAddress
		card      domain.CreditCardNumber
		items     []domain.OrderItem
		notes     string
		wantKind  domain.ErrorKind
		wantError string
	}{
		{
			name:      "empty email",
			email:     "",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     validItems(),
			wantKind:  domain.KindInvalidArgument,
			wantError: "email required",
		},
		{
			name:      "whitespace email",
			email:     "   ",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     validItems(),
			wantKind:  domain.KindInvalidArgument,
			wantError: "email required",
		},
		{
			name:      "email missing at sign",
			email:     "notanemail",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     validItems(),
			wantKind:  domain.KindInvalidArgument,
			wantError: "invalid email format",
		},
		{
			name:      "zero address",
			email:     "user@example.com",
			address:   domain.InvoiceAddress{},
			card:      mustCard(t),
			items:     validItems(),
			wantKind:  domain.KindInvalidArgument,
			wantError: "invoice address required",
		},
		{
			name:      "zero card",
			email:     "user@example.com",
			address:   mustAddress(t),
			card:      domain.CreditCardNumber{},
			items:     validItems(),
			wantKind:  domain.KindInvalidArgument,
			wantError: "credit card number required",
		},
		{
			name:      "no items",
			email:     "user@example.com",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     nil,
			wantKind:  domain.KindInvalidArgument,
			wantError: "at least one item required",
		},
		{
			name:      "total above maximum",
			email:     "user@example.com",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     []domain.OrderItem{mustItem(t, "p1", "gold bar", 2, "60000")},
			wantKind:  domain.KindInvalidState,
			wantError: "order total exceeds maximum",
		},
		{
			name:      "too many distinct products",
			email:     "user@example.com",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     tooManyItems,
			wantKind:  domain.KindInvalidState,
			wantError: "too many distinct products",
		},
		{
			name:      "duplicate product in items",
			email:     "user@example.com",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     []domain.OrderItem{mustItem(t, "p1", "widget", 1, "10"), mustItem(t, "p1", "widget", 2, "10")},
			wantKind:  domain.KindInvalidArgument,
			wantError: "duplicate product in items",
		},
		{
			name:      "notes too long",
			email:     "user@example.com",
			address:   mustAddress(t),
			card:      mustCard(t),
			items:     validItems(),
			notes:     strings.Repeat("x", 1001),
			wantKind:  domain.KindInvalidArgument,
			wantError: "notes must not exceed 1000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewOrder(mustNumber(t), tt.email, tt.address, tt.card, tt.items, tt.notes)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			kind, ok := domain.KindOf(err)
			if !ok {
				t.Fatalf("expected domain error, got %T", err)
			}
			if kind != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, kind)
			}
			if err.Error() != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, err.Error())
			}
		})
	}
}

func TestNewOrderNormalizesEmailAndDerivesTotal(t *testing.T) {
	items := []domain.OrderItem{mustItem(t, "12345", "widget", 2, "1499.99")}

	order, err := domain.NewOrder(mustNumber(t), "Test@Example.com", mustAddress(t), mustCard(t), items, "gift wrap")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if order.InvoiceEmail() != "test@example.com" {
		t.Errorf("expected normalized email, got %q", order.InvoiceEmail())
	}
	if want := decimal.RequireFromString("2999.98"); !order.TotalAmount().Equal(want) {
		t.Errorf("expected total %s, got %s", want, order.TotalAmount())
	}
	if order.Status() != domain.StatusPending {
		t.Errorf("expected status %s, got %s", domain.StatusPending, order.Status())
	}
	if order.ID() == "" {
		t.Error("expected generated order id")
	}
	if order.CreatedAt().IsZero() {
		t.Error("expected created_at to be stamped")
	}
	if order.UpdatedAt() != nil {
		t.Error("expected updated_at to be nil on a fresh order")
	}
}

func TestNewOrderCopiesItems(t *testing.T) {
	items := []domain.OrderItem{mustItem(t, "p1", "widget", 1, "10")}
	order, err := domain.NewOrder(mustNumber(t), "user@example.com", mustAddress(t), mustCard(t), items, "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	items[0] = mustItem(t, "p2", "gadget", 9, "99")

	if got := order.Items()[0].ProductID(); got != "p1" {
		t.Errorf("caller mutation leaked into aggregate: got product %q", got)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	t.Run("pending to delivered directly is rejected", func(t *testing.T) {
		order := newPendingOrder(t)
		err := order.UpdateStatus(domain.StatusDelivered)
		if !domain.IsInvalidState(err) {
			t.Fatalf("expected InvalidState, got %v", err)
		}
		if order.Status() != domain.StatusPending {
			t.Errorf("status changed on failed transition: %s", order.Status())
		}
	})

	t.Run("full happy path succeeds at each step", func(t *testing.T) {
		order := newPendingOrder(t)
		for _, next := range []domain.OrderStatus{
			domain.StatusConfirmed,
			domain.StatusProcessing,
			domain.StatusShipped,
			domain.StatusDelivered,
		} {
			if err := order.UpdateStatus(next); err != nil {
				t.Fatalf("transition to %s failed: %v", next, err)
			}
			if order.Status() != next {
				t.Fatalf("expected status %s, got %s", next, order.Status())
			}
		}
		if order.UpdatedAt() == nil {
			t.Error("expected updated_at to be stamped")
		}
	})

	t.Run("no transition out of terminal states", func(t *testing.T) {
		order := newPendingOrder(t)
		if err := order.UpdateStatus(domain.StatusCancelled); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if err := order.UpdateStatus(domain.StatusConfirmed); !domain.IsInvalidState(err) {
			t.Errorf("expected InvalidState leaving cancelled, got %v", err)
		}
	})

	t.Run("no way back to pending", func(t *testing.T) {
		order := newPendingOrder(t)
		if err := order.UpdateStatus(domain.StatusConfirmed); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if err := order.UpdateStatus(domain.StatusPending); !domain.IsInvalidState(err) {
			t.Errorf("expected InvalidState moving back to pending, got %v", err)
		}
	})

	t.Run("processing and shipped allow self transition", func(t *testing.T) {
		order := newPendingOrder(t)
		steps := []domain.OrderStatus{
			domain.StatusConfirmed,
			domain.StatusProcessing,
			domain.StatusProcessing,
			domain.StatusShipped,
			domain.StatusShipped,
		}
		for _, next := range steps {
			if err := order.UpdateStatus(next); err != nil {
				t.Fatalf("transition to %s failed: %v", next, err)
			}
		}
	})
}

func TestItemMutations(t *testing.T) {
	t.Run("add item on confirmed order is rejected", func(t *testing.T) {
		order := newPendingOrder(t)
		if err := order.UpdateStatus(domain.StatusConfirmed); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		err := order.AddItem(mustItem(t, "p2", "gadget", 1, "5"))
		if !domain.IsInvalidState(err) {
			t.Fatalf("expected InvalidState, got %v", err)
		}
		if err.Error() != "cannot modify non-pending order" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("add item appends and stamps updated_at", func(t *testing.T) {
		order := newPendingOrder(t)
		if err := order.AddItem(mustItem(t, "p2", "gadget", 1, "5")); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if len(order.Items()) != 2 {
			t.Errorf("expected 2 items, got %d", len(order.Items()))
		}
		if order.UpdatedAt() == nil {
			t.Error("expected updated_at to be stamped")
		}
	})

	t.Run("add line for product already in order is rejected", func(t *testing.T) {
		order := newPendingOrder(t)
		err := order.AddItem(mustItem(t, "12345", "widget", 1, "5"))
		if !domain.IsInvalidArgument(err) {
			t.Fatalf("expected InvalidArgument, got %v", err)
		}
		if len(order.Items()) != 1 {
			t.Errorf("expected 1 item, got %d", len(order.Items()))
		}
		if order.UpdatedAt() != nil {
			t.Error("rejected add must not stamp updated_at")
		}
	})

	t.Run("remove absent product is a no-op", func(t *testing.T) {
		order := newPendingOrder(t)
		if err := order.RemoveItem("missing"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(order.Items()) != 1 {
			t.Errorf("expected 1 item, got %d", len(order.Items()))
		}
		if order.UpdatedAt() != nil {
			t.Error("no-op removal must not stamp updated_at")
		}
	})

	t.Run("remove existing product drops the line", func(t *testing.T) {
		order := newPendingOrder(t,
			mustItem(t, "p1", "widget", 1, "10"),
			mustItem(t, "p2", "gadget", 2, "20"),
		)
		if err := order.RemoveItem("p1"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		items := order.Items()
		if len(items) != 1 || items[0].ProductID() != "p2" {
			t.Errorf("unexpected items after removal: %+v", items)
		}
	})

	t.Run("remove last remaining line is rejected", func(t *testing.T) {
		order := newPendingOrder(t)
		err := order.RemoveItem("12345")
		if !domain.IsInvalidState(err) {
			t.Fatalf("expected InvalidState, got %v", err)
		}
		if err.Error() != "order must contain at least one item" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if len(order.Items()) != 1 {
			t.Errorf("expected the line to remain, got %d items", len(order.Items()))
		}
		if order.UpdatedAt() != nil {
			t.Error("rejected removal must not stamp updated_at")
		}
	})

	t.Run("update quantity replaces the line and recomputes total", func(t *testing.T) {
		order := newPendingOrder(t)

		if err := order.UpdateItemQuantity("12345", 5); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		items := order.Items()
		if items[0].ProductAmount() != 5 {
			t.Errorf("expected quantity 5, got %d", items[0].ProductAmount())
		}
		if items[0].ProductName() != "widget" {
			t.Errorf("product name changed: %q", items[0].ProductName())
		}
		if want := decimal.RequireFromString("7499.95"); !order.TotalAmount().Equal(want) {
			t.Errorf("expected total %s, got %s", want, order.TotalAmount())
		}
		if order.UpdatedAt() == nil {
			t.Error("expected updated_at to be stamped")
		}
	})

	t.Run("update quantity for absent product is NotFound", func(t *testing.T) {
		order := newPendingOrder(t)
		err := order.UpdateItemQuantity("missing", 5)
		if !domain.IsNotFound(err) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("update quantity to zero is rejected", func(t *testing.T) {
		order := newPendingOrder(t)
		err := order.UpdateItemQuantity("12345", 0)
		if !domain.IsInvalidArgument(err) {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("add item past the line cap is rejected", func(t *testing.T) {
		items := make([]domain.OrderItem, 0, domain.MaxDistinctItems)
		for i := 0; i < domain.MaxDistinctItems; i++ {
			items = append(items, mustItem(t, productID(i), "widget", 1, "1"))
		}
		order := newPendingOrder(t, items...)

		err := order.AddItem(mustItem(t, "extra", "widget", 1, "1"))
		if !domain.IsInvalidState(err) {
			t.Errorf("expected InvalidState, got %v", err)
		}
	})

	t.Run("add item breaking the total cap is rejected", func(t *testing.T) {
		order := newPendingOrder(t, mustItem(t, "p1", "gold bar", 1, "99999"))
		err := order.AddItem(mustItem(t, "p2", "silver bar", 1, "2"))
		if !domain.IsInvalidState(err) {
			t.Errorf("expected InvalidState, got %v", err)
		}
	})
}
