package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaxDistinctItems caps the number of order lines.
	MaxDistinctItems = 50
	// maxNotesLen caps free-text notes.
	maxNotesLen = 1000
)

// maxOrderTotal caps the summed line totals, in currency units.
var maxOrderTotal = decimal.NewFromInt(100_000)

// Order is the aggregate root. All mutations go through its methods;
// nothing outside the package can touch its fields.
type Order struct {
	id             string
	number         OrderNumber
	invoiceEmail   string
	invoiceAddress InvoiceAddress
	creditCard     CreditCardNumber
	items          []OrderItem
	status         OrderStatus
	notes          string
	createdAt      time.Time
	updatedAt      *time.Time
}

// NewOrder validates all creation invariants atomically and returns a
// pending order, or the first violation found. The item slice is
// copied so later changes by the caller cannot reach the aggregate.
func NewOrder(number OrderNumber, invoiceEmail string, address InvoiceAddress, card CreditCardNumber, items []OrderItem, notes string) (*Order, error) {
	email := strings.TrimSpace(invoiceEmail)
	if email == "" {
		return nil, NewInvalidArgument("email required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewInvalidArgument("invalid email format")
	}
	if address.IsZero() {
		return nil, NewInvalidArgument("invoice address required")
	}
	if card.IsZero() {
		return nil, NewInvalidArgument("credit card number required")
	}
	if len(items) == 0 {
		return nil, NewInvalidArgument("at least one item required")
	}
	if sumItemTotals(items).GreaterThan(maxOrderTotal) {
		return nil, NewInvalidState("order total exceeds maximum")
	}
	if len(items) > MaxDistinctItems {
		return nil, NewInvalidState("too many distinct products")
	}
	if hasDuplicateProduct(items) {
		return nil, NewInvalidArgument("duplicate product in items")
	}
	if number.IsZero() {
		return nil, NewInvalidArgument("order number required")
	}
	if len(notes) > maxNotesLen {
		return nil, NewInvalidArgument("notes must not exceed 1000 characters")
	}

	copied := make([]OrderItem, len(items))
	copy(copied, items)

	return &Order{
		id:             uuid.NewString(),
		number:         number,
		invoiceEmail:   strings.ToLower(email),
		invoiceAddress: address,
		creditCard:     card,
		items:          copied,
		status:         StatusPending,
		notes:          notes,
		createdAt:      time.Now().UTC(),
	}, nil
}

// Reconstitute rebuilds an order from persisted state without
// revalidating creation invariants. Repository use only.
func Reconstitute(id string, number OrderNumber, invoiceEmail string, address InvoiceAddress, card CreditCardNumber, items []OrderItem, status OrderStatus, notes string, createdAt time.Time, updatedAt *time.Time) *Order {
	copied := make([]OrderItem, len(items))
	copy(copied, items)

	return &Order{
		id:             id,
		number:         number,
		invoiceEmail:   invoiceEmail,
		invoiceAddress: address,
		creditCard:     card,
		items:          copied,
		status:         status,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (o *Order) ID() string                     { return o.id }
func (o *Order) Number() OrderNumber            { return o.number }
func (o *Order) InvoiceEmail() string           { return o.invoiceEmail }
func (o *Order) InvoiceAddress() InvoiceAddress { return o.invoiceAddress }
func (o *Order) CreditCard() CreditCardNumber   { return o.creditCard }
func (o *Order) Status() OrderStatus            { return o.status }
func (o *Order) Notes() string                  { return o.notes }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) UpdatedAt() *time.Time          { return o.updatedAt }

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount is the sum of line totals, always derived.
func (o *Order) TotalAmount() decimal.Decimal {
	return sumItemTotals(o.items)
}

// UpdateStatus moves the order along the status machine, rejecting
// transitions the table does not allow.
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !o.status.CanTransitionTo(next) {
		return NewInvalidState(fmt.Sprintf("cannot transition order from %s to %s", o.status, next))
	}
	o.status = next
	o.touch()
	return nil
}

// AddItem appends an order line. Only pending orders may change, and
// each product may appear on one line only.
func (o *Order) AddItem(item OrderItem) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	for _, existing := range o.items {
		if existing.productID == item.productID {
			return NewInvalidArgument(fmt.Sprintf("product %s already in order", item.productID))
		}
	}
	if len(o.items) >= MaxDistinctItems {
		return NewInvalidState("too many distinct products")
	}
	if sumItemTotals(o.items).Add(item.TotalPrice()).GreaterThan(maxOrderTotal) {
		return NewInvalidState("order total exceeds maximum")
	}
	o.items = append(o.items, item)
	o.touch()
	return nil
}

// RemoveItem drops the line for productID. Removing an absent product
// is a no-op and does not stamp UpdatedAt. The last line cannot be
// removed; an order always has at least one item.
func (o *Order) RemoveItem(productID string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	for idx, item := range o.items {
		if item.productID == productID {
			if len(o.items) == 1 {
				return NewInvalidState("order must contain at least one item")
			}
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.touch()
			return nil
		}
	}
	return nil
}

// UpdateItemQuantity replaces the line for productID with one carrying
// the new quantity, keeping name and price.
func (o *Order) UpdateItemQuantity(productID string, quantity int) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if quantity <= 0 {
		return NewInvalidArgument("quantity must be positive")
	}
	for idx, item := range o.items {
		if item.productID == productID {
			replacement := item.withAmount(quantity)
			newTotal := sumItemTotals(o.items).Sub(item.TotalPrice()).Add(replacement.TotalPrice())
			if newTotal.GreaterThan(maxOrderTotal) {
				return NewInvalidState("order total exceeds maximum")
			}
			o.items[idx] = replacement
			o.touch()
			return nil
		}
	}
	return NewNotFound(fmt.Sprintf("product %s not found in order", productID))
}

func (o *Order) ensureMutable() error {
	if o.status != StatusPending {
		return NewInvalidState("cannot modify non-pending order")
	}
	return nil
}

func (o *Order) touch() {
	now := time.Now().UTC()
	o.updatedAt = &now
}

func hasDuplicateProduct(items []OrderItem) bool {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.productID]; ok {
			return true
		}
		seen[item.productID] = struct{}{}
	}
	return false
}

func sumItemTotals(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice())
	}
	return total
}
