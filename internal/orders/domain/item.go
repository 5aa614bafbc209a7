package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderItem is one order line. Items are immutable; a quantity change
// replaces the item with a new one.
type OrderItem struct {
	productID     string
	productName   string
	productAmount int
	productPrice  decimal.Decimal
}

// NewOrderItem validates an order line.
func NewOrderItem(productID, productName string, productAmount int, productPrice decimal.Decimal) (OrderItem, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return OrderItem{}, NewInvalidArgument("product id required")
	}
	name := strings.TrimSpace(productName)
	if name == "" {
		return OrderItem{}, NewInvalidArgument("product name required")
	}
	if productAmount <= 0 {
		return OrderItem{}, NewInvalidArgument("product amount must be positive")
	}
	if productPrice.LessThanOrEqual(decimal.Zero) {
		return OrderItem{}, NewInvalidArgument("product price must be positive")
	}

	return OrderItem{
		productID:     id,
		productName:   name,
		productAmount: productAmount,
		productPrice:  productPrice,
	}, nil
}

func (i OrderItem) ProductID() string   { return i.productID }
func (i OrderItem) ProductName() string { return i.productName }
func (i OrderItem) ProductAmount() int  { return i.productAmount }

func (i OrderItem) ProductPrice() decimal.Decimal { return i.productPrice }

// TotalPrice is amount times unit price, always derived.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.productPrice.Mul(decimal.NewFromInt(int64(i.productAmount)))
}

// withAmount returns a copy of the item with a new quantity, keeping
// name and price.
func (i OrderItem) withAmount(amount int) OrderItem {
	i.productAmount = amount
	return i
}
