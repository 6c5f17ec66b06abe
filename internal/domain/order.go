package domain

import (
	"fmt"
	"math"
	"time"
)

// Order statuses.
const (
	OrderStatusPending = "pending"
)

// Order is a placed customer order with its line items.
type Order struct {
	ID            int64       `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerEmail string      `json:"customer_email"`
	TotalAmount   float64     `json:"total_amount"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `json:"order_items,omitempty"`
}

// OrderItem is a single line of an order. Name and Price are snapshots of the
// product at placement time, so later catalogue edits do not rewrite history.
type OrderItem struct {
	ID        int64   `json:"id,omitempty"`
	OrderID   int64   `json:"order_id,omitempty"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns the item subtotal rounded to two decimal places.
func (i OrderItem) LineTotal() float64 {
	return RoundMoney(i.Price * float64(i.Quantity))
}

// OrderLine is a requested product/quantity pair before validation.
type OrderLine struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// NewOrderNumber generates an order number from the current wall clock,
// formatted as ORD-<unix milliseconds>.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}

// RoundMoney rounds a monetary amount to two decimal places.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
