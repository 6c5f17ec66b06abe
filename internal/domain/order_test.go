package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderItem_LineTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		quantity int
		want     float64
	}{
		{"whole amounts", 10.00, 3, 30.00},
		{"fractional cents round", 19.99, 3, 59.97},
		{"repeating fraction", 0.1, 3, 0.30},
		{"single unit", 5.25, 1, 5.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := OrderItem{Price: tt.price, Quantity: tt.quantity}
			assert.InDelta(t, tt.want, item.LineTotal(), 0.0001)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.InDelta(t, 0.30, RoundMoney(0.1+0.2), 0.0001)
	assert.InDelta(t, 59.97, RoundMoney(59.969999), 0.0001)
	assert.InDelta(t, 10.00, RoundMoney(10), 0.0001)
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "ORD-1700000000000", NewOrderNumber(now))

	// Two orders in the same millisecond collide; the store's unique
	// constraint on order_number rejects the second with a DUPLICATE error.
	assert.Equal(t, NewOrderNumber(now), NewOrderNumber(now))
}

func TestProduct_InStock(t *testing.T) {
	p := &Product{Stock: 5}
	assert.True(t, p.InStock(5))
	assert.True(t, p.InStock(3))
	assert.False(t, p.InStock(6))
}
