package entity

import "github.com/shopspring/decimal"

// OrderItem línea de pedido.
type OrderItem struct {
	ID        ID              `json:"id,omitempty"`
	OrderID   ID              `json:"order_id"`
	ProductID ID              `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (i OrderItem) Key() ID { return i.ID }

// Subtotal cantidad por precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
