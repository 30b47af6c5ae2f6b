package entity

import "github.com/shopspring/decimal"

// OrderStatus estados de un pedido.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "diproses"
	OrderDone       OrderStatus = "selesai"
	OrderCancelled  OrderStatus = "batal"
)

// OrderStatuses en el orden en que se ofrecen en el formulario.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderDone, OrderCancelled}

// Valid indica si el estado pertenece al enum.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order cabecera de pedido. OrderDate es la fecha tal cual la envía el backend (YYYY-MM-DD).
type Order struct {
	OrderID     ID              `json:"order_id,omitempty"`
	CustomerID  ID              `json:"customer_id"`
	OrderDate   string          `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
}

func (o Order) Key() ID { return o.OrderID }
