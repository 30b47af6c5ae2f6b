package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

// OrderLine línea de pedido enriquecida con el nombre del producto.
type OrderLine struct {
	Item        entity.OrderItem
	ProductName string
	Subtotal    decimal.Decimal
}

// OrderSummary pedido con sus líneas. ItemsTotal es la suma de subtotales; puede diferir de
// Order.TotalAmount, que el backend no recalcula.
type OrderSummary struct {
	Order      entity.Order
	Lines      []OrderLine
	ItemsTotal decimal.Decimal
}

// OrderReport datos del informe de pedidos.
type OrderReport struct {
	GeneratedAt time.Time
	Orders      []OrderSummary
	GrandTotal  decimal.Decimal // suma de total_amount
	OrphanItems int             // líneas cuyo pedido no existe
}

// OrderReportGenerator genera el documento a partir del informe (implementado con Maroto en infrastructure/pdf).
type OrderReportGenerator interface {
	GenerateOrderReport(ctx context.Context, r *OrderReport) ([]byte, error)
}
