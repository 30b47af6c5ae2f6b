// Package report genera el informe de pedidos: pedidos, líneas y productos unidos en el cliente.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

// OrderReportUseCase arma el informe y lo entrega como PDF.
type OrderReportUseCase struct {
	orders    repository.ResourceGateway[entity.Order]
	items     repository.ResourceGateway[entity.OrderItem]
	products  repository.ResourceGateway[entity.Product]
	generator OrderReportGenerator
	now       func() time.Time
}

// NewOrderReportUseCase construye el caso de uso inyectando sus dependencias.
func NewOrderReportUseCase(
	orders repository.ResourceGateway[entity.Order],
	items repository.ResourceGateway[entity.OrderItem],
	products repository.ResourceGateway[entity.Product],
	generator OrderReportGenerator,
) *OrderReportUseCase {
	return &OrderReportUseCase{
		orders:    orders,
		items:     items,
		products:  products,
		generator: generator,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *OrderReportUseCase) WithClock(now func() time.Time) *OrderReportUseCase {
	uc.now = now
	return uc
}

// Build carga las tres colecciones en paralelo y las une.
func (uc *OrderReportUseCase) Build(ctx context.Context) (*OrderReport, error) {
	type ordersResult struct {
		list []entity.Order
		err  error
	}
	type itemsResult struct {
		list []entity.OrderItem
		err  error
	}
	type productsResult struct {
		list []entity.Product
		err  error
	}

	ordersCh := make(chan ordersResult, 1)
	itemsCh := make(chan itemsResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		l, err := uc.orders.List(ctx)
		ordersCh <- ordersResult{l, err}
	}()
	go func() {
		l, err := uc.items.List(ctx)
		itemsCh <- itemsResult{l, err}
	}()
	go func() {
		l, err := uc.products.List(ctx)
		productsCh <- productsResult{l, err}
	}()

	orders := <-ordersCh
	items := <-itemsCh
	products := <-productsCh

	if orders.err != nil {
		return nil, fmt.Errorf("informe: pedidos: %w", orders.err)
	}
	if items.err != nil {
		return nil, fmt.Errorf("informe: items: %w", items.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("informe: productos: %w", products.err)
	}

	return Join(orders.list, items.list, products.list, uc.now()), nil
}

// Join une pedidos, líneas y productos conservando el orden del servidor.
func Join(orders []entity.Order, items []entity.OrderItem, products []entity.Product, at time.Time) *OrderReport {
	names := make(map[entity.ID]string, len(products))
	for _, p := range products {
		names[p.ProductID] = p.Name
	}

	idx := make(map[entity.ID]int, len(orders))
	r := &OrderReport{GeneratedAt: at, Orders: make([]OrderSummary, 0, len(orders)), GrandTotal: decimal.Zero}
	for _, o := range orders {
		idx[o.OrderID] = len(r.Orders)
		r.Orders = append(r.Orders, OrderSummary{Order: o, ItemsTotal: decimal.Zero})
		r.GrandTotal = r.GrandTotal.Add(o.TotalAmount)
	}

	for _, it := range items {
		i, ok := idx[it.OrderID]
		if !ok {
			r.OrphanItems++
			continue
		}
		name, ok := names[it.ProductID]
		if !ok {
			name = "Produk " + it.ProductID.String()
		}
		line := OrderLine{Item: it, ProductName: name, Subtotal: it.Subtotal()}
		s := &r.Orders[i]
		s.Lines = append(s.Lines, line)
		s.ItemsTotal = s.ItemsTotal.Add(line.Subtotal)
	}
	return r
}

// Export genera el PDF. Devuelve (bytes, nombre de archivo).
func (uc *OrderReportUseCase) Export(ctx context.Context) ([]byte, string, error) {
	r, err := uc.Build(ctx)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateOrderReport(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generación fallida: %w", err)
	}
	return doc, Filename(r.GeneratedAt), nil
}

// Filename laporan_pesanan_<fecha>.pdf
func Filename(at time.Time) string {
	return fmt.Sprintf("laporan_pesanan_%s.pdf", at.Format("2006-01-02"))
}
