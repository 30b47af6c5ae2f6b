// Package analytics contiene el caso de uso del dashboard: las tarjetas de totales.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-umkm/internal/application/dto"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

// card etiquetas de una tarjeta.
type card struct {
	key    resource.Name
	title  string
	footer string
	value  func(entity.DashboardCounts) int
}

// Orden de menú.
var cards = []card{
	{resource.Users, "Total Pengguna", "Jumlah pengguna terdaftar", func(c entity.DashboardCounts) int { return c.Users }},
	{resource.Customers, "Total Customer", "Jumlah customer terdaftar", func(c entity.DashboardCounts) int { return c.Customers }},
	{resource.Products, "Total Produk", "Jumlah produk tersedia", func(c entity.DashboardCounts) int { return c.Products }},
	{resource.Orders, "Total Pesanan", "Jumlah pesanan masuk", func(c entity.DashboardCounts) int { return c.Orders }},
	{resource.OrderItems, "Total Item Pesanan", "Jumlah item dalam pesanan", func(c entity.DashboardCounts) int { return c.OrderItems }},
	{resource.Categories, "Total Kategori", "Jumlah kategori produk", func(c entity.DashboardCounts) int { return c.Categories }},
}

// DashboardUseCase genera las tarjetas a partir de GET /dashboard-counts.
type DashboardUseCase struct {
	gw repository.DashboardGateway
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(gw repository.DashboardGateway) *DashboardUseCase {
	return &DashboardUseCase{gw: gw}
}

// GetCards devuelve las seis tarjetas.
func (uc *DashboardUseCase) GetCards(ctx context.Context) (*dto.DashboardDTO, error) {
	counts, err := uc.gw.DashboardCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: contadores: %w", err)
	}
	return BuildCards(counts), nil
}

// BuildCards arma las tarjetas a partir de los contadores.
func BuildCards(counts entity.DashboardCounts) *dto.DashboardDTO {
	out := &dto.DashboardDTO{Cards: make([]dto.CardDTO, 0, len(cards))}
	for _, c := range cards {
		out.Cards = append(out.Cards, dto.CardDTO{
			Key:    string(c.key),
			Title:  c.title,
			Value:  c.value(counts),
			Footer: c.footer,
		})
	}
	return out
}
