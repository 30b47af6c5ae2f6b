package entity

import "encoding/json"

// DashboardCounts totales de las tarjetas del dashboard.
//
// El backend usa la clave "product" (singular) y "order-item" (con guion); aquí se
// normalizan a nombres de campo consistentes. También se aceptan las variantes plurales.
type DashboardCounts struct {
	Users      int
	Customers  int
	Products   int
	Orders     int
	OrderItems int
	Categories int
}

type dashboardCountsWire struct {
	Users         *int `json:"users"`
	Customers     *int `json:"customers"`
	Product       *int `json:"product"`
	Products      *int `json:"products"`
	Orders        *int `json:"orders"`
	OrderItem     *int `json:"order-item"`
	OrderItemsAlt *int `json:"order_items"`
	Categories    *int `json:"categories"`
}

func firstOf(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// UnmarshalJSON lee las claves del backend.
func (d *DashboardCounts) UnmarshalJSON(b []byte) error {
	var w dashboardCountsWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*d = DashboardCounts{
		Users:      firstOf(w.Users),
		Customers:  firstOf(w.Customers),
		Products:   firstOf(w.Product, w.Products),
		Orders:     firstOf(w.Orders),
		OrderItems: firstOf(w.OrderItem, w.OrderItemsAlt),
		Categories: firstOf(w.Categories),
	}
	return nil
}

// MarshalJSON escribe las claves originales del backend (lo usa el sandbox).
func (d DashboardCounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]int{
		"users":      d.Users,
		"customers":  d.Customers,
		"product":    d.Products,
		"orders":     d.Orders,
		"order-item": d.OrderItems,
		"categories": d.Categories,
	})
}
