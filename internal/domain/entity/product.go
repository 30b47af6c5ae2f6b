package entity

import "github.com/shopspring/decimal"

// Product artículo del catálogo. CategoryID no se valida en el cliente.
type Product struct {
	ProductID   ID              `json:"product_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  ID              `json:"category_id"`
}

func (p Product) Key() ID { return p.ProductID }
