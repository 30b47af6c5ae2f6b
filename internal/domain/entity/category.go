package entity

// Category tal como la modela el backend: cada categoría apunta a UN producto (product_id),
// mientras que Product también lleva category_id. Ambas referencias se mantienen tal cual.
type Category struct {
	CategoryID  ID     `json:"category_id,omitempty"`
	ProductID   ID     `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"` // vacío borra la descripción en un PUT
}

func (c Category) Key() ID { return c.CategoryID }
