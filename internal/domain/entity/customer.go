package entity

// Customer comprador de la tienda.
type Customer struct {
	CustomerID ID     `json:"customer_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

func (c Customer) Key() ID { return c.CustomerID }
