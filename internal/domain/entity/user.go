package entity

// User administrador o usuario del back office. Password es de solo escritura:
// el backend nunca lo devuelve y el cliente solo lo envía si el formulario lo trae.
type User struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

func (u User) Key() ID { return u.ID }

// DisplayName nombre para cabeceras; cae al username si name está vacío.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
