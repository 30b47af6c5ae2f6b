package entity

// Registration datos de alta de un usuario administrador (POST /register).
type Registration struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}
