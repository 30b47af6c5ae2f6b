package entity

// Session par token/usuario de la sesión activa. Como mucho existe una por proceso.
type Session struct {
	Token string
	User  User
}

// Active indica si hay token.
func (s Session) Active() bool { return s.Token != "" }
