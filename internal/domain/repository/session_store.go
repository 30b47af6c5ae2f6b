package repository

import "github.com/jhoicas/backoffice-umkm/internal/domain/entity"

// SessionStore almacenamiento del token y el usuario actual (el "storage" del cliente).
type SessionStore interface {
	Load() (entity.Session, error)
	Save(s entity.Session) error
	Clear() error
	// Token devuelve el token actual o "" si no hay sesión. Se consulta en cada petición.
	Token() string
}
