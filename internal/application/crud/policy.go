package crud

import "fmt"

// Policy cómo se reconcilia la colección local tras una mutación exitosa.
type Policy int

const (
	// PolicyLegacy recarga tras alta y edición; tras borrado filtra en local sin recargar.
	PolicyLegacy Policy = iota
	// PolicyRefetch recarga tras cualquier mutación.
	PolicyRefetch
	// PolicyApplyLocal aplica el registro devuelto por el backend; si no lo devuelve, recarga.
	PolicyApplyLocal
)

// ParsePolicy traduce el valor de REFRESH_POLICY.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "legacy":
		return PolicyLegacy, nil
	case "refetch":
		return PolicyRefetch, nil
	case "local":
		return PolicyApplyLocal, nil
	default:
		return PolicyLegacy, fmt.Errorf("crud: política de refresco desconocida %q", s)
	}
}

// Level severidad de una notificación.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notification aviso para el usuario (toast).
type Notification struct {
	Level   Level
	Message string
	Err     error
}

// Notifier destino de las notificaciones. Lo implementa la vista.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }
