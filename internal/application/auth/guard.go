package auth

import (
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

// Guard invalida la sesión local cuando el backend responde 401.
type Guard struct {
	store repository.SessionStore
	log   *logger.Logger
}

func NewGuard(store repository.SessionStore, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{store: store, log: log.Named("guard")}
}

// Check devuelve true si err es un 401: la sesión queda borrada y la vista debe volver al login.
func (g *Guard) Check(err error) bool {
	if err == nil || !domain.IsUnauthorized(err) {
		return false
	}
	if cerr := g.store.Clear(); cerr != nil {
		g.log.Error().Err(cerr).Msg("no se pudo borrar la sesión tras 401")
	}
	g.log.Info().Msg("sesión expirada o revocada")
	return true
}
