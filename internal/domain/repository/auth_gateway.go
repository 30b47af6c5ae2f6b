package repository

import (
	"context"

	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

// AuthGateway endpoints de autenticación del backend.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (entity.Session, error)
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, in entity.Registration) error
}

// DashboardGateway contadores agregados.
type DashboardGateway interface {
	DashboardCounts(ctx context.Context) (entity.DashboardCounts, error)
}
