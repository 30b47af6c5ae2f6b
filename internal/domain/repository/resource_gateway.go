package repository

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

// MutationResult respuesta de una mutación: el registro si el backend lo devolvió
// (envuelto en data o tal cual) y el payload de confirmación sin procesar.
type MutationResult[T any] struct {
	Record *T
	Raw    json.RawMessage
}

// ResourceGateway puerto de acceso remoto a una colección (implementado por el cliente REST).
type ResourceGateway[T entity.Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record T) (MutationResult[T], error)
	// Update es parcial: los campos omitidos en el JSON se conservan en el servidor.
	Update(ctx context.Context, id entity.ID, record T) (MutationResult[T], error)
	Delete(ctx context.Context, id entity.ID) (MutationResult[T], error)
}
