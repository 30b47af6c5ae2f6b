package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

// Verificar en tiempo de compilación que ResourceAPI implementa el puerto.
var _ repository.ResourceGateway[entity.Product] = (*ResourceAPI[entity.Product])(nil)

// ResourceAPI operaciones List/Create/Update/Delete de un recurso.
type ResourceAPI[T entity.Record] struct {
	c    *Client
	desc resource.Descriptor
}

// Resource enlaza el cliente con un descriptor. El tipo T debe corresponder al recurso.
func Resource[T entity.Record](c *Client, desc resource.Descriptor) *ResourceAPI[T] {
	return &ResourceAPI[T]{c: c, desc: desc}
}

// List acepta un arreglo o {"data": [...]}. Si data no es un arreglo devuelve [] y deja un warning.
func (r *ResourceAPI[T]) List(ctx context.Context) ([]T, error) {
	raw, err := r.c.do(ctx, http.MethodGet, r.desc.Path, r.c.token(), nil)
	if err != nil {
		return nil, err
	}

	payload := json.RawMessage(raw)
	if firstByte(raw) != '[' {
		data, ok := unwrapData(raw)
		if !ok || firstByte(data) != '[' {
			r.c.log.Warn().
				Str("resource", string(r.desc.Name)).
				Bytes("body", truncate(raw, 256)).
				Msg("la respuesta no contiene un arreglo; se usa lista vacía")
			return []T{}, nil
		}
		payload = data
	}

	items := []T{}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("restapi: decodificar %s: %w", r.desc.Name, err)
	}
	return items, nil
}

// Create POST del registro; devuelve el registro creado si el backend lo incluye.
func (r *ResourceAPI[T]) Create(ctx context.Context, record T) (repository.MutationResult[T], error) {
	raw, err := r.c.do(ctx, http.MethodPost, r.desc.Path, r.c.token(), record)
	if err != nil {
		return repository.MutationResult[T]{}, err
	}
	return decodeMutation[T](raw), nil
}

// Update actualización parcial con el verbo del recurso (PATCH o PUT).
func (r *ResourceAPI[T]) Update(ctx context.Context, id entity.ID, record T) (repository.MutationResult[T], error) {
	raw, err := r.c.do(ctx, r.desc.UpdateMethod, r.itemPath(id), r.c.token(), record)
	if err != nil {
		return repository.MutationResult[T]{}, err
	}
	return decodeMutation[T](raw), nil
}

// Delete borra por id.
func (r *ResourceAPI[T]) Delete(ctx context.Context, id entity.ID) (repository.MutationResult[T], error) {
	raw, err := r.c.do(ctx, http.MethodDelete, r.itemPath(id), r.c.token(), nil)
	if err != nil {
		return repository.MutationResult[T]{}, err
	}
	return decodeMutation[T](raw), nil
}

func (r *ResourceAPI[T]) itemPath(id entity.ID) string {
	return r.desc.Path + "/" + url.PathEscape(id.String())
}

// decodeMutation conserva el payload crudo y, si es posible, extrae el registro (con o sin data).
func decodeMutation[T entity.Record](raw []byte) repository.MutationResult[T] {
	res := repository.MutationResult[T]{}
	if len(raw) > 0 && json.Valid(raw) {
		res.Raw = json.RawMessage(raw)
	}
	candidate := json.RawMessage(raw)
	if data, ok := unwrapData(raw); ok {
		candidate = data
	}
	if firstByte(candidate) != '{' {
		return res
	}
	var rec T
	if err := json.Unmarshal(candidate, &rec); err != nil || rec.Key().IsZero() {
		return res
	}
	res.Record = &rec
	return res
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
