package restapi

import (
	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

// Bindings crea controlador y modal de los seis recursos sobre este cliente, en el orden
// de resource.All().
func Bindings(c *Client, cfg crud.Config) []crud.Binding {
	return []crud.Binding{
		crud.Bind(crud.NewController[entity.User](Resource[entity.User](c, resource.User), resource.User, cfg)),
		crud.Bind(crud.NewController[entity.Customer](Resource[entity.Customer](c, resource.Customer), resource.Customer, cfg)),
		crud.Bind(crud.NewController[entity.Product](Resource[entity.Product](c, resource.Product), resource.Product, cfg)),
		crud.Bind(crud.NewController[entity.Order](Resource[entity.Order](c, resource.Order), resource.Order, cfg)),
		crud.Bind(crud.NewController[entity.OrderItem](Resource[entity.OrderItem](c, resource.OrderItem), resource.OrderItem, cfg)),
		crud.Bind(crud.NewController[entity.Category](Resource[entity.Category](c, resource.Category), resource.Category, cfg)),
	}
}

// FindBinding busca por nombre de recurso.
func FindBinding(bs []crud.Binding, name string) (crud.Binding, bool) {
	for _, b := range bs {
		if string(b.Descriptor().Name) == name {
			return b, true
		}
	}
	return nil, false
}
