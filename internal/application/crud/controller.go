// Package crud contiene el controlador genérico de listado: una colección en memoria por
// pantalla, sincronizada con el backend tras cada alta, edición o borrado.
package crud

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

// State estado de la pantalla.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateLoadError
	StateMutating
	StateMutationError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadError:
		return "load_error"
	case StateMutating:
		return "mutating"
	case StateMutationError:
		return "mutation_error"
	default:
		return "idle"
	}
}

// View foto del estado para la vista. Items es una copia.
// Stale indica que Items viene de una carga anterior a un error de carga.
type View[T entity.Record] struct {
	State State
	Items []T
	Err   error
	Stale bool
}

// Config dependencias opcionales del controlador.
type Config struct {
	Policy   Policy
	Notifier Notifier
	Logger   *logger.Logger
}

// Controller máquina de estados Idle -> Loading -> Loaded|LoadError y
// Loaded -> Mutating -> Loaded|MutationError. Cada operación puede lanzarse desde su
// propia goroutine: se aplican de forma atómica y gana la última en terminar.
type Controller[T entity.Record] struct {
	gw       repository.ResourceGateway[T]
	desc     resource.Descriptor
	policy   Policy
	notifier Notifier
	log      *logger.Logger

	mu    sync.Mutex
	state State
	items []T
	err   error
	stale bool
}

// NewController construye el controlador en estado Idle.
func NewController[T entity.Record](gw repository.ResourceGateway[T], desc resource.Descriptor, cfg Config) *Controller[T] {
	n := cfg.Notifier
	if n == nil {
		n = NotifierFunc(func(Notification) {})
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Controller[T]{
		gw:       gw,
		desc:     desc,
		policy:   cfg.Policy,
		notifier: n,
		log:      log.Named("crud"),
		state:    StateIdle,
	}
}

// Descriptor recurso que controla.
func (c *Controller[T]) Descriptor() resource.Descriptor { return c.desc }

// View devuelve una copia del estado actual.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return View[T]{State: c.state, Items: items, Err: c.err, Stale: c.stale}
}

// Find busca un registro cargado por su clave.
func (c *Controller[T]) Find(id entity.ID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Lookup lista el recurso sin tocar el estado (opciones de los select de otros formularios).
func (c *Controller[T]) Lookup(ctx context.Context) ([]T, error) {
	return c.gw.List(ctx)
}

// Load pide la colección completa. El orden es el del servidor.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.setState(StateLoading)
	return c.refresh(ctx)
}

// Create da de alta y luego sincroniza según la política (por defecto, recarga completa).
func (c *Controller[T]) Create(ctx context.Context, record T) error {
	c.setState(StateMutating)
	res, err := c.gw.Create(ctx, record)
	if err != nil {
		return c.mutationFailed(err, c.desc.Messages.CreateFailed, "create")
	}
	c.notify(LevelSuccess, c.desc.Messages.Created, nil)

	if c.policy == PolicyApplyLocal && res.Record != nil && !(*res.Record).Key().IsZero() {
		c.mu.Lock()
		c.items = append(c.items, *res.Record)
		c.state, c.err, c.stale = StateLoaded, nil, false
		c.mu.Unlock()
		return nil
	}
	return c.refresh(ctx)
}

// Update actualiza (parcial) y sincroniza según la política (por defecto, recarga completa).
func (c *Controller[T]) Update(ctx context.Context, id entity.ID, record T) error {
	if id.IsZero() {
		return fmt.Errorf("crud: actualizar %s sin id: %w", c.desc.Name, domain.ErrInvalidState)
	}
	c.setState(StateMutating)
	res, err := c.gw.Update(ctx, id, record)
	if err != nil {
		return c.mutationFailed(err, c.desc.Messages.UpdateFailed, "update")
	}
	c.notify(LevelSuccess, c.desc.Messages.Updated, nil)

	if c.policy == PolicyApplyLocal && res.Record != nil && (*res.Record).Key() == id {
		c.mu.Lock()
		for i := range c.items {
			if c.items[i].Key() == id {
				c.items[i] = *res.Record
			}
		}
		c.state, c.err, c.stale = StateLoaded, nil, false
		c.mu.Unlock()
		return nil
	}
	return c.refresh(ctx)
}

// Delete borra y, salvo con PolicyRefetch, quita el registro de la colección local sin recargar.
func (c *Controller[T]) Delete(ctx context.Context, id entity.ID) error {
	if id.IsZero() {
		return fmt.Errorf("crud: borrar %s sin id: %w", c.desc.Name, domain.ErrInvalidState)
	}
	c.setState(StateMutating)
	if _, err := c.gw.Delete(ctx, id); err != nil {
		return c.mutationFailed(err, c.desc.Messages.DeleteFailed, "delete")
	}
	c.notify(LevelSuccess, c.desc.Messages.Deleted, nil)

	if c.policy == PolicyRefetch {
		return c.refresh(ctx)
	}
	c.mu.Lock()
	kept := c.items[:0:0]
	for _, it := range c.items {
		if it.Key() != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.state, c.err, c.stale = StateLoaded, nil, false
	c.mu.Unlock()
	return nil
}

func (c *Controller[T]) refresh(ctx context.Context) error {
	items, err := c.gw.List(ctx)
	if err != nil {
		c.mu.Lock()
		c.state, c.err, c.stale = StateLoadError, err, len(c.items) > 0
		c.mu.Unlock()
		c.log.Error().Err(err).Str("resource", string(c.desc.Name)).Msg("error al cargar la colección")
		c.notify(LevelError, c.desc.Messages.LoadFailed, err)
		return err
	}
	if items == nil {
		items = []T{}
	}
	c.mu.Lock()
	c.items, c.state, c.err, c.stale = items, StateLoaded, nil, false
	c.mu.Unlock()
	return nil
}

// mutationFailed deja la colección intacta.
func (c *Controller[T]) mutationFailed(err error, msg, op string) error {
	c.mu.Lock()
	c.state, c.err = StateMutationError, err
	c.mu.Unlock()
	c.log.Warn().Err(err).Str("resource", string(c.desc.Name)).Str("op", op).Int("status", domain.StatusOf(err)).Msg("mutación rechazada")
	c.notify(LevelError, msg, err)
	return err
}

func (c *Controller[T]) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller[T]) notify(level Level, msg string, err error) {
	c.notifier.Notify(Notification{Level: level, Message: msg, Err: err})
}
