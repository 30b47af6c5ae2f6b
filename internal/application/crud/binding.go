package crud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-umkm/internal/application/form"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/pkg/money"
)

// Row fila lista para pintar. Cells sigue el orden de Descriptor.Columns.
type Row struct {
	ID     entity.ID
	Cells  []string
	Record any
}

// Snapshot estado de una pantalla sin el parámetro de tipo.
type Snapshot struct {
	State State
	Rows  []Row
	Err   error
	Stale bool
}

// Option valor seleccionable de un campo referencia.
type Option struct {
	Value string
	Label string
}

// Mutation operación remota pendiente; la vista decide en qué goroutine ejecutarla.
type Mutation func(ctx context.Context) error

// Binding une controlador y modal de un recurso detrás de una interfaz sin genéricos,
// para que la TUI y la CLI recorran los seis recursos con el mismo código.
type Binding interface {
	Descriptor() resource.Descriptor
	Load(ctx context.Context) error
	Snapshot() Snapshot
	Options(ctx context.Context) ([]Option, error)
	Form() form.Editor
	OpenEdit(id entity.ID) error
	Submit() (Mutation, error)
	Delete(ctx context.Context, id entity.ID) error
}

type binding[T entity.Record] struct {
	ctrl    *Controller[T]
	modal   *form.Modal[T]
	pending *form.Submission[T]
}

// Bind construye el Binding de un controlador con un modal del esquema del descriptor.
func Bind[T entity.Record](ctrl *Controller[T]) Binding {
	b := &binding[T]{ctrl: ctrl}
	b.modal = form.NewModal[T](ctrl.Descriptor().Form, func(s form.Submission[T]) {
		b.pending = &s
	})
	return b
}

func (b *binding[T]) Descriptor() resource.Descriptor { return b.ctrl.Descriptor() }

func (b *binding[T]) Load(ctx context.Context) error { return b.ctrl.Load(ctx) }

func (b *binding[T]) Form() form.Editor { return b.modal }

func (b *binding[T]) Snapshot() Snapshot {
	v := b.ctrl.View()
	rows := make([]Row, 0, len(v.Items))
	cols := b.ctrl.Descriptor().Columns
	for _, it := range v.Items {
		rows = append(rows, Row{ID: it.Key(), Cells: Cells(it, cols), Record: it})
	}
	return Snapshot{State: v.State, Rows: rows, Err: v.Err, Stale: v.Stale}
}

func (b *binding[T]) Options(ctx context.Context) ([]Option, error) {
	items, err := b.ctrl.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(items))
	for _, it := range items {
		out = append(out, Option{Value: it.Key().String(), Label: optionLabel(it)})
	}
	return out, nil
}

func (b *binding[T]) OpenEdit(id entity.ID) error {
	rec, ok := b.ctrl.Find(id)
	if !ok {
		return fmt.Errorf("%s %s: %w", b.ctrl.Descriptor().Name, id, domain.ErrNotFound)
	}
	return b.modal.OpenEdit(rec)
}

// Submit valida el modal y, si pasa, devuelve la mutación a ejecutar. El modal ya queda cerrado.
func (b *binding[T]) Submit() (Mutation, error) {
	b.pending = nil
	if err := b.modal.Submit(); err != nil {
		return nil, err
	}
	sub := b.pending
	if sub == nil {
		return nil, fmt.Errorf("crud: envío sin registro: %w", domain.ErrInvalidState)
	}
	return func(ctx context.Context) error {
		if sub.Mode == form.ModeEdit {
			return b.ctrl.Update(ctx, sub.ID, sub.Record)
		}
		return b.ctrl.Create(ctx, sub.Record)
	}, nil
}

func (b *binding[T]) Delete(ctx context.Context, id entity.ID) error {
	return b.ctrl.Delete(ctx, id)
}

// Cells formatea un registro según las columnas: importes en Rupiah, el resto tal cual.
func Cells(record any, cols []resource.Column) []string {
	fields := fieldsOf(record)
	out := make([]string, len(cols))
	for i, c := range cols {
		v := fields[c.Key]
		if c.Money {
			d, err := decimal.NewFromString(scalar(v))
			if err != nil {
				d = decimal.Zero
			}
			out[i] = money.Rupiah(d)
			continue
		}
		out[i] = scalar(v)
	}
	return out
}

func optionLabel(record any) string {
	f := fieldsOf(record)
	key := ""
	if r, ok := record.(entity.Record); ok {
		key = r.Key().String()
	}
	for _, k := range []string{"name", "username"} {
		if s := scalar(f[k]); s != "" {
			return s
		}
	}
	if d := scalar(f["order_date"]); d != "" {
		return key + " (" + d + ")"
	}
	return key
}

func fieldsOf(record any) map[string]any {
	raw, err := json.Marshal(record)
	if err != nil {
		return map[string]any{}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
