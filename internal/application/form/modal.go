package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

const defaultAlert = "Mohon lengkapi semua field yang wajib diisi."

// Mode alta o edición.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Outcome cómo se cerró el modal la última vez.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCancelled
	OutcomeSubmitted
)

// Submission lo que el modal entrega al controlador. ID solo en edición.
type Submission[T entity.Record] struct {
	Mode   Mode
	ID     entity.ID
	Record T
}

// SubmitFunc callback del controlador. El modal no espera su resultado.
type SubmitFunc[T entity.Record] func(Submission[T])

// Editor parte del modal que no depende del tipo del registro; la usan las vistas.
type Editor interface {
	OpenCreate()
	IsOpen() bool
	Mode() Mode
	Title() string
	Fields() []Field
	Value(key string) string
	Set(key, value string) error
	Alert() string
	Cancel()
}

var _ Editor = (*Modal[entity.User])(nil)

// Modal máquina de estados Closed -> Open(create|edit) -> Closed(cancelled|submitted).
type Modal[T entity.Record] struct {
	mu       sync.Mutex
	schema   Schema
	onSubmit SubmitFunc[T]

	open    bool
	mode    Mode
	id      entity.ID
	values  map[string]string
	alert   string
	outcome Outcome
}

// NewModal construye un modal cerrado.
func NewModal[T entity.Record](schema Schema, onSubmit SubmitFunc[T]) *Modal[T] {
	return &Modal[T]{schema: schema, onSubmit: onSubmit}
}

// Schema devuelve la definición de campos.
func (m *Modal[T]) Schema() Schema { return m.schema }

// OpenCreate abre el modal con todos los campos en blanco (o su Default).
func (m *Modal[T]) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.mode = ModeCreate
	m.id = ""
	m.alert = ""
	m.outcome = OutcomeNone
	m.values = make(map[string]string, len(m.schema.Fields))
	for _, f := range m.schema.Fields {
		m.values[f.Key] = f.Default
	}
}

// OpenEdit abre el modal precargado con el registro. Los campos WriteOnly quedan vacíos.
func (m *Modal[T]) OpenEdit(record T) error {
	if record.Key().IsZero() {
		return fmt.Errorf("form: registro sin identificador: %w", domain.ErrInvalidState)
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("form: serializar registro: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return fmt.Errorf("form: leer registro: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.mode = ModeEdit
	m.id = record.Key()
	m.alert = ""
	m.outcome = OutcomeNone
	m.values = make(map[string]string, len(m.schema.Fields))
	for _, f := range m.schema.Fields {
		if f.WriteOnly || f.CreateOnly {
			m.values[f.Key] = ""
			continue
		}
		m.values[f.Key] = stringify(fields[f.Key])
	}
	return nil
}

// Set cambia el valor crudo de un campo (lo que el usuario tecleó).
func (m *Modal[T]) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return fmt.Errorf("form: modal cerrado: %w", domain.ErrInvalidState)
	}
	f, ok := m.schema.Field(key)
	if !ok || (m.mode == ModeEdit && f.CreateOnly) {
		return fmt.Errorf("form: campo desconocido %q: %w", key, domain.ErrInvalidInput)
	}
	m.values[key] = value
	return nil
}

// Value valor crudo actual.
func (m *Modal[T]) Value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

// Cancel cierra sin enviar.
func (m *Modal[T]) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return
	}
	m.open = false
	m.alert = ""
	m.outcome = OutcomeCancelled
}

// Submit valida; si falla deja el modal abierto con la alerta y no llama al callback.
// Si pasa, construye el registro, invoca el callback y cierra de inmediato.
func (m *Modal[T]) Submit() error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return fmt.Errorf("form: modal cerrado: %w", domain.ErrInvalidState)
	}
	if vf := m.validate(); vf != nil {
		m.alert = vf.Message
		m.mu.Unlock()
		return vf
	}
	record, err := m.build()
	if err != nil {
		m.alert = err.Error()
		m.mu.Unlock()
		return err
	}
	sub := Submission[T]{Mode: m.mode, ID: m.id, Record: record}
	m.open = false
	m.alert = ""
	m.outcome = OutcomeSubmitted
	cb := m.onSubmit
	m.mu.Unlock()

	if cb != nil {
		cb(sub)
	}
	return nil
}

// IsOpen, Mode, Alert, Outcome lectura del estado para la vista.
func (m *Modal[T]) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal[T]) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Modal[T]) Alert() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alert
}

func (m *Modal[T]) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome
}

// Title título según el modo.
func (m *Modal[T]) Title() string {
	if m.Mode() == ModeEdit {
		return m.schema.TitleEdit
	}
	return m.schema.TitleCreate
}

// Fields campos visibles en el modo actual.
func (m *Modal[T]) Fields() []Field {
	return m.schema.Visible(m.Mode())
}

func (m *Modal[T]) validate() *domain.ValidationFailure {
	problems := map[string]string{}
	for _, f := range m.schema.Visible(m.mode) {
		raw := strings.TrimSpace(m.values[f.Key])
		required := f.Required || (f.RequiredOnCreate && m.mode == ModeCreate)

		if f.Kind.Numeric() {
			n := coerce(f.Kind, raw)
			switch f.Rule {
			case RulePositive:
				if !n.IsPositive() {
					problems[f.Key] = "harus lebih dari 0"
				}
			case RuleNonNegative:
				if n.IsNegative() {
					problems[f.Key] = "tidak boleh negatif"
				}
			}
			continue
		}
		if raw == "" {
			if required {
				problems[f.Key] = "wajib diisi"
			}
			continue
		}
		if f.Kind == KindEnum && !contains(f.Options, raw) {
			problems[f.Key] = "pilihan tidak valid"
		}
	}
	if len(problems) == 0 {
		return nil
	}
	msg := m.schema.Alert
	if msg == "" {
		msg = defaultAlert
	}
	return &domain.ValidationFailure{Message: msg, Fields: problems}
}

func (m *Modal[T]) build() (T, error) {
	var zero T
	payload := make(map[string]any, len(m.schema.Fields))
	for _, f := range m.schema.Visible(m.mode) {
		raw := strings.TrimSpace(m.values[f.Key])
		switch {
		case f.Kind == KindInt:
			payload[f.Key] = coerce(f.Kind, raw).IntPart()
		case f.Kind == KindDecimal:
			payload[f.Key] = coerce(f.Kind, raw)
		case f.WriteOnly && raw == "":
			// sin cambio
		case f.Kind == KindPassword:
			payload[f.Key] = m.values[f.Key]
		default:
			payload[f.Key] = raw
		}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return zero, fmt.Errorf("form: serializar: %w", err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, fmt.Errorf("form: construir registro: %w", err)
	}
	return out, nil
}

// coerce convierte la entrada a número; vacío o no numérico vale 0.
func coerce(kind Kind, raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	if kind == KindInt {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromInt(int64(f))
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
