package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")

	// ErrInvalidState operación pedida en un estado que no la admite (logout sin token, modal cerrado).
	ErrInvalidState = errors.New("estado inválido para la operación")
)

// RequestError respuesta no-2xx del backend. Body conserva el cuerpo crudo para inspección.
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Body    json.RawMessage
	Message string // campo "message" del cuerpo, si existe
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Status)
}

// NewRequestError construye el error y extrae el message (formato Laravel o {code,message}).
func NewRequestError(method, path string, status int, body []byte) *RequestError {
	e := &RequestError{Method: method, Path: path, Status: status}
	if len(body) > 0 {
		if json.Valid(body) {
			e.Body = json.RawMessage(body)
			var withMsg struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(body, &withMsg); err == nil {
				e.Message = withMsg.Message
			}
		} else {
			quoted, _ := json.Marshal(strings.TrimSpace(string(body)))
			e.Body = quoted
		}
	}
	return e
}

// NetworkFailure fallo de transporte (DNS, conexión rechazada, cuerpo ilegible).
type NetworkFailure struct {
	Op  string
	Err error
}

func (e *NetworkFailure) Error() string {
	return fmt.Sprintf("red: %s: %v", e.Op, e.Err)
}

func (e *NetworkFailure) Unwrap() error { return e.Err }

// ValidationFailure validación local previa al envío; nunca llega al backend.
type ValidationFailure struct {
	Message string
	Fields  map[string]string // campo -> motivo
}

func (e *ValidationFailure) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(keys, ", "))
}

func (e *ValidationFailure) Is(target error) bool { return target == ErrInvalidInput }

// StatusOf devuelve el status HTTP de un RequestError envuelto, o 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// IsUnauthorized indica un 401 del backend (sesión ausente, expirada o revocada).
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// UserMessage texto apto para un toast o alerta: el message del backend si lo hay.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var vf *ValidationFailure
	if errors.As(err, &vf) {
		return vf.Message
	}
	return err.Error()
}
