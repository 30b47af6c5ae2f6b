package dto

import "encoding/json"

// ErrorResponse cuerpo de error HTTP. message sigue el formato de Laravel para que el cliente
// pueda mostrarlo tal cual.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListEnvelope respuesta de los listados: {"data": [...]}.
type ListEnvelope struct {
	Data json.RawMessage `json:"data" swaggertype:"array,object"`
}

// RecordEnvelope respuesta de alta y edición: mensaje y registro resultante.
type RecordEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data" swaggertype:"object"`
}

// MessageResponse confirmaciones sin payload (logout, borrado).
type MessageResponse struct {
	Message string `json:"message"`
}
