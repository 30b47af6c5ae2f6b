// Package restapi es el cliente HTTP del backend REST del back office.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

const maxResponseBytes = 10 << 20

// Config base de la API y timeout (0 = sin timeout propio).
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // opcional, para tests
}

// Client adaptador REST. La sesión se inyecta: cada petición lee el token del store en ese momento.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    repository.SessionStore
	log        *logger.Logger
}

// NewClient construye el cliente. session puede ser nil (peticiones sin Authorization).
func NewClient(cfg Config, session repository.SessionStore, log *logger.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		session:    session,
		log:        log.Named("restapi"),
	}
}

// BaseURL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) token() string {
	if c.session == nil {
		return ""
	}
	return c.session.Token()
}

// do ejecuta la petición. token vacío = sin cabecera Authorization (no es error: el backend decide).
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	op := method + " /" + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("restapi: serializar %s: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("restapi: crear request %s: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("request_id", requestID).Str("op", op).Msg("fallo de red")
		return nil, &domain.NetworkFailure{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.NetworkFailure{Op: op, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", "/"+path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("petición HTTP")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewRequestError(method, "/"+path, resp.StatusCode, raw)
	}
	return raw, nil
}

// unwrapData devuelve el contenido de {"data": ...} si el cuerpo es un objeto con esa clave.
func unwrapData(raw []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false
	}
	data, ok := env["data"]
	return data, ok
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
