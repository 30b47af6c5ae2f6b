package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/backoffice-umkm/internal/application/dto"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

var (
	_ repository.AuthGateway      = (*Client)(nil)
	_ repository.DashboardGateway = (*Client)(nil)
)

// Login POST /login sin token. No persiste nada: eso lo hace el caso de uso de auth.
func (c *Client) Login(ctx context.Context, username, password string) (entity.Session, error) {
	raw, err := c.do(ctx, http.MethodPost, "login", "", dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return entity.Session{}, err
	}
	payload := json.RawMessage(raw)
	if data, ok := unwrapData(raw); ok && firstByte(data) == '{' {
		payload = data
	}
	var out dto.LoginResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return entity.Session{}, fmt.Errorf("restapi: decodificar login: %w", err)
	}
	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	return entity.Session{Token: token, User: out.User}, nil
}

// Logout POST /logout con el token indicado.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("restapi: logout: %w", domain.ErrInvalidState)
	}
	_, err := c.do(ctx, http.MethodPost, "logout", token, nil)
	return err
}

// Register POST /register sin token.
func (c *Client) Register(ctx context.Context, in entity.Registration) error {
	_, err := c.do(ctx, http.MethodPost, "register", "", in)
	return err
}

// DashboardCounts GET /dashboard-counts; acepta el objeto tal cual o envuelto en data.
func (c *Client) DashboardCounts(ctx context.Context) (entity.DashboardCounts, error) {
	raw, err := c.do(ctx, http.MethodGet, "dashboard-counts", c.token(), nil)
	if err != nil {
		return entity.DashboardCounts{}, err
	}
	payload := json.RawMessage(raw)
	if data, ok := unwrapData(raw); ok && firstByte(data) == '{' {
		payload = data
	}
	var counts entity.DashboardCounts
	if err := json.Unmarshal(payload, &counts); err != nil {
		return entity.DashboardCounts{}, fmt.Errorf("restapi: decodificar dashboard-counts: %w", err)
	}
	return counts, nil
}
