package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/pkg/jwt"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthService registro, login y logout del sandbox. Los usuarios viven en la colección de users.
type AuthService struct {
	store   repository.RecordStore
	records *RecordService
	jwtCfg  JWTConfig
	log     *logger.Logger

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiración
}

// NewAuthService construye el servicio de auth.
func NewAuthService(store repository.RecordStore, records *RecordService, jwtCfg JWTConfig, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		store:   store,
		records: records,
		jwtCfg:  jwtCfg,
		log:     log.Named("sandbox-auth"),
		revoked: make(map[string]time.Time),
	}
}

// Register crea un usuario con password hasheado. Username único.
func (s *AuthService) Register(ctx context.Context, in entity.Registration) (entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if strings.TrimSpace(in.Name) == "" || in.Username == "" || in.Password == "" || strings.TrimSpace(in.Email) == "" {
		return entity.User{}, fmt.Errorf("%w: name, username, password y email son obligatorios", domain.ErrInvalidInput)
	}
	existing, _, err := s.findByUsername(ctx, in.Username)
	if err != nil {
		return entity.User{}, err
	}
	if existing != nil {
		return entity.User{}, fmt.Errorf("%w: username %q ya registrado", domain.ErrDuplicate, in.Username)
	}

	doc, err := s.records.Create(ctx, resource.User, repository.Document{
		"name":     in.Name,
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	})
	if err != nil {
		return entity.User{}, err
	}
	return toUser(doc), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, entity.User, error) {
	doc, hash, err := s.findByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", entity.User{}, err
	}
	if doc == nil || hash == "" {
		return "", entity.User{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", entity.User{}, domain.ErrUnauthorized
	}
	user := toUser(sanitize(doc))
	token, err := jwt.Generate(s.jwtCfg.Secret, user.ID.String(), user.Username, s.jwtCfg.Issuer, uuid.NewString(), s.jwtCfg.ExpMinutes)
	if err != nil {
		return "", entity.User{}, err
	}
	s.log.Info().Str("username", user.Username).Msg("login")
	return token, user, nil
}

// Logout revoca el token hasta su expiración.
func (s *AuthService) Logout(token string) error {
	claims, err := s.Verify(token)
	if err != nil {
		return err
	}
	exp := time.Now().Add(time.Duration(s.jwtCfg.ExpMinutes) * time.Minute)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.revoked[claims.ID] = exp
	return nil
}

// Verify valida firma, expiración y que el token no esté revocado.
func (s *AuthService) Verify(token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(s.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, fmt.Errorf("%w: token revocado", domain.ErrUnauthorized)
	}
	return claims, nil
}

func (s *AuthService) pruneLocked() {
	now := time.Now()
	for jti, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, jti)
		}
	}
}

// findByUsername busca en el documento crudo para poder leer el hash.
func (s *AuthService) findByUsername(ctx context.Context, username string) (repository.Document, string, error) {
	docs, err := s.store.List(ctx, string(resource.Users))
	if err != nil {
		return nil, "", fmt.Errorf("sandbox: listar usuarios: %w", err)
	}
	for _, d := range docs {
		if u, _ := d["username"].(string); u != "" && strings.EqualFold(u, username) {
			hash, _ := d[fieldHash].(string)
			return d, hash, nil
		}
	}
	return nil, "", nil
}

func toUser(doc repository.Document) entity.User {
	var u entity.User
	b, err := json.Marshal(doc)
	if err == nil {
		_ = json.Unmarshal(b, &u)
	}
	u.Password = ""
	return u
}
