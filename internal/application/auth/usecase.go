// Package auth casos de uso de sesión del lado del cliente: login, logout, registro y
// el guard que invalida la sesión ante un 401.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

// Mensajes mostrados al usuario.
const (
	MsgLoginOK          = "Login berhasil!"
	MsgLoginFailed      = "Terjadi kesalahan saat login."
	MsgNoToken          = "Login gagal: token tidak diterima"
	MsgLoginRequired    = "Username dan password wajib diisi."
	MsgRegisterFailed   = "Registrasi gagal"
	MsgRegisterRequired = "Nama, username, password, dan email wajib diisi."
	MsgNotLoggedIn      = "Anda belum login!"
	MsgLogoutOK         = "Logout berhasil"
	MsgLogoutFailed     = "Gagal logout"
)

// FallbackUser usuario mostrado cuando la sesión no trae uno.
var FallbackUser = entity.User{Name: "Admin", Email: "Admin@example.com"}

// ErrNoToken el backend respondió 2xx pero sin token.
var ErrNoToken = errors.New(MsgNoToken)

// UseCase orquesta AuthGateway y SessionStore.
type UseCase struct {
	gw    repository.AuthGateway
	store repository.SessionStore
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(gw repository.AuthGateway, store repository.SessionStore, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{gw: gw, store: store, log: log.Named("auth")}
}

// Login valida presencia, autentica y persiste token y usuario.
func (uc *UseCase) Login(ctx context.Context, username, password string) (entity.Session, error) {
	username = strings.TrimSpace(username)
	fields := map[string]string{}
	if username == "" {
		fields["username"] = "required"
	}
	if password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return entity.Session{}, &domain.ValidationFailure{Message: MsgLoginRequired, Fields: fields}
	}

	sess, err := uc.gw.Login(ctx, username, password)
	if err != nil {
		uc.log.Warn().Err(err).Str("username", username).Msg("login rechazado")
		return entity.Session{}, err
	}
	if sess.Token == "" {
		return entity.Session{}, ErrNoToken
	}
	if err := uc.store.Save(sess); err != nil {
		return entity.Session{}, fmt.Errorf("auth: guardar sesión: %w", err)
	}
	uc.log.Info().Str("username", username).Msg("sesión iniciada")
	return sess, nil
}

// Logout requiere token. La sesión local se borra siempre; el error del backend se devuelve
// solo para mostrarlo.
func (uc *UseCase) Logout(ctx context.Context) error {
	token := uc.store.Token()
	if token == "" {
		return fmt.Errorf("auth: logout sin sesión: %w", domain.ErrInvalidState)
	}
	remoteErr := uc.gw.Logout(ctx, token)
	if remoteErr != nil {
		uc.log.Warn().Err(remoteErr).Msg("logout remoto fallido; se borra la sesión local igualmente")
	}
	if err := uc.store.Clear(); err != nil {
		return fmt.Errorf("auth: borrar sesión: %w", err)
	}
	return remoteErr
}

// Register alta de un usuario administrador. No inicia sesión.
func (uc *UseCase) Register(ctx context.Context, in entity.Registration) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	fields := map[string]string{}
	for key, v := range map[string]string{"name": in.Name, "username": in.Username, "password": in.Password, "email": in.Email} {
		if v == "" {
			fields[key] = "required"
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationFailure{Message: MsgRegisterRequired, Fields: fields}
	}
	if err := uc.gw.Register(ctx, in); err != nil {
		uc.log.Warn().Err(err).Str("username", in.Username).Msg("registro rechazado")
		return err
	}
	return nil
}

// Session sesión actual (vacía si no hay).
func (uc *UseCase) Session() entity.Session {
	sess, err := uc.store.Load()
	if err != nil {
		return entity.Session{}
	}
	return sess
}

// CurrentUser usuario de la sesión o FallbackUser si no está guardado.
func (uc *UseCase) CurrentUser() entity.User {
	u := uc.Session().User
	if u.Name == "" && u.Email == "" && u.Username == "" {
		return FallbackUser
	}
	return u
}

// Message texto para el usuario: el message del backend o el mensaje por defecto.
func Message(err error, fallback string) string {
	var re *domain.RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var vf *domain.ValidationFailure
	if errors.As(err, &vf) {
		return vf.Message
	}
	if errors.Is(err, ErrNoToken) {
		return MsgNoToken
	}
	return fallback
}
