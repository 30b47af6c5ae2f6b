package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/application/auth"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/infrastructure/session"
)

// ── Gateway falso ────────────────────────────────────────────────────────────

type fakeAuth struct {
	session     entity.Session
	loginErr    error
	logoutErr   error
	registerErr error

	loginCalls    int
	logoutToken   string
	registered    entity.Registration
	registerCalls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (entity.Session, error) {
	f.loginCalls++
	return f.session, f.loginErr
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	f.logoutToken = token
	return f.logoutErr
}

func (f *fakeAuth) Register(_ context.Context, in entity.Registration) error {
	f.registerCalls++
	f.registered = in
	return f.registerErr
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso_PersisteSesion(t *testing.T) {
	gw := &fakeAuth{session: entity.Session{Token: "tok", User: entity.User{Name: "Sari"}}}
	store := session.NewMemory(entity.Session{})
	uc := auth.NewUseCase(gw, store, nil)

	sess, err := uc.Login(context.Background(), " sari ", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "tok", store.Token())
	assert.Equal(t, "Sari", uc.CurrentUser().Name)
}

func TestLogin_CamposVacios_NoLlamaBackend(t *testing.T) {
	gw := &fakeAuth{}
	uc := auth.NewUseCase(gw, session.NewMemory(entity.Session{}), nil)

	_, err := uc.Login(context.Background(), "  ", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, gw.loginCalls)
}

func TestLogin_SinToken_Error(t *testing.T) {
	gw := &fakeAuth{session: entity.Session{User: entity.User{Name: "Sari"}}}
	store := session.NewMemory(entity.Session{})
	uc := auth.NewUseCase(gw, store, nil)

	_, err := uc.Login(context.Background(), "sari", "x")
	require.ErrorIs(t, err, auth.ErrNoToken)
	assert.Empty(t, store.Token())
	assert.Equal(t, auth.MsgNoToken, auth.Message(err, auth.MsgLoginFailed))
}

func TestLogin_Rechazado_MensajeDelBackend(t *testing.T) {
	gw := &fakeAuth{loginErr: domain.NewRequestError("POST", "/login", http.StatusUnauthorized, []byte(`{"message":"Username atau password salah"}`))}
	uc := auth.NewUseCase(gw, session.NewMemory(entity.Session{}), nil)

	_, err := uc.Login(context.Background(), "sari", "x")
	require.Error(t, err)
	assert.Equal(t, "Username atau password salah", auth.Message(err, auth.MsgLoginFailed))
	assert.Equal(t, auth.MsgLoginFailed, auth.Message(errors.New("boom"), auth.MsgLoginFailed))
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestLogout_SinToken_ErrInvalidState(t *testing.T) {
	gw := &fakeAuth{}
	uc := auth.NewUseCase(gw, session.NewMemory(entity.Session{}), nil)

	err := uc.Logout(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, gw.logoutToken, "no debe llamar al backend")
}

func TestLogout_BorraSesionAunqueFalleElBackend(t *testing.T) {
	gw := &fakeAuth{logoutErr: &domain.NetworkFailure{Op: "POST /logout", Err: errors.New("refused")}}
	store := session.NewMemory(entity.Session{Token: "tok"})
	uc := auth.NewUseCase(gw, store, nil)

	err := uc.Logout(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "tok", gw.logoutToken)
	assert.Empty(t, store.Token())
}

func TestLogout_Exitoso(t *testing.T) {
	store := session.NewMemory(entity.Session{Token: "tok"})
	uc := auth.NewUseCase(&fakeAuth{}, store, nil)

	require.NoError(t, uc.Logout(context.Background()))
	assert.Empty(t, store.Token())
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegister_CamposObligatorios(t *testing.T) {
	gw := &fakeAuth{}
	uc := auth.NewUseCase(gw, session.NewMemory(entity.Session{}), nil)

	err := uc.Register(context.Background(), entity.Registration{Name: "Sari", Username: "sari"})
	var vf *domain.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Contains(t, vf.Fields, "password")
	assert.Contains(t, vf.Fields, "email")
	assert.Zero(t, gw.registerCalls)
}

func TestRegister_Exitoso_NoIniciaSesion(t *testing.T) {
	gw := &fakeAuth{}
	store := session.NewMemory(entity.Session{})
	uc := auth.NewUseCase(gw, store, nil)

	err := uc.Register(context.Background(), entity.Registration{Name: " Sari ", Username: "sari", Password: "p", Email: "s@t.id"})
	require.NoError(t, err)
	assert.Equal(t, "Sari", gw.registered.Name)
	assert.Empty(t, store.Token())
}

func TestRegister_ErrorSinMensaje_Fallback(t *testing.T) {
	gw := &fakeAuth{registerErr: domain.NewRequestError("POST", "/register", 500, nil)}
	uc := auth.NewUseCase(gw, session.NewMemory(entity.Session{}), nil)

	err := uc.Register(context.Background(), entity.Registration{Name: "a", Username: "b", Password: "c", Email: "d"})
	assert.Equal(t, auth.MsgRegisterFailed, auth.Message(err, auth.MsgRegisterFailed))
}

// ── Usuario actual y guard ───────────────────────────────────────────────────

func TestCurrentUser_Fallback(t *testing.T) {
	uc := auth.NewUseCase(&fakeAuth{}, session.NewMemory(entity.Session{Token: "tok"}), nil)
	assert.Equal(t, auth.FallbackUser, uc.CurrentUser())
}

func TestGuard_401BorraSesion(t *testing.T) {
	store := session.NewMemory(entity.Session{Token: "tok"})
	g := auth.NewGuard(store, nil)

	assert.False(t, g.Check(nil))
	assert.False(t, g.Check(domain.NewRequestError("GET", "/products", 500, nil)))
	assert.Equal(t, "tok", store.Token())

	assert.True(t, g.Check(domain.NewRequestError("GET", "/products", http.StatusUnauthorized, nil)))
	assert.Empty(t, store.Token())
}
