package commands

import (
	"errors"
	"fmt"

	"github.com/jhoicas/backoffice-umkm/cmd/backoffice/output"
	"github.com/jhoicas/backoffice-umkm/internal/application/analytics"
	"github.com/jhoicas/backoffice-umkm/internal/application/auth"
	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/report"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	infrapdf "github.com/jhoicas/backoffice-umkm/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-umkm/internal/infrastructure/restapi"
	"github.com/jhoicas/backoffice-umkm/internal/infrastructure/session"
)

// errSessionExpired el backend rechazó el token; la sesión local ya está borrada.
var errSessionExpired = errors.New("sesi berakhir, silakan login kembali")

// clientApp dependencias del lado cliente, construidas desde cfg.
type clientApp struct {
	store  *session.FileStore
	client *restapi.Client
	auth   *auth.UseCase
	guard  *auth.Guard
}

func newClientApp() *clientApp {
	store := session.NewFileStore(cfg.Session.File)
	client := restapi.NewClient(restapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, store, log)
	return &clientApp{
		store:  store,
		client: client,
		auth:   auth.NewUseCase(client, store, log),
		guard:  auth.NewGuard(store, log),
	}
}

// bindings los seis recursos con la política de refresco configurada.
func (a *clientApp) bindings(n crud.Notifier) ([]crud.Binding, error) {
	policy, err := crud.ParsePolicy(cfg.API.RefreshPolicy)
	if err != nil {
		return nil, err
	}
	return restapi.Bindings(a.client, crud.Config{Policy: policy, Notifier: n, Logger: log}), nil
}

// binding uno solo por nombre.
func (a *clientApp) binding(name string) (crud.Binding, error) {
	if _, err := resource.Lookup(name); err != nil {
		return nil, err
	}
	bs, err := a.bindings(cliNotifier())
	if err != nil {
		return nil, err
	}
	b, _ := restapi.FindBinding(bs, name)
	return b, nil
}

func (a *clientApp) dashboard() *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(a.client)
}

func (a *clientApp) orderReport() *report.OrderReportUseCase {
	return report.NewOrderReportUseCase(
		restapi.Resource[entity.Order](a.client, resource.Order),
		restapi.Resource[entity.OrderItem](a.client, resource.OrderItem),
		restapi.Resource[entity.Product](a.client, resource.Product),
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
	)
}

// requireSession corta antes de llamar al backend si no hay token.
func (a *clientApp) requireSession() error {
	if a.store.Token() == "" {
		return errors.New(auth.MsgNotLoggedIn)
	}
	return nil
}

// check traduce un 401: la sesión local queda borrada.
func (a *clientApp) check(err error) error {
	if a.guard.Check(err) {
		return fmt.Errorf("%w (%v)", errSessionExpired, err)
	}
	return err
}

// cliNotifier los avisos del controlador van a stdout; en modo JSON se omiten.
func cliNotifier() crud.Notifier {
	return crud.NotifierFunc(func(n crud.Notification) {
		if jsonOutput {
			return
		}
		if n.Level == crud.LevelError {
			output.Error("%s", n.Message)
			return
		}
		output.Success("%s", n.Message)
	})
}
