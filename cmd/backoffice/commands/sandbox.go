package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/backoffice-umkm/internal/application/sandbox"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/internal/infrastructure/memory"
	"github.com/jhoicas/backoffice-umkm/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/backoffice-umkm/internal/interfaces/http"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Levanta el backend REST local de desarrollo",
	Long: `Sirve /api con el mismo contrato que el backend real: register, login, logout,
dashboard-counts y CRUD de user, customer, product, order, order-item y category.

SANDBOX_STORE=memory (por defecto) o postgres (usa DATABASE_URL o DB_*).`,
	RunE: runSandbox,
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(_ *cobra.Command, _ []string) error {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log = logger.New(logger.Config{Env: cfg.App.Env, Level: level})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Sandbox.Store).
		Msg("iniciando sandbox")

	ctx := context.Background()
	var store repository.RecordStore
	switch cfg.Sandbox.Store {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("conexión a PostgreSQL")
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Error().Err(err).Msg("migración")
			return err
		}
		store = postgres.NewRecordStore(pool)
	default:
		store = memory.NewRecordStore()
	}

	records := sandbox.NewRecordService(store, log)
	authSvc := sandbox.NewAuthService(store, records, sandbox.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := apphttp.NewApp(apphttp.AppConfig{Name: cfg.App.Name, SwaggerFile: cfg.Sandbox.SwaggerFile},
		apphttp.RouterDeps{Records: records, Auth: authSvc}, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("sandbox detenido")
	return nil
}
