package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/backoffice-umkm/internal/interfaces/tui"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Consola interactiva: login, dashboard y las seis pantallas de datos",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// La terminal es de bubbletea: el log va a LOG_FILE.
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("abrir log %s: %w", cfg.Log.File, err)
	}
	defer f.Close()
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log = logger.New(logger.Config{Env: "production", Level: level, Output: f})

	a := newClientApp()
	toasts := tui.NewToasts()
	bs, err := a.bindings(toasts)
	if err != nil {
		return err
	}
	log.Info().Str("base_url", a.client.BaseURL()).Msg("tui iniciada")
	return tui.Run(tui.Deps{
		Auth:      a.auth,
		Guard:     a.guard,
		Dashboard: a.dashboard(),
		Bindings:  bs,
		Toasts:    toasts,
		Logger:    log,
	})
}
