// Package commands define la CLI backoffice (cobra).
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/backoffice-umkm/pkg/config"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

var (
	// Flags globales
	verbose    bool
	jsonOutput bool

	cfg *config.Config
	log *logger.Logger
)

// rootCmd comando base
var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Back office UMKM: administración de usuarios, customers, productos y pedidos",
	Long: `Consola de administración para el backend REST de una tienda online.

Incluye:
  - login/logout y registro de administradores
  - listado, alta, edición y borrado de los seis recursos
  - dashboard con los totales y exportación de pedidos a PDF
  - consola interactiva (tui) y un backend local de desarrollo (sandbox)`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		log = newLogger(cmd)
		return nil
	},
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log de depuración")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Salida en formato JSON")
}

// newLogger la CLI escribe el log en stderr; la tui y el sandbox lo sustituyen.
func newLogger(cmd *cobra.Command) *logger.Logger {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: cmd.ErrOrStderr()})
}
