package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/backoffice-umkm/cmd/backoffice/output"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:       "export orders",
	Short:     "Exporta los pedidos con sus items a PDF",
	Long:      `Genera laporan_pesanan_<fecha>.pdf con cada pedido, sus items y los subtotales.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"orders"},
	RunE:      runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "Directorio de salida")
}

func runExport(cmd *cobra.Command, args []string) error {
	if args[0] != "orders" {
		return fmt.Errorf("solo se exporta %q", "orders")
	}
	a := newClientApp()
	if err := a.requireSession(); err != nil {
		return err
	}
	doc, name, err := a.orderReport().Export(cmd.Context())
	if err := a.check(err); err != nil {
		return err
	}
	path := filepath.Join(exportDir, name)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	log.Info().Str("file", path).Int("bytes", len(doc)).Msg("informe de pedidos generado")
	if jsonOutput {
		return output.JSON(map[string]any{"file": path, "bytes": len(doc)})
	}
	output.Success("Laporan disimpan di %s", path)
	return nil
}
