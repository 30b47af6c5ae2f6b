package commands

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/backoffice-umkm/cmd/backoffice/output"
	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/form"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/pkg/money"
)

var (
	setValues []string
	assumeYes bool
)

var listCmd = &cobra.Command{
	Use:       "list <resource>",
	Short:     "Lista un recurso",
	Long:      "Recursos: " + strings.Join(resource.Names(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: resource.Names(),
	RunE:      runList,
}

var createCmd = &cobra.Command{
	Use:   "create <resource> --set key=value ...",
	Short: "Da de alta un registro validando como el formulario",
	Example: `  backoffice create products --set name=Kopi --set price=15000 --set stock=3 --set category_id=1
  backoffice create order-items --set order_id=O1 --set product_id=P1 --set quantity=2 --set price=15000`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update <resource> <id> --set key=value ...",
	Short: "Edita un registro; los campos no indicados conservan su valor",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Borra un registro (pide confirmación salvo --yes)",
	Args:  cobra.ExactArgs(2),
	RunE:  runDelete,
}

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Totales del dashboard",
	RunE:  runCounts,
}

func init() {
	rootCmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd, countsCmd)
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringArrayVar(&setValues, "set", nil, "Valor de un campo (key=value), repetible")
	}
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "No pedir confirmación")
}

func runList(cmd *cobra.Command, args []string) error {
	a := newClientApp()
	if err := a.requireSession(); err != nil {
		return err
	}
	b, err := a.binding(args[0])
	if err != nil {
		return err
	}
	if err := a.check(b.Load(cmd.Context())); err != nil {
		return err
	}
	snap := b.Snapshot()
	if jsonOutput {
		records := make([]any, len(snap.Rows))
		for i, r := range snap.Rows {
			records[i] = r.Record
		}
		return output.JSON(records)
	}

	desc := b.Descriptor()
	output.Section(desc.Title)
	if len(snap.Rows) == 0 {
		output.Muted("Belum ada data.")
		return nil
	}
	return output.Table(tableHeaders(desc), tableRows(snap))
}

func tableHeaders(desc resource.Descriptor) []string {
	h := []string{"No", "ID"}
	for _, c := range desc.Columns {
		h = append(h, c.Title)
	}
	return h
}

func tableRows(snap crud.Snapshot) [][]string {
	rows := make([][]string, len(snap.Rows))
	for i, r := range snap.Rows {
		rows[i] = append([]string{strconv.Itoa(i + 1), r.ID.String()}, r.Cells...)
	}
	return rows
}

func runCreate(cmd *cobra.Command, args []string) error {
	a := newClientApp()
	if err := a.requireSession(); err != nil {
		return err
	}
	b, err := a.binding(args[0])
	if err != nil {
		return err
	}
	b.Form().OpenCreate()
	return submit(cmd, a, b)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a := newClientApp()
	if err := a.requireSession(); err != nil {
		return err
	}
	b, err := a.binding(args[0])
	if err != nil {
		return err
	}
	// El modal de edición se precarga desde la colección: hay que cargarla primero.
	if err := a.check(b.Load(cmd.Context())); err != nil {
		return err
	}
	if err := b.OpenEdit(entity.ID(args[1])); err != nil {
		return err
	}
	return submit(cmd, a, b)
}

// submit aplica los --set al modal abierto, valida y ejecuta la mutación.
func submit(cmd *cobra.Command, a *clientApp, b crud.Binding) error {
	values, err := parseSets(setValues)
	if err != nil {
		return err
	}
	for _, k := range sortedKeys(values) {
		if err := b.Form().Set(k, values[k]); err != nil {
			return fmt.Errorf("%w (campos: %s)", err, fieldKeys(b.Form()))
		}
	}
	mut, err := b.Submit()
	if err != nil {
		var vf *domain.ValidationFailure
		if errors.As(err, &vf) {
			for _, k := range sortedKeys(vf.Fields) {
				output.Muted("  %s: %s", k, vf.Fields[k])
			}
		}
		return err
	}
	if err := a.check(mut(cmd.Context())); err != nil {
		return err
	}
	if jsonOutput {
		snap := b.Snapshot()
		return output.JSON(map[string]any{"state": snap.State.String(), "count": len(snap.Rows)})
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	a := newClientApp()
	if err := a.requireSession(); err != nil {
		return err
	}
	b, err := a.binding(args[0])
	if err != nil {
		return err
	}
	if !assumeYes {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", b.Descriptor().DeletePrompt())
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if ans := strings.ToLower(strings.TrimSpace(line)); ans != "y" && ans != "ya" {
			output.Muted("Dibatalkan.")
			return nil
		}
	}
	if err := a.check(b.Delete(cmd.Context(), entity.ID(args[1]))); err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(map[string]string{"message": b.Descriptor().Messages.Deleted, "id": args[1]})
	}
	return nil
}

func runCounts(cmd *cobra.Command, _ []string) error {
	a := newClientApp()
	if err := a.requireSession(); err != nil {
		return err
	}
	cards, err := a.dashboard().GetCards(cmd.Context())
	if err := a.check(err); err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(cards)
	}
	output.Section("Dashboard")
	rows := make([][]string, len(cards.Cards))
	for i, c := range cards.Cards {
		rows[i] = []string{c.Title, money.Number(int64(c.Value)), c.Footer}
	}
	return output.Table([]string{"Kartu", "Jumlah", "Keterangan"}, rows)
}

// parseSets convierte key=value en mapa; el valor puede contener '='.
func parseSets(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("--set %q: se espera key=value", p)
		}
		out[k] = v
	}
	return out, nil
}

func fieldKeys(ed form.Editor) string {
	keys := make([]string, 0)
	for _, f := range ed.Fields() {
		keys = append(keys, f.Key)
	}
	return strings.Join(keys, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
