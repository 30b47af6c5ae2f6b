package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/dto"
	"github.com/jhoicas/backoffice-umkm/pkg/money"
)

// ConfirmationDialog diálogo sí/no. Por defecto queda seleccionado "Batal".
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
	OnConfirm   func() tea.Cmd
}

// NewConfirmationDialog crea el diálogo.
func NewConfirmationDialog(title, message string, onConfirm func() tea.Cmd) ConfirmationDialog {
	return ConfirmationDialog{Title: title, Message: message, OnConfirm: onConfirm}
}

// Update devuelve done=true cuando el usuario decidió; cmd es el de OnConfirm si aceptó.
func (d *ConfirmationDialog) Update(msg tea.KeyMsg) (cmd tea.Cmd, done bool) {
	switch msg.String() {
	case "left", "h", "y":
		d.YesSelected = true
		if msg.String() == "y" {
			return d.confirm(), true
		}
	case "right", "l":
		d.YesSelected = false
	case "esc", "q", "n":
		return nil, true
	case "enter":
		if d.YesSelected {
			return d.confirm(), true
		}
		return nil, true
	}
	return nil, false
}

func (d *ConfirmationDialog) confirm() tea.Cmd {
	if d.OnConfirm == nil {
		return nil
	}
	return d.OnConfirm()
}

// View pinta el diálogo.
func (d ConfirmationDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yes := inactiveButtonStyle.Render("Hapus")
	no := inactiveButtonStyle.Render("Batal")
	if d.YesSelected {
		yes = activeButtonStyle.Render("Hapus")
	} else {
		no = activeButtonStyle.Render("Batal")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yes, "  ", no))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(FormatKey("←/→", "pilih") + " • " + FormatKey("enter", "konfirmasi") + " • " + FormatKey("esc", "batal")))
	return activeBoxStyle.Render(b.String())
}

// Toasts cola de avisos. Los controladores notifican desde las goroutines de los tea.Cmd
// y el modelo la vacía al recibir el mensaje de fin de operación.
type Toasts struct {
	mu      sync.Mutex
	pending []crud.Notification
}

var _ crud.Notifier = (*Toasts)(nil)

// NewToasts crea la cola vacía.
func NewToasts() *Toasts { return &Toasts{} }

func (t *Toasts) Notify(n crud.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, n)
}

// Drain devuelve y vacía los avisos pendientes.
func (t *Toasts) Drain() []crud.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.pending
	t.pending = nil
	return out
}

const maxToasts = 3

// toastArea últimos avisos visibles.
type toastArea struct {
	items []crud.Notification
}

func (a *toastArea) push(ns ...crud.Notification) {
	a.items = append(a.items, ns...)
	if len(a.items) > maxToasts {
		a.items = a.items[len(a.items)-maxToasts:]
	}
}

func (a toastArea) last() (crud.Notification, bool) {
	if len(a.items) == 0 {
		return crud.Notification{}, false
	}
	return a.items[len(a.items)-1], true
}

func (a toastArea) View() string {
	if len(a.items) == 0 {
		return ""
	}
	lines := make([]string, len(a.items))
	for i, n := range a.items {
		lines[i] = FormatToast(n)
	}
	return strings.Join(lines, "\n")
}

// renderCards tarjetas del dashboard, tres por fila.
func renderCards(d *dto.DashboardDTO) string {
	if d == nil || len(d.Cards) == 0 {
		return mutedStyle.Render("Memuat data...")
	}
	var rows []string
	var row []string
	for i, c := range d.Cards {
		card := mutedStyle.Render(c.Title) + "\n" +
			cardValueStyle.Render(money.Number(int64(c.Value))) + "\n" +
			subtitleStyle.Render(c.Footer)
		row = append(row, cardStyle.Render(card))
		if len(row) == 3 || i == len(d.Cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
