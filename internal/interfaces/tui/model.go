// Package tui es la consola interactiva del back office (bubbletea): login, dashboard y una
// pantalla de tabla por recurso con modal de alta/edición y confirmación de borrado.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/backoffice-umkm/internal/application/analytics"
	"github.com/jhoicas/backoffice-umkm/internal/application/auth"
	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/dto"
	"github.com/jhoicas/backoffice-umkm/internal/application/form"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

const (
	msgSessionExpired = "Sesi berakhir, silakan login kembali."
	msgCardsFailed    = "Gagal memuat data dashboard"
	msgStale          = "menampilkan data terakhir"
)

// Mode pantalla activa.
type Mode int

const (
	ModeLogin Mode = iota
	ModeDashboard
	ModeResource
	ModeForm
	ModeConfirm
)

// Deps casos de uso que la consola orquesta. Bindings va en el orden del menú.
type Deps struct {
	Auth      *auth.UseCase
	Guard     *auth.Guard
	Dashboard *analytics.DashboardUseCase
	Bindings  []crud.Binding
	Toasts    *Toasts
	Logger    *logger.Logger
}

// Model modelo bubbletea de la consola.
type Model struct {
	deps Deps
	log  *logger.Logger

	mode   Mode
	screen int // índice en deps.Bindings en ModeResource/Form/Confirm

	username   textinput.Model
	password   textinput.Model
	loginFocus int

	busy    bool
	spinner spinner.Model

	cards    *dto.DashboardDTO
	cardsErr error

	tables []table.Model
	rowIDs [][]entity.ID

	form    formView
	confirm ConfirmationDialog
	toasts  toastArea
	user    entity.User

	width  int
	height int
}

// NewModel construye la consola. Si ya hay sesión guardada arranca en el dashboard.
func NewModel(deps Deps) Model {
	if deps.Toasts == nil {
		deps.Toasts = NewToasts()
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	user := newInput("username")
	user.Focus()
	pass := newInput("password")
	pass.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	m := Model{
		deps:     deps,
		log:      log.Named("tui"),
		mode:     ModeLogin,
		username: user,
		password: pass,
		spinner:  sp,
		tables:   make([]table.Model, len(deps.Bindings)),
		rowIDs:   make([][]entity.ID, len(deps.Bindings)),
	}
	for i, b := range deps.Bindings {
		m.tables[i] = newTable(b)
	}
	if deps.Auth != nil && deps.Auth.Session().Active() {
		m.mode = ModeDashboard
		m.user = deps.Auth.CurrentUser()
	}
	return m
}

// newInput textinput con cursor fijo: el parpadeo no genera ticks.
func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func newTable(b crud.Binding) table.Model {
	desc := b.Descriptor()
	cols := []table.Column{{Title: "No", Width: 4}}
	width := 4 + 2
	for _, c := range desc.Columns {
		w := len(c.Title) + 2
		switch {
		case c.Money:
			w = 16
		case w < 14:
			w = 14
		}
		cols = append(cols, table.Column{Title: c.Title, Width: w})
		width += w + 2
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(10), table.WithWidth(width))
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorBorder).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(colorText).Background(colorPrimary).Bold(false)
	t.SetStyles(st)
	return t
}

// Mode pantalla activa (tests y cabecera).
func (m Model) Mode() Mode { return m.mode }

// Screen recurso activo; -1 en el dashboard o el login.
func (m Model) Screen() int {
	if m.mode == ModeLogin || m.mode == ModeDashboard {
		return -1
	}
	return m.screen
}

// LastToast último aviso mostrado.
func (m Model) LastToast() (crud.Notification, bool) { return m.toasts.last() }

// Busy hay una llamada remota en curso.
func (m Model) Busy() bool { return m.busy }

// Init arranca el spinner y, con sesión, la carga del dashboard.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tea.EnterAltScreen}
	if m.mode == ModeDashboard {
		cmds = append(cmds, loadCardsCmd(m))
	}
	return tea.Batch(cmds...)
}

// Update maneja los mensajes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - 14
		if h < 5 {
			h = 5
		}
		for i := range m.tables {
			m.tables[i].SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.pushError(auth.Message(msg.err, auth.MsgLoginFailed))
			return m, nil
		}
		m.password.SetValue("")
		m.user = m.deps.Auth.CurrentUser()
		m.pushSuccess(auth.MsgLoginOK)
		m.mode = ModeDashboard
		m.busy = true
		return m, loadCardsCmd(m)

	case logoutDoneMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, domain.ErrInvalidState):
			m.pushError(auth.MsgNotLoggedIn)
		case msg.err != nil:
			m.log.Warn().Err(msg.err).Msg("logout remoto fallido")
			m.pushError(auth.MsgLogoutFailed)
		default:
			m.pushSuccess(auth.MsgLogoutOK)
		}
		return m.toLogin(), nil

	case cardsLoadedMsg:
		m.busy = false
		if m.deps.Guard.Check(msg.err) {
			return m.sessionExpired(), nil
		}
		m.cardsErr = msg.err
		if msg.err != nil {
			m.pushError(msgCardsFailed)
			return m, nil
		}
		m.cards = msg.cards
		return m, nil

	case loadedMsg:
		return m.afterRemote(msg.screen, msg.err), nil

	case mutatedMsg:
		return m.afterRemote(msg.screen, msg.err), nil

	case optionsLoadedMsg:
		if m.deps.Guard.Check(msg.err) {
			return m.sessionExpired(), nil
		}
		if m.mode != ModeForm {
			return m, nil
		}
		opts := msg.opts
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("field", msg.field).Msg("no se pudieron cargar las opciones")
			opts = []crud.Option{}
		}
		m.form.setOptions(msg.field, opts)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeLogin:
			return m.updateLogin(msg)
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirm:
			cmd, done := m.confirm.Update(msg)
			if done {
				m.mode = ModeResource
				if cmd != nil {
					m.busy = true
				}
			}
			return m, cmd
		default:
			return m.updateNav(msg)
		}
	}
	return m, nil
}

// afterRemote fin de una carga o mutación: avisos, 401 y refresco de la tabla.
func (m Model) afterRemote(screen int, err error) Model {
	m.busy = false
	m.toasts.push(m.deps.Toasts.Drain()...)
	if m.deps.Guard.Check(err) {
		return m.sessionExpired()
	}
	m.refreshTable(screen)
	return m
}

func (m *Model) refreshTable(i int) {
	if i < 0 || i >= len(m.tables) {
		return
	}
	snap := m.deps.Bindings[i].Snapshot()
	rows := make([]table.Row, len(snap.Rows))
	ids := make([]entity.ID, len(snap.Rows))
	for j, r := range snap.Rows {
		rows[j] = append(table.Row{strconv.Itoa(j + 1)}, r.Cells...)
		ids[j] = r.ID
	}
	m.tables[i].SetRows(rows)
	if c := m.tables[i].Cursor(); c >= len(rows) {
		m.tables[i].SetCursor(max(len(rows)-1, 0))
	}
	m.rowIDs[i] = ids
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focusLogin(1 - m.loginFocus)
		return m, nil
	case "enter":
		if m.loginFocus == 0 {
			m.focusLogin(1)
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, loginCmd(m, m.username.Value(), m.password.Value())
	case "esc":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusLogin(i int) {
	m.loginFocus = i
	if i == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.username.Blur()
	}
}

func (m Model) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "L":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, logoutCmd(m)
	case "0":
		return m.openDashboard()
	case "tab":
		next := m.Screen() + 1
		if next >= len(m.deps.Bindings) {
			return m.openDashboard()
		}
		return m.openScreen(next)
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.deps.Bindings) {
		return m.openScreen(n - 1)
	}
	if m.mode != ModeResource {
		return m, nil
	}

	b := m.deps.Bindings[m.screen]
	switch key {
	case "r":
		m.busy = true
		return m, loadCmd(b, m.screen)
	case "n":
		b.Form().OpenCreate()
		return m.openForm(b)
	case "e", "enter":
		id, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := b.OpenEdit(id); err != nil {
			m.pushError(domain.UserMessage(err))
			return m, nil
		}
		return m.openForm(b)
	case "d":
		id, ok := m.selected()
		if !ok {
			return m, nil
		}
		screen := m.screen
		m.confirm = NewConfirmationDialog("Hapus "+b.Descriptor().Title, b.Descriptor().DeletePrompt(), func() tea.Cmd {
			return deleteCmd(b, screen, id)
		})
		m.mode = ModeConfirm
		return m, nil
	}

	var cmd tea.Cmd
	m.tables[m.screen], cmd = m.tables[m.screen].Update(msg)
	return m, cmd
}

func (m Model) selected() (entity.ID, bool) {
	ids := m.rowIDs[m.screen]
	c := m.tables[m.screen].Cursor()
	if c < 0 || c >= len(ids) {
		return "", false
	}
	return ids[c], true
}

func (m Model) openDashboard() (tea.Model, tea.Cmd) {
	m.mode = ModeDashboard
	m.busy = true
	return m, loadCardsCmd(m)
}

// openScreen muestra un recurso; la primera vez lo carga.
func (m Model) openScreen(i int) (tea.Model, tea.Cmd) {
	m.mode = ModeResource
	m.screen = i
	b := m.deps.Bindings[i]
	m.refreshTable(i)
	if b.Snapshot().State == crud.StateIdle {
		m.busy = true
		return m, loadCmd(b, i)
	}
	return m, nil
}

// openForm muestra el modal ya abierto y pide las opciones de los campos referencia.
func (m Model) openForm(b crud.Binding) (tea.Model, tea.Cmd) {
	m.form = newFormView(m.screen, b.Form())
	m.mode = ModeForm
	var cmds []tea.Cmd
	for _, f := range m.form.fields {
		if f.Kind != form.KindReference {
			continue
		}
		ref, ok := m.binding(f.Ref)
		if !ok {
			m.form.setOptions(f.Key, []crud.Option{})
			continue
		}
		cmds = append(cmds, optionsCmd(ref, f.Key))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) binding(name string) (crud.Binding, bool) {
	for _, b := range m.deps.Bindings {
		if string(b.Descriptor().Name) == name {
			return b, true
		}
	}
	return nil, false
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.deps.Bindings[m.form.screen]
	switch msg.String() {
	case "esc":
		b.Form().Cancel()
		m.mode = ModeResource
		return m, nil
	case "enter":
		if err := m.form.sync(); err != nil {
			m.pushError(domain.UserMessage(err))
			return m, nil
		}
		mut, err := b.Submit()
		if err != nil {
			// la alerta queda en el modal
			return m, nil
		}
		m.mode = ModeResource
		m.busy = true
		return m, mutateCmd(mut, m.form.screen)
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m Model) toLogin() Model {
	m.mode = ModeLogin
	m.user = entity.User{}
	m.cards = nil
	m.username.SetValue("")
	m.password.SetValue("")
	m.focusLogin(0)
	return m
}

func (m Model) sessionExpired() Model {
	m.log.Info().Msg("sesión expirada; vuelta al login")
	m.pushError(msgSessionExpired)
	return m.toLogin()
}

func (m *Model) pushSuccess(msg string) {
	m.toasts.push(crud.Notification{Level: crud.LevelSuccess, Message: msg})
}

func (m *Model) pushError(msg string) {
	m.toasts.push(crud.Notification{Level: crud.LevelError, Message: msg})
}

// View pinta la pantalla activa.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	if m.mode == ModeLogin {
		b.WriteString(m.loginView())
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.menuView(), "  ", m.contentView()))
	}
	if t := m.toasts.View(); t != "" {
		b.WriteString("\n")
		b.WriteString(t)
	}
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) header() string {
	title := titleStyle.Render("Back Office UMKM")
	if m.mode == ModeLogin {
		return title
	}
	u := m.user
	if u.Name == "" && u.Email == "" && u.Username == "" {
		u = auth.FallbackUser
	}
	return title + "  " + subtitleStyle.Render(fmt.Sprintf("%s <%s>", u.DisplayName(), u.Email))
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Login"))
	b.WriteString("\n")
	userLabel, passLabel := labelStyle, labelStyle
	if m.loginFocus == 0 {
		userLabel = focusedLabelStyle
	} else {
		passLabel = focusedLabelStyle
	}
	b.WriteString(userLabel.Render("Username") + m.username.View() + "\n")
	b.WriteString(passLabel.Render("Password") + m.password.View())
	if m.busy {
		b.WriteString("\n\n" + m.spinner.View() + " " + mutedStyle.Render("Memproses..."))
	}
	return boxStyle.Render(b.String())
}

func (m Model) menuView() string {
	lines := []string{m.menuLine(0, "Dashboard", m.mode == ModeDashboard)}
	for i, bd := range m.deps.Bindings {
		lines = append(lines, m.menuLine(i+1, bd.Descriptor().Title, m.mode != ModeDashboard && m.screen == i))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) menuLine(n int, title string, active bool) string {
	label := fmt.Sprintf("%d %s", n, title)
	if active {
		return menuActiveStyle.Render("▸ " + label)
	}
	return menuItemStyle.Render(label)
}

func (m Model) contentView() string {
	switch m.mode {
	case ModeDashboard:
		var b strings.Builder
		b.WriteString(titleStyle.Render("Dashboard"))
		b.WriteString("\n")
		if m.cardsErr != nil {
			b.WriteString(bannerStyle.Render(msgCardsFailed + ": " + domain.UserMessage(m.cardsErr)))
			b.WriteString("\n")
		}
		b.WriteString(renderCards(m.cards))
		return b.String()
	case ModeForm:
		return m.form.View()
	case ModeConfirm:
		return m.confirm.View()
	}
	return m.resourceView()
}

func (m Model) resourceView() string {
	bd := m.deps.Bindings[m.screen]
	desc := bd.Descriptor()
	snap := bd.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render(desc.Title))
	b.WriteString("\n")
	if snap.State == crud.StateLoadError {
		text := desc.Messages.LoadFailed + ": " + domain.UserMessage(snap.Err)
		if snap.Stale {
			text += " (" + msgStale + ")"
		}
		b.WriteString(bannerStyle.Render(text))
		b.WriteString("\n")
	}
	if m.busy || snap.State == crud.StateLoading {
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render("Memuat..."))
		b.WriteString("\n")
	}
	if len(snap.Rows) == 0 && snap.State == crud.StateLoaded {
		b.WriteString(mutedStyle.Render("Belum ada data."))
		return b.String()
	}
	b.WriteString(m.tables[m.screen].View())
	return b.String()
}

func (m Model) helpView() string {
	var keys []string
	switch m.mode {
	case ModeLogin:
		keys = []string{FormatKey("tab", "pindah"), FormatKey("enter", "login"), FormatKey("esc", "keluar")}
	case ModeForm, ModeConfirm:
		return ""
	case ModeResource:
		keys = []string{FormatKey("n", "tambah"), FormatKey("e", "edit"), FormatKey("d", "hapus"), FormatKey("r", "muat ulang"),
			FormatKey("0-6", "menu"), FormatKey("L", "logout"), FormatKey("q", "keluar")}
	default:
		keys = []string{FormatKey("0-6", "menu"), FormatKey("tab", "berikutnya"), FormatKey("L", "logout"), FormatKey("q", "keluar")}
	}
	return helpStyle.Render(strings.Join(keys, " • "))
}

// Run arranca el programa bubbletea.
func Run(deps Deps) error {
	p := tea.NewProgram(NewModel(deps))
	_, err := p.Run()
	return err
}
