package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/dto"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

// Mensajes
type loginDoneMsg struct {
	session entity.Session
	err     error
}

type logoutDoneMsg struct {
	err error
}

type cardsLoadedMsg struct {
	cards *dto.DashboardDTO
	err   error
}

type loadedMsg struct {
	screen int
	err    error
}

type mutatedMsg struct {
	screen int
	err    error
}

type optionsLoadedMsg struct {
	field string
	opts  []crud.Option
	err   error
}

// Comandos. Cada llamada remota corre en la goroutine del tea.Cmd.
func loginCmd(m Model, username, password string) tea.Cmd {
	uc := m.deps.Auth
	return func() tea.Msg {
		sess, err := uc.Login(context.Background(), username, password)
		return loginDoneMsg{session: sess, err: err}
	}
}

func logoutCmd(m Model) tea.Cmd {
	uc := m.deps.Auth
	return func() tea.Msg {
		return logoutDoneMsg{err: uc.Logout(context.Background())}
	}
}

func loadCardsCmd(m Model) tea.Cmd {
	uc := m.deps.Dashboard
	return func() tea.Msg {
		cards, err := uc.GetCards(context.Background())
		return cardsLoadedMsg{cards: cards, err: err}
	}
}

func loadCmd(b crud.Binding, screen int) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{screen: screen, err: b.Load(context.Background())}
	}
}

func mutateCmd(mut crud.Mutation, screen int) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{screen: screen, err: mut(context.Background())}
	}
}

func deleteCmd(b crud.Binding, screen int, id entity.ID) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{screen: screen, err: b.Delete(context.Background(), id)}
	}
}

func optionsCmd(b crud.Binding, field string) tea.Cmd {
	return func() tea.Msg {
		opts, err := b.Options(context.Background())
		return optionsLoadedMsg{field: field, opts: opts, err: err}
	}
}
