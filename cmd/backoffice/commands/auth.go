package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/jhoicas/backoffice-umkm/cmd/backoffice/output"
	"github.com/jhoicas/backoffice-umkm/internal/application/auth"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

var (
	loginUsername string
	loginPassword string

	regName     string
	regUsername string
	regPassword string
	regEmail    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Inicia sesión y guarda el token",
	Long: `Autentica contra POST /login y guarda token y usuario en SESSION_FILE.
Si no se pasa --password se lee de la entrada estándar.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Cierra la sesión (la local se borra aunque el backend falle)",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Muestra el usuario de la sesión y la caducidad del token",
	RunE:  runWhoami,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Registra un usuario administrador (no inicia sesión)",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")

	registerCmd.Flags().StringVar(&regName, "name", "", "Nama")
	registerCmd.Flags().StringVar(&regUsername, "username", "", "Username")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "Password")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "Email")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	password := loginPassword
	if password == "" && loginUsername != "" {
		p, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		password = p
	}

	a := newClientApp()
	sess, err := a.auth.Login(cmd.Context(), loginUsername, password)
	if err != nil {
		return errors.New(auth.Message(err, auth.MsgLoginFailed))
	}
	if jsonOutput {
		return output.JSON(map[string]any{"message": auth.MsgLoginOK, "user": sess.User})
	}
	output.Success(auth.MsgLoginOK)
	output.Muted("Sesi disimpan di %s", a.store.Path())
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a := newClientApp()
	err := a.auth.Logout(cmd.Context())
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return errors.New(auth.MsgNotLoggedIn)
	case err != nil:
		log.Warn().Err(err).Msg("logout remoto fallido; sesión local borrada")
		return errors.New(auth.MsgLogoutFailed)
	}
	if jsonOutput {
		return output.JSON(map[string]string{"message": auth.MsgLogoutOK})
	}
	output.Success(auth.MsgLogoutOK)
	return nil
}

func runWhoami(_ *cobra.Command, _ []string) error {
	a := newClientApp()
	if err := a.requireSession(); err != nil {
		return err
	}
	user := a.auth.CurrentUser()
	if err := a.store.UserError(); err != nil {
		log.Warn().Err(err).Msg("usuario de la sesión descartado")
	}
	exp, hasExp := a.store.ExpiresAt()

	if jsonOutput {
		out := map[string]any{"user": user, "base_url": a.client.BaseURL()}
		if hasExp {
			out["expires_at"] = exp.Format(time.RFC3339)
		}
		return output.JSON(out)
	}
	output.Section(user.DisplayName())
	output.Info("Email: %s", user.Email)
	if user.Username != "" {
		output.Info("Username: %s", user.Username)
	}
	output.Info("Backend: %s", a.client.BaseURL())
	if hasExp {
		if time.Now().After(exp) {
			output.Warning("Token kedaluwarsa sejak %s", exp.Format("2006-01-02 15:04"))
		} else {
			output.Info("Token berlaku sampai %s", exp.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	a := newClientApp()
	in := entity.Registration{Name: regName, Username: regUsername, Password: regPassword, Email: regEmail}
	if err := a.auth.Register(cmd.Context(), in); err != nil {
		return errors.New(auth.Message(err, auth.MsgRegisterFailed))
	}
	msg := "Registrasi berhasil, silakan login."
	if jsonOutput {
		return output.JSON(map[string]string{"message": msg})
	}
	output.Success(msg)
	return nil
}

// readPassword sin eco cuando la entrada es una terminal; con entrada redirigida lee una línea.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")
	if f, ok := in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		b, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("leer password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("leer password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
