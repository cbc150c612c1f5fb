package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/polymap/internal/editor"
	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/dmitrijs2005/polymap/internal/metrics"
	"github.com/dmitrijs2005/polymap/internal/models"
	"github.com/dmitrijs2005/polymap/internal/session"
	"github.com/dmitrijs2005/polymap/internal/store"
)

// AuthService is the part of session.Manager the CLI drives.
type AuthService interface {
	CheckAuth(ctx context.Context) (*models.Account, bool)
	Login(ctx context.Context, taxID string, password []byte) error
	Register(ctx context.Context, req session.RegisterRequest) error
	Logout(ctx context.Context) error
}

type App struct {
	auth   AuthService
	editor *editor.Editor
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the editor over rs and binds its name prompt to the REPL
// input.
func NewApp(auth AuthService, rs store.RecordStore, log logging.Logger, mt *metrics.Metrics, in io.Reader, out io.Writer) *App {
	a := &App{
		auth:   auth,
		log:    log.With("component", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.editor = editor.New(rs, auth, log,
		editor.WithMetrics(mt),
		editor.WithNamePrompt(a.promptName),
	)
	return a
}

// Run restores a persisted session, if any, and starts the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to polymap (type 'help' for commands)")
	if a.editor.Open(ctx) {
		a.log.Debug(ctx, "session restored", "cpf", a.editor.Owner())
		fmt.Fprintf(a.out, "Logged in as %s\n", a.editor.Owner())
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.editor.IsOpen()
}

func (a *App) status() string {
	if !a.editor.IsOpen() {
		return ""
	}
	s := a.editor.Owner()
	if st := a.editor.State(); st != editor.Idle {
		s += " " + st.String()
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) promptName(def string) string {
	name, err := getSimpleText(a.reader, fmt.Sprintf("Polygon name [%s]", def), a.out)
	if err != nil {
		return ""
	}
	return name
}
