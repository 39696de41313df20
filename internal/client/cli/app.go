package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/dojoauth/internal/client/api"
	"github.com/dmitrijs2005/dojoauth/internal/client/config"
	"github.com/dmitrijs2005/dojoauth/internal/client/localstore"
	"github.com/dmitrijs2005/dojoauth/internal/client/session"
	"github.com/dmitrijs2005/dojoauth/internal/filex"
	"github.com/dmitrijs2005/dojoauth/internal/logging"
)

type App struct {
	config     *config.Config
	controller *session.Controller
	db         *sql.DB
	log        logging.Logger
	reader     *bufio.Reader
	out        io.Writer
}

// NewApp opens the session database, builds the API client and the session
// controller, and connects the controller's notifications to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	path := c.StoragePath
	if path != ":memory:" {
		if path, err = filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}

	db, err := localstore.Open(ctx, path)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StoragePath, "err", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)

	a := newApp(apiClient, localstore.NewSQLiteStore(db), log, in, out)
	a.config = c
	a.db = db
	return a, nil
}

func newApp(client api.Client, store localstore.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.controller = session.NewController(client, store, newTerminalNotifier(out), log)
	return a
}

// Run restores the previous session and serves the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Dojo CLI (type 'help' for commands)")
	a.controller.Restore(ctx)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database", "err", err)
	}
	a.db = nil
}

func (a *App) isLoggedIn() bool {
	return a.controller.State() == session.StateAuthenticated
}

func (a *App) getStatus() string {
	s, ok := a.controller.Current()
	if !ok || s.User.Name == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", s.User.Name)
}
