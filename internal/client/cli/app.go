package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/botofarm/internal/client/client"
	"github.com/dmitrijs2005/botofarm/internal/client/config"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, fmt.Errorf("server URL is not set")
	}
	return &App{
		config: c,
		api:    client.NewHTTPClient(c),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) status() string {
	return a.config.ServerURL + a.config.APIPrefix
}

// Run probes the server and then blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	printlnFn("Botofarm operator CLI (type 'help' for commands)")

	if err := a.Health(ctx); err != nil {
		printlnFn("warning: server is not reachable yet")
	}

	runREPL(ctx, a, a.status, a.reader)
}
