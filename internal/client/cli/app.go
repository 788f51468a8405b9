// Package cli implements the interactive terminal client: a small REPL with
// register, login, logout and ping commands against an authd server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"authd/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// App holds the REPL state: the API client, the input reader and the bearer
// token of the current session (empty while signed out).
type App struct {
	api    *api.Client
	reader *bufio.Reader
	out    io.Writer
	token  string
}

func NewApp(c *api.Client) *App {
	return &App{
		api:    c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run reads commands until EOF or "exit".
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "authd client. Commands: register, login, logout, ping, exit")

	for {
		cmd, err := getSimpleText(a.reader, "Enter command", a.out)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch strings.ToLower(cmd) {
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "ping":
			err = a.Ping(ctx)
		case "exit", "quit":
			return nil
		case "":
			continue
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
			continue
		}

		if err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		}
	}
}
