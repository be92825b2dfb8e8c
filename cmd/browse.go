package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const browseHelp = `Type a username and press enter to search.
  open N    open the repository in row N in the browser
  share N   share the link of the repository in row N
  help      show this help
  quit      leave`

type commandKind int

const (
	commandSubmit commandKind = iota
	commandOpen
	commandShare
	commandHelp
	commandQuit
)

type command struct {
	kind  commandKind
	input string
	row   int
}

// parseCommand turns one input line into a command. Anything that is not a
// keyword is a username submission, blank lines included.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{kind: commandSubmit, input: line}, nil
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		if len(fields) == 1 {
			return command{kind: commandQuit}, nil
		}
	case "help", "?":
		if len(fields) == 1 {
			return command{kind: commandHelp}, nil
		}
	case "open", "share":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: %s N", strings.ToLower(fields[0]))
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil || row < 1 {
			return command{}, fmt.Errorf("invalid row %q", fields[1])
		}
		kind := commandOpen
		if strings.ToLower(fields[0]) == "share" {
			kind = commandShare
		}
		return command{kind: kind, row: row}, nil
	}
	return command{kind: commandSubmit, input: line}, nil
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive repository lookup",
		Long: `Starts an interactive session. The last username that was found is
searched right away; every line you type afterwards starts a new search or
acts on a row of the current list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			fmt.Fprintln(cmd.ErrOrStderr(), browseHelp)
			a.controller.Start()

			// Use an errgroup to run the screen loop and the input reader together.
			eg, egCtx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				return a.controller.Run(egCtx)
			})
			eg.Go(func() error {
				return a.readCommands(egCtx, cancel, cmd.InOrStdin(), cmd.ErrOrStderr())
			})

			if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// readCommands feeds input lines to the screen loop. On quit the session
// ends at once; at end of input the loop first finishes pending searches.
// List actions are posted to the loop so they see the list it rendered.
func (a *app) readCommands(ctx context.Context, quit context.CancelFunc, in io.Reader, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			a.controller.Post(func() { a.toast.Notify(err.Error()) })
			continue
		}
		switch cmd.kind {
		case commandQuit:
			quit()
			return nil
		case commandHelp:
			a.controller.Post(func() { fmt.Fprintln(errOut, browseHelp) })
		case commandOpen:
			a.controller.Post(func() {
				if err := a.list.Activate(cmd.row); err != nil {
					a.toast.Notify(err.Error())
				}
			})
		case commandShare:
			a.controller.Post(func() {
				if err := a.list.Share(cmd.row); err != nil {
					a.toast.Notify(err.Error())
				}
			})
		case commandSubmit:
			if err := a.controller.Submit(cmd.input); err != nil {
				a.logger.Printf("Browse: %v\n", err)
			}
		}
	}
	a.controller.Drain()
	return scanner.Err()
}
