package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// errReported means the failure was already shown to the user; only the exit
// status is left to set.
var errReported = errors.New("reported")

func newRootCmd(stdout io.Writer) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   "eteats",
		Short: "Search, view, bookmark and share recipes",
		Long: `eteats looks up recipes from a forkify-compatible recipe API.

Search for recipes, open one by id, rescale it to a different number of
servings, bookmark it, or upload your own. Bookmarks and the last opened
recipe are kept in local storage between runs.

"eteats serve" runs a compatible recipe API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")

	cfg := func() string { return cfgPath }
	root.AddCommand(
		newShowCmd(cfg),
		newSearchCmd(cfg),
		newBookmarksCmd(cfg),
		newUploadCmd(cfg),
		newServeCmd(cfg),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
