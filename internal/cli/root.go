// Package cli wires the recipes command line: the interactive browser as the
// root command plus headless list and show subcommands for scripts.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/schrockblock/recipes/internal/app"
)

type rootOptions struct {
	configPath string
	prefsPath  string
	category   string
	verbose    bool
	noColor    bool
}

// appOptions builds app options. A nil logOutput sends the log to the
// configured file.
func (o *rootOptions) appOptions(logOutput io.Writer) app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		Category:   o.category,
		Verbose:    o.verbose,
		LogOutput:  logOutput,
	}
}

func (o *rootOptions) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.noColor)
}

// headlessEnv builds an environment that logs to stderr.
func (o *rootOptions) headlessEnv(cmd *cobra.Command) (*app.Env, error) {
	return app.NewEnv(o.appOptions(cmd.ErrOrStderr()))
}

// NewRootCommand returns the recipes command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root, _ := newRootCommand(stdout, stderr)
	return root
}

func newRootCommand(stdout, stderr io.Writer) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "recipes",
		Short: "Browse TheMealDB recipes in the terminal",
		Long: `recipes browses one TheMealDB category in a full screen terminal UI.

Type / to search by word prefixes, enter to open a recipe, ? for keys.
The list and show subcommands print the same data for scripts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.appOptions(nil))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/recipes/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/recipes/prefs.toml)")
	flags.StringVarP(&opts.category, "category", "c", "", "category to browse (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newListCommand(opts), newShowCommand(opts))
	return root, opts
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, opts := newRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	p := newPrinter(stdout, stderr, opts.noColor)
	var alert *app.AlertError
	switch {
	case errors.As(err, &alert):
		p.Alert(alert.Alert)
	case errors.Is(err, context.Canceled):
		p.Error("interrupted")
	default:
		p.Error("%v", err)
	}
	return 1
}
