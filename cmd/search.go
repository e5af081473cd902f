package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"propertyfinder/internal/logger"
	"propertyfinder/internal/presentation"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Run one search and print the result cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logger.Console(os.Stderr, cfg.Log.Level)
			ctx := cmd.Context()
			startMetrics(ctx, cfg, log)

			out := cmd.OutOrStdout()
			a, err := newApp(ctx, cfg, log, newLinePrinter(out))
			if err != nil {
				return err
			}
			defer a.Close()

			if a.session.Submit(ctx, strings.Join(args, " ")) != presentation.Populated {
				return nil
			}
			cards := a.session.Cards()
			printCards(out, cards, separatorWidth())

			if interactive {
				if !isTerminal() {
					mutedColor.Fprintln(out, "(--pick needs an interactive terminal)")
					return nil
				}
				interactiveSelect(ctx, cards, a.enrichers, a.store)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&interactive, "pick", false, "choose a result with the arrow keys to see its details")
	return cmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
