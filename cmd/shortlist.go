package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"propertyfinder/internal/logger"
	"propertyfinder/internal/shortlist"
)

func newShortlistCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shortlist",
		Short: "List saved properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logger.Console(os.Stderr, cfg.Log.Level)
			ctx := cmd.Context()

			store, err := shortlist.Open(ctx, cfg.Shortlist)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(ctx)
			if err != nil {
				return err
			}
			log.Debug().Int("entries", len(entries)).Msg("shortlist loaded")
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func printEntries(w io.Writer, entries []shortlist.Entry) {
	if len(entries) == 0 {
		mutedColor.Fprintln(w, "Shortlist is empty.")
		return
	}
	titleColor.Fprintf(w, "%-32s | %-14s | %-20s | %s\n", "Title", "Price", "Location", "Saved")
	for _, e := range entries {
		fmt.Fprintf(w, "%-32s | %-14s | %-20s | %s\n",
			e.Title, e.Price, e.Location, e.SavedAt.Local().Format("2006-01-02 15:04"))
	}
}
