package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatroast/internal/index"
	"github.com/Zuo-Peng/chatroast/internal/search"
	"github.com/Zuo-Peng/chatroast/internal/tui"
)

func listCmd() *cobra.Command {
	var sender, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all indexed exports by latest activity",
		Long:  `Opens a TUI panel showing all indexed exports, most recently active first. Type to search their messages.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := index.IndexAll(db, log, cfg.ExportsRoot); err != nil {
				log.Warn("refresh index", "err", err)
			}

			opts := search.Options{
				Sender: sender,
				Since:  since,
				Limit:  limit,
			}

			return tui.RunList(db, opts)
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Only exports with this participant")
	cmd.Flags().StringVar(&since, "since", "", "Only exports active since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
