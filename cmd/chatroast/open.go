package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatroast/internal/index"
	"github.com/Zuo-Peng/chatroast/internal/open"
)

func openCmd() *cobra.Command {
	var hitMessageID int

	cmd := &cobra.Command{
		Use:   "open <exportKey>",
		Short: "Open the export file in $EDITOR at the hit message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			return open.OpenExport(db, args[0], hitMessageID)
		},
	}

	cmd.Flags().IntVar(&hitMessageID, "hit", -1, "Message ID to jump to")

	return cmd
}
