package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatroast/internal/index"
)

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index [path...]",
		Short: "Scan and index chat exports for search",
		Long: `Indexes WhatsApp chat exports into the search database. Paths may be
export files or directories holding them; without arguments the configured
exports root is scanned. Unchanged exports are skipped and exports whose
file is gone are pruned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			roots := args
			if len(roots) == 0 {
				roots = []string{cfg.ExportsRoot}
			}

			fmt.Fprintf(os.Stderr, "Scanning roots...\n")
			for _, r := range roots {
				fmt.Fprintf(os.Stderr, "  %s\n", r)
			}

			st, err := index.IndexAll(db, log, roots...)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", st)
			return nil
		},
	}
}
