package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatroast/internal/parse"
	"github.com/Zuo-Peng/chatroast/internal/roast"
)

func roastCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "roast <file>",
		Short: "Print only the roast for a chat export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if level == "" {
				level = cfg.Level
			}
			if err := checkLevel(level); err != nil {
				return err
			}

			msgs, err := parse.ParseFile(args[0])
			if err != nil {
				return err
			}
			printRoast(cmd.OutOrStdout(), roast.Generate(msgs, level))
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Roast intensity (mild/medium/savage)")

	return cmd
}
