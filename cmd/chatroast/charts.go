package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatroast/internal/chart"
	"github.com/Zuo-Peng/chatroast/internal/parse"
	"github.com/Zuo-Peng/chatroast/internal/stats"
)

func chartsCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "charts <file>",
		Short: "Print the activity charts for a chat export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.ChartWidth
			}

			msgs, err := parse.ParseFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, noMessages)
				return nil
			}

			// colour only when writing to a terminal
			opts := chart.Options{
				Width: width,
				Color: out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())),
			}
			report := stats.Build(msgs, cfg.TopWords, cfg.TopEmojis)
			for i, c := range chart.FromReport(report) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, chart.Render(c, opts))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Columns for the longest bar (default from config)")

	return cmd
}
