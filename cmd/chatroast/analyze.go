package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatroast/internal/chart"
	"github.com/Zuo-Peng/chatroast/internal/parse"
	"github.com/Zuo-Peng/chatroast/internal/roast"
	"github.com/Zuo-Peng/chatroast/internal/stats"
)

const noMessages = "No messages parsed. Is the input file a valid WhatsApp export?"

func analyzeCmd() *cobra.Command {
	var input, output, level string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Write activity charts for a chat export and print its roast",
		Long: `Parses a WhatsApp chat export, writes text bar charts into the output
directory and prints a humorous roast of the chat.

  chatroast analyze --input "WhatsApp Chat with Bob.txt" --output analysis --level savage`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.OutputDir
			}
			if level == "" {
				level = cfg.Level
			}
			if err := checkLevel(level); err != nil {
				return err
			}

			msgs, err := parse.ParseFile(input)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(output, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, noMessages)
				return nil
			}
			log.Debug("parsed export", "path", input, "messages", len(msgs))

			report := stats.Build(msgs, cfg.TopWords, cfg.TopEmojis)
			paths, err := chart.WriteAll(output, chart.FromReport(report), cfg.ChartWidth)
			if err != nil {
				return fmt.Errorf("write charts: %w", err)
			}
			log.Info("charts written", "dir", output, "count", len(paths))

			printOverview(out, report.Overview)
			fmt.Fprintf(out, "Charts written to %s\n", output)
			for _, p := range paths {
				fmt.Fprintf(out, "  %s\n", p)
			}
			printRoast(out, roast.Generate(msgs, level))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to WhatsApp chat export (.txt)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory to write charts (default from config)")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Roast intensity (mild/medium/savage)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
