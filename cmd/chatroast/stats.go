package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Zuo-Peng/chatroast/internal/parse"
	"github.com/Zuo-Peng/chatroast/internal/roast"
	"github.com/Zuo-Peng/chatroast/internal/stats"
)

func statsCmd() *cobra.Command {
	var format string
	var topWords, topEmojis int

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Print the statistics report for a chat export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top-words") {
				topWords = cfg.TopWords
			}
			if !cmd.Flags().Changed("top-emojis") {
				topEmojis = cfg.TopEmojis
			}

			msgs, err := parse.ParseFile(args[0])
			if err != nil {
				return err
			}
			report := stats.Build(msgs, topWords, topEmojis)

			out := cmd.OutOrStdout()
			switch format {
			case "table":
				writeTables(out, report)
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want table/json/yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table/json/yaml)")
	cmd.Flags().IntVar(&topWords, "top-words", 0, "Number of top words (default from config)")
	cmd.Flags().IntVar(&topEmojis, "top-emojis", 0, "Number of top emojis (default from config)")

	return cmd
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func writeTables(w io.Writer, r stats.Report) {
	if r.Overview.Messages == 0 {
		fmt.Fprintln(w, noMessages)
		return
	}
	printOverview(w, r.Overview)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Participants"))
	table := newTable(w, "Sender", "Messages", "Share")
	for _, c := range r.Senders {
		table.Append([]string{
			c.Item,
			humanize.Comma(int64(c.Count)),
			fmt.Sprintf("%d%%", roast.Percentage(c.Count, r.Overview.Messages)),
		})
	}
	table.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Busiest times"))
	table = newTable(w, "Metric", "Value")
	if h, ok := stats.PeakKey(r.ByHour, 24); ok {
		table.Append([]string{"Peak hour", roast.FormatHour(h)})
	}
	if d, ok := stats.PeakKey(r.ByWeekday, 7); ok {
		table.Append([]string{"Peak weekday", stats.WeekdayNames[d]})
	}
	table.Render()

	writeCounts(w, "Top words", "Word", r.TopWords)
	writeCounts(w, "Top emojis", "Emoji", r.TopEmojis)
}

func writeCounts(w io.Writer, title, column string, counts []stats.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(title))
	table := newTable(w, "#", column, "Count")
	for i, c := range counts {
		table.Append([]string{strconv.Itoa(i + 1), c.Item, strconv.Itoa(c.Count)})
	}
	table.Render()
}
