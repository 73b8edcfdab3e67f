package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/samber/lo"

	"github.com/Zuo-Peng/chatroast/internal/roast"
	"github.com/Zuo-Peng/chatroast/internal/stats"
)

const roastBanner = "====== Your Chat Roast ======"

var (
	bannerStyle  = color.New(color.FgMagenta, color.OpBold)
	headingStyle = color.New(color.FgCyan, color.OpBold)
)

var levels = []string{string(roast.Mild), string(roast.Medium), string(roast.Savage)}

// checkLevel rejects roast levels the CLI does not offer.
func checkLevel(level string) error {
	if !lo.Contains(levels, strings.ToLower(level)) {
		return fmt.Errorf("invalid level %q (want %s)", level, strings.Join(levels, "/"))
	}
	return nil
}

func printRoast(w io.Writer, text string) {
	fmt.Fprintf(w, "\n%s\n\n", bannerStyle.Render(roastBanner))
	fmt.Fprintln(w, text)
}

func printOverview(w io.Writer, ov stats.Overview) {
	fmt.Fprintln(w, headingStyle.Render("Overview"))
	fmt.Fprintf(w, "  Messages: %s from %d participants over %d active days\n",
		humanize.Comma(int64(ov.Messages)), ov.Senders, ov.ActiveDays)
	fmt.Fprintf(w, "  Span:     %s to %s (%s)\n",
		ov.First.Format(dateTimeLayout), ov.Last.Format(dateTimeLayout), span(ov))
	if ov.Language != "" {
		fmt.Fprintf(w, "  Language: %s\n", ov.Language)
	}
}

const dateTimeLayout = "2006-01-02 15:04"

func span(ov stats.Overview) string {
	if !ov.Last.After(ov.First) {
		return "a moment"
	}
	return strings.TrimSpace(humanize.RelTime(ov.First, ov.Last, "", ""))
}
