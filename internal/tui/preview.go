package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/Zuo-Peng/chatroast/internal/index"
	"github.com/Zuo-Peng/chatroast/internal/render"
)

// previewKey identifies a rendered preview: an export with one message
// highlighted, or none when messageID is -1.
type previewKey struct {
	exportKey string
	messageID int
}

type previewRenderedMsg struct {
	key     previewKey
	content string
	hitLine int
	header  string
	senders []string
	total   int
	err     error
}

// loadPreviewCmd renders the whole conversation of an export in the
// background, along with the participants and period for the header row.
func loadPreviewCmd(db *index.DB, k previewKey, query string, width int) tea.Cmd {
	return func() tea.Msg {
		msg := previewRenderedMsg{key: k}
		e, err := db.GetExportByKey(k.exportKey)
		if err != nil {
			msg.err = fmt.Errorf("get export: %w", err)
			return msg
		}
		if e == nil {
			msg.err = fmt.Errorf("export not found: %s", k.exportKey)
			return msg
		}
		msg.header = exportHeader(*e)
		msg.senders = strings.Split(e.Senders, ", ")
		msg.total = e.Messages
		msg.content, msg.hitLine, msg.err = render.RenderConversation(db, k.exportKey, render.Options{
			HitMessageID: k.messageID,
			Context:      -1,
			Width:        width,
			Query:        query,
		})
		return msg
	}
}

// exportHeader summarises an export as
// "name · Alice, Bob · 2024-12-30 → 2024-12-31 · 1,204 messages".
func exportHeader(e index.ExportRow) string {
	name, _, _ := strings.Cut(e.ExportKey, "@")
	return fmt.Sprintf("%s · %s · %s → %s · %s messages",
		name, e.Senders, day(e.FirstAt), day(e.LastAt), humanize.Comma(int64(e.Messages)))
}

func day(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
