package tui

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatroast/internal/index"
	"github.com/Zuo-Peng/chatroast/internal/search"
)

const chat = `12/30/24, 9:15 PM - Alice: Pizza tonight?
12/30/24, 9:16 PM - Bob: Sure
with cheese
`

func setupDB(t *testing.T) (db *index.DB, path, key string) {
	t.Helper()
	root := t.TempDir()
	path = filepath.Join(root, "bob.txt")
	require.NoError(t, os.WriteFile(path, []byte(chat), 0o644))
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = index.IndexAll(db, slog.New(slog.NewTextHandler(io.Discard, nil)), root)
	require.NoError(t, err)
	return db, path, index.ExportKey(path, root)
}

// update feeds msg to m and returns the resulting model.
func update(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

// showPreview renders the preview m currently wants and applies it.
func showPreview(t *testing.T, m model) model {
	t.Helper()
	k := m.want()
	require.NotEmpty(t, k.exportKey)
	m, _ = update(m, loadPreviewCmd(m.db, k, m.query, 60)())
	require.Equal(t, k, m.shown)
	return m
}

func TestResultText(t *testing.T) {
	req := require.New(t)
	db, path, key := setupDB(t)

	text, err := resultText(db, search.Result{ExportKey: key, MessageID: 1})
	req.NoError(err)
	req.Equal("[2024-12-30 21:16] Bob: Sure\nwith cheese", text)

	text, err = resultText(db, search.Result{ExportKey: key, MessageID: -1})
	req.NoError(err)
	req.Equal(path, text)

	_, err = resultText(db, search.Result{ExportKey: key, MessageID: 7})
	req.ErrorContains(err, "message not found")
	_, err = resultText(db, search.Result{ExportKey: "nope", MessageID: -1})
	req.ErrorContains(err, "export not found")
}

func TestFormatResultLine(t *testing.T) {
	req := require.New(t)
	r := search.Result{
		ExportKey: "bob@1a2b3c4d",
		Ts:        "2024-12-30T21:15",
		Sender:    "Alice",
		Snippet:   ">>>Pizza<<< tonight?",
	}
	lines := formatResultLine(r, 40, false)
	req.Len(lines, 2)
	req.Contains(lines[0], "12-30")
	req.Contains(lines[0], "Alice")
	req.Contains(lines[0], "bob")
	req.NotContains(lines[0], "1a2b3c4d")
	req.Contains(lines[1], "Pizza tonight?")
	req.NotContains(lines[1], ">>>")

	selected := formatResultLine(r, 40, true)
	req.Contains(selected[0], "> ")
}

func TestExportHeader(t *testing.T) {
	require.Equal(t,
		"bob · Alice, Bob · 2024-12-30 → 2024-12-31 · 1,204 messages",
		exportHeader(index.ExportRow{
			ExportKey: "bob@1a2b3c4d",
			Senders:   "Alice, Bob",
			FirstAt:   "2024-12-30T21:15",
			LastAt:    "2024-12-31T10:06",
			Messages:  1204,
		}),
	)
}

func TestModelUpdate_Results(t *testing.T) {
	req := require.New(t)
	db, _, key := setupDB(t)
	m := newModel(db, modeSearch, "pizza", search.Options{})

	next, _ := update(m, resultsMsg{query: "other", results: []search.Result{{ExportKey: key}}})
	req.Empty(next.results, "results for an old query are ignored")
	next, _ = update(m, resultsMsg{query: "pizza", sender: "Bob", results: []search.Result{{ExportKey: key}}})
	req.Empty(next.results, "results for an old sender filter are ignored")

	next, cmd := update(m, resultsMsg{query: "pizza", results: []search.Result{{ExportKey: key, MessageID: 1}}})
	req.Len(next.results, 1)
	req.Equal(1, next.focus)
	req.NotNil(cmd)

	next, _ = update(next, resultsMsg{query: "pizza", err: errors.New("boom")})
	req.Empty(next.results)
	req.Equal(-1, next.focus)
}

func TestModelUpdate_Preview(t *testing.T) {
	req := require.New(t)
	db, _, key := setupDB(t)
	m := newModel(db, modeSearch, "pizza", search.Options{})
	m, _ = update(m, resultsMsg{query: "pizza", results: []search.Result{{ExportKey: key, MessageID: 0}}})

	stale, _ := update(m, previewRenderedMsg{key: previewKey{exportKey: key, messageID: 1}, header: "old"})
	req.Empty(stale.header)

	m = showPreview(t, m)
	req.Equal("bob · Alice, Bob · 2024-12-30 → 2024-12-30 · 2 messages", m.header)
	req.Equal([]string{"Alice", "Bob"}, m.senders)
	req.Equal(2, m.total)
	req.Nil(m.loadPreview(), "a shown preview is not rendered again")
}

func TestModelUpdate_EnterCopiesFocusedMessage(t *testing.T) {
	req := require.New(t)
	db, _, key := setupDB(t)
	m := newModel(db, modeSearch, "pizza", search.Options{})
	m.results = []search.Result{{ExportKey: key, MessageID: 0}, {ExportKey: key, MessageID: 1}}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyDown})
	req.Equal(1, m.cursor)
	req.Equal(1, m.focus)
	req.NotNil(cmd)
	m = showPreview(t, m)

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	req.Equal(1, m.focus, "already on the last message")
	req.Nil(cmd)

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyCtrlP})
	req.Equal(0, m.focus)
	req.NotNil(cmd)

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	req.NotNil(cmd)
	req.True(m.quitting)
	req.Equal(key, m.chosen.ExportKey)
	req.Equal(0, m.chosen.MessageID)
}

func TestModelUpdate_FocusFromExportRow(t *testing.T) {
	req := require.New(t)
	db, _, key := setupDB(t)
	m := newModel(db, modeList, "", search.Options{})

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	req.Equal(-1, m.focus, "nothing to move through yet")

	m, _ = update(m, m.fetch("")())
	req.Len(m.results, 1)
	req.Equal(-1, m.focus)
	m = showPreview(t, m)
	req.Contains(m.statusBar(), "Enter copy path")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	req.Equal(0, m.focus)
	req.Equal(previewKey{exportKey: key, messageID: 0}, m.want())
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlP})
	req.Equal(0, m.focus)
}

func TestModelUpdate_SenderFilter(t *testing.T) {
	req := require.New(t)
	db, _, _ := setupDB(t)
	m := newModel(db, modeSearch, "pizza", search.Options{})
	m, _ = update(m, m.fetch("pizza")())
	req.Len(m.results, 1)
	m = showPreview(t, m)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	req.Equal("Alice", m.opts.Sender)
	m, _ = update(m, cmd())
	req.Len(m.results, 1)
	req.Equal("Alice", m.results[0].Sender)

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	req.Equal("Bob", m.opts.Sender)
	m, _ = update(m, cmd())
	req.Empty(m.results)
	req.Contains(m.statusBar(), "from Bob")
}

func TestNextSender(t *testing.T) {
	req := require.New(t)
	senders := []string{"Alice", "Bob"}
	req.Equal("Alice", nextSender(senders, ""))
	req.Equal("Bob", nextSender(senders, "Alice"))
	req.Equal("", nextSender(senders, "Bob"))
	req.Equal("Alice", nextSender(senders, "Eve"))
	req.Equal("", nextSender(nil, ""))
}

func TestAdjustListScroll(t *testing.T) {
	req := require.New(t)
	m := model{cursor: 5}
	m.adjustListScroll(4) // two items visible
	req.Equal(4, m.listOffset)

	m.cursor = 1
	m.adjustListScroll(4)
	req.Equal(1, m.listOffset)
}

func TestPanes(t *testing.T) {
	req := require.New(t)
	listW, previewW, h := model{width: 100, height: 30}.panes()
	req.Equal(36, listW)
	req.Equal(56, previewW)
	req.Equal(23, h)

	listW, previewW, h = model{width: 30, height: 8}.panes()
	req.Equal(20, listW)
	req.Equal(20, previewW)
	req.Equal(5, h)
}

func TestStatusBar(t *testing.T) {
	req := require.New(t)
	m := model{mode: modeList, results: []search.Result{{}, {}}, focus: -1}
	req.Contains(m.statusBar(), "2 exports")
	req.Contains(m.statusBar(), "all senders")
	req.Contains(m.statusBar(), "Enter copy path")

	m.query = "pizza"
	m.focus = 0
	m.total = 5
	m.opts.Sender = "Bob"
	req.Contains(m.statusBar(), "2 messages")
	req.Contains(m.statusBar(), "from Bob")
	req.Contains(m.statusBar(), "msg 1/5")
	req.Contains(m.statusBar(), "Enter copy message")
}
