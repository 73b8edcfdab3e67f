package index

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const bobChat = `12/30/24, 9:15 PM - Alice: Pizza tonight?
12/30/24, 9:16 PM - Bob: Sure
with extra cheese
12/30/24, 9:20 PM - Alice: 🍕🍕
12/31/24, 10:00 AM - Bob: Pizza again
12/31/24, 10:05 AM - Alice: never again
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "db", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeExport(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestIndexAll(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "Chat with Bob.txt")
	writeExport(t, path, bobChat)

	st, err := IndexAll(db, quietLogger(), root)
	req.NoError(err)
	req.Equal(Stats{Scanned: 1, Updated: 1}, st)

	n, err := db.MessageCount()
	req.NoError(err)
	req.Equal(5, n)
	fts, err := db.FTSCount()
	req.NoError(err)
	req.Equal(n, fts)

	key := ExportKey(path, root)
	e, err := db.GetExportByKey(key)
	req.NoError(err)
	req.NotNil(e)
	req.Equal(path, e.FilePath)
	req.Equal("2024-12-30T21:15", e.FirstAt)
	req.Equal("2024-12-31T10:05", e.LastAt)
	req.Equal("Alice, Bob", e.Senders)
	req.Equal("Alice: Pizza tonight?", e.Summary)
	req.Equal(5, e.Messages)

	msgs, err := db.GetMessages(key)
	req.NoError(err)
	req.Len(msgs, 5)
	req.Equal(MessageRow{
		ExportKey:  key,
		MessageID:  1,
		Ts:         "2024-12-30T21:16",
		Sender:     "Bob",
		Text:       "Sure\nwith extra cheese",
		LineNumber: 2,
	}, msgs[1])
}

func TestIndexAll_SkipUpdatePrune(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "group", "family.txt")
	writeExport(t, path, bobChat)

	_, err := IndexAll(db, quietLogger(), root)
	req.NoError(err)

	st, err := IndexAll(db, quietLogger(), root)
	req.NoError(err)
	req.Equal(Stats{Scanned: 1, Skipped: 1}, st)

	writeExport(t, path, bobChat+"1/1/25, 12:00 AM - Bob: happy new year\n")
	st, err = IndexAll(db, quietLogger(), root)
	req.NoError(err)
	req.Equal(1, st.Updated)
	n, err := db.MessageCount()
	req.NoError(err)
	req.Equal(6, n)

	req.NoError(os.Remove(path))
	st, err = IndexAll(db, quietLogger(), root)
	req.NoError(err)
	req.Equal(Stats{Pruned: 1}, st)
	n, err = db.ExportCount()
	req.NoError(err)
	req.Zero(n)
}

func TestIndexAll_KeepsOtherRoots(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	a := filepath.Join(t.TempDir(), "a.txt")
	b := filepath.Join(t.TempDir(), "b.txt")
	writeExport(t, a, bobChat)
	writeExport(t, b, bobChat)

	_, err := IndexAll(db, quietLogger(), a)
	req.NoError(err)
	_, err = IndexAll(db, quietLogger(), b)
	req.NoError(err)

	n, err := db.ExportCount()
	req.NoError(err)
	req.Equal(2, n)
}

func TestIndexAll_BadExportCountsError(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	root := t.TempDir()
	writeExport(t, filepath.Join(root, "broken.txt"), "13/45/24, 9:15 PM - Alice: hi\n")
	writeExport(t, filepath.Join(root, "notes.txt"), "just some notes\nnothing else\n")

	st, err := IndexAll(db, quietLogger(), root)
	req.NoError(err)
	req.Equal(2, st.Scanned)
	req.Equal(1, st.Errors)
	req.Zero(st.Updated)
}

func TestGetMessagesWindow(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "bob.txt")
	writeExport(t, path, bobChat)
	_, err := IndexAll(db, quietLogger(), root)
	req.NoError(err)
	key := ExportKey(path, root)

	msgs, hitIdx, start, total, err := db.GetMessagesWindow(key, 2, 1)
	req.NoError(err)
	req.Len(msgs, 3)
	req.Equal(1, hitIdx)
	req.Equal(1, start)
	req.Equal(5, total)
	req.Equal(2, msgs[hitIdx].MessageID)

	msgs, hitIdx, start, _, err = db.GetMessagesWindow(key, 0, 10)
	req.NoError(err)
	req.Len(msgs, 5)
	req.Equal(0, hitIdx)
	req.Equal(0, start)

	msgs, hitIdx, _, _, err = db.GetMessagesWindow(key, -1, 2)
	req.NoError(err)
	req.Len(msgs, 5)
	req.Equal(-1, hitIdx)
}

func TestIndexAll_SameNameUnderTwoRoots(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	a, b := t.TempDir(), t.TempDir()
	writeExport(t, filepath.Join(a, "WhatsApp Chat.txt"), bobChat)
	writeExport(t, filepath.Join(b, "WhatsApp Chat.txt"), bobChat+"1/1/25, 12:00 AM - Bob: happy new year\n")

	st, err := IndexAll(db, quietLogger(), a, b)
	req.NoError(err)
	req.Equal(Stats{Scanned: 2, Updated: 2}, st)

	n, err := db.ExportCount()
	req.NoError(err)
	req.Equal(2, n)
	n, err = db.MessageCount()
	req.NoError(err)
	req.Equal(11, n)

	st, err = IndexAll(db, quietLogger(), a, b)
	req.NoError(err)
	req.Equal(Stats{Scanned: 2, Skipped: 2}, st)
}

func TestExportKey(t *testing.T) {
	req := require.New(t)
	root := filepath.Join("home", "me", "exports")
	other := filepath.Join("home", "you", "exports")

	bob := ExportKey(filepath.Join(root, "WhatsApp Chat with Bob.txt"), root)
	name, id, ok := strings.Cut(bob, "@")
	req.True(ok)
	req.Equal("WhatsApp Chat with Bob", name)
	req.Len(id, 8)
	req.Equal(bob, ExportKey(filepath.Join(root, "WhatsApp Chat with Bob.txt"), root))

	family := ExportKey(filepath.Join(root, "family", "2024.txt"), root)
	req.True(strings.HasPrefix(family, "family/2024@"))

	req.NotEqual(bob, ExportKey(filepath.Join(other, "WhatsApp Chat with Bob.txt"), other))
}
