package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Zuo-Peng/chatroast/internal/parse"
	"github.com/Zuo-Peng/chatroast/internal/scan"
	"github.com/Zuo-Peng/chatroast/internal/stats"
)

const maxSummarySize = 200

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// IndexAll brings the index in line with the exports found under roots:
// new and changed exports are (re)indexed, unchanged ones skipped and
// exports whose files are gone pruned.
func IndexAll(db *DB, log *slog.Logger, roots ...string) (Stats, error) {
	var st Stats

	files, err := scan.ScanRoots(roots...)
	if err != nil {
		return st, fmt.Errorf("scan: %w", err)
	}
	st.Scanned = len(files)

	// track which exports we see, for pruning
	seenKeys := make(map[string]struct{})

	for _, fi := range files {
		key := ExportKey(fi.Path, fi.Root)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, fi.Mtime, fi.Size)
		if err != nil {
			st.Errors++
			log.Warn("check export", "path", fi.Path, "err", err)
			continue
		}
		if !needs {
			st.Skipped++
			continue
		}

		msgs, err := parse.ParseFile(fi.Path)
		if err != nil {
			st.Errors++
			log.Warn("parse export", "path", fi.Path, "err", err)
			continue
		}
		if len(msgs) == 0 {
			// not a chat export; forget anything indexed under this key
			if err := db.DeleteExport(key); err != nil {
				st.Errors++
				log.Warn("drop export", "path", fi.Path, "err", err)
			}
			log.Debug("no messages", "path", fi.Path)
			continue
		}

		if err := indexExport(db, key, fi, msgs); err != nil {
			st.Errors++
			log.Warn("index export", "path", fi.Path, "err", err)
			continue
		}
		log.Debug("indexed export", "key", key, "messages", len(msgs))
		st.Updated++
	}

	// prune exports whose files no longer exist
	pruned, err := pruneExports(db, seenKeys)
	if err != nil {
		return st, fmt.Errorf("prune: %w", err)
	}
	st.Pruned = pruned

	return st, nil
}

// ExportKey derives a stable key for an export: its path relative to the
// root it was found under, without the extension, followed by "@" and a short
// hash of the absolute root. Exports with the same name under different roots
// get different keys.
func ExportKey(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	name := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
	return name + "@" + rootID(root)
}

// rootID is the first 8 hex digits of a name-based UUID of the root's URL.
func rootID(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(root)))
	return u.String()[:8]
}

func needsUpdate(db *DB, exportKey string, mtime, size int64) (bool, error) {
	info, err := db.GetExportInfo(exportKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new export
	}
	return info.Mtime != mtime || info.Size != size, nil
}

func indexExport(db *DB, key string, fi scan.FileInfo, msgs []parse.Message) error {
	// delete old data first
	if err := db.DeleteExport(key); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	senders := lo.Map(stats.RankSenders(msgs), func(c stats.Count, _ int) string { return c.Item })

	_, err = tx.Exec(
		`INSERT INTO exports (export_key, file_path, first_at, last_at, senders, summary, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key,
		fi.Path,
		msgs[0].Timestamp.Format(tsLayout),
		msgs[len(msgs)-1].Timestamp.Format(tsLayout),
		strings.Join(senders, ", "),
		summarize(msgs),
		fi.Mtime,
		fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (export_key, message_id, ts, sender, text, line_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range msgs {
		if _, err := stmt.Exec(key, i, m.Timestamp.Format(tsLayout), m.Sender, m.Text, m.Line); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// summarize uses the first message with text as the export summary.
func summarize(msgs []parse.Message) string {
	first, ok := lo.Find(msgs, func(m parse.Message) bool { return strings.TrimSpace(m.Text) != "" })
	if !ok {
		return ""
	}
	s := strings.ReplaceAll(first.Text, "\n", " ")
	if r := []rune(s); len(r) > maxSummarySize {
		s = string(r[:maxSummarySize])
	}
	return first.Sender + ": " + s
}

// pruneExports drops exports that were not seen in this run and whose file
// is gone. Exports indexed from other roots stay.
func pruneExports(db *DB, seenKeys map[string]struct{}) (int, error) {
	all, err := db.AllExportPaths()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key, path := range all {
		if _, ok := seenKeys[key]; ok {
			continue
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := db.DeleteExport(key); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
