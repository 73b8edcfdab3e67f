package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chatroast/internal/index"
)

type Result struct {
	ExportKey string
	MessageID int // -1 for export rows from ListAll
	Ts        string
	Sender    string
	Summary   string
	Snippet   string
	Rank      float64
}

type Options struct {
	Query  string
	Sender string // "" = all senders
	Since  string // "" = no filter, e.g. "2024-01-01"
	Limit  int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
// Matching is case-insensitive and rune-aligned, so case folds that change
// the UTF-8 length of a character do not shift the cut.
func makeSnippet(text, query string, contextChars int) string {
	runes := []rune(text)
	qLen := len([]rune(query))
	runePos := indexFold(runes, []rune(query))
	if runePos < 0 || query == "" {
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	start := max(runePos-contextChars, 0)
	end := min(runePos+qLen+contextChars, len(runes))

	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+qLen]) + "<<<" +
		string(runes[runePos+qLen:end])
	return prefix + snippet + suffix
}

// indexFold returns the rune index of the first case-insensitive occurrence
// of needle in haystack, or -1.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(r) {
				continue outer
			}
		}
		return i
	}
	return -1
}

// Search finds messages matching opts.Query, best match first. Queries
// containing CJK, or that FTS5 cannot parse, fall back to a substring scan.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}

	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	results, err := searchFTS(db, opts)
	if err != nil {
		// FTS5 syntax errors on input like "don't" or "a-b"
		return searchLike(db, opts)
	}
	return results, nil
}

// filters builds the sender and since conditions shared by both search paths.
func filters(opts Options, conditions []string, args []any) ([]string, []any) {
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions, args := filters(opts, []string{"messages_fts MATCH ?"}, []any{opts.Query})
	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.export_key,
			m.message_id,
			m.ts,
			m.sender,
			e.summary,
			snippet(messages_fts, 0, '>>>','<<<', '...', 24) as snip,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN exports e ON m.export_key = e.export_key
		WHERE %s
		ORDER BY rank, m.ts DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions, args := filters(opts, []string{"m.text LIKE ?"}, []any{"%" + opts.Query + "%"})
	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.export_key,
			m.message_id,
			m.ts,
			m.sender,
			e.summary,
			m.text
		FROM messages m
		JOIN exports e ON m.export_key = e.export_key
		WHERE %s
		ORDER BY m.ts DESC, m.message_id DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(&r.ExportKey, &r.MessageID, &r.Ts, &r.Sender, &r.Summary, &fullText); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListAll lists indexed exports, most recently active first. Sender matches
// any participant of the export.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []any
	if opts.Sender != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM messages m WHERE m.export_key = e.export_key AND m.sender = ?)")
		args = append(args, opts.Sender)
	}
	if opts.Since != "" {
		conditions = append(conditions, "e.last_at >= ?")
		args = append(args, opts.Since)
	}

	query := `SELECT e.export_key, e.last_at, e.senders, e.summary FROM exports e`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.last_at DESC, e.export_key"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r := Result{MessageID: -1}
		if err := rows.Scan(&r.ExportKey, &r.Ts, &r.Sender, &r.Summary); err != nil {
			return nil, err
		}
		r.Snippet = r.Summary
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ExportKey, &r.MessageID, &r.Ts,
			&r.Sender, &r.Summary, &r.Snippet, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
