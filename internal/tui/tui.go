package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"github.com/Zuo-Peng/chatroast/internal/index"
	"github.com/Zuo-Peng/chatroast/internal/search"
)

const debounceDelay = 200 * time.Millisecond

type tuiMode int

const (
	modeSearch tuiMode = iota
	modeList
)

type resultsMsg struct {
	query   string
	sender  string
	results []search.Result
	err     error
}

type debounceTickMsg struct {
	query string
}

type model struct {
	db         *index.DB
	opts       search.Options // Sender is the active filter
	mode       tuiMode
	query      string
	results    []search.Result
	cursor     int
	listOffset int
	input      textinput.Model
	preview    viewport.Model
	shown      previewKey
	focus      int      // message highlighted in the preview, -1 for none
	total      int      // messages in the shown export
	header     string   // participants and period of the shown export
	senders    []string // participants of the shown export
	width      int
	height     int
	ready      bool
	quitting   bool
	chosen     *search.Result
}

func newModel(db *index.DB, mode tuiMode, query string, opts search.Options) model {
	ti := textinput.New()
	ti.Placeholder = "Search messages..."
	if mode == modeList {
		ti.Placeholder = "Filter exports..."
	}
	ti.Focus()
	ti.SetValue(query)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		db:      db,
		opts:    opts,
		mode:    mode,
		query:   query,
		input:   ti,
		preview: viewport.New(0, 0),
		focus:   -1,
	}
}

// Run searches messages interactively, starting from query. On Enter the
// highlighted message is copied to the clipboard.
func Run(db *index.DB, query string, opts search.Options) error {
	return run(db, newModel(db, modeSearch, query, opts))
}

// RunList browses indexed exports by latest activity. Typing switches to a
// message search across all of them.
func RunList(db *index.DB, opts search.Options) error {
	return run(db, newModel(db, modeList, "", opts))
}

func run(db *index.DB, m model) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm := final.(model); fm.chosen != nil {
		return copyResult(db, *fm.chosen)
	}
	return nil
}

// copyResult copies the chosen message as "[ts] sender: text", or the
// export file path when no message is highlighted. Without a clipboard it
// prints the text instead.
func copyResult(db *index.DB, r search.Result) error {
	text, err := resultText(db, r)
	if err != nil {
		return err
	}

	if err := clipboard.WriteAll(text); err != nil {
		fmt.Printf("%s\n", text)
		return nil
	}

	fmt.Printf("Copied to clipboard: %s\n", text)
	return nil
}

func resultText(db *index.DB, r search.Result) (string, error) {
	if r.MessageID < 0 {
		export, err := db.GetExportByKey(r.ExportKey)
		if err != nil {
			return "", fmt.Errorf("get export: %w", err)
		}
		if export == nil {
			return "", fmt.Errorf("export not found: %s", r.ExportKey)
		}
		return export.FilePath, nil
	}

	msgs, _, _, _, err := db.GetMessagesWindow(r.ExportKey, r.MessageID, 0)
	if err != nil {
		return "", fmt.Errorf("get message: %w", err)
	}
	if len(msgs) != 1 {
		return "", fmt.Errorf("message not found: %s:%d", r.ExportKey, r.MessageID)
	}
	m := msgs[0]
	return fmt.Sprintf("[%s] %s: %s", strings.Replace(m.Ts, "T", " ", 1), m.Sender, m.Text), nil
}

func (m model) Init() tea.Cmd {
	if m.mode == modeList || m.query != "" {
		return tea.Batch(textinput.Blink, m.fetch(m.query))
	}
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		_, previewW, h := m.panes()
		m.preview = newViewport(previewW, h)
		m.shown = previewKey{} // re-render at the new width
		return m, m.loadPreview()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceTickMsg:
		if msg.query != m.query {
			return m, nil
		}
		return m, m.fetch(msg.query)

	case resultsMsg:
		if msg.query != m.query || msg.sender != m.opts.Sender {
			return m, nil // stale
		}
		m.results = msg.results
		m.cursor = 0
		m.listOffset = 0
		m.focus = -1
		m.shown = previewKey{}
		if msg.err != nil {
			m.results = nil
			m.preview.SetContent("Error: " + msg.err.Error())
			return m, nil
		}
		if len(m.results) == 0 {
			m.header = ""
			m.preview.SetContent("")
			return m, nil
		}
		m.focus = m.results[0].MessageID
		return m, m.loadPreview()

	case previewRenderedMsg:
		if msg.key != m.want() {
			return m, nil // stale
		}
		m.shown = msg.key
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
			return m, nil
		}
		m.header = msg.header
		m.senders = msg.senders
		m.total = msg.total
		m.preview.SetContent(msg.content)
		if msg.hitLine > 0 {
			m.preview.SetYOffset(msg.hitLine)
		} else {
			m.preview.GotoTop()
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, _, h := m.panes()
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Enter):
		if m.cursor >= len(m.results) {
			return m, nil
		}
		r := m.results[m.cursor]
		r.MessageID = m.focus
		m.chosen = &r
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		return m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		return m.moveCursor(1)
	case key.Matches(msg, keys.PrevMessage):
		return m.moveFocus(-1)
	case key.Matches(msg, keys.NextMessage):
		return m.moveFocus(1)

	case key.Matches(msg, keys.Sender):
		m.opts.Sender = nextSender(m.senders, m.opts.Sender)
		return m, m.fetch(m.query)

	case key.Matches(msg, keys.PreviewUp):
		m.preview.LineUp(h / 2)
		return m, nil
	case key.Matches(msg, keys.PreviewDn):
		m.preview.LineDown(h / 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		return m, tea.Batch(cmd, debounce(q))
	}
	return m, cmd
}

// moveCursor selects another result and highlights its message.
func (m model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.results) {
		return m, nil
	}
	m.cursor = next
	m.focus = m.results[next].MessageID
	_, _, h := m.panes()
	m.adjustListScroll(h)
	return m, m.loadPreview()
}

// moveFocus steps the highlighted message through the shown export,
// starting at its first message when nothing is highlighted.
func (m model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.results) || m.shown.exportKey != m.results[m.cursor].ExportKey {
		return m, nil
	}
	next := m.focus + delta
	if m.focus < 0 {
		next = 0
	}
	if next < 0 || next >= m.total {
		return m, nil
	}
	m.focus = next
	return m, m.loadPreview()
}

// nextSender cycles the sender filter from all senders through each
// participant and back to all.
func nextSender(senders []string, cur string) string {
	i := -1
	if cur != "" {
		i = lo.IndexOf(senders, cur)
	}
	if i+1 >= len(senders) {
		return ""
	}
	return senders[i+1]
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	listW, previewW, h := m.panes()

	header := m.header
	if header == "" {
		header = "No export selected"
	}
	header = styleHeader.Render(runewidth.Truncate(header, max(m.width-2, 0), "…"))

	list := stylePanelBorder.Width(listW).Height(h).Render(m.renderList(listW, h))
	m.preview.Width = previewW
	m.preview.Height = h
	preview := styleActiveBorder.Width(previewW).Height(h).Render(m.preview.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, list, preview),
		m.statusBar(),
	)
}

// panes returns the list and preview widths (40/60 split, minus borders)
// and the height they share.
func (m model) panes() (listW, previewW, height int) {
	listW, previewW, height = 40, 60, 20
	if m.width > 0 {
		listW = max(m.width*40/100-4, 20)
		previewW = max(m.width*60/100-4, 20)
	}
	if m.height > 0 {
		// input, header and status rows plus the panel borders
		height = max(m.height-7, 5)
	}
	return listW, previewW, height
}

func (m model) statusBar() string {
	noun := "messages"
	if m.mode == modeList && m.query == "" {
		noun = "exports"
	}
	from := "all senders"
	if m.opts.Sender != "" {
		from = "from " + m.opts.Sender
	}
	copied := "copy path"
	position := ""
	if m.focus >= 0 {
		copied = "copy message"
		if m.total > 0 {
			position = fmt.Sprintf("msg %d/%d", m.focus+1, m.total)
		}
	}
	parts := lo.Compact([]string{
		fmt.Sprintf("%d %s", len(m.results), noun),
		from,
		position,
		"up/dn result",
		"C-p/C-n message",
		"C-s sender",
		"C-u/C-d scroll",
		"Enter " + copied,
		"Esc quit",
	})
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// fetch runs query under the current sender filter. In list mode an empty
// query lists exports; in search mode it clears the results.
func (m model) fetch(query string) tea.Cmd {
	db, mode := m.db, m.mode
	opts := m.opts
	opts.Query = query
	return func() tea.Msg {
		msg := resultsMsg{query: query, sender: opts.Sender}
		switch {
		case query == "" && mode == modeList:
			msg.results, msg.err = search.ListAll(db, opts)
		case query != "":
			msg.results, msg.err = search.Search(db, opts)
		}
		return msg
	}
}

func debounce(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

// want is the preview the current selection calls for.
func (m model) want() previewKey {
	if m.cursor >= len(m.results) {
		return previewKey{}
	}
	return previewKey{exportKey: m.results[m.cursor].ExportKey, messageID: m.focus}
}

func (m model) loadPreview() tea.Cmd {
	k := m.want()
	if k.exportKey == "" || k == m.shown {
		return nil
	}
	_, previewW, _ := m.panes()
	return loadPreviewCmd(m.db, k, m.query, previewW)
}
