package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chatroast/internal/index"
)

// OpenExport opens the export file in $EDITOR (less by default), at the
// line of message hitMessageID when it is >= 0.
func OpenExport(db *index.DB, exportKey string, hitMessageID int) error {
	export, err := db.GetExportByKey(exportKey)
	if err != nil {
		return fmt.Errorf("get export: %w", err)
	}
	if export == nil {
		return fmt.Errorf("export not found: %s", exportKey)
	}

	filePath := export.FilePath
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}

	lineNum := 1
	if hitMessageID >= 0 {
		msgs, _, _, _, err := db.GetMessagesWindow(exportKey, hitMessageID, 0)
		if err == nil && len(msgs) == 1 {
			lineNum = msgs[0].LineNumber
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, filePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// editorCommand builds the command that opens filePath at lineNum for the
// editors that support jumping to a line.
func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nano"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
