package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type FileInfo struct {
	Path  string
	Root  string // root the file was found under, used to derive its export key
	Mtime int64
	Size  int64
}

// ScanRoots finds chat exports under each root. A root may be a directory or
// a single file; missing roots are skipped.
func ScanRoots(roots ...string) ([]FileInfo, error) {
	var files []FileInfo
	for _, root := range roots {
		if root == "" {
			continue
		}
		found, err := scanRoot(root)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func scanRoot(root string) ([]FileInfo, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		// explicitly named files only need to be text
		if !isText(root) {
			return nil, nil
		}
		return []FileInfo{fileInfo(root, filepath.Dir(root), info)}, nil
	}

	var files []FileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		if !isText(path) {
			return nil
		}
		files = append(files, fileInfo(path, root, info))
		return nil
	})
	return files, err
}

func fileInfo(path, root string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:  path,
		Root:  root,
		Mtime: info.ModTime().Unix(),
		Size:  info.Size(),
	}
}

// isText reports whether the file content looks like plain text. Exports
// with one comma per line can sniff as text/csv, so parents count too.
func isText(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
