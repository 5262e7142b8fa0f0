// Package filesystem walks a local repository checkout and collects
// the text files worth indexing.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driven"
	"github.com/bhumika152/GitAssistant-Ollama/internal/logger"
)

// MaxFileSize caps individual files at 5 MiB. Larger files are almost
// never hand-written source and would dominate the token budget.
const MaxFileSize = 5 * 1024 * 1024

// sniffLen is how much of a file is checked for valid UTF-8 before the
// file is accepted as text.
const sniffLen = 8 * 1024

// supportedExtensions is the allow-list of file types worth embedding.
var supportedExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".java": {}, ".cpp": {}, ".c": {}, ".h": {}, ".cs": {},
	".go": {}, ".rs": {}, ".php": {}, ".rb": {}, ".swift": {},
	".kt": {}, ".scala": {}, ".md": {}, ".txt": {}, ".json": {},
	".yaml": {}, ".yml": {}, ".xml": {}, ".html": {}, ".css": {},
	".sh": {}, ".bash": {}, ".sql": {}, ".r": {}, ".m": {},
	".dart": {}, ".vue": {}, ".svelte": {},
}

// ignoredDirs are pruned from the walk. Dot-directories are pruned
// regardless of this set.
var ignoredDirs = map[string]struct{}{
	"node_modules": {}, "__pycache__": {}, "venv": {}, "env": {},
	"dist": {}, "build": {}, "target": {}, "bin": {}, "obj": {},
	"vendor": {}, "bower_components": {}, "__MACOSX": {},
}

// Scanner walks repository trees and returns processable text files.
type Scanner struct{}

var _ driven.FileScanner = (*Scanner)(nil)

// NewScanner returns a scanner with the default allow-list and size
// cap.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan walks root and returns every allow-listed text file under the
// size cap, with paths relative to root. Unreadable files are logged
// and skipped.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.ScannedFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	var files []domain.ScannedFile
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			logger.Warn("Skipping %s: %v", path, walkErr)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && ignoreDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !shouldProcess(path, entry) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable file %s: %v", path, err)
			return nil
		}
		if !isText(content) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		files = append(files, domain.ScannedFile{
			Path:    filepath.ToSlash(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	logger.Info("Found %d processable files in repository", len(files))
	return files, nil
}

func ignoreDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := ignoredDirs[name]
	return ok
}

func shouldProcess(path string, entry fs.DirEntry) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return false
	}

	info, err := entry.Info()
	if err != nil {
		return false
	}
	if info.Size() > MaxFileSize {
		logger.Warn("Skipping large file: %s (%.2fMB)", path, float64(info.Size())/(1024*1024))
		return false
	}
	return true
}

// isText accepts content whose leading bytes decode as UTF-8 without
// NULs. A truncated rune at the sniff boundary is tolerated.
func isText(content []byte) bool {
	sniff := content
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
	}
	for len(sniff) > 0 {
		r, size := utf8.DecodeRune(sniff)
		if r == utf8.RuneError && size == 1 {
			// Could be a multi-byte rune cut off by the sniff window.
			return len(sniff) < utf8.UTFMax && len(content) > sniffLen
		}
		if r == 0 {
			return false
		}
		sniff = sniff[size:]
	}
	return true
}
