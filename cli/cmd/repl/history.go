package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// String renders the entry the way it is typed in line mode, where control
// commands carry a leading colon.
func (e HistoryEntry) String() string {
	if e.Mode == modeCtrl {
		return ctrlPrefix + e.Line
	}

	return e.Line
}

// History manages command history with file persistence.
//
// Each line of the file is one entry prefixed with its mode: "E:" for
// statements and "C:" for control commands. Newlines within an entry are
// stored as a backslash followed by "n", which cannot occur in source text.
// An empty path keeps the history in memory only.
type History struct {
	path    string
	limit   int
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History backed by the file at path holding at
// most limit entries. A limit of zero or less is unbounded.
func NewHistory(path string, limit int) *History {
	return &History{path: path, limit: limit}
}

// Load reads history entries from the history file.
// A missing file is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, decodeEntry(line))
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	h.trim()

	return nil
}

// WriteWithMode appends a new entry to the history with the specified mode.
// An earlier entry with the same line and mode is moved to the end.
func (h *History) WriteWithMode(entry string, mode inputMode) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next := HistoryEntry{Line: entry, Mode: mode}

	// Skip if same as last entry (both line and mode)
	if n := len(h.entries); n > 0 && h.entries[n-1] == next {
		return len(entry), nil
	}

	before := len(h.entries)
	h.entries = slices.DeleteFunc(h.entries, func(e HistoryEntry) bool {
		return e == next
	})
	needsRewrite := len(h.entries) != before

	h.entries = append(h.entries, next)

	if h.trim() {
		needsRewrite = true
	}

	if h.path == "" {
		return len(entry), nil
	}

	// A removed duplicate or trimmed entry requires rewriting the whole
	// file; otherwise just append.
	if needsRewrite {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(encodeEntry(next))
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// trim drops the oldest entries beyond the limit and reports whether any
// were dropped. Must be called with h.mu held.
func (h *History) trim() bool {
	if h.limit <= 0 || len(h.entries) <= h.limit {
		return false
	}

	h.entries = slices.Delete(h.entries, 0, len(h.entries)-h.limit)

	return true
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	totalBytes := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(encodeEntry(entry))
		if err != nil {
			return totalBytes, err
		}

		totalBytes += n
	}

	return totalBytes, nil
}

var newlineEscape = strings.NewReplacer("\n", `\n`)

func encodeEntry(e HistoryEntry) string {
	prefix := "E:"
	if e.Mode == modeCtrl {
		prefix = "C:"
	}

	return prefix + newlineEscape.Replace(e.Line) + "\n"
}

func decodeEntry(line string) HistoryEntry {
	mode := modeEval

	if s, ok := strings.CutPrefix(line, "E:"); ok {
		line = s
	} else if s, ok := strings.CutPrefix(line, "C:"); ok {
		line, mode = s, modeCtrl
	}

	// Lines without a mode prefix are statements.
	return HistoryEntry{
		Line: strings.ReplaceAll(line, `\n`, "\n"),
		Mode: mode,
	}
}
