// Package highscore persists the best score as a plain text file holding a
// single decimal integer.
package highscore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// File reads and writes the high score file.
// It is safe for concurrent use; SSH sessions share one File.
type File struct {
	path   string
	logger *log.Logger

	mu sync.Mutex
}

// New returns a File backed by path. A leading ~ is expanded to the home
// directory. A nil logger discards output.
func New(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &File{
		path:   expandHome(path),
		logger: logger.WithPrefix("highscore"),
	}
}

// Path returns the resolved file path.
func (f *File) Path() string {
	return f.path
}

// Load returns the stored high score. A missing, unreadable or malformed
// file yields 0.
func (f *File) Load() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) load() int {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Debug("no high score file", "path", f.path)
		return 0
	}
	if err != nil {
		f.logger.Warn("cannot read high score file", "path", f.path, "err", err)
		return 0
	}

	score, err := parse(data)
	if err != nil {
		f.logger.Warn("ignoring malformed high score file", "path", f.path, "err", err)
		return 0
	}
	return score
}

// Save writes score if it beats the stored value. Parent directories are
// created as needed.
func (f *File) Save(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if score <= f.load() {
		return nil
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("highscore: cannot write %s: %w", f.path, err)
	}

	f.logger.Debug("saved high score", "score", score)
	return nil
}

// parse decodes the file contents. Surrounding whitespace is ignored and
// negative values are rejected.
func parse(data []byte) (int, error) {
	text := strings.TrimSpace(string(data))
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", text)
	}
	if score < 0 {
		return 0, fmt.Errorf("negative score %d", score)
	}
	return score, nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
