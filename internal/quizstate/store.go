package quizstate

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"coursecheck/internal/config"
	"coursecheck/internal/quiz"
)

// FileSuffix is appended to the safe lesson key to form the state file name.
const FileSuffix = ".quiz.yml"

// Store reads and writes one YAML document per lesson under the state directory.
// Both directions are no-ops unless persistence is enabled.
type Store struct {
	enabled bool
	dir     string
	logger  *log.Logger
}

// NewStore builds a Store rooted at the configured state dir, resolved against root.
func NewStore(cfg config.Quiz, root string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	dir := filepath.FromSlash(cfg.StateDir)
	if dir == "" {
		dir = filepath.FromSlash(config.DefaultStateDir)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return &Store{enabled: cfg.PersistState, dir: dir, logger: logger}
}

// Enabled reports whether the store touches disk.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Dir returns the directory holding state files.
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the state file path for lessonPath.
func (s *Store) PathFor(lessonPath string) string {
	return filepath.Join(s.dir, SafeKey(lessonPath)+FileSuffix)
}

// Save writes lesson atomically. A failed write leaves the previous file intact.
func (s *Store) Save(lesson *quiz.LessonState) error {
	if !s.enabled || lesson == nil {
		return nil
	}
	if strings.TrimSpace(lesson.LessonPath) == "" {
		return fmt.Errorf("lesson path is required")
	}
	payload, err := Encode(lesson)
	if err != nil {
		return err
	}
	path := s.PathFor(lesson.LessonPath)
	if err := writeAtomic(path, payload); err != nil {
		s.logger.Printf("warning: save quiz state %s: %v", path, err)
		return fmt.Errorf("save quiz state: %w", err)
	}
	return nil
}

// Load returns the stored state for lessonPath, or nil when persistence is
// off, nothing is stored, or the stored document is unusable. A document
// recorded for another lesson path is unusable, since distinct paths can share
// a safe key. Problems other than a missing file are logged.
func (s *Store) Load(lessonPath string) *quiz.LessonState {
	if !s.enabled || strings.TrimSpace(lessonPath) == "" {
		return nil
	}
	path := s.PathFor(lessonPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Printf("warning: load quiz state %s: %v", path, err)
		}
		return nil
	}
	lesson, err := Decode(data)
	if err != nil {
		s.logger.Printf("warning: load quiz state %s: %v", path, err)
		return nil
	}
	if !strings.EqualFold(strings.TrimSpace(lesson.LessonPath), strings.TrimSpace(lessonPath)) {
		err := fmt.Errorf("%w: stored for %q, not %q", ErrCorruptState, lesson.LessonPath, lessonPath)
		s.logger.Printf("warning: load quiz state %s: %v", path, err)
		return nil
	}
	lesson.LessonPath = lessonPath
	return lesson
}

// Delete removes the stored state for lessonPath, if any.
func (s *Store) Delete(lessonPath string) error {
	if !s.enabled {
		return nil
	}
	if err := os.Remove(s.PathFor(lessonPath)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete quiz state: %w", err)
	}
	return nil
}

// SafeKey replaces characters that are unsafe in file names with '_'.
func SafeKey(lessonPath string) string {
	var b strings.Builder
	b.Grow(len(lessonPath))
	for _, r := range lessonPath {
		switch {
		case r < 0x20, strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeAtomic(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
