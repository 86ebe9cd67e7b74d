package fs

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/echo/pkg/core"
)

// SlotFile is the well-known name of the durable slot inside the vault
// directory.
const SlotFile = "notes.json"

// Config holds the configuration for the filesystem slot.
type Config struct {
	Path      string // vault directory
	File      string // slot file name, defaults to SlotFile
	MustExist bool   // require the vault directory to already exist
	Logger    *slog.Logger
}

// Slot implements core.Slot with a single JSON snapshot file. Writes
// are atomic (temp file + rename) so a crash mid-write never leaves a
// half-written collection behind.
type Slot struct {
	config Config
	logger *slog.Logger

	mu      sync.Mutex
	lastSum [sha256.Size]byte // checksum of the last self-write
	hasSum  bool

	watcherActive bool
}

// NewSlot creates a filesystem-backed slot rooted at config.Path.
func NewSlot(config Config) *Slot {
	if config.File == "" {
		config.File = SlotFile
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Slot{config: config, logger: logger}
}

// Path returns the full path to the slot file.
func (s *Slot) Path() string {
	return filepath.Join(s.config.Path, s.config.File)
}

// Initialize ensures the vault directory exists.
func (s *Slot) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.config.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", s.config.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", s.config.Path)
		}
		return nil
	}
	if err := os.MkdirAll(s.config.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	return nil
}

// Load reads the slot and deserializes the collection. An absent or
// unreadable file, and malformed JSON, all report "nothing stored"
// (nil, nil): the store recovers by bootstrapping, never by crashing.
func (s *Slot) Load(ctx context.Context) ([]core.Note, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		s.logger.Warn("slot unreadable, treating as nothing stored", "path", s.Path(), "error", err)
		return nil, nil
	}

	var notes []core.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		s.logger.Warn("malformed slot data discarded", "path", s.Path(), "error", err)
		return nil, nil
	}
	if notes == nil {
		// A stored JSON null is a stored (empty) collection, not an
		// absent slot; it must not retrigger the bootstrap.
		notes = []core.Note{}
	}

	s.mu.Lock()
	s.lastSum = sha256.Sum256(data)
	s.hasSum = true
	s.mu.Unlock()

	return notes, nil
}

// Save serializes and writes the full collection atomically.
func (s *Slot) Save(ctx context.Context, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize collection: %w", err)
	}

	// Record the checksum before the rename lands so the watcher never
	// reports our own write as an external change.
	s.mu.Lock()
	s.lastSum = sha256.Sum256(data)
	s.hasSum = true
	s.mu.Unlock()

	if err := writeFileAtomic(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}

	s.logger.Debug("collection persisted", "path", s.Path(), "count", len(notes))
	return nil
}

// isSelfWrite reports whether the current slot content matches the last
// write issued through this Slot.
func (s *Slot) isSelfWrite(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSum && sha256.Sum256(data) == s.lastSum
}

func (s *Slot) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

var _ core.Slot = (*Slot)(nil)
