package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// StoreConfig holds the configuration for a Store.
type StoreConfig struct {
	Logger        *slog.Logger
	Clock         func() time.Time // defaults to time.Now
	DefaultFolder string           // folder applied when unspecified, defaults to DefaultFolder
	EventBuffer   int              // per-subscriber channel buffer, defaults to 16
}

// Store is the sole authority over the note collection and the
// active-note pointer. All mutation flows through its operations; every
// mutation is written through to the durable slot before the operation
// returns. There is no write-behind queue.
//
// The canonical in-memory order is newest-first.
type Store struct {
	mu   sync.RWMutex
	slot Slot

	logger        *slog.Logger
	now           func() time.Time
	defaultFolder string
	eventBuffer   int

	notes       []Note
	activeID    string
	initialized bool

	subs map[*subscriber]struct{}
}

type subscriber struct {
	pattern string
	ch      chan Event
}

// NewStore creates a Store backed by the given slot. The Store is inert
// until Initialize is called.
func NewStore(slot Slot, cfg StoreConfig) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.DefaultFolder == "" {
		cfg.DefaultFolder = DefaultFolder
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 16
	}
	return &Store{
		slot:          slot,
		logger:        cfg.Logger,
		now:           cfg.Clock,
		defaultFolder: cfg.DefaultFolder,
		eventBuffer:   cfg.EventBuffer,
		subs:          make(map[*subscriber]struct{}),
	}
}

// Welcome note seeded on first activation when the slot reports nothing
// stored. This is a one-time bootstrap, not repeated on later empty loads.
const (
	WelcomeTitle   = "Welcome to Echo"
	WelcomeFolder  = "Getting Started"
	welcomeContent = "# Welcome to Echo Notes\n\n" +
		"Echo is your AI-powered note-taking companion. Here are some things you can do:\n\n" +
		"- Create and organize notes\n" +
		"- Use AI to summarize your notes\n" +
		"- Get writing suggestions\n" +
		"- Generate content based on prompts\n" +
		"- Organize with tags and folders\n\n" +
		"To get started, create a new note using the + button in the sidebar."
)

var welcomeTags = []string{"welcome", "getting-started"}

// Initialize loads the collection from the slot on first activation.
// When the slot reports nothing stored it seeds a single welcome note
// instead of leaving an empty state. Calling Initialize again after
// data is loaded is a no-op.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := s.slot.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize slot: %w", err)
	}

	notes, err := s.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	if notes == nil {
		now := s.now()
		sample := Note{
			ID:        generateID(),
			Title:     WelcomeTitle,
			Content:   welcomeContent,
			Tags:      append([]string(nil), welcomeTags...),
			Folder:    WelcomeFolder,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.notes = []Note{sample}
		s.initialized = true
		s.logger.Info("seeded welcome note", "id", sample.ID)
		if err := s.persist(ctx); err != nil {
			return err
		}
		return nil
	}

	// The persisted array order is whatever was last written; the
	// canonical order is re-established from timestamps.
	sortNewestFirst(notes)
	s.notes = notes
	s.initialized = true
	s.logger.Debug("collection loaded", "count", len(notes))
	return nil
}

// CreateNote generates an id, applies default field values, stamps both
// timestamps, prepends the note to the collection, sets it active, and
// persists. The returned note is always valid; a non-nil error reports
// a persistence failure only (see Store error semantics).
func (s *Store) CreateNote(ctx context.Context) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := Note{
		ID:        generateID(),
		Title:     DefaultTitle,
		Content:   "",
		Tags:      []string{},
		Folder:    s.defaultFolder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.notes = append([]Note{n}, s.notes...)
	s.activeID = n.ID

	err := s.persist(ctx)
	s.publish(Event{Type: EventCreate, ID: n.ID, Folder: n.Folder, Timestamp: now.Unix()})

	out := n.Clone()
	return &out, err
}

// UpdateNote replaces only the supplied fields of the note with the
// given id and refreshes updatedAt. An unknown id is a silent no-op:
// the editor may race with a delete and must not crash. The returned
// error reports a persistence failure only; the in-memory mutation is
// never rolled back.
func (s *Store) UpdateNote(ctx context.Context, id string, u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Debug("update for unknown note ignored", "id", id)
		return nil
	}

	n := &s.notes[idx]
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Tags != nil {
		n.Tags = dedupeTags(u.Tags)
	}
	if u.Folder != nil {
		if *u.Folder == "" {
			n.Folder = s.defaultFolder
		} else {
			n.Folder = *u.Folder
		}
	}

	now := s.now()
	if now.Before(n.CreatedAt) {
		// Clock went backwards; createdAt <= updatedAt must hold.
		now = n.CreatedAt
	}
	n.UpdatedAt = now

	err := s.persist(ctx)
	s.publish(Event{Type: EventModify, ID: n.ID, Folder: n.Folder, Timestamp: now.Unix()})
	return err
}

// DeleteNote removes the note with the given id, clearing the active
// pointer if it referenced it. Deletion is terminal; there is no trash
// state. An unknown id is a no-op.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	folder := s.notes[idx].Folder
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	if s.activeID == id {
		s.activeID = ""
	}

	err := s.persist(ctx)
	s.publish(Event{Type: EventDelete, ID: id, Folder: folder, Timestamp: s.now().Unix()})
	return err
}

// GetNoteByID is a pure lookup with no side effect.
func (s *Store) GetNoteByID(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Note{}, false
	}
	return s.notes[idx].Clone(), true
}

// Notes returns a snapshot of the full collection in newest-first order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.notes)
}

// Folders returns the distinct folder labels in use, ordered by first
// appearance in the collection. The folder index has no independent
// lifecycle: a label disappears with its last note.
func (s *Store) Folders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.notes))
	var folders []string
	for _, n := range s.notes {
		if !seen[n.Folder] {
			seen[n.Folder] = true
			folders = append(folders, n.Folder)
		}
	}
	return folders
}

// ActiveNote returns the note currently open for editing, if any. The
// reference is weak: it never outlives the note it points to.
func (s *Store) ActiveNote() (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == "" {
		return Note{}, false
	}
	idx := s.indexOf(s.activeID)
	if idx < 0 {
		return Note{}, false
	}
	return s.notes[idx].Clone(), true
}

// SetActiveNote marks the note with the given id as open for editing.
// It reports false when the id is not in the collection, which is the
// one absence callers are expected to surface ("note not found").
func (s *Store) SetActiveNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false
	}
	s.activeID = id
	return true
}

// ClearActiveNote drops the active-note pointer (scope exit).
func (s *Store) ClearActiveNote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

// Reload re-reads the collection from the slot after an out-of-band
// change. The active pointer survives when its note still exists. When
// the slot reports nothing stored the in-memory collection stays
// authoritative; an external wipe must not nuke the session.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload collection: %w", err)
	}
	if notes == nil {
		s.logger.Warn("reload found nothing stored, keeping in-memory collection")
		return nil
	}

	sortNewestFirst(notes)
	s.notes = notes
	if s.activeID != "" && s.indexOf(s.activeID) < 0 {
		s.activeID = ""
	}

	s.publish(Event{Type: EventReload, Timestamp: s.now().Unix()})
	s.logger.Debug("collection reloaded", "count", len(notes))
	return nil
}

// Subscribe registers for change events. pattern is a doublestar glob
// matched against the folder of the changed note ("*" or "**" for
// everything); RELOAD events are delivered to every subscriber. The
// subscription ends when ctx is done. A subscriber that falls behind
// its buffer drops events rather than blocking mutations.
func (s *Store) Subscribe(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	sub := &subscriber{pattern: pattern, ch: make(chan Event, s.eventBuffer)}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, sub)
		s.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch, nil
}

// publish fans an event out to matching subscribers. Callers hold s.mu.
func (s *Store) publish(e Event) {
	for sub := range s.subs {
		if e.Type != EventReload {
			ok, err := doublestar.Match(sub.pattern, e.Folder)
			if err != nil || !ok {
				continue
			}
		}
		select {
		case sub.ch <- e:
		default:
			s.logger.Debug("subscriber buffer full, dropping event", "type", e.Type, "id", e.ID)
		}
	}
}

// persist writes the whole collection through to the slot. A failed
// write is logged and wrapped in ErrSlotUnavailable; the in-memory
// state is kept so the user's edit survives the session. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if err := s.slot.Save(ctx, s.notes); err != nil {
		s.logger.Warn("slot write failed, in-memory collection stays authoritative", "error", err)
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	}
	return nil
}

// indexOf locates a note by id. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func sortNewestFirst(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

func cloneAll(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
