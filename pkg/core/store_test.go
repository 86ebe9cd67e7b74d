package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/echo/pkg/core"
)

// memSlot implements core.Slot in memory. A nil stored slice reports
// "nothing stored", mirroring the real adapter's contract.
type memSlot struct {
	stored   []core.Note
	saves    int
	failSave bool
}

func (m *memSlot) Load(ctx context.Context) ([]core.Note, error) {
	if m.stored == nil {
		return nil, nil
	}
	return append([]core.Note{}, m.stored...), nil
}

func (m *memSlot) Save(ctx context.Context, notes []core.Note) error {
	if m.failSave {
		return errors.New("storage quota exceeded")
	}
	m.saves++
	m.stored = append([]core.Note{}, notes...)
	return nil
}

func (m *memSlot) Initialize(ctx context.Context) error { return nil }

// testClock returns distinguishable instants: every call advances by
// one second.
func testClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T, slot *memSlot) *core.Store {
	t.Helper()
	store := core.NewStore(slot, core.StoreConfig{Clock: testClock()})
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return store
}

func TestInitialize(t *testing.T) {
	t.Run("Seeds Welcome Note When Nothing Stored", func(t *testing.T) {
		slot := &memSlot{}
		store := newTestStore(t, slot)

		notes := store.Notes()
		if len(notes) != 1 {
			t.Fatalf("expected 1 note, got %d", len(notes))
		}
		n := notes[0]
		if n.Title != "Welcome to Echo" {
			t.Errorf("unexpected title: %q", n.Title)
		}
		if n.Folder != "Getting Started" {
			t.Errorf("unexpected folder: %q", n.Folder)
		}
		if len(n.Tags) != 2 || n.Tags[0] != "welcome" || n.Tags[1] != "getting-started" {
			t.Errorf("unexpected tags: %v", n.Tags)
		}
		if slot.saves != 1 {
			t.Errorf("expected seed to be persisted once, got %d saves", slot.saves)
		}
	})

	t.Run("Is Idempotent", func(t *testing.T) {
		slot := &memSlot{}
		store := newTestStore(t, slot)
		if _, err := store.CreateNote(context.Background()); err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("second Initialize failed: %v", err)
		}
		if len(store.Notes()) != 2 {
			t.Errorf("second Initialize must be a no-op, got %d notes", len(store.Notes()))
		}
	})

	t.Run("Does Not Reseed A Stored Empty Collection", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)

		if len(store.Notes()) != 0 {
			t.Errorf("bootstrap is one-time only; expected empty collection, got %d notes", len(store.Notes()))
		}
	})

	t.Run("Re-establishes Newest First Order", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		slot := &memSlot{stored: []core.Note{
			{ID: "old", Folder: "Personal", CreatedAt: base, UpdatedAt: base},
			{ID: "new", Folder: "Personal", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
		}}
		store := newTestStore(t, slot)

		notes := store.Notes()
		if notes[0].ID != "new" || notes[1].ID != "old" {
			t.Errorf("expected newest-first order, got %s, %s", notes[0].ID, notes[1].ID)
		}
	})
}

func TestCreateNote(t *testing.T) {
	slot := &memSlot{stored: []core.Note{}}
	store := newTestStore(t, slot)
	ctx := context.Background()

	first, err := store.CreateNote(ctx)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	second, err := store.CreateNote(ctx)
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("ids must be unique and non-empty: %q, %q", first.ID, second.ID)
	}
	if first.Title != "Untitled Note" || first.Folder != "Personal" {
		t.Errorf("unexpected defaults: %q in %q", first.Title, first.Folder)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Errorf("createdAt and updatedAt must match at creation")
	}

	notes := store.Notes()
	if notes[0].ID != second.ID || notes[1].ID != first.ID {
		t.Errorf("second note must appear before the first (newest-first)")
	}

	active, ok := store.ActiveNote()
	if !ok || active.ID != second.ID {
		t.Errorf("creation must set the active note")
	}
	if slot.saves != 2 {
		t.Errorf("each creation must persist, got %d saves", slot.saves)
	}
}

func TestUpdateNote(t *testing.T) {
	t.Run("Replaces Only Supplied Fields", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)
		err := store.UpdateNote(ctx, n.ID, core.Update{Title: core.String("Groceries")})
		if err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}

		got, ok := store.GetNoteByID(n.ID)
		if !ok {
			t.Fatal("note disappeared")
		}
		if got.Title != "Groceries" {
			t.Errorf("title not applied: %q", got.Title)
		}
		if got.Content != n.Content || got.Folder != n.Folder {
			t.Errorf("unsupplied fields must stay unchanged")
		}
		if got.ID != n.ID || !got.CreatedAt.Equal(n.CreatedAt) {
			t.Errorf("id and createdAt are immutable")
		}
		if !got.UpdatedAt.After(n.UpdatedAt) {
			t.Errorf("updatedAt must strictly increase")
		}
	})

	t.Run("Unknown Id Is A Silent No-op", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)
		before := store.Notes()

		if err := store.UpdateNote(ctx, "missing", core.Update{Title: core.String("x")}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		after := store.Notes()
		if len(after) != len(before) || !after[0].UpdatedAt.Equal(before[0].UpdatedAt) {
			t.Errorf("collection must be unchanged")
		}
		_ = n
	})

	t.Run("Drops Duplicate Tags", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)
		err := store.UpdateNote(ctx, n.ID, core.Update{Tags: []string{"food", "Food", "food", "weekly"}})
		if err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}

		got, _ := store.GetNoteByID(n.ID)
		if len(got.Tags) != 3 || got.Tags[0] != "food" || got.Tags[1] != "Food" || got.Tags[2] != "weekly" {
			t.Errorf("tags must be deduplicated case-sensitively in insertion order, got %v", got.Tags)
		}
	})

	t.Run("Empty Folder Falls Back To Default", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)
		if err := store.UpdateNote(ctx, n.ID, core.Update{Folder: core.String("")}); err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}

		got, _ := store.GetNoteByID(n.ID)
		if got.Folder != "Personal" {
			t.Errorf("every note needs a non-empty folder, got %q", got.Folder)
		}
	})

	t.Run("Refreshes The Active Snapshot", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)
		if err := store.UpdateNote(ctx, n.ID, core.Update{Title: core.String("Renamed")}); err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}

		active, ok := store.ActiveNote()
		if !ok || active.Title != "Renamed" {
			t.Errorf("active note must track updates, got %+v", active)
		}
	})
}

func TestDeleteNote(t *testing.T) {
	t.Run("Removes And Clears Active", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)
		if err := store.DeleteNote(ctx, n.ID); err != nil {
			t.Fatalf("DeleteNote failed: %v", err)
		}

		if _, ok := store.GetNoteByID(n.ID); ok {
			t.Error("deleted note must be absent")
		}
		if _, ok := store.ActiveNote(); ok {
			t.Error("deleting the active note must clear the pointer")
		}
		if len(store.Notes()) != 0 {
			t.Errorf("collection size must decrease by one")
		}
	})

	t.Run("Unknown Id Is A No-op", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)
		saves := slot.saves

		if err := store.DeleteNote(ctx, "missing"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(store.Notes()) != 1 {
			t.Error("collection must be unchanged")
		}
		if slot.saves != saves {
			t.Error("a no-op must not persist")
		}
		_ = n
	})

	t.Run("Keeps Active When Another Note Dies", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		first, _ := store.CreateNote(ctx)
		second, _ := store.CreateNote(ctx)

		if err := store.DeleteNote(ctx, first.ID); err != nil {
			t.Fatalf("DeleteNote failed: %v", err)
		}
		active, ok := store.ActiveNote()
		if !ok || active.ID != second.ID {
			t.Error("active pointer must survive deleting a different note")
		}
	})
}

func TestActiveNote(t *testing.T) {
	slot := &memSlot{stored: []core.Note{}}
	store := newTestStore(t, slot)
	ctx := context.Background()

	if ok := store.SetActiveNote("missing"); ok {
		t.Error("unknown id must not become active")
	}

	n, _ := store.CreateNote(ctx)
	store.ClearActiveNote()
	if _, ok := store.ActiveNote(); ok {
		t.Error("ClearActiveNote must drop the pointer")
	}

	if ok := store.SetActiveNote(n.ID); !ok {
		t.Error("known id must become active")
	}
}

func TestFolders(t *testing.T) {
	slot := &memSlot{stored: []core.Note{}}
	store := newTestStore(t, slot)
	ctx := context.Background()

	a, _ := store.CreateNote(ctx)
	b, _ := store.CreateNote(ctx)
	store.UpdateNote(ctx, a.ID, core.Update{Folder: core.String("Work")})

	folders := store.Folders()
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %v", folders)
	}

	// The folder index has no lifecycle of its own: reassigning the
	// last note removes the label.
	store.UpdateNote(ctx, a.ID, core.Update{Folder: core.String("Personal")})
	folders = store.Folders()
	if len(folders) != 1 || folders[0] != "Personal" {
		t.Errorf("expected only Personal, got %v", folders)
	}
	_ = b
}

func TestPersistenceFailure(t *testing.T) {
	slot := &memSlot{stored: []core.Note{}}
	store := newTestStore(t, slot)
	ctx := context.Background()

	n, _ := store.CreateNote(ctx)
	slot.failSave = true

	err := store.UpdateNote(ctx, n.ID, core.Update{Title: core.String("Kept")})
	if !errors.Is(err, core.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}

	// The in-memory mutation survives: durability failed, the edit did not.
	got, _ := store.GetNoteByID(n.ID)
	if got.Title != "Kept" {
		t.Errorf("in-memory collection must stay authoritative, got %q", got.Title)
	}
}

func TestSubscribe(t *testing.T) {
	t.Run("Delivers Matching Events", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := store.Subscribe(ctx, "**")
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}

		n, _ := store.CreateNote(ctx)

		select {
		case e := <-events:
			if e.Type != core.EventCreate || e.ID != n.ID {
				t.Errorf("unexpected event: %+v", e)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	})

	t.Run("Filters By Folder Pattern", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := store.Subscribe(ctx, "Work")
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}

		personal, _ := store.CreateNote(ctx)
		store.UpdateNote(ctx, personal.ID, core.Update{Folder: core.String("Work")})

		// The CREATE in Personal is filtered out; the MODIFY lands in Work.
		select {
		case e := <-events:
			if e.Type != core.EventModify || e.Folder != "Work" {
				t.Errorf("unexpected event: %+v", e)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	})

	t.Run("Rejects Invalid Patterns", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)

		if _, err := store.Subscribe(context.Background(), "[unclosed"); err == nil {
			t.Error("expected an error for a malformed pattern")
		}
	})
}

func TestReload(t *testing.T) {
	t.Run("Replaces Collection And Fixes Active", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		n, _ := store.CreateNote(ctx)

		// Simulate an out-of-band rewrite that dropped the active note.
		slot.stored = []core.Note{}
		if err := store.Reload(ctx); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}

		if len(store.Notes()) != 0 {
			t.Error("collection must follow the slot")
		}
		if _, ok := store.ActiveNote(); ok {
			t.Error("active pointer must not survive its note")
		}
		_ = n
	})

	t.Run("Keeps Memory When Nothing Stored", func(t *testing.T) {
		slot := &memSlot{stored: []core.Note{}}
		store := newTestStore(t, slot)
		ctx := context.Background()

		store.CreateNote(ctx)
		slot.stored = nil // external wipe

		if err := store.Reload(ctx); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}
		if len(store.Notes()) != 1 {
			t.Error("an external wipe must not nuke the session")
		}
	})
}
