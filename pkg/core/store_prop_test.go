package core_test

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/aretw0/echo/pkg/core"
)

func TestCreateNoteIDsUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := core.NewStore(&memSlot{stored: []core.Note{}}, core.StoreConfig{Clock: testClock()})
		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		n := rapid.IntRange(1, 20).Draw(t, "n")
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			note, err := store.CreateNote(context.Background())
			if err != nil {
				t.Fatalf("CreateNote failed: %v", err)
			}
			if seen[note.ID] {
				t.Fatalf("duplicate id %q", note.ID)
			}
			seen[note.ID] = true
		}
	})
}

func TestUpdateNotePreservesIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := core.NewStore(&memSlot{stored: []core.Note{}}, core.StoreConfig{Clock: testClock()})
		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		n, err := store.CreateNote(context.Background())
		if err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}

		u := core.Update{}
		if rapid.Bool().Draw(t, "setTitle") {
			u.Title = core.String(rapid.String().Draw(t, "title"))
		}
		if rapid.Bool().Draw(t, "setContent") {
			u.Content = core.String(rapid.String().Draw(t, "content"))
		}
		if rapid.Bool().Draw(t, "setTags") {
			u.Tags = rapid.SliceOfN(rapid.String(), 0, 5).Draw(t, "tags")
		}
		if rapid.Bool().Draw(t, "setFolder") {
			u.Folder = core.String(rapid.String().Draw(t, "folder"))
		}

		if err := store.UpdateNote(context.Background(), n.ID, u); err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}

		got, ok := store.GetNoteByID(n.ID)
		if !ok {
			t.Fatal("note disappeared after update")
		}
		if got.ID != n.ID {
			t.Fatalf("id changed: %q -> %q", n.ID, got.ID)
		}
		if !got.CreatedAt.Equal(n.CreatedAt) {
			t.Fatalf("createdAt changed: %v -> %v", n.CreatedAt, got.CreatedAt)
		}
		if got.UpdatedAt.Before(got.CreatedAt) {
			t.Fatalf("updatedAt %v precedes createdAt %v", got.UpdatedAt, got.CreatedAt)
		}
		if got.Folder == "" {
			t.Fatal("folder must never be empty")
		}
	})
}

func TestFilterNotesIsASubset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := core.NewStore(&memSlot{stored: []core.Note{}}, core.StoreConfig{Clock: testClock()})
		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		count := rapid.IntRange(0, 10).Draw(t, "count")
		for i := 0; i < count; i++ {
			n, err := store.CreateNote(context.Background())
			if err != nil {
				t.Fatalf("CreateNote failed: %v", err)
			}
			u := core.Update{
				Title:  core.String(rapid.StringMatching(`[a-zA-Z ]{0,20}`).Draw(t, "title")),
				Folder: core.String(rapid.SampledFrom([]string{"Personal", "Work", "Ideas"}).Draw(t, "folder")),
			}
			if err := store.UpdateNote(context.Background(), n.ID, u); err != nil {
				t.Fatalf("UpdateNote failed: %v", err)
			}
		}

		query := rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "query")
		folder := rapid.SampledFrom([]string{"", "Personal", "Work", "Ideas"}).Draw(t, "scope")

		all := store.Notes()
		index := make(map[string]core.Note, len(all))
		for _, n := range all {
			index[n.ID] = n
		}

		got := store.FilterNotes(query, folder)
		if len(got) > len(all) {
			t.Fatalf("filter produced %d notes from %d", len(got), len(all))
		}
		prev := -1
		for _, n := range got {
			orig, ok := index[n.ID]
			if !ok {
				t.Fatalf("filter invented note %q", n.ID)
			}
			if folder != "" && n.Folder != folder {
				t.Fatalf("note %q leaked from folder %q", n.ID, n.Folder)
			}
			// Relative order must match the canonical collection.
			pos := -1
			for i, a := range all {
				if a.ID == n.ID {
					pos = i
					break
				}
			}
			if pos <= prev {
				t.Fatalf("filter reordered results")
			}
			prev = pos
			_ = orig
		}
	})
}
