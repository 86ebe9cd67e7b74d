// Package echo is the Composition Root for the Echo note store.
//
// It connects the core domain logic (the note Store) with the
// infrastructure adapters (the durable slot) using the Hexagonal
// Architecture pattern.
//
// Philosophy:
//
// Echo owns the canonical collection of notes for a personal
// note-taking application: create, edit, tag, file into folders,
// search, delete. The store is single-writer and single-process,
// backed by a durable local slot holding whole-collection snapshots.
// Every mutation is written through before the operation returns.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Whole-Collection Snapshots**: Atomic JSON writes to one well-known file.
//   - **Debounced Auto-save**: The autosave package collapses keystroke
//     bursts into a single store update after a quiet period.
//   - **Derived Folder Index**: Folders are recomputed from the collection,
//     never stored.
//   - **Change Events**: Subscribers receive CREATE/MODIFY/DELETE/RELOAD
//     events filtered by folder glob.
//   - **Extensible**: Other storage backends plug in via core.Slot.
//
// Usage:
//
//	// Open (or bootstrap) a vault
//	store, err := echo.New("./vault",
//		echo.WithLogger(logger),
//	)
//
//	// Create and edit a note
//	note, _ := store.CreateNote(ctx)
//	err = store.UpdateNote(ctx, note.ID, echo.Update{Title: echo.String("Groceries")})
package echo
