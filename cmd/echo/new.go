package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/echo/pkg/core"
	"github.com/spf13/cobra"
)

var (
	newTitle   string
	newContent string
	newFolder  string
	newTags    []string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long:  `Create a new note. Without flags the note gets default fields ("Untitled Note" in the default folder).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore(false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx := context.Background()
		note, err := store.CreateNote(ctx)
		warnIfSlotDown(err)

		u := core.Update{}
		if newTitle != "" {
			u.Title = core.String(newTitle)
		}
		if newContent != "" {
			u.Content = core.String(newContent)
		}
		if newFolder != "" {
			u.Folder = core.String(newFolder)
		}
		if len(newTags) > 0 {
			u.Tags = newTags
		}
		if !u.IsZero() {
			warnIfSlotDown(store.UpdateNote(ctx, note.ID, u))
		}

		created, _ := store.GetNoteByID(note.ID)
		fmt.Printf("%s  %s  [%s]\n", created.ID, created.Title, created.Folder)
	},
}

// warnIfSlotDown surfaces a persistence failure as a transient notice.
// The mutation itself succeeded in memory; losing durability is not a
// reason to abort the command.
func warnIfSlotDown(err error) {
	if err != nil && errors.Is(err, core.ErrSlotUnavailable) {
		fmt.Println("Warning: the change could not be persisted; it is kept for this session only.")
	} else if err != nil {
		fatal("Unexpected store error", err)
	}
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newTitle, "title", "", "Note title")
	newCmd.Flags().StringVar(&newContent, "content", "", "Note content (markdown)")
	newCmd.Flags().StringVar(&newFolder, "folder", "", "Folder label")
	newCmd.Flags().StringSliceVar(&newTags, "tag", nil, "Tag (repeatable)")
}
