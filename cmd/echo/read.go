package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore(true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, ok := store.GetNoteByID(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", args[0])
			os.Exit(1)
		}

		fmt.Printf("# %s\n", note.Title)
		fmt.Printf("folder: %s\n", note.Folder)
		if len(note.Tags) > 0 {
			fmt.Printf("tags: %s\n", strings.Join(note.Tags, ", "))
		}
		fmt.Printf("updated: %s\n\n", note.UpdatedAt.Format("2006-01-02 15:04"))
		fmt.Println(note.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
