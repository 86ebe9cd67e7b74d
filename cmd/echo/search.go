package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchFolder string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes by title, content, and tags",
	Long: `Search performs a case-insensitive substring match over each note's
title, content, and tags. The query is literal text, never a pattern.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore(true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		notes := store.FilterNotes(args[0], searchFolder)
		if len(notes) == 0 {
			fmt.Println("No notes matched.")
			return
		}
		for _, n := range notes {
			fmt.Printf("%s  %s  [%s]\n", n.ID, n.Title, n.Folder)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchFolder, "folder", "", "Scope the search to one folder")
}
