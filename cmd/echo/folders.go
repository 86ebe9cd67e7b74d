package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the folders in use",
	Long:  `Folders are derived from the collection: a label exists only while at least one note carries it.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore(true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		for _, f := range store.Folders() {
			count := len(store.FilterNotes("", f))
			fmt.Printf("%s (%d)\n", f, count)
		}
	},
}

func init() {
	rootCmd.AddCommand(foldersCmd)
}
