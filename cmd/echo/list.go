package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/echo/pkg/core"
	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	listFolder string
	listTag    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore(true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		notes := store.FilterNotes("", listFolder)

		if listTag != "" {
			var filtered []core.Note
			for _, n := range notes {
				if n.HasTag(listTag) {
					filtered = append(filtered, n)
				}
			}
			notes = filtered
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, n := range notes {
			tags := ""
			if len(n.Tags) > 0 {
				tags = "  #" + strings.Join(n.Tags, " #")
			}
			fmt.Printf("%s  %s  [%s]%s\n", n.ID, n.Title, n.Folder, tags)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listFolder, "folder", "", "Only notes in this folder")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only notes carrying this tag")
}
