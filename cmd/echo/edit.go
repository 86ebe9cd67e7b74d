package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/echo/pkg/autosave"
	"github.com/aretw0/echo/pkg/core"
	"github.com/spf13/cobra"
)

var (
	editTitle    string
	editContent  string
	editFolder   string
	editTags     []string
	editStdin    bool
	editClearTag bool
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update fields of a note",
	Long: `Update the supplied fields of a note; anything not passed stays unchanged.
With --stdin the content is read line by line and written back through the
debounced auto-save path, flushing on EOF.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		store, cfg, err := openStore(true)
		if err != nil {
			fatal("Failed to open vault", err)
		}
		if _, ok := store.GetNoteByID(id); !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
			os.Exit(1)
		}

		ctx := context.Background()

		u := core.Update{}
		if editTitle != "" {
			u.Title = core.String(editTitle)
		}
		if editContent != "" {
			u.Content = core.String(editContent)
		}
		if editFolder != "" {
			u.Folder = core.String(editFolder)
		}
		if len(editTags) > 0 {
			u.Tags = editTags
		}
		if editClearTag {
			u.Tags = []string{}
		}
		if !u.IsZero() {
			warnIfSlotDown(store.UpdateNote(ctx, id, u))
		}

		if editStdin {
			if err := streamContent(ctx, store, cfg, id); err != nil {
				fatal("Failed to read content", err)
			}
		}

		fmt.Printf("Note updated: %s\n", id)
	},
}

// streamContent feeds stdin through the auto-save coordinator: each
// line reschedules the debounced save with the accumulated content, and
// EOF flushes whatever is still pending.
func streamContent(ctx context.Context, store *core.Store, cfg fileConfig, id string) error {
	coordinator := autosave.New(store,
		autosave.WithDelay(cfg.autosaveDelay()),
		autosave.WithLogger(slog.Default()),
	)
	defer coordinator.Close()

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		content := strings.Join(lines, "\n")
		coordinator.ScheduleSave(id, core.Update{Content: core.String(content)})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	warnIfSlotDown(coordinator.Flush(ctx))
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content (markdown)")
	editCmd.Flags().StringVar(&editFolder, "folder", "", "New folder label")
	editCmd.Flags().StringSliceVar(&editTags, "tag", nil, "Replace tags (repeatable)")
	editCmd.Flags().BoolVar(&editClearTag, "clear-tags", false, "Remove all tags")
	editCmd.Flags().BoolVar(&editStdin, "stdin", false, "Read content from stdin through the auto-save path")
}
