package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/aretw0/echo/pkg/assist"
	"github.com/aretw0/echo/pkg/core"
	"github.com/spf13/cobra"
)

var (
	assistID     string
	assistAppend bool
	assistDelay  time.Duration
)

var assistCmd = &cobra.Command{
	Use:   "assist [instruction]",
	Short: "Run the simulated AI assistant against a note",
	Long: `Assist rewrites or extends note text with the simulated AI generator.
Built-in instructions: summarize, continue, improve. Anything else is
treated as a free-form prompt. With --append the produced text is added
to the end of the note's content.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore(true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, ok := store.GetNoteByID(assistID)
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", assistID)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		generator := assist.New(
			assist.WithDelay(assistDelay),
			assist.WithLogger(slog.Default()),
		)

		produced, err := generator.Generate(ctx, args[0], note.Content)
		if err != nil {
			fatal("Generation failed", err)
		}

		if assistAppend {
			content := note.Content
			if content != "" {
				content += "\n\n"
			}
			content += produced
			warnIfSlotDown(store.UpdateNote(ctx, note.ID, core.Update{Content: core.String(content)}))
			fmt.Printf("Note updated: %s\n", note.ID)
			return
		}

		fmt.Println(produced)
	},
}

func init() {
	rootCmd.AddCommand(assistCmd)
	assistCmd.Flags().StringVar(&assistID, "id", "", "Note to work on")
	assistCmd.Flags().BoolVar(&assistAppend, "append", false, "Append the produced text to the note")
	assistCmd.Flags().DurationVar(&assistDelay, "delay", assist.DefaultDelay, "Simulated generation latency")
	assistCmd.MarkFlagRequired("id")
}
