package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	lcadapter "github.com/aretw0/echo/pkg/adapters/lifecycle"
	"github.com/aretw0/echo/pkg/core"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print change events as they happen",
	Long: `Watch subscribes to store events (CREATE, MODIFY, DELETE, RELOAD) and
follows out-of-band rewrites of the slot file. --pattern scopes the
subscription to folders matching a glob. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore(true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := store.WatchSlot(ctx); err != nil {
			fatal("Failed to watch slot", err)
		}

		events, err := store.Subscribe(ctx, watchPattern)
		if err != nil {
			fatal("Failed to subscribe", err)
		}

		source := lcadapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		fmt.Println("Watching for changes (Ctrl-C to stop)...")
		for e := range source.Events() {
			ev, ok := e.(core.Event)
			if !ok {
				fmt.Println(e.String())
				continue
			}
			ts := time.Unix(ev.Timestamp, 0).Format("15:04:05")
			if ev.ID == "" {
				fmt.Printf("%s  %s\n", ts, ev.Type)
				continue
			}
			fmt.Printf("%s  %s  %s  [%s]\n", ts, ev.Type, ev.ID, ev.Folder)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "**", "Folder glob to subscribe to")
}
