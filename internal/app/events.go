package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/logwatch/internal/output"
	"github.com/blackwell-systems/logwatch/internal/store"
)

var (
	eventsLimit int

	eventsCmd = &cobra.Command{
		Use:   "events",
		Short: "Show journaled watcher events",
		Long: `Show the journal of watcher lifecycle events: files entering and leaving
the watch set, rotations, and detector hits, most recent first.

The journal is written by 'logwatch watch' and 'logwatch usb'.`,
		Example: `  # Last 20 events
  logwatch events

  # Last 100 events
  logwatch events --limit 100`,
		RunE: runEvents,
	}
)

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 20, "maximum number of events to show")
}

func runEvents(cmd *cobra.Command, args []string) error {
	journalPath, err := getDBPath()
	if err != nil {
		return err
	}
	st, err := store.New(journalPath)
	if err != nil {
		return fmt.Errorf("open event journal: %w", err)
	}
	defer st.Close()
	if err := st.CreateSchema(); err != nil {
		return err
	}

	events, err := st.RecentEvents(eventsLimit)
	if err != nil {
		return err
	}
	fmt.Print(output.RenderEventTable(events))
	return nil
}
