package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/logwatch/internal/config"
	"github.com/blackwell-systems/logwatch/internal/output"
	"github.com/blackwell-systems/logwatch/internal/store"
	"github.com/blackwell-systems/logwatch/internal/watcher"
)

var (
	watchFolder      string
	watchFile        string
	watchExtensions  []string
	watchTailLines   int
	watchInterval    time.Duration
	watchChunkSize   int
	watchConfigFile  string
	watchQuiet       bool
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Follow appended lines in a directory's log files",
		Long: `Poll a directory and stream newly appended lines from its log files.

Rotated files (truncated, renamed, or recreated under the same name) are
detected by file identity, drained to their last byte, and the replacement
is picked up automatically. Files that appear or disappear between ticks
enter and leave the watch set on the next poll.

Watch modes:
  • Foreground (default): stream to the terminal, Ctrl+C to stop
  • Daemon: run in the background with output redirected to a log file
  • Stop: stop a running daemon

Every watch/unwatch transition is journaled; inspect it with
'logwatch events'.`,
		Example: `  # Follow every *.log file in /var/log
  logwatch watch

  # Follow one file, seeded with its last 20 lines
  logwatch watch --file syslog --tail 20

  # Run in the background
  logwatch watch --daemon

  # Stop the background daemon
  logwatch watch --stop`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().StringVar(&watchFolder, "folder", "/var/log", "directory to watch")
	watchCmd.Flags().StringVar(&watchFile, "file", "", "watch only this filename (overrides --ext)")
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", []string{"log"}, "file extensions to watch")
	watchCmd.Flags().IntVar(&watchTailLines, "tail", 0, "deliver the last N historical lines at startup")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", watcher.DefaultInterval, "sleep between polling ticks")
	watchCmd.Flags().IntVar(&watchChunkSize, "chunk", 0, "read chunk size hint in bytes (0 = default)")
	watchCmd.Flags().StringVar(&watchConfigFile, "config", "", "config file (default: $XDG_CONFIG_HOME/logwatch/config.yaml)")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "do not print delivered lines")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.logwatch/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.logwatch/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")

	watchCmd.Flags().MarkHidden("daemon-child")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return err
		}
		watchPIDFile = defaultPID
	}
	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return err
		}
		watchLogFile = defaultLog
	}

	if watchStop {
		return stopWatchDaemon()
	}

	if err := applyWatchConfig(cmd); err != nil {
		return err
	}

	if watchDaemon {
		return startWatchDaemon()
	}

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

	if watchDaemonChild {
		return runWatchDaemonChild(st)
	}
	return runWatchForeground(st)
}

// applyWatchConfig overlays config-file values onto flags the user did not
// set explicitly. Flags always win.
func applyWatchConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(watchConfigFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("folder") && cfg.Folder != "" {
		watchFolder = cfg.Folder
	}
	if !flags.Changed("file") && cfg.File != "" {
		watchFile = cfg.File
	}
	if !flags.Changed("ext") && len(cfg.Extensions) > 0 {
		watchExtensions = cfg.Extensions
	}
	if !flags.Changed("tail") && cfg.TailLines != 0 {
		watchTailLines = cfg.TailLines
	}
	if !flags.Changed("chunk") && cfg.ChunkSize != 0 {
		watchChunkSize = cfg.ChunkSize
	}
	if !flags.Changed("interval") && cfg.Interval != 0 {
		watchInterval = time.Duration(cfg.Interval)
	}
	if !cmd.Root().PersistentFlags().Changed("db") && cfg.Database != "" {
		dbPath = cfg.Database
	}
	return nil
}

// newWatcher builds the watcher for the current flag settings, journaling
// watch-set transitions to st.
func newWatcher(st *store.Store) (*watcher.Watcher, error) {
	onLines := func(path string, lines [][]byte) error {
		if watchQuiet {
			return nil
		}
		for _, line := range lines {
			fmt.Printf("%s: %s\n", path, line)
		}
		return nil
	}

	return watcher.New(watcher.Config{
		Folder:     watchFolder,
		File:       watchFile,
		Extensions: watchExtensions,
		TailLines:  watchTailLines,
		ChunkSize:  watchChunkSize,
		Interval:   watchInterval,
		OnLines:    onLines,
		Notify:     journalingNotify(st),
	})
}

// journalingNotify logs watch-set transitions and records them in the event
// journal. Journal failures are logged, not fatal: losing an audit row must
// not stop the stream.
func journalingNotify(st *store.Store) watcher.NotifyFunc {
	return func(tr watcher.Transition, path string) {
		log.Info(tr.String(), "path", path)

		evt := &store.Event{Path: path}
		switch tr {
		case watcher.TransitionWatch:
			evt.Type = store.EventWatch
		case watcher.TransitionUnwatch:
			evt.Type = store.EventUnwatch
		case watcher.TransitionRotate:
			evt.Type = store.EventRotate
		default:
			return
		}
		if err := st.InsertEvent(evt); err != nil {
			log.Error("journal event", "err", err)
		}
	}
}

func stopWatchDaemon() error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return err
	}
	if !running {
		fmt.Println("Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon...")
	spinner.Start()
	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithMessage("✓ Daemon stopped")
	return nil
}

func startWatchDaemon() error {
	childArgs := []string{
		"watch", "--daemon-child",
		"--folder", watchFolder,
		"--interval", watchInterval.String(),
		"--tail", strconv.Itoa(watchTailLines),
		"--pid-file", watchPIDFile,
		"--log-file", watchLogFile,
	}
	if watchFile != "" {
		childArgs = append(childArgs, "--file", watchFile)
	} else {
		childArgs = append(childArgs, "--ext", strings.Join(watchExtensions, ","))
	}
	if watchChunkSize > 0 {
		childArgs = append(childArgs, "--chunk", strconv.Itoa(watchChunkSize))
	}
	if dbPath != "" {
		childArgs = append(childArgs, "--db", dbPath)
	}

	spinner := output.NewSpinner("Starting daemon...")
	spinner.Start()
	if err := watcher.StartDaemon(watchPIDFile, watchLogFile, childArgs); err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithMessage("✓ Daemon started")

	fmt.Printf("\nWatching %s in the background\n", watchFolder)
	fmt.Printf("  PID file: %s\n", watchPIDFile)
	fmt.Printf("  Log file: %s\n", watchLogFile)
	fmt.Printf("\nTo stop: logwatch watch --stop\n")
	return nil
}

// runWatchDaemonChild is the daemon child: same loop as the foreground mode,
// but stdout/stderr already point at the daemon log file and the PID file is
// cleaned up on the way out.
func runWatchDaemonChild(st *store.Store) error {
	defer watcher.RemovePIDFile(watchPIDFile)

	w, err := newWatcher(st)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("received shutdown signal, stopping")
		return nil
	}
	return err
}

func runWatchForeground(st *store.Store) error {
	spinner := output.NewSpinner("Opening watches...")
	spinner.Start()
	w, err := newWatcher(st)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithMessage(fmt.Sprintf("✓ Watching %d file(s) in %s", len(w.WatchedPaths()), watchFolder))

	fmt.Println("Press Ctrl+C to stop.")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nStopped.")
		return nil
	}
	return err
}
