package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/logwatch/internal/tail"
)

var (
	tailLineCount int

	tailCmd = &cobra.Command{
		Use:   "tail <file>",
		Short: "Print the last N lines of a file",
		Long: `Print the last N lines of a file without scanning it from the beginning.

The file is read backward from its end in fixed-size blocks, so tailing a
multi-gigabyte log costs only as much I/O as the lines requested.`,
		Example: `  # Last 10 lines (the default)
  logwatch tail /var/log/syslog

  # Last 50 lines
  logwatch tail -n 50 /var/log/syslog`,
		Args: cobra.ExactArgs(1),
		RunE: runTail,
	}
)

func init() {
	tailCmd.Flags().IntVarP(&tailLineCount, "lines", "n", 10, "number of lines to print")
}

func runTail(cmd *cobra.Command, args []string) error {
	lines, err := tail.Lines(args[0], tailLineCount)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintf(os.Stdout, "%s\n", line)
	}
	return nil
}
