// clyp: copy to and paste from the Windows clipboard.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/clyp/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := newRootCmd()
	root.AddCommand(
		newCopyCmd(),
		newPasteCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clyp %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
// A CLI run stays quiet unless asked: the default level is warn.
func resolveLogging(formatStr, levelStr string) {
	logging.Setup(os.Stderr, logging.ParseFormat(formatStr), logging.ParseLevel(levelStr, slog.LevelWarn))
}
