package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the clipboard text to stdout (like pbpaste)",
		Long: `Writes the clipboard's text to stdout exactly as stored, without adding a
trailing newline. Fails if the clipboard holds no text.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeClipboard(cmd.Context(), newClipboard(v), os.Stdout)
		},
	}
	addCommonFlags(cmd)

	return cmd
}
