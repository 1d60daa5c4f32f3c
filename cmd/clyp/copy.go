package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy [text...]",
		Short: "Copy arguments or stdin to the clipboard (like pbcopy)",
		Long: `Copies the arguments, joined with single spaces, to the clipboard. Without
arguments stdin is read to EOF and copied, even from a terminal.

Nothing is printed.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			s := stdio()
			payload, _, err := readPayload(args, s, true)
			if err != nil {
				return err
			}
			if err := newClipboard(v).CopyText(cmd.Context(), payload); err != nil {
				return fmt.Errorf("copy: %w", err)
			}
			return nil
		},
	}
	addCommonFlags(cmd)

	return cmd
}
