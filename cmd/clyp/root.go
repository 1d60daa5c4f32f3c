package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clyp/internal/logging"
)

// textClipboard is the part of *clip.Clipboard the commands use.
type textClipboard interface {
	CopyText(ctx context.Context, payload []byte) error
	PasteText(ctx context.Context) ([]byte, error)
}

// streams are the process's standard streams plus whether each is a terminal.
type streams struct {
	in     io.Reader
	out    io.Writer
	inTTY  bool
	outTTY bool
}

func stdio() streams {
	return streams{
		in:     os.Stdin,
		out:    os.Stdout,
		inTTY:  logging.IsTTY(os.Stdin),
		outTTY: logging.IsTTY(os.Stdout),
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "clyp [text...]",
		Short: "Copy to and paste from the Windows clipboard",
		Long: `clyp copies its arguments (joined with single spaces) or piped stdin to the
clipboard, and prints the clipboard when there was nothing to copy or when
stdout is redirected:

  clyp hello world        copy "hello world"
  git rev-parse HEAD | clyp
  clyp > notes.txt        paste into a file
  clyp | sort | clyp      paste, transform, copy back

Use "clyp -- copy" to copy a word that is also a subcommand name.

Config file search order (first found wins):
  <user config dir>/clyp/clyp.toml
  $HOME/.config/clyp/clyp.toml
  path supplied via --config

All flags can be set via CLYP_<FLAG> env vars or config-file keys.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PreRunE:      func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClyp(cmd.Context(), newClipboard(v), args, stdio())
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	addCommonFlags(cmd)

	return cmd
}

// runClyp copies args or piped stdin, then prints the clipboard unless a
// copy happened and stdout is a terminal.
func runClyp(ctx context.Context, cb textClipboard, args []string, s streams) error {
	payload, ok, err := readPayload(args, s, false)
	if err != nil {
		return err
	}
	if ok {
		if err := cb.CopyText(ctx, payload); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		if s.outTTY {
			return nil
		}
	}
	return writeClipboard(ctx, cb, s.out)
}

// readPayload returns the text to copy: args joined with single spaces, else
// all of stdin. A terminal stdin is only read when readTTY is set; otherwise
// ok is false and nothing is copied.
func readPayload(args []string, s streams, readTTY bool) (payload []byte, ok bool, err error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), true, nil
	}
	if s.inTTY && !readTTY {
		return nil, false, nil
	}
	data, err := io.ReadAll(s.in)
	if err != nil {
		return nil, false, fmt.Errorf("read stdin: %w", err)
	}
	return data, true, nil
}

func writeClipboard(ctx context.Context, cb textClipboard, w io.Writer) error {
	data, err := cb.PasteText(ctx)
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	_, err = w.Write(data)
	return err
}
