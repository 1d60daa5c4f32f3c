package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"go.klb.dev/clyp/internal/clip"
)

func newTestClipboard(t *testing.T, initial string) *clip.Clipboard {
	t.Helper()
	cb := clip.New(clip.NewSim(), clip.RetryConfig{})
	if initial != "" {
		if err := cb.CopyText(context.Background(), []byte(initial)); err != nil {
			t.Fatalf("seed clipboard: %v", err)
		}
	}
	return cb
}

func TestRunClyp(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		args      []string
		stdin     string
		inTTY     bool
		outTTY    bool
		wantClip  string
		wantOut   string
		wantPrint bool
	}{
		{
			name:     "args to terminal",
			initial:  "old",
			args:     []string{"hello", "world"},
			inTTY:    true,
			outTTY:   true,
			wantClip: "hello world",
		},
		{
			name:      "args to pipe echo the clipboard",
			args:      []string{"hello", "world"},
			inTTY:     true,
			wantClip:  "hello world",
			wantOut:   "hello world",
			wantPrint: true,
		},
		{
			name:     "args win over piped stdin",
			args:     []string{"from", "args"},
			stdin:    "from stdin",
			outTTY:   true,
			wantClip: "from args",
		},
		{
			name:     "piped stdin",
			stdin:    "line one\nline two\n",
			outTTY:   true,
			wantClip: "line one\nline two\n",
		},
		{
			name:      "piped stdin to pipe",
			stdin:     "through",
			wantClip:  "through",
			wantOut:   "through",
			wantPrint: true,
		},
		{
			name:      "empty piped stdin copies an empty string",
			initial:   "old",
			stdin:     "",
			wantClip:  "",
			wantOut:   "",
			wantPrint: true,
		},
		{
			name:      "terminal stdin pastes",
			initial:   "kept",
			stdin:     "never read",
			inTTY:     true,
			outTTY:    true,
			wantClip:  "kept",
			wantOut:   "kept",
			wantPrint: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := newTestClipboard(t, tt.initial)
			var out bytes.Buffer
			s := streams{
				in:     strings.NewReader(tt.stdin),
				out:    &out,
				inTTY:  tt.inTTY,
				outTTY: tt.outTTY,
			}

			if err := runClyp(context.Background(), cb, tt.args, s); err != nil {
				t.Fatalf("runClyp: %v", err)
			}

			got, err := cb.PasteText(context.Background())
			if err != nil {
				t.Fatalf("PasteText: %v", err)
			}
			if string(got) != tt.wantClip {
				t.Errorf("clipboard = %q, want %q", got, tt.wantClip)
			}
			if !tt.wantPrint && out.Len() > 0 {
				t.Errorf("stdout = %q, want nothing", out.String())
			}
			if out.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestRunClypEmptyClipboard(t *testing.T) {
	cb := newTestClipboard(t, "")
	var out bytes.Buffer

	err := runClyp(context.Background(), cb, nil, streams{in: strings.NewReader(""), out: &out, inTTY: true, outTTY: true})
	if !errors.Is(err, clip.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", out.String())
	}
}

type failingClipboard struct{ err error }

func (f failingClipboard) CopyText(context.Context, []byte) error    { return f.err }
func (f failingClipboard) PasteText(context.Context) ([]byte, error) { return nil, f.err }

func TestRunClypCopyFailure(t *testing.T) {
	var out bytes.Buffer
	cb := failingClipboard{err: clip.ErrBusy}

	err := runClyp(context.Background(), cb, []string{"x"}, streams{out: &out})
	if !errors.Is(err, clip.ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	if !strings.HasPrefix(err.Error(), "copy: ") {
		t.Errorf("err = %q, want copy: prefix", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want nothing after failed copy", out.String())
	}
}

func TestReadPayloadTerminal(t *testing.T) {
	s := streams{in: strings.NewReader("typed"), inTTY: true}

	if _, ok, err := readPayload(nil, s, false); err != nil || ok {
		t.Errorf("readPayload(readTTY=false) ok=%v err=%v, want no payload", ok, err)
	}
	payload, ok, err := readPayload(nil, s, true)
	if err != nil || !ok || string(payload) != "typed" {
		t.Errorf("readPayload(readTTY=true) = %q, %v, %v", payload, ok, err)
	}
}

func TestRetryConfig(t *testing.T) {
	tests := []struct {
		name        string
		retries     int
		backoff     time.Duration
		wantRetries int
		wantDelay   time.Duration
	}{
		{name: "defaults", retries: 3, backoff: 25 * time.Millisecond, wantRetries: 3, wantDelay: 25 * time.Millisecond},
		{name: "fail fast", retries: 0, backoff: 25 * time.Millisecond, wantRetries: 0, wantDelay: 25 * time.Millisecond},
		{name: "negative retries", retries: -2, backoff: 0, wantRetries: 0, wantDelay: clip.DefaultRetryConfig().InitialDelay},
		{name: "long backoff", retries: 1, backoff: time.Second, wantRetries: 1, wantDelay: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("open-retries", tt.retries)
			v.Set("open-backoff", tt.backoff)

			cfg := retryConfig(v)
			if cfg.MaxRetries != tt.wantRetries {
				t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, tt.wantRetries)
			}
			if cfg.InitialDelay != tt.wantDelay {
				t.Errorf("InitialDelay = %v, want %v", cfg.InitialDelay, tt.wantDelay)
			}
			if cfg.MaxDelay < cfg.InitialDelay {
				t.Errorf("MaxDelay %v < InitialDelay %v", cfg.MaxDelay, cfg.InitialDelay)
			}
		})
	}
}

func TestBindViperEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CLYP_OPEN_RETRIES", "7")
	t.Setenv("CLYP_LOG_LEVEL", "error")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	v := viper.New()
	cmd := newCopyCmd()
	if err := bindViper(cmd, v); err != nil {
		t.Fatalf("bindViper: %v", err)
	}
	if got := v.GetInt("open-retries"); got != 7 {
		t.Errorf("open-retries = %d, want 7 from env", got)
	}
	if got := v.GetString("log-level"); got != "error" {
		t.Errorf("log-level = %q, want error from env", got)
	}
}
