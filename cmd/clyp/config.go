package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clyp/internal/clip"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLYP_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLYP_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clyp")
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "clyp"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clyp"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLYP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	setupLogging(v)
	return nil
}

// addCommonFlags adds the config, logging and clipboard flags shared by all
// clipboard commands.
func addCommonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "path to config file (overrides auto-discovery)")
	f.String("log-format", "auto", "log format: auto|text|json")
	f.String("log-level", "", "log level: debug|info|warn|error (default: warn)")

	retry := clip.DefaultRetryConfig()
	f.Int("open-retries", retry.MaxRetries, "times to retry opening a busy clipboard (0 = fail fast)")
	f.Duration("open-backoff", retry.InitialDelay, "initial delay between open retries, doubled each attempt")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	resolveLogging(v.GetString("log-format"), v.GetString("log-level"))
}

// retryConfig builds the clipboard open retry policy from viper.
func retryConfig(v *viper.Viper) clip.RetryConfig {
	cfg := clip.DefaultRetryConfig()
	cfg.MaxRetries = max(v.GetInt("open-retries"), 0)
	if d := v.GetDuration("open-backoff"); d > 0 {
		cfg.InitialDelay = d
		cfg.MaxDelay = max(cfg.MaxDelay, d)
	}
	return cfg
}

// newClipboard returns the system clipboard configured from viper.
func newClipboard(v *viper.Viper) *clip.Clipboard {
	return clip.New(clip.System(), retryConfig(v))
}

