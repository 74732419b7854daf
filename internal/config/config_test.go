package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Slack.Channel != defaultChannel {
		t.Fatalf("channel = %q, want %q", cfg.Slack.Channel, defaultChannel)
	}
	if cfg.Dashboard.Addr != ":8090" {
		t.Fatalf("dashboard addr = %q", cfg.Dashboard.Addr)
	}
	if cfg.Backfill.StartDate != "2025-01-01" {
		t.Fatalf("start date = %q", cfg.Backfill.StartDate)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
slack:
  channel: intel-feed
database:
  dsn: postgres://file/db
  timeout: 2s
pipeline:
  summaryLimit: 500
backfill:
  startDate: "2024-06-01"
  messageDelay: 100ms
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "postgres://env/db") // env wins over file
	t.Setenv(botTokenEnv, "xoxb-test")

	cfg := Load()

	if cfg.Slack.Channel != "intel-feed" {
		t.Fatalf("channel = %q", cfg.Slack.Channel)
	}
	if cfg.Database.DSN != "postgres://env/db" {
		t.Fatalf("dsn = %q, want env override", cfg.Database.DSN)
	}
	if cfg.Slack.BotToken != "xoxb-test" {
		t.Fatalf("bot token = %q", cfg.Slack.BotToken)
	}
	if cfg.Pipeline.SummaryLimit != 500 {
		t.Fatalf("summary limit = %d", cfg.Pipeline.SummaryLimit)
	}
	if cfg.Backfill.StartDate != "2024-06-01" {
		t.Fatalf("start date = %q", cfg.Backfill.StartDate)
	}
	if got := cfg.Backfill.MessageDelayDuration(); got != 100*time.Millisecond {
		t.Fatalf("message delay = %v", got)
	}
	// Unset file fields keep defaults.
	if cfg.Dashboard.Addr != ":8090" {
		t.Fatalf("dashboard addr = %q", cfg.Dashboard.Addr)
	}
}

func TestLoadBadConfigFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("slack: ["), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Slack.Channel != defaultChannel {
		t.Fatalf("channel = %q, want default after parse failure", cfg.Slack.Channel)
	}
}

func TestDurationAccessors(t *testing.T) {
	t.Parallel()

	var d DatabaseConfig
	if got := d.StoreTimeout(); got != defaultStoreTimeout {
		t.Fatalf("zero timeout = %v", got)
	}
	d.Timeout = "250ms"
	if got := d.StoreTimeout(); got != 250*time.Millisecond {
		t.Fatalf("timeout = %v", got)
	}
	d.Timeout = "garbage"
	if got := d.StoreTimeout(); got != defaultStoreTimeout {
		t.Fatalf("garbage timeout = %v", got)
	}

	var b BackfillConfig
	if got := b.PageDelayDuration(); got != time.Second {
		t.Fatalf("page delay = %v", got)
	}
	if got := b.MessageDelayDuration(); got != 300*time.Millisecond {
		t.Fatalf("message delay = %v", got)
	}
}
