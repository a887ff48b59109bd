package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ycode/builder-backend/internal/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := LoadConfig(newTestLogger(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.PublishBatchSize != 200 {
		t.Fatalf("PublishBatchSize = %d, want 200", cfg.PublishBatchSize)
	}
	if !cfg.VerifyVersionHashes {
		t.Fatal("VerifyVersionHashes should default to true")
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, "addr: \":9090\"\npublish_batch_size: 50\nverify_version_hashes: false\n")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig(newTestLogger(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.PublishBatchSize != 50 {
		t.Fatalf("PublishBatchSize = %d, want 50", cfg.PublishBatchSize)
	}
	if cfg.VerifyVersionHashes {
		t.Fatal("file value for verify_version_hashes ignored")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "addr: \":9090\"\npublish_batch_size: 50\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ADDR", ":7070")
	t.Setenv("PUBLISH_BATCH_SIZE", "25")

	cfg, err := LoadConfig(newTestLogger(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("Addr = %q, want env value %q", cfg.Addr, ":7070")
	}
	if cfg.PublishBatchSize != 25 {
		t.Fatalf("PublishBatchSize = %d, want env value 25", cfg.PublishBatchSize)
	}
}
