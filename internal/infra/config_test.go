package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BASE_URL", "")
	t.Setenv("COPY_PROVIDER", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageBaseURL != "http://localhost:8080/static" {
		t.Fatalf("StorageBaseURL = %q", cfg.StorageBaseURL)
	}
	if cfg.CopyProvider != "gemini" {
		t.Fatalf("CopyProvider = %q", cfg.CopyProvider)
	}
	if cfg.SyncWait != 2500*time.Millisecond {
		t.Fatalf("SyncWait = %v", cfg.SyncWait)
	}
	if cfg.StaleRunCutoff != 15*time.Minute {
		t.Fatalf("StaleRunCutoff = %v", cfg.StaleRunCutoff)
	}
}

func TestLoadConfigInheritsPortInStorageBaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("PORT", "1919")
	t.Setenv("STORAGE_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageBaseURL != "http://localhost:1919/static" {
		t.Fatalf("StorageBaseURL = %q", cfg.StorageBaseURL)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected missing DATABASE_URL error")
	}
}

func TestLoadConfigRejectsUnknownCopyProvider(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("COPY_PROVIDER", "openai")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected unknown COPY_PROVIDER error")
	}
}
