package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB_NAME", "")
	t.Setenv("SNAPSHOT_CRON_SCHEDULE", "")

	cfg, err := Load("does-not-exist.env")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.AI.Model != "gemini-2.5-flash-preview-04-17" {
		t.Errorf("model = %q", cfg.AI.Model)
	}
	if cfg.AI.Enabled() {
		t.Error("ai enabled without a key")
	}
	if cfg.MongoDB.DBName != "screenstock" {
		t.Errorf("db name = %q", cfg.MongoDB.DBName)
	}
	if cfg.Snapshot.CronSchedule != "0 20 * * *" {
		t.Errorf("cron schedule = %q", cfg.Snapshot.CronSchedule)
	}
}

func TestLoadWithAIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg, err := Load("does-not-exist.env")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.AI.Enabled() {
		t.Error("ai disabled despite configured key")
	}
	if cfg.AI.Model != "gemini-test" {
		t.Errorf("model override ignored: %q", cfg.AI.Model)
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load("does-not-exist.env"); err == nil {
		t.Fatal("load accepted non-numeric REDIS_DB")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: "8080"},
		AI:       AIConfig{Model: "m"},
		Snapshot: SnapshotConfig{CronSchedule: "0 20 * * *"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg.Server.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing port accepted")
	}

	cfg.Server.Port = "8080"
	cfg.MongoDB = MongoDBConfig{URI: "mongodb://localhost", DBName: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("mongo uri without db name accepted")
	}
}
