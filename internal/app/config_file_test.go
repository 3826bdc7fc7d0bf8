package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		BasePath:      "/data/leftoff",
		TargetFileID:  "item!abc",
		ApplicationID: "app-id",
		ClientSecret:  "secret",
		RefreshToken:  "refresh",
		LLMAPIKey:     "sk-test",
	}
}

func TestLoadConfigFile_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `basePath: /srv/leftoff
targetFile: LEFT-OFF.docx
onedrive:
  fileID: item!123
  applicationID: app-from-file
llm:
  base: http://localhost:8080/v1
  model: gpt-4o-mini
guard:
  startHour: 6
  endHour: 9
verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg := Config{ApplicationID: "app-from-flag"}
	ApplyFileConfig(&cfg, fc)

	if cfg.BasePath != "/srv/leftoff" {
		t.Fatalf("basePath: got %q", cfg.BasePath)
	}
	if cfg.TargetFileID != "item!123" {
		t.Fatalf("fileID: got %q", cfg.TargetFileID)
	}
	// Flag value must win over the file.
	if cfg.ApplicationID != "app-from-flag" {
		t.Fatalf("applicationID overridden by file: got %q", cfg.ApplicationID)
	}
	if cfg.LLMBaseURL != "http://localhost:8080/v1" || cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("llm config: got %q / %q", cfg.LLMBaseURL, cfg.LLMModel)
	}
	if cfg.GuardStartHour != 6 || cfg.GuardEndHour != 9 {
		t.Fatalf("guard: got %d..%d", cfg.GuardStartHour, cfg.GuardEndHour)
	}
	if !cfg.Verbose {
		t.Fatal("verbose not applied")
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"basePath":"/tmp/x","llm":{"model":"m"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.BasePath != "/tmp/x" || fc.LLM.Model != "m" {
		t.Fatalf("unexpected file config: %+v", fc)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing base path", func(c *Config) { c.BasePath = "" }, "PATH_LEFT_OFF_SUMMARIZER"},
		{"missing file id", func(c *Config) { c.TargetFileID = "" }, "TARGET_FILE_ID"},
		{"missing app id", func(c *Config) { c.ApplicationID = "" }, "APPLICATION_ID"},
		{"missing secret", func(c *Config) { c.ClientSecret = "" }, "CLIENT_SECRET"},
		{"missing refresh token", func(c *Config) { c.RefreshToken = "" }, "REFRESH_TOKEN"},
		{"missing llm key", func(c *Config) { c.LLMAPIKey = "" }, "KEY_OPENAI"},
		{"bad guard hour", func(c *Config) { c.GuardEndHour = 24 }, "guard"},
	}
	for _, c := range cases {
		cfg := validConfig()
		c.mutate(&cfg)
		err := ValidateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: got %v, want mention of %q", c.name, err, c.want)
		}
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := Config{BasePath: "/data"}
	if got := cfg.docxPath(); got != filepath.Join("/data", "LEFT-OFF.docx") {
		t.Fatalf("docx path: %q", got)
	}
	if got := cfg.activitiesPath(); got != filepath.Join("/data", "last-7-days-activities.md") {
		t.Fatalf("activities path: %q", got)
	}
	if got := cfg.summaryPath(); got != filepath.Join("/data", "last-7-days-activities-summary.md") {
		t.Fatalf("summary path: %q", got)
	}
	if got := cfg.promptPath(); got != filepath.Join("/data", "prompt.md") {
		t.Fatalf("prompt path: %q", got)
	}
	cfg.TargetFileName = "JOURNAL.docx"
	cfg.PromptPath = "/etc/leftoff/prompt.md"
	if got := cfg.docxPath(); got != filepath.Join("/data", "JOURNAL.docx") {
		t.Fatalf("custom docx path: %q", got)
	}
	if got := cfg.promptPath(); got != "/etc/leftoff/prompt.md" {
		t.Fatalf("custom prompt path: %q", got)
	}
}
