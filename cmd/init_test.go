package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fennwick/envkeep/internal/config"
)

func TestStarterConfigParses(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(starterConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(cfg.Secrets) != 1 {
		t.Fatalf("Expected 1 secret in the starter config, got %d", len(cfg.Secrets))
	}
	def := cfg.Secrets[0]
	if def.Account != "openai-api-key" {
		t.Errorf("Expected account %q, got %q", "openai-api-key", def.Account)
	}
	if def.EnvVar != "OPENAI_API_KEY" {
		t.Errorf("Expected env var %q, got %q", "OPENAI_API_KEY", def.EnvVar)
	}
	if len(cfg.Projects) != 0 {
		t.Errorf("Expected no projects in the starter config, got %d", len(cfg.Projects))
	}
	if cfg.Settings.Service != config.DefaultService {
		t.Errorf("Expected default service %q, got %q", config.DefaultService, cfg.Settings.Service)
	}
}

func TestInitCommandWritesStarterConfig(t *testing.T) {
	defer ResetGlobalState()
	path := filepath.Join(t.TempDir(), "secrets.conf")

	RootCmd.SetArgs([]string{"init", "--config", path})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Secrets) != 1 {
		t.Errorf("Expected 1 secret in the written config, got %d", len(cfg.Secrets))
	}
}

func TestInitCommandRefusesToOverwrite(t *testing.T) {
	defer ResetGlobalState()
	path := filepath.Join(t.TempDir(), "secrets.conf")
	existing := "# my config\n[secrets]\ncustom | CUSTOM_TOKEN\n"
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	RootCmd.SetArgs([]string{"init", "--config", path})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != existing {
		t.Errorf("Expected existing config to be kept, got:\n%s", data)
	}

	RootCmd.SetArgs([]string{"init", "--config", path, "--force"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "openai-api-key") {
		t.Errorf("Expected starter config after --force, got:\n%s", data)
	}
}
