package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/store"
)

func TestStatusReportsPresenceWithMaskedPreview(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir, nil)

	st := store.NewMemory()
	st.Seed(map[string]string{
		"openai": "sk-test-abc123", // long enough to keep edges
		"github": "short",          // fully masked
	})

	report, err := Status(ctx, cfg, st)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if report.Present != 2 || report.Missing != 1 {
		t.Errorf("Expected 2 present / 1 missing, got %d / %d", report.Present, report.Missing)
	}

	byVar := make(map[string]SecretStatus)
	for _, s := range report.Secrets {
		byVar[s.EnvVar] = s
	}

	openai := byVar["OPENAI_API_KEY"]
	if !openai.Present {
		t.Error("Expected OPENAI_API_KEY present")
	}
	if openai.Preview != "sk****23" {
		t.Errorf("Unexpected preview %q", openai.Preview)
	}
	if strings.Contains(openai.Preview, "sk-test-abc123") {
		t.Error("Preview leaked the raw value")
	}

	github := byVar["GITHUB_TOKEN"]
	if github.Preview != "****" {
		t.Errorf("Short value should be fully masked, got %q", github.Preview)
	}

	database := byVar["DATABASE_URL"]
	if database.Present || database.Preview != "" {
		t.Errorf("Absent secret should have no preview, got %+v", database)
	}
}

func TestStatusTreatsEmptyStoredValueAsMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir, nil)

	st := store.NewMemory()
	st.Seed(map[string]string{"openai": ""})

	report, err := Status(ctx, cfg, st)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if report.Present != 0 || report.Missing != 3 {
		t.Errorf("Expected 0 present / 3 missing, got %d / %d", report.Present, report.Missing)
	}
}

func TestStatusReportsProjectDirectories(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	existing := filepath.Join(dir, "svc")
	if err := os.Mkdir(existing, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	cfg := testConfig(t, dir, []config.ProjectMapping{
		{Path: existing, Vars: []string{"OPENAI_API_KEY", "NOT_DEFINED"}},
		{Path: filepath.Join(dir, "gone"), Vars: []string{"GITHUB_TOKEN"}},
	})

	report, err := Status(ctx, cfg, store.NewMemory())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if len(report.Projects) != 2 {
		t.Fatalf("Expected 2 project statuses, got %d", len(report.Projects))
	}
	first := report.Projects[0]
	if !first.Exists || first.Wanted != 2 || first.Defined != 1 {
		t.Errorf("Unexpected first project status: %+v", first)
	}
	if report.Projects[1].Exists {
		t.Errorf("Missing directory reported as existing: %+v", report.Projects[1])
	}
}

func TestStatusWritesNothing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir, nil)

	if _, err := Status(ctx, cfg, seededStore()); err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	for _, path := range []string{cfg.Settings.EnvFile, cfg.Settings.LogFile} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Status created %s", path)
		}
	}
}

func TestMaskPreview(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "****"},
		{"abc", "****"},
		{"seven77", "****"},
		{"eight888", "ei****88"},
		{"sk-live-abcdef123456", "sk****56"},
		{"пароль00", "па****00"},
	}
	for _, tt := range tests {
		if got := maskPreview(tt.value); got != tt.want {
			t.Errorf("maskPreview(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
