package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "sw dev") {
		t.Errorf("expected output to contain 'sw dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	for _, want := range []string{"sw 1.0.0", "commit: abc123", "built: 2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestRootCmdHelp(t *testing.T) {
	out, err := runCmd(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, sub := range []string{"import", "progress", "timeline", "readiness", "settings", "fix", "dashboard", "digest", "db"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q, got: %s", sub, out)
		}
	}
}

func TestResolvePath(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "var", "data", "sw.db")
	tests := []struct {
		config, p, want string
	}{
		{filepath.Join("conf", "sitewatch.yaml"), "sw.db", filepath.Join("conf", "sw.db")},
		{"sitewatch.yaml", "sw.db", "sw.db"},
		{"conf/sitewatch.yaml", abs, abs},
		{"conf/sitewatch.yaml", ":memory:", ":memory:"},
		{"conf/sitewatch.yaml", "", ""},
	}
	for _, tt := range tests {
		if got := resolvePath(tt.config, tt.p); got != tt.want {
			t.Errorf("resolvePath(%q, %q) = %q, want %q", tt.config, tt.p, got, tt.want)
		}
	}
}

func TestMissingConfig(t *testing.T) {
	for _, args := range [][]string{
		{"progress"},
		{"timeline"},
		{"readiness"},
		{"import", "x.json"},
		{"fix", "partial"},
		{"settings", "show"},
		{"db", "init"},
		{"dashboard"},
		{"digest"},
	} {
		args = append(args, "--config", "/nonexistent/sitewatch.yaml")
		_, err := runCmd(t, args...)
		if err == nil {
			t.Errorf("%v: expected error for missing config", args)
			continue
		}
		if !strings.Contains(err.Error(), "load config") {
			t.Errorf("%v: error = %q, want to contain 'load config'", args, err)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p    int
		want string
	}{
		{0, "[....................]"},
		{50, "[##########..........]"},
		{100, "[####################]"},
		{150, "[####################]"},
		{-5, "[....................]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.p); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("שקע בסלון", 20); got != "שקע בסלון" {
		t.Errorf("short string changed: %q", got)
	}
	if got := truncate("abcdefgh", 5); got != "abcd…" {
		t.Errorf("truncate = %q, want %q", got, "abcd…")
	}
}
