package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sitewatch/sitewatch/internal/config"
	"github.com/sitewatch/sitewatch/internal/db"
	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/sitewatch/sitewatch/internal/settings"
)

func TestDBInit_Sqlite(t *testing.T) {
	configPath := writeConfig(t)
	out, err := runCmd(t, "db", "init", "-c", configPath)
	if err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Migrated 5 tables") {
		t.Errorf("output missing migrate line: %s", out)
	}
	if !strings.Contains(out, `Project "Hadar Towers" written`) {
		t.Errorf("output missing project line: %s", out)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(configPath), "sw.db")); err != nil {
		t.Errorf("sqlite file not created next to config: %v", err)
	}
}

func TestDBReset_Aborts(t *testing.T) {
	configPath := initProject(t)
	cmd := newRootCmd()
	buf := new(strings.Builder)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("no\n"))
	cmd.SetArgs([]string{"db", "reset", "-c", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("db reset: %v", err)
	}
	if !strings.Contains(buf.String(), "Aborted.") {
		t.Errorf("expected abort, got: %s", buf.String())
	}
}

func TestDBReset_ClearsReports(t *testing.T) {
	configPath := initProject(t)
	seedReports(t, configPath)

	if out, err := runCmd(t, "db", "reset", "--yes", "-c", configPath); err != nil {
		t.Fatalf("db reset: %v\n%s", err, out)
	}
	out, err := runCmd(t, "progress", "-c", configPath)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !strings.Contains(out, "No reports.") {
		t.Errorf("expected empty project after reset, got: %s", out)
	}
}

func TestImport_SkipsDuplicatesAndCountsFailures(t *testing.T) {
	configPath := initProject(t)
	paths := seedReports(t, configPath)

	bad := filepath.Join(filepath.Dir(configPath), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := runCmd(t, "import", "-c", configPath, paths[0], bad)
	if err == nil {
		t.Fatal("expected error for bad file")
	}
	if !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Errorf("error = %q", err)
	}
	if !strings.Contains(out, "skipped, already ingested") {
		t.Errorf("expected duplicate to be skipped, got: %s", out)
	}
}

func TestImport_ReportsMisses(t *testing.T) {
	configPath := initProject(t)
	path := writeExtraction(t, configPath, report.Extraction{
		ReportDate: "2025-09-01",
		FileName:   "odd",
		Apartments: []report.ApartmentItems{{Number: "5", Items: []report.ExtractedWorkItem{
			row("גגות", "מעקה", "נראה סביר", ""),
		}}},
	})
	out, err := runCmd(t, "import", "-c", configPath, path)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "report #1") {
		t.Errorf("output missing report line: %s", out)
	}
	if !strings.Contains(out, "1 unrecognized status labels, 1 unrecognized categories") {
		t.Errorf("output missing miss warning: %s", out)
	}
}

// engineReport computes the expected report for scope straight from the store.
func engineReport(t *testing.T, configPath string, scope progress.Scope) progress.ScopeReport {
	t.Helper()
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Database.Path = resolvePath(configPath, cfg.Database.Path)
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		t.Fatal(err)
	}
	snaps, err := report.LoadSnapshots(gormDB, scope)
	if err != nil {
		t.Fatal(err)
	}
	return progress.NewEngine(nil).Scope(snaps, scope)
}

func TestProgress_JSONMatchesEngine(t *testing.T) {
	configPath := initProject(t)
	seedReports(t, configPath)

	for _, tc := range []struct {
		args  []string
		scope progress.Scope
	}{
		{nil, progress.Project()},
		{[]string{"-a", "3"}, progress.Apartment("3")},
		{[]string{"-d"}, progress.Development()},
	} {
		args := append([]string{"progress", "--json", "-c", configPath}, tc.args...)
		out, err := runCmd(t, args...)
		if err != nil {
			t.Fatalf("%v: %v\n%s", args, err, out)
		}
		var got progress.ScopeReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("%v: decode: %v\n%s", args, err, out)
		}
		want := engineReport(t, configPath, tc.scope)
		if got.OverallProgress != want.OverallProgress || got.ReportCount != want.ReportCount || got.TotalIssues != want.TotalIssues {
			t.Errorf("%v: got %d%%/%d reports/%d issues, want %d%%/%d/%d", args,
				got.OverallProgress, got.ReportCount, got.TotalIssues,
				want.OverallProgress, want.ReportCount, want.TotalIssues)
		}
	}
}

func TestProgress_Text(t *testing.T) {
	configPath := initProject(t)
	seedReports(t, configPath)

	out, err := runCmd(t, "progress", "--items", "-c", configPath)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	for _, want := range []string{"Hadar Towers (project)", "Reports: 2", "CATEGORY", "ELECTRICAL", "Apartments:", "In progress (1):", "גידור אתר", "Completed ("} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProgress_ScopeErrors(t *testing.T) {
	configPath := initProject(t)
	seedReports(t, configPath)

	if _, err := runCmd(t, "progress", "-c", configPath, "-a", "99"); err == nil || !strings.Contains(err.Error(), "apartment not found") {
		t.Errorf("unknown apartment error = %v", err)
	}
	if _, err := runCmd(t, "progress", "-c", configPath, "-a", "3", "-d"); err == nil {
		t.Error("expected error when --apartment and --development are combined")
	}
}

func TestTimeline_JSON(t *testing.T) {
	configPath := initProject(t)
	seedReports(t, configPath)

	out, err := runCmd(t, "timeline", "--json", "-c", configPath, "-a", "12")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	var res progress.TimelineResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	// Apartment 12 only appears in the first report.
	if len(res.Progress) != 1 || len(res.Defects) != 1 {
		t.Fatalf("points = %d/%d, want 1/1", len(res.Progress), len(res.Defects))
	}
	if res.Defects[0].Total != 1 {
		t.Errorf("defects = %d, want 1", res.Defects[0].Total)
	}

	out, err = runCmd(t, "timeline", "-c", configPath)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if !strings.Contains(out, "2025-09-01") || !strings.Contains(out, "2025-10-01") {
		t.Errorf("text timeline missing dates:\n%s", out)
	}
}

func TestReadiness(t *testing.T) {
	configPath := initProject(t)
	out, err := runCmd(t, "readiness", "-c", configPath)
	if err != nil {
		t.Fatalf("readiness: %v", err)
	}
	if !strings.Contains(out, "No apartments.") {
		t.Errorf("expected empty readiness, got: %s", out)
	}

	seedReports(t, configPath)
	out, err = runCmd(t, "readiness", "-c", configPath)
	if err != nil {
		t.Fatalf("readiness: %v", err)
	}
	if !strings.Contains(out, "APARTMENT") || !strings.Contains(out, "12") {
		t.Errorf("readiness output:\n%s", out)
	}
}

func TestFixPartial(t *testing.T) {
	configPath := initProject(t)
	path := writeExtraction(t, configPath, report.Extraction{
		ReportDate: "2025-09-01",
		FileName:   "partial",
		Apartments: []report.ApartmentItems{{Number: "4", Items: []report.ExtractedWorkItem{
			row("צבע", "צביעת קירות", "בוצע", "בוצע חלקית"),
			row("חשמל", "שקע", "בוצע", ""),
		}}},
	})
	if out, err := runCmd(t, "import", "-c", configPath, path); err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"fix", "partial", "--dry-run"}, "Would demote 1 items."},
		{[]string{"fix", "partial"}, "Demoted 1 items."},
		{[]string{"fix", "partial"}, "Demoted 0 items."},
	}
	for _, s := range steps {
		out, err := runCmd(t, append(s.args, "-c", configPath)...)
		if err != nil {
			t.Fatalf("%v: %v", s.args, err)
		}
		if !strings.Contains(out, s.want) {
			t.Errorf("%v: output missing %q:\n%s", s.args, s.want, out)
		}
	}
}

func TestSettings_ShowAndValidateDefaults(t *testing.T) {
	configPath := writeConfig(t)

	out, err := runCmd(t, "settings", "show", "-c", configPath)
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	for _, want := range []string{"progress-config.json", "ELECTRICAL", "VERIFIED_NO_DEFECTS"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	out, err = runCmd(t, "settings", "validate", "-c", configPath)
	if err != nil {
		t.Fatalf("settings validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "valid") {
		t.Errorf("validate output: %s", out)
	}
}

func TestSettings_SetWeight(t *testing.T) {
	configPath := writeConfig(t)

	out, err := runCmd(t, "settings", "set-weight", "electrical", "30", "-c", configPath)
	if err == nil {
		t.Fatalf("expected weights that do not sum to 100 to be rejected:\n%s", out)
	}
	if !strings.Contains(out, "error:") {
		t.Errorf("expected validation errors to be printed:\n%s", out)
	}

	if out, err := runCmd(t, "settings", "set-weight", "electrical", "30", "--rebalance", "-c", configPath); err != nil {
		t.Fatalf("set-weight --rebalance: %v\n%s", err, out)
	}
	out, err = runCmd(t, "settings", "show", "--json", "-c", configPath)
	if err != nil {
		t.Fatal(err)
	}
	var cfg settings.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if cfg.CategoryWeights[models.CategoryElectrical] != 30 {
		t.Errorf("electrical weight = %g, want 30", cfg.CategoryWeights[models.CategoryElectrical])
	}
	if cfg.UpdatedAt == nil {
		t.Error("UpdatedAt not stamped on save")
	}

	if _, err := runCmd(t, "settings", "set-weight", "roofing", "10", "-c", configPath); err == nil {
		t.Error("expected unknown category to fail")
	}
}

func TestSettings_SetThreshold(t *testing.T) {
	configPath := writeConfig(t)

	if out, err := runCmd(t, "settings", "set-threshold", "handled", "60", "-c", configPath); err != nil {
		t.Fatalf("set-threshold: %v\n%s", err, out)
	}
	out, err := runCmd(t, "settings", "show", "--json", "-c", configPath)
	if err != nil {
		t.Fatal(err)
	}
	var cfg settings.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.ProgressThresholds["HANDLED"] != 60 {
		t.Errorf("HANDLED = %g, want 60", cfg.ProgressThresholds["HANDLED"])
	}

	if _, err := runCmd(t, "settings", "set-threshold", "BOGUS", "1", "-c", configPath); err == nil {
		t.Error("expected unknown threshold to fail")
	}
}

func TestSetWeight_Rebalance(t *testing.T) {
	cfg := settings.Defaults()
	setWeight(&cfg, models.CategoryPlumbing, 40, true)

	var sum float64
	for _, w := range cfg.CategoryWeights {
		sum += w
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("sum = %g, want 100", sum)
	}
	if cfg.CategoryWeights[models.CategoryPlumbing] != 40 {
		t.Errorf("plumbing = %g, want 40", cfg.CategoryWeights[models.CategoryPlumbing])
	}
	if !settings.Validate(cfg).Valid {
		t.Errorf("rebalanced config invalid: %v", settings.Validate(cfg).Errors)
	}
}

func TestDigest_PreviewAndSlackRequired(t *testing.T) {
	configPath := initProject(t)
	seedReports(t, configPath)

	out, err := runCmd(t, "digest", "--preview", "-c", configPath)
	if err != nil {
		t.Fatalf("digest --preview: %v", err)
	}
	if !strings.Contains(out, "Hadar Towers: ") || !strings.Contains(out, "% complete") {
		t.Errorf("preview output:\n%s", out)
	}

	_, err = runCmd(t, "digest", "--once", "-c", configPath)
	if err == nil || !strings.Contains(err.Error(), "slack is not configured") {
		t.Errorf("digest without slack error = %v", err)
	}

	out, err = runCmd(t, "digest", "history", "-c", configPath)
	if err != nil {
		t.Fatalf("digest history: %v", err)
	}
	if !strings.Contains(out, "No digests posted yet.") {
		t.Errorf("history output: %s", out)
	}
}

func TestDashboardCmd_Flags(t *testing.T) {
	out, err := runCmd(t, "dashboard", "--help")
	if err != nil {
		t.Fatalf("dashboard --help: %v", err)
	}
	if !strings.Contains(out, "--port") || !strings.Contains(out, "--config") {
		t.Errorf("help missing flags:\n%s", out)
	}
	if f := newDashboardCmd().Flags().Lookup("port"); f == nil || f.DefValue != "0" {
		t.Errorf("port flag = %+v, want default 0 (from config)", f)
	}
}
