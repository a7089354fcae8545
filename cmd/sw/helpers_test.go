package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/sitewatch/sitewatch/internal/report"
)

func init() {
	color.NoColor = true
}

// runCmd executes the root command with args and returns its combined output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeConfig writes a sitewatch.yaml backed by a sqlite file in a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sitewatch.yaml")
	content := `project: Hadar Towers
address: 12 Herzl St
database:
  driver: sqlite
  path: sw.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// initProject writes a config and runs db init against it.
func initProject(t *testing.T) string {
	t.Helper()
	configPath := writeConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", configPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}
	return configPath
}

// writeExtraction saves ex as JSON next to the config file.
func writeExtraction(t *testing.T, configPath string, ex report.Extraction) string {
	t.Helper()
	data, err := json.Marshal(ex)
	if err != nil {
		t.Fatalf("marshal extraction: %v", err)
	}
	path := filepath.Join(filepath.Dir(configPath), ex.FileName+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write extraction: %v", err)
	}
	return path
}

func row(category, description, status, notes string) report.ExtractedWorkItem {
	return report.ExtractedWorkItem{Category: category, Description: description, Status: status, Notes: notes}
}

// seedReports imports two reports: apartment 3 moves from in progress to
// done, apartment 12 carries a plumbing defect.
func seedReports(t *testing.T, configPath string) []string {
	t.Helper()
	first := writeExtraction(t, configPath, report.Extraction{
		ReportDate: "2025-09-01",
		FileName:   "report-2025-09-01",
		Inspector:  "D. Levi",
		Apartments: []report.ApartmentItems{
			{Number: "3", Items: []report.ExtractedWorkItem{
				row("חשמל", "שקע", "בביצוע", ""),
				row("אינסטלציה", "ברז", "בוצע - תקין", ""),
			}},
			{Number: "12", Items: []report.ExtractedWorkItem{
				row("אינסטלציה", "ניקוז מקלחת", "ליקוי", "נזילה"),
			}},
		},
	})
	second := writeExtraction(t, configPath, report.Extraction{
		ReportDate: "2025-10-01",
		FileName:   "report-2025-10-01",
		Inspector:  "D. Levi",
		Apartments: []report.ApartmentItems{
			{Number: "3", Items: []report.ExtractedWorkItem{
				row("חשמל", "שקע", "בוצע - תקין", ""),
			}},
		},
		Development: []report.ExtractedWorkItem{
			row("כללי", "גידור אתר", "בביצוע", ""),
		},
	})
	paths := []string{first, second}
	args := append([]string{"import", "-c", configPath}, paths...)
	if out, err := runCmd(t, args...); err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	return paths
}
