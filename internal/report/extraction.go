// Package report stores extracted inspection reports and replays them as
// ordered snapshots for the progress engine.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// DateLayout is the wire format of Extraction.ReportDate.
const DateLayout = "2006-01-02"

// Extraction is the structured JSON produced from one inspection report.
type Extraction struct {
	ReportDate  string              `json:"reportDate"`
	FileName    string              `json:"fileName"`
	Inspector   string              `json:"inspector"`
	Apartments  []ApartmentItems    `json:"apartments"`
	Development []ExtractedWorkItem `json:"development"`
}

// ApartmentItems groups the extracted rows of one apartment.
type ApartmentItems struct {
	Number string              `json:"number"`
	Items  []ExtractedWorkItem `json:"items"`
}

// ExtractedWorkItem is one row as written by the inspector, before
// normalization.
type ExtractedWorkItem struct {
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	HasPhoto    bool   `json:"hasPhoto"`
}

// ReadExtraction loads and validates an extraction file.
func ReadExtraction(path string) (*Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: read %s: %w", path, err)
	}
	return ParseExtraction(data)
}

// ParseExtraction unmarshals and validates extraction JSON.
func ParseExtraction(data []byte) (*Extraction, error) {
	var ex Extraction
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("report: parse extraction: %w", err)
	}
	if err := ex.validate(); err != nil {
		return nil, err
	}
	return &ex, nil
}

// Date returns the parsed report date.
func (e *Extraction) Date() (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(e.ReportDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("report: reportDate %q: %w", e.ReportDate, err)
	}
	return d, nil
}

func (e *Extraction) validate() error {
	var errs []string
	if _, err := e.Date(); err != nil {
		errs = append(errs, fmt.Sprintf("reportDate %q is not YYYY-MM-DD", e.ReportDate))
	}
	seen := make(map[string]bool)
	for i, apt := range e.Apartments {
		number := strings.TrimSpace(apt.Number)
		if number == "" {
			errs = append(errs, fmt.Sprintf("apartments[%d].number is required", i))
			continue
		}
		if seen[number] {
			errs = append(errs, fmt.Sprintf("apartments[%d].number %q is duplicated", i, number))
		}
		seen[number] = true
		for j, it := range apt.Items {
			if strings.TrimSpace(it.Description) == "" {
				errs = append(errs, fmt.Sprintf("apartments[%d].items[%d].description is required", i, j))
			}
		}
	}
	for j, it := range e.Development {
		if strings.TrimSpace(it.Description) == "" {
			errs = append(errs, fmt.Sprintf("development[%d].description is required", j))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("report: invalid extraction: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ItemCount returns the number of rows across apartments and development.
func (e *Extraction) ItemCount() int {
	n := len(e.Development)
	for _, apt := range e.Apartments {
		n += len(apt.Items)
	}
	return n
}
