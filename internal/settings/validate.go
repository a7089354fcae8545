package settings

import (
	"fmt"
	"math"
	"sort"

	"github.com/sitewatch/sitewatch/internal/models"
)

// weightTolerance is the allowed drift from a weight total of exactly 100.
const weightTolerance = 0.01

// ValidationResult reports blocking errors and advisory warnings.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// orderingChains are threshold sequences expected to be strictly decreasing.
var orderingChains = [][]string{
	{VerifiedNoDefects, CompletedOKLater, CompletedOKFirst},
	{Handled, DefectWorkDone, InProgress, Pending, NotStarted},
}

// Validate checks cfg. Errors block a save; warnings only inform.
func Validate(cfg Config) ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}}
	errorf := func(format string, args ...interface{}) {
		res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
	}
	warnf := func(format string, args ...interface{}) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
	}

	var total float64
	for _, cat := range sortedCategories(cfg.CategoryWeights) {
		w := cfg.CategoryWeights[cat]
		total += w
		switch {
		case w < 0:
			errorf("categoryWeights.%s must not be negative (got %g)", cat, w)
		case w == 0:
			warnf("categoryWeights.%s is zero; the category will not affect progress", cat)
		}
		if !cat.Valid() {
			warnf("categoryWeights.%s is not a known category", cat)
		}
	}
	if math.Abs(total-100) > weightTolerance {
		errorf("categoryWeights must sum to 100 (got %g)", total)
	}

	for _, name := range ThresholdNames {
		if _, ok := cfg.ProgressThresholds[name]; !ok {
			errorf("progressThresholds.%s is required", name)
		}
	}
	for _, name := range sortedKeys(cfg.ProgressThresholds) {
		v := cfg.ProgressThresholds[name]
		if v < 0 || v > 100 {
			errorf("progressThresholds.%s must be between 0 and 100 (got %g)", name, v)
		}
	}

	if cfg.BaselineProgress < 0 || cfg.BaselineProgress > 100 {
		errorf("baselineProgress must be between 0 and 100 (got %g)", cfg.BaselineProgress)
	}
	if cfg.MaxProgress < 0 || cfg.MaxProgress > 100 {
		errorf("maxProgress must be between 0 and 100 (got %g)", cfg.MaxProgress)
	}
	if cfg.BaselineProgress >= cfg.MaxProgress {
		errorf("baselineProgress (%g) must be less than maxProgress (%g)", cfg.BaselineProgress, cfg.MaxProgress)
	}
	if cfg.DefaultCategoryWeight < 0 {
		errorf("defaultCategoryWeight must not be negative (got %g)", cfg.DefaultCategoryWeight)
	}
	if cfg.DefectPenalty < 0 {
		errorf("defectPenalty must not be negative (got %g)", cfg.DefectPenalty)
	}

	for _, chain := range orderingChains {
		for i := 0; i+1 < len(chain); i++ {
			hi, okHi := cfg.ProgressThresholds[chain[i]]
			lo, okLo := cfg.ProgressThresholds[chain[i+1]]
			if okHi && okLo && hi <= lo {
				warnf("progressThresholds.%s (%g) should be greater than %s (%g)", chain[i], hi, chain[i+1], lo)
			}
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

func sortedCategories(m map[models.Category]float64) []models.Category {
	out := make([]models.Category, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
