// Package settings holds the progress-scoring configuration: category
// weights, score thresholds and progress bounds, with validation and a
// file-backed store.
package settings

import (
	"time"

	"github.com/sitewatch/sitewatch/internal/models"
)

// Threshold names.
const (
	VerifiedNoDefects = "VERIFIED_NO_DEFECTS"
	CompletedOKLater  = "COMPLETED_OK_LATER"
	CompletedOKFirst  = "COMPLETED_OK_FIRST"
	Handled           = "HANDLED"
	DefectWorkDone    = "DEFECT_WORK_DONE"
	InProgress        = "IN_PROGRESS"
	Pending           = "PENDING"
	NotStarted        = "NOT_STARTED"
	Unknown           = "UNKNOWN"
	CategoryGraduated = "CATEGORY_GRADUATED"
	ItemFixed         = "ITEM_FIXED"
)

// ThresholdNames lists every threshold a config must define.
var ThresholdNames = []string{
	VerifiedNoDefects,
	CompletedOKLater,
	CompletedOKFirst,
	Handled,
	DefectWorkDone,
	InProgress,
	Pending,
	NotStarted,
	Unknown,
	CategoryGraduated,
	ItemFixed,
}

// Config is the progress configuration record. JSON names match the
// dashboard's config endpoint.
type Config struct {
	CategoryWeights       map[models.Category]float64 `json:"categoryWeights"`
	ProgressThresholds    map[string]float64          `json:"progressThresholds"`
	BaselineProgress      float64                     `json:"baselineProgress"`
	MaxProgress           float64                     `json:"maxProgress"`
	DefaultCategoryWeight float64                     `json:"defaultCategoryWeight"`
	DefectPenalty         float64                     `json:"defectPenalty"`
	UpdatedAt             *time.Time                  `json:"updatedAt,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CategoryWeights: map[models.Category]float64{
			models.CategoryElectrical:    13,
			models.CategoryPlumbing:      13,
			models.CategoryAC:            10,
			models.CategoryFlooring:      12,
			models.CategorySprinklers:    8,
			models.CategoryDrywall:       9,
			models.CategoryWaterproofing: 10,
			models.CategoryPainting:      8,
			models.CategoryKitchen:       10,
			models.CategoryOther:         7,
		},
		ProgressThresholds: map[string]float64{
			VerifiedNoDefects: 90,
			CompletedOKLater:  75,
			CompletedOKFirst:  50,
			Handled:           70,
			DefectWorkDone:    55,
			InProgress:        30,
			Pending:           15,
			NotStarted:        5,
			Unknown:           15,
			CategoryGraduated: 90,
			ItemFixed:         90,
		},
		BaselineProgress:      0,
		MaxProgress:           100,
		DefaultCategoryWeight: 8,
		DefectPenalty:         0,
	}
}

// Threshold returns the named threshold, falling back to the default value
// when the config omits it.
func (c Config) Threshold(name string) float64 {
	if v, ok := c.ProgressThresholds[name]; ok {
		return v
	}
	return Defaults().ProgressThresholds[name]
}

// Weight returns the weight for a category, or DefaultCategoryWeight.
func (c Config) Weight(cat models.Category) float64 {
	if w, ok := c.CategoryWeights[cat]; ok {
		return w
	}
	return c.DefaultCategoryWeight
}

// Clone returns a deep copy so callers can mutate maps freely.
func (c Config) Clone() Config {
	out := c
	out.CategoryWeights = make(map[models.Category]float64, len(c.CategoryWeights))
	for k, v := range c.CategoryWeights {
		out.CategoryWeights[k] = v
	}
	out.ProgressThresholds = make(map[string]float64, len(c.ProgressThresholds))
	for k, v := range c.ProgressThresholds {
		out.ProgressThresholds[k] = v
	}
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
