package progress

import (
	"math"
	"sort"
	"time"

	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/settings"
)

// Bucket groups evaluated items for display.
type Bucket string

const (
	BucketCompleted  Bucket = "completed"
	BucketDefect     Bucket = "defect"
	BucketInProgress Bucket = "in_progress"
)

// ItemProgress is one logical item with its disappearance-aware score.
type ItemProgress struct {
	Apartment       string          `json:"apartment,omitempty"`
	Category        models.Category `json:"category"`
	Description     string          `json:"description"`
	Location        string          `json:"location,omitempty"`
	Status          models.Status   `json:"status"`
	Effective       models.Status   `json:"effectiveStatus"`
	Notes           string          `json:"notes,omitempty"`
	HasPhoto        bool            `json:"hasPhoto"`
	Present         bool            `json:"present"`
	Score           float64         `json:"score"`
	Label           string          `json:"label"`
	Bucket          Bucket          `json:"bucket"`
	HadDefectEver   bool            `json:"hadDefectEver"`
	DefectFirstSeen *time.Time      `json:"defectFirstSeen,omitempty"`
	FirstSeen       time.Time       `json:"firstSeen"`
	LastSeen        time.Time       `json:"lastSeen"`
}

// CategoryProgress is the roll-up of one category within a scope.
type CategoryProgress struct {
	Category      models.Category `json:"category"`
	Progress      int             `json:"progress"`
	Mean          float64         `json:"mean"`
	Weight        float64         `json:"weight"`
	ItemCount     int             `json:"itemCount"`
	TotalItems    int             `json:"totalItems"`
	ActiveIssues  int             `json:"activeIssues"`
	EverDefective int             `json:"everDefective"`
	Graduated     bool            `json:"graduated"`
}

// EvaluateItems scores every item of h in first-appearance order. Items
// absent from the latest snapshot of their apartment (or of development)
// score ITEM_FIXED regardless of their last known status.
func EvaluateItems(h *History, cfg settings.Config) []ItemProgress {
	out := make([]ItemProgress, 0, len(h.Order))
	for _, key := range h.Order {
		item := h.Items[key]
		ip := ItemProgress{
			Apartment:     key.Apartment,
			Category:      key.Category,
			Description:   key.Description,
			Location:      item.Location,
			Status:        item.Status,
			Notes:         item.Notes,
			HasPhoto:      item.HasPhoto,
			Present:       h.Present(key),
			HadDefectEver: item.HadDefectEver,
			FirstSeen:     item.FirstSeenDate,
			LastSeen:      item.LastSeenDate,
		}
		if item.HadDefectEver {
			d := item.DefectFirstSeen
			ip.DefectFirstSeen = &d
		}

		if !ip.Present {
			ip.Score = cfg.Threshold(settings.ItemFixed)
			ip.Label = settings.ItemFixed
			ip.Effective = item.Status
			ip.Bucket = BucketCompleted
		} else {
			sc := Score(item.Status, item.Notes, ScoreContext{FirstTimeSeen: h.FirstTimeSeen(item)}, cfg)
			ip.Score = sc.Value
			ip.Label = sc.Label
			ip.Effective = sc.Effective
			ip.Bucket = bucketFor(sc.Effective)
		}
		out = append(out, ip)
	}
	return out
}

func bucketFor(eff models.Status) Bucket {
	switch {
	case eff.IsPositive():
		return BucketCompleted
	case eff.IsNegative():
		return BucketDefect
	default:
		return BucketInProgress
	}
}

// AggregateCategory returns the unweighted mean of scores, or 0 when empty.
func AggregateCategory(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// AggregateScope rolls category values up into one weighted percentage.
// Only categories in seen take part: those missing from categoryProgress
// count as CATEGORY_GRADUATED, and never-seen categories are left out
// rather than scored as zero. A non-empty result is clamped to the
// configured baseline and maximum.
func AggregateScope(categoryProgress map[models.Category]float64, seen map[models.Category]bool, cfg settings.Config) int {
	var sum, total float64
	for _, cat := range sortedSeen(seen) {
		v, ok := categoryProgress[cat]
		if !ok {
			v = cfg.Threshold(settings.CategoryGraduated)
		}
		w := cfg.Weight(cat)
		sum += v * w
		total += w
	}
	if total == 0 {
		return 0
	}
	overall := math.Round(sum / total)
	overall = math.Max(overall, math.Round(cfg.BaselineProgress))
	overall = math.Min(overall, math.Round(cfg.MaxProgress))
	return int(overall)
}

// Categories builds the per-category breakdown for evaluated items and the
// scope's overall progress.
func Categories(items []ItemProgress, seen map[models.Category]bool, cfg settings.Config) ([]CategoryProgress, int) {
	type acc struct {
		scores        []float64
		present       int
		activeIssues  int
		everDefective int
	}
	byCat := make(map[models.Category]*acc)
	for _, it := range items {
		a, ok := byCat[it.Category]
		if !ok {
			a = &acc{}
			byCat[it.Category] = a
		}
		a.scores = append(a.scores, it.Score)
		if it.Present {
			a.present++
			if it.Effective.IsNegative() {
				a.activeIssues++
			}
		}
		if it.HadDefectEver {
			a.everDefective++
		}
	}

	current := make(map[models.Category]float64)
	var out []CategoryProgress
	for _, cat := range sortedSeen(seen) {
		cp := CategoryProgress{Category: cat, Weight: cfg.Weight(cat)}
		if a, ok := byCat[cat]; ok {
			cp.ItemCount = a.present
			cp.TotalItems = len(a.scores)
			cp.ActiveIssues = a.activeIssues
			cp.EverDefective = a.everDefective
			if a.present > 0 {
				mean := AggregateCategory(a.scores) - cfg.DefectPenalty*float64(a.activeIssues)
				cp.Mean = math.Max(mean, 0)
				current[cat] = cp.Mean
			}
		}
		if cp.ItemCount == 0 {
			cp.Graduated = true
			cp.Mean = cfg.Threshold(settings.CategoryGraduated)
		}
		cp.Progress = int(math.Round(cp.Mean))
		out = append(out, cp)
	}
	return out, AggregateScope(current, seen, cfg)
}

// sortedSeen returns the seen categories in display order, unknown codes last.
func sortedSeen(seen map[models.Category]bool) []models.Category {
	rank := make(map[models.Category]int, len(models.AllCategories))
	for i, c := range models.AllCategories {
		rank[c] = i
	}
	var out []models.Category
	for c, ok := range seen {
		if ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, okI := rank[out[i]]
		rj, okJ := rank[out[j]]
		switch {
		case okI && okJ:
			return ri < rj
		case okI != okJ:
			return okI
		default:
			return out[i] < out[j]
		}
	})
	return out
}
