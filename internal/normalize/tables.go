package normalize

import "github.com/sitewatch/sitewatch/internal/models"

// DefectKeywords mark a record as defective when found anywhere in the
// status or notes text. Inspectors often write "done" with a note that
// describes what is still broken; the note wins.
var DefectKeywords = []string{
	"אי תיאומים", "אי תאומים", "נמצאו אי", "קיימים אי",
	"יש הערות", "יש ליקויים", "ליקוי", "ליקויים",
	"לא תקין", "חסר", "חסרות", "חסרים", "חסרה",
	"שבור", "שבורים", "שבורה", "סדוק", "סדוקים",
	"פגם", "פגמים", "בעיה", "בעיות", "לתקן", "תיקון", "תיקונים",
	"לא בוצע", "לא הותקן", "לא הותקנו", "לא הושלם",
	"נזק", "נזקים", "missing", "defect", "חתוך", "להחליף",
}

// PartialKeywords mark work that was only partly carried out.
var PartialKeywords = []string{
	"חלקי", "בחלקו", "partial",
}

// VerificationKeywords in the notes of a completed item mean the inspector
// checked it and found it sound.
var VerificationKeywords = []string{
	"נבדק ונמצא תקין", "נבדק", "אושר", "תקין", "verified", "approved",
}

// StatusPhrases maps known status labels to codes. Keys are lower-case.
var StatusPhrases = map[string]models.Status{
	"בוצע - תקין":  models.StatusCompletedOK,
	"בוצע ותקין":   models.StatusCompletedOK,
	"תקין":         models.StatusCompletedOK,
	"הושלם ונבדק":  models.StatusCompletedOK,
	"בוצע":         models.StatusCompleted,
	"הושלם":        models.StatusCompleted,
	"הותקן":        models.StatusCompleted,
	"טופל":         models.StatusHandled,
	"תוקן":         models.StatusHandled,
	"ליקוי":        models.StatusDefect,
	"לא תקין":      models.StatusNotOK,
	"בביצוע":       models.StatusInProgress,
	"בעבודה":       models.StatusInProgress,
	"בתהליך":       models.StatusInProgress,
	"ממתין":        models.StatusPending,
	"בהמתנה":       models.StatusPending,
	"ממתין לבדיקה": models.StatusPending,
	"טרם בוצע":     models.StatusNotStarted,
	"טרם החל":      models.StatusNotStarted,
	"לא התחיל":     models.StatusNotStarted,

	"completed_ok": models.StatusCompletedOK,
	"completed":    models.StatusCompleted,
	"handled":      models.StatusHandled,
	"defect":       models.StatusDefect,
	"not_ok":       models.StatusNotOK,
	"in_progress":  models.StatusInProgress,
	"pending":      models.StatusPending,
	"not_started":  models.StatusNotStarted,
}

// CategoryLabels maps known category labels to codes. Keys are lower-case.
var CategoryLabels = map[string]models.Category{
	"חשמל":            models.CategoryElectrical,
	"עבודות חשמל":     models.CategoryElectrical,
	"חשמל ותקשורת":    models.CategoryElectrical,
	"אינסטלציה":       models.CategoryPlumbing,
	"אינסטלציה וביוב": models.CategoryPlumbing,
	"ביוב":            models.CategoryPlumbing,
	"מיזוג":           models.CategoryAC,
	"מיזוג אוויר":     models.CategoryAC,
	"מזגנים":          models.CategoryAC,
	"ריצוף":           models.CategoryFlooring,
	"ריצוף וחיפוי":    models.CategoryFlooring,
	"חיפוי":           models.CategoryFlooring,
	"ספרינקלרים":      models.CategorySprinklers,
	"מתזים":           models.CategorySprinklers,
	"כיבוי אש":        models.CategorySprinklers,
	"גבס":             models.CategoryDrywall,
	"קירות גבס":       models.CategoryDrywall,
	"איטום":           models.CategoryWaterproofing,
	"צבע":             models.CategoryPainting,
	"צביעה":           models.CategoryPainting,
	"מטבח":            models.CategoryKitchen,
	"ארונות מטבח":     models.CategoryKitchen,
	"כללי":            models.CategoryOther,
	"אחר":             models.CategoryOther,
	"שונות":           models.CategoryOther,

	"electrical":    models.CategoryElectrical,
	"plumbing":      models.CategoryPlumbing,
	"ac":            models.CategoryAC,
	"flooring":      models.CategoryFlooring,
	"sprinklers":    models.CategorySprinklers,
	"drywall":       models.CategoryDrywall,
	"waterproofing": models.CategoryWaterproofing,
	"painting":      models.CategoryPainting,
	"kitchen":       models.CategoryKitchen,
	"other":         models.CategoryOther,
}

// DescriptionOverrides reassign a category when the description names
// unambiguous work of another trade. Checked before CategoryLabels.
var DescriptionOverrides = map[string]models.Category{
	"נקודת חשמל":    models.CategoryElectrical,
	"נקודות חשמל":   models.CategoryElectrical,
	"נקודות תקשורת": models.CategoryElectrical,
	"לוח חשמל":      models.CategoryElectrical,
	"שקע":           models.CategoryElectrical,
	"תאורה":         models.CategoryElectrical,
	"ריצוף":         models.CategoryFlooring,
	"אריחים":        models.CategoryFlooring,
	"פנלים":         models.CategoryFlooring,
	"ברז":           models.CategoryPlumbing,
	"ניקוז":         models.CategoryPlumbing,
	"צנרת":          models.CategoryPlumbing,
	"מזגן":          models.CategoryAC,
	"ספרינקלר":      models.CategorySprinklers,
	"מתז":           models.CategorySprinklers,
	"איטום":         models.CategoryWaterproofing,
	"ארון מטבח":     models.CategoryKitchen,
	"משטח עבודה":    models.CategoryKitchen,
	"שפכטל":         models.CategoryPainting,
	"צביעה":         models.CategoryPainting,
	"גבס":           models.CategoryDrywall,
}
