package models

// Status is the closed set of normalized work-item status codes.
type Status string

const (
	StatusCompletedOK Status = "COMPLETED_OK"
	StatusCompleted   Status = "COMPLETED"
	StatusHandled     Status = "HANDLED"
	StatusDefect      Status = "DEFECT"
	StatusNotOK       Status = "NOT_OK"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusPending     Status = "PENDING"
	StatusNotStarted  Status = "NOT_STARTED"
)

// AllStatuses lists every status code in display order.
var AllStatuses = []Status{
	StatusCompletedOK,
	StatusCompleted,
	StatusHandled,
	StatusDefect,
	StatusNotOK,
	StatusInProgress,
	StatusPending,
	StatusNotStarted,
}

// IsNegative reports whether s marks an open defect.
func (s Status) IsNegative() bool {
	return s == StatusDefect || s == StatusNotOK
}

// IsPositive reports whether s marks work as done.
func (s Status) IsPositive() bool {
	return s == StatusCompleted || s == StatusCompletedOK || s == StatusHandled
}

// Valid reports whether s is one of the known codes.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Category is the closed set of work categories.
type Category string

const (
	CategoryElectrical    Category = "ELECTRICAL"
	CategoryPlumbing      Category = "PLUMBING"
	CategoryAC            Category = "AC"
	CategoryFlooring      Category = "FLOORING"
	CategorySprinklers    Category = "SPRINKLERS"
	CategoryDrywall       Category = "DRYWALL"
	CategoryWaterproofing Category = "WATERPROOFING"
	CategoryPainting      Category = "PAINTING"
	CategoryKitchen       Category = "KITCHEN"
	CategoryOther         Category = "OTHER"
)

// AllCategories lists every category code in display order.
var AllCategories = []Category{
	CategoryElectrical,
	CategoryPlumbing,
	CategoryAC,
	CategoryFlooring,
	CategorySprinklers,
	CategoryDrywall,
	CategoryWaterproofing,
	CategoryPainting,
	CategoryKitchen,
	CategoryOther,
}

// Valid reports whether c is one of the known codes.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
