package data

import (
	"math"

	"github.com/tobenna/librarium/internal/validator"
)

// Filters holds the limit/offset pagination parameters common to all list
// endpoints.
type Filters struct {
	Limit  int
	Offset int
}

func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(f.Limit > 0, "limit", "must be greater than zero")
	v.Check(f.Limit <= 100, "limit", "must be a maximum of 100")
	v.Check(f.Offset >= 0, "offset", "must not be negative")
	v.Check(f.Offset <= 10_000_000, "offset", "must be a maximum of 10 million")
}

// Metadata holds the pagination metadata returned alongside list items.
type Metadata struct {
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// CalculateMetadata computes pagination metadata for a total record count and
// the requested limit/offset. The current page is offset/limit + 1 and the
// page count rounds up, so a partially filled final page still counts.
func CalculateMetadata(total, limit, offset int) Metadata {
	if limit <= 0 {
		return Metadata{}
	}
	return Metadata{
		Total:       total,
		CurrentPage: offset/limit + 1,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
	}
}
