package attendance

import (
	"github.com/trainhub/trainhub-backend-go/internal/pkg/validator"
)

// WeekAll selects every flagged day regardless of week.
const WeekAll = "all"

// OverviewFilter narrows the flagged-day list to one Sunday-aligned week.
type OverviewFilter struct {
	Week string `json:"week"` // "all" or the week's Sunday as YYYY-MM-DD
}

func (f *OverviewFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Week == "" {
		f.Week = WeekAll // Default: no week filter
	}

	if f.Week != WeekAll {
		if _, valid := validator.IsValidDate(f.Week); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "week",
				Message: "week must be 'all' or a date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TraineeOverviewRequest is the mentor/admin view of one trainee's overview.
type TraineeOverviewRequest struct {
	TraineeID string `json:"-"`
	Filter    OverviewFilter
}

func (r *TraineeOverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TraineeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "trainee_id",
			Message: "trainee_id is required",
		})
	} else if !validator.IsValidUUID(r.TraineeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "trainee_id",
			Message: "trainee_id must be a valid UUID",
		})
	}

	if err := r.Filter.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
