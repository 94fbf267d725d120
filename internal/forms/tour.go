package forms

import (
	"strings"

	"busdash/internal/models"
)

type TourForm struct {
	PackageName  string `form:"packageName"`
	Description  string `form:"description"`
	Price        string `form:"price"`
	DurationDays string `form:"durationDays"`
}

type tourCheck struct {
	PackageName  string   `form:"packageName" validate:"required,min=3"`
	Description  string   `form:"description" validate:"required,min=10"`
	Price        *float64 `form:"price" validate:"required,gt=0"`
	DurationDays *int     `form:"durationDays" validate:"required,gt=0,lte=365"`
}

var tourMessages = messages{
	"packageName": {
		"required": "Package name is required",
		"min":      "Package name must be at least 3 characters",
	},
	"description": {
		"required": "Description is required",
		"min":      "Description must be at least 10 characters",
	},
	"price": {
		"required": "Price must be greater than 0",
	},
	"durationDays": {
		"required": "Duration must be at least 1 day",
		"lte":      "Duration cannot exceed 365 days",
	},
}

// Validate trims the text fields, checks lengths and numeric ranges, and
// coerces price to a float and duration to an integer.
func (f TourForm) Validate() (models.TourPackageInput, Errors) {
	c := tourCheck{
		PackageName:  strings.TrimSpace(f.PackageName),
		Description:  strings.TrimSpace(f.Description),
		Price:        parseFloat(f.Price),
		DurationDays: parseInt(f.DurationDays),
	}
	if errs := check(c, tourMessages); errs != nil {
		return models.TourPackageInput{}, errs
	}
	return models.TourPackageInput{
		PackageName:  c.PackageName,
		Description:  c.Description,
		Price:        *c.Price,
		DurationDays: *c.DurationDays,
	}, nil
}
