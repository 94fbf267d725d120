package models

type TourPackage struct {
	ID           int64   `json:"id"`
	PackageName  string  `json:"packageName"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"durationDays"`
}

type TourPackageInput struct {
	PackageName  string  `json:"packageName" yaml:"packageName"`
	Description  string  `json:"description" yaml:"description"`
	Price        float64 `json:"price" yaml:"price"`
	DurationDays int     `json:"durationDays" yaml:"durationDays"`
}
