package entity

import "github.com/shopspring/decimal"

// TherapistFilter is a domain-level filter for the public directory query.
// Used by repository layer to avoid coupling with delivery DTOs.
type TherapistFilter struct {
	Specialization string           // exact membership in the specialization list
	MinRating      *float64         // minimum average review rating; unrated therapists are excluded
	MaxPrice       *decimal.Decimal // maximum hourly rate, inclusive
}
