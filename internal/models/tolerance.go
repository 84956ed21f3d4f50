package models

import "time"

// BrandTolerance is the permitted undercut below MAP, in cents, for one
// brand. A product only violates when its price drops below MAP minus the
// tolerance; brands without a rule get zero tolerance.
type BrandTolerance struct {
	ID             int       `db:"id" json:"id"`
	BrandName      string    `db:"brand_name" json:"brand_name"`
	ToleranceCents int64     `db:"tolerance_cents" json:"tolerance_cents"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type BrandToleranceRequest struct {
	BrandName      string `json:"brand_name" validate:"required"`
	ToleranceCents int64  `json:"tolerance_cents"`
}
