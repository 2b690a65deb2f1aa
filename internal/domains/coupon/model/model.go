package model

import (
	"time"

	"fixpoint/shared/model"
)

const (
	TableName  = "coupons"
	EntityName = "coupon"

	FieldID              = "id"
	FieldCode            = "code"
	FieldDiscountPercent = "discount_percent"
	FieldValidFrom       = "valid_from"
	FieldValidUntil      = "valid_until"
	FieldMaxUses         = "max_uses"
	FieldCurrentUses     = "current_uses"
	FieldIsActive        = "is_active"
)

// Coupon is a discount code with a validity window, an activation flag and an
// optional usage cap. Codes are stored uppercase; MaxUses nil means unlimited.
type Coupon struct {
	ID              string    `db:"id"`
	Code            string    `db:"code"`
	DiscountPercent int       `db:"discount_percent"`
	ValidFrom       time.Time `db:"valid_from"`
	ValidUntil      time.Time `db:"valid_until"`
	MaxUses         *int      `db:"max_uses"`
	CurrentUses     int       `db:"current_uses"`
	IsActive        bool      `db:"is_active"`
	model.Metadata
}

// LimitReached reports whether the usage cap has been exhausted.
func (c *Coupon) LimitReached() bool {
	return c.MaxUses != nil && c.CurrentUses >= *c.MaxUses
}
