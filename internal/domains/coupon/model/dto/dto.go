package dto

import (
	"strings"
	"time"

	"fixpoint/internal/domains/coupon/model"
	"fixpoint/shared"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
	gModel "fixpoint/shared/model"
	"fixpoint/shared/timezone"

	"github.com/google/uuid"
)

type CreateCouponRequest struct {
	Code            string `json:"code"             validate:"required,min=3,max=32,alphanum"`
	DiscountPercent int    `json:"discount_percent" validate:"required,min=1,max=100"`
	ValidFrom       string `json:"valid_from"       validate:"omitempty"`
	ValidUntil      string `json:"valid_until"      validate:"required"`
	MaxUses         *int   `json:"max_uses"         validate:"omitempty,min=1"`
	IsActive        *bool  `json:"is_active"        validate:"omitempty"`
}

func (c *CreateCouponRequest) ToModel(user string) (model.Coupon, error) {
	validUntil, err := timezone.Parse(constant.DateFormat, c.ValidUntil)
	if err != nil {
		return model.Coupon{}, err
	}

	// valid_from defaults to creation time when absent.
	validFrom := timezone.Now()
	if c.ValidFrom != "" {
		validFrom, err = timezone.Parse(constant.DateFormat, c.ValidFrom)
		if err != nil {
			return model.Coupon{}, err
		}
	}

	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Coupon{
		ID:              uuid.NewString(),
		Code:            strings.ToUpper(c.Code),
		DiscountPercent: c.DiscountPercent,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		MaxUses:         c.MaxUses,
		CurrentUses:     0,
		IsActive:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateCouponRequest struct {
	DiscountPercent *int   `db:"discount_percent" json:"discount_percent" validate:"omitempty,min=1,max=100"`
	ValidFrom       string `json:"valid_from"  validate:"omitempty"`
	ValidUntil      string `json:"valid_until" validate:"omitempty"`
	MaxUses         *int   `db:"max_uses"  json:"max_uses"  validate:"omitempty,min=1"`
	IsActive        *bool  `db:"is_active" json:"is_active" validate:"omitempty"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type CouponResponse struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	ValidFrom       string `json:"valid_from"`
	ValidUntil      string `json:"valid_until"`
	MaxUses         *int   `json:"max_uses"`
	CurrentUses     int    `json:"current_uses"`
	IsActive        bool   `json:"is_active"`
	gDto.Metadata
}

func (r *CouponResponse) FromModel(model model.Coupon) {
	r.ID = model.ID
	r.Code = model.Code
	r.DiscountPercent = model.DiscountPercent
	r.ValidFrom = timezone.Format(model.ValidFrom, constant.DateFormat)
	r.ValidUntil = timezone.Format(model.ValidUntil, constant.DateFormat)
	r.MaxUses = model.MaxUses
	r.CurrentUses = model.CurrentUses
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetCouponsResponse struct {
	Coupons   []CouponResponse `json:"coupons"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetCouponsResponse) FromModels(models []model.Coupon, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Coupons = make([]CouponResponse, len(models))
	for i, mod := range models {
		r.Coupons[i].FromModel(mod)
	}
}

type ValidateCouponRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// CouponSnapshot is the read model handed to the booking pipeline when a code
// validates. CurrentUses is the fresh value at validation time.
type CouponSnapshot struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	CurrentUses     int       `json:"current_uses"`
	ValidatedAt     time.Time `json:"validated_at"`
}

func (r *CouponSnapshot) FromModel(model model.Coupon) {
	r.ID = model.ID
	r.Code = model.Code
	r.DiscountPercent = model.DiscountPercent
	r.CurrentUses = model.CurrentUses
	r.ValidatedAt = timezone.Now()
}
