package dto

import (
	"fixpoint/internal/domains/booking/draft"
)

type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type SelectTimeRequest struct {
	Time string `json:"time" validate:"required,max=16"`
}

type SetDetailsRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid4"`
	Name      string `json:"name"       validate:"required,max=128"`
	Email     string `json:"email"      validate:"required,email,max=254"`
	Phone     string `json:"phone"      validate:"required,max=32"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// DraftResponse echoes the wizard state back to the client after every
// transition.
type DraftResponse struct {
	DraftID string      `json:"draft_id"`
	Draft   draft.Draft `json:"draft"`
}

func (r *DraftResponse) FromDraft(id string, d draft.Draft) {
	r.DraftID = id
	r.Draft = d
}

type SubmitBookingResponse struct {
	MessageID       string   `json:"message_id"`
	ServiceName     string   `json:"service_name"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	CouponCode      string   `json:"coupon_code,omitempty"`
	DiscountPercent int      `json:"discount_percent,omitempty"`
	FinalPrice      *float64 `json:"final_price"`
}
