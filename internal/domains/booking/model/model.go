package model

import "time"

const (
	EntityName = "booking"

	// DraftCachePrefix keys wizard drafts in redis.
	DraftCachePrefix = "booking:draft"
)

// SubmittedEvent is the payload fanned out to the email relay after a
// successful submission.
type SubmittedEvent struct {
	MessageID       string    `json:"message_id"`
	ServiceID       string    `json:"service_id"`
	ServiceName     string    `json:"service_name"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CouponCode      string    `json:"coupon_code,omitempty"`
	DiscountPercent int       `json:"discount_percent,omitempty"`
	FinalPrice      *float64  `json:"final_price"`
	SubmittedAt     time.Time `json:"submitted_at"`
}
