// Package draft models the booking wizard as an explicit state machine. The
// wizard is strictly linear (date, then time, then details); the only backward
// move is ChangeDate, which clears the date and time selections but keeps the
// service, contact fields and any applied coupon.
package draft

import (
	"errors"
	"time"
)

type Step string

const (
	StepDate    Step = "date"
	StepTime    Step = "time"
	StepDetails Step = "details"
)

var (
	ErrWrongStep   = errors.New("action not allowed at the current step")
	ErrInvalidDate = errors.New("date must be a valid calendar date")
	ErrPastDate    = errors.New("date must not be in the past")
	ErrBlackoutDay = errors.New("date falls on a non-working day")
	ErrUnknownSlot = errors.New("time slot is not offered")
	ErrIncomplete  = errors.New("service, name, email and phone are required")
)

// Policy carries the booking constraints the wizard enforces: weekdays the
// shop is closed and the enumerated slot labels a visitor may pick.
type Policy struct {
	BlackoutWeekdays []string
	TimeSlots        []string
}

func (p Policy) blackedOut(day time.Weekday) bool {
	for _, name := range p.BlackoutWeekdays {
		if name == day.String() {
			return true
		}
	}

	return false
}

func (p Policy) offersSlot(slot string) bool {
	for _, label := range p.TimeSlots {
		if label == slot {
			return true
		}
	}

	return false
}

// AppliedCoupon is the slice of a validated coupon the draft needs to carry.
type AppliedCoupon struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}

type Draft struct {
	Step         Step           `json:"step"`
	Open         bool           `json:"open"`
	ServiceID    string         `json:"service_id"`
	SelectedDate string         `json:"selected_date"`
	SelectedTime string         `json:"selected_time"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Coupon       *AppliedCoupon `json:"coupon,omitempty"`
}

func New() Draft {
	return Draft{
		Step: StepDate,
		Open: true,
	}
}

// SelectDate accepts a date in 2006-01-02 form, rejecting past dates and
// blackout weekdays, and advances to the time step.
func (d *Draft) SelectDate(date string, now time.Time, policy Policy) error {
	if d.Step != StepDate {
		return ErrWrongStep
	}

	parsed, err := time.ParseInLocation(time.DateOnly, date, now.Location())
	if err != nil {
		return ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return ErrPastDate
	}

	if policy.blackedOut(parsed.Weekday()) {
		return ErrBlackoutDay
	}

	d.SelectedDate = date
	d.Step = StepTime

	return nil
}

// SelectTime accepts one of the policy's slot labels and advances to the
// details step.
func (d *Draft) SelectTime(slot string, policy Policy) error {
	if d.Step != StepTime {
		return ErrWrongStep
	}

	if !policy.offersSlot(slot) {
		return ErrUnknownSlot
	}

	d.SelectedTime = slot
	d.Step = StepDetails

	return nil
}

// ChangeDate moves back to the date step. Only the date and time selections
// are cleared; service, contact fields and coupon survive the round trip.
func (d *Draft) ChangeDate() error {
	if d.Step != StepTime && d.Step != StepDetails {
		return ErrWrongStep
	}

	d.SelectedDate = ""
	d.SelectedTime = ""
	d.Step = StepDate

	return nil
}

func (d *Draft) SetDetails(serviceID, name, email, phone string) error {
	if d.Step != StepDetails {
		return ErrWrongStep
	}

	d.ServiceID = serviceID
	d.Name = name
	d.Email = email
	d.Phone = phone

	return nil
}

func (d *Draft) ApplyCoupon(coupon AppliedCoupon) error {
	if d.Step != StepDetails {
		return ErrWrongStep
	}

	d.Coupon = &coupon

	return nil
}

func (d *Draft) RemoveCoupon() {
	d.Coupon = nil
}

// Validate reports whether the draft is submittable: all four required fields
// present and the date/time steps completed.
func (d *Draft) Validate() error {
	if d.ServiceID == "" || d.Name == "" || d.Email == "" || d.Phone == "" {
		return ErrIncomplete
	}

	if d.SelectedDate == "" || d.SelectedTime == "" {
		return ErrIncomplete
	}

	return nil
}

// Revalidate re-checks the stored date and slot against the policy as of now.
// Used at submit time so a draft that sat around past its date, or that was
// built under an older policy, cannot slip through.
func (d *Draft) Revalidate(now time.Time, policy Policy) error {
	parsed, err := time.ParseInLocation(time.DateOnly, d.SelectedDate, now.Location())
	if err != nil {
		return ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return ErrPastDate
	}

	if policy.blackedOut(parsed.Weekday()) {
		return ErrBlackoutDay
	}

	if !policy.offersSlot(d.SelectedTime) {
		return ErrUnknownSlot
	}

	return nil
}

// Reset clears every field, returns to the date step and closes the wizard.
func (d *Draft) Reset() {
	*d = Draft{Step: StepDate}
}
