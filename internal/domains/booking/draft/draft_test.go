package draft_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fixpoint/internal/domains/booking/draft"
)

var testPolicy = draft.Policy{
	BlackoutWeekdays: []string{"Sunday"},
	TimeSlots:        []string{"09:00", "11:00", "14:00"},
}

// testNow is a Monday.
var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func completedDraft() draft.Draft {
	d := draft.New()
	_ = d.SelectDate("2025-06-03", testNow, testPolicy)
	_ = d.SelectTime("09:00", testPolicy)
	_ = d.SetDetails("service-id", "Jane Doe", "jane@example.com", "+15550100")

	return d
}

func TestDraft_New(t *testing.T) {
	d := draft.New()

	assert.Equal(t, draft.StepDate, d.Step)
	assert.True(t, d.Open)
	assert.Nil(t, d.Coupon)
}

func TestDraft_SelectDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{
			name: "future weekday accepted",
			date: "2025-06-03",
		},
		{
			name: "same day accepted",
			date: "2025-06-02",
		},
		{
			name:    "past date rejected",
			date:    "2025-06-01",
			wantErr: draft.ErrPastDate,
		},
		{
			name:    "blackout weekday rejected",
			date:    "2025-06-08",
			wantErr: draft.ErrBlackoutDay,
		},
		{
			name:    "garbage date rejected",
			date:    "03/06/2025",
			wantErr: draft.ErrInvalidDate,
		},
		{
			name:    "impossible calendar date rejected",
			date:    "2025-02-30",
			wantErr: draft.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := draft.New()
			err := d.SelectDate(tt.date, testNow, testPolicy)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, draft.StepDate, d.Step)
				assert.Empty(t, d.SelectedDate)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, draft.StepTime, d.Step)
				assert.Equal(t, tt.date, d.SelectedDate)
			}
		})
	}
}

func TestDraft_SelectDate_WrongStep(t *testing.T) {
	d := draft.New()
	assert.NoError(t, d.SelectDate("2025-06-03", testNow, testPolicy))

	err := d.SelectDate("2025-06-04", testNow, testPolicy)

	assert.ErrorIs(t, err, draft.ErrWrongStep)
	assert.Equal(t, "2025-06-03", d.SelectedDate)
}

func TestDraft_SelectTime(t *testing.T) {
	tests := []struct {
		name    string
		slot    string
		wantErr error
	}{
		{
			name: "offered slot accepted",
			slot: "11:00",
		},
		{
			name:    "unknown slot rejected",
			slot:    "23:00",
			wantErr: draft.ErrUnknownSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := draft.New()
			assert.NoError(t, d.SelectDate("2025-06-03", testNow, testPolicy))

			err := d.SelectTime(tt.slot, testPolicy)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, draft.StepTime, d.Step)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, draft.StepDetails, d.Step)
				assert.Equal(t, tt.slot, d.SelectedTime)
			}
		})
	}
}

func TestDraft_SelectTime_BeforeDate(t *testing.T) {
	d := draft.New()

	assert.ErrorIs(t, d.SelectTime("09:00", testPolicy), draft.ErrWrongStep)
}

func TestDraft_ChangeDate(t *testing.T) {
	d := completedDraft()
	assert.NoError(t, d.ApplyCoupon(draft.AppliedCoupon{ID: "coupon-id", Code: "SUMMER20", DiscountPercent: 20}))

	assert.NoError(t, d.ChangeDate())

	assert.Equal(t, draft.StepDate, d.Step)
	assert.Empty(t, d.SelectedDate)
	assert.Empty(t, d.SelectedTime)

	// Everything else survives the round trip.
	assert.Equal(t, "service-id", d.ServiceID)
	assert.Equal(t, "Jane Doe", d.Name)
	assert.Equal(t, "jane@example.com", d.Email)
	assert.Equal(t, "+15550100", d.Phone)
	assert.NotNil(t, d.Coupon)
	assert.Equal(t, "SUMMER20", d.Coupon.Code)
}

func TestDraft_ChangeDate_AtDateStep(t *testing.T) {
	d := draft.New()

	assert.ErrorIs(t, d.ChangeDate(), draft.ErrWrongStep)
}

func TestDraft_SetDetails_WrongStep(t *testing.T) {
	d := draft.New()

	err := d.SetDetails("service-id", "Jane Doe", "jane@example.com", "+15550100")

	assert.ErrorIs(t, err, draft.ErrWrongStep)
}

func TestDraft_ApplyCoupon_WrongStep(t *testing.T) {
	d := draft.New()

	err := d.ApplyCoupon(draft.AppliedCoupon{ID: "coupon-id"})

	assert.ErrorIs(t, err, draft.ErrWrongStep)
}

func TestDraft_RemoveCoupon(t *testing.T) {
	d := completedDraft()
	assert.NoError(t, d.ApplyCoupon(draft.AppliedCoupon{ID: "coupon-id"}))

	d.RemoveCoupon()

	assert.Nil(t, d.Coupon)
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *draft.Draft)
		wantErr error
	}{
		{
			name:   "complete draft",
			mutate: func(d *draft.Draft) {},
		},
		{
			name:    "missing name",
			mutate:  func(d *draft.Draft) { d.Name = "" },
			wantErr: draft.ErrIncomplete,
		},
		{
			name:    "missing email",
			mutate:  func(d *draft.Draft) { d.Email = "" },
			wantErr: draft.ErrIncomplete,
		},
		{
			name:    "missing phone",
			mutate:  func(d *draft.Draft) { d.Phone = "" },
			wantErr: draft.ErrIncomplete,
		},
		{
			name:    "missing service",
			mutate:  func(d *draft.Draft) { d.ServiceID = "" },
			wantErr: draft.ErrIncomplete,
		},
		{
			name:    "missing time selection",
			mutate:  func(d *draft.Draft) { d.SelectedTime = "" },
			wantErr: draft.ErrIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completedDraft()
			tt.mutate(&d)

			err := d.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDraft_Revalidate(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		policy  draft.Policy
		wantErr error
	}{
		{
			name:   "still valid",
			now:    testNow,
			policy: testPolicy,
		},
		{
			name:    "date passed while the draft sat around",
			now:     testNow.AddDate(0, 0, 7),
			policy:  testPolicy,
			wantErr: draft.ErrPastDate,
		},
		{
			name: "policy blacked out the chosen weekday since selection",
			now:  testNow,
			policy: draft.Policy{
				BlackoutWeekdays: []string{"Tuesday"},
				TimeSlots:        testPolicy.TimeSlots,
			},
			wantErr: draft.ErrBlackoutDay,
		},
		{
			name: "policy dropped the chosen slot since selection",
			now:  testNow,
			policy: draft.Policy{
				BlackoutWeekdays: testPolicy.BlackoutWeekdays,
				TimeSlots:        []string{"14:00"},
			},
			wantErr: draft.ErrUnknownSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completedDraft()

			err := d.Revalidate(tt.now, tt.policy)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDraft_Reset(t *testing.T) {
	d := completedDraft()
	assert.NoError(t, d.ApplyCoupon(draft.AppliedCoupon{ID: "coupon-id"}))

	d.Reset()

	assert.Equal(t, draft.Draft{Step: draft.StepDate}, d)
	assert.False(t, d.Open)
}
