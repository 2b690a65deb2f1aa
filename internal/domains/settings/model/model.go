package model

import "fixpoint/shared/model"

const (
	TableName  = "site_settings"
	EntityName = "setting"

	FieldID    = "id"
	FieldKey   = "key"
	FieldValue = "value"
)

// Well-known keys. Values are stored as plain strings; list-valued settings
// are comma separated.
const (
	KeyBlackoutWeekdays = "booking.blackout_weekdays"
	KeyTimeSlots        = "booking.time_slots"
	KeyContactEmail     = "site.contact_email"
	KeyContactPhone     = "site.contact_phone"
	KeyAddress          = "site.address"
)

type Setting struct {
	ID    string `db:"id"`
	Key   string `db:"key"`
	Value string `db:"value"`
	model.Metadata
}
