package model

import "fixpoint/shared/model"

const (
	TableName  = "inbound_messages"
	EntityName = "inquiry"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldSubject = "subject"
	FieldBody    = "body"
	FieldSource  = "source"
	FieldIsRead  = "is_read"

	SourceContactForm  = "contact_form"
	SourceBookingPopup = "booking_popup"
)

// InboundMessage is one row of the shared inbox. Contact-form submissions and
// booking submissions land here, told apart by Source.
type InboundMessage struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
	Subject string `db:"subject"`
	Body    string `db:"body"`
	Source  string `db:"source"`
	IsRead  bool   `db:"is_read"`
	model.Metadata
}
