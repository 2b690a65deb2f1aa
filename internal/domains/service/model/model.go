package model

import "fixpoint/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldDurationMinutes = "duration_minutes"
	FieldImage           = "image"
	FieldActive          = "active"
)

// Service is a repair service offered on the site. Price is nullable:
// some services (diagnostics, custom jobs) are quoted on request.
type Service struct {
	ID              string   `db:"id"`
	Name            string   `db:"name"`
	Description     string   `db:"description"`
	Price           *float64 `db:"price"`
	DurationMinutes int      `db:"duration_minutes"`
	Image           string   `db:"image"`
	Active          bool     `db:"active"`
	model.Metadata
}
