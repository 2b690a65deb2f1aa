package model

import "fixpoint/shared/model"

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldImages      = "images"

	CategoryBeforeAfter = "before_after"
	CategoryWorkshop    = "workshop"
	CategoryCompleted   = "completed_repairs"
)

// Gallery is an album of repair photos shown on the site, bucketed by
// category (before/after shots, workshop, completed repairs).
type Gallery struct {
	ID          string   `db:"id"`
	Title       string   `db:"title"`
	Description string   `db:"description"`
	Category    string   `db:"category"`
	Images      []string `db:"images"`
	model.Metadata
}
