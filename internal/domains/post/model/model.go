package model

import (
	"time"

	"fixpoint/shared/model"
)

const (
	TableName  = "posts"
	EntityName = "post"

	FieldID          = "id"
	FieldSlug        = "slug"
	FieldTitle       = "title"
	FieldBody        = "body"
	FieldCoverImage  = "cover_image"
	FieldPublished   = "published"
	FieldPublishedAt = "published_at"
)

type Post struct {
	ID          string     `db:"id"`
	Slug        string     `db:"slug"`
	Title       string     `db:"title"`
	Body        string     `db:"body"`
	CoverImage  string     `db:"cover_image"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
	model.Metadata
}
