package dto

import (
	"time"

	"fixpoint/internal/domains/post/model"
	"fixpoint/shared"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
	gModel "fixpoint/shared/model"
	"fixpoint/shared/timezone"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type CreatePostRequest struct {
	Title      string `json:"title"       validate:"required,max=255"`
	Body       string `json:"body"        validate:"required"`
	CoverImage string `json:"cover_image" validate:"omitempty,url,max=2048"`
	Published  *bool  `json:"published"   validate:"omitempty"`
}

func (c *CreatePostRequest) ToModel(user string) model.Post {
	published := c.Published != nil && *c.Published

	var publishedAt *time.Time
	if published {
		now := timezone.Now()
		publishedAt = &now
	}

	return model.Post{
		ID:          uuid.NewString(),
		Slug:        slug.Make(c.Title),
		Title:       c.Title,
		Body:        c.Body,
		CoverImage:  c.CoverImage,
		Published:   published,
		PublishedAt: publishedAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePostRequest struct {
	Title      string `db:"title"       json:"title"       validate:"omitempty,max=255"`
	Body       string `db:"body"        json:"body"        validate:"omitempty"`
	CoverImage string `db:"cover_image" json:"cover_image" validate:"omitempty,url,max=2048"`
	Published  *bool  `db:"published"   json:"published"   validate:"omitempty"`
}

type PostResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	CoverImage  string `json:"cover_image"`
	Published   bool   `json:"published"`
	PublishedAt string `json:"published_at,omitempty"`
	gDto.Metadata
}

func (r *PostResponse) FromModel(model model.Post) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Title = model.Title
	r.Body = model.Body
	r.CoverImage = model.CoverImage
	r.Published = model.Published
	if model.PublishedAt != nil {
		r.PublishedAt = timezone.Format(*model.PublishedAt, constant.DateFormat)
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetPostsResponse struct {
	Posts     []PostResponse `json:"posts"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetPostsResponse) FromModels(models []model.Post, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Posts = make([]PostResponse, len(models))
	for i, mod := range models {
		r.Posts[i].FromModel(mod)
	}
}
