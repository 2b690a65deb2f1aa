package dto

import (
	"fixpoint/internal/domains/inquiry/model"
	"fixpoint/shared"
	gDto "fixpoint/shared/dto"
	gModel "fixpoint/shared/model"
	"fixpoint/shared/timezone"

	"github.com/google/uuid"
)

type CreateInquiryRequest struct {
	Name    string `json:"name"    validate:"required,max=128"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Phone   string `json:"phone"   validate:"omitempty,max=32"`
	Subject string `json:"subject" validate:"required,max=256"`
	Body    string `json:"body"    validate:"required,max=8192"`
}

func (r *CreateInquiryRequest) ToModel() model.InboundMessage {
	return model.InboundMessage{
		ID:      uuid.NewString(),
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Subject: r.Subject,
		Body:    r.Body,
		Source:  model.SourceContactForm,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  model.SourceContactForm,
			ModifiedBy: model.SourceContactForm,
		},
	}
}

type InquiryResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Source  string `json:"source"`
	IsRead  bool   `json:"is_read"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(model model.InboundMessage) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Subject = model.Subject
	r.Body = model.Body
	r.Source = model.Source
	r.IsRead = model.IsRead
	r.Metadata.FromModel(model.Metadata)
}

type GetInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInquiriesResponse) FromModels(models []model.InboundMessage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Inquiries = make([]InquiryResponse, len(models))
	for i, mod := range models {
		r.Inquiries[i].FromModel(mod)
	}
}
