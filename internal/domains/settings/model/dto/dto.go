package dto

import (
	"fixpoint/internal/domains/settings/model"
	gDto "fixpoint/shared/dto"
	gModel "fixpoint/shared/model"
	"fixpoint/shared/timezone"

	"github.com/google/uuid"
)

type UpsertSettingRequest struct {
	Key   string `json:"key"   validate:"required,max=128"`
	Value string `json:"value" validate:"required,max=4096"`
}

func (r *UpsertSettingRequest) ToModel(user string) model.Setting {
	return model.Setting{
		ID:    uuid.NewString(),
		Key:   r.Key,
		Value: r.Value,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type SettingResponse struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
	gDto.Metadata
}

func (r *SettingResponse) FromModel(model model.Setting) {
	r.ID = model.ID
	r.Key = model.Key
	r.Value = model.Value
	r.Metadata.FromModel(model.Metadata)
}

type GetSettingsResponse struct {
	Settings []SettingResponse `json:"settings"`
}

func (r *GetSettingsResponse) FromModels(models []model.Setting) {
	r.Settings = make([]SettingResponse, len(models))
	for i, mod := range models {
		r.Settings[i].FromModel(mod)
	}
}

// BookingPolicyResponse is the public view consumed by the booking widget.
type BookingPolicyResponse struct {
	BlackoutWeekdays []string `json:"blackout_weekdays"`
	TimeSlots        []string `json:"time_slots"`
}
