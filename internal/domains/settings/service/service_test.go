package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fixpoint/config"
	"fixpoint/infras/otel/mocks"
	settingsMocks "fixpoint/internal/domains/settings/mocks"
	"fixpoint/internal/domains/settings/model"
	"fixpoint/internal/domains/settings/model/dto"
	"fixpoint/internal/domains/settings/service"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
)

// newSettingsService primes the startup load with the given rows.
func newSettingsService(t *testing.T, ctrl *gomock.Controller, seed []model.Setting) (service.Settings, *settingsMocks.MockSettings, *config.Config) {
	t.Helper()

	mockRepo := settingsMocks.NewMockSettings(ctrl)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(seed, nil)

	cfg := &config.Config{}
	cfg.Booking.BlackoutWeekdays = []string{"Sunday"}
	cfg.Booking.TimeSlots = []string{"09:00", "11:00"}

	return service.New(mockRepo, cfg, mocks.NewOtel()), mockRepo, cfg
}

func TestSettingsService_Value(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newSettingsService(t, ctrl, []model.Setting{
		{ID: "setting-id", Key: model.KeyContactEmail, Value: "shop@example.com"},
	})

	value, ok := svc.Value(model.KeyContactEmail)
	assert.True(t, ok)
	assert.Equal(t, "shop@example.com", value)

	_, ok = svc.Value("unknown.key")
	assert.False(t, ok)
}

func TestSettingsService_Values(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newSettingsService(t, ctrl, []model.Setting{
		{ID: "id-1", Key: model.KeyTimeSlots, Value: " 09:00, 11:00 ,14:00,, "},
		{ID: "id-2", Key: model.KeyContactPhone, Value: ""},
	})

	assert.Equal(t, []string{"09:00", "11:00", "14:00"}, svc.Values(model.KeyTimeSlots))
	assert.Nil(t, svc.Values(model.KeyContactPhone))
	assert.Nil(t, svc.Values("unknown.key"))
}

func TestSettingsService_BookingPolicy(t *testing.T) {
	tests := []struct {
		name         string
		seed         []model.Setting
		wantBlackout []string
		wantSlots    []string
	}{
		{
			name: "table overrides win",
			seed: []model.Setting{
				{ID: "id-1", Key: model.KeyBlackoutWeekdays, Value: "Saturday,Sunday"},
				{ID: "id-2", Key: model.KeyTimeSlots, Value: "10:00"},
			},
			wantBlackout: []string{"Saturday", "Sunday"},
			wantSlots:    []string{"10:00"},
		},
		{
			name:         "config defaults fill the gaps",
			seed:         nil,
			wantBlackout: []string{"Sunday"},
			wantSlots:    []string{"09:00", "11:00"},
		},
		{
			name: "partial override",
			seed: []model.Setting{
				{ID: "id-1", Key: model.KeyTimeSlots, Value: "10:00,15:00"},
			},
			wantBlackout: []string{"Sunday"},
			wantSlots:    []string{"10:00", "15:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, _ := newSettingsService(t, ctrl, tt.seed)

			policy := svc.BookingPolicy()

			assert.Equal(t, tt.wantBlackout, policy.BlackoutWeekdays)
			assert.Equal(t, tt.wantSlots, policy.TimeSlots)
		})
	}
}

func TestSettingsService_Upsert(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpsertSettingRequest
		setupMock func(repo *settingsMocks.MockSettings)
		wantErr   bool
	}{
		{
			name: "insert when absent",
			req:  dto.UpsertSettingRequest{Key: model.KeyAddress, Value: "1 Main St"},
			setupMock: func(repo *settingsMocks.MockSettings) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, setting model.Setting) error {
						assert.Equal(t, model.KeyAddress, setting.Key)
						assert.Equal(t, "1 Main St", setting.Value)
						assert.NotEmpty(t, setting.ID)

						return nil
					})
			},
		},
		{
			name: "update when present",
			req:  dto.UpsertSettingRequest{Key: model.KeyAddress, Value: "2 Main St"},
			setupMock: func(repo *settingsMocks.MockSettings) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "2 Main St", fields[model.FieldValue])

						return nil
					})
			},
		},
		{
			name: "existence check error",
			req:  dto.UpsertSettingRequest{Key: model.KeyAddress, Value: "1 Main St"},
			setupMock: func(repo *settingsMocks.MockSettings) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _ := newSettingsService(t, ctrl, nil)
			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Upsert(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)

				// The snapshot reflects the write immediately.
				value, ok := svc.Value(tt.req.Key)
				assert.True(t, ok)
				assert.Equal(t, tt.req.Value, value)
			}
		})
	}
}

func TestSettingsService_Upsert_NotifiesWatchers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newSettingsService(t, ctrl, nil)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	watch := svc.Watch(context.Background())

	err := svc.Upsert(context.Background(), dto.UpsertSettingRequest{
		Key:   model.KeyTimeSlots,
		Value: "10:00",
	})

	assert.NoError(t, err)

	select {
	case key := <-watch:
		assert.Equal(t, model.KeyTimeSlots, key)
	default:
		t.Fatal("expected a change notification")
	}
}

func TestSettingsService_Watch_UnsubscribesOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newSettingsService(t, ctrl, nil)

	ctx, cancel := context.WithCancel(context.Background())
	watch := svc.Watch(ctx)

	cancel()

	// The subscription closes once the cancellation is observed.
	select {
	case _, open := <-watch:
		assert.False(t, open, "expected the channel to be closed")
	case <-time.After(time.Second):
		t.Fatal("expected the channel to close after cancel")
	}

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	// A write after unsubscribe must not panic on the closed channel.
	err := svc.Upsert(context.Background(), dto.UpsertSettingRequest{
		Key:   model.KeyTimeSlots,
		Value: "10:00",
	})

	assert.NoError(t, err)
}

func TestSettingsService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		setupMock func(repo *settingsMocks.MockSettings)
		wantErr   bool
	}{
		{
			name: "successful deletion",
			key:  model.KeyAddress,
			setupMock: func(repo *settingsMocks.MockSettings) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "setting not found",
			key:  "unknown.key",
			setupMock: func(repo *settingsMocks.MockSettings) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _ := newSettingsService(t, ctrl, []model.Setting{
				{ID: "setting-id", Key: model.KeyAddress, Value: "1 Main St"},
			})
			tt.setupMock(mockRepo)

			err := svc.Delete(context.Background(), tt.key)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)

				_, ok := svc.Value(tt.key)
				assert.False(t, ok)
			}
		})
	}
}
