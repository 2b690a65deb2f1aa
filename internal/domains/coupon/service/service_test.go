package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fixpoint/config"
	"fixpoint/infras/otel/mocks"
	couponMocks "fixpoint/internal/domains/coupon/mocks"
	"fixpoint/internal/domains/coupon/model"
	"fixpoint/internal/domains/coupon/model/dto"
	"fixpoint/internal/domains/coupon/service"
	cacheMocks "fixpoint/shared/cache/mocks"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
	"fixpoint/shared/failure"
	"fixpoint/shared/timezone"
)

func intPtr(v int) *int {
	return &v
}

func activeCoupon(maxUses *int, currentUses int) model.Coupon {
	return model.Coupon{
		ID:              "coupon-id",
		Code:            "SUMMER20",
		DiscountPercent: 20,
		ValidFrom:       timezone.Now().Add(-24 * time.Hour),
		ValidUntil:      timezone.Now().Add(24 * time.Hour),
		MaxUses:         maxUses,
		CurrentUses:     currentUses,
		IsActive:        true,
	}
}

func TestCouponService_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := couponMocks.NewMockCoupon(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		code      string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantMsg   string
		wantID    string
	}{
		{
			name: "valid coupon",
			code: "SUMMER20",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCoupon(intPtr(100), 5), nil)
			},
			wantErr: false,
			wantID:  "coupon-id",
		},
		{
			name: "code is trimmed and uppercased before lookup",
			code: "  summer20  ",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Coupon, error) {
						codeFilter := filter.Filters[0].(gDto.Filter)
						assert.Equal(t, "SUMMER20", codeFilter.Value)

						return activeCoupon(nil, 0), nil
					})
			},
			wantErr: false,
			wantID:  "coupon-id",
		},
		{
			name: "unknown code collapses to generic bad request",
			code: "NOSUCHCODE",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Coupon{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid or expired coupon code",
		},
		{
			name: "inactive or out-of-window lookup yields the same generic message",
			code: "EXPIRED10",
			setupMock: func() {
				// The repository filter folds the active flag and validity window
				// into the query, so any miss looks identical to the caller.
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Coupon{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid or expired coupon code",
		},
		{
			name: "usage cap exhausted",
			code: "SUMMER20",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCoupon(intPtr(5), 5), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
			wantMsg:  "coupon usage limit reached",
		},
		{
			name: "nil max uses never exhausts",
			code: "SUMMER20",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCoupon(nil, 1_000_000), nil)
			},
			wantErr: false,
			wantID:  "coupon-id",
		},
		{
			name: "repository error",
			code: "SUMMER20",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Coupon{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Validate(context.Background(), tt.code)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, result.ID)
				assert.False(t, result.ValidatedAt.IsZero())
			}
		})
	}
}

func TestCouponService_Redeem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := couponMocks.NewMockCoupon(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful redemption",
			setupMock: func() {
				mockRepo.EXPECT().
					IncrementUses(gomock.Any(), "coupon-id").
					Return(true, nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "conditional increment loses the race for the last slot",
			setupMock: func() {
				mockRepo.EXPECT().
					IncrementUses(gomock.Any(), "coupon-id").
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					IncrementUses(gomock.Any(), "coupon-id").
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Redeem(context.Background(), "coupon-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCouponService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := couponMocks.NewMockCoupon(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateCouponRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateCouponRequest{
				Code:            "welcome10",
				DiscountPercent: 10,
				ValidUntil:      timezone.Now().Add(72 * time.Hour).Format(constant.DateFormat),
				MaxUses:         intPtr(50),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, coupon model.Coupon) error {
						assert.Equal(t, "WELCOME10", coupon.Code)
						assert.Zero(t, coupon.CurrentUses)
						assert.True(t, coupon.IsActive)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "duplicate code",
			req: dto.CreateCouponRequest{
				Code:            "WELCOME10",
				DiscountPercent: 10,
				ValidUntil:      timezone.Now().Add(72 * time.Hour).Format(constant.DateFormat),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unparseable valid_until",
			req: dto.CreateCouponRequest{
				Code:            "WELCOME10",
				DiscountPercent: 10,
				ValidUntil:      "not-a-date",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "valid_until before valid_from",
			req: dto.CreateCouponRequest{
				Code:            "WELCOME10",
				DiscountPercent: 10,
				ValidFrom:       timezone.Now().Add(72 * time.Hour).Format(constant.DateFormat),
				ValidUntil:      timezone.Now().Add(24 * time.Hour).Format(constant.DateFormat),
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCouponService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := couponMocks.NewMockCoupon(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache miss, successful get from db",
			id:   "coupon-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCoupon(intPtr(100), 5), nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "coupon-id",
		},
		{
			name: "coupon not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Coupon{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, result.ID)
			}
		})
	}
}

func TestCouponService_SetActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := couponMocks.NewMockCoupon(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	active := false

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful toggle",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCoupon(nil, 0), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldIsActive])

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "coupon not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Coupon{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.SetActive(ctx, dto.SetActiveRequest{IsActive: &active}, "coupon-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
