package service

import (
	"context"
	"errors"
	"fmt"

	"fixpoint/config"
	"fixpoint/infras/kafka"
	"fixpoint/infras/otel"
	"fixpoint/internal/domains/booking/draft"
	"fixpoint/internal/domains/booking/model"
	"fixpoint/internal/domains/booking/model/dto"
	couponSvc "fixpoint/internal/domains/coupon/service"
	inquiryModel "fixpoint/internal/domains/inquiry/model"
	inquirySvc "fixpoint/internal/domains/inquiry/service"
	svcModel "fixpoint/internal/domains/service/model"
	svcRepo "fixpoint/internal/domains/service/repository"
	settingsModel "fixpoint/internal/domains/settings/model"
	settingsSvc "fixpoint/internal/domains/settings/service"
	"fixpoint/shared"
	"fixpoint/shared/cache"
	"fixpoint/shared/constant"
	"fixpoint/shared/failure"
	gModel "fixpoint/shared/model"
	"fixpoint/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Booking drives the public three-step wizard. Drafts live in redis under a
// client-held draft ID; a submitted draft becomes an inbox row plus, when a
// coupon is applied, one coupon redemption.
type Booking interface {
	Start(ctx context.Context) (dto.DraftResponse, error)
	GetDraft(ctx context.Context, draftID string) (dto.DraftResponse, error)
	SelectDate(ctx context.Context, draftID string, req dto.SelectDateRequest) (dto.DraftResponse, error)
	SelectTime(ctx context.Context, draftID string, req dto.SelectTimeRequest) (dto.DraftResponse, error)
	ChangeDate(ctx context.Context, draftID string) (dto.DraftResponse, error)
	SetDetails(ctx context.Context, draftID string, req dto.SetDetailsRequest) (dto.DraftResponse, error)
	ApplyCoupon(ctx context.Context, draftID string, req dto.ApplyCouponRequest) (dto.DraftResponse, error)
	RemoveCoupon(ctx context.Context, draftID string) (dto.DraftResponse, error)
	Reset(ctx context.Context, draftID string) (dto.DraftResponse, error)
	Submit(ctx context.Context, draftID string) (dto.SubmitBookingResponse, error)
}

type serviceImpl struct {
	services svcRepo.Service
	coupons  couponSvc.Coupon
	inbox    inquirySvc.Inquiry
	settings settingsSvc.Settings
	kafka    kafka.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	services svcRepo.Service,
	coupons couponSvc.Coupon,
	inbox inquirySvc.Inquiry,
	settings settingsSvc.Settings,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	svc := &serviceImpl{
		services: services,
		coupons:  coupons,
		inbox:    inbox,
		settings: settings,
		kafka:    kafkaClient,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}

	go watchPolicy(settings.Watch(context.Background()))

	return svc
}

// watchPolicy logs booking policy changes for the lifetime of the service so
// operators can correlate rejected dates and slots with settings edits.
func watchPolicy(changes <-chan string) {
	for key := range changes {
		if key == settingsModel.KeyBlackoutWeekdays || key == settingsModel.KeyTimeSlots {
			log.Info().Str("key", key).Msg("booking policy updated")
		}
	}
}

func (s *serviceImpl) policy() draft.Policy {
	booking := s.settings.BookingPolicy()

	return draft.Policy{
		BlackoutWeekdays: booking.BlackoutWeekdays,
		TimeSlots:        booking.TimeSlots,
	}
}

func (s *serviceImpl) loadDraft(ctx context.Context, draftID string) (draft.Draft, error) {
	var d draft.Draft

	if err := s.cache.Get(ctx, shared.BuildCacheKey(model.DraftCachePrefix, draftID), &d); err != nil {
		if errors.Is(err, cache.Nil) {
			return d, failure.NotFound("booking draft not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to load booking draft")

		return d, fmt.Errorf("failed to load booking draft: %w", err)
	}

	return d, nil
}

func (s *serviceImpl) saveDraft(ctx context.Context, draftID string, d draft.Draft) error {
	if err := s.cache.Save(ctx, shared.BuildCacheKey(model.DraftCachePrefix, draftID), d, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking draft")

		return fmt.Errorf("failed to save booking draft: %w", err)
	}

	return nil
}

// draftFailure maps wizard transition errors onto the response taxonomy:
// out-of-order actions conflict, everything else is a bad request.
func draftFailure(err error) error {
	if errors.Is(err, draft.ErrWrongStep) {
		return failure.Conflict(err.Error()) // nolint:wrapcheck
	}

	return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
}

func (s *serviceImpl) Start(ctx context.Context) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartBookingDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	draftID := uuid.NewString()
	d := draft.New()

	if err = s.saveDraft(ctx, draftID, d); err != nil {
		return res, err
	}

	res.FromDraft(draftID, d)

	return res, nil
}

func (s *serviceImpl) GetDraft(ctx context.Context, draftID string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookingDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	d, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return res, err
	}

	res.FromDraft(draftID, d)

	return res, nil
}

func (s *serviceImpl) SelectDate(ctx context.Context, draftID string, req dto.SelectDateRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectBookingDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, draftID, func(d *draft.Draft) error {
		return d.SelectDate(req.Date, timezone.Now(), s.policy())
	})
}

func (s *serviceImpl) SelectTime(ctx context.Context, draftID string, req dto.SelectTimeRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectBookingTime")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, draftID, func(d *draft.Draft) error {
		return d.SelectTime(req.Time, s.policy())
	})
}

func (s *serviceImpl) ChangeDate(ctx context.Context, draftID string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeBookingDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, draftID, func(d *draft.Draft) error {
		return d.ChangeDate()
	})
}

func (s *serviceImpl) SetDetails(ctx context.Context, draftID string, req dto.SetDetailsRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetBookingDetails")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.activeService(ctx, req.ServiceID); err != nil {
		return res, err
	}

	return s.transition(ctx, draftID, func(d *draft.Draft) error {
		return d.SetDetails(req.ServiceID, req.Name, req.Email, req.Phone)
	})
}

// ApplyCoupon validates the code through the coupon ledger and stores the
// snapshot on the draft. Validation misses surface the ledger's collapsed
// error untouched.
func (s *serviceImpl) ApplyCoupon(ctx context.Context, draftID string, req dto.ApplyCouponRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyBookingCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	snapshot, err := s.coupons.Validate(ctx, req.Code)
	if err != nil {
		return res, err
	}

	return s.transition(ctx, draftID, func(d *draft.Draft) error {
		return d.ApplyCoupon(draft.AppliedCoupon{
			ID:              snapshot.ID,
			Code:            snapshot.Code,
			DiscountPercent: snapshot.DiscountPercent,
		})
	})
}

func (s *serviceImpl) RemoveCoupon(ctx context.Context, draftID string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveBookingCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, draftID, func(d *draft.Draft) error {
		d.RemoveCoupon()

		return nil
	})
}

func (s *serviceImpl) Reset(ctx context.Context, draftID string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetBookingDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, draftID, func(d *draft.Draft) error {
		d.Reset()

		return nil
	})
}

func (s *serviceImpl) transition(ctx context.Context, draftID string, apply func(*draft.Draft) error) (res dto.DraftResponse, err error) {
	d, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return res, err
	}

	if err = apply(&d); err != nil {
		return res, draftFailure(err)
	}

	if err = s.saveDraft(ctx, draftID, d); err != nil {
		return res, err
	}

	res.FromDraft(draftID, d)

	return res, nil
}

func (s *serviceImpl) activeService(ctx context.Context, serviceID string) (svcModel.Service, error) {
	service, err := s.services.Get(ctx, shared.FilterByID(serviceID, svcModel.FieldID, svcModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service for booking")

		return service, fmt.Errorf("failed to get service for booking: %w", err)
	}

	if service.ID == constant.Empty || !service.Active {
		return service, failure.BadRequestFromString("service is not available") // nolint:wrapcheck
	}

	return service, nil
}

// Submit turns a complete draft into an inbox row and, when a coupon is
// applied, one redemption. Validation happens before any write; the inbox
// insert is issued first and is not rolled back if the redemption fails
// afterwards. On success the draft resets and the wizard closes.
func (s *serviceImpl) Submit(ctx context.Context, draftID string) (res dto.SubmitBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	d, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return res, err
	}

	if err = d.Validate(); err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if err = d.Revalidate(timezone.Now(), s.policy()); err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	service, err := s.activeService(ctx, d.ServiceID)
	if err != nil {
		return res, err
	}

	finalPrice := computeFinalPrice(service.Price, d.Coupon)
	messageID := uuid.NewString()

	msg := inquiryModel.InboundMessage{
		ID:      messageID,
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Subject: fmt.Sprintf("New booking request: %s", service.Name),
		Body:    composeBody(d, service.Name, finalPrice),
		Source:  inquiryModel.SourceBookingPopup,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  inquiryModel.SourceBookingPopup,
			ModifiedBy: inquiryModel.SourceBookingPopup,
		},
	}

	if err = s.inbox.Record(ctx, msg); err != nil {
		return res, err
	}

	// The booking row is already in; a failed redemption is surfaced without
	// undoing it.
	if d.Coupon != nil {
		if err = s.coupons.Redeem(ctx, d.Coupon.ID); err != nil {
			log.Error().Err(err).Str("messageID", messageID).Msg("booking recorded but coupon redemption failed")

			return res, err
		}
	}

	event := model.SubmittedEvent{
		MessageID:   messageID,
		ServiceID:   service.ID,
		ServiceName: service.Name,
		Date:        d.SelectedDate,
		Time:        d.SelectedTime,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		FinalPrice:  finalPrice,
		SubmittedAt: timezone.Now(),
	}
	if d.Coupon != nil {
		event.CouponCode = d.Coupon.Code
		event.DiscountPercent = d.Coupon.DiscountPercent
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingSubmitted, kafka.Message{
			Key:   messageID,
			Value: event,
		}); err != nil {
			log.Error().Err(err).Str("messageID", messageID).Msg("failed to publish booking event")
		}
	}()

	res = dto.SubmitBookingResponse{
		MessageID:   messageID,
		ServiceName: service.Name,
		Date:        d.SelectedDate,
		Time:        d.SelectedTime,
		FinalPrice:  finalPrice,
	}
	if d.Coupon != nil {
		res.CouponCode = d.Coupon.Code
		res.DiscountPercent = d.Coupon.DiscountPercent
	}

	d.Reset()
	if err = s.saveDraft(ctx, draftID, d); err != nil {
		return res, err
	}

	return res, nil
}

// computeFinalPrice applies the discount to the listed price. A service
// without a price stays unpriced whether or not a coupon is applied.
func computeFinalPrice(price *float64, coupon *draft.AppliedCoupon) *float64 {
	if price == nil {
		return nil
	}

	final := *price
	if coupon != nil {
		final = *price * float64(100-coupon.DiscountPercent) / 100
	}

	return &final
}

func composeBody(d draft.Draft, serviceName string, finalPrice *float64) string {
	body := fmt.Sprintf(
		"Booking request\nService: %s\nDate: %s\nTime: %s\nName: %s\nEmail: %s\nPhone: %s",
		serviceName, d.SelectedDate, d.SelectedTime, d.Name, d.Email, d.Phone,
	)

	if d.Coupon != nil {
		body += fmt.Sprintf("\nCoupon: %s (%d%% off)", d.Coupon.Code, d.Coupon.DiscountPercent)
	}

	if finalPrice != nil {
		body += fmt.Sprintf("\nFinal price: %.2f", *finalPrice)
	}

	return body
}
