package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"fixpoint/config"
	"fixpoint/infras/otel"
	"fixpoint/internal/domains/coupon/model"
	"fixpoint/internal/domains/coupon/model/dto"
	"fixpoint/internal/domains/coupon/repository"
	"fixpoint/shared"
	"fixpoint/shared/cache"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
	"fixpoint/shared/failure"
	"fixpoint/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCoupon    = "coupon:get"
	cacheGetAllCoupon = "coupon:gets"
	cacheCountCoupon  = "coupon:count"

	// msgCouponInvalid deliberately covers every lookup miss (unknown code,
	// inactive, outside the validity window) so callers cannot probe which
	// codes exist.
	msgCouponInvalid      = "invalid or expired coupon code"
	msgCouponLimitReached = "coupon usage limit reached"
)

type Coupon interface {
	Validate(ctx context.Context, code string) (dto.CouponSnapshot, error)
	Redeem(ctx context.Context, id string) error
	Create(ctx context.Context, req dto.CreateCouponRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCouponsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CouponResponse, error)
	Update(ctx context.Context, req dto.UpdateCouponRequest, id string) error
	SetActive(ctx context.Context, req dto.SetActiveRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Coupon
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Coupon, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Coupon {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Validate resolves a code to a redeemable coupon. The lookup already folds in
// the active flag and validity window, so a miss yields one generic error
// regardless of why the code failed. Usage-cap exhaustion is the only failure
// reported separately. Results are never cached: CurrentUses must be fresh for
// the caller's cap decision.
func (s *serviceImpl) Validate(ctx context.Context, code string) (res dto.CouponSnapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Value:    strings.ToUpper(strings.TrimSpace(code)),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldIsActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "valid_from_bound",
				Field:    model.FieldValidFrom,
				Value:    now,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "valid_until_bound",
				Field:    model.FieldValidUntil,
				Value:    now,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}

	coupon, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up coupon")

		return res, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if coupon.ID == constant.Empty {
		return res, failure.BadRequestFromString(msgCouponInvalid) // nolint:wrapcheck
	}

	if coupon.LimitReached() {
		return res, failure.Conflict(msgCouponLimitReached) // nolint:wrapcheck
	}

	res.FromModel(coupon)

	return res, nil
}

// Redeem consumes one use of the coupon. The increment is conditional on the
// cap in a single statement, so two concurrent redemptions of the last slot
// cannot both succeed.
func (s *serviceImpl) Redeem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RedeemCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	ok, err := s.repo.IncrementUses(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to redeem coupon")

		return fmt.Errorf("failed to redeem coupon: %w", err)
	}

	if !ok {
		return failure.Conflict(msgCouponLimitReached) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCoupon, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete coupon cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCoupon)
	}()

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCouponRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	coupon, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("invalid coupon validity date")

		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if coupon.ValidUntil.Before(coupon.ValidFrom) {
		return failure.BadRequestFromString("valid_until must not precede valid_from") // nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, s.filterByCode(coupon.Code))
	if err != nil {
		log.Error().Err(err).Msg("failed to check coupon code uniqueness")

		return fmt.Errorf("failed to check coupon code uniqueness: %w", err)
	}

	if exists {
		return failure.Conflict("coupon code already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, coupon); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCoupon)
		shared.InvalidateCaches(c, s.cache, cacheCountCoupon)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCouponsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCoupons")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCoupon, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for coupons")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count coupons")

		return res, fmt.Errorf("failed to count coupons: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get coupons")

		return res, fmt.Errorf("failed to get coupons: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save coupons to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountCoupons")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCoupon, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for coupon count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count coupons")

		return res, fmt.Errorf("failed to count coupons: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save coupon count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CouponResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCoupon, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for coupon")

		return res, nil
	}

	coupon, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get coupon")

		return res, fmt.Errorf("failed to get coupon: %w", err)
	}

	if coupon.ID == constant.Empty {
		return res, failure.NotFound("coupon not found") // nolint:wrapcheck
	}

	res.FromModel(coupon)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save coupon to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCouponRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check coupon existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("coupon not found")

		return failure.NotFound("coupon not found")
	}

	updatedFields := shared.TransformFields(req, user)

	// Validity bounds travel as strings so parse failures surface as 400s.
	if req.ValidFrom != constant.Empty {
		validFrom, err := timezone.Parse(constant.DateFormat, req.ValidFrom)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}
		updatedFields[model.FieldValidFrom] = validFrom
	}

	if req.ValidUntil != constant.Empty {
		validUntil, err := timezone.Parse(constant.DateFormat, req.ValidUntil)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}
		updatedFields[model.FieldValidUntil] = validUntil
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update coupon")

		return fmt.Errorf("failed to update coupon: %w", err)
	}

	s.invalidateAfterWrite(ctx, current.ID)

	return nil
}

func (s *serviceImpl) SetActive(ctx context.Context, req dto.SetActiveRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetCouponActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check coupon existence")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("coupon not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldIsActive:      *req.IsActive,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to toggle coupon")

		return fmt.Errorf("failed to toggle coupon: %w", err)
	}

	s.invalidateAfterWrite(ctx, current.ID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check coupon existence")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("coupon not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete coupon")

		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	s.invalidateAfterWrite(ctx, current.ID)

	return nil
}

func (s *serviceImpl) filterByCode(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Value:    code,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) invalidateAfterWrite(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCoupon, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete coupon cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCoupon)
		shared.InvalidateCaches(c, s.cache, cacheCountCoupon)
	}()
}
