package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fixpoint/config"
	"fixpoint/infras/otel"
	"fixpoint/internal/domains/settings/model"
	"fixpoint/internal/domains/settings/model/dto"
	"fixpoint/internal/domains/settings/repository"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
	"fixpoint/shared/failure"
	"fixpoint/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Settings is the single site-configuration surface. All reads come from an
// in-memory snapshot kept current by Load and Upsert; consumers that need to
// react to changes subscribe via Watch instead of polling the table.
type Settings interface {
	Load(ctx context.Context) error
	Value(key string) (string, bool)
	Values(key string) []string
	BookingPolicy() dto.BookingPolicyResponse
	Watch(ctx context.Context) <-chan string
	GetAll(ctx context.Context) (dto.GetSettingsResponse, error)
	Upsert(ctx context.Context, req dto.UpsertSettingRequest) error
	Delete(ctx context.Context, key string) error
}

type serviceImpl struct {
	repo repository.Settings
	cfg  *config.Config
	otel otel.Otel

	mu       sync.RWMutex
	values   map[string]string
	watchers []chan string
}

func New(repo repository.Settings, cfg *config.Config, otel otel.Otel) Settings {
	svc := &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		otel:   otel,
		values: map[string]string{},
	}

	if err := svc.Load(context.Background()); err != nil {
		log.Warn().Err(err).Msg("serving config defaults until settings load succeeds")
	}

	return svc
}

// Load replaces the in-memory snapshot with the table contents. Called once
// at startup and again after every write.
func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LoadSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return fmt.Errorf("failed to load settings: %w", err)
	}

	fresh := make(map[string]string, len(models))
	for _, mod := range models {
		fresh[mod.Key] = mod.Value
	}

	s.mu.Lock()
	s.values = fresh
	s.mu.Unlock()

	log.Info().Int("count", len(fresh)).Msg("settings loaded")

	return nil
}

func (s *serviceImpl) Value(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]

	return value, ok
}

// Values splits a comma-separated setting into trimmed items.
func (s *serviceImpl) Values(key string) []string {
	raw, ok := s.Value(key)
	if !ok || raw == constant.Empty {
		return nil
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != constant.Empty {
			items = append(items, trimmed)
		}
	}

	return items
}

// BookingPolicy resolves the booking constraints, falling back to the config
// defaults when the table has no override.
func (s *serviceImpl) BookingPolicy() dto.BookingPolicyResponse {
	blackout := s.Values(model.KeyBlackoutWeekdays)
	if blackout == nil {
		blackout = s.cfg.Booking.BlackoutWeekdays
	}

	slots := s.Values(model.KeyTimeSlots)
	if slots == nil {
		slots = s.cfg.Booking.TimeSlots
	}

	return dto.BookingPolicyResponse{
		BlackoutWeekdays: blackout,
		TimeSlots:        slots,
	}
}

// Watch returns a channel that receives the key of every changed setting
// until ctx is done, at which point the subscription is removed and the
// channel closed. Slow consumers drop notifications rather than block
// writers.
func (s *serviceImpl) Watch(ctx context.Context) <-chan string {
	ch := make(chan string, 16)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		for i, watcher := range s.watchers {
			if watcher == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)

				break
			}
		}
		s.mu.Unlock()

		close(ch)
	}()

	return ch
}

func (s *serviceImpl) notify(key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.watchers {
		select {
		case ch <- key:
		default:
		}
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetSettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldKey, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return res, fmt.Errorf("failed to get settings: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertSettingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertSetting")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := s.filterByKey(req.Key)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check setting existence")

		return fmt.Errorf("failed to check setting existence: %w", err)
	}

	if exists {
		err = s.repo.Update(ctx, map[string]any{
			model.FieldValue:         req.Value,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, filter)
	} else {
		err = s.repo.Insert(ctx, req.ToModel(user))
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to upsert setting")

		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	s.mu.Lock()
	s.values[req.Key] = req.Value
	s.mu.Unlock()

	s.notify(req.Key)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteSetting")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := s.filterByKey(key)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check setting existence")

		return fmt.Errorf("failed to check setting existence: %w", err)
	}

	if !exists {
		return failure.NotFound("setting not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete setting")

		return fmt.Errorf("failed to delete setting: %w", err)
	}

	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()

	s.notify(key)

	return nil
}

func (s *serviceImpl) filterByKey(key string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldKey,
				Value:    key,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
