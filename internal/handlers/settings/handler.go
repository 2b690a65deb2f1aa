package settings

import (
	"net/http"

	"fixpoint/infras/otel"
	"fixpoint/internal/domains/settings/model/dto"
	"fixpoint/internal/domains/settings/service"
	"fixpoint/shared/constant"
	"fixpoint/shared/validator"
	"fixpoint/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Settings
	otel    otel.Otel
}

func New(service service.Settings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Put("/", handler.UpsertSetting)
		routerGroup.Delete("/{key}", handler.DeleteSetting)
	})
	router.Get("/booking-policy", handler.GetBookingPolicy)
}

// GetSettings retrieves all site settings.
// @Summary Get all site settings
// @Description Retrieve every stored site setting.
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetSettingsResponse] "List of settings"
// @Failure 500 {object} response.Error
// @Router /v1/settings [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Settings retrieved successfully")

	response.WithJSON(w, http.StatusOK, settings)
}

// UpsertSetting creates or replaces a site setting.
// @Summary Upsert a site setting
// @Description Create a site setting or replace the value of an existing one.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpsertSettingRequest true "Upsert Setting Request"
// @Success 200 {object} response.Message "Setting saved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings [put]
// @Security BearerAuth
func (handler *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertSetting")
	defer scope.End()

	req := dto.UpsertSettingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Upsert(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert setting")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Setting saved successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Setting saved successfully")
}

// DeleteSetting deletes a site setting by its key.
// @Summary Delete a site setting
// @Description Delete a site setting using its key.
// @Tags Settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Message "Setting deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{key} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSetting")
	defer scope.End()

	key := chi.URLParam(r, "key")

	if err := handler.service.Delete(ctx, key); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete setting")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Setting deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Setting deleted successfully")
}

// GetBookingPolicy returns the public booking policy.
// @Summary Get the booking policy
// @Description Retrieve the blackout weekdays and offered time slots used by the booking wizard.
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.BookingPolicyResponse] "Booking policy"
// @Failure 500 {object} response.Error
// @Router /v1/booking-policy [get]
func (handler *Handler) GetBookingPolicy(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingPolicy")
	defer scope.End()

	policy := handler.service.BookingPolicy()

	scope.AddEvent("Booking policy retrieved successfully")

	response.WithJSON(w, http.StatusOK, policy)
}
