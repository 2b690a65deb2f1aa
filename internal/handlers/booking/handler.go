package booking

import (
	"net/http"

	"fixpoint/infras/otel"
	"fixpoint/internal/domains/booking/model/dto"
	"fixpoint/internal/domains/booking/service"
	"fixpoint/shared/constant"
	"fixpoint/shared/validator"
	"fixpoint/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings/drafts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartDraft)
		routerGroup.Get("/{id}", handler.GetDraft)
		routerGroup.Post("/{id}/date", handler.SelectDate)
		routerGroup.Post("/{id}/time", handler.SelectTime)
		routerGroup.Post("/{id}/change-date", handler.ChangeDate)
		routerGroup.Post("/{id}/details", handler.SetDetails)
		routerGroup.Post("/{id}/coupon", handler.ApplyCoupon)
		routerGroup.Delete("/{id}/coupon", handler.RemoveCoupon)
		routerGroup.Post("/{id}/reset", handler.ResetDraft)
		routerGroup.Post("/{id}/submit", handler.SubmitDraft)
	})
}

// StartDraft opens a fresh booking draft.
// @Summary Start a booking draft
// @Description Open a new booking draft at the date step and return its ID.
// @Tags Booking
// @Accept json
// @Produce json
// @Success 201 {object} response.Data[dto.DraftResponse] "New draft"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts [post]
func (handler *Handler) StartDraft(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartDraft")
	defer scope.End()

	draft, err := handler.service.Start(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start booking draft")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking draft started successfully")

	response.WithJSON(writer, http.StatusCreated, draft)
}

// GetDraft returns the current state of a booking draft.
// @Summary Get a booking draft
// @Description Retrieve the current wizard state of a booking draft.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id} [get]
func (handler *Handler) GetDraft(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDraft")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	draft, err := handler.service.GetDraft(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking draft")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking draft retrieved successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// SelectDate records the appointment date on a draft.
// @Summary Select the appointment date
// @Description Record the appointment date and advance the draft to the time step.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.SelectDateRequest true "Select Date Request"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/date [post]
func (handler *Handler) SelectDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectDate")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.SelectDateRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	draft, err := handler.service.SelectDate(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to select booking date")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking date selected successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// SelectTime records the appointment time slot on a draft.
// @Summary Select the appointment time slot
// @Description Record the time slot and advance the draft to the details step.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.SelectTimeRequest true "Select Time Request"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/time [post]
func (handler *Handler) SelectTime(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectTime")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.SelectTimeRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	draft, err := handler.service.SelectTime(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to select booking time")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking time selected successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// ChangeDate sends the draft back to the date step.
// @Summary Go back to the date step
// @Description Clear the selected date and time and return the draft to the date step. Contact details and any applied coupon are kept.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/change-date [post]
func (handler *Handler) ChangeDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeDate")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	draft, err := handler.service.ChangeDate(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change booking date")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking draft returned to date step successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// SetDetails records the customer's service and contact details.
// @Summary Set the booking details
// @Description Record the requested service and the customer's contact details on the draft.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.SetDetailsRequest true "Set Details Request"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/details [post]
func (handler *Handler) SetDetails(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetDetails")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.SetDetailsRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	draft, err := handler.service.SetDetails(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set booking details")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking details set successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// ApplyCoupon validates a coupon code and attaches it to the draft.
// @Summary Apply a coupon to a booking draft
// @Description Validate the coupon code and attach its discount snapshot to the draft.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.ApplyCouponRequest true "Apply Coupon Request"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/coupon [post]
func (handler *Handler) ApplyCoupon(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyCoupon")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.ApplyCouponRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	draft, err := handler.service.ApplyCoupon(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply coupon to booking draft")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Coupon applied to booking draft successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// RemoveCoupon detaches the coupon from the draft.
// @Summary Remove the coupon from a booking draft
// @Description Detach the applied coupon from the draft without touching the ledger.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/coupon [delete]
func (handler *Handler) RemoveCoupon(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveCoupon")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	draft, err := handler.service.RemoveCoupon(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove coupon from booking draft")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Coupon removed from booking draft successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// ResetDraft wipes a draft back to an empty date step.
// @Summary Reset a booking draft
// @Description Discard everything on the draft and return it to an empty date step.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/reset [post]
func (handler *Handler) ResetDraft(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetDraft")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	draft, err := handler.service.Reset(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset booking draft")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking draft reset successfully")

	response.WithJSON(writer, http.StatusOK, draft)
}

// SubmitDraft turns a completed draft into a booking request.
// @Summary Submit a booking draft
// @Description Validate the completed draft, record it as an inbound message, redeem the applied coupon and reset the draft.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Success 201 {object} response.Data[dto.SubmitBookingResponse] "Submitted booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/drafts/{id}/submit [post]
func (handler *Handler) SubmitDraft(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitDraft")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.Submit(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit booking draft")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking draft submitted successfully")

	response.WithJSON(writer, http.StatusCreated, booking)
}
