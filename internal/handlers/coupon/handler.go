package coupon

import (
	"net/http"

	"fixpoint/infras/otel"
	"fixpoint/internal/domains/coupon/model"
	"fixpoint/internal/domains/coupon/model/dto"
	"fixpoint/internal/domains/coupon/service"
	"fixpoint/shared"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
	"fixpoint/shared/validator"
	"fixpoint/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Coupon
	otel    otel.Otel
}

func New(service service.Coupon, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/coupons", func(routerGroup chi.Router) {
		routerGroup.Post("/validate", handler.ValidateCoupon)
		routerGroup.Post("/", handler.CreateCoupon)
		routerGroup.Get("/", handler.GetCoupons)
		routerGroup.Get("/{id}", handler.GetCouponByID)
		routerGroup.Patch("/{id}", handler.UpdateCoupon)
		routerGroup.Patch("/{id}/active", handler.SetCouponActive)
		routerGroup.Delete("/{id}", handler.DeleteCoupon)
	})
}

// ValidateCoupon checks a code against the ledger.
// @Summary Validate a coupon code
// @Description Validate a user-entered coupon code and return its discount snapshot.
// @Tags Coupon
// @Accept json
// @Produce json
// @Param request body dto.ValidateCouponRequest true "Validate Coupon Request"
// @Success 200 {object} response.Data[dto.CouponSnapshot] "Coupon snapshot"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/validate [post]
func (handler *Handler) ValidateCoupon(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidateCoupon")
	defer scope.End()

	req := dto.ValidateCouponRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	snapshot, err := handler.service.Validate(ctx, req.Code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate coupon")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Coupon validated successfully")

	response.WithJSON(writer, http.StatusOK, snapshot)
}

// CreateCoupon handles the creation of a new coupon.
// @Summary Create a new coupon
// @Description Create a new coupon with the provided details.
// @Tags Coupon
// @Accept json
// @Produce json
// @Param request body dto.CreateCouponRequest true "Create Coupon Request"
// @Success 201 {object} response.Message "Coupon created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons [post]
// @Security BearerAuth
func (handler *Handler) CreateCoupon(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCoupon")
	defer scope.End()

	req := dto.CreateCouponRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create coupon")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Coupon created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Coupon created successfully")
}

// GetCoupons retrieves all coupons based on query parameters.
// @Summary Get all coupons
// @Description Retrieve all coupons with optional filtering and pagination.
// @Tags Coupon
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by code"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetCouponsResponse] "List of coupons"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons [get]
// @Security BearerAuth
func (handler *Handler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCoupons")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	code := r.URL.Query().Get(model.FieldCode)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorLike,
				Value:    code,
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	coupons, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get coupons")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Coupons retrieved successfully")

	response.WithJSON(w, http.StatusOK, coupons)
}

// GetCouponByID retrieves a coupon by its ID.
// @Summary Get a coupon by ID
// @Description Retrieve a coupon by its unique identifier.
// @Tags Coupon
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} response.Data[dto.CouponResponse] "Coupon details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCouponByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCouponByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	coupon, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get coupon by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Coupon retrieved successfully")

	response.WithJSON(w, http.StatusOK, coupon)
}

// UpdateCoupon updates an existing coupon by its ID.
// @Summary Update a coupon by ID
// @Description Update the details of an existing coupon.
// @Tags Coupon
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body dto.UpdateCouponRequest true "Update Coupon Request"
// @Success 200 {object} response.Message "Coupon updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCoupon")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCouponRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update coupon")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Coupon updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Coupon updated successfully")
}

// SetCouponActive toggles a coupon's active flag.
// @Summary Toggle a coupon's active flag
// @Description Activate or deactivate a coupon without touching its other fields.
// @Tags Coupon
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body dto.SetActiveRequest true "Set Active Request"
// @Success 200 {object} response.Message "Coupon toggled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id}/active [patch]
// @Security BearerAuth
func (handler *Handler) SetCouponActive(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetCouponActive")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetActiveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetActive(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle coupon")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Coupon toggled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Coupon toggled successfully")
}

// DeleteCoupon deletes a coupon by its ID.
// @Summary Delete a coupon by ID
// @Description Delete a coupon using its unique identifier.
// @Tags Coupon
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} response.Message "Coupon deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCoupon")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete coupon")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Coupon deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Coupon deleted successfully")
}
