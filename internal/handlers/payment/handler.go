package payment

import (
	"io"
	"net/http"

	"fixpoint/infras/otel"
	"fixpoint/internal/domains/payment/model/dto"
	"fixpoint/internal/domains/payment/service"
	"fixpoint/shared/constant"
	"fixpoint/shared/validator"
	"fixpoint/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/deposit", handler.CreateDeposit)
		routerGroup.Post("/webhook", handler.HandleWebhook)
	})
}

// CreateDeposit creates a payment intent for a booking deposit.
// @Summary Create a booking deposit
// @Description Create a Stripe payment intent covering the deposit for a submitted booking.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateDepositRequest true "Create Deposit Request"
// @Success 201 {object} response.Data[dto.DepositResponse] "Deposit payment intent"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/deposit [post]
func (handler *Handler) CreateDeposit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDeposit")
	defer scope.End()

	req := dto.CreateDepositRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	deposit, err := handler.service.CreateDeposit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create deposit")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Deposit created successfully")

	response.WithJSON(writer, http.StatusCreated, deposit)
}

// HandleWebhook processes Stripe webhook events.
// @Summary Handle Stripe webhook events
// @Description Verify the webhook signature and process the payment event.
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Webhook processed"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook [post]
func (handler *Handler) HandleWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HandleWebhook")
	defer scope.End()

	payload, err := io.ReadAll(io.LimitReader(request.Body, constant.RequestMaxMemory))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook payload")

		response.WithError(writer, err)

		return
	}

	signature := request.Header.Get("Stripe-Signature")

	if err := handler.service.HandleWebhook(ctx, payload, signature); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle webhook")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Webhook processed successfully")

	response.WithMessage(writer, http.StatusOK, "Webhook processed")
}
