package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"fixpoint/config"
	"fixpoint/infras/otel"
	inquiryModel "fixpoint/internal/domains/inquiry/model"
	inquiryRepo "fixpoint/internal/domains/inquiry/repository"
	"fixpoint/internal/domains/payment/model/dto"
	svcModel "fixpoint/internal/domains/service/model"
	svcRepo "fixpoint/internal/domains/service/repository"
	"fixpoint/shared"
	"fixpoint/shared/constant"
	"fixpoint/shared/failure"
	"fixpoint/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

const metadataMessageID = "message_id"

// Payment collects booking deposits through Stripe. A deposit is a configured
// percentage of the service's listed price; unpriced services cannot take one.
type Payment interface {
	CreateDeposit(ctx context.Context, req dto.CreateDepositRequest) (dto.DepositResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type serviceImpl struct {
	stripe   *client.API
	services svcRepo.Service
	inbox    inquiryRepo.Inquiry
	cfg      *config.Config
	otel     otel.Otel
}

func New(services svcRepo.Service, inbox inquiryRepo.Inquiry, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		stripe:   client.New(cfg.External.Stripe.SecretKey, nil),
		services: services,
		inbox:    inbox,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) CreateDeposit(ctx context.Context, req dto.CreateDepositRequest) (res dto.DepositResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateDeposit")
	defer scope.End()
	defer scope.TraceIfError(err)

	service, err := s.services.Get(ctx, shared.FilterByID(req.ServiceID, svcModel.FieldID, svcModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service for deposit")

		return res, fmt.Errorf("failed to get service for deposit: %w", err)
	}

	if service.ID == constant.Empty || !service.Active {
		return res, failure.BadRequestFromString("service is not available") // nolint:wrapcheck
	}

	if service.Price == nil {
		return res, failure.BadRequestFromString("service requires a custom quote, no deposit can be taken") // nolint:wrapcheck
	}

	exists, err := s.inbox.Get(ctx, shared.FilterByID(req.MessageID, inquiryModel.FieldID, inquiryModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking message for deposit")

		return res, fmt.Errorf("failed to get booking message for deposit: %w", err)
	}

	if exists.ID == constant.Empty || exists.Source != inquiryModel.SourceBookingPopup {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	deposit := *service.Price * float64(s.cfg.External.Stripe.DepositPercent) / 100
	amountInCents := int64(deposit * 100)

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountInCents),
		Currency:     stripe.String(s.cfg.External.Stripe.Currency),
		Description:  stripe.String(fmt.Sprintf("Booking deposit: %s", service.Name)),
		ReceiptEmail: stripe.String(req.Email),
		Metadata: map[string]string{
			metadataMessageID: req.MessageID,
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := s.stripe.PaymentIntents.New(params)
	if err != nil {
		log.Error().Err(err).Str("messageID", req.MessageID).Msg("failed to create payment intent")

		return res, fmt.Errorf("failed to create payment intent: %w", err)
	}

	res = dto.DepositResponse{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Amount:          float64(pi.Amount) / 100,
		Currency:        string(pi.Currency),
	}

	return res, nil
}

// HandleWebhook verifies the Stripe signature and, on a succeeded payment
// intent, annotates the referenced booking row so the back office sees the
// deposit came in. Unhandled event types are acknowledged and dropped.
func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleStripeWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := webhook.ConstructEvent(payload, signature, s.cfg.External.Stripe.WebhookSecret)
	if err != nil {
		log.Error().Err(err).Msg("stripe webhook signature verification failed")

		return failure.BadRequestFromString("invalid webhook signature") // nolint:wrapcheck
	}

	if event.Type != stripe.EventTypePaymentIntentSucceeded {
		log.Info().Str("type", string(event.Type)).Msg("ignoring stripe event")

		return nil
	}

	var pi stripe.PaymentIntent
	if err = json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Error().Err(err).Msg("failed to parse payment intent from webhook")

		return fmt.Errorf("failed to parse payment intent from webhook: %w", err)
	}

	messageID := pi.Metadata[metadataMessageID]
	if messageID == constant.Empty {
		log.Warn().Str("paymentIntent", pi.ID).Msg("payment intent carries no booking reference")

		return nil
	}

	filter := shared.FilterByID(messageID, inquiryModel.FieldID, inquiryModel.TableName)

	msg, err := s.inbox.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking message for webhook")

		return fmt.Errorf("failed to get booking message for webhook: %w", err)
	}

	if msg.ID == constant.Empty {
		log.Warn().Str("messageID", messageID).Msg("webhook references unknown booking")

		return nil
	}

	updatedFields := map[string]any{
		inquiryModel.FieldBody:   fmt.Sprintf("%s\nDeposit paid: %.2f %s (%s)", msg.Body, float64(pi.Amount)/100, pi.Currency, pi.ID),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: "stripe_webhook",
	}

	if err = s.inbox.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to annotate booking with deposit")

		return fmt.Errorf("failed to annotate booking with deposit: %w", err)
	}

	return nil
}
