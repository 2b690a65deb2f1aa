package dto

type CreateDepositRequest struct {
	MessageID string `json:"message_id" validate:"required,uuid4"`
	ServiceID string `json:"service_id" validate:"required,uuid4"`
	Email     string `json:"email"      validate:"required,email,max=254"`
}

type DepositResponse struct {
	PaymentIntentID string  `json:"payment_intent_id"`
	ClientSecret    string  `json:"client_secret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}
