package dto

type PaymentItem struct {
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
}

type PaymentRequest struct {
	OrderNumber string        `json:"numeroOrden,omitempty"`
	Items       []PaymentItem `json:"items"`
}

type PaymentResponse struct {
	ID string `json:"id"`
}

// PaymentEvent is a provider-agnostic view of a verified webhook event.
type PaymentEvent struct {
	Type          string
	SessionID     string
	OrderNumber   string
	CustomerEmail string
}

const EventCheckoutCompleted = "checkout.session.completed"
