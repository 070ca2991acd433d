package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type OrderCreatedEvent struct {
	OrderNumber string      `json:"order_number"`
	Items       []OrderItem `json:"items"`
}

type PaymentCompletedEvent struct {
	SessionID     string `json:"session_id"`
	OrderNumber   string `json:"order_number,omitempty"`
	CustomerEmail string `json:"customer_email"`
}
