package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"tienda-api/config"
	circuitbreaker "tienda-api/internal/infrastructure/circuit-breaker"
	"tienda-api/internal/dto"
	"tienda-api/pkg/errs"
)

// StripeGateway creates hosted checkout sessions and verifies webhook
// signatures. The API client is an injected handle, not a package-level
// singleton; session creation runs behind a circuit breaker.
type StripeGateway struct {
	client        *client.API
	breaker       *gobreaker.CircuitBreaker[*stripe.CheckoutSession]
	webhookSecret string
	successURL    string
	cancelURL     string
	currency      string
}

func CreateStripeGateway(cfg config.StripeConfig) *StripeGateway {
	httpClient := &http.Client{
		Timeout:   15 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, stripe.NewBackends(httpClient))

	return &StripeGateway{
		client:        api,
		breaker:       circuitbreaker.CreateCircuitBreaker[*stripe.CheckoutSession]("stripe-checkout"),
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		currency:      cfg.Currency,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req dto.PaymentRequest) (sessionID string, err error) {
	params := g.sessionParams(req)
	params.Context = ctx

	sess, err := g.breaker.Execute(func() (*stripe.CheckoutSession, error) {
		return g.client.CheckoutSessions.New(params)
	})
	if err != nil {
		return "", err
	}

	return sess.ID, nil
}

func (g *StripeGateway) sessionParams(req dto.PaymentRequest) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(req.Items))
	for i, item := range req.Items {
		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(g.currency),
				UnitAmount: stripe.Int64(minorUnits(item.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
		LineItems:          lineItems,
	}
	if req.OrderNumber != "" {
		params.ClientReferenceID = stripe.String(req.OrderNumber)
	}

	return params
}

// ParseEvent verifies the signature header over the raw payload and maps the
// event into a provider-agnostic shape. Verification fails closed.
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (event dto.PaymentEvent, err error) {
	stripeEvent, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return event, fmt.Errorf("%w: %v", errs.ErrInvalidSignature, err)
	}

	event.Type = string(stripeEvent.Type)

	if event.Type == dto.EventCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &sess); err != nil {
			return event, fmt.Errorf("%w: malformed session payload: %v", errs.ErrClient, err)
		}

		event.SessionID = sess.ID
		event.OrderNumber = sess.ClientReferenceID
		event.CustomerEmail = sess.CustomerEmail
		if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
			event.CustomerEmail = sess.CustomerDetails.Email
		}
	}

	return event, nil
}

// minorUnits converts a major-unit price to the provider's smallest
// denomination (price × 100).
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
