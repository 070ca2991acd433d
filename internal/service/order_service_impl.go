package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tienda-api/internal/domain"
	"tienda-api/internal/dto"
	"tienda-api/internal/repository"
	"tienda-api/pkg/errs"
)

const (
	paymentEmailSubject = "¡Gracias por tu compra!"
	paymentEmailBody    = "<h1>¡Gracias por tu compra!</h1><p>Tu pago fue procesado con éxito. Pronto recibirás los detalles de tu pedido.</p>"

	publishMaxRetries = 3
)

type OrderServiceImpl struct {
	repo          repository.OrderRepository
	gateway       PaymentGateway
	mailer        Mailer
	publisher     EventPublisher
	paymentExpiry time.Duration
}

func CreateOrderService(repo repository.OrderRepository, gateway PaymentGateway, mailer Mailer, publisher EventPublisher, paymentExpiry time.Duration) OrderService {
	return &OrderServiceImpl{
		repo:          repo,
		gateway:       gateway,
		mailer:        mailer,
		publisher:     publisher,
		paymentExpiry: paymentExpiry,
	}
}

func (s *OrderServiceImpl) AddOrder(ctx context.Context, req dto.OrderRequest) (resp dto.OrderResponse, err error) {
	if req.OrderNumber == "" || len(req.Items) == 0 {
		return resp, errs.ErrClient
	}

	unique := make(map[uint]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return resp, errs.ErrClient
		}
		unique[item.ProductID] = struct{}{}
	}
	productIDs := make([]uint, 0, len(unique))
	for id := range unique {
		productIDs = append(productIDs, id)
	}

	order := domain.Order{
		OrderNumber: req.OrderNumber,
		Status:      domain.StatusCreated,
	}
	for _, item := range req.Items {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	// The existence check and the insert share one transaction so a bad
	// product id leaves no partial order behind.
	var products []domain.Product
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		var err error
		products, err = repo.GetProductsByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return errs.ErrProductNotFound
		}

		return repo.AddOrder(ctx, &order)
	})
	if err != nil {
		return resp, err
	}

	// Attach after the insert; a populated Product on the line would make
	// the ORM upsert the association.
	productsByID := make(map[uint]domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}
	for i := range order.Lines {
		order.Lines[i].Product = productsByID[order.Lines[i].ProductID]
	}

	go s.publishWithRetry("order_created", order.OrderNumber, dto.OrderCreatedEvent{
		OrderNumber: order.OrderNumber,
		Items:       req.Items,
	})

	return orderResponse(order), nil
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context) (data []dto.OrderResponse, err error) {
	orders, err := s.repo.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	data = make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		data = append(data, orderResponse(order))
	}

	return data, nil
}

func (s *OrderServiceImpl) CreateCheckoutSession(ctx context.Context, req dto.PaymentRequest) (resp dto.PaymentResponse, err error) {
	if len(req.Items) == 0 {
		return resp, errs.ErrClient
	}

	sessionID, err := s.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		// Provider errors surface to the caller with their original message.
		return resp, err
	}

	if req.OrderNumber != "" {
		order, err := s.repo.GetOrderByNumber(ctx, req.OrderNumber)
		switch {
		case errors.Is(err, errs.ErrNotFound):
			log.Warn().Str("order_number", req.OrderNumber).Msg("checkout references an unknown order")
		case err != nil:
			return resp, err
		default:
			if err := s.repo.UpdateOrderStatus(ctx, order.ID, domain.StatusPaymentPending); err != nil {
				return resp, err
			}
		}
	}

	return dto.PaymentResponse{ID: sessionID}, nil
}

// HandlePaymentEvent verifies the signed payload and, for a completed
// checkout, marks the referenced order paid and emails the customer. The
// response to the provider waits for the email send; a failure maps to 500 so
// the provider's redelivery acts as the retry.
func (s *OrderServiceImpl) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) (err error) {
	event, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != dto.EventCheckoutCompleted {
		return nil
	}

	if event.OrderNumber != "" {
		order, err := s.repo.GetOrderByNumber(ctx, event.OrderNumber)
		switch {
		case errors.Is(err, errs.ErrNotFound):
			log.Warn().Str("order_number", event.OrderNumber).Msg("payment event references an unknown order")
		case err != nil:
			return err
		default:
			if err := s.repo.UpdateOrderStatus(ctx, order.ID, domain.StatusPaid); err != nil {
				return err
			}
		}
	}

	if event.CustomerEmail == "" {
		log.Warn().Str("session_id", event.SessionID).Msg("completed session carries no customer email")
		return nil
	}

	if err := s.mailer.Send(event.CustomerEmail, paymentEmailSubject, paymentEmailBody); err != nil {
		log.Error().Err(err).Str("component", "HandlePaymentEvent").Msg("")
		return fmt.Errorf("%w: %v", errs.ErrNotificationFailure, err)
	}

	go s.publishWithRetry("payment_completed", event.SessionID, dto.PaymentCompletedEvent{
		SessionID:     event.SessionID,
		OrderNumber:   event.OrderNumber,
		CustomerEmail: event.CustomerEmail,
	})

	return nil
}

// ExpireStalePayments moves payment_pending orders past the configured window
// to expired. Runs on the scheduler.
func (s *OrderServiceImpl) ExpireStalePayments() {
	ctx := context.Background()

	orders, err := s.repo.GetStalePaymentOrders(ctx, time.Now().Add(-s.paymentExpiry))
	if err != nil {
		log.Error().Err(err).Str("component", "ExpireStalePayments").Msg("")
		return
	}

	for _, order := range orders {
		if err := s.repo.UpdateOrderStatus(ctx, order.ID, domain.StatusExpired); err != nil {
			log.Error().Err(err).Str("component", "ExpireStalePayments").Msg("")
			return
		}
		log.Info().Str("order_number", order.OrderNumber).Msg("payment window expired")
	}
}

// publishWithRetry emits a broker event with backoff. Publishing is
// best-effort: callers fire it off the request path, and exhausted retries
// are logged, never surfaced.
func (s *OrderServiceImpl) publishWithRetry(eventType, key string, data interface{}) {
	var err error
	for i := 0; i < publishMaxRetries; i++ {
		if err = s.publisher.Publish(eventType, key, data); err == nil {
			return
		}
		if i < publishMaxRetries-1 {
			time.Sleep(time.Second * time.Duration(i+1))
		}
	}

	log.Error().Err(err).Str("event_type", eventType).Msgf("failed to publish event after %d attempts", publishMaxRetries)
}

func orderResponse(order domain.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Lines:       make([]dto.OrderLineResponse, 0, len(order.Lines)),
		CreatedAt:   order.CreatedAt,
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.Product.Name,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
		})
	}

	return resp
}
