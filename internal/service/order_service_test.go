package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda-api/internal/domain"
	"tienda-api/internal/dto"
	"tienda-api/internal/repository"
	"tienda-api/pkg/errs"
)

type fakeOrderRepository struct {
	products     map[uint]domain.Product
	orders       []domain.Order
	staleOrders  []domain.Order
	statusByID   map[uint]domain.OrderStatus
	addOrderErr  error
	trxRollbacks int
}

func newFakeOrderRepository(products ...domain.Product) *fakeOrderRepository {
	r := &fakeOrderRepository{
		products:   map[uint]domain.Product{},
		statusByID: map[uint]domain.OrderStatus{},
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeOrderRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.OrderRepository) error) error {
	ordersBefore := len(r.orders)
	if err := fn(ctx, r); err != nil {
		r.orders = r.orders[:ordersBefore]
		r.trxRollbacks++
		return err
	}
	return nil
}

func (r *fakeOrderRepository) AddOrder(ctx context.Context, data *domain.Order) error {
	if r.addOrderErr != nil {
		return r.addOrderErr
	}
	data.ID = uint(len(r.orders) + 1)
	r.orders = append(r.orders, *data)
	return nil
}

func (r *fakeOrderRepository) GetOrders(ctx context.Context) ([]domain.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return domain.Order{}, errs.ErrNotFound
}

func (r *fakeOrderRepository) GetProductsByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	var data []domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			data = append(data, p)
		}
	}
	return data, nil
}

func (r *fakeOrderRepository) UpdateOrderStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	r.statusByID[id] = status
	return nil
}

func (r *fakeOrderRepository) GetStalePaymentOrders(ctx context.Context, olderThan time.Time) ([]domain.Order, error) {
	return r.staleOrders, nil
}

type fakeGateway struct {
	sessionID  string
	createErr  error
	event      dto.PaymentEvent
	parseErr   error
	createdReq dto.PaymentRequest
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req dto.PaymentRequest) (string, error) {
	g.createdReq = req
	if g.createErr != nil {
		return "", g.createErr
	}
	return g.sessionID, nil
}

func (g *fakeGateway) ParseEvent(payload []byte, signature string) (dto.PaymentEvent, error) {
	if g.parseErr != nil {
		return dto.PaymentEvent{}, g.parseErr
	}
	return g.event, nil
}

type fakeMailer struct {
	sent    []string
	subject string
	err     error
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.subject = subject
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	failures int
	attempts int
	recorded []string
}

func (p *fakePublisher) Publish(eventType, key string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts++
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	p.recorded = append(p.recorded, eventType)
	return nil
}

func (p *fakePublisher) events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.recorded...)
}

func newOrderService(repo repository.OrderRepository, gateway PaymentGateway, mailer Mailer, publisher EventPublisher) OrderService {
	return CreateOrderService(repo, gateway, mailer, publisher, 30*time.Minute)
}

func TestAddOrder(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Remera", Price: 10},
		{ID: 2, Name: "Gorra", Price: 5.5},
	}

	testCases := []struct {
		name        string
		request     dto.OrderRequest
		expectedErr error
		wantOrders  int
	}{
		{
			name: "valid order keeps every line and quantity",
			request: dto.OrderRequest{
				OrderNumber: "ORD-100",
				Items: []dto.OrderItem{
					{ProductID: 1, Quantity: 2},
					{ProductID: 2, Quantity: 7},
				},
			},
			wantOrders: 1,
		},
		{
			name: "unknown product creates nothing",
			request: dto.OrderRequest{
				OrderNumber: "ORD-101",
				Items: []dto.OrderItem{
					{ProductID: 1, Quantity: 1},
					{ProductID: 99, Quantity: 1},
				},
			},
			expectedErr: errs.ErrProductNotFound,
		},
		{
			name:        "missing order number",
			request:     dto.OrderRequest{Items: []dto.OrderItem{{ProductID: 1, Quantity: 1}}},
			expectedErr: errs.ErrClient,
		},
		{
			name:        "empty items",
			request:     dto.OrderRequest{OrderNumber: "ORD-102"},
			expectedErr: errs.ErrClient,
		},
		{
			name: "non-positive quantity",
			request: dto.OrderRequest{
				OrderNumber: "ORD-103",
				Items:       []dto.OrderItem{{ProductID: 1, Quantity: 0}},
			},
			expectedErr: errs.ErrClient,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeOrderRepository(products...)
			publisher := &fakePublisher{}
			svc := newOrderService(repo, &fakeGateway{}, &fakeMailer{}, publisher)

			resp, err := svc.AddOrder(context.Background(), tc.request)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				assert.Empty(t, repo.orders)
				assert.Empty(t, publisher.events())
				return
			}

			require.NoError(t, err)
			require.Len(t, repo.orders, tc.wantOrders)
			assert.Equal(t, tc.request.OrderNumber, resp.OrderNumber)
			assert.Equal(t, string(domain.StatusCreated), resp.Status)
			require.Len(t, resp.Lines, len(tc.request.Items))
			for i, item := range tc.request.Items {
				assert.Equal(t, item.ProductID, resp.Lines[i].ProductID)
				assert.Equal(t, item.Quantity, resp.Lines[i].Quantity)
				assert.Equal(t, repo.products[item.ProductID].Name, resp.Lines[i].ProductName)
				assert.Equal(t, repo.products[item.ProductID].Price, resp.Lines[i].Price)
			}
			assert.Eventually(t, func() bool {
				return len(publisher.events()) == 1 && publisher.events()[0] == "order_created"
			}, 2*time.Second, 10*time.Millisecond)
		})
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	t.Run("returns the provider session id", func(t *testing.T) {
		repo := newFakeOrderRepository()
		gateway := &fakeGateway{sessionID: "cs_test_123"}
		svc := newOrderService(repo, gateway, &fakeMailer{}, &fakePublisher{})

		resp, err := svc.CreateCheckoutSession(context.Background(), dto.PaymentRequest{
			Items: []dto.PaymentItem{{Name: "A", Price: 10}},
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", resp.ID)
	})

	t.Run("provider errors surface verbatim", func(t *testing.T) {
		gateway := &fakeGateway{createErr: errors.New("Invalid positive integer")}
		svc := newOrderService(newFakeOrderRepository(), gateway, &fakeMailer{}, &fakePublisher{})

		_, err := svc.CreateCheckoutSession(context.Background(), dto.PaymentRequest{
			Items: []dto.PaymentItem{{Name: "A", Price: -1}},
		})

		require.Error(t, err)
		assert.Equal(t, "Invalid positive integer", err.Error())
	})

	t.Run("empty items rejected before calling the provider", func(t *testing.T) {
		gateway := &fakeGateway{sessionID: "cs_test_123"}
		svc := newOrderService(newFakeOrderRepository(), gateway, &fakeMailer{}, &fakePublisher{})

		_, err := svc.CreateCheckoutSession(context.Background(), dto.PaymentRequest{})

		require.ErrorIs(t, err, errs.ErrClient)
		assert.Empty(t, gateway.createdReq.Items)
	})

	t.Run("referenced order moves to payment_pending", func(t *testing.T) {
		repo := newFakeOrderRepository(domain.Product{ID: 1, Name: "Remera", Price: 10})
		svc := newOrderService(repo, &fakeGateway{sessionID: "cs_test_123"}, &fakeMailer{}, &fakePublisher{})

		_, err := svc.AddOrder(context.Background(), dto.OrderRequest{
			OrderNumber: "ORD-200",
			Items:       []dto.OrderItem{{ProductID: 1, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = svc.CreateCheckoutSession(context.Background(), dto.PaymentRequest{
			OrderNumber: "ORD-200",
			Items:       []dto.PaymentItem{{Name: "Remera", Price: 10}},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaymentPending, repo.statusByID[1])
	})
}

func TestHandlePaymentEvent(t *testing.T) {
	t.Run("verification failure sends nothing", func(t *testing.T) {
		mailer := &fakeMailer{}
		gateway := &fakeGateway{parseErr: fmt.Errorf("%w: signature mismatch", errs.ErrInvalidSignature)}
		svc := newOrderService(newFakeOrderRepository(), gateway, mailer, &fakePublisher{})

		err := svc.HandlePaymentEvent(context.Background(), []byte("{}"), "bad")

		require.ErrorIs(t, err, errs.ErrInvalidSignature)
		assert.Empty(t, mailer.sent)
	})

	t.Run("completed checkout emails the customer once", func(t *testing.T) {
		mailer := &fakeMailer{}
		publisher := &fakePublisher{}
		gateway := &fakeGateway{event: dto.PaymentEvent{
			Type:          dto.EventCheckoutCompleted,
			SessionID:     "cs_test_123",
			CustomerEmail: "cliente@example.com",
		}}
		svc := newOrderService(newFakeOrderRepository(), gateway, mailer, publisher)

		err := svc.HandlePaymentEvent(context.Background(), []byte("{}"), "sig")

		require.NoError(t, err)
		assert.Equal(t, []string{"cliente@example.com"}, mailer.sent)
		assert.Eventually(t, func() bool {
			return len(publisher.events()) == 1 && publisher.events()[0] == "payment_completed"
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("unhandled event types are accepted and ignored", func(t *testing.T) {
		mailer := &fakeMailer{}
		gateway := &fakeGateway{event: dto.PaymentEvent{Type: "invoice.paid"}}
		svc := newOrderService(newFakeOrderRepository(), gateway, mailer, &fakePublisher{})

		err := svc.HandlePaymentEvent(context.Background(), []byte("{}"), "sig")

		require.NoError(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("referenced order marked paid", func(t *testing.T) {
		repo := newFakeOrderRepository(domain.Product{ID: 1, Name: "Remera", Price: 10})
		svc := newOrderService(repo, &fakeGateway{event: dto.PaymentEvent{
			Type:          dto.EventCheckoutCompleted,
			SessionID:     "cs_test_123",
			OrderNumber:   "ORD-300",
			CustomerEmail: "cliente@example.com",
		}}, &fakeMailer{}, &fakePublisher{})

		_, err := svc.AddOrder(context.Background(), dto.OrderRequest{
			OrderNumber: "ORD-300",
			Items:       []dto.OrderItem{{ProductID: 1, Quantity: 1}},
		})
		require.NoError(t, err)

		err = svc.HandlePaymentEvent(context.Background(), []byte("{}"), "sig")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, repo.statusByID[1])
	})

	t.Run("send failure maps to a retryable response", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("relay unavailable")}
		gateway := &fakeGateway{event: dto.PaymentEvent{
			Type:          dto.EventCheckoutCompleted,
			CustomerEmail: "cliente@example.com",
		}}
		svc := newOrderService(newFakeOrderRepository(), gateway, mailer, &fakePublisher{})

		err := svc.HandlePaymentEvent(context.Background(), []byte("{}"), "sig")

		require.ErrorIs(t, err, errs.ErrNotificationFailure)
	})
}

func TestPublishWithRetry(t *testing.T) {
	t.Run("retries until the broker accepts", func(t *testing.T) {
		publisher := &fakePublisher{failures: 1}
		svc := newOrderService(newFakeOrderRepository(), &fakeGateway{}, &fakeMailer{}, publisher).(*OrderServiceImpl)

		svc.publishWithRetry("order_created", "ORD-1", nil)

		assert.Equal(t, 2, publisher.attempts)
		assert.Equal(t, []string{"order_created"}, publisher.events())
	})

	t.Run("exhaustion stops immediately after the last attempt", func(t *testing.T) {
		publisher := &fakePublisher{failures: publishMaxRetries}
		svc := newOrderService(newFakeOrderRepository(), &fakeGateway{}, &fakeMailer{}, publisher).(*OrderServiceImpl)

		start := time.Now()
		svc.publishWithRetry("order_created", "ORD-1", nil)

		assert.Equal(t, publishMaxRetries, publisher.attempts)
		assert.Empty(t, publisher.events())
		// sleeps only between attempts: 1s + 2s, no trailing 3s
		assert.Less(t, time.Since(start), 4*time.Second)
	})
}

func TestExpireStalePayments(t *testing.T) {
	repo := newFakeOrderRepository()
	repo.staleOrders = []domain.Order{
		{ID: 7, OrderNumber: "ORD-7", Status: domain.StatusPaymentPending},
		{ID: 9, OrderNumber: "ORD-9", Status: domain.StatusPaymentPending},
	}
	svc := newOrderService(repo, &fakeGateway{}, &fakeMailer{}, &fakePublisher{})

	svc.ExpireStalePayments()

	assert.Equal(t, domain.StatusExpired, repo.statusByID[7])
	assert.Equal(t, domain.StatusExpired, repo.statusByID[9])
}
