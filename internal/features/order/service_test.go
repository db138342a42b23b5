package order

import (
	"context"
	"testing"
	"time"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/notification"
	"go-storefront/internal/features/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memOrderRepo struct {
	OrderRepository
	orders []*Order
}

func (m *memOrderRepo) Create(ctx context.Context, o *Order) (*Order, error) {
	o.CreatedAt = time.Now()
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.Number == "" {
		o.Number = "ORD-TEST"
	}
	m.orders = append(m.orders, o)
	return o, nil
}

func (m *memOrderRepo) FindByID(ctx context.Context, id string) (*Order, error) {
	return m.orders[0], nil
}

func (m *memOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.orders[0].Status = status
	return nil
}

type stubProducts struct {
	product.ProductService
	adjustments map[string]int
}

func (s *stubProducts) AdjustStock(ctx context.Context, id string, delta int) error {
	if s.adjustments == nil {
		s.adjustments = map[string]int{}
	}
	s.adjustments[id] += delta
	return nil
}

type nopAudit struct{}

func (nopAudit) Log(context.Context, *models.User, models.AuditAction, string, string) {}
func (nopAudit) LogChanges(context.Context, *models.User, models.AuditAction, string, string, map[string]models.Change) {
}
func (nopAudit) History(context.Context, string, string, int64) ([]models.AuditLog, error) {
	return nil, nil
}

func newTestService(repo *memOrderRepo, products *stubProducts, hub *notification.Hub) OrderService {
	return &OrderServiceImpl{
		Repo:     repo,
		Products: products,
		Hub:      hub,
		Audit:    nopAudit{},
	}
}

func TestCreateOrderComputesTotalsAndPublishes(t *testing.T) {
	hub := notification.NewHub(zap.NewNop())
	sub := hub.Subscribe()
	defer sub.Close()

	repo := &memOrderRepo{}
	products := &stubProducts{}
	svc := newTestService(repo, products, hub)

	created, err := svc.CreateOrder(context.Background(), nil, &Order{
		CustomerName: "Jo Customer",
		Discount:     5,
		Items: []OrderItem{
			{ProductID: "p1", Name: "Lamp", Price: 30, Quantity: 2},
			{ProductID: "p2", Name: "Bulb", Price: 5, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 65.0, created.Subtotal)
	assert.Equal(t, 60.0, created.Total)
	assert.Equal(t, StatusPending, created.Status)

	assert.Equal(t, -2, products.adjustments["p1"])
	assert.Equal(t, -1, products.adjustments["p2"])

	select {
	case event := <-sub.C:
		assert.Equal(t, "new-order", event.Type)
		assert.Equal(t, "Jo Customer", event.Data["customerName"])
		assert.Equal(t, 60.0, event.Data["amount"])
	default:
		t.Fatal("no event published for the new order")
	}
}

func TestCreateOrderRejectsEmptyAndBadQuantity(t *testing.T) {
	svc := newTestService(&memOrderRepo{}, &stubProducts{}, notification.NewHub(zap.NewNop()))

	_, err := svc.CreateOrder(context.Background(), nil, &Order{})
	assert.Error(t, err)

	_, err = svc.CreateOrder(context.Background(), nil, &Order{
		Items: []OrderItem{{Name: "Lamp", Price: 30, Quantity: 0}},
	})
	assert.Error(t, err)
}

func TestUpdateStatusValidatesTransitions(t *testing.T) {
	repo := &memOrderRepo{}
	svc := newTestService(repo, &stubProducts{}, notification.NewHub(zap.NewNop()))

	_, err := svc.CreateOrder(context.Background(), nil, &Order{
		Items: []OrderItem{{ProductID: "p1", Name: "Lamp", Price: 30, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), nil, "any", "not-a-status")
	assert.Error(t, err)

	err = svc.UpdateStatus(context.Background(), nil, "any", StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, repo.orders[0].Status)
}

func TestBuildXLSXRoundTrips(t *testing.T) {
	orders := []Order{
		{
			Number: "ORD-1", CustomerName: "Jo Customer", Email: "jo@example.com",
			Items:    []OrderItem{{Name: "Lamp", Price: 30, Quantity: 2}},
			Subtotal: 60, Total: 60, Status: StatusPaid, CreatedAt: time.Now(),
		},
	}

	data, err := BuildXLSX(orders)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
