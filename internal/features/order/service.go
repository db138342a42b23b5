package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"
	"go-storefront/internal/features/notification"
	"go-storefront/internal/features/product"
)

type OrderService interface {
	CreateOrder(ctx context.Context, actor *models.User, o *Order) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	ListSince(ctx context.Context, since time.Time) ([]Order, error)
	UpdateStatus(ctx context.Context, actor *models.User, id, status string) error
	ExportXLSX(ctx context.Context, actor *models.User) ([]byte, error)
}

type OrderServiceImpl struct {
	Repo     OrderRepository
	Products product.ProductService
	Hub      *notification.Hub
	Audit    audit.AuditService
}

func NewOrderService(repo OrderRepository, products product.ProductService, hub *notification.Hub, auditSvc audit.AuditService) OrderService {
	return &OrderServiceImpl{
		Repo:     repo,
		Products: products,
		Hub:      hub,
		Audit:    auditSvc,
	}
}

// CreateOrder persists the order, decrements stock for each line, and pushes
// a "new-order" event to the back-office stream.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, actor *models.User, o *Order) (*Order, error) {
	if len(o.Items) == 0 {
		return nil, errors.New("an order needs at least one item")
	}

	subtotal := 0.0
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item '%s': quantity must be positive", item.Name)
		}
		subtotal += item.Price * float64(item.Quantity)
	}
	o.Subtotal = subtotal
	if o.Total == 0 {
		o.Total = subtotal - o.Discount
	}

	created, err := s.Repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	for _, item := range created.Items {
		if err := s.Products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			// Stock drift is recoverable; the order itself already exists.
			s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Products", item.ProductID,
				map[string]models.Change{"stock_adjust_failed": {New: err.Error()}})
		}
	}

	s.Hub.Publish(notification.NewOrderEvent(
		created.ID.Hex(), created.CustomerName, created.Total, created.Status))
	s.Audit.Log(ctx, actor, models.AuditActionCreate, "Orders", created.ID.Hex())
	return created, nil
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context) ([]Order, error) {
	return s.Repo.List(ctx)
}

func (s *OrderServiceImpl) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *OrderServiceImpl) ListSince(ctx context.Context, since time.Time) ([]Order, error) {
	return s.Repo.ListSince(ctx, since)
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, actor *models.User, id, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown order status '%s'", status)
	}

	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == status {
		return nil
	}

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.Audit.LogChanges(ctx, actor, models.AuditActionUpdate, "Orders", id,
		map[string]models.Change{"status": {Old: existing.Status, New: status}})
	return nil
}

func (s *OrderServiceImpl) ExportXLSX(ctx context.Context, actor *models.User) ([]byte, error) {
	orders, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := BuildXLSX(orders)
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, actor, models.AuditActionExport, "Orders", "")
	return data, nil
}
