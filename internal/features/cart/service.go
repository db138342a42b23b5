package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/audit"
	"go-storefront/internal/features/order"
	"go-storefront/internal/features/product"

	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, user *models.User) (*Cart, error)
	AddItem(ctx context.Context, user *models.User, productID string, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, user *models.User, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, user *models.User, productID string) (*Cart, error)
	Clear(ctx context.Context, user *models.User) error
	Checkout(ctx context.Context, user *models.User) (*order.Order, error)
	PurgeStale(ctx context.Context, ttl time.Duration) (int64, error)
}

type CartServiceImpl struct {
	Repo     CartRepository
	Rules    PricingRuleRepository
	Products product.ProductService
	Orders   order.OrderService
	Audit    audit.AuditService
	Logger   *zap.Logger
}

func NewCartService(repo CartRepository, rules PricingRuleRepository, products product.ProductService, orders order.OrderService, auditSvc audit.AuditService, logger *zap.Logger) CartService {
	return &CartServiceImpl{
		Repo:     repo,
		Rules:    rules,
		Products: products,
		Orders:   orders,
		Audit:    auditSvc,
		Logger:   logger,
	}
}

func (s *CartServiceImpl) GetCart(ctx context.Context, user *models.User) (*Cart, error) {
	return s.Repo.FindByUser(ctx, user.ID.Hex())
}

func (s *CartServiceImpl) AddItem(ctx context.Context, user *models.User, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	p, err := s.Products.GetProduct(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if p.Status != "active" {
		return nil, errors.New("product is not available")
	}
	if p.Stock < quantity {
		return nil, fmt.Errorf("only %d left in stock", p.Stock)
	}

	cart, err := s.Repo.FindByUser(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].Price = p.EffectivePrice()
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, CartItem{
			ProductID: productID,
			Name:      p.Name,
			Price:     p.EffectivePrice(),
			Quantity:  quantity,
		})
	}

	if err := s.Repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartServiceImpl) UpdateItem(ctx context.Context, user *models.User, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, user, productID)
	}

	cart, err := s.Repo.FindByUser(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			if err := s.Repo.Save(ctx, cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}
	return nil, errors.New("item not in cart")
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, user *models.User, productID string) (*Cart, error) {
	cart, err := s.Repo.FindByUser(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := s.Repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartServiceImpl) Clear(ctx context.Context, user *models.User) error {
	return s.Repo.DeleteByUser(ctx, user.ID.Hex())
}

// Checkout turns the cart into an order. Pricing rules run against the cart
// summary to compute the discount, the order service publishes the
// notification, and the cart is cleared only after the order exists.
func (s *CartServiceImpl) Checkout(ctx context.Context, user *models.User) (*order.Order, error) {
	cart, err := s.Repo.FindByUser(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	rules, err := s.Rules.ListActive(ctx)
	if err != nil {
		s.Logger.Warn("loading pricing rules failed, checking out without discount", zap.Error(err))
		rules = nil
	}

	subtotal := cart.Subtotal()
	discount := EvaluateDiscount(ctx, rules, subtotal, cart.ItemCount(), user.UserType, s.Logger)

	items := make([]order.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, order.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.Orders.CreateOrder(ctx, user, &order.Order{
		CustomerID:   user.ID.Hex(),
		CustomerName: user.Name,
		Email:        user.Email,
		Items:        items,
		Discount:     discount,
		Total:        subtotal - discount,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.DeleteByUser(ctx, user.ID.Hex()); err != nil {
		s.Logger.Warn("clearing cart after checkout failed",
			zap.String("user", user.ID.Hex()),
			zap.Error(err))
	}

	s.Audit.Log(ctx, user, models.AuditActionCheckout, "Orders", created.ID.Hex())
	return created, nil
}

// PurgeStale removes carts untouched for longer than ttl.
func (s *CartServiceImpl) PurgeStale(ctx context.Context, ttl time.Duration) (int64, error) {
	return s.Repo.DeleteStale(ctx, time.Now().Add(-ttl))
}
