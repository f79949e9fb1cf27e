package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
)

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Detail(ctx context.Context, userID string) (CartResponse, error)
	AddItem(ctx context.Context, userID string, req AddItemRequest) (CartResponse, error)
	SetQuantity(ctx context.Context, userID, productID string, req UpdateQtyRequest) (CartResponse, error)
	RemoveItem(ctx context.Context, userID, productID string) (CartResponse, error)
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo      Repository
	publisher events.Publisher
	validate  *validator.Validate
	logger    *zap.Logger

	// one lock per user so a mutation's write-through completes before the
	// next mutation for the same cart starts
	locks sync.Map
}

type Deps struct {
	Repo      Repository
	Publisher events.Publisher
	Logger    *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("cart repository cannot be nil")
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NewNopPublisher()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		repo:      deps.Repo,
		publisher: deps.Publisher,
		validate:  validator.New(),
		logger:    deps.Logger.Named("cart.service"),
	}
}

func (s *service) userLock(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func toResponse(c Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	return CartResponse{
		Items:     items,
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
	}
}

func (s *service) Detail(ctx context.Context, userID string) (CartResponse, error) {
	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, ErrCartStorage
	}
	return toResponse(c), nil
}

func (s *service) AddItem(ctx context.Context, userID string, req AddItemRequest) (CartResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return CartResponse{}, ErrInvalidItem
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, ErrCartStorage
	}

	c.Add(LineItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.Price,
		Weight:    req.Weight,
		ImageURL:  req.Image,
	})

	if err := s.repo.Save(ctx, userID, c); err != nil {
		return CartResponse{}, ErrCartStorage
	}

	s.publishItemAdded(ctx, userID, req.ProductID, req.Name)

	return toResponse(c), nil
}

func (s *service) SetQuantity(ctx context.Context, userID, productID string, req UpdateQtyRequest) (CartResponse, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, ErrCartStorage
	}

	// qty < 1 removes the line, any quantity the binding let through is
	// accepted as-is; bad input never errors here
	c.SetQuantity(productID, req.Qty)

	if err := s.repo.Save(ctx, userID, c); err != nil {
		return CartResponse{}, ErrCartStorage
	}

	return toResponse(c), nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (CartResponse, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, ErrCartStorage
	}

	c.Remove(productID)

	if err := s.repo.Save(ctx, userID, c); err != nil {
		return CartResponse{}, ErrCartStorage
	}

	return toResponse(c), nil
}

func (s *service) Clear(ctx context.Context, userID string) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.repo.Delete(ctx, userID); err != nil {
		return ErrCartStorage
	}
	return nil
}

func (s *service) publishItemAdded(ctx context.Context, userID, productID, name string) {
	payload, _ := json.Marshal(map[string]string{
		"user_id":    userID,
		"product_id": productID,
		"name":       name,
	})

	// the "item added" notification is best-effort, it never fails the add
	if err := s.publisher.Publish(ctx, events.Event{
		Type:          events.TypeCartItemAdded,
		AggregateType: "cart",
		AggregateID:   userID,
		Payload:       payload,
	}); err != nil {
		s.logger.Warn("failed to publish item added event",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
