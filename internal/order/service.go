// Package order implements the order workflow: two-phase validate/commit
// placement against the catalog, the status set, and order queries.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okstores/minimart/internal/catalog"
)

var (
	ErrValidation    = errors.New("invalid order request")
	ErrInvalidStatus = errors.New("invalid status")
)

type Service struct {
	catalog catalog.Repository
	orders  Repository
}

func NewService(cat catalog.Repository, orders Repository) *Service {
	return &Service{catalog: cat, orders: orders}
}

// Create places an order. Phase one validates every requested line against
// the catalog and prices it; nothing is mutated until all lines pass. Phase
// two reserves stock line by line through the catalog's conditional
// decrement; a late failure (stock raced away, storage error) releases every
// reservation already taken before the error returns. The order row is
// persisted only after all reservations succeeded.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.Name == "" || req.MobileNumber == "" || req.Address == "" || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: name, mobile_number, address and items are required", ErrValidation)
	}

	total := decimal.Zero
	lines := make([]Line, 0, len(req.Items))
	for _, rl := range req.Items {
		if rl.CategoryName == "" || rl.ItemName == "" || rl.Quantity <= 0 {
			return nil, fmt.Errorf("%w: each item must have category_name, item_name and positive quantity", ErrValidation)
		}
		it, err := s.catalog.FindItem(ctx, rl.CategoryName, rl.ItemName)
		if err != nil {
			return nil, err
		}
		if it.StockAvailable < rl.Quantity {
			return nil, fmt.Errorf("%w: item '%s'", catalog.ErrInsufficientStock, rl.ItemName)
		}
		unit, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, fmt.Errorf("item '%s' has unreadable price %q: %w", rl.ItemName, it.Price, err)
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(rl.Quantity)))
		total = total.Add(lineTotal)
		// two decimal places, matching the NUMERIC(12,2) text representation
		lines = append(lines, Line{
			ID:           uuid.NewString(),
			CategoryName: rl.CategoryName,
			ItemName:     rl.ItemName,
			Quantity:     rl.Quantity,
			PricePerUnit: unit.StringFixed(2),
			TotalPrice:   lineTotal.StringFixed(2),
		})
	}

	for i, rl := range req.Items {
		if err := s.catalog.DecrementStock(ctx, rl.CategoryName, rl.ItemName, rl.Quantity); err != nil {
			s.release(ctx, req.Items[:i])
			return nil, err
		}
	}

	o := &Order{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		MobileNumber:       req.MobileNumber,
		Address:            req.Address,
		GoogleMapsLocation: req.GoogleMapsLocation,
		Items:              lines,
		TotalOrderValue:    total.StringFixed(2),
		Status:             StatusPlaced,
		OrderedDate:        time.Now().UTC(),
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	if err := s.orders.Insert(ctx, o); err != nil {
		s.release(ctx, req.Items)
		return nil, err
	}
	return o, nil
}

// release compensates reservations taken earlier in the same request.
func (s *Service) release(ctx context.Context, lines []RequestLine) {
	for _, rl := range lines {
		if err := s.catalog.IncrementStock(ctx, rl.CategoryName, rl.ItemName, rl.Quantity); err != nil {
			log.Printf("[order] restock of item '%s' failed: %v", rl.ItemName, err)
		}
	}
}

// UpdateStatus replaces the order's status with any member of the allowed
// set; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// CustomerOrders returns the customer's orders, newest first. Zero orders is
// an empty list, not an error.
func (s *Service) CustomerOrders(ctx context.Context, mobileNumber string) ([]Order, error) {
	return s.orders.ListByCustomer(ctx, mobileNumber)
}

// AllOrders returns every order, newest first.
func (s *Service) AllOrders(ctx context.Context) ([]Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
