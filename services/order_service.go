package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quickbite/entity"
	"quickbite/notifications"
	"quickbite/pkg/apperr"
	"quickbite/repository"
)

// OrderService owns the order lifecycle. Totals are computed once at
// creation from live menu prices and never touched again; status changes
// all funnel through the transition table in entity and a CAS write, so
// two racing transitions cannot both succeed from a stale read.
type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	CartRepo  *repository.CartRepository
	RestRepo  *repository.RestaurantRepository
	UserRepo  *repository.UserRepository
	AddrRepo  *repository.AddressRepository
	PayRepo   *repository.PaymentRepository
	Notify    *notifications.Service
	logger    *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	restRepo *repository.RestaurantRepository,
	userRepo *repository.UserRepository,
	addrRepo *repository.AddressRepository,
	payRepo *repository.PaymentRepository,
	notify *notifications.Service,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, RestRepo: restRepo,
		UserRepo: userRepo, AddrRepo: addrRepo, PayRepo: payRepo,
		Notify: notify, logger: logger,
	}
}

type OrderItemIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderReq struct {
	RestaurantID  uint          `json:"restaurantId" binding:"required"`
	Items         []OrderItemIn `json:"items" binding:"required,min=1,dive"`
	AddressID     uint          `json:"addressId" binding:"required"`
	PaymentMethod string        `json:"paymentMethod" binding:"omitempty,oneof=credit_card debit_card upi cash_on_delivery"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

type OrderListOut struct {
	Orders     []entity.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// Create places an order: restaurant must exist and be open, every line
// resolves against the live menu, and a pending Payment row is written in
// the same transaction. The user's cart is consumed. Notifications go out
// only after the commit and never fail the operation.
func (s *OrderService) Create(userID uint, req *CreateOrderReq) (*entity.Order, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	rest, err := s.RestRepo.Get(req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, err
	}
	if !rest.IsOpen {
		return nil, apperr.Unavailable("restaurant is not available")
	}

	if _, err := s.AddrRepo.GetForUser(req.AddressID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("address not found")
		}
		return nil, err
	}

	prices := make(map[uint]int64, len(rest.Menu))
	for _, m := range rest.Menu {
		prices[m.ID] = m.Price
	}

	var total int64
	for _, it := range req.Items {
		price, ok := prices[it.MenuItemID]
		if !ok {
			return nil, apperr.NotFound("menu item %d not found", it.MenuItemID)
		}
		total += price * int64(it.Quantity)
	}

	method := req.PaymentMethod
	if method == "" {
		method = entity.MethodCreditCard
	}

	var orderID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Reference:    uuid.NewString(),
			UserID:       userID,
			RestaurantID: rest.ID,
			AddressID:    req.AddressID,
			TotalAmount:  total,
			Status:       entity.OrderPlaced,
		}
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}

		for _, it := range req.Items {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: it.MenuItemID,
				Quantity:   it.Quantity,
				UnitPrice:  prices[it.MenuItemID],
				Total:      prices[it.MenuItemID] * int64(it.Quantity),
			}
			if err := s.Repo.CreateItem(tx, &oi); err != nil {
				return err
			}
		}

		payment := entity.Payment{
			UserID:  userID,
			OrderID: order.ID,
			Method:  method,
			Amount:  total,
			Status:  entity.PaymentPending,
		}
		if err := s.PayRepo.Create(tx, &payment); err != nil {
			return err
		}
		if err := tx.Model(&entity.Order{}).Where("id = ?", order.ID).
			Update("payment_id", payment.ID).Error; err != nil {
			return err
		}

		// Checkout consumes the cart.
		if err := s.CartRepo.Delete(tx, userID); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}

	s.Notify.OrderConfirmation(order, user)
	if owner, err := s.UserRepo.FindByID(rest.OwnerID); err == nil {
		s.Notify.NewOrderAlert(order, owner.Email, user.Name)
	} else {
		s.logger.Warn("could not resolve restaurant owner for order alert",
			zap.Uint("restaurant_id", rest.ID), zap.Error(err))
	}

	return order, nil
}

// List returns the user's orders newest-first with optional status filter.
func (s *OrderService) List(userID uint, status string, page, limit int) (*OrderListOut, error) {
	var filter entity.OrderStatus
	if status != "" {
		filter = entity.OrderStatus(status)
		if !filter.Valid() {
			return nil, apperr.Validation("unknown order status: " + status)
		}
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	orders, total, err := s.Repo.ListForUser(userID, filter, page, limit)
	if err != nil {
		return nil, err
	}

	return &OrderListOut{
		Orders: orders,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// GetByID is scoped to the owning user; cross-user access yields nil,
// which the transport reports as not found.
func (s *OrderService) GetByID(orderID, userID uint) (*entity.Order, error) {
	return s.Repo.GetForUser(orderID, userID)
}

// UpdateStatus applies one transition from the table. The guard re-checks
// the stored status at write time, so a concurrent transition from the
// same state loses cleanly instead of double-applying.
func (s *OrderService) UpdateStatus(orderID uint, newStatus string, actorID uint) (*entity.Order, error) {
	next := entity.OrderStatus(newStatus)
	if !next.Valid() {
		return nil, apperr.Validation("unknown order status: " + newStatus)
	}

	var current entity.OrderStatus
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.Repo.Get(orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order not found")
			}
			return err
		}

		current = order.Status
		if !current.CanTransitionTo(next) {
			return apperr.InvalidTransition(string(current), string(next))
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, current, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("order status changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}

	if user, err := s.UserRepo.FindByID(order.UserID); err == nil {
		s.Notify.OrderStatusUpdate(order, user, next)
		if next == entity.OrderDelivered {
			s.Notify.FeedbackRequest(order, user)
		}
	} else {
		s.logger.Warn("could not resolve customer for status notification",
			zap.Uint("order_id", orderID), zap.Error(err))
	}

	return order, nil
}

// Cancel ends an order that is still placed or accepted. A successful
// payment flips to refunded in the same transaction; the gateway-side
// refund remains a separate explicit action.
func (s *OrderService) Cancel(orderID, userID uint, reason string) (*entity.Order, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.Repo.GetForUser(orderID, userID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.NotFound("order not found")
		}
		if !order.Status.Cancellable() {
			return apperr.CannotCancel()
		}

		payment, err := s.PayRepo.GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if payment != nil && payment.Status == entity.PaymentSuccess {
			if err := s.PayRepo.UpdateStatus(tx, payment.ID, entity.PaymentRefunded); err != nil {
				return err
			}
		}

		affected, err := s.Repo.CancelGuard(tx, order.ID, order.Status, reason)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("order status changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}

	user, uerr := s.UserRepo.FindByID(userID)
	if uerr == nil {
		s.Notify.OrderCancelled(order, user.Email, user.Name, reason)
	}
	if rest, rerr := s.RestRepo.Get(order.RestaurantID); rerr == nil {
		if owner, oerr := s.UserRepo.FindByID(rest.OwnerID); oerr == nil {
			name := ""
			if uerr == nil {
				name = user.Name
			}
			s.Notify.OrderCancelled(order, owner.Email, name, reason)
		}
	}

	return order, nil
}
