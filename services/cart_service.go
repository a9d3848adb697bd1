package services

import (
	"errors"

	"gorm.io/gorm"

	"quickbite/entity"
	"quickbite/pkg/apperr"
	"quickbite/repository"
)

// CartService keeps at most one live cart per user, bound to a single
// restaurant. Prices are never stored in the cart: totals are recomputed
// from the live menu on every mutation, so a price change shows up on the
// next add/update.
type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	RestRepo *repository.RestaurantRepository
}

func NewCartService(db *gorm.DB, cartRepo *repository.CartRepository, restRepo *repository.RestaurantRepository) *CartService {
	return &CartService{DB: db, CartRepo: cartRepo, RestRepo: restRepo}
}

type AddToCartIn struct {
	RestaurantID uint `json:"restaurantId" binding:"required"`
	MenuItemID   uint `json:"menuItemId" binding:"required"`
	Quantity     int  `json:"quantity" binding:"required,min=1"`
}

// Get returns the user's cart with menu items resolved, or nil when no
// cart exists.
func (s *CartService) Get(userID uint) (*entity.Cart, error) {
	return s.CartRepo.GetForUser(userID)
}

// Add puts quantity units of a menu item into the user's cart. A cart
// bound to a different restaurant is discarded outright first; there is no
// merging across restaurants.
func (s *CartService) Add(userID uint, in *AddToCartIn) (*entity.Cart, error) {
	if in.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	rest, err := s.RestRepo.Get(in.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, err
	}
	if _, err := s.RestRepo.GetMenuItem(rest.ID, in.MenuItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUser(userID)
		if err != nil {
			return err
		}

		if cart != nil && cart.RestaurantID != in.RestaurantID {
			if err := s.CartRepo.Delete(tx, userID); err != nil {
				return err
			}
			cart = nil
		}

		if cart == nil {
			cart = &entity.Cart{
				UserID:       userID,
				RestaurantID: in.RestaurantID,
				Items:        []entity.CartItem{{MenuItemID: in.MenuItemID, Quantity: in.Quantity}},
			}
			if err := s.CartRepo.Create(tx, cart); err != nil {
				return err
			}
		} else {
			merged := false
			for i := range cart.Items {
				if cart.Items[i].MenuItemID == in.MenuItemID {
					cart.Items[i].Quantity += in.Quantity
					if err := s.CartRepo.SaveItem(tx, &cart.Items[i]); err != nil {
						return err
					}
					merged = true
					break
				}
			}
			if !merged {
				item := entity.CartItem{CartID: cart.ID, MenuItemID: in.MenuItemID, Quantity: in.Quantity}
				if err := s.CartRepo.SaveItem(tx, &item); err != nil {
					return err
				}
				cart.Items = append(cart.Items, item)
			}
		}

		return s.recomputeTotal(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.CartRepo.GetForUser(userID)
}

// UpdateItem sets a line's quantity; zero removes the line. Removing the
// last line deletes the cart and returns nil.
func (s *CartService) UpdateItem(userID, menuItemID uint, quantity int) (*entity.Cart, error) {
	if quantity < 0 {
		return nil, apperr.Validation("quantity must not be negative")
	}

	deleted := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUser(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperr.NotFound("cart not found")
		}

		var line *entity.CartItem
		for i := range cart.Items {
			if cart.Items[i].MenuItemID == menuItemID {
				line = &cart.Items[i]
				break
			}
		}
		if line == nil {
			return apperr.NotFound("item not found in cart")
		}

		if quantity == 0 {
			if err := s.CartRepo.DeleteItem(tx, line.ID); err != nil {
				return err
			}
			if len(cart.Items) == 1 {
				deleted = true
				return s.CartRepo.Delete(tx, userID)
			}
			remaining := cart.Items[:0]
			for _, it := range cart.Items {
				if it.MenuItemID != menuItemID {
					remaining = append(remaining, it)
				}
			}
			cart.Items = remaining
		} else {
			line.Quantity = quantity
			if err := s.CartRepo.SaveItem(tx, line); err != nil {
				return err
			}
		}

		return s.recomputeTotal(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, nil
	}
	return s.CartRepo.GetForUser(userID)
}

// RemoveItem drops a line from the cart. When the last line goes, the
// cart itself is deleted and nil is returned: "no cart" is a distinct
// signal from "cart with no items".
func (s *CartService) RemoveItem(userID, menuItemID uint) (*entity.Cart, error) {
	deleted := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUser(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperr.NotFound("cart not found")
		}

		remaining := make([]entity.CartItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			if it.MenuItemID == menuItemID {
				if err := s.CartRepo.DeleteItem(tx, it.ID); err != nil {
					return err
				}
				continue
			}
			remaining = append(remaining, it)
		}

		if len(remaining) == 0 {
			deleted = true
			return s.CartRepo.Delete(tx, userID)
		}

		cart.Items = remaining
		return s.recomputeTotal(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, nil
	}
	return s.CartRepo.GetForUser(userID)
}

// Clear deletes the user's cart. Idempotent.
func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.Delete(tx, userID)
	})
}

// recomputeTotal sums live menu price x quantity over all lines and
// persists the cart. A line whose menu item has vanished fails the whole
// mutation: stale references must not survive.
func (s *CartService) recomputeTotal(tx *gorm.DB, cart *entity.Cart) error {
	menu, err := s.RestRepo.GetMenuItems(cart.RestaurantID)
	if err != nil {
		return err
	}
	prices := make(map[uint]int64, len(menu))
	for _, m := range menu {
		prices[m.ID] = m.Price
	}

	var total int64
	for _, it := range cart.Items {
		price, ok := prices[it.MenuItemID]
		if !ok {
			return apperr.NotFound("menu item %d no longer exists", it.MenuItemID)
		}
		total += price * int64(it.Quantity)
	}

	cart.TotalAmount = total
	return tx.Model(&entity.Cart{}).Where("id = ?", cart.ID).Update("total_amount", total).Error
}
