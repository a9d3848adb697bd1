package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quickbite/entity"
	"quickbite/pkg/apperr"
	"quickbite/pkg/cache"
	"quickbite/repository"
)

const restaurantCacheTTL = 5 * time.Minute

type RestaurantService struct {
	DB    *gorm.DB
	Repo  *repository.RestaurantRepository
	Cache *cache.Cache
}

func NewRestaurantService(db *gorm.DB, repo *repository.RestaurantRepository, c *cache.Cache) *RestaurantService {
	return &RestaurantService{DB: db, Repo: repo, Cache: c}
}

type RestaurantIn struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	AddressID    uint   `json:"addressId"`
	CuisineTypes string `json:"cuisineTypes"`
	IsOpen       *bool  `json:"isOpen"`
}

type MenuItemIn struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price" binding:"min=0"`
	Category     string `json:"category"`
	IsVegetarian bool   `json:"isVegetarian"`
	IsVegan      bool   `json:"isVegan"`
	IsGlutenFree bool   `json:"isGlutenFree"`
	SpicyLevel   int    `json:"spicyLevel" binding:"min=0,max=3"`
	Image        string `json:"image"`
}

type RestaurantListOut struct {
	Restaurants []entity.Restaurant `json:"restaurants"`
	Pagination  Pagination          `json:"pagination"`
}

func (s *RestaurantService) List(search string, openOnly bool, page, limit int) (*RestaurantListOut, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	restaurants, total, err := s.Repo.List(search, openOnly, page, limit)
	if err != nil {
		return nil, err
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return &RestaurantListOut{
		Restaurants: restaurants,
		Pagination:  Pagination{Total: total, Page: page, Pages: pages},
	}, nil
}

// Get serves restaurant detail through the read cache when one is
// configured; writes invalidate.
func (s *RestaurantService) Get(ctx context.Context, id uint) (*entity.Restaurant, error) {
	key := restaurantCacheKey(id)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var rest entity.Restaurant
		if err := json.Unmarshal(raw, &rest); err == nil {
			return &rest, nil
		}
	}

	rest, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, err
	}

	if raw, err := json.Marshal(rest); err == nil {
		s.Cache.Set(ctx, key, raw, restaurantCacheTTL)
	}
	return rest, nil
}

func (s *RestaurantService) Create(ownerID uint, in *RestaurantIn) (*entity.Restaurant, error) {
	rest := &entity.Restaurant{
		Name:         in.Name,
		Description:  in.Description,
		AddressID:    in.AddressID,
		CuisineTypes: in.CuisineTypes,
		IsOpen:       true,
		OwnerID:      ownerID,
	}
	if in.IsOpen != nil {
		rest.IsOpen = *in.IsOpen
	}
	if err := s.Repo.Create(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) Update(ctx context.Context, restID, actorID uint, isAdmin bool, in *RestaurantIn) (*entity.Restaurant, error) {
	rest, err := s.requireOwned(restID, actorID, isAdmin)
	if err != nil {
		return nil, err
	}

	rest.Name = in.Name
	rest.Description = in.Description
	if in.AddressID != 0 {
		rest.AddressID = in.AddressID
	}
	rest.CuisineTypes = in.CuisineTypes
	if in.IsOpen != nil {
		rest.IsOpen = *in.IsOpen
	}

	if err := s.Repo.Save(rest); err != nil {
		return nil, err
	}
	s.Cache.Del(ctx, restaurantCacheKey(restID))
	return rest, nil
}

func (s *RestaurantService) Delete(ctx context.Context, restID, actorID uint, isAdmin bool) error {
	if _, err := s.requireOwned(restID, actorID, isAdmin); err != nil {
		return err
	}
	if err := s.Repo.Delete(restID); err != nil {
		return err
	}
	s.Cache.Del(ctx, restaurantCacheKey(restID))
	return nil
}

// ---------------- Menu management ----------------

func (s *RestaurantService) AddMenuItem(ctx context.Context, restID, actorID uint, isAdmin bool, in *MenuItemIn) (*entity.MenuItem, error) {
	if _, err := s.requireOwned(restID, actorID, isAdmin); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		RestaurantID: restID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		IsVegetarian: in.IsVegetarian,
		IsVegan:      in.IsVegan,
		IsGlutenFree: in.IsGlutenFree,
		SpicyLevel:   in.SpicyLevel,
		Image:        in.Image,
	}
	if err := s.Repo.CreateMenuItem(item); err != nil {
		return nil, err
	}
	s.Cache.Del(ctx, restaurantCacheKey(restID))
	return item, nil
}

func (s *RestaurantService) UpdateMenuItem(ctx context.Context, restID, itemID, actorID uint, isAdmin bool, in *MenuItemIn) (*entity.MenuItem, error) {
	if _, err := s.requireOwned(restID, actorID, isAdmin); err != nil {
		return nil, err
	}

	item, err := s.Repo.GetMenuItem(restID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, err
	}

	item.Name = in.Name
	item.Description = in.Description
	item.Price = in.Price
	item.Category = in.Category
	item.IsVegetarian = in.IsVegetarian
	item.IsVegan = in.IsVegan
	item.IsGlutenFree = in.IsGlutenFree
	item.SpicyLevel = in.SpicyLevel
	item.Image = in.Image

	if err := s.Repo.SaveMenuItem(item); err != nil {
		return nil, err
	}
	s.Cache.Del(ctx, restaurantCacheKey(restID))
	return item, nil
}

func (s *RestaurantService) DeleteMenuItem(ctx context.Context, restID, itemID, actorID uint, isAdmin bool) error {
	if _, err := s.requireOwned(restID, actorID, isAdmin); err != nil {
		return err
	}

	affected, err := s.Repo.DeleteMenuItem(restID, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("menu item not found")
	}
	s.Cache.Del(ctx, restaurantCacheKey(restID))
	return nil
}

func (s *RestaurantService) requireOwned(restID, actorID uint, isAdmin bool) (*entity.Restaurant, error) {
	rest, err := s.Repo.Get(restID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, err
	}
	if !isAdmin && rest.OwnerID != actorID {
		return nil, apperr.Forbidden("not the restaurant owner")
	}
	return rest, nil
}

func restaurantCacheKey(id uint) string {
	return fmt.Sprintf("restaurant:%d", id)
}
