package repository

import (
	"strings"

	"gorm.io/gorm"

	"quickbite/entity"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Preload("Menu").First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// List returns restaurants matching an optional free-text search over name
// and cuisine types, optionally restricted to open restaurants.
func (r *RestaurantRepository) List(search string, openOnly bool, page, limit int) ([]entity.Restaurant, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.DB.Model(&entity.Restaurant{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(cuisine_types) LIKE ?", like, like)
	}
	if openOnly {
		q = q.Where("is_open = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Restaurant
	err := q.Order("rating DESC, id ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *RestaurantRepository) Save(rest *entity.Restaurant) error {
	return r.DB.Save(rest).Error
}

func (r *RestaurantRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Restaurant{}, id).Error
}

func (r *RestaurantRepository) UpdateRating(tx *gorm.DB, restID uint, rating float64) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", restID).Update("rating", rating).Error
}

// ---------------- Menu items ----------------

func (r *RestaurantRepository) CreateMenuItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

// GetMenuItem resolves a menu item within one restaurant's menu; crossing
// restaurants yields record-not-found.
func (r *RestaurantRepository) GetMenuItem(restID, itemID uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.Where("id = ? AND restaurant_id = ?", itemID, restID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *RestaurantRepository) GetMenuItems(restID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("restaurant_id = ?", restID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *RestaurantRepository) SaveMenuItem(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *RestaurantRepository) DeleteMenuItem(restID, itemID uint) (int64, error) {
	res := r.DB.Where("id = ? AND restaurant_id = ?", itemID, restID).Delete(&entity.MenuItem{})
	return res.RowsAffected, res.Error
}
