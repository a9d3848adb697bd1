package repository

import (
	"gorm.io/gorm"

	"quickbite/entity"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(tx *gorm.DB, review *entity.Review) error {
	return tx.Create(review).Error
}

func (r *ReviewRepository) GetForUser(id, userID uint) (*entity.Review, error) {
	var review entity.Review
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListByRestaurant(restID uint, page, limit int) ([]entity.Review, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	q := r.DB.Model(&entity.Review{}).Where("restaurant_id = ?", restID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Review
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *ReviewRepository) Save(tx *gorm.DB, review *entity.Review) error {
	return tx.Save(review).Error
}

func (r *ReviewRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Review{}, id).Error
}

// AverageRating computes the live mean rating for a restaurant; zero when
// it has no reviews.
func (r *ReviewRepository) AverageRating(tx *gorm.DB, restID uint) (float64, error) {
	var avg *float64
	err := tx.Model(&entity.Review{}).
		Where("restaurant_id = ?", restID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
