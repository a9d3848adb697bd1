package services

import (
	"errors"

	"gorm.io/gorm"

	"quickbite/entity"
	"quickbite/pkg/apperr"
	"quickbite/repository"
)

type ReviewService struct {
	DB       *gorm.DB
	Repo     *repository.ReviewRepository
	RestRepo *repository.RestaurantRepository
}

func NewReviewService(db *gorm.DB, repo *repository.ReviewRepository, restRepo *repository.RestaurantRepository) *ReviewService {
	return &ReviewService{DB: db, Repo: repo, RestRepo: restRepo}
}

type ReviewIn struct {
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

type ReviewListOut struct {
	Reviews    []entity.Review `json:"reviews"`
	Pagination Pagination      `json:"pagination"`
}

// Create stores the review and refreshes the restaurant's aggregate
// rating in the same transaction.
func (s *ReviewService) Create(userID uint, in *ReviewIn) (*entity.Review, error) {
	if _, err := s.RestRepo.Get(in.RestaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, err
	}

	review := &entity.Review{
		UserID:       userID,
		RestaurantID: in.RestaurantID,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, review); err != nil {
			return err
		}
		return s.refreshRating(tx, in.RestaurantID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByRestaurant(restID uint, page, limit int) (*ReviewListOut, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	reviews, total, err := s.Repo.ListByRestaurant(restID, page, limit)
	if err != nil {
		return nil, err
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return &ReviewListOut{
		Reviews:    reviews,
		Pagination: Pagination{Total: total, Page: page, Pages: pages},
	}, nil
}

func (s *ReviewService) Update(id, userID uint, rating int, comment string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	review, err := s.Repo.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found or unauthorized")
		}
		return nil, err
	}

	review.Rating = rating
	review.Comment = comment

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Save(tx, review); err != nil {
			return err
		}
		return s.refreshRating(tx, review.RestaurantID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(id, userID uint) error {
	review, err := s.Repo.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("review not found or unauthorized")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Delete(tx, review.ID); err != nil {
			return err
		}
		return s.refreshRating(tx, review.RestaurantID)
	})
}

func (s *ReviewService) refreshRating(tx *gorm.DB, restID uint) error {
	avg, err := s.Repo.AverageRating(tx, restID)
	if err != nil {
		return err
	}
	return s.RestRepo.UpdateRating(tx, restID, avg)
}
