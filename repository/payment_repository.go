package repository

import (
	"errors"

	"gorm.io/gorm"

	"quickbite/entity"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) Get(id uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByOrderID(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.Where("order_id = ?", orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIntentForUser resolves a payment by gateway intent id, scoped to
// its owner. Nil when absent or owned by someone else.
func (r *PaymentRepository) GetByIntentForUser(intentID string, userID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.Where("stripe_payment_intent_id = ? AND user_id = ?", intentID, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Save(tx *gorm.DB, p *entity.Payment) error {
	return tx.Save(p).Error
}

func (r *PaymentRepository) UpdateStatus(tx *gorm.DB, paymentID uint, status entity.PaymentStatus) error {
	return tx.Model(&entity.Payment{}).Where("id = ?", paymentID).Update("status", status).Error
}

func (r *PaymentRepository) ListForUser(userID uint) ([]entity.Payment, error) {
	var out []entity.Payment
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}
