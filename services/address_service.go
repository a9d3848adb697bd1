package services

import (
	"errors"

	"gorm.io/gorm"

	"quickbite/entity"
	"quickbite/notifications"
	"quickbite/pkg/apperr"
	"quickbite/repository"
)

type AddressService struct {
	Repo     *repository.AddressRepository
	UserRepo *repository.UserRepository
	Notify   *notifications.Service
}

func NewAddressService(repo *repository.AddressRepository, userRepo *repository.UserRepository, notify *notifications.Service) *AddressService {
	return &AddressService{Repo: repo, UserRepo: userRepo, Notify: notify}
}

type AddressIn struct {
	Label   string `json:"label"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Country string `json:"country" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
}

func (s *AddressService) Create(userID uint, in *AddressIn) (*entity.Address, error) {
	addr := &entity.Address{
		UserID:  userID,
		Label:   in.Label,
		Street:  in.Street,
		City:    in.City,
		State:   in.State,
		Country: in.Country,
		ZipCode: in.ZipCode,
	}
	if err := s.Repo.Create(addr); err != nil {
		return nil, err
	}

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		s.Notify.AddressAdded(user.Email, addr)
	}
	return addr, nil
}

func (s *AddressService) List(userID uint) ([]entity.Address, error) {
	return s.Repo.ListForUser(userID)
}

func (s *AddressService) Get(id, userID uint) (*entity.Address, error) {
	addr, err := s.Repo.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("address not found")
		}
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Update(id, userID uint, in *AddressIn) (*entity.Address, error) {
	addr, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	addr.Label = in.Label
	addr.Street = in.Street
	addr.City = in.City
	addr.State = in.State
	addr.Country = in.Country
	addr.ZipCode = in.ZipCode

	if err := s.Repo.Save(addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Delete(id, userID uint) error {
	affected, err := s.Repo.DeleteForUser(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("address not found")
	}
	return nil
}
