package repository

import (
	"errors"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"gorm.io/gorm"
)

type StaffRepository interface {
	FindByUsername(username string) (*domain.StaffAccount, error)
	Create(account *domain.StaffAccount) error
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) FindByUsername(username string) (*domain.StaffAccount, error) {
	var acc domain.StaffAccount
	if err := r.db.First(&acc, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *staffRepository) Create(account *domain.StaffAccount) error {
	return r.db.Create(account).Error
}
