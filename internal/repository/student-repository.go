package repository

import (
	"errors"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/helper"
	"gorm.io/gorm"
)

type StudentRepository interface {
	CreateCredential(cred *domain.StudentCredential) error
	FindByRollNo(rollNo string) (*domain.StudentCredential, error)
	UpdateParentPhone(rollNo, phone string) error
	ListAll() ([]domain.StudentCredential, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) CreateCredential(cred *domain.StudentCredential) error {
	if cred == nil {
		return errors.New("nil credential")
	}

	if err := r.db.Create(cred).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return domain.ErrDuplicateRollNo
		}
		return err
	}
	return nil
}

func (r *studentRepository) FindByRollNo(rollNo string) (*domain.StudentCredential, error) {
	var cred domain.StudentCredential
	if err := r.db.First(&cred, "roll_no = ?", rollNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

func (r *studentRepository) UpdateParentPhone(rollNo, phone string) error {
	res := r.db.Model(&domain.StudentCredential{}).
		Where("roll_no = ?", rollNo).
		Update("parent_phone_number", phone)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *studentRepository) ListAll() ([]domain.StudentCredential, error) {
	var creds []domain.StudentCredential
	if err := r.db.Order("created_at DESC").Find(&creds).Error; err != nil {
		return nil, err
	}
	return creds, nil
}
