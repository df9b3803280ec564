package repository

import (
	"errors"
	"fmt"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"gorm.io/gorm"
)

type GatePassRepository interface {
	Create(pass *domain.GatePass) error
	FindByID(id string) (*domain.GatePass, error)

	// SaveDecision persists an in-memory decision. The write is guarded by
	// the stored overall status still being pending, so a racing decision on
	// the same pass loses with ErrAlreadyDecided instead of clobbering it.
	SaveDecision(pass *domain.GatePass) error

	ListByStudent(studentID string) ([]domain.GatePass, error)
	ListPendingForStage(stage domain.Stage) ([]domain.GatePass, error)
	CountPendingForStage(stage domain.Stage) (int64, error)
	ListAll() ([]domain.GatePass, error)
}

type gatePassRepository struct {
	db *gorm.DB
}

func NewGatePassRepository(db *gorm.DB) GatePassRepository {
	return &gatePassRepository{db: db}
}

func (r *gatePassRepository) Create(pass *domain.GatePass) error {
	return r.db.Create(pass).Error
}

func (r *gatePassRepository) FindByID(id string) (*domain.GatePass, error) {
	var pass domain.GatePass
	if err := r.db.First(&pass, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &pass, nil
}

func (r *gatePassRepository) SaveDecision(pass *domain.GatePass) error {
	res := r.db.Model(pass).
		Where("status = ?", domain.PassStatusPending).
		Select("*").
		Omit("id", "created_at").
		Updates(pass)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyDecided
	}
	return nil
}

func (r *gatePassRepository) ListByStudent(studentID string) ([]domain.GatePass, error) {
	var passes []domain.GatePass
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&passes).Error
	if err != nil {
		return nil, err
	}
	return passes, nil
}

// stageQueue scopes a query to the records a stage should currently act on.
// Earlier stages must all be approved and the stage's own slot still pending,
// so the three queues partition the non-terminal records.
func stageQueue(tx *gorm.DB, stage domain.Stage) (*gorm.DB, error) {
	for _, earlier := range domain.StageOrder {
		if earlier == stage {
			return tx.Where(fmt.Sprintf("%s_status = ?", stage), domain.PassStatusPending), nil
		}
		tx = tx.Where(fmt.Sprintf("%s_status = ?", earlier), domain.PassStatusApproved)
	}
	return nil, fmt.Errorf("%w: unknown stage %q", domain.ErrValidation, stage)
}

func (r *gatePassRepository) ListPendingForStage(stage domain.Stage) ([]domain.GatePass, error) {
	tx, err := stageQueue(r.db.Model(&domain.GatePass{}), stage)
	if err != nil {
		return nil, err
	}

	var passes []domain.GatePass
	if err := tx.Order("created_at DESC").Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

func (r *gatePassRepository) CountPendingForStage(stage domain.Stage) (int64, error) {
	tx, err := stageQueue(r.db.Model(&domain.GatePass{}), stage)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *gatePassRepository) ListAll() ([]domain.GatePass, error) {
	var passes []domain.GatePass
	if err := r.db.Order("created_at DESC").Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}
