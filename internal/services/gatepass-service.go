package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/dto"
	"github.com/ciet-hostel/gatepass-svc/internal/interfaces"
	"github.com/ciet-hostel/gatepass-svc/internal/repository"
	"github.com/ciet-hostel/gatepass-svc/pkg/qr"
	"github.com/ciet-hostel/gatepass-svc/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type GatePassService interface {
	// Submit creates a new pass for the student with all three approval
	// slots pending.
	Submit(student *domain.StudentCredential, input dto.SubmitGatePassRequest) (*domain.GatePass, error)

	// RecordDecision advances exactly one slot of the chain.
	RecordDecision(passID string, stage domain.Stage, decision domain.Decision, actor, comment string) (*domain.GatePass, error)

	PendingFor(stage domain.Stage) ([]domain.GatePass, error)
	PendingCountFor(stage domain.Stage) (int64, error)
	HistoryFor(studentID string) ([]domain.GatePass, error)
	Get(passID string) (*domain.GatePass, error)
	ListAll() ([]domain.GatePass, error)
}

type gatePassService struct {
	repo     repository.GatePassRepository
	producer interfaces.ProducerHandler
	validate *validator.Validate

	// fallbackParentPhone substitutes for students with no parent number on
	// file. Normally empty, which disables substitution entirely.
	fallbackParentPhone string

	now func() time.Time
}

func NewGatePassService(
	repo repository.GatePassRepository,
	producer interfaces.ProducerHandler,
	fallbackParentPhone string,
) GatePassService {
	return &gatePassService{
		repo:                repo,
		producer:            producer,
		validate:            validator.New(),
		fallbackParentPhone: fallbackParentPhone,
		now:                 time.Now,
	}
}

func (s *gatePassService) Submit(student *domain.StudentCredential, input dto.SubmitGatePassRequest) (*domain.GatePass, error) {
	if student == nil {
		return nil, fmt.Errorf("%w: missing student", domain.ErrValidation)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}

	now := s.now()
	if !input.FromDate.After(now) {
		return nil, fmt.Errorf("%w: from date must be in the future", domain.ErrValidation)
	}
	if input.ToDate.Before(input.FromDate) {
		return nil, fmt.Errorf("%w: to date must not be before from date", domain.ErrValidation)
	}

	pass := &domain.GatePass{
		ID:            uuid.NewString(),
		StudentID:     student.RollNo,
		StudentName:   student.Name,
		Department:    student.Department,
		Batch:         student.Batch,
		Reason:        reason,
		FromDate:      input.FromDate,
		ToDate:        input.ToDate,
		Status:        domain.PassStatusPending,
		SchemaVersion: domain.SchemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if phone := s.parentPhone(student); phone != "" {
		pass.ParentPhoneNumber = &phone
	}

	if err := s.repo.Create(pass); err != nil {
		return nil, err
	}

	s.publish(dto.EventPassSubmitted, pass, "")
	return pass, nil
}

func (s *gatePassService) RecordDecision(passID string, stage domain.Stage, decision domain.Decision, actor, comment string) (*domain.GatePass, error) {
	pass, err := s.repo.FindByID(passID)
	if err != nil {
		return nil, err
	}

	if err := pass.ApplyDecision(stage, decision, actor, strings.TrimSpace(comment), s.now()); err != nil {
		return nil, err
	}

	event := ""
	switch {
	case pass.Status == domain.PassStatusRejected:
		event = dto.EventPassRejected
	case pass.Status == domain.PassStatusApproved:
		// Final approval: mint the credential artifact and queue the parent
		// SMS before committing, so parent_notified lands in the same write.
		code, err := qr.DataURI(qr.Ticket(pass.ID, pass.StudentID, pass.FromDate, pass.ToDate))
		if err != nil {
			return nil, err
		}
		pass.QRCode = &code

		event = dto.EventPassApproved
		pass.ParentNotified = pass.ParentPhoneNumber != nil && *pass.ParentPhoneNumber != ""
	}

	if err := s.repo.SaveDecision(pass); err != nil {
		return nil, err
	}

	if event != "" {
		s.publish(event, pass, string(stage))
	}
	return pass, nil
}

func (s *gatePassService) PendingFor(stage domain.Stage) ([]domain.GatePass, error) {
	return s.repo.ListPendingForStage(stage)
}

func (s *gatePassService) PendingCountFor(stage domain.Stage) (int64, error) {
	return s.repo.CountPendingForStage(stage)
}

func (s *gatePassService) HistoryFor(studentID string) ([]domain.GatePass, error) {
	return s.repo.ListByStudent(studentID)
}

func (s *gatePassService) Get(passID string) (*domain.GatePass, error) {
	return s.repo.FindByID(passID)
}

func (s *gatePassService) ListAll() ([]domain.GatePass, error) {
	return s.repo.ListAll()
}

func (s *gatePassService) parentPhone(student *domain.StudentCredential) string {
	if student.ParentPhoneNumber != nil {
		if phone := utils.NormalizePhone(*student.ParentPhoneNumber); phone != "" {
			return phone
		}
	}
	return s.fallbackParentPhone
}

// publish emits a domain event, best effort. A broker failure is logged and
// never surfaces as the operation's result.
func (s *gatePassService) publish(key string, pass *domain.GatePass, stage string) {
	if s.producer == nil {
		return
	}

	event := dto.GatePassEvent{
		PassID:      pass.ID,
		StudentID:   pass.StudentID,
		StudentName: pass.StudentName,
		Status:      string(pass.Status),
		Stage:       stage,
		Reason:      pass.Reason,
		FromDate:    pass.FromDate.Format(time.RFC3339),
		ToDate:      pass.ToDate.Format(time.RFC3339),
	}
	if pass.ParentPhoneNumber != nil {
		event.ParentPhoneNumber = *pass.ParentPhoneNumber
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal %s event: %v", key, err)
		return
	}
	if err := s.producer.PublishMessage([]byte(key), payload); err != nil {
		log.Printf("publish %s event: %v", key, err)
	}
}
