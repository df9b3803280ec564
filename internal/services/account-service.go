package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/dto"
	"github.com/ciet-hostel/gatepass-svc/internal/helper"
	"github.com/ciet-hostel/gatepass-svc/internal/repository"
	"github.com/ciet-hostel/gatepass-svc/pkg/utils"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type AccountService interface {
	// Register creates a student credential; a taken roll number fails with
	// domain.ErrDuplicateRollNo and leaves the first registration in place.
	Register(input dto.RegisterRequest) (*domain.StudentCredential, error)

	// Verify returns the matching credential, or (nil, nil) when the roll
	// number is unknown or the password does not match. Only store faults
	// come back as errors.
	Verify(rollNo, password string) (*domain.StudentCredential, error)

	// Login authenticates a student (by roll number) or a staff account (by
	// username) and issues a session token carrying the role.
	Login(input dto.LoginRequest) (*dto.LoginResponse, error)

	GetStudent(rollNo string) (*domain.StudentCredential, error)
	ListStudents() ([]domain.StudentCredential, error)
	UpdateParentPhone(rollNo, phone string) (*domain.StudentCredential, error)
}

type accountService struct {
	students repository.StudentRepository
	staff    repository.StaffRepository
	auth     helper.Auth
	validate *validator.Validate
}

func NewAccountService(
	students repository.StudentRepository,
	staff repository.StaffRepository,
	auth helper.Auth,
) AccountService {
	return &accountService{
		students: students,
		staff:    staff,
		auth:     auth,
		validate: validator.New(),
	}
}

func (a *accountService) Register(input dto.RegisterRequest) (*domain.StudentCredential, error) {
	input.RollNo = strings.ToLower(strings.TrimSpace(input.RollNo))
	input.Name = strings.TrimSpace(input.Name)

	if err := a.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	cred := &domain.StudentCredential{
		RollNo:       input.RollNo,
		PasswordHash: string(hashed),
		Name:         input.Name,
		Department:   input.Department,
		Batch:        input.Batch,
	}
	if input.ParentPhoneNumber != nil {
		if phone := utils.NormalizePhone(*input.ParentPhoneNumber); phone != "" {
			cred.ParentPhoneNumber = &phone
		}
	}

	if err := a.students.CreateCredential(cred); err != nil {
		return nil, err
	}
	return cred, nil
}

func (a *accountService) Verify(rollNo, password string) (*domain.StudentCredential, error) {
	rollNo = strings.ToLower(strings.TrimSpace(rollNo))
	if rollNo == "" || password == "" {
		return nil, nil
	}

	cred, err := a.students.FindByRollNo(rollNo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if a.auth.VerifyPassword(password, cred.PasswordHash) != nil {
		return nil, nil
	}
	return cred, nil
}

func (a *accountService) Login(input dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	// Staff first; roll numbers and staff usernames live in separate tables.
	if staff, err := a.staff.FindByUsername(username); err == nil {
		if a.auth.VerifyPassword(password, staff.PasswordHash) != nil {
			return nil, errors.New("invalid credentials")
		}
		token, err := a.auth.GenerateToken(staff.Username, staff.Name, string(staff.Role))
		if err != nil {
			return nil, err
		}
		return &dto.LoginResponse{Token: token, Name: staff.Name, Role: string(staff.Role)}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cred, err := a.Verify(username, password)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := a.auth.GenerateToken(cred.RollNo, cred.Name, string(domain.RoleStudent))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Name: cred.Name, Role: string(domain.RoleStudent)}, nil
}

func (a *accountService) GetStudent(rollNo string) (*domain.StudentCredential, error) {
	return a.students.FindByRollNo(strings.ToLower(strings.TrimSpace(rollNo)))
}

func (a *accountService) ListStudents() ([]domain.StudentCredential, error) {
	return a.students.ListAll()
}

func (a *accountService) UpdateParentPhone(rollNo, phone string) (*domain.StudentCredential, error) {
	rollNo = strings.ToLower(strings.TrimSpace(rollNo))

	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return nil, fmt.Errorf("%w: parent phone must be a valid 10-digit number", domain.ErrValidation)
	}

	if err := a.students.UpdateParentPhone(rollNo, normalized); err != nil {
		return nil, err
	}
	return a.students.FindByRollNo(rollNo)
}
