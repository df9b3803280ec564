package services

import (
	"testing"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/dto"
	"github.com/ciet-hostel/gatepass-svc/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeStudentRepo struct {
	creds map[string]domain.StudentCredential
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{creds: map[string]domain.StudentCredential{}}
}

func (r *fakeStudentRepo) CreateCredential(cred *domain.StudentCredential) error {
	if _, ok := r.creds[cred.RollNo]; ok {
		return domain.ErrDuplicateRollNo
	}
	r.creds[cred.RollNo] = *cred
	return nil
}

func (r *fakeStudentRepo) FindByRollNo(rollNo string) (*domain.StudentCredential, error) {
	cred, ok := r.creds[rollNo]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cred, nil
}

func (r *fakeStudentRepo) UpdateParentPhone(rollNo, phone string) error {
	cred, ok := r.creds[rollNo]
	if !ok {
		return domain.ErrNotFound
	}
	cred.ParentPhoneNumber = &phone
	r.creds[rollNo] = cred
	return nil
}

func (r *fakeStudentRepo) ListAll() ([]domain.StudentCredential, error) {
	var out []domain.StudentCredential
	for _, c := range r.creds {
		out = append(out, c)
	}
	return out, nil
}

type fakeStaffRepo struct {
	accounts map[string]domain.StaffAccount
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{accounts: map[string]domain.StaffAccount{}}
}

func (r *fakeStaffRepo) FindByUsername(username string) (*domain.StaffAccount, error) {
	acc, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &acc, nil
}

func (r *fakeStaffRepo) Create(account *domain.StaffAccount) error {
	r.accounts[account.Username] = *account
	return nil
}

func newTestAccounts(t *testing.T) (AccountService, *fakeStudentRepo, *fakeStaffRepo) {
	t.Helper()
	students := newFakeStudentRepo()
	staff := newFakeStaffRepo()
	return NewAccountService(students, staff, helper.SetupAuth("test-secret")), students, staff
}

func registration() dto.RegisterRequest {
	phone := "9876543211"
	return dto.RegisterRequest{
		RollNo:            "22bcs001",
		Password:          "secret1",
		Name:              "Rahul Sharma",
		Department:        "CSE",
		Batch:             "2023",
		ParentPhoneNumber: &phone,
	}
}

func TestRegisterAndVerify(t *testing.T) {
	svc, _, _ := newTestAccounts(t)

	cred, err := svc.Register(registration())
	require.NoError(t, err)
	assert.Equal(t, "22bcs001", cred.RollNo)
	assert.NotEqual(t, "secret1", cred.PasswordHash, "password must be stored hashed")
	require.NotNil(t, cred.ParentPhoneNumber)
	assert.Equal(t, "9876543211", *cred.ParentPhoneNumber)

	got, err := svc.Verify("22bcs001", "secret1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rahul Sharma", got.Name)
}

func TestRegisterDuplicateRollNo(t *testing.T) {
	svc, students, _ := newTestAccounts(t)

	first, err := svc.Register(registration())
	require.NoError(t, err)

	second := registration()
	second.Name = "Impostor"
	_, err = svc.Register(second)
	assert.ErrorIs(t, err, domain.ErrDuplicateRollNo)

	kept, err := students.FindByRollNo("22bcs001")
	require.NoError(t, err)
	assert.Equal(t, first.Name, kept.Name, "first registration must be retained")
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAccounts(t)

	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"short password", func(r *dto.RegisterRequest) { r.Password = "abc" }},
		{"empty roll number", func(r *dto.RegisterRequest) { r.RollNo = "" }},
		{"empty name", func(r *dto.RegisterRequest) { r.Name = "  " }},
		{"bad parent phone", func(r *dto.RegisterRequest) { p := "12"; r.ParentPhoneNumber = &p }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := registration()
			tc.mutate(&input)
			_, err := svc.Register(input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestVerifyMismatchIsNotAnError(t *testing.T) {
	svc, _, _ := newTestAccounts(t)
	_, err := svc.Register(registration())
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		got, err := svc.Verify("22bcs001", "wrong")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown roll number", func(t *testing.T) {
		got, err := svc.Verify("99xyz999", "secret1")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestLoginStudentAndStaff(t *testing.T) {
	svc, _, staff := newTestAccounts(t)
	_, err := svc.Register(registration())
	require.NoError(t, err)

	hashed, err := bcrypt.GenerateFromPassword([]byte("wardenpass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, staff.Create(&domain.StaffAccount{
		Username:     "warden1",
		Name:         "Dr. Anil Kumar",
		Role:         domain.RoleWarden,
		PasswordHash: string(hashed),
	}))

	t.Run("student", func(t *testing.T) {
		resp, err := svc.Login(dto.LoginRequest{Username: "22bcs001", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, string(domain.RoleStudent), resp.Role)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("staff", func(t *testing.T) {
		resp, err := svc.Login(dto.LoginRequest{Username: "warden1", Password: "wardenpass"})
		require.NoError(t, err)
		assert.Equal(t, string(domain.RoleWarden), resp.Role)
		assert.Equal(t, "Dr. Anil Kumar", resp.Name)
	})

	t.Run("bad password", func(t *testing.T) {
		_, err := svc.Login(dto.LoginRequest{Username: "warden1", Password: "nope"})
		assert.Error(t, err)
	})
}

func TestUpdateParentPhoneNormalizes(t *testing.T) {
	svc, _, _ := newTestAccounts(t)
	_, err := svc.Register(registration())
	require.NoError(t, err)

	cred, err := svc.UpdateParentPhone("22bcs001", "+91 98765 00000")
	require.NoError(t, err)
	require.NotNil(t, cred.ParentPhoneNumber)
	assert.Equal(t, "9876500000", *cred.ParentPhoneNumber)

	_, err = svc.UpdateParentPhone("22bcs001", "12345")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateParentPhone("nosuch", "9876500000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
