package domain

import "time"

// StudentCredential is the registry entry keyed by roll number. There is no
// update or delete path for the credential itself; only the parent phone
// number is maintained by admins.
type StudentCredential struct {
	RollNo       string `gorm:"type:varchar(20);primaryKey" json:"roll_no"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"type:varchar(120);not null" json:"name"`
	Department   string `gorm:"type:varchar(60)" json:"department"`
	Batch        string `gorm:"type:varchar(10)" json:"batch"`

	ParentPhoneNumber *string `gorm:"type:varchar(20)" json:"parent_phone_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StaffRole string

const (
	RoleStudent StaffRole = "student"
	RoleTutor   StaffRole = "tutor"
	RoleWarden  StaffRole = "warden"
	RoleHod     StaffRole = "hod"
	RoleAdmin   StaffRole = "admin"
)

// StageForRole maps an approver role onto its slot in the chain. Non-approver
// roles map to false.
func StageForRole(role StaffRole) (Stage, bool) {
	switch role {
	case RoleTutor:
		return StageTutor, true
	case RoleWarden:
		return StageWarden, true
	case RoleHod:
		return StageHod, true
	default:
		return "", false
	}
}

// StaffAccount is a tutor, warden, hod or admin login. Staff are seeded at
// startup; self-service staff registration is not a thing.
type StaffAccount struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	Role         StaffRole `gorm:"type:varchar(20);not null" json:"role"`
	Department   *string   `gorm:"type:varchar(60)" json:"department,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
