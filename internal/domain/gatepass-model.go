package domain

import (
	"fmt"
	"time"
)

type PassStatus string

const (
	PassStatusPending  PassStatus = "pending"
	PassStatusApproved PassStatus = "approved"
	PassStatusRejected PassStatus = "rejected"
)

type Stage string

const (
	StageTutor  Stage = "tutor"
	StageWarden Stage = "warden"
	StageHod    Stage = "hod"
)

// StageOrder is the single place the approval sequence is written down.
// Ordering checks walk this slice instead of branching on stage names.
var StageOrder = []Stage{StageTutor, StageWarden, StageHod}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// SchemaVersion tags persisted rows so a later migration can tell
// generations apart.
const SchemaVersion = 1

// Approval is one stage's slot inside a gate pass. Timestamp, comment and
// actor stay nil until the slot is decided; a slot is decided at most once.
type Approval struct {
	Status     PassStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	Comments   *string    `gorm:"type:text" json:"comments,omitempty"`
	ApprovedBy *string    `gorm:"type:varchar(120)" json:"approved_by,omitempty"`
}

func (a Approval) Decided() bool { return a.Status != PassStatusPending }

type GatePass struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// Snapshot of the requester at submission time. A later credential
	// change does not retroactively alter a submitted pass.
	StudentID   string `gorm:"type:varchar(40);not null;index" json:"student_id"`
	StudentName string `gorm:"type:varchar(120);not null" json:"student_name"`
	Department  string `gorm:"type:varchar(60)" json:"department"`
	Batch       string `gorm:"type:varchar(10)" json:"batch"`

	Reason   string    `gorm:"type:text;not null" json:"reason"`
	FromDate time.Time `gorm:"not null" json:"from_date"`
	ToDate   time.Time `gorm:"not null" json:"to_date"`

	// Derived from the three slots; kept in sync by ApplyDecision.
	Status PassStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	TutorApproval  Approval `gorm:"embedded;embeddedPrefix:tutor_" json:"tutor_approval"`
	WardenApproval Approval `gorm:"embedded;embeddedPrefix:warden_" json:"warden_approval"`
	HodApproval    Approval `gorm:"embedded;embeddedPrefix:hod_" json:"hod_approval"`

	ParentNotified    bool    `gorm:"not null;default:false" json:"parent_notified"`
	ParentPhoneNumber *string `gorm:"type:varchar(20)" json:"parent_phone_number,omitempty"`
	QRCode            *string `gorm:"type:text" json:"qr_code,omitempty"`

	SchemaVersion int `gorm:"not null;default:1" json:"schema_version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *GatePass) Slot(stage Stage) *Approval {
	switch stage {
	case StageTutor:
		return &p.TutorApproval
	case StageWarden:
		return &p.WardenApproval
	case StageHod:
		return &p.HodApproval
	default:
		return nil
	}
}

// Terminal reports whether the pass can take no further decisions.
func (p *GatePass) Terminal() bool {
	return p.Status == PassStatusApproved || p.Status == PassStatusRejected
}

// FinalStage reports whether stage is the last link of the chain.
func FinalStage(stage Stage) bool {
	return stage == StageOrder[len(StageOrder)-1]
}

// ApplyDecision records one stage's decision on the pass in memory. It
// enforces the ordered protocol: a terminal pass or an already-decided slot
// fails with ErrAlreadyDecided, and a stage whose predecessors are not all
// approved fails with ErrStageOutOfOrder. On success the slot is filled,
// the overall status is recomputed and updated_at is refreshed. The caller
// persists the result; a failed call leaves the pass untouched.
func (p *GatePass) ApplyDecision(stage Stage, decision Decision, actor, comment string, now time.Time) error {
	slot := p.Slot(stage)
	if slot == nil {
		return fmt.Errorf("%w: unknown stage %q", ErrValidation, stage)
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}

	// A rejection anywhere is absorbing: later stages are never asked.
	if p.Terminal() {
		return ErrAlreadyDecided
	}
	if slot.Decided() {
		return ErrAlreadyDecided
	}
	for _, earlier := range StageOrder {
		if earlier == stage {
			break
		}
		if p.Slot(earlier).Status != PassStatusApproved {
			return fmt.Errorf("%w: %s decision requires %s approval first", ErrStageOutOfOrder, stage, earlier)
		}
	}

	slot.Status = PassStatus(decision)
	slot.Timestamp = &now
	if comment != "" {
		slot.Comments = &comment
	}
	if actor != "" {
		slot.ApprovedBy = &actor
	}

	p.Status = p.deriveStatus()
	p.UpdatedAt = now
	return nil
}

// deriveStatus recomputes the overall status from the three slots:
// rejected if any slot is rejected, approved only when all three are.
func (p *GatePass) deriveStatus() PassStatus {
	approved := 0
	for _, stage := range StageOrder {
		switch p.Slot(stage).Status {
		case PassStatusRejected:
			return PassStatusRejected
		case PassStatusApproved:
			approved++
		}
	}
	if approved == len(StageOrder) {
		return PassStatusApproved
	}
	return PassStatusPending
}
