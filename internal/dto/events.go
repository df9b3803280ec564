package dto

// Event keys published to the gate-pass topic. The SMS worker dispatches on
// the message key.
const (
	EventPassSubmitted = "gatepass.submitted"
	EventPassApproved  = "gatepass.approved"
	EventPassRejected  = "gatepass.rejected"
)

type GatePassEvent struct {
	PassID      string `json:"pass_id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
	Stage       string `json:"stage,omitempty"`
	Reason      string `json:"reason"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`

	// Empty when no parent phone is on file; the worker then skips delivery.
	ParentPhoneNumber string `json:"parent_phone_number,omitempty"`
}
