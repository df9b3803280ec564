package services

import (
	"bytes"
	"fmt"
	"log"
	"text/template"

	"github.com/ciet-hostel/gatepass-svc/internal/dto"
)

// Notifier delivers one rendered SMS. The production build would plug an SMS
// gateway client in here; the default implementation only logs.
type Notifier interface {
	Send(phone, message string) error
}

type logNotifier struct{}

func (logNotifier) Send(phone, message string) error {
	log.Printf("[SMS] to=%s body=%q", phone, message)
	return nil
}

func NewLogNotifier() Notifier { return logNotifier{} }

var smsTemplates = map[string]*template.Template{
	dto.EventPassSubmitted: template.Must(template.New("submitted").Parse(
		"CIET Hostel: {{.StudentName}} ({{.StudentID}}) applied for a gate pass from {{.FromDate}} to {{.ToDate}}. Reason: {{.Reason}}.")),
	dto.EventPassApproved: template.Must(template.New("approved").Parse(
		"CIET Hostel: gate pass for {{.StudentName}} ({{.StudentID}}) has been APPROVED for {{.FromDate}} to {{.ToDate}}.")),
	dto.EventPassRejected: template.Must(template.New("rejected").Parse(
		"CIET Hostel: gate pass for {{.StudentName}} ({{.StudentID}}) has been REJECTED at the {{.Stage}} stage.")),
}

type SMSService struct {
	notifier Notifier
}

func NewSMSService(notifier Notifier) *SMSService {
	return &SMSService{notifier: notifier}
}

// SendPassUpdate renders and delivers the parent SMS for one event. Events
// without a phone number on file are skipped, not substituted.
func (s *SMSService) SendPassUpdate(eventKey string, event dto.GatePassEvent) error {
	if event.ParentPhoneNumber == "" {
		log.Printf("[SMS] pass=%s no parent phone on file - skipping", event.PassID)
		return nil
	}

	tmpl, ok := smsTemplates[eventKey]
	if !ok {
		return fmt.Errorf("no sms template for event %q", eventKey)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, event); err != nil {
		return err
	}

	return s.notifier.Send(event.ParentPhoneNumber, buf.String())
}
