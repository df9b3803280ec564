package handlers

import (
	"encoding/json"

	"github.com/ciet-hostel/gatepass-svc/internal/dto"
	"github.com/ciet-hostel/gatepass-svc/internal/services"
)

// SMSHandler consumes gate-pass events off the queue and hands them to the
// SMS service. It satisfies interfaces.ConsumerHandler.
type SMSHandler struct {
	svc *services.SMSService
}

func NewSMSHandler(svc *services.SMSService) *SMSHandler {
	return &SMSHandler{svc: svc}
}

func (h *SMSHandler) HandleMessage(key, value string) error {
	var event dto.GatePassEvent
	if err := json.Unmarshal([]byte(value), &event); err != nil {
		return err
	}
	return h.svc.SendPassUpdate(key, event)
}
