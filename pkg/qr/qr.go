// Package qr renders the gate-pass credential artifact embedded in approved
// records.
package qr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

type PassTicket struct {
	PassID    string `json:"pass_id"`
	StudentID string `json:"student_id"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
}

// DataURI encodes the ticket as a PNG QR code wrapped in a base64 data URI,
// the shape the front-end renders directly into an <img>.
func DataURI(ticket PassTicket) (string, error) {
	if ticket.PassID == "" {
		return "", errors.New("empty pass id")
	}

	payload, err := json.Marshal(ticket)
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Ticket builds the QR payload from an approved pass's fields.
func Ticket(passID, studentID string, from, to time.Time) PassTicket {
	return PassTicket{
		PassID:    passID,
		StudentID: studentID,
		FromDate:  from.Format(time.RFC3339),
		ToDate:    to.Format(time.RFC3339),
	}
}
