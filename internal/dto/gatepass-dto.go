package dto

import "time"

type SubmitGatePassRequest struct {
	Reason   string    `json:"reason" validate:"required"`
	FromDate time.Time `json:"from_date" validate:"required"`
	ToDate   time.Time `json:"to_date" validate:"required"`
}

type DecisionRequest struct {
	Comments string `json:"comments"`
}

type PendingCountResponse struct {
	Count int64 `json:"count"`
}
