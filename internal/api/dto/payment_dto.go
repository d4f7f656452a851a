package dto

import "time"

// PaymentRequest payload for sending a payment.
type PaymentRequest struct {
	ReceiverUsername string  `json:"receiver_username"`
	Amount           float64 `json:"amount"`
	Type             string  `json:"type"`
	Description      string  `json:"description"`
}

// TransactionResponse describes a completed payment.
type TransactionResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
