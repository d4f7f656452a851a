package domain

import "time"

// TransactionType classifies payments between members.
type TransactionType string

const (
	TransactionTypeSalary   TransactionType = "SALARY"
	TransactionTypeBonus    TransactionType = "BONUS"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction records a completed payment from sender to receiver.
type Transaction struct {
	ID          string
	SenderID    string
	ReceiverID  string
	Amount      float64
	Type        TransactionType
	Description string
	CreatedAt   time.Time
}
