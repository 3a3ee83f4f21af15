package domain

import "time"

// InstallmentStatus is the status of a scheduled payment as seen by a reader.
// Only the paid/pending distinction is ever persisted; overdue is derived at
// read time and must never be written back.
type InstallmentStatus string

const (
	StatusPending InstallmentStatus = "pending"
	StatusPaid    InstallmentStatus = "paid"
	StatusOverdue InstallmentStatus = "overdue"
)

// InstallmentPlan is fully derived from its three inputs and recomputed on
// every change; it is never stored on its own.
type InstallmentPlan struct {
	TotalPrice        float64 `json:"total_price"`
	DownPayment       float64 `json:"down_payment"`
	InstallmentCount  int     `json:"installment_count"`
	RemainingBalance  float64 `json:"remaining_balance"`
	InstallmentAmount float64 `json:"installment_amount"`
}

// Installment is one scheduled partial payment of a financed balance.
type Installment struct {
	ID             string    `json:"id"`
	ContractID     string    `json:"contract_id"`
	SequenceNumber int       `json:"sequence_number"` // 1..N
	DueDate        time.Time `json:"due_date"`
	Amount         float64   `json:"amount"`
	Paid           bool      `json:"paid"`
}
