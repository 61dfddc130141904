package model

import "time"

// BillStatus represents the payment lifecycle state of a bill
type BillStatus string

const (
	BillStatusPending   BillStatus = "pending"
	BillStatusPaid      BillStatus = "paid"
	BillStatusOverdue   BillStatus = "overdue"
	BillStatusCancelled BillStatus = "cancelled"
)

// Bill represents a recurring or one-off payment obligation
type Bill struct {
	ID                string     `json:"id"`                           // Stable entity id; creates carry a synthetic id until the server responds
	UserID            string     `json:"user_id,omitempty"`            // Owner of the bill
	Name              string     `json:"name"`                         // Display name (e.g., "Electric - March")
	MerchantName      string     `json:"merchant_name,omitempty"`      // Payee
	Amount            float64    `json:"amount"`                       // Amount due
	Currency          string     `json:"currency"`                     // Currency code (ISO 4217)
	DueDate           time.Time  `json:"due_date"`                     // When the bill is due
	Status            BillStatus `json:"status"`                       // Payment lifecycle state
	IsRecurring       bool       `json:"is_recurring"`                 // Whether this bill repeats
	RecurrencePattern string     `json:"recurrence_pattern,omitempty"` // e.g., monthly, weekly
	PaidDate          *time.Time `json:"paid_date,omitempty"`          // Set when status becomes paid
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
