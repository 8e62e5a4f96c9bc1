package models

import (
	"time"
)

// PaymentType categorizes a ledger entry
type PaymentType string

const (
	PaymentTypeRent    PaymentType = "rent"
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeFine    PaymentType = "fine"
	PaymentTypeOther   PaymentType = "other"
)

// PaymentStatus tracks whether a ledger entry has been settled
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// ParsePaymentType maps a raw type string to a PaymentType. Unrecognized
// values fall back to PaymentTypeOther with ok=false, so read paths can
// tolerate legacy documents while write paths reject them.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch PaymentType(s) {
	case PaymentTypeRent, PaymentTypeDeposit, PaymentTypeFine, PaymentTypeOther:
		return PaymentType(s), true
	}
	return PaymentTypeOther, false
}

// ParsePaymentStatus maps a raw status string to a PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue:
		return PaymentStatus(s), true
	}
	return "", false
}

// Payment is a single entry in a student's financial ledger.
// Amount is always the nominal transaction value; status alone decides
// whether the entry counts toward the outstanding balance. Entries are
// never deleted, they form the audit trail.
type Payment struct {
	ID          string        `firestore:"-" json:"id"`
	UserID      string        `firestore:"userId" json:"userId"`
	Amount      float64       `firestore:"amount" json:"amount"`
	Date        time.Time     `firestore:"date" json:"date"`
	Type        PaymentType   `firestore:"type" json:"type"`
	Status      PaymentStatus `firestore:"status" json:"status"`
	Description string        `firestore:"description" json:"description"`
	CreatedAt   time.Time     `firestore:"createdAt" json:"created_at,omitempty"`
	UpdatedAt   time.Time     `firestore:"updatedAt" json:"updated_at,omitempty"`
}

// Outstanding reports whether the entry still counts toward the balance
func (p Payment) Outstanding() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusOverdue
}
