package models

import (
	"encoding/base64"
	"fmt"
	"time"
)

// FinanceReport is an immutable archival snapshot of a student's finance
// profile. ReportData holds either a JSON snapshot or a base64-encoded
// rendered document; reports are never updated or deleted once written.
type FinanceReport struct {
	ID         string    `firestore:"-" json:"id"`
	UserID     string    `firestore:"userId" json:"userId"`
	TenantCode string    `firestore:"tenantCode" json:"tenantCode"`
	ReportDate time.Time `firestore:"reportDate" json:"reportDate"`
	ReportURL  string    `firestore:"reportUrl,omitempty" json:"reportUrl,omitempty"`
	ReportData string    `firestore:"reportData" json:"-"`
	CreatedAt  time.Time `firestore:"createdAt" json:"created_at"`
}

// Filename is the suggested download name for the report's rendered document
func (r FinanceReport) Filename() string {
	return fmt.Sprintf("finance-report-%s.pdf", r.ID)
}

// Payload decodes the stored document payload back to raw bytes. The
// round trip through base64 is exact. An empty ReportData field means the
// report has no stored document.
func (r FinanceReport) Payload() ([]byte, error) {
	if r.ReportData == "" {
		return nil, fmt.Errorf("report %s has no stored payload", r.ID)
	}
	data, err := base64.StdEncoding.DecodeString(r.ReportData)
	if err != nil {
		return nil, fmt.Errorf("decode report %s payload: %w", r.ID, err)
	}
	return data, nil
}

// EncodePayload encodes a rendered document for storage in the
// ReportData field
func EncodePayload(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// StudentFinanceProfile is the merged identity + ledger view handed to
// callers and archived by report generation. It is computed per request
// and never persisted as-is.
type StudentFinanceProfile struct {
	UserID             string     `json:"userId"`
	FullName           string     `json:"fullName"`
	TenantCode         string     `json:"tenantCode"`
	RoomNumber         string     `json:"roomNumber"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	PaymentHistory     []Payment  `json:"paymentHistory"`
	OutstandingBalance float64    `json:"outstandingBalance"`
	NextPaymentDue     *time.Time `json:"nextPaymentDue,omitempty"`
}
