package services

import (
	"errors"
	"testing"
	"time"

	"dormhub_app_echo/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name        string
		ledger      []models.Payment
		wantBalance float64
		wantDue     *time.Time
	}{
		{
			name:        "empty ledger",
			ledger:      []models.Payment{},
			wantBalance: 0,
			wantDue:     nil,
		},
		{
			name: "pending and overdue count, paid does not",
			ledger: []models.Payment{
				{Amount: 500, Status: models.PaymentStatusPending, Date: date(2024, 1, 10)},
				{Amount: 300, Status: models.PaymentStatusPaid, Date: date(2024, 1, 1)},
				{Amount: 200, Status: models.PaymentStatusOverdue, Date: date(2023, 12, 15)},
			},
			wantBalance: 700,
			wantDue:     ptr(date(2024, 1, 10)),
		},
		{
			name: "no pending entries leaves due date absent",
			ledger: []models.Payment{
				{Amount: 300, Status: models.PaymentStatusPaid, Date: date(2024, 1, 1)},
				{Amount: 200, Status: models.PaymentStatusOverdue, Date: date(2023, 12, 15)},
			},
			wantBalance: 200,
			wantDue:     nil,
		},
		{
			name: "first pending in ledger order wins",
			ledger: []models.Payment{
				{Amount: 100, Status: models.PaymentStatusPaid, Date: date(2024, 3, 1)},
				{Amount: 150, Status: models.PaymentStatusPending, Date: date(2024, 2, 1)},
				{Amount: 150, Status: models.PaymentStatusPending, Date: date(2024, 1, 1)},
			},
			wantBalance: 300,
			wantDue:     ptr(date(2024, 2, 1)),
		},
		{
			name: "all paid",
			ledger: []models.Payment{
				{Amount: 100, Status: models.PaymentStatusPaid, Date: date(2024, 1, 1)},
				{Amount: 100, Status: models.PaymentStatusPaid, Date: date(2023, 12, 1)},
			},
			wantBalance: 0,
			wantDue:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, due := Aggregate(tt.ledger)
			if balance != tt.wantBalance {
				t.Errorf("Aggregate() balance = %v; want %v", balance, tt.wantBalance)
			}
			switch {
			case due == nil && tt.wantDue != nil:
				t.Errorf("Aggregate() nextDue = nil; want %v", tt.wantDue)
			case due != nil && tt.wantDue == nil:
				t.Errorf("Aggregate() nextDue = %v; want nil", due)
			case due != nil && tt.wantDue != nil && !due.Equal(*tt.wantDue):
				t.Errorf("Aggregate() nextDue = %v; want %v", due, tt.wantDue)
			}
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestRecordPaymentInputValidate(t *testing.T) {
	valid := RecordPaymentInput{
		UserID: "u1",
		Amount: 450,
		Date:   date(2024, 5, 1),
		Type:   "rent",
		Status: "pending",
	}

	t.Run("valid input", func(t *testing.T) {
		ptype, pstatus, err := valid.Validate()
		if err != nil {
			t.Fatalf("Validate() error = %v; want nil", err)
		}
		if ptype != models.PaymentTypeRent || pstatus != models.PaymentStatusPending {
			t.Errorf("Validate() = (%v, %v); want (rent, pending)", ptype, pstatus)
		}
	})

	tests := []struct {
		name   string
		mutate func(*RecordPaymentInput)
	}{
		{"missing user", func(in *RecordPaymentInput) { in.UserID = "" }},
		{"negative amount", func(in *RecordPaymentInput) { in.Amount = -1 }},
		{"zero date", func(in *RecordPaymentInput) { in.Date = time.Time{} }},
		{"unknown type", func(in *RecordPaymentInput) { in.Type = "subscription" }},
		{"unknown status", func(in *RecordPaymentInput) { in.Status = "settled" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if _, _, err := in.Validate(); !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v; want ErrValidation", err)
			}
		})
	}
}
