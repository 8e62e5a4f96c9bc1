package models

import (
	"testing"
)

func TestParsePaymentType(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   PaymentType
		wantOK bool
	}{
		{"rent", "rent", PaymentTypeRent, true},
		{"deposit", "deposit", PaymentTypeDeposit, true},
		{"fine", "fine", PaymentTypeFine, true},
		{"other", "other", PaymentTypeOther, true},
		{"unknown value defaults to other", "subscription", PaymentTypeOther, false},
		{"empty value defaults to other", "", PaymentTypeOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePaymentType(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePaymentType(%q) = (%v, %v); want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParsePaymentStatus(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   PaymentStatus
		wantOK bool
	}{
		{"paid", "paid", PaymentStatusPaid, true},
		{"pending", "pending", PaymentStatusPending, true},
		{"overdue", "overdue", PaymentStatusOverdue, true},
		{"unknown value is rejected", "settled", "", false},
		{"empty value is rejected", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePaymentStatus(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePaymentStatus(%q) = (%v, %v); want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPaymentOutstanding(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentStatusPaid, false},
		{PaymentStatusPending, true},
		{PaymentStatusOverdue, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			p := Payment{Status: tt.status}
			if p.Outstanding() != tt.want {
				t.Errorf("Outstanding() with status %s = %v; want %v", tt.status, p.Outstanding(), tt.want)
			}
		})
	}
}
