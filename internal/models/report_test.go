package models

import (
	"bytes"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"plain text", []byte("monthly statement")},
		{"binary with nulls", []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0x00, 0x1a}},
		{"single byte", []byte{0x42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FinanceReport{ID: "r1", ReportData: EncodePayload(tt.raw)}
			got, err := r.Payload()
			if err != nil {
				t.Fatalf("Payload() error = %v; want nil", err)
			}
			if !bytes.Equal(got, tt.raw) {
				t.Errorf("Payload() = %v; want %v", got, tt.raw)
			}
		})
	}
}

func TestPayloadAbsent(t *testing.T) {
	r := FinanceReport{ID: "r1"}
	if _, err := r.Payload(); err == nil {
		t.Error("Payload() with no stored data: error = nil; want error")
	}
}

func TestPayloadInvalidEncoding(t *testing.T) {
	r := FinanceReport{ID: "r1", ReportData: "!!not base64!!"}
	if _, err := r.Payload(); err == nil {
		t.Error("Payload() with malformed data: error = nil; want error")
	}
}

func TestReportFilename(t *testing.T) {
	r := FinanceReport{ID: "abc123"}
	want := "finance-report-abc123.pdf"
	if got := r.Filename(); got != want {
		t.Errorf("Filename() = %q; want %q", got, want)
	}
}
