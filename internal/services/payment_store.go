package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dormhub_app_echo/internal/models"
)

const paymentsCollection = "payments"

// PaymentStore is the ledger reader/writer over the payments collection.
// Ledger entries are append-only; only their status may change after the
// fact, never the amount.
type PaymentStore struct {
	fs *firestore.Client
}

func NewPaymentStore(fs *firestore.Client) *PaymentStore {
	return &PaymentStore{fs: fs}
}

func docToPayment(doc *firestore.DocumentSnapshot) (models.Payment, error) {
	var p models.Payment
	if err := doc.DataTo(&p); err != nil {
		return models.Payment{}, fmt.Errorf("decode payment %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
	}
	p.ID = doc.Ref.ID
	// Legacy documents may carry a type value written before the enum
	// settled; unknown values read as "other" rather than failing the
	// whole ledger.
	p.Type, _ = models.ParsePaymentType(string(p.Type))
	return p, nil
}

// LedgerForStudent returns every payment belonging to the student, most
// recent first. No pagination: ledgers are small, one per resident.
func (s *PaymentStore) LedgerForStudent(ctx context.Context, userID string) ([]models.Payment, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(paymentsCollection).
		Where("userId", "==", userID).
		OrderBy("date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	ledger := []models.Payment{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch ledger for %s: %w: %w", userID, ErrStoreUnavailable, err)
		}
		p, err := docToPayment(doc)
		if err != nil {
			return nil, err
		}
		ledger = append(ledger, p)
	}
	return ledger, nil
}

// RecordPaymentInput is the administrator-supplied transaction to append
// to a student's ledger
type RecordPaymentInput struct {
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

// Validate checks required fields and enum values. Unlike the read path,
// writes reject unrecognized type values instead of defaulting them.
func (in RecordPaymentInput) Validate() (models.PaymentType, models.PaymentStatus, error) {
	if in.UserID == "" {
		return "", "", fmt.Errorf("userId is required: %w", ErrValidation)
	}
	if in.Amount < 0 {
		return "", "", fmt.Errorf("amount must not be negative: %w", ErrValidation)
	}
	if in.Date.IsZero() {
		return "", "", fmt.Errorf("date is required: %w", ErrValidation)
	}
	ptype, ok := models.ParsePaymentType(in.Type)
	if !ok {
		return "", "", fmt.Errorf("unknown payment type %q: %w", in.Type, ErrValidation)
	}
	pstatus, ok := models.ParsePaymentStatus(in.Status)
	if !ok {
		return "", "", fmt.Errorf("unknown payment status %q: %w", in.Status, ErrValidation)
	}
	return ptype, pstatus, nil
}

// Record appends a transaction to the student's ledger and returns the
// new entry's identifier
func (s *PaymentStore) Record(ctx context.Context, in RecordPaymentInput) (string, error) {
	ptype, pstatus, err := in.Validate()
	if err != nil {
		return "", err
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	now := time.Now()
	ref, _, err := s.fs.Collection(paymentsCollection).Add(ctx, models.Payment{
		UserID:      in.UserID,
		Amount:      in.Amount,
		Date:        in.Date,
		Type:        ptype,
		Status:      pstatus,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return "", fmt.Errorf("record payment for %s: %w: %w", in.UserID, ErrStoreUnavailable, err)
	}
	return ref.ID, nil
}

// UpdateStatus mutates the settlement status of a single ledger entry
func (s *PaymentStore) UpdateStatus(ctx context.Context, paymentID string, newStatus models.PaymentStatus) error {
	if _, ok := models.ParsePaymentStatus(string(newStatus)); !ok {
		return fmt.Errorf("unknown payment status %q: %w", newStatus, ErrValidation)
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	_, err := s.fs.Collection(paymentsCollection).Doc(paymentID).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
		}
		return fmt.Errorf("update payment %s: %w: %w", paymentID, ErrStoreUnavailable, err)
	}
	return nil
}

// MarkOverdue flips pending payments dated before the cutoff to overdue
// and returns how many entries were touched. Used by the worker's
// nightly sweep; amounts are never modified.
func (s *PaymentStore) MarkOverdue(ctx context.Context, cutoff time.Time) (int, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(paymentsCollection).
		Where("status", "==", string(models.PaymentStatusPending)).
		Where("date", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	bw := s.fs.BulkWriter(ctx)
	count := 0
	now := time.Now()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("scan pending payments: %w: %w", ErrStoreUnavailable, err)
		}
		_, err = bw.Update(doc.Ref, []firestore.Update{
			{Path: "status", Value: models.PaymentStatusOverdue},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return count, fmt.Errorf("queue overdue update for %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
		count++
	}
	bw.End()
	return count, nil
}
