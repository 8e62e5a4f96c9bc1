package services

import (
	"context"
	"errors"
	"time"

	"dormhub_app_echo/internal/models"
)

// Aggregate derives the outstanding balance and next due date from a
// ledger ordered most-recent-first. Balance is the sum of amounts still
// pending or overdue; paid entries are excluded. The next due date is
// the date of the first pending entry in ledger order, nil when the
// student has nothing pending. Pure function, no side effects.
func Aggregate(ledger []models.Payment) (float64, *time.Time) {
	var balance float64
	var nextDue *time.Time

	for i := range ledger {
		p := ledger[i]
		if p.Outstanding() {
			balance += p.Amount
		}
		if nextDue == nil && p.Status == models.PaymentStatusPending {
			due := p.Date
			nextDue = &due
		}
	}
	return balance, nextDue
}

// FinanceService composes student identity, ledger and aggregates into
// the per-request finance profile. Nothing here is cached: every call
// re-reads the ledger and recomputes the balance.
type FinanceService struct {
	users    *UserStore
	payments *PaymentStore
}

func NewFinanceService(users *UserStore, payments *PaymentStore) *FinanceService {
	return &FinanceService{users: users, payments: payments}
}

// Resolve turns a student key, either an internal identifier or a
// tenant code, into the identity record
func (s *FinanceService) Resolve(ctx context.Context, studentKey string) (models.User, error) {
	user, err := s.users.ByID(ctx, studentKey)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}
	return s.users.ByTenantCode(ctx, studentKey)
}

// ProfileForUser builds the finance profile for an already-resolved user
func (s *FinanceService) ProfileForUser(ctx context.Context, user models.User) (models.StudentFinanceProfile, error) {
	ledger, err := s.payments.LedgerForStudent(ctx, user.ID)
	if err != nil {
		return models.StudentFinanceProfile{}, err
	}

	balance, nextDue := Aggregate(ledger)

	return models.StudentFinanceProfile{
		UserID:             user.ID,
		FullName:           user.DisplayName(),
		TenantCode:         user.TenantCode,
		RoomNumber:         user.RoomNumber,
		Email:              user.Email,
		Phone:              user.Phone,
		PaymentHistory:     ledger,
		OutstandingBalance: balance,
		NextPaymentDue:     nextDue,
	}, nil
}

// Profile resolves the student key and builds the finance profile.
// Failures from the lookup or the ledger read pass through unchanged.
func (s *FinanceService) Profile(ctx context.Context, studentKey string) (models.StudentFinanceProfile, error) {
	user, err := s.Resolve(ctx, studentKey)
	if err != nil {
		return models.StudentFinanceProfile{}, err
	}
	return s.ProfileForUser(ctx, user)
}
