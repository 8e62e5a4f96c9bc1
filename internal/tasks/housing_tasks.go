package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"dormhub_app_echo/internal/services"
)

// Task names known to the worker
const (
	TaskMarkOverduePayments    = "mark_overdue_payments"
	TaskGenerateMonthlyReports = "generate_monthly_reports"
	TaskPaymentReminder        = "payment_reminder"
)

// Deps carries the services the housing task handlers close over
type Deps struct {
	Users    *services.UserStore
	Payments *services.PaymentStore
	Finance  *services.FinanceService
	Reports  *services.ReportStore
	Email    *services.EmailService
}

// Define registers the housing task handlers with the global registry
func Define(deps Deps) {
	RegisterHandler(TaskMarkOverduePayments, markOverduePayments(deps))
	RegisterHandler(TaskGenerateMonthlyReports, generateMonthlyReports(deps))
	RegisterHandler(TaskPaymentReminder, paymentReminder(deps))
}

// markOverduePayments flips pending ledger entries past their date to
// overdue. Safe to re-run; already-overdue entries are not touched.
func markOverduePayments(deps Deps) TaskHandler {
	return func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
		count, err := deps.Payments.MarkOverdue(ctx, time.Now())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"marked": count}, nil
	}
}

// generateMonthlyReports archives a fresh finance snapshot for every
// resident. A failure on one student doesn't stop the run; failures are
// counted and reported in the result.
func generateMonthlyReports(deps Deps) TaskHandler {
	return func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
		students, err := deps.Users.Students(ctx)
		if err != nil {
			return nil, err
		}

		generated := 0
		failed := 0
		for _, student := range students {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			snapshot, err := deps.Finance.ProfileForUser(ctx, student)
			if err != nil {
				log.Printf("Monthly report: profile for %s failed: %v", student.ID, err)
				failed++
				continue
			}
			if _, err := deps.Reports.CreateSnapshot(ctx, snapshot); err != nil {
				log.Printf("Monthly report: snapshot for %s failed: %v", student.ID, err)
				failed++
				continue
			}
			generated++
		}

		result := map[string]interface{}{"generated": generated, "failed": failed}
		if failed > 0 && generated == 0 {
			return result, fmt.Errorf("all %d report generations failed", failed)
		}
		return result, nil
	}
}

// paymentReminder emails a student about their outstanding balance.
// Args: userId. Students with nothing outstanding get no email.
func paymentReminder(deps Deps) TaskHandler {
	return func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
		userID, _ := args["userId"].(string)
		if userID == "" {
			return nil, fmt.Errorf("payment_reminder requires a userId argument")
		}

		user, err := deps.Users.ByID(ctx, userID)
		if err != nil {
			return nil, err
		}

		ledger, err := deps.Payments.LedgerForStudent(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		balance, nextDue := services.Aggregate(ledger)
		if balance == 0 {
			return map[string]interface{}{"sent": false, "reason": "no outstanding balance"}, nil
		}

		body := fmt.Sprintf("Dear %s,\n\nYour outstanding balance is R%.2f.", user.DisplayName(), balance)
		if nextDue != nil {
			body += fmt.Sprintf(" Your next payment is due on %s.", nextDue.Format("2 January 2006"))
		}
		body += "\n\nPlease settle your account at the residence office."

		if err := deps.Email.SendEmail([]string{user.Email}, "Payment Reminder", body); err != nil {
			return nil, err
		}
		return map[string]interface{}{"sent": true, "balance": balance}, nil
	}
}
