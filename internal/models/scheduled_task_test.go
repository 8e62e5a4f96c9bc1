package models

import (
	"testing"
	"time"
)

func TestScheduledTaskNextDue(t *testing.T) {
	due := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("onetime keeps its due date", func(t *testing.T) {
		task := ScheduledTask{Kind: ScheduledTaskKindOneTime, Due: due}
		if got := task.NextDue(); !got.Equal(due) {
			t.Errorf("NextDue() = %v; want %v", got, due)
		}
	})

	t.Run("recurring without a rule keeps its due date", func(t *testing.T) {
		task := ScheduledTask{Kind: ScheduledTaskKindRecurring, Due: due}
		if got := task.NextDue(); !got.Equal(due) {
			t.Errorf("NextDue() = %v; want %v", got, due)
		}
	})

	t.Run("recurring with a broken rule keeps its due date", func(t *testing.T) {
		rule := "FREQ=EVERY_FULL_MOON"
		task := ScheduledTask{Kind: ScheduledTaskKindRecurring, Due: due, Recurrence: &rule}
		if got := task.NextDue(); !got.Equal(due) {
			t.Errorf("NextDue() = %v; want %v", got, due)
		}
	})

	t.Run("recurring monthly rule advances past now", func(t *testing.T) {
		rule := "FREQ=MONTHLY;BYMONTHDAY=1"
		task := ScheduledTask{Kind: ScheduledTaskKindRecurring, Due: due, Recurrence: &rule}
		got := task.NextDue()
		if !got.After(time.Now()) {
			t.Errorf("NextDue() = %v; want a time after now", got)
		}
		if got.Day() != 1 {
			t.Errorf("NextDue() day = %d; want 1", got.Day())
		}
	})
}
