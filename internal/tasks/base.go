package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"dormhub_app_echo/internal/models"
)

// BuildScheduledTask is a helper to build ScheduledTask records generically
func BuildScheduledTask(name string, args interface{}, due time.Time, recurrence *string, kind models.ScheduledTaskKind, maxAttempts int) (*models.ScheduledTask, error) {
	argsBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}

	var mapArgs map[string]interface{}
	if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into map: %w", err)
	}

	return &models.ScheduledTask{
		Name:        name,
		Args:        mapArgs,
		Due:         due,
		Recurrence:  recurrence,
		Status:      models.ScheduledTaskStatusActive,
		Kind:        kind,
		MaxAttempts: maxAttempts,
	}, nil
}
