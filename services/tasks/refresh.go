package tasks

import (
	"encoding/json"
	"time"

	"slotgrid/models"

	"github.com/hibiken/asynq"
)

const TypeCalendarRefresh = "calendar:refresh"

// NewRefreshTask schedules one confirmed-state poll of an event window.
func NewRefreshTask(payload models.RefreshPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCalendarRefresh, b)
	opts := []asynq.Option{asynq.ProcessIn(delay)}

	return task, opts, nil
}

// RefreshDelay returns the wait before a given attempt, doubling from the
// configured base so later polls back off instead of hammering the provider.
func RefreshDelay(attempt int, baseSec int) time.Duration {
	if baseSec <= 0 {
		baseSec = 1
	}
	delay := time.Duration(baseSec) * time.Second
	for i := 0; i < attempt; i++ {
		delay *= 2
	}
	return delay
}
