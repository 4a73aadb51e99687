package tasks

import (
	"time"

	"github.com/hibiken/asynq"
)

// TypeSlotCleanup removes expired unbooked slots once per IST day.
const TypeSlotCleanup = "slots:cleanup"

func NewSlotCleanupTask(fireAt time.Time) (*asynq.Task, []asynq.Option) {
	task := asynq.NewTask(TypeSlotCleanup, nil)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts
}
