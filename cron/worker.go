package cron

import (
	"context"
	"time"

	"tutorhub/clock"
	"tutorhub/config"
	slotRepo "tutorhub/database/repository/slot"
	"tutorhub/services/tasks"
	"tutorhub/timeutil"
	"tutorhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitSlotCleanupWorker runs the async worker in background. Each run deletes
// unbooked slots whose end time has already passed, then schedules the next
// run for the coming IST midnight. Booked slots are never touched; their
// history feeds the stats aggregation.
func InitSlotCleanupWorker(repo slotRepo.SlotRepository, clk clock.Clock) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	client := asynq.NewClient(redisOpts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSlotCleanup, handleSlotCleanup(repo, clk, client))

	// Kick off the first sweep at the next IST midnight.
	if err := enqueueNextCleanup(client, clk.Now()); err != nil {
		logger.Error("failed to schedule initial slot cleanup", zap.Error(err))
	}

	go func() {
		logger.Info("starting slot cleanup worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("slot cleanup worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("slot cleanup worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSlotCleanup(repo slotRepo.SlotRepository, clk clock.Clock, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		now := clk.Now()

		deleted, err := repo.DeleteExpiredUnbooked(ctx, now)
		if err != nil {
			logger.Error("slot cleanup sweep failed", zap.Error(err))
			return err
		}
		logger.Info("slot cleanup sweep completed", zap.Int64("deleted", deleted))

		if err := enqueueNextCleanup(client, now); err != nil {
			logger.Error("failed to schedule next slot cleanup", zap.Error(err))
			return err
		}
		return nil
	}
}

func enqueueNextCleanup(client *asynq.Client, now time.Time) error {
	// Next IST midnight: the current IST day ends at 23:59:59.999.
	_, dayEnd := timeutil.DayBounds(now)
	fireAt := dayEnd.Add(time.Millisecond)

	task, opts := tasks.NewSlotCleanupTask(fireAt)
	_, err := client.Enqueue(task, opts...)
	return err
}
