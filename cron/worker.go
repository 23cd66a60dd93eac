package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"slotgrid/config"
	"slotgrid/models"
	"slotgrid/services/calendar"
	"slotgrid/services/tasks"
	"slotgrid/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitRefreshWorker runs the async refresh worker in background. Each task
// polls one account's event window once; when a committed change is not yet
// visible on the provider, the handler re-enqueues itself with a longer
// delay instead of polling in a loop.
func InitRefreshWorker(provider calendar.Provider, cache *redis.Client, queue *asynq.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCalendarRefresh, handleRefreshTask(provider, cache, queue))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[RefreshWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RefreshWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RefreshWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleRefreshTask(provider calendar.Provider, cache *redis.Client, queue *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.RefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[RefreshHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		window := models.EventWindow{Start: p.WindowStart, End: p.WindowEnd}
		events, err := provider.ListEvents(ctx, p.AccountID, window)
		if err != nil {
			log.Printf("[RefreshHandler] ❌ Poll failed for %s (attempt %d): %v", p.AccountID, p.Attempt, err)
			return err
		}

		// Publish whatever the provider returned. Readers always see the
		// freshest confirmed state even while a change is still settling.
		writeSnapshot(ctx, cache, p.AccountID, window, events)

		if changeVisible(p, events) {
			return nil
		}

		next := p.Attempt + 1
		if next >= config.AppConfig.RefreshMaxAttempts {
			log.Printf("[RefreshHandler] ⚠️ Change on event %s not visible after %d polls, giving up", p.ExpectEventID, next)
			return nil
		}

		p.Attempt = next
		delay := tasks.RefreshDelay(next, config.AppConfig.RefreshBaseDelaySec)
		retry, opts, err := tasks.NewRefreshTask(p, delay)
		if err != nil {
			return err
		}
		if _, err := queue.Enqueue(retry, opts...); err != nil {
			log.Printf("[RefreshHandler] ❌ Failed to re-enqueue poll for %s: %v", p.AccountID, err)
			return err
		}
		log.Printf("[RefreshHandler] ⏰ Change not visible yet, polling %s again in %s (attempt %d)", p.AccountID, delay, next)
		return nil
	}
}

// changeVisible reports whether the provider now reflects the committed
// mutation the payload was enqueued to confirm.
func changeVisible(p models.RefreshPayload, events []models.Event) bool {
	if p.ExpectEventID == "" {
		return true
	}
	for _, ev := range events {
		if ev.ID != p.ExpectEventID {
			continue
		}
		if p.ExpectGone {
			return false
		}
		return p.ExpectStart.IsZero() || ev.Start.Equal(p.ExpectStart)
	}
	return p.ExpectGone
}

func writeSnapshot(ctx context.Context, cache *redis.Client, accountID string, window models.EventWindow, events []models.Event) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	cache.Set(ctx, utils.EventSnapshotKey(accountID, window.Start, window.End), raw, utils.EventSnapshotTTL)
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[RefreshWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
