package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"readtrack-backend/internal/shared"
	"readtrack-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterReminderJobs wires the recurring jobs into the scheduler.
func (s *Scheduler) RegisterReminderJobs() error {
	return s.registerSendDueRemindersJob()
}

// The sweep runs every 5 minutes. The handler is idempotent, so an
// overlapping or retried run is harmless.
func (s *Scheduler) registerSendDueRemindersJob() error {
	task := asynq.NewTask(shared.TypeSendDueReminders, nil)

	_, err := s.scheduler.Register(
		"*/5 * * * *",
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SendDueReminders job", err)
		return err
	}

	logger.Info("Registered SendDueReminders job", map[string]interface{}{
		"schedule": "*/5 * * * *",
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
