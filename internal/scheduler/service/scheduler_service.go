package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-signal/internal/entity"
	executordto "golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/scheduler/config"
	"golang-stock-signal/pkg/common"
	"golang-stock-signal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// SchedulerService publishes signal tasks on the redis stream, periodically
// from a cron expression or on demand.
type SchedulerService interface {
	Start(ctx context.Context) error
	Enqueue(ctx context.Context, task executordto.Task) (string, error)
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(redisClient *redis.Client, cfg *config.Config, log *logger.Logger) SchedulerService {
	return &schedulerService{
		redisClient:    redisClient,
		cronExpression: cfg.Scheduler.CronExpression,
		streamMaxLen:   cfg.Redis.StreamMaxLen,
		logger:         log,
		cronParser:     cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

type schedulerService struct {
	redisClient    *redis.Client
	cronExpression string
	streamMaxLen   int64
	logger         *logger.Logger
	cronParser     cron.Parser
}

// Start runs the cron loop until ctx is done.
func (s *schedulerService) Start(ctx context.Context) error {
	schedule, err := s.cronParser.Parse(s.cronExpression)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cronExpression, err)
	}

	c := cron.New(
		cron.WithParser(s.cronParser),
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(schedule, cron.FuncJob(func() {
		task := executordto.Task{Type: executordto.TaskTypeIngestAndRun, TriggeredBy: entity.TriggeredByAuto}
		if _, err := s.Enqueue(ctx, task); err != nil {
			s.logger.Error("Failed to enqueue scheduled task", logger.ErrorField(err))
		}
	}))
	c.Start()
	s.logger.Info("Scheduler started",
		logger.StringField("cron_expression", s.cronExpression),
		logger.Field("next_run", schedule.Next(time.Now().UTC())))

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("Scheduler service stopping")
	return nil
}

// Enqueue publishes the task and returns the stream message id.
func (s *schedulerService) Enqueue(ctx context.Context, task executordto.Task) (string, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task payload: %w", err)
	}

	id, err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamSignalTask,
		Values: map[string]interface{}{"payload": string(payload)},
		MaxLen: s.streamMaxLen,
		Approx: true,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}

	s.logger.Info("Task published successfully", logger.StringField("task", string(task.Type)), logger.StringField("message_id", id))
	return id, nil
}
