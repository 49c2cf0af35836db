package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/strategy"
	"golang-stock-signal/pkg/common"
	"golang-stock-signal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ExecutorService consumes signal tasks from the redis stream.
type ExecutorService interface {
	ProcessTask(ctx context.Context)
	Execute(ctx context.Context, task dto.Task) (string, error)
}

// NewExecutorService creates a new ExecutorService.
func NewExecutorService(
	redisClient *redis.Client,
	block time.Duration,
	log *logger.Logger,
	strategies []strategy.TaskExecutionStrategy,
) ExecutorService {
	strategyMap := make(map[dto.TaskType]strategy.TaskExecutionStrategy)
	for _, s := range strategies {
		strategyMap[s.GetType()] = s
	}
	if block <= 0 {
		block = 2 * time.Second
	}

	return &executorService{
		redisClient:        redisClient,
		block:              block,
		logger:             log,
		executorStrategies: strategyMap,
	}
}

type executorService struct {
	redisClient        *redis.Client
	block              time.Duration
	logger             *logger.Logger
	executorStrategies map[dto.TaskType]strategy.TaskExecutionStrategy
}

// ProcessTask dequeues and executes a single task.
func (s *executorService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamSignalTask, ">"},
		Count:    1,
		Block:    s.block,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}
	message := streams[0].Messages[0]
	defer s.ack(message.ID)

	taskData, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var task dto.Task
	if err := json.Unmarshal([]byte(taskData), &task); err != nil {
		s.logger.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.logger.Info("Processing task", logger.StringField("task", string(task.Type)), logger.StringField("ticker", task.Ticker), logger.Field("message_id", message.ID))
	if _, err := s.Execute(ctx, task); err != nil {
		s.logger.Error("Task execution failed", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}
	s.logger.Info("Task executed successfully", logger.StringField("task", string(task.Type)), logger.Field("message_id", message.ID))
}

// Execute dispatches a task to its strategy.
func (s *executorService) Execute(ctx context.Context, task dto.Task) (string, error) {
	st, ok := s.executorStrategies[task.Type]
	if !ok {
		return "", fmt.Errorf("no executor strategy found for task type: %s", task.Type)
	}
	return st.Execute(ctx, task)
}

// ack runs on a fresh context so a timed out task is still removed from the stream.
func (s *executorService) ack(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.redisClient.XAck(ctx, common.RedisStreamSignalTask, common.RedisStreamGroup, id).Err(); err != nil {
		s.logger.Error("Failed to acknowledge message", logger.ErrorField(err), logger.Field("message_id", id))
	}
	if err := s.redisClient.XDel(ctx, common.RedisStreamSignalTask, id).Err(); err != nil {
		s.logger.Error("Failed to delete message", logger.ErrorField(err), logger.Field("message_id", id))
	}
}
