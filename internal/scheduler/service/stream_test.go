package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang-stock-signal/internal/entity"
	executordto "golang-stock-signal/internal/executor/dto"
	executorservice "golang-stock-signal/internal/executor/service"
	"golang-stock-signal/internal/executor/strategy"
	"golang-stock-signal/internal/scheduler/config"
	"golang-stock-signal/pkg/common"
	pkgconfig "golang-stock-signal/pkg/config"
	"golang-stock-signal/pkg/logger"
	pkgredis "golang-stock-signal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStrategy struct {
	mu       sync.Mutex
	taskType executordto.TaskType
	tasks    []executordto.Task
}

func (s *recordingStrategy) Execute(_ context.Context, task executordto.Task) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return "{}", nil
}

func (s *recordingStrategy) GetType() executordto.TaskType {
	return s.taskType
}

func (s *recordingStrategy) received() []executordto.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]executordto.Task(nil), s.tasks...)
}

func newStreamClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := &pkgredis.Client{Client: rdb}
	require.NoError(t, client.EnsureGroup(context.Background(), common.RedisStreamSignalTask, common.RedisStreamGroup))
	// a second call hits BUSYGROUP and must stay silent
	require.NoError(t, client.EnsureGroup(context.Background(), common.RedisStreamSignalTask, common.RedisStreamGroup))
	return rdb
}

func TestSignalTaskStream_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newStreamClient(t)

	runTicker := &recordingStrategy{taskType: executordto.TaskTypeRunTicker}
	ingest := &recordingStrategy{taskType: executordto.TaskTypeIngestAndRun}
	consumer := executorservice.NewExecutorService(rdb, 100*time.Millisecond, logger.NewNop(),
		[]strategy.TaskExecutionStrategy{runTicker, ingest})

	cfg := &config.Config{
		Redis:     pkgconfig.Redis{StreamMaxLen: 100},
		Scheduler: config.Scheduler{CronExpression: "5 * * * *"},
	}
	publisher := NewSchedulerService(rdb, cfg, logger.NewNop())

	id, err := publisher.Enqueue(ctx, executordto.Task{
		Type:        executordto.TaskTypeRunTicker,
		Ticker:      "aapl",
		TriggeredBy: entity.TriggeredByManual,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	length, err := rdb.XLen(ctx, common.RedisStreamSignalTask).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)

	consumer.ProcessTask(ctx)

	got := runTicker.received()
	require.Len(t, got, 1)
	assert.Equal(t, executordto.Task{Type: executordto.TaskTypeRunTicker, Ticker: "aapl", TriggeredBy: entity.TriggeredByManual}, got[0])
	assert.Empty(t, ingest.received())

	length, err = rdb.XLen(ctx, common.RedisStreamSignalTask).Result()
	require.NoError(t, err)
	assert.Zero(t, length)
}

func TestSignalTaskStream_MalformedMessagesAreAcked(t *testing.T) {
	ctx := context.Background()
	rdb := newStreamClient(t)

	runTicker := &recordingStrategy{taskType: executordto.TaskTypeRunTicker}
	consumer := executorservice.NewExecutorService(rdb, 100*time.Millisecond, logger.NewNop(),
		[]strategy.TaskExecutionStrategy{runTicker})

	for _, values := range []map[string]interface{}{
		{"payload": "{not json"},
		{"other": "field"},
		{"payload": `{"task":"unknown"}`},
	} {
		require.NoError(t, rdb.XAdd(ctx, &redis.XAddArgs{Stream: common.RedisStreamSignalTask, Values: values}).Err())
	}

	for i := 0; i < 3; i++ {
		consumer.ProcessTask(ctx)
	}

	assert.Empty(t, runTicker.received())

	length, err := rdb.XLen(ctx, common.RedisStreamSignalTask).Result()
	require.NoError(t, err)
	assert.Zero(t, length)
}

func TestSignalTaskStream_EmptyStreamReturns(t *testing.T) {
	rdb := newStreamClient(t)
	runTicker := &recordingStrategy{taskType: executordto.TaskTypeRunTicker}
	consumer := executorservice.NewExecutorService(rdb, 50*time.Millisecond, logger.NewNop(),
		[]strategy.TaskExecutionStrategy{runTicker})

	consumer.ProcessTask(context.Background())

	assert.Empty(t, runTicker.received())
}
