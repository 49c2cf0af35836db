package common

const (
	RedisStreamSignalTask = "signal.task"

	RedisStreamGroup    = "executor-group"
	RedisStreamConsumer = "executor-consumer"
)
