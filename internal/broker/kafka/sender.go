package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"poster-badger/internal/domain"

	"github.com/wb-go/wbf/retry"
)

// TaskSender adapts the raw producer to the task-level contract the poster
// usecase depends on.
type TaskSender struct {
	producer *ProducerClient
	strategy retry.Strategy
}

func NewTaskSender(producer *ProducerClient, strategy retry.Strategy) *TaskSender {
	return &TaskSender{
		producer: producer,
		strategy: strategy,
	}
}

func (s *TaskSender) Send(ctx context.Context, task *domain.EnhanceTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal enhance task: %w", err)
	}

	return s.producer.Send(ctx, s.strategy, []byte(task.PosterID), payload)
}
