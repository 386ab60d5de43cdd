package recordsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	apperrors "github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/worker"
)

// AckApplier применяет ответ удалённой стороны к локальной записи
type AckApplier interface {
	ApplyAck(ctx context.Context, ack domain.SyncAck) error
}

// AckWorker читает подтверждения синхронизации из стрима и переводит записи в synced/failed
type AckWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	applier       AckApplier
	stream        string
	consumerGroup string
	consumerName  string
}

// NewAckWorker создает новый AckWorker
func NewAckWorker(
	streamRepo repository.StreamRepository,
	applier AckApplier,
	stream string,
	consumerGroup string,
	logger *zap.Logger,
) *AckWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d-%s", hostname, os.Getpid(), uuid.NewString()[:8])

	return &AckWorker{
		BaseWorker:    worker.NewBaseWorker("record-sync-ack", logger),
		streamRepo:    streamRepo,
		applier:       applier,
		stream:        stream,
		consumerGroup: consumerGroup,
		consumerName:  consumerName,
	}
}

// Start запускает воркер
func (w *AckWorker) Start(ctx context.Context) error {
	return w.Run(ctx, w.loop)
}

func (w *AckWorker) loop(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting sync ack consumer",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.consumerGroup),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.consumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, w.stream, w.consumerGroup, w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Sync ack consumer stopped")
			return nil
		case msg, ok := <-messages:
			if !ok {
				logger.Info("Ack stream closed")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// handle применяет одно подтверждение. Сообщение подтверждается в стриме, если повтор
// ничего не изменит; ошибки хранилища оставляют его в pending для повторной доставки.
func (w *AckWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var ack domain.SyncAck
	if err := json.Unmarshal([]byte(msg.Data), &ack); err != nil {
		logger.Warn("Failed to parse ack, skipping", zap.Error(err))
		w.ackMessage(ctx, msg.ID)
		return
	}

	err := w.applier.ApplyAck(ctx, ack)
	switch {
	case err == nil:
		logger.Debug("Ack applied",
			zap.String("collection", string(ack.Collection)),
			zap.String("id", ack.RecordID),
			zap.String("status", string(ack.Status)))
	case errors.Is(err, apperrors.ErrStorage):
		logger.Error("Failed to apply ack, leaving for redelivery", zap.Error(err))
		return
	default:
		logger.Warn("Ack cannot be applied, dropping",
			zap.String("collection", string(ack.Collection)),
			zap.String("id", ack.RecordID),
			zap.Error(err))
	}

	w.ackMessage(ctx, msg.ID)
}

func (w *AckWorker) ackMessage(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.stream, w.consumerGroup, id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}
