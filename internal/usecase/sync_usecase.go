package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/usecase/dto"
)

// SyncUseCase - контракт координатора синхронизации: чтение ожидающих записей,
// переходы статусов и публикация в outbox стрим.
type SyncUseCase struct {
	store   *RecordStore
	streams repository.StreamRepository
	outbox  string
	logger  *zap.Logger
}

// NewSyncUseCase создает новый экземпляр SyncUseCase. streams может быть nil,
// тогда SyncNow недоступен, а переходы статусов работают.
func NewSyncUseCase(store *RecordStore, streams repository.StreamRepository, outbox string, logger *zap.Logger) *SyncUseCase {
	return &SyncUseCase{
		store:   store,
		streams: streams,
		outbox:  outbox,
		logger:  logger,
	}
}

// Pending возвращает записи со статусом pending или failed: сначала улов, затем планы,
// внутри коллекции - в порядке хранения.
func (uc *SyncUseCase) Pending(ctx context.Context) []domain.SyncRecord {
	records := []domain.SyncRecord{}

	for _, c := range uc.store.Catches(ctx) {
		if c.SyncStatus.NeedsSync() {
			records = uc.appendRecord(records, domain.CollectionCatches, c.ID, c.SyncStatus, c)
		}
	}
	for _, t := range uc.store.Trips(ctx) {
		if t.SyncStatus.NeedsSync() {
			records = uc.appendRecord(records, domain.CollectionTrips, t.ID, t.SyncStatus, t)
		}
	}

	return records
}

func (uc *SyncUseCase) appendRecord(records []domain.SyncRecord, c domain.Collection, id string, status domain.SyncState, v interface{}) []domain.SyncRecord {
	payload, err := json.Marshal(v)
	if err != nil {
		uc.logger.Error("Failed to encode record", zap.String("collection", string(c)), zap.String("id", id), zap.Error(err))
		return records
	}
	return append(records, domain.SyncRecord{
		Collection: c,
		ID:         id,
		SyncStatus: status,
		Payload:    payload,
	})
}

// PendingSummary - записи и счётчики для ответа API
func (uc *SyncUseCase) PendingSummary(ctx context.Context) *dto.PendingResponse {
	resp := &dto.PendingResponse{Records: uc.Pending(ctx)}
	for _, r := range resp.Records {
		if r.SyncStatus == domain.SyncFailed {
			resp.Failed++
		} else {
			resp.Pending++
		}
	}
	return resp
}

// MarkSynced: pending → synced
func (uc *SyncUseCase) MarkSynced(ctx context.Context, c domain.Collection, id string) (*dto.SyncTransitionResponse, error) {
	return uc.transition(ctx, c, id, domain.SyncSynced)
}

// MarkFailed: pending → failed
func (uc *SyncUseCase) MarkFailed(ctx context.Context, c domain.Collection, id string) (*dto.SyncTransitionResponse, error) {
	return uc.transition(ctx, c, id, domain.SyncFailed)
}

// Retry: failed → pending
func (uc *SyncUseCase) Retry(ctx context.Context, c domain.Collection, id string) (*dto.SyncTransitionResponse, error) {
	return uc.transition(ctx, c, id, domain.SyncPending)
}

// transition меняет статус ровно одной записи на месте, порядок коллекции сохраняется
func (uc *SyncUseCase) transition(ctx context.Context, c domain.Collection, id string, next domain.SyncState) (*dto.SyncTransitionResponse, error) {
	var err error

	switch c {
	case domain.CollectionCatches:
		err = uc.store.UpdateCatches(ctx, func(items []domain.CatchLog) ([]domain.CatchLog, error) {
			for i := range items {
				if items[i].ID == id {
					return items, applyTransition(c, id, &items[i].SyncStatus, next)
				}
			}
			return nil, notFound(c, id)
		})
	case domain.CollectionTrips:
		err = uc.store.UpdateTrips(ctx, func(items []domain.TripPlan) ([]domain.TripPlan, error) {
			for i := range items {
				if items[i].ID == id {
					return items, applyTransition(c, id, &items[i].SyncStatus, next)
				}
			}
			return nil, notFound(c, id)
		})
	default:
		return nil, errors.ErrInvalidCollection.WithDetails(map[string]interface{}{
			"collection": string(c),
		})
	}

	if err != nil {
		return nil, err
	}

	uc.logger.Info("Sync status changed",
		zap.String("collection", string(c)),
		zap.String("id", id),
		zap.String("status", string(next)))

	return &dto.SyncTransitionResponse{Collection: c, ID: id, SyncStatus: next}, nil
}

func applyTransition(c domain.Collection, id string, current *domain.SyncState, next domain.SyncState) error {
	if !current.CanTransitionTo(next) {
		return errors.ErrInvalidSyncTransition.WithDetails(map[string]interface{}{
			"collection": string(c),
			"id":         id,
			"from":       string(*current),
			"to":         string(next),
		})
	}
	*current = next
	return nil
}

func notFound(c domain.Collection, id string) error {
	return errors.ErrRecordNotFound.WithDetails(map[string]interface{}{
		"collection": string(c),
		"id":         id,
	})
}

// ApplyAck применяет ответ удалённой стороны: accepted → synced, rejected → failed
func (uc *SyncUseCase) ApplyAck(ctx context.Context, ack domain.SyncAck) error {
	var err error
	switch ack.Status {
	case domain.SyncAckAccepted:
		_, err = uc.MarkSynced(ctx, ack.Collection, ack.RecordID)
	case domain.SyncAckRejected:
		uc.logger.Warn("Record rejected by remote",
			zap.String("collection", string(ack.Collection)),
			zap.String("id", ack.RecordID),
			zap.String("reason", ack.Reason))
		_, err = uc.MarkFailed(ctx, ack.Collection, ack.RecordID)
	default:
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"status": string(ack.Status),
		})
	}
	return err
}

// SyncNow публикует в outbox все записи со статусом pending. Записи failed
// не публикуются, пока их не вернут в pending через Retry.
func (uc *SyncUseCase) SyncNow(ctx context.Context) (*dto.SyncNowResponse, error) {
	if uc.streams == nil {
		return nil, errors.ErrSyncFailure.WithDetails(map[string]interface{}{
			"error": "sync outbox is disabled",
		})
	}

	resp := &dto.SyncNowResponse{}
	var lastErr error

	for _, r := range uc.Pending(ctx) {
		if r.SyncStatus != domain.SyncPending {
			resp.Skipped++
			continue
		}

		envelope := domain.SyncEnvelope{
			Collection: r.Collection,
			RecordID:   r.ID,
			Payload:    r.Payload,
			QueuedAt:   domain.NowMillis(),
		}

		if _, err := uc.streams.PublishToStream(ctx, uc.outbox, envelope); err != nil {
			uc.logger.Warn("Failed to publish record",
				zap.String("collection", string(r.Collection)),
				zap.String("id", r.ID),
				zap.Error(err))
			resp.Failed++
			lastErr = err
			continue
		}
		resp.Published++
	}

	uc.logger.Info("Sync outbox flushed",
		zap.Int("published", resp.Published),
		zap.Int("failed", resp.Failed),
		zap.Int("skipped", resp.Skipped))

	if resp.Published == 0 && resp.Failed > 0 {
		return resp, errors.ErrSyncFailure.Wrap(lastErr)
	}
	return resp, nil
}
