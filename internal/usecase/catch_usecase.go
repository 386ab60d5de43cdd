package usecase

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/usecase/dto"
)

// UnknownSpecies подставляется, когда вид не указан
const UnknownSpecies = "Unknown"

// CatchUseCase - журнал улова
type CatchUseCase struct {
	store  *RecordStore
	logger *zap.Logger
}

// NewCatchUseCase создает новый экземпляр CatchUseCase
func NewCatchUseCase(store *RecordStore, logger *zap.Logger) *CatchUseCase {
	return &CatchUseCase{
		store:  store,
		logger: logger,
	}
}

// List возвращает улов, самые новые записи первыми
func (uc *CatchUseCase) List(ctx context.Context) []domain.CatchLog {
	return uc.store.Catches(ctx)
}

// Create сохраняет улов со статусом pending. Некорректные поля не отклоняют запись:
// пустой вид становится "Unknown", вес и количество без числа - отсутствующими.
func (uc *CatchUseCase) Create(ctx context.Context, req dto.CreateCatchRequest) (*domain.CatchLog, error) {
	species := strings.TrimSpace(req.Species)
	if species == "" {
		uc.logger.Warn("Malformed catch record",
			zap.String("code", errors.ErrMalformedRecord.Code),
			zap.String("field", "species"))
		species = UnknownSpecies
	}

	weight, ok := nonNegative(req.WeightKg)
	if !ok {
		uc.logger.Warn("Malformed catch record",
			zap.String("code", errors.ErrMalformedRecord.Code),
			zap.String("field", "weightKg"),
			zap.Float64("value", req.WeightKg.Value))
	}

	quantity, ok := count(req.Quantity)
	if !ok {
		uc.logger.Warn("Malformed catch record",
			zap.String("code", errors.ErrMalformedRecord.Code),
			zap.String("field", "quantity"),
			zap.Float64("value", req.Quantity.Value))
	}

	record := domain.CatchLog{
		ID:         uuid.NewString(),
		Species:    species,
		WeightKg:   weight,
		Quantity:   quantity,
		Timestamp:  domain.NowMillis(),
		SyncStatus: domain.SyncPending,
	}

	if err := uc.store.AppendCatch(ctx, record); err != nil {
		return nil, err
	}

	uc.logger.Info("Catch logged",
		zap.String("id", record.ID),
		zap.String("species", record.Species))
	return &record, nil
}

// Clear удаляет весь журнал улова
func (uc *CatchUseCase) Clear(ctx context.Context) error {
	return uc.store.Clear(ctx, domain.CollectionCatches)
}

// nonNegative - значение веса. ok=false, если значение было задано, но отброшено.
func nonNegative(n dto.FormNumber) (*float64, bool) {
	if !n.Set {
		return nil, true
	}
	if n.Value < 0 || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return nil, false
	}
	v := n.Value
	return &v, true
}

// count - целое неотрицательное количество
func count(n dto.FormNumber) (*int, bool) {
	if !n.Set {
		return nil, true
	}
	if n.Value < 0 || n.Value != math.Trunc(n.Value) || n.Value > math.MaxInt32 {
		return nil, false
	}
	v := int(n.Value)
	return &v, true
}
