package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/pkg/validator"
	"github.com/sea-companion/internal/usecase/dto"
)

// LocationUseCase - источник текущей позиции. Без свежего фикса отдаёт точку по умолчанию.
type LocationUseCase struct {
	repo     repository.LocationRepository
	fallback domain.Position
	maxAge   time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewLocationUseCase создает новый экземпляр LocationUseCase.
// maxAge <= 0 - фикс не устаревает.
func NewLocationUseCase(repo repository.LocationRepository, fallback domain.Position, maxAge time.Duration, logger *zap.Logger) *LocationUseCase {
	return &LocationUseCase{
		repo:     repo,
		fallback: fallback,
		maxAge:   maxAge,
		now:      time.Now,
		logger:   logger,
	}
}

// Fallback - точка по умолчанию
func (uc *LocationUseCase) Fallback() domain.Position {
	return uc.fallback
}

// Update принимает показание от устройства
func (uc *LocationUseCase) Update(ctx context.Context, req dto.LocationRequest) (*domain.LocationReading, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"error": err.Error(),
		})
	}
	if !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	reading := domain.LocationReading{
		Lat:       *req.Lat,
		Lon:       *req.Lon,
		Accuracy:  req.Accuracy,
		Timestamp: uc.now(),
	}
	if req.Timestamp != nil {
		reading.Timestamp = time.UnixMilli(*req.Timestamp)
	}

	if err := uc.repo.Update(ctx, reading); err != nil {
		return nil, errors.ErrStorage.Wrap(err)
	}

	uc.logger.Debug("Location updated",
		zap.Float64("lat", reading.Lat),
		zap.Float64("lon", reading.Lon))
	return &reading, nil
}

// Current возвращает последний фикс или ErrLocationUnavailable, если фикса нет или он устарел
func (uc *LocationUseCase) Current(ctx context.Context) (*domain.LocationReading, error) {
	reading, err := uc.repo.Current(ctx)
	if err != nil {
		return nil, errors.ErrLocationUnavailable.Wrap(err)
	}
	if reading == nil {
		return nil, errors.ErrLocationUnavailable
	}
	if uc.maxAge > 0 && uc.now().Sub(reading.Timestamp) > uc.maxAge {
		return nil, errors.ErrLocationUnavailable.WithDetails(map[string]interface{}{
			"last_fix": reading.Timestamp,
		})
	}
	return reading, nil
}

// Resolve - текущая позиция или точка по умолчанию. Никогда не возвращает ошибку.
func (uc *LocationUseCase) Resolve(ctx context.Context) (domain.Position, bool) {
	reading, err := uc.Current(ctx)
	if err != nil {
		uc.logger.Debug("Location unavailable, using fallback", zap.Error(err))
		return uc.fallback, true
	}
	return reading.Position(), false
}

// Status - позиция для ответа API
func (uc *LocationUseCase) Status(ctx context.Context) *dto.LocationResponse {
	reading, err := uc.Current(ctx)
	if err != nil {
		return &dto.LocationResponse{Position: uc.fallback, UsedFallback: true}
	}
	ts := reading.Timestamp
	return &dto.LocationResponse{
		Position:  reading.Position(),
		Accuracy:  reading.Accuracy,
		Timestamp: &ts,
	}
}
