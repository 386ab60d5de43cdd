package usecase

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/pkg/validator"
	"github.com/sea-companion/internal/usecase/dto"
)

// CacheCollections - что стирает очистка офлайн кэша. Настройки переживают очистку.
var CacheCollections = []domain.Collection{
	domain.CollectionCatches,
	domain.CollectionTrips,
	domain.CollectionForecast,
	domain.CollectionAlerts,
}

// SettingsUseCase - настройки приложения, кэш прогноза и очистка офлайн данных
type SettingsUseCase struct {
	store  *RecordStore
	logger *zap.Logger
}

// NewSettingsUseCase создает новый экземпляр SettingsUseCase
func NewSettingsUseCase(store *RecordStore, logger *zap.Logger) *SettingsUseCase {
	return &SettingsUseCase{
		store:  store,
		logger: logger,
	}
}

// Get возвращает настройки, при пустом хранилище - по умолчанию
func (uc *SettingsUseCase) Get(ctx context.Context) domain.AppSettings {
	return uc.store.Settings(ctx)
}

// Update применяет частичное изменение. gpsPollSeconds вне [30,300] отклоняется.
func (uc *SettingsUseCase) Update(ctx context.Context, req dto.UpdateSettingsRequest) (domain.AppSettings, error) {
	if err := validator.Validate(req); err != nil {
		return domain.AppSettings{}, errors.ErrInvalidSettings.WithDetails(map[string]interface{}{
			"min_gps_poll_seconds": domain.MinGPSPollSeconds,
			"max_gps_poll_seconds": domain.MaxGPSPollSeconds,
		})
	}

	settings, err := uc.store.UpdateSettings(ctx, func(current domain.AppSettings) (domain.AppSettings, error) {
		if req.LowPowerMode != nil {
			current.LowPowerMode = *req.LowPowerMode
		}
		if req.GPSPollSeconds != nil {
			current.GPSPollSeconds = *req.GPSPollSeconds
		}
		return current, nil
	})
	if err != nil {
		return domain.AppSettings{}, err
	}

	uc.logger.Info("Settings updated",
		zap.Bool("low_power_mode", settings.LowPowerMode),
		zap.Int("gps_poll_seconds", settings.GPSPollSeconds))
	return settings, nil
}

// Forecast возвращает кэш прогноза или nil
func (uc *SettingsUseCase) Forecast(ctx context.Context) json.RawMessage {
	return uc.store.Forecast(ctx)
}

// SaveForecast сохраняет прогноз. Содержимое не интерпретируется, но должно быть JSON объектом или null.
func (uc *SettingsUseCase) SaveForecast(ctx context.Context, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) || (trimmed[0] != '{' && !bytes.Equal(trimmed, []byte("null"))) {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": "forecast must be a JSON object or null",
		})
	}
	return uc.store.SaveForecast(ctx, json.RawMessage(trimmed))
}

// ClearForecast удаляет кэш прогноза
func (uc *SettingsUseCase) ClearForecast(ctx context.Context) error {
	return uc.store.Clear(ctx, domain.CollectionForecast)
}

// ClearCache стирает офлайн данные: улов, планы, прогноз и уведомления
func (uc *SettingsUseCase) ClearCache(ctx context.Context) (*dto.ClearCacheResponse, error) {
	if err := uc.store.Clear(ctx, CacheCollections...); err != nil {
		return nil, err
	}

	uc.logger.Info("Offline cache cleared")
	return &dto.ClearCacheResponse{
		Cleared: append([]domain.Collection(nil), CacheCollections...),
	}, nil
}
