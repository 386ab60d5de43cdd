package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/usecase/dto"
)

// SettingsHandler - настройки, кэш прогноза и очистка офлайн данных
type SettingsHandler struct {
	settingsUC *usecase.SettingsUseCase
	logger     *zap.Logger
}

// NewSettingsHandler создает новый экземпляр SettingsHandler
func NewSettingsHandler(settingsUC *usecase.SettingsUseCase, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUC: settingsUC,
		logger:     logger,
	}
}

// Get godoc
// @Summary Настройки
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.AppSettings}
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.settingsUC.Get(c.Context()), nil)
}

// Update godoc
// @Summary Изменить настройки
// @Description Частичное обновление; gpsPollSeconds в диапазоне [30, 300]
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=domain.AppSettings}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}

	settings, err := h.settingsUC.Update(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, settings, nil)
}

// GetForecast godoc
// @Summary Кэш прогноза
// @Description Непрозрачный JSON внешнего сервиса прогнозов; null, если кэша нет
// @Tags Forecast
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/forecast [get]
func (h *SettingsHandler) GetForecast(c *fiber.Ctx) error {
	forecast := h.settingsUC.Forecast(c.Context())
	if forecast == nil {
		return utils.SendSuccess(c, nil, nil)
	}
	return utils.SendSuccess(c, forecast, nil)
}

// SaveForecast godoc
// @Summary Сохранить прогноз
// @Tags Forecast
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forecast [put]
func (h *SettingsHandler) SaveForecast(c *fiber.Ctx) error {
	body := json.RawMessage(append([]byte(nil), c.Body()...))
	if err := h.settingsUC.SaveForecast(c.Context(), body); err != nil {
		return utils.SendError(c, err)
	}
	return h.GetForecast(c)
}

// ClearForecast godoc
// @Summary Удалить кэш прогноза
// @Tags Forecast
// @Success 204
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/forecast [delete]
func (h *SettingsHandler) ClearForecast(c *fiber.Ctx) error {
	if err := h.settingsUC.ClearForecast(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearCache godoc
// @Summary Очистить офлайн кэш
// @Description Удаляет улов, планы, прогноз и уведомления. Настройки сохраняются.
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ClearCacheResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/cache/clear [post]
func (h *SettingsHandler) ClearCache(c *fiber.Ctx) error {
	resp, err := h.settingsUC.ClearCache(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
