package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/usecase/dto"
)

// AlertHandler - уведомления
type AlertHandler struct {
	alertUC *usecase.AlertUseCase
	logger  *zap.Logger
}

// NewAlertHandler создает новый экземпляр AlertHandler
func NewAlertHandler(alertUC *usecase.AlertUseCase, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alertUC: alertUC,
		logger:  logger,
	}
}

// List godoc
// @Summary Уведомления
// @Description Все уведомления; meta.pending - количество непрочитанных
// @Tags Alerts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.AlertItem}
// @Router /api/v1/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()
	alerts := h.alertUC.List(ctx)
	return utils.SendSuccess(c, alerts, &utils.Meta{
		Total:   len(alerts),
		Pending: h.alertUC.Unread(ctx),
	})
}

// Create godoc
// @Summary Создать уведомление
// @Tags Alerts
// @Accept json
// @Produce json
// @Param request body dto.CreateAlertRequest true "Уведомление"
// @Success 201 {object} utils.SuccessResponse{data=domain.AlertItem}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	alert, err := h.alertUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, alert)
}

// MarkRead godoc
// @Summary Отметить уведомление прочитанным
// @Tags Alerts
// @Produce json
// @Param id path string true "ID уведомления"
// @Success 200 {object} utils.SuccessResponse{data=domain.AlertItem}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/alerts/{id}/read [post]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	alert, err := h.alertUC.MarkRead(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, alert, nil)
}

// Seed godoc
// @Summary Уведомление о сезонном запрете
// @Description Добавляет уведомление о сезонном запрете, если уведомлений нет
// @Tags Alerts
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/alerts/seed [post]
func (h *AlertHandler) Seed(c *fiber.Ctx) error {
	seeded, err := h.alertUC.SeedSeasonalBanIfEmpty(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"seeded": seeded}, nil)
}

// Clear godoc
// @Summary Удалить все уведомления
// @Tags Alerts
// @Success 204
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/alerts [delete]
func (h *AlertHandler) Clear(c *fiber.Ctx) error {
	if err := h.alertUC.Clear(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
