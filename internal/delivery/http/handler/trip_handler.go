package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/usecase/dto"
)

// TripHandler - планы выходов в море и оптимизация маршрута
type TripHandler struct {
	tripUC *usecase.TripUseCase
	logger *zap.Logger
}

// NewTripHandler создает новый экземпляр TripHandler
func NewTripHandler(tripUC *usecase.TripUseCase, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripUC: tripUC,
		logger: logger,
	}
}

// List godoc
// @Summary Планы выходов
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.TripPlan}
// @Router /api/v1/trips [get]
func (h *TripHandler) List(c *fiber.Ctx) error {
	trips := h.tripUC.List(c.Context())
	return utils.SendSuccess(c, trips, &utils.Meta{Total: len(trips)})
}

// Plan godoc
// @Summary Спланировать выход
// @Description Сохраняет план с порядком обхода точек (жадный ближайший сосед от старта)
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.PlanTripRequest true "План"
// @Success 201 {object} utils.SuccessResponse{data=domain.TripPlan}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/trips [post]
func (h *TripHandler) Plan(c *fiber.Ctx) error {
	var req dto.PlanTripRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}

	plan, err := h.tripUC.Plan(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, plan)
}

// Optimize godoc
// @Summary Оптимизировать маршрут без сохранения
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.OptimizeRouteRequest true "Точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.OptimizeRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/route/optimize [post]
func (h *TripHandler) Optimize(c *fiber.Ctx) error {
	var req dto.OptimizeRouteRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}

	result := h.tripUC.Optimize(req)
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Order)})
}

// Clear godoc
// @Summary Удалить все планы выхода
// @Tags Trips
// @Success 204
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/trips [delete]
func (h *TripHandler) Clear(c *fiber.Ctx) error {
	if err := h.tripUC.Clear(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
