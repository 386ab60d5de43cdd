package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/pkg/utils"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/usecase/dto"
)

// StatusProvider - последний снимок мониторинга границ
type StatusProvider interface {
	Status() (domain.BoundaryStatus, bool)
}

// ZoneHandler - зоны и морские границы
type ZoneHandler struct {
	zoneUC     *usecase.ZoneUseCase
	boundaryUC *usecase.BoundaryUseCase
	monitor    StatusProvider
	logger     *zap.Logger
}

// NewZoneHandler создает новый экземпляр ZoneHandler. monitor может быть nil,
// если мониторинг выключен: статус тогда считается по запросу.
func NewZoneHandler(zoneUC *usecase.ZoneUseCase, boundaryUC *usecase.BoundaryUseCase, monitor StatusProvider, logger *zap.Logger) *ZoneHandler {
	return &ZoneHandler{
		zoneUC:     zoneUC,
		boundaryUC: boundaryUC,
		monitor:    monitor,
		logger:     logger,
	}
}

// Zones godoc
// @Summary Каталог зон
// @Tags Zones
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ZonesResponse}
// @Router /api/v1/zones [get]
func (h *ZoneHandler) Zones(c *fiber.Ctx) error {
	resp := h.zoneUC.Zones()
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Count})
}

// ActiveZones godoc
// @Summary Зоны, где рыбалка разрешена
// @Tags Zones
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ZonesResponse}
// @Router /api/v1/zones/active [get]
func (h *ZoneHandler) ActiveZones(c *fiber.Ctx) error {
	resp := h.zoneUC.ActiveZones()
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Count})
}

// Classify godoc
// @Summary Классифицировать позицию
// @Description restricted, seasonal_ban, caution или open. Без координат - текущая позиция.
// @Tags Zones
// @Accept json
// @Produce json
// @Param request body dto.PointRequest false "Координаты"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClassifyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/zones/classify [post]
func (h *ZoneHandler) Classify(c *fiber.Ctx) error {
	var req dto.PointRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.zoneUC.Classify(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Boundaries godoc
// @Summary Каталог морских границ
// @Tags Boundaries
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Boundary}
// @Router /api/v1/boundaries [get]
func (h *ZoneHandler) Boundaries(c *fiber.Ctx) error {
	boundaries := h.boundaryUC.Boundaries()
	return utils.SendSuccess(c, boundaries, &utils.Meta{Total: len(boundaries)})
}

// Evaluate godoc
// @Summary Оценить близость к границам
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param request body dto.EvaluateBoundariesRequest false "Координаты и порог"
// @Success 200 {object} utils.SuccessResponse{data=domain.BoundaryStatus}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/evaluate [post]
func (h *ZoneHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateBoundariesRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c, err)
	}

	status, err := h.boundaryUC.Evaluate(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, status, &utils.Meta{Total: len(status.Violations)})
}

// Status godoc
// @Summary Последний снимок мониторинга границ
// @Tags Boundaries
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.BoundaryStatus}
// @Router /api/v1/boundaries/status [get]
func (h *ZoneHandler) Status(c *fiber.Ctx) error {
	if h.monitor != nil {
		if status, ok := h.monitor.Status(); ok {
			return utils.SendSuccess(c, status, &utils.Meta{Total: len(status.Violations)})
		}
	}

	status := h.boundaryUC.EvaluateCurrent(c.Context())
	return utils.SendSuccess(c, status, &utils.Meta{Total: len(status.Violations)})
}
