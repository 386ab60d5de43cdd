package boundary

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/worker"
)

const defaultInterval = 30 * time.Second

// Evaluator - оценка текущей позиции относительно морских границ
type Evaluator interface {
	EvaluateCurrent(ctx context.Context) domain.BoundaryStatus
}

// AlertRaiser - создание уведомлений о нарушении границ
type AlertRaiser interface {
	RaiseBoundaryAlerts(ctx context.Context, violations []domain.Violation) error
}

// Monitor периодически оценивает позицию и хранит последний снимок BoundaryStatus.
// Тик, заставший предыдущую оценку незавершённой, пропускается.
type Monitor struct {
	*worker.BaseWorker
	evaluator Evaluator
	alerts    AlertRaiser
	interval  time.Duration

	inFlight atomic.Bool
	status   atomic.Pointer[domain.BoundaryStatus]
	wg       sync.WaitGroup

	// нарушения прошлого тика; трогается только из evaluate, который не бывает параллельным
	violating map[string]struct{}
}

// NewMonitor создает новый Monitor. alerts может быть nil - тогда уведомления не создаются.
func NewMonitor(evaluator Evaluator, alerts AlertRaiser, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Monitor{
		BaseWorker: worker.NewBaseWorker("boundary-monitor", logger),
		evaluator:  evaluator,
		alerts:     alerts,
		interval:   interval,
		violating:  make(map[string]struct{}),
	}
}

// Start запускает мониторинг: первая оценка сразу, далее по тикеру
func (m *Monitor) Start(ctx context.Context) error {
	return m.Run(ctx, m.loop)
}

func (m *Monitor) loop(ctx context.Context) error {
	logger := m.Logger()
	logger.Info("Boundary monitor started", zap.Duration("interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			m.wg.Wait()
			logger.Info("Boundary monitor stopped")
			return nil
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick запускает оценку, если предыдущая уже завершилась
func (m *Monitor) tick(ctx context.Context) {
	if !m.inFlight.CompareAndSwap(false, true) {
		m.Logger().Debug("Evaluation still in flight, tick skipped")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.inFlight.Store(false)
		m.evaluate(ctx)
	}()
}

func (m *Monitor) evaluate(ctx context.Context) {
	status := m.evaluator.EvaluateCurrent(ctx)
	if ctx.Err() != nil {
		return
	}

	m.status.Store(&status)

	current, fresh := m.newViolations(status.Violations)
	if len(fresh) == 0 {
		m.violating = current
		return
	}

	m.Logger().Warn("Boundary violation",
		zap.Int("new", len(fresh)),
		zap.Bool("inside_restricted", status.IsInRestrictedArea),
		zap.String("nearest_boundary", status.NearestBoundaryID))

	if m.alerts != nil {
		if err := m.alerts.RaiseBoundaryAlerts(ctx, fresh); err != nil {
			// набор не обновляется: на следующем тике уведомление будет создано повторно
			m.Logger().Error("Failed to raise boundary alerts", zap.Error(err))
			return
		}
	}
	m.violating = current
}

// newViolations возвращает текущий набор ключей нарушений и те нарушения, которых
// не было в сохранённом наборе. Сохранённый набор не меняется.
// Смена типа нарушения (приближение → внутри) считается новым нарушением.
func (m *Monitor) newViolations(violations []domain.Violation) (map[string]struct{}, []domain.Violation) {
	current := make(map[string]struct{}, len(violations))
	var fresh []domain.Violation

	for _, v := range violations {
		key := v.BoundaryID + "/" + string(v.Type)
		current[key] = struct{}{}
		if _, seen := m.violating[key]; !seen {
			fresh = append(fresh, v)
		}
	}

	return current, fresh
}

// Status - последний снимок. ok=false, пока не завершилась ни одна оценка.
func (m *Monitor) Status() (domain.BoundaryStatus, bool) {
	s := m.status.Load()
	if s == nil {
		return domain.BoundaryStatus{}, false
	}
	return *s, true
}
