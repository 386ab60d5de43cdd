package boundary_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/worker/boundary"
)

// fakeEvaluator отдаёт статусы по очереди, последний повторяется
type fakeEvaluator struct {
	mu       sync.Mutex
	statuses []domain.BoundaryStatus
	calls    atomic.Int32
	block    chan struct{}
}

func (f *fakeEvaluator) EvaluateCurrent(ctx context.Context) domain.BoundaryStatus {
	n := int(f.calls.Add(1))
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.statuses) == 0 {
		return domain.BoundaryStatus{Violations: []domain.Violation{}}
	}
	if n > len(f.statuses) {
		n = len(f.statuses)
	}
	return f.statuses[n-1]
}

// MockAlertRaiser is a mock of AlertRaiser
type MockAlertRaiser struct {
	mock.Mock
}

func (m *MockAlertRaiser) RaiseBoundaryAlerts(ctx context.Context, violations []domain.Violation) error {
	args := m.Called(ctx, violations)
	return args.Error(0)
}

func proximity(id string, km float64) domain.Violation {
	return domain.Violation{BoundaryID: id, Type: domain.ViolationProximity, DistanceKm: km, Severity: domain.SeverityWarning}
}

func start(t *testing.T, m *boundary.Monitor) chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Start(context.Background())
	}()
	return errCh
}

func TestMonitor_StoresLatestStatus(t *testing.T) {
	eval := &fakeEvaluator{statuses: []domain.BoundaryStatus{
		{NearestBoundaryID: "b1", DistanceToNearestKm: 12, Violations: []domain.Violation{}},
	}}
	m := boundary.NewMonitor(eval, nil, 5*time.Millisecond, zap.NewNop())

	_, ok := m.Status()
	assert.False(t, ok)

	errCh := start(t, m)

	require.Eventually(t, func() bool {
		_, ok := m.Status()
		return ok
	}, time.Second, 5*time.Millisecond)

	status, _ := m.Status()
	assert.Equal(t, "b1", status.NearestBoundaryID)

	require.NoError(t, m.Stop())
	require.NoError(t, <-errCh)
}

func TestMonitor_SkipsTickWhileInFlight(t *testing.T) {
	eval := &fakeEvaluator{block: make(chan struct{})}
	m := boundary.NewMonitor(eval, nil, 2*time.Millisecond, zap.NewNop())

	errCh := start(t, m)

	require.Eventually(t, func() bool { return eval.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), eval.calls.Load(), "ticks must not queue behind a running evaluation")

	close(eval.block)
	require.Eventually(t, func() bool { return eval.calls.Load() > 1 }, time.Second, time.Millisecond)

	require.NoError(t, m.Stop())
	require.NoError(t, <-errCh)
}

func TestMonitor_StopWaitsForInFlightEvaluation(t *testing.T) {
	eval := &fakeEvaluator{block: make(chan struct{})}
	m := boundary.NewMonitor(eval, nil, time.Hour, zap.NewNop())

	errCh := start(t, m)
	require.Eventually(t, func() bool { return eval.calls.Load() == 1 }, time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		_ = m.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while evaluation was in flight")
	case <-time.After(30 * time.Millisecond):
	}

	close(eval.block)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	require.NoError(t, <-errCh)

	// результат оценки, завершившейся после остановки, не публикуется
	_, ok := m.Status()
	assert.False(t, ok)

	// idempotent
	assert.NoError(t, m.Stop())
}

func TestMonitor_StopBeforeStart(t *testing.T) {
	eval := &fakeEvaluator{}
	m := boundary.NewMonitor(eval, nil, time.Millisecond, zap.NewNop())

	require.NoError(t, m.Stop())
	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, int32(0), eval.calls.Load())
}

func TestMonitor_AlertsOnlyOnNewViolations(t *testing.T) {
	inside := domain.Violation{BoundaryID: "b1", Type: domain.ViolationInside, Severity: domain.SeverityDanger}

	eval := &fakeEvaluator{statuses: []domain.BoundaryStatus{
		{Violations: []domain.Violation{proximity("b1", 3)}},
		{Violations: []domain.Violation{proximity("b1", 2)}},
		{Violations: []domain.Violation{inside, proximity("b2", 4)}},
		{Violations: []domain.Violation{}},
	}}

	alerts := new(MockAlertRaiser)
	alerts.On("RaiseBoundaryAlerts", mock.Anything, []domain.Violation{proximity("b1", 3)}).Return(nil).Once()
	alerts.On("RaiseBoundaryAlerts", mock.Anything, []domain.Violation{inside, proximity("b2", 4)}).Return(nil).Once()

	m := boundary.NewMonitor(eval, alerts, 2*time.Millisecond, zap.NewNop())
	errCh := start(t, m)

	require.Eventually(t, func() bool { return eval.calls.Load() >= 6 }, time.Second, time.Millisecond)
	require.NoError(t, m.Stop())
	require.NoError(t, <-errCh)

	alerts.AssertExpectations(t)
	alerts.AssertNumberOfCalls(t, "RaiseBoundaryAlerts", 2)
}

func TestMonitor_RetriesAlertAfterFailedRaise(t *testing.T) {
	violation := proximity("b1", 3)
	eval := &fakeEvaluator{statuses: []domain.BoundaryStatus{
		{Violations: []domain.Violation{violation}},
	}}

	alerts := new(MockAlertRaiser)
	alerts.On("RaiseBoundaryAlerts", mock.Anything, []domain.Violation{violation}).Return(errors.New("disk full")).Once()
	alerts.On("RaiseBoundaryAlerts", mock.Anything, []domain.Violation{violation}).Return(nil).Once()

	m := boundary.NewMonitor(eval, alerts, 2*time.Millisecond, zap.NewNop())
	errCh := start(t, m)

	require.Eventually(t, func() bool { return eval.calls.Load() >= 6 }, time.Second, time.Millisecond)
	require.NoError(t, m.Stop())
	require.NoError(t, <-errCh)

	// после успешной записи нарушение больше не новое
	alerts.AssertExpectations(t)
	alerts.AssertNumberOfCalls(t, "RaiseBoundaryAlerts", 2)
}
