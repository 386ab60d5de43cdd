package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain"
	apperrors "github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/usecase"
)

func sampleCatches() []domain.CatchLog {
	return []domain.CatchLog{
		{ID: "c3", Species: "Pomfret", WeightKg: ptrFloat64(2.5), Quantity: ptrInt(4), Timestamp: 1700000003000, SyncStatus: domain.SyncPending},
		{ID: "c2", Species: "Unknown", Timestamp: 1700000002000, SyncStatus: domain.SyncFailed},
		{ID: "c1", Species: "Mackerel", WeightKg: ptrFloat64(0), Timestamp: 1700000001000, SyncStatus: domain.SyncSynced},
	}
}

func sampleTrips() []domain.TripPlan {
	return []domain.TripPlan{
		{
			ID:   "t1",
			Name: "Morning run",
			Waypoints: []domain.Waypoint{
				{Lat: 19.07, Lon: 72.87, Label: "Harbour"},
				{Lat: 19.12, Lon: 72.92},
			},
			OptimizedOrder: []int{0, 1},
			CreatedAt:      1700000000000,
			SyncStatus:     domain.SyncPending,
		},
	}
}

func TestRecordStore_RoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("catches", func(t *testing.T) {
		for _, items := range [][]domain.CatchLog{{}, sampleCatches()[:1], sampleCatches()} {
			store := newFileStore(t)
			require.NoError(t, store.SaveCatches(ctx, items))
			if diff := cmp.Diff(items, store.Catches(ctx)); diff != "" {
				t.Errorf("catches mismatch (-want +got):\n%s", diff)
			}
		}
	})

	t.Run("trips", func(t *testing.T) {
		for _, items := range [][]domain.TripPlan{{}, sampleTrips()} {
			store := newFileStore(t)
			require.NoError(t, store.SaveTrips(ctx, items))
			if diff := cmp.Diff(items, store.Trips(ctx)); diff != "" {
				t.Errorf("trips mismatch (-want +got):\n%s", diff)
			}
		}
	})

	t.Run("alerts", func(t *testing.T) {
		items := []domain.AlertItem{
			{ID: "a2", Type: domain.AlertTypeBoundary, Title: "Near", Message: "m", Severity: domain.SeverityWarning, Timestamp: 2, Read: false},
			{ID: "a1", Type: domain.AlertTypeSeasonalBan, Title: "Ban", Message: "m", Severity: domain.SeverityInfo, Timestamp: 1, Read: true},
		}
		store := newFileStore(t)
		require.NoError(t, store.SaveAlerts(ctx, items))
		if diff := cmp.Diff(items, store.Alerts(ctx)); diff != "" {
			t.Errorf("alerts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("settings", func(t *testing.T) {
		store := newFileStore(t)
		want := domain.AppSettings{LowPowerMode: false, GPSPollSeconds: 120}
		require.NoError(t, store.SaveSettings(ctx, want))
		assert.Equal(t, want, store.Settings(ctx))
	})

	t.Run("forecast", func(t *testing.T) {
		store := newFileStore(t)
		require.NoError(t, store.SaveForecast(ctx, json.RawMessage(`{"zones":[{"id":"z1","score":0.8}]}`)))
		assert.JSONEq(t, `{"zones":[{"id":"z1","score":0.8}]}`, string(store.Forecast(ctx)))

		require.NoError(t, store.SaveForecast(ctx, nil))
		assert.Nil(t, store.Forecast(ctx))
	})
}

func TestRecordStore_PersistedLayout(t *testing.T) {
	blobs := &MockBlobRepository{}
	store := usecase.NewRecordStore(blobs, "cfm.", zap.NewNop())
	ctx := context.Background()

	blobs.On("Set", ctx, "cfm.catches", mock.MatchedBy(func(v []byte) bool {
		var raw []map[string]interface{}
		if err := json.Unmarshal(v, &raw); err != nil || len(raw) != 1 {
			return false
		}
		_, hasWeight := raw[0]["weightKg"]
		return raw[0]["syncStatus"] == "pending" && hasWeight
	})).Return(nil)

	require.NoError(t, store.SaveCatches(ctx, sampleCatches()[:1]))
	blobs.AssertExpectations(t)
}

func TestRecordStore_Defaults(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	assert.Empty(t, store.Catches(ctx))
	assert.NotNil(t, store.Catches(ctx))
	assert.Empty(t, store.Trips(ctx))
	assert.Empty(t, store.Alerts(ctx))
	assert.Equal(t, domain.DefaultSettings(), store.Settings(ctx))
	assert.Nil(t, store.Forecast(ctx))
}

func TestRecordStore_DegradesOnCorruptOrUnavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt documents", func(t *testing.T) {
		blobs := &MockBlobRepository{}
		store := usecase.NewRecordStore(blobs, "cfm.", zap.NewNop())

		blobs.On("Get", ctx, "cfm.catches").Return([]byte(`{not json`), nil)
		blobs.On("Get", ctx, "cfm.settings").Return([]byte(`[1,2`), nil)
		blobs.On("Get", ctx, "cfm.forecast").Return([]byte(`{"a":`), nil)

		assert.Empty(t, store.Catches(ctx))
		assert.Equal(t, domain.DefaultSettings(), store.Settings(ctx))
		assert.Nil(t, store.Forecast(ctx))
	})

	t.Run("storage unavailable", func(t *testing.T) {
		blobs := &MockBlobRepository{}
		store := usecase.NewRecordStore(blobs, "cfm.", zap.NewNop())

		blobs.On("Get", ctx, mock.Anything).Return(nil, errors.New("disk gone"))

		assert.Empty(t, store.Trips(ctx))
		assert.Empty(t, store.Alerts(ctx))
		assert.Equal(t, domain.DefaultSettings(), store.Settings(ctx))
	})

	t.Run("null document", func(t *testing.T) {
		blobs := &MockBlobRepository{}
		store := usecase.NewRecordStore(blobs, "cfm.", zap.NewNop())

		blobs.On("Get", ctx, "cfm.alerts").Return([]byte(`null`), nil)

		alerts := store.Alerts(ctx)
		assert.NotNil(t, alerts)
		assert.Empty(t, alerts)
	})
}

func TestRecordStore_SettingsClampedOnRead(t *testing.T) {
	blobs := &MockBlobRepository{}
	store := usecase.NewRecordStore(blobs, "cfm.", zap.NewNop())
	ctx := context.Background()

	blobs.On("Get", ctx, "cfm.settings").Return([]byte(`{"lowPowerMode":false,"gpsPollSeconds":5}`), nil).Once()
	assert.Equal(t, domain.AppSettings{LowPowerMode: false, GPSPollSeconds: 30}, store.Settings(ctx))

	blobs.On("Get", ctx, "cfm.settings").Return([]byte(`{"gpsPollSeconds":9000}`), nil).Once()
	assert.Equal(t, domain.AppSettings{LowPowerMode: true, GPSPollSeconds: 300}, store.Settings(ctx))
}

func TestRecordStore_WriteFailureIsStorageError(t *testing.T) {
	blobs := &MockBlobRepository{}
	store := usecase.NewRecordStore(blobs, "cfm.", zap.NewNop())
	ctx := context.Background()

	blobs.On("Set", ctx, "cfm.trips", mock.Anything).Return(errors.New("read-only filesystem"))

	err := store.SaveTrips(ctx, sampleTrips())
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestRecordStore_UpdateDoesNotOverwriteWhenUnreadable(t *testing.T) {
	blobs := &MockBlobRepository{}
	store := usecase.NewRecordStore(blobs, "cfm.", zap.NewNop())
	ctx := context.Background()

	blobs.On("Get", ctx, "cfm.catches").Return(nil, errors.New("timeout"))

	err := store.AppendCatch(ctx, domain.CatchLog{ID: "x"})
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	blobs.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordStore_ClearIsIdempotent(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCatches(ctx, sampleCatches()))
	require.NoError(t, store.SaveSettings(ctx, domain.AppSettings{GPSPollSeconds: 90}))

	require.NoError(t, store.Clear(ctx, domain.CollectionCatches))
	require.NoError(t, store.Clear(ctx, domain.CollectionCatches))

	assert.Empty(t, store.Catches(ctx))
	assert.Equal(t, 90, store.Settings(ctx).GPSPollSeconds)

	err := store.Clear(ctx, domain.Collection("boats"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCollection)
}

func TestRecordStore_ConcurrentAppendsKeepEveryRecord(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.AppendCatch(ctx, domain.CatchLog{
				ID:         string(rune('a' + i)),
				Species:    "Sardine",
				SyncStatus: domain.SyncPending,
			}))
		}(i)
	}

	// concurrent readers always see a whole document
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, c := range store.Catches(ctx) {
				assert.Equal(t, "Sardine", c.Species)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, store.Catches(ctx), writers)
}
