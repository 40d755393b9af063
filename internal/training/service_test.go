package training_test

import (
	"context"
	"testing"
	"time"

	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/metrics"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/training"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

type serviceTestDeps struct {
	repo    *MockplanRepo
	cache   *MocksnapshotCache
	metrics *metrics.Manager
	service *training.Service
}

func newTestService(t *testing.T) serviceTestDeps {
	ctrl := gomock.NewController(t)
	repo := NewMockplanRepo(ctrl)
	cache := NewMocksnapshotCache(ctrl)
	m := metrics.NewTestManager()
	return serviceTestDeps{
		repo:    repo,
		cache:   cache,
		metrics: m,
		service: training.NewService(
			repo,
			cache,
			training.NewGenerator(training.DefaultAutoAdjustmentSettings()),
			m,
		),
	}
}

func TestService_GeneratePlan(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	goal := training.Goal{
		CurrentWeightKg: 70,
		TargetWeightKg:  68,
		StartDate:       now,
		TargetDate:      now.AddDate(0, 0, 30),
	}

	deps.repo.EXPECT().
		SavePlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, plan *training.Plan) (*training.Plan, error) {
			assert.Equal(t, "acc1", plan.AccountID)
			assert.Equal(t, 30, plan.TotalDays)
			plan.ID = 1
			return plan, nil
		})
	deps.cache.EXPECT().Invalidate(gomock.Any(), "acc1")

	plan, err := deps.service.GeneratePlan(ctx, testProfile(), goal, now)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.ID)
	assert.InDelta(t, 1, testutil.ToFloat64(deps.metrics.CounterPlansGenerated), 0.0001)
}

func TestService_GeneratePlan_UnsafeNotSaved(t *testing.T) {
	deps := newTestService(t)
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	// 5 kg in 30 days is over the deficit ceiling, the repo never sees it
	_, err := deps.service.GeneratePlan(context.Background(), testProfile(), training.Goal{
		CurrentWeightKg: 70,
		TargetWeightKg:  65,
		StartDate:       now,
		TargetDate:      now.AddDate(0, 0, 30),
	}, now)
	require.ErrorIs(t, err, training.ErrUnsafeDeficit)
}

func TestService_CheckIn_NothingMissed(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	plan := tenDayPlan(start)

	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil)

	result, err := deps.service.CheckIn(context.Background(), "acc1", start)
	require.NoError(t, err)
	assert.Empty(t, result.Detection.NewlyMissed)
	assert.Nil(t, result.Decision)
}

func TestService_CheckIn_RedistributesAndPersists(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	plan := tenDayPlan(start)
	plan.ID = 7
	now := start.AddDate(0, 0, 2)

	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil)
	deps.repo.EXPECT().
		UpdatePlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *training.Plan) error {
			assert.Equal(t, 2, updated.MissedCount)
			return nil
		})
	deps.repo.EXPECT().
		AppendAdjustment(gomock.Any(), 7, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, record training.AdjustmentRecord) error {
			assert.Equal(t, training.MethodWeightedRedistribution, record.Method)
			return nil
		})
	deps.cache.EXPECT().Invalidate(gomock.Any(), "acc1")

	result, err := deps.service.CheckIn(context.Background(), "acc1", now)
	require.NoError(t, err)

	require.Len(t, result.Detection.NewlyMissed, 2)
	require.NotNil(t, result.Decision)
	assert.Equal(t, training.OutcomeRedistributed, result.Decision.Outcome)

	assert.InDelta(t, 2, testutil.ToFloat64(deps.metrics.CounterSessionsMissed), 0.0001)
	assert.InDelta(t, 1, testutil.ToFloat64(deps.metrics.CounterRedistributions), 0.0001)
}

func TestService_CheckIn_PersistsRejectedAdjustment(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// both sessions overdue, nothing left to absorb the deficit
	plan := tenDayPlan(start)
	plan.Sessions = plan.Sessions[:2]
	plan.TotalDays = 2
	now := start.AddDate(0, 0, 2)

	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil)
	// the detection result is still written, so the next check-in does not
	// report the same sessions again
	deps.repo.EXPECT().UpdatePlan(gomock.Any(), gomock.Any()).Return(nil)
	deps.cache.EXPECT().Invalidate(gomock.Any(), "acc1")

	_, err := deps.service.CheckIn(context.Background(), "acc1", now)
	require.ErrorIs(t, err, training.ErrNoPendingSessions)
}

func TestService_CompleteSession(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	plan := tenDayPlan(start)

	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil).Times(2)
	deps.repo.EXPECT().UpdatePlan(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	deps.cache.EXPECT().Invalidate(gomock.Any(), "acc1").Times(2)

	// partial progress first
	updated, err := deps.service.CompleteSession(
		context.Background(), "acc1", start, 0.4, training.IntensityModerate, start,
	)
	require.NoError(t, err)
	session := updated.SessionOn(start)
	require.NotNil(t, session)
	assert.Equal(t, training.StatusInProgress, session.Status)
	assert.InDelta(t, 0.4, session.CompletedHours, 0.0001)
	// 0.4h of moderate cycling at 70kg
	assert.InDelta(t, 0.4*588, session.CaloriesBurned, 0.001)

	// the rest of the hour completes the session
	updated, err = deps.service.CompleteSession(
		context.Background(), "acc1", start, 0.6, training.IntensityModerate, start,
	)
	require.NoError(t, err)
	session = updated.SessionOn(start)
	assert.Equal(t, training.StatusCompleted, session.Status)
	assert.InDelta(t, 1, session.CompletedHours, 0.0001)
	assert.InDelta(t, 1, testutil.ToFloat64(deps.metrics.CounterSessionsCompleted), 0.0001)
}

func TestService_CompleteSession_CatchUpReleasesDeficit(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	plan := tenDayPlan(start)
	now := start.AddDate(0, 0, 1)
	training.DetectMissed(plan, now)
	require.Equal(t, 1, plan.MissedCount)

	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil)
	deps.repo.EXPECT().UpdatePlan(gomock.Any(), gomock.Any()).Return(nil)
	deps.cache.EXPECT().Invalidate(gomock.Any(), "acc1")

	updated, err := deps.service.CompleteSession(
		context.Background(), "acc1", start, 1, training.IntensityModerate, now,
	)
	require.NoError(t, err)

	session := updated.SessionOn(start)
	assert.Equal(t, training.StatusCompleted, session.Status)
	assert.Zero(t, session.MissedHours)
	assert.Equal(t, 0, updated.MissedCount)
	assert.Zero(t, updated.TotalMissedHours)
}

func TestService_CompleteSession_Validation(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := deps.service.CompleteSession(
		context.Background(), "acc1", start, 0, training.IntensityModerate, start,
	)
	require.Error(t, err)

	plan := tenDayPlan(start)
	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil)
	_, err = deps.service.CompleteSession(
		context.Background(), "acc1", start.AddDate(0, 0, 100), 1, training.IntensityModerate, start,
	)
	require.ErrorIs(t, err, training.ErrSessionNotFound)
}

func TestService_RescheduleSession(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	plan := tenDayPlan(start)
	toDate := start.AddDate(0, 0, 20)

	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil)
	deps.repo.EXPECT().UpdatePlan(gomock.Any(), gomock.Any()).Return(nil)
	deps.cache.EXPECT().Invalidate(gomock.Any(), "acc1")

	updated, err := deps.service.RescheduleSession(
		context.Background(), "acc1", start, toDate, "travel",
	)
	require.NoError(t, err)

	// original kept, marked rescheduled, origin recorded
	original := &updated.Sessions[0]
	assert.Equal(t, training.StatusRescheduled, original.Status)
	require.NotNil(t, original.Reschedule)
	assert.Equal(t, start, original.Reschedule.OriginalDate)
	assert.Equal(t, "travel", original.Reschedule.Reason)

	// fresh pending session appended on the new date
	require.Len(t, updated.Sessions, 11)
	moved := updated.SessionOn(toDate)
	require.NotNil(t, moved)
	assert.Equal(t, training.StatusPending, moved.Status)
	assert.InDelta(t, original.PlannedHours, moved.PlannedHours, 0.0001)
}

func TestService_ResetPlan(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 10)

	old := tenDayPlan(start)
	old.Goal.TargetDate = start.AddDate(0, 0, 30)
	old.IsActive = false // e.g. auto-paused before the reset

	// reset must find the plan even when it was deactivated by a pause
	deps.repo.EXPECT().GetLatestPlan(gomock.Any(), "acc1").Return(old, nil)
	deps.repo.EXPECT().
		SavePlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, plan *training.Plan) (*training.Plan, error) {
			assert.Equal(t, 20, plan.TotalDays)
			assert.True(t, plan.IsActive)
			return plan, nil
		})
	deps.cache.EXPECT().Invalidate(gomock.Any(), "acc1")

	fresh, err := deps.service.ResetPlan(context.Background(), testProfile(), now)
	require.NoError(t, err)
	assert.Equal(t, training.Midnight(now), fresh.Goal.StartDate)
	assert.Equal(t, old.Goal.TargetDate, fresh.Goal.TargetDate)
}

func TestService_Status_CacheFirst(t *testing.T) {
	deps := newTestService(t)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	cached := &training.StatusSnapshot{Day: 3, TotalDays: 10}
	deps.cache.EXPECT().Get(gomock.Any(), "acc1").Return(cached, true)

	snapshot, err := deps.service.Status(context.Background(), "acc1", start)
	require.NoError(t, err)
	assert.Equal(t, cached, snapshot)

	// cache miss loads the plan and stores the derived snapshot
	plan := tenDayPlan(start)
	deps.cache.EXPECT().Get(gomock.Any(), "acc1").Return(nil, false)
	deps.repo.EXPECT().GetActivePlan(gomock.Any(), "acc1").Return(plan, nil)
	deps.cache.EXPECT().Set(gomock.Any(), "acc1", gomock.Any())

	snapshot, err = deps.service.Status(context.Background(), "acc1", start)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Day)
	assert.Equal(t, 10, snapshot.TotalDays)
}
