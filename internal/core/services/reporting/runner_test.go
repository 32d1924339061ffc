package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/ports"
)

type mockArchive struct {
	mock.Mock
}

func (m *mockArchive) SaveRun(ctx context.Context, run domain.ReportRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *mockArchive) GetRun(ctx context.Context, id string) (domain.ReportRun, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ReportRun), args.Error(1)
}

func (m *mockArchive) ListRuns(ctx context.Context, limit int) ([]domain.ReportRun, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.ReportRun), args.Error(1)
}

type recordingNotifier struct {
	startedID   string
	startedType domain.ReportType
	finished    []domain.ReportRun
}

func (n *recordingNotifier) RunStarted(runID string, t domain.ReportType) {
	n.startedID = runID
	n.startedType = t
}

func (n *recordingNotifier) RunFinished(run domain.ReportRun) {
	n.finished = append(n.finished, run)
}

func newTestRunner(dash *mockDashboard, store *mockArchive, notifier *recordingNotifier) *Runner {
	var n ports.RunNotifier
	if notifier != nil {
		n = notifier
	}
	runner := NewRunner(newTestGenerator(dash), store, n)
	runner.newRunID = func() string { return "run-fixed" }
	return runner
}

func statusDashboard() *mockDashboard {
	dash := new(mockDashboard)
	dash.On("DeviceStatusOverview", mock.Anything, "org-100").Return(domain.DeviceStatusOverview{
		Counts: domain.DeviceStatusCounts{ByStatus: map[string]int{"online": 5}},
	}, nil)
	return dash
}

func TestRunnerCorrelatesRunID(t *testing.T) {
	store := new(mockArchive)
	store.On("SaveRun", mock.Anything, mock.Anything).Return(nil)
	notifier := &recordingNotifier{}

	runner := newTestRunner(statusDashboard(), store, notifier)
	run, result, err := runner.Run(context.Background(), domain.ReportDeviceStatus, Params{})
	require.NoError(t, err)

	// The same id flows through the notification, the archive record and the
	// report payload.
	assert.Equal(t, "run-fixed", run.ID)
	assert.Equal(t, "run-fixed", notifier.startedID)
	assert.Equal(t, domain.ReportDeviceStatus, notifier.startedType)
	require.Len(t, notifier.finished, 1)
	assert.Equal(t, "run-fixed", notifier.finished[0].ID)

	report, ok := result.(domain.DeviceStatusReport)
	require.True(t, ok)
	assert.Equal(t, "run-fixed", report.RunID)

	var payload domain.DeviceStatusReport
	require.NoError(t, json.Unmarshal(run.Payload, &payload))
	assert.Equal(t, "run-fixed", payload.RunID)

	assert.Equal(t, "org-100", run.OrganizationID)
	assert.True(t, run.Success)
	store.AssertCalled(t, "SaveRun", mock.Anything, mock.Anything)
}

func TestRunnerToleratesArchiveFailure(t *testing.T) {
	store := new(mockArchive)
	store.On("SaveRun", mock.Anything, mock.Anything).Return(fmt.Errorf("disk full"))
	notifier := &recordingNotifier{}

	runner := newTestRunner(statusDashboard(), store, notifier)
	run, _, err := runner.Run(context.Background(), domain.ReportDeviceStatus, Params{})

	// Archival is best effort; the caller still gets the run.
	require.NoError(t, err)
	assert.True(t, run.Success)
	require.Len(t, notifier.finished, 1)
}

func TestRunnerWithoutArchiveOrNotifier(t *testing.T) {
	runner := NewRunner(newTestGenerator(statusDashboard()), nil, nil)
	runner.newRunID = func() string { return "run-bare" }

	run, _, err := runner.Run(context.Background(), domain.ReportDeviceStatus, Params{})
	require.NoError(t, err)
	assert.Equal(t, "run-bare", run.ID)
	assert.NotEmpty(t, run.Payload)
}

func TestRunnerRecordsFailedRun(t *testing.T) {
	dash := new(mockDashboard)
	dash.On("DeviceStatusOverview", mock.Anything, "org-100").Return(domain.DeviceStatusOverview{},
		&domain.CallError{Class: domain.ErrClassTransient, Op: "devices.statusOverview", Status: 503, Message: "upstream down"})

	var saved domain.ReportRun
	store := new(mockArchive)
	store.On("SaveRun", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.ReportRun)
	}).Return(nil)

	runner := newTestRunner(dash, store, nil)
	run, _, err := runner.Run(context.Background(), domain.ReportDeviceStatus, Params{})

	// A failed report is still a completed run: archived with Success=false.
	require.NoError(t, err)
	assert.False(t, run.Success)
	assert.Contains(t, run.ErrorMessage, "upstream down")
	assert.False(t, saved.Success)
	assert.Equal(t, run.ID, saved.ID)
}

func TestRunnerUnknownTypeIsNotArchived(t *testing.T) {
	store := new(mockArchive)
	runner := newTestRunner(statusDashboard(), store, nil)

	_, _, err := runner.Run(context.Background(), domain.ReportType("bogus"), Params{})
	require.Error(t, err)
	store.AssertNotCalled(t, "SaveRun", mock.Anything, mock.Anything)
}

func TestRunnerDuration(t *testing.T) {
	runner := NewRunner(newTestGenerator(statusDashboard()), nil, nil)

	ticks := []time.Time{
		time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 12, 0, 2, 0, time.UTC),
	}
	runner.now = func() time.Time {
		next := ticks[0]
		if len(ticks) > 1 {
			ticks = ticks[1:]
		}
		return next
	}

	run, _, err := runner.Run(context.Background(), domain.ReportDeviceStatus, Params{})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, run.Duration)
	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), run.GeneratedAt)
}
