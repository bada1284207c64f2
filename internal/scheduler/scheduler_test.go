package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/goatherd/internal/config"
	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/repository/sheets"
)

type fakeGenerator struct {
	report models.HerdReport
	err    error
}

func (f *fakeGenerator) GenerateAndStore(context.Context) (models.HerdReport, error) {
	return f.report, f.err
}

type fakeWriter struct {
	ranges []string
	rows   [][]interface{}
	err    error
}

func (f *fakeWriter) WriteRow(_ context.Context, sheetRange string, values []interface{}) error {
	f.ranges = append(f.ranges, sheetRange)
	f.rows = append(f.rows, values)
	return f.err
}

type fakeNotifier struct {
	sent []models.OutboundMessageRequest
	err  error
}

func (f *fakeNotifier) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.sent = append(f.sent, req)
	return f.err
}

func testConfig() config.Config {
	return config.Config{
		WhatsApp:  config.WhatsAppConfig{ManagerID: "573001112233"},
		Reporting: config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC"},
	}
}

func sampleReport() models.HerdReport {
	return models.HerdReport{
		AsOf:           time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		TotalAnimals:   12,
		ManagedAnimals: 10,
		CategoryCounts: map[string]int{"doe": 6, "kid_female": 4},
		ReadyToWean:    []string{"K1", "K2"},
	}
}

func TestRunHerdReport(t *testing.T) {
	gen := &fakeGenerator{report: sampleReport()}
	writer := &fakeWriter{}
	notifier := &fakeNotifier{}
	s, err := NewScheduler(testConfig(), gen, writer, notifier, nil)
	require.NoError(t, err)

	require.NoError(t, s.RunHerdReport(context.Background()))

	assert.Equal(t, []string{sheets.ReportsRange}, writer.ranges)
	require.Len(t, writer.rows, 1)
	assert.Equal(t, "2024-06-07", writer.rows[0][0])

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "573001112233", notifier.sent[0].To)
	assert.Contains(t, notifier.sent[0].Message, "10 managed animals of 12 recorded")
}

func TestRunHerdReportGenerationFailure(t *testing.T) {
	boom := errors.New("sheets quota")
	notifier := &fakeNotifier{}
	s, err := NewScheduler(testConfig(), &fakeGenerator{err: boom}, &fakeWriter{}, notifier, nil)
	require.NoError(t, err)

	err = s.RunHerdReport(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, notifier.sent)
}

func TestRunHerdReportStillNotifiesWhenSheetFails(t *testing.T) {
	writeErr := errors.New("append denied")
	notifier := &fakeNotifier{}
	s, err := NewScheduler(testConfig(), &fakeGenerator{report: sampleReport()}, &fakeWriter{err: writeErr}, notifier, nil)
	require.NoError(t, err)

	err = s.RunHerdReport(context.Background())

	assert.ErrorIs(t, err, writeErr)
	assert.Len(t, notifier.sent, 1)
}

func TestRunHerdReportDeliversWhenStoreFails(t *testing.T) {
	saveErr := errors.New("mongo unreachable")
	writer := &fakeWriter{}
	notifier := &fakeNotifier{}
	s, err := NewScheduler(testConfig(), &fakeGenerator{report: sampleReport(), err: saveErr}, writer, notifier, nil)
	require.NoError(t, err)

	err = s.RunHerdReport(context.Background())

	assert.ErrorIs(t, err, saveErr)
	assert.Len(t, writer.rows, 1)
	assert.Len(t, notifier.sent, 1)
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"

	_, err := NewScheduler(cfg, &fakeGenerator{}, nil, &fakeNotifier{}, nil)

	assert.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "every friday"
	s, err := NewScheduler(cfg, &fakeGenerator{}, nil, &fakeNotifier{}, nil)
	require.NoError(t, err)

	assert.Error(t, s.Start())
}

func TestStartAndStop(t *testing.T) {
	s, err := NewScheduler(testConfig(), &fakeGenerator{}, nil, &fakeNotifier{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	s.Stop()
}
