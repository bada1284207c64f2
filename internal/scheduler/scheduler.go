package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/config"
	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/repository/sheets"
	"github.com/mamadbah2/goatherd/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// ReportGenerator builds and stores the herd report.
type ReportGenerator interface {
	GenerateAndStore(ctx context.Context) (models.HerdReport, error)
}

// RowWriter appends a row to the spreadsheet.
type RowWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// Notifier delivers a message to a WhatsApp number.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler runs the periodic herd report.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	generator ReportGenerator
	writer    RowWriter
	notifier  Notifier
	managerID string
	logger    *zap.Logger
}

// NewScheduler creates a scheduler evaluating the cron schedule in the
// configured timezone.
func NewScheduler(cfg config.Config, generator ReportGenerator, writer RowWriter, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.Reporting.CronSchedule,
		generator: generator,
		writer:    writer,
		notifier:  notifier,
		managerID: cfg.WhatsApp.ManagerID,
		logger:    logger,
	}, nil
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runScheduled); err != nil {
		return fmt.Errorf("schedule herd report %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunHerdReport(ctx); err != nil {
		s.logger.Error("herd report job failed", zap.Error(err))
	}
}

// RunHerdReport generates the report, appends it to the Reports sheet and
// sends the summary to the herd manager. Once a report is built, the sheet and
// the message are both attempted even when storing or one of them fails.
func (s *Scheduler) RunHerdReport(ctx context.Context) error {
	s.logger.Info("generating herd report")

	var errs []error
	report, err := s.generator.GenerateAndStore(ctx)
	if err != nil {
		if report.AsOf.IsZero() {
			return fmt.Errorf("generate herd report: %w", err)
		}
		errs = append(errs, fmt.Errorf("store herd report: %w", err))
	}

	if s.writer != nil {
		if err := s.writer.WriteRow(ctx, sheets.ReportsRange, sheets.ReportRow(report)); err != nil {
			errs = append(errs, fmt.Errorf("append report row: %w", err))
		}
	}

	req := models.OutboundMessageRequest{
		To:      s.managerID,
		Message: reporting.FormatHerdSummary(report),
	}
	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		errs = append(errs, fmt.Errorf("send herd report: %w", err))
	}

	if len(errs) == 0 {
		s.logger.Info("herd report sent", zap.Int("managed_animals", report.ManagedAnimals))
	}
	return errors.Join(errs...)
}
