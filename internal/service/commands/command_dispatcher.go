package commands

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/service/reporting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// HelpText lists the supported commands.
const HelpText = "Commands: /herd (summary), /animal <id> (growth), /lactation <id> (lactations), /ready (weaning and service lists)."

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	LatestHerdReport(ctx context.Context) (models.HerdReport, error)
	AnimalGrowth(ctx context.Context, id string) (reporting.AnimalView, error)
	AnimalLactations(ctx context.Context, id string) (reporting.LactationView, error)
}

// Dispatcher executes parsed commands.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	reporting ReportingAdapter
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(reporting ReportingAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reporting: reporting,
		logger:    logger,
	}
}

// HandleCommand runs the command and returns the reply text.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandHerd:
		report, err := s.reporting.LatestHerdReport(ctx)
		if err != nil {
			return "", fmt.Errorf("herd report: %w", err)
		}
		return reporting.FormatHerdSummary(report), nil
	case models.CommandReady:
		report, err := s.reporting.LatestHerdReport(ctx)
		if err != nil {
			return "", fmt.Errorf("herd report: %w", err)
		}
		return reporting.FormatReadyLists(report), nil
	case models.CommandAnimal:
		id, err := animalID(cmd)
		if err != nil {
			return "", err
		}
		view, err := s.reporting.AnimalGrowth(ctx, id)
		if err != nil {
			return "", fmt.Errorf("animal %s: %w", id, err)
		}
		return reporting.FormatAnimal(view), nil
	case models.CommandLactation:
		id, err := animalID(cmd)
		if err != nil {
			return "", err
		}
		view, err := s.reporting.AnimalLactations(ctx, id)
		if err != nil {
			return "", fmt.Errorf("lactations %s: %w", id, err)
		}
		return reporting.FormatLactations(view), nil
	case models.CommandHelp:
		return HelpText, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func animalID(cmd models.Command) (string, error) {
	if len(cmd.Args) != 1 {
		return "", ErrInvalidArguments
	}
	return cmd.Args[0], nil
}
