package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// SnapshotLoader reads the herd book collections into a HerdSnapshot.
type SnapshotLoader struct {
	repo   Repository
	logger *zap.Logger
}

// NewSnapshotLoader wires a loader on top of a sheet repository.
func NewSnapshotLoader(repo Repository, logger *zap.Logger) *SnapshotLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotLoader{repo: repo, logger: logger}
}

// Load reads every collection concurrently. Malformed rows are skipped and
// logged; a failed range read fails the whole load.
func (l *SnapshotLoader) Load(ctx context.Context) (models.HerdSnapshot, error) {
	var snap models.HerdSnapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Animals, err = loadRows(gCtx, l, AnimalsRange, parseAnimal)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Parturitions, err = loadRows(gCtx, l, ParturitionsRange, parseParturition)
		return err
	})
	g.Go(func() error {
		var err error
		snap.BodyWeights, err = loadRows(gCtx, l, BodyWeightsRange, parseWeighing)
		return err
	})
	g.Go(func() error {
		var err error
		snap.MilkWeights, err = loadRows(gCtx, l, MilkWeightsRange, parseWeighing)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Events, err = loadRows(gCtx, l, EventsRange, parseEvent)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.HerdSnapshot{}, err
	}

	l.logger.Info("herd snapshot loaded",
		zap.Int("animals", len(snap.Animals)),
		zap.Int("parturitions", len(snap.Parturitions)),
		zap.Int("body_weights", len(snap.BodyWeights)),
		zap.Int("milk_weights", len(snap.MilkWeights)),
		zap.Int("events", len(snap.Events)))

	return snap, nil
}

func loadRows[T any](ctx context.Context, l *SnapshotLoader, sheetRange string, parse func([]interface{}) (T, error)) ([]T, error) {
	rows, err := l.repo.ReadRange(ctx, sheetRange)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", sheetRange, err)
	}

	out := make([]T, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		record, err := parse(row)
		if err != nil {
			// +2: ranges start on the second sheet row.
			l.logger.Debug("skip malformed row", zap.String("range", sheetRange), zap.Int("row", i+2), zap.Error(err))
			continue
		}
		out = append(out, record)
	}
	return out, nil
}
