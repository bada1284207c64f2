package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/domain/agecalc"
	"github.com/mamadbah2/goatherd/internal/domain/classify"
	"github.com/mamadbah2/goatherd/internal/domain/cohort"
	"github.com/mamadbah2/goatherd/internal/domain/growth"
	"github.com/mamadbah2/goatherd/internal/domain/lactation"
	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/metrics"
	"github.com/mamadbah2/goatherd/internal/repository/mongodb"
)

const dateLayout = "2006-01-02"

// ErrAnimalNotFound is returned when the requested animal is not in the herd book.
var ErrAnimalNotFound = errors.New("animal not found")

// SnapshotSource loads the herd book.
type SnapshotSource interface {
	Load(ctx context.Context) (models.HerdSnapshot, error)
}

// AnimalView is the growth view of one animal.
type AnimalView struct {
	Animal    models.Animal       `json:"animal"`
	Category  models.Category     `json:"category"`
	Label     string              `json:"label"`
	Age       string              `json:"age"`
	Growth    models.GrowthStatus `json:"growth"`
	GDP       float64             `json:"gdp,omitempty"`
	Offspring []string            `json:"offspring,omitempty"`
}

// LactationView lists the reconstructed lactations of one doe.
type LactationView struct {
	AnimalID  string                  `json:"animal_id"`
	Cycles    []models.LactationCycle `json:"cycles"`
	Intervals []int                   `json:"intervals"`
	Warnings  []string                `json:"warnings,omitempty"`
}

// Service turns herd book snapshots into analytics.
type Service struct {
	source  SnapshotSource
	store   mongodb.Repository
	cfg     models.AppConfig
	metrics *metrics.Collector
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new reporting service instance. store and collector
// may be nil.
func NewService(source SnapshotSource, store mongodb.Repository, cfg models.AppConfig, collector *metrics.Collector, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:  source,
		store:   store,
		cfg:     cfg.WithDefaults(),
		metrics: collector,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) asOf() time.Time {
	return agecalc.StartOfDay(s.now())
}

// BuildHerdReport loads the herd book and computes a fresh report.
func (s *Service) BuildHerdReport(ctx context.Context) (models.HerdReport, error) {
	start := time.Now()

	snap, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.RecordFailure()
		return models.HerdReport{}, fmt.Errorf("load herd snapshot: %w", err)
	}

	report := Analyze(snap, s.cfg, s.asOf())
	report.GeneratedAt = s.now().UTC()

	s.metrics.RecordReport(report, time.Since(start).Seconds())
	s.logger.Info("herd report generated",
		zap.String("as_of", report.AsOf.Format(dateLayout)),
		zap.Int("managed", report.ManagedAnimals),
		zap.Int("ready_to_wean", len(report.ReadyToWean)),
		zap.Int("ready_to_serve", len(report.ReadyToServe)),
		zap.Int("growth_alerts", len(report.GrowthAlerts)))

	return report, nil
}

// GenerateAndStore builds a report and persists it when a store is configured.
func (s *Service) GenerateAndStore(ctx context.Context) (models.HerdReport, error) {
	report, err := s.BuildHerdReport(ctx)
	if err != nil {
		return models.HerdReport{}, err
	}
	if s.store == nil {
		return report, nil
	}
	if err := s.store.SaveHerdReport(ctx, report); err != nil {
		return report, fmt.Errorf("save herd report: %w", err)
	}
	return report, nil
}

// LatestHerdReport returns today's stored report, building one when none is
// stored for today.
func (s *Service) LatestHerdReport(ctx context.Context) (models.HerdReport, error) {
	if s.store != nil {
		report, err := s.store.LatestHerdReport(ctx)
		switch {
		case err == nil && report.AsOf.Equal(s.asOf()):
			return report, nil
		case err != nil && !errors.Is(err, mongodb.ErrNoReport):
			s.logger.Warn("stored report unavailable, rebuilding", zap.Error(err))
		}
	}
	return s.BuildHerdReport(ctx)
}

// AnimalGrowth returns the category and growth status of one animal.
func (s *Service) AnimalGrowth(ctx context.Context, id string) (AnimalView, error) {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return AnimalView{}, fmt.Errorf("load herd snapshot: %w", err)
	}

	animal, ok := snap.Animal(id)
	if !ok {
		return AnimalView{}, ErrAnimalNotFound
	}

	asOf := s.asOf()
	index := classify.NewParentIndex(snap.Animals)
	category := classify.Categorize(animal, snap.ParturitionsOf(id), index, asOf)
	weights := snap.BodyWeightsOf(id)

	view := AnimalView{
		Animal:    animal,
		Category:  category,
		Label:     category.Label(),
		Age:       agecalc.FormatAge(animal.BirthDate, asOf),
		Growth:    growth.Evaluate(animal, weights, snap.EventsOf(id), s.cfg, asOf),
		Offspring: index.ChildrenOfDam(id),
	}
	if gdp, ok := growth.DailyGain(growth.NewSeries(animal.BirthDate, animal.BirthWeight, weights)); ok {
		view.GDP = gdp
	}
	return view, nil
}

// AnimalLactations rebuilds the lactation cycles of one doe.
func (s *Service) AnimalLactations(ctx context.Context, id string) (LactationView, error) {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return LactationView{}, fmt.Errorf("load herd snapshot: %w", err)
	}
	if _, ok := snap.Animal(id); !ok {
		return LactationView{}, ErrAnimalNotFound
	}

	births := snap.ParturitionsOf(id)
	view := LactationView{
		AnimalID:  id,
		Cycles:    lactation.BuildCycles(births, snap.MilkWeightsOf(id), s.asOf()),
		Intervals: lactation.Intervals(births),
	}
	if view.Cycles == nil {
		view.Cycles = []models.LactationCycle{}
	}
	view.Warnings = lactation.StatusWarnings(view.Cycles)
	if view.Intervals == nil {
		view.Intervals = []int{}
	}
	return view, nil
}

// CompareLactation returns the cohort curve the animal is compared against.
func (s *Service) CompareLactation(ctx context.Context, req cohort.Request) ([]models.CurvePoint, error) {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load herd snapshot: %w", err)
	}
	if _, ok := snap.Animal(req.AnimalID); !ok {
		return nil, ErrAnimalNotFound
	}

	herd := cohort.Herd{
		Animals: snap.Animals,
		Cycles:  lactation.BuildHerd(snap.Parturitions, snap.MilkWeights, s.asOf()),
	}
	return cohort.Compare(req, herd), nil
}

// GrowthCurve averages the weighing series of the managed animals currently
// in the given category, per age bucket.
func (s *Service) GrowthCurve(ctx context.Context, category models.Category, bucketDays int) ([]models.CurvePoint, error) {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load herd snapshot: %w", err)
	}

	categories := classify.CategorizeHerd(snap.Animals, snap.Parturitions, s.asOf())
	weights := groupWeighings(snap.BodyWeights)

	var series []growth.Series
	for _, a := range snap.Animals {
		if a.IsManaged() && categories[a.ID] == category {
			series = append(series, growth.NewSeries(a.BirthDate, a.BirthWeight, weights[a.ID]))
		}
	}
	return cohort.GrowthCurve(series, bucketDays), nil
}

// Analyze computes the herd report of a snapshot. It is pure: the snapshot is
// only read.
func Analyze(snap models.HerdSnapshot, cfg models.AppConfig, asOf time.Time) models.HerdReport {
	cfg = cfg.WithDefaults()
	categories := classify.CategorizeHerd(snap.Animals, snap.Parturitions, asOf)
	weights := groupWeighings(snap.BodyWeights)
	events := groupEvents(snap.Events)

	report := models.HerdReport{
		AsOf:           asOf,
		TotalAnimals:   len(snap.Animals),
		CategoryCounts: make(map[string]int),
		ReadyToWean:    []string{},
		ReadyToServe:   []string{},
		GrowthAlerts:   []string{},
	}

	gdp := make(map[string]float64)
	var deviations []float64
	rows := make(map[string]*models.AnimalReportRow)

	for _, a := range snap.Animals {
		if !a.IsManaged() {
			continue
		}
		report.ManagedAnimals++

		category := categories[a.ID]
		report.CategoryCounts[string(category)]++

		status := growth.Evaluate(a, weights[a.ID], events[a.ID], cfg, asOf)
		if status.IsReadyForWeaning {
			report.ReadyToWean = append(report.ReadyToWean, a.ID)
		}
		if status.IsReadyForService {
			report.ReadyToServe = append(report.ReadyToServe, a.ID)
		}

		row := &models.AnimalReportRow{
			ID:            a.ID,
			Category:      category,
			Label:         category.Label(),
			AgeDays:       status.AgeDays,
			Age:           agecalc.FormatAge(a.BirthDate, asOf),
			CurrentWeight: status.CurrentWeight,
		}
		rows[a.ID] = row

		if category.IsAdult() {
			continue
		}

		row.Band = status.Band
		if status.Band == models.GrowthAlert {
			report.GrowthAlerts = append(report.GrowthAlerts, a.ID)
		}
		if status.Deviation > 0 {
			deviations = append(deviations, status.Deviation)
		}
		if v, ok := growth.DailyGain(growth.NewSeries(a.BirthDate, a.BirthWeight, weights[a.ID])); ok {
			gdp[a.ID] = v
			row.GDP = v
		}
	}

	for _, ranked := range cohort.Rank(gdp) {
		rows[ranked.ID].GDPBand = string(ranked.Band)
		rows[ranked.ID].GDPPercentile = ranked.Percentile
	}

	gdpValues := make([]float64, 0, len(gdp))
	for _, v := range gdp {
		gdpValues = append(gdpValues, v)
	}
	report.GDP = cohort.Summarize(gdpValues)
	report.Deviation = cohort.Summarize(deviations)

	report.Animals = make([]models.AnimalReportRow, 0, len(rows))
	for _, row := range rows {
		report.Animals = append(report.Animals, *row)
	}
	sort.Slice(report.Animals, func(i, j int) bool { return report.Animals[i].ID < report.Animals[j].ID })
	sort.Strings(report.ReadyToWean)
	sort.Strings(report.ReadyToServe)
	sort.Strings(report.GrowthAlerts)

	return report
}

func groupWeighings(all []models.Weighing) map[string][]models.Weighing {
	out := make(map[string][]models.Weighing)
	for _, w := range all {
		out[w.AnimalID] = append(out[w.AnimalID], w)
	}
	return out
}

func groupEvents(all []models.Event) map[string][]models.Event {
	out := make(map[string][]models.Event)
	for _, e := range all {
		out[e.AnimalID] = append(out[e.AnimalID], e)
	}
	return out
}
