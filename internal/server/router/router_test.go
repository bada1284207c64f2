package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/goatherd/internal/domain/cohort"
	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/metrics"
	"github.com/mamadbah2/goatherd/internal/server/handlers"
	"github.com/mamadbah2/goatherd/internal/service/reporting"
)

type stubMessaging struct{}

func (stubMessaging) VerifyWebhookToken(_, _, challenge string) (string, error) {
	return challenge, nil
}

func (stubMessaging) HandleWebhook(context.Context, models.WebhookPayload) error { return nil }

func (stubMessaging) SendOutbound(context.Context, models.OutboundMessageRequest) error { return nil }

type stubHerd struct{}

func (stubHerd) LatestHerdReport(context.Context) (models.HerdReport, error) {
	return models.HerdReport{ManagedAnimals: 2}, nil
}

func (stubHerd) AnimalGrowth(_ context.Context, id string) (reporting.AnimalView, error) {
	return reporting.AnimalView{Animal: models.Animal{ID: id}}, nil
}

func (stubHerd) AnimalLactations(_ context.Context, id string) (reporting.LactationView, error) {
	return reporting.LactationView{AnimalID: id}, nil
}

func (stubHerd) CompareLactation(context.Context, cohort.Request) ([]models.CurvePoint, error) {
	return []models.CurvePoint{}, nil
}

func (stubHerd) GrowthCurve(context.Context, models.Category, int) ([]models.CurvePoint, error) {
	return []models.CurvePoint{}, nil
}

func TestRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	collector.RecordReport(models.HerdReport{ManagedAnimals: 2}, 0.5)

	r := New(
		handlers.NewWebhookHandler(stubMessaging{}, nil),
		handlers.NewHerdHandler(stubHerd{}, nil),
		reg,
		nil,
	)

	for _, path := range []string{
		"/healthz",
		"/api/herd/report",
		"/api/herd/growth-curve?category=doe",
		"/api/animals/D1/growth",
		"/api/animals/D1/lactations",
		"/api/animals/D1/lactations/compare?kind=herd",
		"/webhook?hub.challenge=7",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goatherd_reports_generated_total 1")
}
