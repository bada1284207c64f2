package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/domain/cohort"
	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/service/reporting"
)

// HerdService is the read side of the herd analytics.
type HerdService interface {
	LatestHerdReport(ctx context.Context) (models.HerdReport, error)
	AnimalGrowth(ctx context.Context, id string) (reporting.AnimalView, error)
	AnimalLactations(ctx context.Context, id string) (reporting.LactationView, error)
	CompareLactation(ctx context.Context, req cohort.Request) ([]models.CurvePoint, error)
	GrowthCurve(ctx context.Context, category models.Category, bucketDays int) ([]models.CurvePoint, error)
}

// HerdHandler exposes herd analytics as JSON.
type HerdHandler struct {
	svc    HerdService
	logger *zap.Logger
}

// NewHerdHandler constructs the herd API handler.
func NewHerdHandler(svc HerdService, logger *zap.Logger) *HerdHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HerdHandler{svc: svc, logger: logger}
}

// Report returns the current herd report.
func (h *HerdHandler) Report(c *gin.Context) {
	report, err := h.svc.LatestHerdReport(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Growth returns the growth view of one animal.
func (h *HerdHandler) Growth(c *gin.Context) {
	view, err := h.svc.AnimalGrowth(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Lactations returns the lactation cycles of one doe.
func (h *HerdHandler) Lactations(c *gin.Context) {
	view, err := h.svc.AnimalLactations(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Compare returns the cohort curve for ?kind=...&cycle=....
func (h *HerdHandler) Compare(c *gin.Context) {
	kind, err := cohort.ParseKind(c.DefaultQuery("kind", string(cohort.KindHerd)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := cohort.Request{AnimalID: c.Param("id"), Kind: kind}
	if raw := c.Query("cycle"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cycle must be a positive integer"})
			return
		}
		req.Cycle = n
	} else if kind == cohort.KindPriorLactation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cycle is required for prior lactation"})
		return
	}

	curve, err := h.svc.CompareLactation(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"animal_id": req.AnimalID, "kind": kind, "curve": curve})
}

// GrowthCurve returns the mean weight per age bucket of one category,
// ?category=kid_female&bucket=30.
func (h *HerdHandler) GrowthCurve(c *gin.Context) {
	category, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	bucket := cohort.DefaultBucketDays
	if raw := c.Query("bucket"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bucket must be a positive number of days"})
			return
		}
		bucket = n
	}

	curve, err := h.svc.GrowthCurve(c.Request.Context(), category, bucket)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "bucket_days": bucket, "curve": curve})
}

func (h *HerdHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, reporting.ErrAnimalNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		return
	}
	h.logger.Error("herd request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "herd data unavailable"})
}
