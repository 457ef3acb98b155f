package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/explan/pkg/application/services/filter"
	"github.com/vsinha/explan/pkg/application/services/orchestration"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/interfaces/cli/output"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the plan API
type Handler struct {
	planner           *orchestration.PlanningOrchestrator
	productivitySheet string
}

// NewHandler creates the plan API handler
func NewHandler(planner *orchestration.PlanningOrchestrator, productivitySheet string) *Handler {
	return &Handler{planner: planner, productivitySheet: productivitySheet}
}

// RegisterRoutes registers the plan API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/plan", h.GetPlan)
	router.GET("/plan/export", h.ExportPlan)
	router.GET("/filters", h.GetFilters)
}

type criteriaQuery struct {
	Year  int    `form:"year"`
	Month int    `form:"month"`
	Mold  string `form:"mold"`
	Line  string `form:"line"`
}

func bindCriteria(c *gin.Context) (filter.Criteria, bool) {
	var q criteriaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid query: %v", err)})
		return filter.Criteria{}, false
	}
	criteria := filter.Criteria{
		Year:  q.Year,
		Month: q.Month,
		Mold:  entities.NormalizeMold(q.Mold),
		Line:  q.Line,
	}
	if err := criteria.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return filter.Criteria{}, false
	}
	return criteria, true
}

// GetPlan computes the plan for the query filters
// GET /api/v1/plan?year=&month=&mold=&line=
func (h *Handler) GetPlan(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}
	result, err := h.planner.Run(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("X-Run-ID", result.RunID.String())
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)
	if err := output.WriteJSON(c.Writer, result, h.productivitySheet); err != nil {
		_ = c.Error(err)
	}
}

// ExportPlan returns the plan as an xlsx attachment
// GET /api/v1/plan/export?year=&month=&mold=&line=
func (h *Handler) ExportPlan(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}
	result, err := h.planner.Run(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := output.WriteXLSX(&buf, result, h.productivitySheet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.DefaultXLSXFile))
	c.Header("X-Run-ID", result.RunID.String())
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetFilters lists the selectable filter values
// GET /api/v1/filters?year=&month=&mold=
func (h *Handler) GetFilters(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}
	opts, err := h.planner.FilterOptions(criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case orchestration.IsEmptyResult(err):
		c.JSON(http.StatusNotFound, gin.H{"error": output.Notice(err)})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
