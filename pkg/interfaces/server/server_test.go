package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/explan/pkg/application/services/orchestration"
	testinghelpers "github.com/vsinha/explan/pkg/application/services/testing"
	"github.com/vsinha/explan/pkg/infrastructure/metrics"
	"github.com/vsinha/explan/pkg/interfaces/cli/output"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPromRecorder(reg)
	require.NoError(t, err)

	planner, err := orchestration.NewFromDataset(nil, testinghelpers.KardexDataset(), nil)
	require.NoError(t, err)
	planner.WithRecorder(rec)

	return New(planner, Options{DevMode: true, Gatherer: reg}).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, newTestServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetPlan(t *testing.T) {
	w := get(t, newTestServer(t), "/api/v1/plan?year=2024&month=3")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Run-ID"))

	var resp struct {
		Rows []struct {
			Mold            string `json:"mold"`
			InstructionText string `json:"instruction_text"`
		} `json:"rows"`
		Total      string `json:"total"`
		TotalLabel string `json:"total_label"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "MYIFZ01", resp.Rows[0].Mold)
	assert.Equal(t, "✅ Empezar a fabricar el 1 de marzo de 2024.", resp.Rows[0].InstructionText)
	assert.Equal(t, "130", resp.Total)
	assert.Equal(t, "Marzo 2024", resp.TotalLabel)
}

func TestGetPlan_MoldIsNormalized(t *testing.T) {
	w := get(t, newTestServer(t), "/api/v1/plan?mold=%20myifz01%20")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Criteria struct {
			Mold string `json:"mold"`
		} `json:"criteria"`
		Rows []struct {
			Mold string `json:"mold"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MYIFZ01", resp.Criteria.Mold)
	require.Len(t, resp.Rows, 2)
	for _, row := range resp.Rows {
		assert.Equal(t, "MYIFZ01", row.Mold)
	}
}

func TestGetPlan_Errors(t *testing.T) {
	h := newTestServer(t)

	w := get(t, h, "/api/v1/plan?year=1999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), output.NoticeNoMatchingEvents)

	w = get(t, h, "/api/v1/plan?month=13")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, h, "/api/v1/plan?year=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportPlan(t *testing.T) {
	w := get(t, newTestServer(t), "/api/v1/plan/export?year=2024")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), output.DefaultXLSXFile)

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(output.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestGetFilters(t *testing.T) {
	w := get(t, newTestServer(t), "/api/v1/filters?year=2025")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Years []int    `json:"years"`
		Molds []string `json:"molds"`
		Lines []string `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int{2024, 2025}, resp.Years)
	assert.Equal(t, []string{"MYIFZ02"}, resp.Molds)
	assert.Equal(t, []string{"L3"}, resp.Lines)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)
	get(t, h, "/api/v1/plan")

	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `explan_plans_total{outcome="ok"} 1`)
}
