package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbill/gridbill/internal/auth"
	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/store"
	"github.com/gridbill/gridbill/internal/tariff"
)

func newTestHandler(t *testing.T) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := store.NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	h := NewHandler(calculation.NewTrajectoryEngine(), users, tokens)

	router := gin.New()
	h.RegisterRoutes(router)
	return h, router
}

// doRequest sends a request through the router. A string body is sent
// raw; anything else non-nil is JSON encoded.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "gridbill", resp.Service)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, len(reference.Profiles()), resp.Profiles)
	assert.Equal(t, len(tariff.Catalog()), resp.Tariffs)
	assert.Equal(t, 4, resp.Scenarios)
	assert.Zero(t, resp.Users)
}

func TestListScenarios(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var scenarios []domain.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scenarios))
	require.Len(t, scenarios, 4)
	assert.Equal(t, domain.ScenarioBaseline, scenarios[0].ID)
	assert.Equal(t, domain.ScenarioDispatchable, scenarios[3].ID)
}

func TestListProfiles(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profiles []ProfileSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
	require.Len(t, profiles, len(reference.Profiles()))

	var pso *ProfileSummary
	for i := range profiles {
		if profiles[i].ID == "pso-oklahoma" {
			pso = &profiles[i]
			break
		}
	}
	require.NotNil(t, pso)
	assert.Equal(t, "Oklahoma", pso.State)
	assert.Equal(t, int64(460000), pso.ResidentialCustomers)
	assert.True(t, pso.HasDCActivity)
}

func TestGetProfile(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/profiles/pso-oklahoma", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile domain.UtilityProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Contains(t, profile.Name, "Oklahoma")
}

func TestGetProfileUnknown(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/profiles/atlantis-power", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown profile")
}

func TestListTariffs(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/tariffs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tariffs []domain.Tariff
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tariffs))
	assert.Len(t, tariffs, len(tariff.Catalog()))
}

func TestListTariffsFilters(t *testing.T) {
	_, router := newTestHandler(t)

	decode := func(w *httptest.ResponseRecorder) []domain.Tariff {
		t.Helper()
		require.Equal(t, http.StatusOK, w.Code)
		var tariffs []domain.Tariff
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tariffs))
		return tariffs
	}

	byState := decode(doRequest(t, router, http.MethodGet, "/api/tariffs?state=va", nil))
	require.Len(t, byState, 2)
	for _, tr := range byState {
		assert.Equal(t, "VA", tr.State)
	}

	byISO := decode(doRequest(t, router, http.MethodGet, "/api/tariffs?iso=spp", nil))
	require.Len(t, byISO, 3)
	for _, tr := range byISO {
		assert.Equal(t, "SPP", tr.ISORTO)
	}

	byStatus := decode(doRequest(t, router, http.MethodGet, "/api/tariffs?status=pending", nil))
	require.NotEmpty(t, byStatus)
	for _, tr := range byStatus {
		assert.Equal(t, domain.TariffPending, tr.Status)
	}

	combined := decode(doRequest(t, router, http.MethodGet, "/api/tariffs?state=VA&status=pending", nil))
	require.Len(t, combined, 1)
	assert.Equal(t, "appalachian-power-va", combined[0].ID)

	none := decode(doRequest(t, router, http.MethodGet, "/api/tariffs?state=ZZ", nil))
	assert.Empty(t, none)
}

func TestGetTariff(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/tariffs/public-service-company-of-oklahoma-ok", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tr domain.Tariff
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tr))
	assert.Equal(t, "OK", tr.State)
	assert.Equal(t, "SPP", tr.ISORTO)
}

func TestGetTariffUnknown(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/tariffs/nonexistent", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown tariff")
}

func TestGetHeatmap(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodGet, "/api/heatmap", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rollups []tariff.StateRollup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rollups))
	assert.Len(t, rollups, len(tariff.States()))
}

func TestPostTrajectoriesDefaults(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodPost, "/api/trajectories", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrajectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Set)
	require.NotNil(t, resp.Summary)
	assert.Len(t, resp.Set.Trajectories, 4)

	base, ok := resp.Set.Get(domain.ScenarioBaseline)
	require.True(t, ok)
	require.Len(t, base.Points, resp.Set.Horizon+1)
	assert.True(t, base.Points[0].MonthlyBill.Equal(decimal.NewFromInt(130)),
		"year zero should be the model default bill, got %s", base.Points[0].MonthlyBill)
	assert.True(t, resp.Summary.CurrentMonthlyBill.Equal(decimal.NewFromInt(130)))
}

func TestPostTrajectoriesProfile(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodPost, "/api/trajectories", map[string]any{
		"profileId": "duke-carolinas",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrajectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	base, ok := resp.Set.Get(domain.ScenarioBaseline)
	require.True(t, ok)
	assert.True(t, base.Points[0].MonthlyBill.Equal(decimal.NewFromInt(135)),
		"year zero should be the profile bill, got %s", base.Points[0].MonthlyBill)
}

func TestPostTrajectoriesOverlay(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodPost, "/api/trajectories", map[string]any{
		"profileId":   "duke-carolinas",
		"utility":     map[string]any{"avgMonthlyBill": 150},
		"assumptions": map[string]any{"projectionYears": 5},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrajectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Set.Horizon)

	base, ok := resp.Set.Get(domain.ScenarioBaseline)
	require.True(t, ok)
	require.Len(t, base.Points, 6)
	assert.True(t, base.Points[0].MonthlyBill.Equal(decimal.NewFromInt(150)),
		"overlay should override the profile bill, got %s", base.Points[0].MonthlyBill)
}

func TestPostTrajectoriesUnknownProfile(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodPost, "/api/trajectories", map[string]any{
		"profileId": "atlantis-power",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TrajectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	base, ok := resp.Set.Get(domain.ScenarioBaseline)
	require.True(t, ok)
	assert.True(t, base.Points[0].MonthlyBill.Equal(decimal.NewFromInt(130)),
		"unknown profile should fall back to model defaults")
}

func TestPostTrajectoriesBadBody(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodPost, "/api/trajectories", "{not json")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestPostTrajectoriesUnknownTariff(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodPost, "/api/trajectories", map[string]any{
		"tariffId": "nonexistent",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown tariff")
}

func TestPostTrajectoriesInvalidOverlay(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(t, router, http.MethodPost, "/api/trajectories", map[string]any{
		"utility": map[string]any{"avgMonthlyBill": -5},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "average monthly bill")
}

func TestPostTrajectoriesMemoized(t *testing.T) {
	h, router := newTestHandler(t)

	body := map[string]any{"profileId": "pso-oklahoma"}
	w1 := doRequest(t, router, http.MethodPost, "/api/trajectories", body)
	w2 := doRequest(t, router, http.MethodPost, "/api/trajectories", body)
	require.Equal(t, http.StatusOK, w1.Code)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())

	h.mu.Lock()
	cached := len(h.cache)
	h.mu.Unlock()
	assert.Equal(t, 1, cached, "identical requests should share one cache entry")

	doRequest(t, router, http.MethodPost, "/api/trajectories", map[string]any{
		"profileId": "duke-carolinas",
	})
	h.mu.Lock()
	cached = len(h.cache)
	h.mu.Unlock()
	assert.Equal(t, 2, cached)
}
