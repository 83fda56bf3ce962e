package api

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tariff"
)

// Identical payloads share one cached projection. The cache is flushed
// wholesale once it fills; the engine is cheap enough that cold runs
// only matter under burst load.
const trajectoryCacheLimit = 256

// TrajectoryRequest is the POST /api/trajectories payload. Every field
// is optional: utility, dataCenter, and assumptions are kept raw so the
// request overlays only the keys it provides onto profile or model
// defaults, mirroring the YAML session loader.
type TrajectoryRequest struct {
	ProfileID   string          `json:"profileId"`
	TariffID    string          `json:"tariffId"`
	Utility     json.RawMessage `json:"utility"`
	DataCenter  json.RawMessage `json:"dataCenter"`
	Assumptions json.RawMessage `json:"assumptions"`
}

// TrajectoryResponse carries the four projected trajectories and their
// summary statistics.
type TrajectoryResponse struct {
	Set     *domain.TrajectorySet `json:"trajectories"`
	Summary *domain.SummaryStats  `json:"summary"`
}

// PostTrajectories runs all four scenarios for the requested setup.
// POST /api/trajectories
func (h *Handler) PostTrajectories(c *gin.Context) {
	var req TrajectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := h.resolveInput(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.parser.ValidateInput(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.project(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "projection failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// resolveInput assembles a full projection input from a partial request.
// An unknown profile id falls back to the model defaults rather than
// erroring, so exploratory clients always get an answer.
func (h *Handler) resolveInput(req *TrajectoryRequest) (*domain.ProjectionInput, error) {
	forecast := domain.ForecastModerate
	if len(req.Assumptions) > 0 {
		var head struct {
			Forecast domain.ForecastScenario `json:"forecast"`
		}
		if err := json.Unmarshal(req.Assumptions, &head); err != nil {
			return nil, fmt.Errorf("invalid assumptions: %w", err)
		}
		if domain.ValidForecast(head.Forecast) {
			forecast = head.Forecast
		}
	}

	assumptions := reference.DefaultAssumptions()
	assumptions.Forecast = forecast

	input := &domain.ProjectionInput{
		Utility:     reference.DefaultUtility(),
		DataCenter:  reference.DefaultDataCenter(),
		Assumptions: assumptions,
		TariffID:    req.TariffID,
	}
	if p, ok := reference.ProfileByID(req.ProfileID); ok {
		input.Name = p.ShortName
		input.ProfileID = p.ID
		input.Utility = reference.UtilityFromProfile(&p)
		input.DataCenter = reference.DataCenterForProfile(&p, forecast)
	}

	if len(req.Utility) > 0 {
		if err := json.Unmarshal(req.Utility, &input.Utility); err != nil {
			return nil, fmt.Errorf("invalid utility: %w", err)
		}
	}
	if len(req.DataCenter) > 0 {
		if err := json.Unmarshal(req.DataCenter, &input.DataCenter); err != nil {
			return nil, fmt.Errorf("invalid data center: %w", err)
		}
	}
	if len(req.Assumptions) > 0 {
		if err := json.Unmarshal(req.Assumptions, &input.Assumptions); err != nil {
			return nil, fmt.Errorf("invalid assumptions: %w", err)
		}
	}
	return input, nil
}

// project runs the engine for one resolved input, memoizing on the
// input fingerprint. Concurrent identical requests collapse into a
// single run.
func (h *Handler) project(ctx context.Context, input *domain.ProjectionInput) (*TrajectoryResponse, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint input: %w", err)
	}
	key := fmt.Sprintf("%x", sha256.Sum256(raw))

	h.mu.Lock()
	if resp, ok := h.cache[key]; ok {
		h.mu.Unlock()
		return resp, nil
	}
	h.mu.Unlock()

	v, err, _ := h.group.Do(key, func() (interface{}, error) {
		var largeLoad *domain.Tariff
		if input.TariffID != "" {
			if t, ok := tariff.ByID(input.TariffID); ok {
				largeLoad = &t
			}
		}

		set, err := h.engine.ProjectAll(ctx, &input.Utility, &input.DataCenter, largeLoad, &input.Assumptions)
		if err != nil {
			return nil, err
		}
		summary := h.engine.SummarizeTrajectories(set, &input.Utility, &input.DataCenter, largeLoad)
		resp := &TrajectoryResponse{Set: set, Summary: summary}

		h.mu.Lock()
		if len(h.cache) >= trajectoryCacheLimit {
			h.cache = make(map[string]*TrajectoryResponse)
		}
		h.cache[key] = resp
		h.mu.Unlock()
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TrajectoryResponse), nil
}
