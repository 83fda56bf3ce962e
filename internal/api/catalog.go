package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tariff"
)

// StatusResponse reports service health and catalog sizes.
type StatusResponse struct {
	Service   string `json:"service"`
	Status    string `json:"status"`
	Profiles  int    `json:"profiles"`
	Tariffs   int    `json:"tariffs"`
	Scenarios int    `json:"scenarios"`
	Users     int    `json:"users"`
}

// ProfileSummary is the list-view projection of a utility profile.
type ProfileSummary struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	ShortName            string            `json:"shortName"`
	State                string            `json:"state"`
	Region               string            `json:"region"`
	ResidentialCustomers int64             `json:"residentialCustomers"`
	MarketType           domain.MarketType `json:"marketType"`
	HasDCActivity        bool              `json:"hasDCActivity"`
	DefaultDataCenterMW  decimal.Decimal   `json:"defaultDataCenterMW"`
}

// GetStatus reports service info and catalog counts.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Service:   "gridbill",
		Status:    "ok",
		Profiles:  len(reference.Profiles()),
		Tariffs:   len(tariff.Catalog()),
		Scenarios: len(reference.Scenarios()),
	}
	if h.users != nil {
		if n, err := h.users.Count(); err == nil {
			resp.Users = n
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListScenarios returns the four scenario descriptors.
// GET /api/scenarios
func (h *Handler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, reference.Scenarios())
}

// ListProfiles returns the utility profile summaries.
// GET /api/profiles
func (h *Handler) ListProfiles(c *gin.Context) {
	profiles := reference.Profiles()
	summaries := make([]ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, ProfileSummary{
			ID:                   p.ID,
			Name:                 p.Name,
			ShortName:            p.ShortName,
			State:                p.State,
			Region:               p.Region,
			ResidentialCustomers: p.ResidentialCustomers,
			MarketType:           p.Market.Type,
			HasDCActivity:        p.HasDCActivity,
			DefaultDataCenterMW:  p.DefaultDataCenterMW,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

// GetProfile returns one full utility profile.
// GET /api/profiles/:id
func (h *Handler) GetProfile(c *gin.Context) {
	id := c.Param("id")
	p, ok := reference.ProfileByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown profile %q", id)})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListTariffs returns the tariff catalog, optionally filtered by state,
// iso, or status query parameters.
// GET /api/tariffs
func (h *Handler) ListTariffs(c *gin.Context) {
	state := strings.TrimSpace(c.Query("state"))
	iso := strings.TrimSpace(c.Query("iso"))
	status := strings.TrimSpace(c.Query("status"))

	tariffs := make([]domain.Tariff, 0)
	for _, t := range tariff.Catalog() {
		if state != "" && !strings.EqualFold(t.State, state) {
			continue
		}
		if iso != "" && !strings.EqualFold(t.ISORTO, iso) {
			continue
		}
		if status != "" && !strings.EqualFold(string(t.Status), status) {
			continue
		}
		tariffs = append(tariffs, t)
	}
	c.JSON(http.StatusOK, tariffs)
}

// GetTariff returns one tariff.
// GET /api/tariffs/:id
func (h *Handler) GetTariff(c *gin.Context) {
	id := c.Param("id")
	t, ok := tariff.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown tariff %q", id)})
		return
	}
	c.JSON(http.StatusOK, t)
}

// GetHeatmap returns the per-state rollups.
// GET /api/heatmap
func (h *Handler) GetHeatmap(c *gin.Context) {
	rollups, err := tariff.BuildStateRollups(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build heatmap"})
		return
	}
	c.JSON(http.StatusOK, rollups)
}
