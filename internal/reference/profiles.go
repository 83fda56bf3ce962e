package reference

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// Utility profiles compiled from public sources: EIA data, utility
// filings, and annual reports. Figures reflect 2024 where available.

func profiles() []domain.UtilityProfile {
	return []domain.UtilityProfile{
		{
			ID:                   "pso-oklahoma",
			Name:                 "Public Service Company of Oklahoma (PSO)",
			ShortName:            "PSO Oklahoma",
			State:                "Oklahoma",
			Region:               "Southwest",
			ResidentialCustomers: 460000,
			TotalCustomers:       575000,
			SystemPeakMW:         decimal.NewFromInt(4400),
			AvgMonthlyBill:       decimal.NewFromInt(130),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1100),
			Market:               SPPMarket(),
			HasDCActivity:        true,
			DCNotes:              "Multiple large data center proposals; PSO facing 31% power deficit by 2031 with 779MW of new large load requests",
			DefaultDataCenterMW:  decimal.NewFromInt(1000),
		},
		{
			ID:                   "duke-carolinas",
			Name:                 "Duke Energy Carolinas",
			ShortName:            "Duke Carolinas",
			State:                "North Carolina / South Carolina",
			Region:               "Southeast",
			ResidentialCustomers: 2507000,
			TotalCustomers:       2926000,
			SystemPeakMW:         decimal.NewFromInt(20700),
			AvgMonthlyBill:       decimal.NewFromInt(135),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1000),
			Market:               RegulatedMarket(),
			HasDCActivity:        true,
			DCNotes:              "Growing data center presence in Charlotte metro area",
			DefaultDataCenterMW:  decimal.NewFromInt(1000),
		},
		{
			ID:                   "duke-progress",
			Name:                 "Duke Energy Progress",
			ShortName:            "Duke Progress",
			State:                "North Carolina / South Carolina",
			Region:               "Southeast",
			ResidentialCustomers: 1400000,
			TotalCustomers:       1700000,
			SystemPeakMW:         decimal.NewFromInt(13800),
			AvgMonthlyBill:       decimal.NewFromInt(132),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1000),
			Market:               RegulatedMarket(),
			HasDCActivity:        true,
			DCNotes:              "Serves Raleigh area with growing tech sector",
			DefaultDataCenterMW:  decimal.NewFromInt(800),
		},
		{
			ID:                   "georgia-power",
			Name:                 "Georgia Power",
			ShortName:            "Georgia Power",
			State:                "Georgia",
			Region:               "Southeast",
			ResidentialCustomers: 2400000,
			TotalCustomers:       2804000,
			SystemPeakMW:         decimal.NewFromInt(17100),
			AvgMonthlyBill:       decimal.NewFromInt(153),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1150),
			Market:               RegulatedMarket(),
			HasDCActivity:        true,
			DCNotes:              "Projecting 8,200 MW load growth by 2030 including data centers",
			DefaultDataCenterMW:  decimal.NewFromInt(1200),
		},
		{
			ID:                   "aps-arizona",
			Name:                 "Arizona Public Service (APS)",
			ShortName:            "APS Arizona",
			State:                "Arizona",
			Region:               "Southwest",
			ResidentialCustomers: 1200000,
			TotalCustomers:       1400000,
			SystemPeakMW:         decimal.NewFromInt(8212),
			AvgMonthlyBill:       decimal.NewFromInt(140),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1050),
			Market:               RegulatedMarket(),
			HasDCActivity:        true,
			DCNotes:              "Phoenix metro data center growth; 40% peak growth by 2031",
			DefaultDataCenterMW:  decimal.NewFromInt(800),
		},
		{
			ID:                   "nv-energy",
			Name:                 "NV Energy",
			ShortName:            "NV Energy Nevada",
			State:                "Nevada",
			Region:               "West",
			ResidentialCustomers: 610000,
			TotalCustomers:       2400000,
			SystemPeakMW:         decimal.NewFromInt(9000),
			AvgMonthlyBill:       decimal.NewFromInt(125),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(900),
			Market:               RegulatedMarket(),
			HasDCActivity:        true,
			DCNotes:              "Data centers requesting to triple peak demand",
			DefaultDataCenterMW:  decimal.NewFromInt(1500),
		},
		{
			ID:                   "xcel-colorado",
			Name:                 "Xcel Energy Colorado",
			ShortName:            "Xcel Colorado",
			State:                "Colorado",
			Region:               "Mountain West",
			ResidentialCustomers: 1400000,
			TotalCustomers:       1600000,
			SystemPeakMW:         decimal.NewFromInt(7200),
			AvgMonthlyBill:       decimal.NewFromInt(105),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(700),
			Market:               RegulatedMarket(),
			HasDCActivity:        true,
			DCNotes:              "Data centers to drive 2/3 of new demand",
			DefaultDataCenterMW:  decimal.NewFromInt(600),
		},
		{
			ID:                   "aep-ohio",
			Name:                 "AEP Ohio",
			ShortName:            "AEP Ohio",
			State:                "Ohio",
			Region:               "Midwest",
			ResidentialCustomers: 1200000,
			TotalCustomers:       1500000,
			SystemPeakMW:         decimal.NewFromInt(12000),
			AvgMonthlyBill:       decimal.NewFromInt(135),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(900),
			Market: withNotes(PJMMarket(),
				"AEP Ohio operates in PJM. Ohio is deregulated but AEP owns transmission."),
			HasDCActivity:       true,
			DCNotes:             "Ohio seeing significant data center growth; AEP proposed new rate class",
			DefaultDataCenterMW: decimal.NewFromInt(1000),
		},
		{
			ID:                   "aep-indiana-michigan",
			Name:                 "Indiana Michigan Power (I&M)",
			ShortName:            "AEP I&M",
			State:                "Indiana / Michigan",
			Region:               "Midwest",
			ResidentialCustomers: 480000,
			TotalCustomers:       600000,
			SystemPeakMW:         decimal.NewFromInt(5500),
			AvgMonthlyBill:       decimal.NewFromInt(130),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(950),
			Market: ownedGeneration(PJMMarket(), decimal.NewFromFloat(0.38),
				"I&M operates in PJM but owns generation including Cook Nuclear."),
			HasDCActivity:       true,
			DCNotes:             "Northeast Indiana seeing industrial and data center growth",
			DefaultDataCenterMW: decimal.NewFromInt(500),
		},
		{
			ID:                   "aep-appalachian",
			Name:                 "Appalachian Power (APCo)",
			ShortName:            "AEP Appalachian",
			State:                "Virginia / West Virginia",
			Region:               "Appalachian",
			ResidentialCustomers: 800000,
			TotalCustomers:       1000000,
			SystemPeakMW:         decimal.NewFromInt(7000),
			AvgMonthlyBill:       decimal.NewFromInt(125),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1000),
			Market: ownedGeneration(PJMMarket(), decimal.NewFromFloat(0.40),
				"Appalachian Power operates in PJM but WV remains traditionally regulated."),
			HasDCActivity:       true,
			DCNotes:             "Virginia portion seeing data center interest as NoVA constrained",
			DefaultDataCenterMW: decimal.NewFromInt(600),
		},
		{
			ID:                   "aep-swepco",
			Name:                 "Southwestern Electric Power (SWEPCO)",
			ShortName:            "AEP SWEPCO",
			State:                "Arkansas / Louisiana / Texas",
			Region:               "Southwest",
			ResidentialCustomers: 400000,
			TotalCustomers:       540000,
			SystemPeakMW:         decimal.NewFromInt(4800),
			AvgMonthlyBill:       decimal.NewFromInt(120),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1100),
			Market: withNotes(SPPMarket(),
				"SWEPCO operates in SPP. Vertically integrated with state PUC regulation."),
			HasDCActivity:       false,
			DCNotes:             "Less data center activity than other AEP territories",
			DefaultDataCenterMW: decimal.NewFromInt(400),
		},
		{
			ID:                   "dominion-virginia",
			Name:                 "Dominion Energy Virginia",
			ShortName:            "Dominion Virginia",
			State:                "Virginia",
			Region:               "Mid-Atlantic",
			ResidentialCustomers: 2500000,
			TotalCustomers:       2800000,
			SystemPeakMW:         decimal.NewFromInt(18000),
			AvgMonthlyBill:       decimal.NewFromInt(145),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1050),
			Market: ownedGeneration(PJMMarket(), decimal.NewFromFloat(0.35),
				"Dominion operates in PJM. Data center capital of the world."),
			HasDCActivity:       true,
			DCNotes:             "Data center capital of the world; forecasting 9GW DC peak in 10 years",
			DefaultDataCenterMW: decimal.NewFromInt(1500),
		},
		{
			ID:                   "ercot-texas",
			Name:                 "ERCOT (Texas Grid)",
			ShortName:            "ERCOT Texas",
			State:                "Texas",
			Region:               "Texas",
			ResidentialCustomers: 12000000,
			TotalCustomers:       26000000,
			SystemPeakMW:         decimal.NewFromInt(85508),
			AvgMonthlyBill:       decimal.NewFromInt(140),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(1100),
			Market: withNotes(ERCOTMarket(),
				"Energy-only market. 46% of projected load growth from data centers."),
			HasDCActivity:       true,
			DCNotes:             "Data centers account for 46% of projected load growth",
			DefaultDataCenterMW: decimal.NewFromInt(3000),
		},
		{
			ID:                   "custom",
			Name:                 "Custom / Enter Your Own",
			ShortName:            "Custom",
			State:                "",
			Region:               "",
			ResidentialCustomers: 500000,
			TotalCustomers:       600000,
			SystemPeakMW:         decimal.NewFromInt(4000),
			AvgMonthlyBill:       decimal.NewFromInt(144),
			AvgMonthlyUsageKWh:   decimal.NewFromInt(865),
			Market:               RegulatedMarket(),
			HasDCActivity:        false,
			DCNotes:              "Enter your own utility parameters",
			DefaultDataCenterMW:  decimal.NewFromInt(1000),
		},
	}
}

func withNotes(m domain.MarketStructure, notes string) domain.MarketStructure {
	m.Notes = notes
	return m
}

func ownedGeneration(m domain.MarketStructure, allocation decimal.Decimal, notes string) domain.MarketStructure {
	m.UtilityOwnsGeneration = true
	m.BaseResidentialAlloc = allocation
	m.Notes = notes
	return m
}

// Profiles returns all utility profiles in catalog order.
func Profiles() []domain.UtilityProfile {
	return profiles()
}

// ProfileByID looks up a profile. Unknown ids return (zero, false);
// callers fall back to defaults rather than failing.
func ProfileByID(id string) (domain.UtilityProfile, bool) {
	for _, p := range profiles() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.UtilityProfile{}, false
}

// ProfilesByRegion groups profiles by region label.
func ProfilesByRegion() map[string][]domain.UtilityProfile {
	result := make(map[string][]domain.UtilityProfile)
	for _, p := range profiles() {
		region := p.Region
		if region == "" {
			region = "Other"
		}
		result[region] = append(result[region], p)
	}
	return result
}

// ProfilesByMarketType groups profiles by market structure.
func ProfilesByMarketType() map[domain.MarketType][]domain.UtilityProfile {
	result := make(map[domain.MarketType][]domain.UtilityProfile)
	for _, p := range profiles() {
		result[p.Market.Type] = append(result[p.Market.Type], p)
	}
	return result
}

// ProfileStates returns the distinct states with at least one profiled
// utility, sorted. Multi-state territories count under each state listed.
func ProfileStates() []string {
	seen := make(map[string]bool)
	for _, p := range profiles() {
		for _, st := range splitStates(p.State) {
			seen[st] = true
		}
	}
	states := make([]string, 0, len(seen))
	for st := range seen {
		states = append(states, st)
	}
	sort.Strings(states)
	return states
}

func splitStates(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, "/") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
