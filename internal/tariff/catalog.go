// Package tariff holds the large-load tariff catalog: representative rate
// structures for the profiled utilities, the protection-score methodology,
// the blended-rate reference calculation, and state-level rollups.
package tariff

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// Representative large-load tariffs compiled from utility filings and rate
// cases through mid-2025. Demand charges in $/kW-month, energy in $/kWh.
// Derived fields (blended rate, annual cost, protection score and rating)
// are filled in by Enrich when the catalog is built.

func rawCatalog() []domain.Tariff {
	return []domain.Tariff{
		{
			ID:            "public-service-company-of-oklahoma-ok",
			Utility:       "Public Service Company of Oklahoma",
			UtilityShort:  "PSO",
			State:         "OK",
			Region:        "Plains",
			ISORTO:        "SPP",
			TariffName:    "Large Load Power Service",
			RateSchedule:  "Schedule LLPS",
			EffectiveDate: "2025-06-01",
			Status:        domain.TariffProposed,
			MinLoadMW:     decimal.NewFromInt(150),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(11.50),
			OffPeakDemandCharge: decimal.NewFromFloat(3.00),
			EnergyRatePeak:      decimal.NewFromFloat(0.042),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.032),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.008),

			InitialTermYears:     10,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(80),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-07-15",
			Notes:              "Filed alongside 779 MW of pending large load requests.",
		},
		{
			ID:            "duke-energy-carolinas-nc",
			Utility:       "Duke Energy Carolinas",
			UtilityShort:  "Duke Carolinas",
			State:         "NC",
			Region:        "Southeast",
			ISORTO:        "None",
			TariffName:    "Large Load Service Agreement",
			RateSchedule:  "Schedule LLS",
			EffectiveDate: "2025-04-01",
			Status:        domain.TariffPending,
			MinLoadMW:     decimal.NewFromInt(100),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(14.00),
			OffPeakDemandCharge: decimal.NewFromFloat(4.50),
			EnergyRatePeak:      decimal.NewFromFloat(0.048),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.035),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.010),

			InitialTermYears:     12,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(90),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
				Collateral:         true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-06-20",
			Notes:              "Minimum take provisions apply from commercial operation.",
		},
		{
			ID:            "duke-energy-progress-nc",
			Utility:       "Duke Energy Progress",
			UtilityShort:  "Duke Progress",
			State:         "NC",
			Region:        "Southeast",
			ISORTO:        "None",
			TariffName:    "Large Load Service Agreement",
			RateSchedule:  "Schedule LLS",
			EffectiveDate: "2025-04-01",
			Status:        domain.TariffPending,
			MinLoadMW:     decimal.NewFromInt(100),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(13.50),
			OffPeakDemandCharge: decimal.NewFromFloat(4.25),
			EnergyRatePeak:      decimal.NewFromFloat(0.047),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.034),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.010),

			InitialTermYears:     12,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(85),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-06-20",
		},
		{
			ID:            "georgia-power-ga",
			Utility:       "Georgia Power",
			UtilityShort:  "Georgia Power",
			State:         "GA",
			Region:        "Southeast",
			ISORTO:        "None",
			TariffName:    "Large Load Rules and Provisions",
			RateSchedule:  "Rule 38.4 / Schedule PLL",
			EffectiveDate: "2025-01-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(100),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(14.50),
			OffPeakDemandCharge: decimal.NewFromFloat(4.25),
			EnergyRatePeak:      decimal.NewFromFloat(0.052),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.038),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.009),

			InitialTermYears:     15,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(95),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
				Collateral:         true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-05-01",
			Notes:              "First state commission rules written specifically for loads over 100 MW.",
		},
		{
			ID:            "arizona-public-service-az",
			Utility:       "Arizona Public Service",
			UtilityShort:  "APS",
			State:         "AZ",
			Region:        "Southwest",
			ISORTO:        "None",
			TariffName:    "Extra High Load Factor Service",
			RateSchedule:  "Rate E-35",
			EffectiveDate: "2024-07-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(20),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(12.25),
			OffPeakDemandCharge: decimal.NewFromFloat(3.75),
			EnergyRatePeak:      decimal.NewFromFloat(0.049),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.036),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.006),

			InitialTermYears:     5,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet: true,
				RatchetPct:    decimal.NewFromInt(80),
				CIACRequired:  true,
				ExitFee:       true,
			},
			LastVerified: "2025-03-10",
		},
		{
			ID:            "nv-energy-nv",
			Utility:       "NV Energy",
			UtilityShort:  "NV Energy",
			State:         "NV",
			Region:        "West",
			ISORTO:        "None",
			TariffName:    "Clean Transition Tariff",
			RateSchedule:  "Schedule CTT",
			EffectiveDate: "2024-10-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(50),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(10.75),
			OffPeakDemandCharge: decimal.NewFromFloat(3.20),
			EnergyRatePeak:      decimal.NewFromFloat(0.046),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.033),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.007),

			InitialTermYears:     10,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(100),
				CIACRequired:       true,
				TakeOrPay:          true,
				CreditRequirements: true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-02-14",
			Notes:              "Dedicated-resource structure negotiated with hyperscale customers.",
		},
		{
			ID:            "xcel-energy-colorado-co",
			Utility:       "Xcel Energy Colorado",
			UtilityShort:  "Xcel Colorado",
			State:         "CO",
			Region:        "Mountain West",
			ISORTO:        "None",
			TariffName:    "Transmission General Service",
			RateSchedule:  "Schedule TG",
			EffectiveDate: "2024-01-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(10),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(13.00),
			OffPeakDemandCharge: decimal.NewFromFloat(4.00),
			EnergyRatePeak:      decimal.NewFromFloat(0.044),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.031),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.008),

			InitialTermYears:     10,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet: true,
				RatchetPct:    decimal.NewFromInt(75),
				CIACRequired:  true,
				ExitFee:       true,
			},
			LastVerified: "2025-01-30",
		},
		{
			ID:            "aep-ohio-oh",
			Utility:       "AEP Ohio",
			UtilityShort:  "AEP Ohio",
			State:         "OH",
			Region:        "Midwest",
			ISORTO:        "PJM",
			TariffName:    "Data Center Power Service",
			RateSchedule:  "Schedule DCP",
			EffectiveDate: "2025-08-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(25),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(12.75),
			OffPeakDemandCharge: decimal.NewFromFloat(3.80),
			EnergyRatePeak:      decimal.NewFromFloat(0.045),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.033),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.009),

			InitialTermYears:     12,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(85),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
				Collateral:         true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-08-05",
			Notes:              "Settlement rate class; 85% minimum billing on contracted capacity.",
		},
		{
			ID:            "indiana-michigan-power-in",
			Utility:       "Indiana Michigan Power",
			UtilityShort:  "AEP I&M",
			State:         "IN",
			Region:        "Midwest",
			ISORTO:        "PJM",
			TariffName:    "Industrial Power Large Load",
			RateSchedule:  "Schedule IP-LL",
			EffectiveDate: "2025-03-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(70),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(12.00),
			OffPeakDemandCharge: decimal.NewFromFloat(3.50),
			EnergyRatePeak:      decimal.NewFromFloat(0.043),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.031),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.008),

			InitialTermYears:     12,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(80),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-04-18",
		},
		{
			ID:            "appalachian-power-va",
			Utility:       "Appalachian Power",
			UtilityShort:  "APCo",
			State:         "VA",
			Region:        "Southeast",
			ISORTO:        "PJM",
			TariffName:    "Large General Service",
			RateSchedule:  "Schedule LGS-T",
			EffectiveDate: "2025-05-01",
			Status:        domain.TariffPending,
			MinLoadMW:     decimal.NewFromInt(25),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(11.75),
			OffPeakDemandCharge: decimal.NewFromFloat(3.40),
			EnergyRatePeak:      decimal.NewFromFloat(0.044),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.032),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.009),

			InitialTermYears:     10,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(80),
				CIACRequired:       true,
				ExitFee:            true,
				CreditRequirements: true,
			},
			LastVerified: "2025-06-02",
		},
		{
			ID:            "southwestern-electric-power-ar",
			Utility:       "Southwestern Electric Power",
			UtilityShort:  "SWEPCO",
			State:         "AR",
			Region:        "Southeast",
			ISORTO:        "SPP",
			TariffName:    "Large Lighting and Power",
			RateSchedule:  "Schedule LLP",
			EffectiveDate: "2023-09-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(10),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(10.50),
			OffPeakDemandCharge: decimal.NewFromFloat(3.00),
			EnergyRatePeak:      decimal.NewFromFloat(0.041),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.030),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.007),

			InitialTermYears:     7,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet: true,
				RatchetPct:    decimal.NewFromInt(70),
				CIACRequired:  true,
				TakeOrPay:     true,
			},
			LastVerified: "2025-01-12",
		},
		{
			ID:            "dominion-energy-virginia-va",
			Utility:       "Dominion Energy Virginia",
			UtilityShort:  "Dominion",
			State:         "VA",
			Region:        "Southeast",
			ISORTO:        "PJM",
			TariffName:    "General Service High Load Factor",
			RateSchedule:  "Schedule GS-5",
			EffectiveDate: "2025-07-01",
			Status:        domain.TariffProposed,
			MinLoadMW:     decimal.NewFromInt(25),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(13.25),
			OffPeakDemandCharge: decimal.NewFromFloat(4.10),
			EnergyRatePeak:      decimal.NewFromFloat(0.047),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.034),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.010),

			InitialTermYears:     14,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(85),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
				Collateral:         true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-07-20",
			Notes:              "Fourteen-year contract with minimum demand provisions for loads over 25 MW.",
		},
		{
			ID:            "oncor-electric-delivery-tx",
			Utility:       "Oncor Electric Delivery",
			UtilityShort:  "Oncor",
			State:         "TX",
			Region:        "Texas",
			ISORTO:        "ERCOT",
			TariffName:    "Delivery Service Transmission",
			RateSchedule:  "Rate DST",
			EffectiveDate: "2024-03-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(25),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(5.25),
			OffPeakDemandCharge: decimal.Zero,
			EnergyRatePeak:      decimal.NewFromFloat(0.032),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.026),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.004),

			InitialTermYears:     5,
			TerminationNoticeMos: 6,
			Protections: domain.TariffProtections{
				CIACRequired:       true,
				CreditRequirements: true,
				Collateral:         true,
			},
			LastVerified: "2025-02-01",
			Notes:        "Delivery-only; transmission billed on 4CP contribution, energy bought at market.",
		},
		{
			ID:            "entergy-louisiana-la",
			Utility:       "Entergy Louisiana",
			UtilityShort:  "Entergy LA",
			State:         "LA",
			Region:        "Southeast",
			ISORTO:        "MISO",
			TariffName:    "Large Industrial Growth Service",
			RateSchedule:  "Schedule LIG-5",
			EffectiveDate: "2025-02-01",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(50),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(13.75),
			OffPeakDemandCharge: decimal.NewFromFloat(4.20),
			EnergyRatePeak:      decimal.NewFromFloat(0.046),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.033),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.011),

			InitialTermYears:     15,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(90),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
				Collateral:         true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-03-25",
		},
		{
			ID:            "evergy-kansas-central-ks",
			Utility:       "Evergy Kansas Central",
			UtilityShort:  "Evergy",
			State:         "KS",
			Region:        "Plains",
			ISORTO:        "SPP",
			TariffName:    "Large Load Power Service",
			RateSchedule:  "Schedule LLPS",
			EffectiveDate: "2025-01-15",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(50),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(11.25),
			OffPeakDemandCharge: decimal.NewFromFloat(3.25),
			EnergyRatePeak:      decimal.NewFromFloat(0.042),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.030),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.007),

			InitialTermYears:     10,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(80),
				CIACRequired:       true,
				TakeOrPay:          true,
				ExitFee:            true,
				CreditRequirements: true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-02-28",
		},
		{
			ID:            "rocky-mountain-power-ut",
			Utility:       "Rocky Mountain Power",
			UtilityShort:  "RMP",
			State:         "UT",
			Region:        "Mountain West",
			ISORTO:        "None",
			TariffName:    "New Large Load Service",
			RateSchedule:  "Schedule 34",
			EffectiveDate: "2025-05-07",
			Status:        domain.TariffActive,
			MinLoadMW:     decimal.NewFromInt(100),
			VoltageLevel:  "Transmission",

			PeakDemandCharge:    decimal.NewFromFloat(12.50),
			OffPeakDemandCharge: decimal.NewFromFloat(3.60),
			EnergyRatePeak:      decimal.NewFromFloat(0.043),
			EnergyRateOffPeak:   decimal.NewFromFloat(0.031),
			FuelAdjPerKWh:       decimal.NewFromFloat(0.006),

			InitialTermYears:     15,
			TerminationNoticeMos: 12,
			Protections: domain.TariffProtections{
				DemandRatchet:      true,
				RatchetPct:         decimal.NewFromInt(70),
				CIACRequired:       true,
				ExitFee:            true,
				CreditRequirements: true,
			},
			DataCenterSpecific: true,
			LastVerified:       "2025-06-11",
			Notes:              "Statutory framework directs new large loads to cover their own costs.",
		},
	}
}

// Catalog returns all tariffs with derived fields computed, sorted by
// blended rate from cheapest to most expensive.
func Catalog() []domain.Tariff {
	entries := rawCatalog()
	for i := range entries {
		Enrich(&entries[i])
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].BlendedRatePerKWh.LessThan(entries[j].BlendedRatePerKWh)
	})
	return entries
}

// ByID looks up a tariff. Unknown ids return (zero, false).
func ByID(id string) (domain.Tariff, bool) {
	for _, t := range Catalog() {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tariff{}, false
}

// ByState returns the tariffs filed in a state, matched by two-letter code
// regardless of case.
func ByState(state string) []domain.Tariff {
	var out []domain.Tariff
	for _, t := range Catalog() {
		if strings.EqualFold(t.State, state) {
			out = append(out, t)
		}
	}
	return out
}

// ByISO returns the tariffs under one ISO/RTO, matched regardless of case.
func ByISO(iso string) []domain.Tariff {
	var out []domain.Tariff
	for _, t := range Catalog() {
		if strings.EqualFold(t.ISORTO, iso) {
			out = append(out, t)
		}
	}
	return out
}

// States returns the distinct state codes in the catalog, sorted.
func States() []string {
	seen := make(map[string]bool)
	for _, t := range rawCatalog() {
		seen[t.State] = true
	}
	states := make([]string, 0, len(seen))
	for st := range seen {
		states = append(states, st)
	}
	sort.Strings(states)
	return states
}
