package calculation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/gridbill/gridbill/internal/domain"
)

// dailyShape is a normalized summer peak-day load profile typical of
// ERCOT/PJM systems, midnight to midnight.
var dailyShape = [24]float64{
	0.62, 0.58, 0.55, 0.53, 0.52, 0.54,
	0.60, 0.68, 0.76, 0.84, 0.90, 0.94,
	0.97, 0.99, 1.00, 1.00, 0.99, 0.96,
	0.90, 0.82, 0.75, 0.70, 0.66, 0.64,
}

// loadCurveSeed keeps the synthetic annual curve reproducible across runs.
const loadCurveSeed = 12345

// HourPoint is one hour of the peak-day profile. The data center wants to
// run at its flexible load factor; the grid serves what headroom allows,
// the rest is shifted workload. Served splits into the firm baseline and
// the flexible bonus above it.
type HourPoint struct {
	Hour           int     `json:"hour"`
	Label          string  `json:"label"`
	BaseGridMW     float64 `json:"baseGridMW"`
	FirmDCMW       float64 `json:"firmDCMW"`
	FlexBonusMW    float64 `json:"flexBonusMW"`
	ShiftedMW      float64 `json:"shiftedMW"`
	ServedMW       float64 `json:"servedMW"`
	GridCapacityMW float64 `json:"gridCapacityMW"`
}

func hourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// PeakDayProfile builds the 24-hour summer peak-day view. Grid capacity is
// sized to the system peak plus the firm data-center baseline.
func PeakDayProfile(utility *domain.Utility, dc *domain.DataCenter) []HourPoint {
	systemPeakMW := utility.SystemPeakMW.InexactFloat64()
	capacityMW := dc.CapacityMW.InexactFloat64()
	dcMaxWants := capacityMW * dc.FlexLoadFactor.InexactFloat64()
	dcFirmBaseline := capacityMW * dc.FirmLoadFactor.InexactFloat64()
	gridCapacity := systemPeakMW + dcFirmBaseline

	points := make([]HourPoint, 0, len(dailyShape))
	for hour, shape := range dailyShape {
		baseGrid := systemPeakMW * shape
		headroom := math.Max(0, gridCapacity-baseGrid)
		served := math.Min(dcMaxWants, headroom)
		shifted := math.Max(0, dcMaxWants-headroom)

		firm := math.Min(dcFirmBaseline, served)
		flexBonus := math.Max(0, served-dcFirmBaseline)

		points = append(points, HourPoint{
			Hour:           hour,
			Label:          hourLabel(hour),
			BaseGridMW:     baseGrid,
			FirmDCMW:       firm,
			FlexBonusMW:    flexBonus,
			ShiftedMW:      shifted,
			ServedMW:       served,
			GridCapacityMW: gridCapacity,
		})
	}
	return points
}

// DurationPoint is one sampled position on the annual load duration curve.
type DurationPoint struct {
	HourNumber  int     `json:"hourNumber"`
	Percentile  float64 `json:"percentile"`
	BaseGridMW  float64 `json:"baseGridMW"`
	FirmDCMW    float64 `json:"firmDCMW"`
	FlexBonusMW float64 `json:"flexBonusMW"`
	ShiftedMW   float64 `json:"shiftedMW"`
	ServedMW    float64 `json:"servedMW"`
}

// LoadDurationCurve synthesizes 8760 hours of base grid load with
// seasonal, daily, weekend, and weather variation, sorts descending, and
// samples the curve. The data-center service at each position follows the
// same headroom rule as the peak-day profile. samples defaults to 200.
func LoadDurationCurve(utility *domain.Utility, dc *domain.DataCenter, samples int) []DurationPoint {
	if samples <= 0 {
		samples = 200
	}
	const hours = 8760

	systemPeakMW := utility.SystemPeakMW.InexactFloat64()
	capacityMW := dc.CapacityMW.InexactFloat64()
	dcMaxWants := capacityMW * dc.FlexLoadFactor.InexactFloat64()
	dcFirmBaseline := capacityMW * dc.FirmLoadFactor.InexactFloat64()
	gridCapacity := systemPeakMW + dcFirmBaseline

	rng := rand.New(rand.NewSource(loadCurveSeed))
	baseGrid := make([]float64, 0, hours)
	for h := 0; h < hours; h++ {
		dayOfYear := h / 24
		hourOfDay := h % 24

		// Summer peak centered on day 180; shoulder seasons get a floor so
		// winter load does not collapse.
		dayAngle := (float64(dayOfYear) - 180) * math.Pi / 182.5
		summer := math.Cos(dayAngle)
		seasonal := 0.75 + 0.25*math.Max(summer, summer*0.3+0.2)

		weekend := 1.0
		if dow := dayOfYear % 7; dow == 5 || dow == 6 {
			weekend = 0.88
		}

		weather := 0.95 + rng.Float64()*0.10

		baseGrid = append(baseGrid, systemPeakMW*seasonal*dailyShape[hourOfDay]*weekend*weather)
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(baseGrid)))

	points := make([]DurationPoint, 0, samples)
	for i := 0; i < samples; i++ {
		position := float64(i) / float64(samples)
		idx := int(position * hours)
		load := baseGrid[idx]

		headroom := math.Max(0, gridCapacity-load)
		served := math.Min(dcMaxWants, headroom)
		shifted := math.Max(0, dcMaxWants-headroom)

		points = append(points, DurationPoint{
			HourNumber:  int(math.Round(position * hours)),
			Percentile:  position * 100,
			BaseGridMW:  load,
			FirmDCMW:    math.Min(dcFirmBaseline, served),
			FlexBonusMW: math.Max(0, served-dcFirmBaseline),
			ShiftedMW:   shifted,
			ServedMW:    served,
		})
	}
	return points
}
