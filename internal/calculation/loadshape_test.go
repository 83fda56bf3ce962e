package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakDayProfile(t *testing.T) {
	utility, dc, _ := defaultInputs()
	points := PeakDayProfile(&utility, &dc)
	require.Len(t, points, 24)

	// 4000 MW system peak plus the 800 MW firm baseline.
	for _, p := range points {
		assert.InDelta(t, 4800, p.GridCapacityMW, 1e-9)
		assert.InDelta(t, p.ServedMW, p.FirmDCMW+p.FlexBonusMW, 1e-6,
			"hour %d: served must split into firm and bonus", p.Hour)
		assert.InDelta(t, 950, p.ServedMW+p.ShiftedMW, 1e-6,
			"hour %d: served plus shifted is what the campus wants", p.Hour)
		assert.LessOrEqual(t, p.BaseGridMW+p.ServedMW, p.GridCapacityMW+1e-6, "hour %d", p.Hour)
	}

	// System peak at mid-afternoon: grid is full, the campus is pushed
	// down to its firm baseline and shifts the rest.
	peak := points[14]
	assert.InDelta(t, 4000, peak.BaseGridMW, 1e-9)
	assert.InDelta(t, 800, peak.ServedMW, 1e-9)
	assert.InDelta(t, 800, peak.FirmDCMW, 1e-9)
	assert.InDelta(t, 0, peak.FlexBonusMW, 1e-9)
	assert.InDelta(t, 150, peak.ShiftedMW, 1e-9)

	// Overnight trough: plenty of headroom, full flexible bonus runs.
	night := points[3]
	assert.InDelta(t, 2120, night.BaseGridMW, 1e-9)
	assert.InDelta(t, 950, night.ServedMW, 1e-9)
	assert.InDelta(t, 800, night.FirmDCMW, 1e-9)
	assert.InDelta(t, 150, night.FlexBonusMW, 1e-9)
	assert.InDelta(t, 0, night.ShiftedMW, 1e-9)
}

func TestHourLabels(t *testing.T) {
	utility, dc, _ := defaultInputs()
	points := PeakDayProfile(&utility, &dc)

	assert.Equal(t, "12 AM", points[0].Label)
	assert.Equal(t, "3 AM", points[3].Label)
	assert.Equal(t, "12 PM", points[12].Label)
	assert.Equal(t, "2 PM", points[14].Label)
	assert.Equal(t, "11 PM", points[23].Label)
}

func TestLoadDurationCurve(t *testing.T) {
	utility, dc, _ := defaultInputs()
	points := LoadDurationCurve(&utility, &dc, 0)
	require.Len(t, points, 200, "zero samples falls back to the default")

	assert.Equal(t, 0, points[0].HourNumber)
	assert.InDelta(t, 0, points[0].Percentile, 1e-9)
	assert.Equal(t, 4380, points[100].HourNumber)
	assert.InDelta(t, 50, points[100].Percentile, 1e-9)

	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i-1].BaseGridMW, points[i].BaseGridMW,
			"duration curve must be sorted descending at sample %d", i)
	}

	// The top of the curve sits near the weather-inflated system peak and
	// leaves too little headroom for the full flexible load.
	top := points[0]
	assert.Greater(t, top.BaseGridMW, 3900.0)
	assert.Less(t, top.BaseGridMW, 4300.0)
	assert.Greater(t, top.ShiftedMW, 0.0)

	// The tail has headroom to spare.
	tail := points[len(points)-1]
	assert.InDelta(t, 950, tail.ServedMW, 1e-6)
	assert.InDelta(t, 0, tail.ShiftedMW, 1e-6)

	for _, p := range points {
		assert.InDelta(t, p.ServedMW, p.FirmDCMW+p.FlexBonusMW, 1e-6)
		assert.InDelta(t, 950, p.ServedMW+p.ShiftedMW, 1e-6)
	}
}

func TestLoadDurationCurveDeterministic(t *testing.T) {
	utility, dc, _ := defaultInputs()
	first := LoadDurationCurve(&utility, &dc, 50)
	second := LoadDurationCurve(&utility, &dc, 50)
	assert.Equal(t, first, second, "fixed seed must reproduce the curve")
}
