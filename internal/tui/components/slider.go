// Package components holds the reusable TUI widgets: sliders, metric
// cards, and the trajectory chart.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/gridbill/gridbill/internal/tui/tuistyles"
)

// Slider is an adjustable numeric parameter with a visual track.
type Slider struct {
	Label     string
	Value     float64
	Min       float64
	Max       float64
	Step      float64
	Unit      string
	Format    string
	Width     int
	IsFocused bool
}

// NewSlider creates a slider over [min, max] with the given step.
func NewSlider(label string, value, min, max, step float64) *Slider {
	return &Slider{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.0f",
		Width:  36,
	}
}

// WithUnit sets the unit suffix shown after the value.
func (s *Slider) WithUnit(unit string) *Slider {
	s.Unit = unit
	return s
}

// WithFormat sets the value format verb.
func (s *Slider) WithFormat(format string) *Slider {
	s.Format = format
	return s
}

// SetFocused sets the focus state.
func (s *Slider) SetFocused(focused bool) *Slider {
	s.IsFocused = focused
	return s
}

// Increment steps the value up, clamped to Max.
func (s *Slider) Increment() {
	s.SetValue(s.Value + s.Step)
}

// Decrement steps the value down, clamped to Min.
func (s *Slider) Decrement() {
	s.SetValue(s.Value - s.Step)
}

// SetValue sets the value, clamping into [Min, Max].
func (s *Slider) SetValue(value float64) {
	s.Value = math.Max(s.Min, math.Min(s.Max, value))
}

// Percentage returns the position of the value within the range.
func (s *Slider) Percentage() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

func (s *Slider) formatValue(v float64) string {
	out := fmt.Sprintf(s.Format, v)
	if s.Unit != "" {
		out += s.Unit
	}
	return out
}

// Render returns the slider as label, value, track, and range line.
func (s *Slider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render(s.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(s.formatValue(s.Value)))
	content.WriteString("\n")
	content.WriteString(s.renderTrack())
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render(
		fmt.Sprintf("%s  —  %s", s.formatValue(s.Min), s.formatValue(s.Max))))

	return content.String()
}

func (s *Slider) renderTrack() string {
	filled := int(math.Round(float64(s.Width) * s.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > s.Width {
		filled = s.Width
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if s.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := s.Width - filled; rest > 1 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest-1)))
	}
	bar.WriteString("]")
	return bar.String()
}
