package schedule

import "math"

// PixelsPerHour is the fixed vertical scale shared by every day column so
// that hour gridlines align across columns even when windows differ in
// length.
const PixelsPerHour = 100.0

// Geometry maps between vertical pixel offsets inside a day column and
// minute offsets within that day's window.
type Geometry struct {
	ContainerHeightPx float64
	TotalMinutes      int
}

// GeometryFor builds the mapper for a day window rendered at the shared
// pixels-per-hour scale.
func GeometryFor(w DayWindow) Geometry {
	return Geometry{
		ContainerHeightPx: DayHeight(w),
		TotalMinutes:      w.TotalMinutes(),
	}
}

// PixelsToMinutes converts a pixel offset to a rounded minute offset.
func (g Geometry) PixelsToMinutes(px float64) int {
	if g.ContainerHeightPx <= 0 || g.TotalMinutes <= 0 {
		return 0
	}
	return int(math.Round(px / g.ContainerHeightPx * float64(g.TotalMinutes)))
}

// MinutesToPixels converts a minute offset to a pixel offset.
func (g Geometry) MinutesToPixels(min int) float64 {
	if g.TotalMinutes <= 0 {
		return 0
	}
	return float64(min) / float64(g.TotalMinutes) * g.ContainerHeightPx
}

// DayHeight is the rendered height of a day window at the shared scale.
func DayHeight(w DayWindow) float64 {
	return float64(w.TotalMinutes()) / 60.0 * PixelsPerHour
}

// LeadingSpacer sizes the padding above a later-starting column so its hour
// labels stay horizontally aligned with the globally earliest start across
// all visible days.
func LeadingSpacer(dayStartMinutes, earliestStartMinutes int) float64 {
	if dayStartMinutes <= earliestStartMinutes {
		return 0
	}
	return float64(dayStartMinutes-earliestStartMinutes) / 60.0 * PixelsPerHour
}
