// Package trails turns recorded tracks into the trail records the site displays.
//
// Units are part of the record contract: lengths are miles, elevations are feet, and
// estimated times are "H:MM" strings.
package trails

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

const (
	MilesPerMeter = 0.000621371
	FeetPerMeter  = 3.28084

	UnknownPark = "Unknown Park"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ProfilePoint struct {
	Distance  float64 `json:"distance"`  // miles from the start
	Elevation float64 `json:"elevation"` // feet
}

// Trail is immutable once built; consumers only read it.
type Trail struct {
	Park             string         `json:"park"`
	Trail            string         `json:"trail"`
	Length           float64        `json:"length"`
	ElevationGain    int            `json:"elevationGain"`
	MaxElevation     int            `json:"maxElevation"`
	EstimatedTime    string         `json:"estimatedTime"`
	Coordinates      []Coordinate   `json:"coordinates"`
	ElevationProfile []ProfilePoint `json:"elevationProfile,omitempty"`
	GPXFile          string         `json:"gpxFile"`
	When             string         `json:"when,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
}

func MetersToMiles(meters float64) float64 {
	return meters * MilesPerMeter
}

func MetersToFeet(meters float64) float64 {
	return meters * FeetPerMeter
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// LengthMiles converts a raw distance accumulator in meters to the record's length.
func LengthMiles(meters float64) float64 {
	return Round1(math.Max(0, MetersToMiles(meters)))
}

// Feet converts meters to whole feet, clamped at zero.
func Feet(meters float64) int {
	return int(math.Round(math.Max(0, MetersToFeet(meters))))
}

// FormatEstimatedTime renders a moving time as H:MM. No duration yields an empty string.
func FormatEstimatedTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return ""
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// ParseEstimatedTime reads an H:MM string back into seconds.
func ParseEstimatedTime(s string) (float64, bool) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil || hours < 0 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return float64(hours*3600 + minutes*60), true
}

// CleanTrailName strips CDATA markers left behind by some exporters.
func CleanTrailName(name string) string {
	name = strings.ReplaceAll(name, "<![CDATA[", "")
	name = strings.ReplaceAll(name, "]]>", "")
	return strings.TrimSpace(name)
}

func FileStem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TrailNameFromFile is the fallback name for tracks without embedded metadata.
func TrailNameFromFile(file string) string {
	return strings.ReplaceAll(FileStem(file), "_", " ")
}
