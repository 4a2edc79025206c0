// Package tracks decodes recorded GPS activity files into a format-neutral list of tracks.
package tracks

import (
	"errors"
	"math"
	"time"
)

var (
	ErrNoTracks          = errors.New("no tracks found")
	ErrNoPoints          = errors.New("no track points found")
	ErrUnsupportedFormat = errors.New("unsupported track file format")
)

// Point is a single recorded fix. Ele is only meaningful when HasEle is set.
type Point struct {
	Lat    float64
	Lon    float64
	Ele    float64
	HasEle bool
	Time   time.Time
}

// Track is one logical recording: every segment of a source track, concatenated in order.
type Track struct {
	Name       string
	Points     []Point
	MovingTime float64 // seconds, 0 when the source has no timestamps
}

// Haversine returns the great-circle distance between two coordinates in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

// CumulativeDistances returns, for each point, the distance in meters travelled from the first point.
func CumulativeDistances(points []Point) []float64 {
	cumulative := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		cumulative[i] = cumulative[i-1] + Haversine(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
	}
	return cumulative
}

// ElevationGain sums the positive climbs between consecutive points that carry an elevation.
func ElevationGain(points []Point) float64 {
	gain := 0.0
	var prev *Point
	for i := range points {
		if !points[i].HasEle {
			continue
		}
		if prev != nil && points[i].Ele > prev.Ele {
			gain += points[i].Ele - prev.Ele
		}
		prev = &points[i]
	}
	return gain
}

// MaxElevation returns the highest recorded elevation, or 0 when no point has one.
func MaxElevation(points []Point) float64 {
	highest, seen := 0.0, false
	for _, p := range points {
		if !p.HasEle {
			continue
		}
		if !seen || p.Ele > highest {
			highest, seen = p.Ele, true
		}
	}
	return highest
}

// Merge joins tracks into one, keeping the first track's name.
func Merge(tracks []Track) Track {
	if len(tracks) == 0 {
		return Track{}
	}
	merged := Track{Name: tracks[0].Name}
	for _, t := range tracks {
		merged.Points = append(merged.Points, t.Points...)
		merged.MovingTime += t.MovingTime
	}
	return merged
}
