package trails

import (
	"fmt"
	"math"

	"hikelog/lib/tracks"
)

type DownsampleMode int

const (
	Stride DownsampleMode = iota
	Simplify
)

// DefaultSampleTarget keeps emitted paths near 200 points.
const DefaultSampleTarget = 200

// SimplifyEpsilon is the Douglas-Peucker tolerance in degrees.
const SimplifyEpsilon = 0.00005

func ParseDownsampleMode(s string) (DownsampleMode, error) {
	switch s {
	case "", "stride":
		return Stride, nil
	case "simplify":
		return Simplify, nil
	default:
		return Stride, fmt.Errorf("unknown downsample mode %q", s)
	}
}

// Downsample keeps every stride-th point, stride = max(1, n/target), and always keeps the
// final point so a path never stops short of where the recording ended.
func Downsample(points []tracks.Point, target int) []tracks.Point {
	if len(points) == 0 {
		return nil
	}
	if target < 1 {
		target = DefaultSampleTarget
	}

	stride := max(1, len(points)/target)
	sampled := make([]tracks.Point, 0, len(points)/stride+1)
	last := 0
	for i := 0; i < len(points); i += stride {
		sampled = append(sampled, points[i])
		last = i
	}
	if last != len(points)-1 {
		sampled = append(sampled, points[len(points)-1])
	}
	return sampled
}

// SimplifyPath applies Douglas-Peucker. Both endpoints always survive.
func SimplifyPath(points []tracks.Point, epsilon float64) []tracks.Point {
	if len(points) <= 2 {
		return append([]tracks.Point(nil), points...)
	}

	dmax, index := 0.0, 0
	first, last := points[0], points[len(points)-1]
	for i := 1; i < len(points)-1; i++ {
		if d := pointLineDistance(points[i], first, last); d > dmax {
			index, dmax = i, d
		}
	}

	if dmax <= epsilon {
		return []tracks.Point{first, last}
	}

	left := SimplifyPath(points[:index+1], epsilon)
	right := SimplifyPath(points[index:], epsilon)

	result := make([]tracks.Point, 0, len(left)+len(right)-1)
	result = append(result, left[:len(left)-1]...)
	return append(result, right...)
}

// pointLineDistance works in degree space, which is adequate at trail scale.
func pointLineDistance(p, start, end tracks.Point) float64 {
	dx, dy := end.Lon-start.Lon, end.Lat-start.Lat
	if dx == 0 && dy == 0 {
		return math.Hypot(p.Lon-start.Lon, p.Lat-start.Lat)
	}
	n := math.Abs(dx*(start.Lat-p.Lat) - dy*(start.Lon-p.Lon))
	return n / math.Hypot(dx, dy)
}

func toCoordinates(points []tracks.Point) []Coordinate {
	coords := make([]Coordinate, len(points))
	for i, p := range points {
		coords[i] = Coordinate{Lat: round6(p.Lat), Lng: round6(p.Lon)}
	}
	return coords
}
