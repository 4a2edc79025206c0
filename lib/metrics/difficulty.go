package metrics

import (
	"slices"

	"hikelog/lib/trails"
)

type Difficulty string

const (
	Easy     Difficulty = "easy"
	Moderate Difficulty = "moderate"
	Hard     Difficulty = "hard"
	Extreme  Difficulty = "extreme"
)

var Difficulties = []Difficulty{Easy, Moderate, Hard, Extreme}

const (
	LongDistanceMiles = 15
	HighElevationFeet = 4000
)

// TrailDifficulty is first-match-wins: absolute thresholds come before per-mile gain, so a
// short, very steep trail can be extreme on gain alone. Per-mile gain is never consulted for
// a zero-length trail.
func TrailDifficulty(t trails.Trail) Difficulty {
	if t.Length >= LongDistanceMiles || t.ElevationGain >= HighElevationFeet {
		return Extreme
	}

	steep := func(threshold float64) bool {
		return t.Length > 0 && GainPerMile(t) >= threshold
	}

	switch {
	case steep(500) || t.Length >= 10:
		return Hard
	case steep(300) || t.Length >= 6:
		return Moderate
	default:
		return Easy
	}
}

// Filters are AND-combined. A zero-valued field places no restriction.
type Filters struct {
	Parks         []string
	LongDistance  bool
	HighElevation bool
	Difficulty    []Difficulty
}

// FilterTrails returns a new slice; the input is left untouched.
func FilterTrails(list []trails.Trail, f Filters) []trails.Trail {
	filtered := make([]trails.Trail, 0, len(list))
	for _, t := range list {
		if len(f.Parks) > 0 && !slices.Contains(f.Parks, t.Park) {
			continue
		}
		if f.LongDistance && t.Length < LongDistanceMiles {
			continue
		}
		if f.HighElevation && t.ElevationGain < HighElevationFeet {
			continue
		}
		if len(f.Difficulty) > 0 && !slices.Contains(f.Difficulty, TrailDifficulty(t)) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
