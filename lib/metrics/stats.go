// Package metrics derives statistics, achievements and classifications from trail records.
// Every function here is pure: the same trails always produce the same result.
package metrics

import (
	"sort"

	"hikelog/lib/trails"
)

type ParkSummary struct {
	Name               string         `json:"name"`
	TrailCount         int            `json:"trailCount"`
	TotalMiles         float64        `json:"totalMiles"`
	TotalElevationGain int            `json:"totalElevationGain"`
	Trails             []trails.Trail `json:"trails"`
}

type AggregatedStats struct {
	TotalMiles         float64       `json:"totalMiles"`
	TotalElevationGain int           `json:"totalElevationGain"`
	HighestElevation   int           `json:"highestElevation"`
	LongestHike        *trails.Trail `json:"longestHike"`
	HardestHike        *trails.Trail `json:"hardestHike"`
	AverageDistance    float64       `json:"averageDistance"`
	TotalTrails        int           `json:"totalTrails"`
	Parks              []ParkSummary `json:"parks"`
}

// CalculateAggregatedStats never fails; an empty list yields the zero stats with no hikes.
// Longest and hardest keep the first trail seen when values tie.
func CalculateAggregatedStats(list []trails.Trail) AggregatedStats {
	if len(list) == 0 {
		return AggregatedStats{Parks: []ParkSummary{}}
	}

	var (
		miles   float64
		gain    int
		highest int
		longest = 0
		hardest = 0
	)
	for i, t := range list {
		miles += t.Length
		gain += t.ElevationGain
		if t.MaxElevation > highest {
			highest = t.MaxElevation
		}
		if t.Length > list[longest].Length {
			longest = i
		}
		if t.ElevationGain > list[hardest].ElevationGain {
			hardest = i
		}
	}

	longestHike, hardestHike := list[longest], list[hardest]
	return AggregatedStats{
		TotalMiles:         trails.Round1(miles),
		TotalElevationGain: gain,
		HighestElevation:   highest,
		LongestHike:        &longestHike,
		HardestHike:        &hardestHike,
		AverageDistance:    trails.Round1(miles / float64(len(list))),
		TotalTrails:        len(list),
		Parks:              groupParks(list),
	}
}

// groupParks keeps trails in first-seen order within each park and sorts parks by
// total miles, descending.
func groupParks(list []trails.Trail) []ParkSummary {
	index := map[string]int{}
	var parks []ParkSummary
	for _, t := range list {
		i, ok := index[t.Park]
		if !ok {
			i = len(parks)
			index[t.Park] = i
			parks = append(parks, ParkSummary{Name: t.Park})
		}
		p := &parks[i]
		p.TrailCount++
		p.TotalMiles += t.Length
		p.TotalElevationGain += t.ElevationGain
		p.Trails = append(p.Trails, t)
	}

	sort.SliceStable(parks, func(i, j int) bool {
		return parks[i].TotalMiles > parks[j].TotalMiles
	})
	for i := range parks {
		parks[i].TotalMiles = trails.Round1(parks[i].TotalMiles)
	}
	return parks
}

// GainPerMile is 0 for a zero-length trail rather than dividing by zero.
func GainPerMile(t trails.Trail) float64 {
	if t.Length <= 0 {
		return 0
	}
	return float64(t.ElevationGain) / t.Length
}
