package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hikelog/lib/trails"
)

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// GenerateAchievements evaluates every achievement against the current calendar year.
func GenerateAchievements(list []trails.Trail, stats AggregatedStats) []Achievement {
	return GenerateAchievementsForYear(list, stats, time.Now().Year())
}

// GenerateAchievementsForYear always returns the same eight achievements in the same order.
func GenerateAchievementsForYear(list []trails.Trail, stats AggregatedStats, year int) []Achievement {
	yearText := strconv.Itoa(year)
	thisYear := 0
	for _, t := range list {
		if t.When != "" && strings.Contains(t.When, yearText) {
			thisYear++
		}
	}

	return []Achievement{
		{
			ID:          "20-mile-club",
			Title:       "20+ Mile Club",
			Description: "Completed a hike over 20 miles",
			Icon:        "🏔️",
			Earned:      someTrail(list, func(t trails.Trail) bool { return t.Length >= 20 }),
		},
		{
			ID:          "5000-ft-gain",
			Title:       "5,000 ft Gain Club",
			Description: "Conquered a hike with 5,000+ feet of elevation gain",
			Icon:        "⛰️",
			Earned:      someTrail(list, func(t trails.Trail) bool { return t.ElevationGain >= 5000 }),
		},
		{
			ID:          "100-total-miles",
			Title:       "Century Hiker",
			Description: "Hiked over 100 total miles",
			Icon:        "🥾",
			Earned:      stats.TotalMiles >= 100,
		},
		{
			ID:          "10-trails-year",
			Title:       "Trail Explorer",
			Description: fmt.Sprintf("Completed 10+ trails in %d", year),
			Icon:        "🌲",
			Earned:      thisYear >= 10,
		},
		{
			ID:          "half-dome",
			Title:       "Half Dome Summit",
			Description: "Conquered Yosemite's iconic Half Dome",
			Icon:        "🏔️",
			Earned: someTrail(list, func(t trails.Trail) bool {
				return strings.Contains(strings.ToLower(t.Trail), "half dome")
			}),
		},
		{
			ID:          "50k-elevation",
			Title:       "Vertical Veteran",
			Description: "Climbed over 50,000 feet total elevation",
			Icon:        "📈",
			Earned:      stats.TotalElevationGain >= 50000,
		},
		{
			ID:          "park-explorer",
			Title:       "Park Explorer",
			Description: "Visited 5+ different parks",
			Icon:        "🌄",
			Earned:      len(stats.Parks) >= 5,
		},
		{
			ID:          "ultra-endurance",
			Title:       "Ultra Endurance",
			Description: "Completed a 15+ mile hike with 4,000+ feet gain",
			Icon:        "💪",
			Earned: someTrail(list, func(t trails.Trail) bool {
				return t.Length >= 15 && t.ElevationGain >= 4000
			}),
		},
	}
}

func someTrail(list []trails.Trail, pred func(trails.Trail) bool) bool {
	for _, t := range list {
		if pred(t) {
			return true
		}
	}
	return false
}
