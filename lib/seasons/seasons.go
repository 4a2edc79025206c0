// Package seasons loads the hand-kept snowboarding log and summarises it for the outdoor page.
package seasons

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"hikelog/lib/trails"
	"hikelog/utils"
)

type Outing struct {
	Date   utils.IsoDate `yaml:"date" json:"date"`
	Resort string        `yaml:"resort" json:"resort"`
	Runs   int           `yaml:"runs" json:"runs"`
}

type Season struct {
	DaysOnMountain        int      `yaml:"daysOnMountain" json:"daysOnMountain"`
	ResortsVisited        []string `yaml:"resortsVisited" json:"resortsVisited"`
	EstimatedVerticalFeet int      `yaml:"estimatedVerticalFeet" json:"estimatedVerticalFeet"`
	SeasonProgression     []Outing `yaml:"seasonProgression" json:"seasonProgression"`
}

type Summary struct {
	Days              int      `json:"days"`
	Resorts           []string `json:"resorts"`
	TotalRuns         int      `json:"totalRuns"`
	AverageRunsPerDay float64  `json:"averageRunsPerDay"`
	FavoriteResort    string   `json:"favoriteResort"`
	VerticalFeet      int      `json:"verticalFeet"`
	Outings           []Outing `json:"outings"`
}

func Parse(data []byte) (Season, error) {
	var season Season
	if err := yaml.Unmarshal(data, &season); err != nil {
		return Season{}, fmt.Errorf("decode season: %w", err)
	}
	return season, nil
}

// Load reads a season file. A missing file is an empty season, not an error.
func Load(path string) (Season, error) {
	if path == "" {
		return Season{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Season{}, nil
	}
	if err != nil {
		return Season{}, fmt.Errorf("read season file: %w", err)
	}
	return Parse(data)
}

// Summarize averages runs over logged outings. The favourite resort is the one with the
// most outings; ties go to the resort logged first.
func Summarize(season Season) Summary {
	summary := Summary{
		Days:         season.DaysOnMountain,
		Resorts:      append([]string{}, season.ResortsVisited...),
		VerticalFeet: season.EstimatedVerticalFeet,
		Outings:      append([]Outing{}, season.SeasonProgression...),
	}

	sort.SliceStable(summary.Outings, func(i, j int) bool {
		return summary.Outings[j].Date.After(summary.Outings[i].Date)
	})

	counts := map[string]int{}
	var order []string
	for _, o := range season.SeasonProgression {
		summary.TotalRuns += o.Runs
		if counts[o.Resort] == 0 {
			order = append(order, o.Resort)
		}
		counts[o.Resort]++
	}
	best := 0
	for _, resort := range order {
		if counts[resort] > best {
			best, summary.FavoriteResort = counts[resort], resort
		}
	}

	if n := len(season.SeasonProgression); n > 0 {
		summary.AverageRunsPerDay = trails.Round1(float64(summary.TotalRuns) / float64(n))
	}
	return summary
}
