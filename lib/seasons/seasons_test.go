package seasons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const season = `
daysOnMountain: 15
resortsVisited: [Heavenly, Northstar, Kirkwood]
estimatedVerticalFeet: 75000
seasonProgression:
  - { date: "2026-01-05", resort: Kirkwood, runs: 10 }
  - { date: "2025-12-15", resort: Heavenly, runs: 12 }
  - { date: "2025-12-22", resort: Northstar, runs: 15 }
  - { date: "2026-01-12", resort: Heavenly, runs: 14 }
  - { date: "2026-01-19", resort: Northstar, runs: 16 }
`

func TestSummarize(t *testing.T) {
	s, err := Parse([]byte(season))
	require.NoError(t, err)

	summary := Summarize(s)
	assert.Equal(t, 15, summary.Days)
	assert.Equal(t, []string{"Heavenly", "Northstar", "Kirkwood"}, summary.Resorts)
	assert.Equal(t, 67, summary.TotalRuns)
	assert.Equal(t, 13.4, summary.AverageRunsPerDay)
	assert.Equal(t, "Heavenly", summary.FavoriteResort)
	assert.Equal(t, 75000, summary.VerticalFeet)

	require.Len(t, summary.Outings, 5)
	assert.Equal(t, "2025-12-15", summary.Outings[0].Date.String())
	assert.Equal(t, "2026-01-19", summary.Outings[4].Date.String())
	assert.Equal(t, "2026-01-05", s.SeasonProgression[0].Date.String())
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(Season{})
	assert.Zero(t, summary.TotalRuns)
	assert.Zero(t, summary.AverageRunsPerDay)
	assert.Empty(t, summary.FavoriteResort)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Season{}, s)

	path := filepath.Join(dir, "season.yaml")
	require.NoError(t, os.WriteFile(path, []byte(season), 0o644))
	s, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, s.SeasonProgression, 5)

	require.NoError(t, os.WriteFile(path, []byte("daysOnMountain: [oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
