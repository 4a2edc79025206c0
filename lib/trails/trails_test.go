package trails

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hikelog/lib/tracks"
)

func line(n int) []tracks.Point {
	points := make([]tracks.Point, n)
	for i := range points {
		points[i] = tracks.Point{Lat: 37 + float64(i)*0.0001, Lon: -119}
	}
	return points
}

func gpxFile(name string, points ...[2]float64) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1"><trk>`)
	if name != "" {
		fmt.Fprintf(&b, "<name>%s</name>", name)
	}
	b.WriteString("<trkseg>")
	for _, p := range points {
		fmt.Fprintf(&b, `<trkpt lat="%f" lon="%f"><ele>1000</ele></trkpt>`, p[0], p[1])
	}
	b.WriteString("</trkseg></trk></gpx>")
	return b.String()
}

func TestConversions(t *testing.T) {
	assert.Equal(t, 1.0, LengthMiles(1609.34))
	assert.Equal(t, 1000, Feet(304.8))
	assert.Equal(t, 0, Feet(-12))
	assert.Equal(t, 0.0, LengthMiles(-5))
	assert.Equal(t, 2.35, Round2(2.349))
}

func TestFormatEstimatedTime(t *testing.T) {
	assert.Equal(t, "1:30", FormatEstimatedTime(5400))
	assert.Equal(t, "0:59", FormatEstimatedTime(3599))
	assert.Equal(t, "10:05", FormatEstimatedTime(36300))
	assert.Equal(t, "", FormatEstimatedTime(0))

	seconds, ok := ParseEstimatedTime("1:30")
	assert.True(t, ok)
	assert.Equal(t, 5400.0, seconds)
	for _, bad := range []string{"", "abc", "1:75"} {
		_, ok = ParseEstimatedTime(bad)
		assert.False(t, ok, bad)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Half Dome", CleanTrailName("<![CDATA[Half Dome]]>"))
	assert.Equal(t, "Four Mile Trail", TrailNameFromFile("Four_Mile_Trail.gpx"))
	assert.Equal(t, "Four_Mile_Trail", FileStem("/data/trails/Four_Mile_Trail.gpx"))
}

func TestDownsampleKeepsEndpoints(t *testing.T) {
	points := line(500)
	sampled := Downsample(points, DefaultSampleTarget)

	assert.Len(t, sampled, 251)
	assert.Equal(t, points[0], sampled[0])
	assert.Equal(t, points[499], sampled[len(sampled)-1])

	odd := line(401)
	sampled = Downsample(odd, DefaultSampleTarget)
	assert.Equal(t, odd[400], sampled[len(sampled)-1])
	assert.Len(t, sampled, 201)
}

func TestDownsampleShortTrack(t *testing.T) {
	points := line(50)
	assert.Equal(t, points, Downsample(points, DefaultSampleTarget))
	assert.Nil(t, Downsample(nil, DefaultSampleTarget))
}

func TestSimplifyPath(t *testing.T) {
	assert.Len(t, SimplifyPath(line(100), SimplifyEpsilon), 2)

	zigzag := []tracks.Point{
		{Lat: 0, Lon: 0},
		{Lat: 0.01, Lon: 0.005},
		{Lat: 0, Lon: 0.01},
	}
	simplified := SimplifyPath(zigzag, SimplifyEpsilon)
	assert.Equal(t, zigzag, simplified)

	// the input must not be mutated by the recursion
	points := line(10)
	points[5].Lon = -118
	original := append([]tracks.Point(nil), points...)
	SimplifyPath(points, SimplifyEpsilon)
	assert.Equal(t, original, points)
}

func TestParkLookup(t *testing.T) {
	lookup, err := ParseParkLookup([]byte(`
trails:
  Four_Mile_Trail: Yosemite National Park
  Lassen_Peak_Trail:
    park: Lassen Volcanic National Park
    when: "2024-07-04"
    tags: [Volcano]
`))
	require.NoError(t, err)

	entry, ok := lookup.Resolve("Four_Mile_Trail")
	assert.True(t, ok)
	assert.Equal(t, "Yosemite National Park", entry.Park)

	entry, ok = lookup.Resolve("Lassen_Peak_Trail")
	assert.True(t, ok)
	assert.Equal(t, "2024-07-04", entry.When)
	assert.Equal(t, []string{"Volcano"}, entry.Tags)

	entry, ok = lookup.Resolve("Somewhere")
	assert.False(t, ok)
	assert.Equal(t, UnknownPark, entry.Park)
}

func TestLoadParkLookupMissingFile(t *testing.T) {
	lookup, err := LoadParkLookup(filepath.Join(t.TempDir(), "parks.yaml"))
	require.NoError(t, err)
	assert.Empty(t, lookup)
}

func TestBuildTrail(t *testing.T) {
	parsed := []tracks.Track{{
		Points: []tracks.Point{
			{Lat: 0, Lon: 0, Ele: 0, HasEle: true},
			{Lat: 0.0144733, Lon: 0, Ele: 304.8, HasEle: true},
		},
		MovingTime: 5400,
	}, {
		Name:   "Ignored",
		Points: []tracks.Point{{Lat: 5, Lon: 5}},
	}}

	trail, err := BuildTrail("Mist_Trail.gpx", parsed, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Mist Trail", trail.Trail)
	assert.Equal(t, UnknownPark, trail.Park)
	assert.Equal(t, 1.0, trail.Length)
	assert.Equal(t, 1000, trail.ElevationGain)
	assert.Equal(t, 1000, trail.MaxElevation)
	assert.Equal(t, "1:30", trail.EstimatedTime)
	assert.Len(t, trail.Coordinates, 2)
	assert.Nil(t, trail.ElevationProfile)
}

func TestBuildTrailMergePolicy(t *testing.T) {
	parsed := []tracks.Track{
		{Name: "Out", Points: []tracks.Point{{Lat: 0, Lon: 0}}},
		{Name: "Back", Points: []tracks.Point{{Lat: 0.0144733, Lon: 0}}},
	}

	trail, err := BuildTrail("x.gpx", parsed, Options{TrackPolicy: MergeTracks})
	require.NoError(t, err)
	assert.Equal(t, "Out", trail.Trail)
	assert.Equal(t, 1.0, trail.Length)
	assert.Empty(t, trail.EstimatedTime)
}

func TestBuildTrailWithoutPoints(t *testing.T) {
	_, err := BuildTrail("empty.gpx", []tracks.Track{{Name: "Empty"}}, Options{})
	assert.ErrorIs(t, err, tracks.ErrNoPoints)
}

func TestBuildFullTrail(t *testing.T) {
	parsed := []tracks.Track{{Points: line(500)}}
	parsed[0].Points[10].Ele, parsed[0].Points[10].HasEle = 100, true

	trail, err := BuildFullTrail("Long.gpx", parsed, Options{})
	require.NoError(t, err)
	assert.Len(t, trail.Coordinates, 500)
	require.Len(t, trail.ElevationProfile, 1)
	assert.Equal(t, 328.0, trail.ElevationProfile[0].Elevation)
}

func TestIngest(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("Zeta_Loop.gpx", gpxFile("Zeta Loop", [2]float64{37.1, -119.1}, [2]float64{37.11, -119.1}))
	write("Four_Mile_Trail.gpx", gpxFile("", [2]float64{37.7, -119.6}, [2]float64{37.73, -119.6}))
	write("Mystery.gpx", gpxFile("<![CDATA[Mystery]]>", [2]float64{36, -118}))
	write("broken.gpx", "<gpx><trk>")
	write("notes.txt", "not a track")

	lookup := ParkLookup{
		"Zeta_Loop":       {Park: "Alpha Park"},
		"Four_Mile_Trail": {Park: "Yosemite National Park"},
	}

	var seen []string
	trails, report, err := Ingest(context.Background(), dir, Options{
		Lookup: lookup,
		OnFile: func(file string) { seen = append(seen, file) },
	})
	require.NoError(t, err)

	require.Len(t, trails, 3)
	assert.Equal(t, "Alpha Park", trails[0].Park)
	assert.Equal(t, "Zeta Loop", trails[0].Trail)
	assert.Equal(t, UnknownPark, trails[1].Park)
	assert.Equal(t, "Mystery", trails[1].Trail)
	assert.Equal(t, "Four Mile Trail", trails[2].Trail)
	assert.Equal(t, 3281, trails[2].MaxElevation)

	assert.Equal(t, 3, report.Parsed)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "broken.gpx", report.Skipped[0].File)
	assert.Equal(t, []string{"Mystery.gpx"}, report.Unmapped)
	assert.Len(t, seen, 4)
}

func TestIngestMissingDir(t *testing.T) {
	_, _, err := Ingest(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestParseTrailFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Four_Mile_Trail.gpx")
	require.NoError(t, os.WriteFile(path, []byte(gpxFile("Four Mile", [2]float64{37.7, -119.6}, [2]float64{37.73, -119.6})), 0o644))

	trail, err := ParseTrailFile(context.Background(), path, ParkLookup{"Four_Mile_Trail": {Park: "Yosemite National Park"}})
	require.NoError(t, err)
	assert.Equal(t, "Yosemite National Park", trail.Park)
	assert.Equal(t, "Four_Mile_Trail.gpx", trail.GPXFile)
	assert.Len(t, trail.ElevationProfile, 2)
	assert.Equal(t, 3281.0, trail.ElevationProfile[1].Elevation)
}

func TestSortTrails(t *testing.T) {
	trails := []Trail{
		{Park: "Yosemite", Trail: "Mist Trail"},
		{Park: "Lassen", Trail: "Lassen Peak"},
		{Park: "Yosemite", Trail: "Four Mile"},
	}
	SortTrails(trails)
	assert.Equal(t, "Lassen Peak", trails[0].Trail)
	assert.Equal(t, "Four Mile", trails[1].Trail)
	assert.Equal(t, "Mist Trail", trails[2].Trail)
}

func TestWriteDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "trails.json")
	trails := []Trail{{
		Park:        "Yosemite National Park",
		Trail:       "Four Mile Trail",
		Length:      9.4,
		Coordinates: []Coordinate{{Lat: 37.7, Lng: -119.6}},
		GPXFile:     "Four_Mile_Trail.gpx",
	}}

	require.NoError(t, WriteDataset(path, trails))
	_, err := os.Stat(path + ".part")
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"elevationGain": 0`)
	assert.Contains(t, string(data), `"estimatedTime": ""`)
	assert.NotContains(t, string(data), "elevationProfile")

	read, err := ReadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, trails, read)
}

func TestWriteEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trails.json")
	require.NoError(t, WriteDataset(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trails.geojson")
	trails := []Trail{
		{Trail: "Loop", Coordinates: []Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}},
		{Trail: "Spot", Coordinates: []Coordinate{{Lat: 5, Lng: 6}}},
		{Trail: "Nothing"},
	}
	require.NoError(t, WriteGeoJSON(path, trails))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)

	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.LineString{{2, 1}, {4, 3}}, fc.Features[0].Geometry)
	assert.Equal(t, orb.Point{6, 5}, fc.Features[1].Geometry)
	assert.Equal(t, "Loop", fc.Features[0].Properties["trail"])
}
