package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hikelog/lib"
	"hikelog/lib/dataset"
	"hikelog/lib/environment"
	"hikelog/lib/logging"
	"hikelog/lib/trails"
)

const fourMileGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1"><trk><name>Four Mile Trail</name><trkseg>
<trkpt lat="37.7300" lon="-119.6000"><ele>1200</ele></trkpt>
<trkpt lat="37.7350" lon="-119.5950"><ele>1500</ele></trkpt>
<trkpt lat="37.7400" lon="-119.5900"><ele>2200</ele></trkpt>
</trkseg></trk></gpx>`

func newTestApp(t *testing.T) *lib.App {
	t.Helper()
	dir := t.TempDir()
	trailsDir := filepath.Join(dir, "trails")
	require.NoError(t, os.MkdirAll(trailsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(trailsDir, "Four_Mile_Trail.gpx"), []byte(fourMileGPX), 0o644))

	datasetFile := filepath.Join(dir, "trails.json")
	require.NoError(t, trails.WriteDataset(datasetFile, []trails.Trail{
		{Park: "Yosemite National Park", Trail: "Four Mile Trail", Length: 9.4, ElevationGain: 3200, GPXFile: "Four_Mile_Trail.gpx",
			Coordinates: []trails.Coordinate{{Lat: 37.73, Lng: -119.6}, {Lat: 37.74, Lng: -119.59}}},
		{Park: "Yosemite National Park", Trail: "Half Dome", Length: 16.3, ElevationGain: 4800, GPXFile: "Half_Dome.gpx"},
		{Park: "Zion National Park", Trail: "Angels Landing", Length: 5.4, ElevationGain: 1488, GPXFile: "Angels_Landing_Trail.gpx"},
	}))

	t.Setenv("TRAILS_DIR", trailsDir)
	env, err := environment.NewEnvironmentService()
	require.NoError(t, err)

	return &lib.App{
		Environment: env,
		Dataset:     dataset.NewDatasetService(datasetFile),
		Parks:       trails.ParkLookup{"Four_Mile_Trail": {Park: "Yosemite National Park"}},
	}
}

func get(t *testing.T, h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAPITrails(t *testing.T) {
	r := NewRouter(newTestApp(t), logging.Logger)

	rec := get(t, r, "/api/trails")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var list []trails.Trail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 3)
}

func TestAPIStats(t *testing.T) {
	r := NewRouter(newTestApp(t), logging.Logger)

	rec := get(t, r, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Stats.TotalTrails)
	assert.Equal(t, 31.1, body.Stats.TotalMiles)
	require.Len(t, body.Stats.Parks, 2)
	assert.Equal(t, "Yosemite National Park", body.Stats.Parks[0].Name)
	assert.Len(t, body.Achievements, 8)
	assert.Equal(t, "Half Dome", body.Stats.LongestHike.Trail)
}

func TestTrailListPartial(t *testing.T) {
	r := NewRouter(newTestApp(t), logging.Logger)

	rec := get(t, r, "/outdoor/trails?long=1", "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Half Dome")
	assert.NotContains(t, body, "Angels Landing")
	assert.NotContains(t, body, "<html")

	rec = get(t, r, "/outdoor/trails?park=Zion+National+Park")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), "Angels Landing")
}

func TestOutdoorPage(t *testing.T) {
	r := NewRouter(newTestApp(t), logging.Logger)

	rec := get(t, r, "/outdoor")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Achievements")
	assert.Contains(t, body, "31.1 mi")
	assert.Contains(t, body, `id="achievement-half-dome" data-earned="true"`)
}

func TestTrailPage(t *testing.T) {
	r := NewRouter(newTestApp(t), logging.Logger)

	rec := get(t, r, "/outdoor/trails/Four_Mile_Trail.gpx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Four Mile Trail")
	assert.Contains(t, rec.Body.String(), `"elevation":3937`)

	// listed in the dataset but the source file is gone
	rec = get(t, r, "/outdoor/trails/Half_Dome.gpx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Half Dome")

	rec = get(t, r, "/outdoor/trails/Nope.gpx")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileAPI(t *testing.T) {
	r := NewRouter(newTestApp(t), logging.Logger)

	rec := get(t, r, "/api/trails/Four_Mile_Trail.gpx/profile")
	require.Equal(t, http.StatusOK, rec.Code)

	var trail trails.Trail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trail))
	assert.Equal(t, "Yosemite National Park", trail.Park)
	assert.Len(t, trail.Coordinates, 3)
	require.Len(t, trail.ElevationProfile, 3)
	assert.Equal(t, 7218.0, trail.ElevationProfile[2].Elevation)
	assert.Equal(t, 3281, trail.ElevationGain)

	for _, file := range []string{"Missing.gpx", "notes.txt"} {
		rec = get(t, r, fmt.Sprintf("/api/trails/%s/profile", file))
		assert.Equal(t, http.StatusNotFound, rec.Code, file)
	}
}

func TestTrailMap(t *testing.T) {
	r := NewRouter(newTestApp(t), logging.Logger)

	rec := get(t, r, "/api/trails.geojson")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string      `json:"type"`
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{-119.6, 37.73}, fc.Features[0].Geometry.Coordinates[0])
	assert.Equal(t, "Four Mile Trail", fc.Features[0].Properties["trail"])

	rec = get(t, r, "/outdoor/map")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="jsonData"`)
	assert.Contains(t, rec.Body.String(), "Zion National Park")
}
