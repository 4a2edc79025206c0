package trails

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// WriteDataset writes the trail list as a JSON array. The file is replaced atomically.
func WriteDataset(path string, trails []Trail) error {
	if trails == nil {
		trails = []Trail{}
	}
	data, err := json.MarshalIndent(trails, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return writeFile(path, data)
}

func ReadDataset(path string) ([]Trail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParseDataset(data)
}

func ParseDataset(data []byte) ([]Trail, error) {
	var trails []Trail
	if err := json.Unmarshal(data, &trails); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if trails == nil {
		trails = []Trail{}
	}
	return trails, nil
}

// FeatureCollection renders each trail as a LineString feature, or a Point when only one
// coordinate was recorded.
func FeatureCollection(trails []Trail) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, t := range trails {
		if len(t.Coordinates) == 0 {
			continue
		}

		var geometry orb.Geometry
		if len(t.Coordinates) == 1 {
			geometry = orb.Point{t.Coordinates[0].Lng, t.Coordinates[0].Lat}
		} else {
			line := make(orb.LineString, len(t.Coordinates))
			for i, c := range t.Coordinates {
				line[i] = orb.Point{c.Lng, c.Lat}
			}
			geometry = line
		}

		f := geojson.NewFeature(geometry)
		f.Properties["park"] = t.Park
		f.Properties["trail"] = t.Trail
		f.Properties["length"] = t.Length
		f.Properties["elevationGain"] = t.ElevationGain
		f.Properties["maxElevation"] = t.MaxElevation
		f.Properties["gpxFile"] = t.GPXFile
		if t.EstimatedTime != "" {
			f.Properties["estimatedTime"] = t.EstimatedTime
		}
		fc.Append(f)
	}
	return fc
}

func WriteGeoJSON(path string, trails []Trail) error {
	data, err := FeatureCollection(trails).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return writeFile(path, data)
}

// writeFile stages into a .part file next to path so readers never see a partial write.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
