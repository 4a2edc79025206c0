package trails

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ParkEntry is what a file stem maps to. In YAML it is either a bare park name or a
// mapping with park, when and tags keys.
type ParkEntry struct {
	Park string   `yaml:"park"`
	When string   `yaml:"when"`
	Tags []string `yaml:"tags"`
}

func (e *ParkEntry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		*e = ParkEntry{Park: name}
		return nil
	}

	type plain ParkEntry
	var full plain
	if err := unmarshal(&full); err != nil {
		return err
	}
	*e = ParkEntry(full)
	return nil
}

// ParkLookup maps a track's file stem to the park it belongs to.
type ParkLookup map[string]ParkEntry

type parksFile struct {
	Trails ParkLookup `yaml:"trails"`
}

// Resolve never fails: stems without an entry land in UnknownPark.
func (l ParkLookup) Resolve(stem string) (ParkEntry, bool) {
	entry, ok := l[stem]
	if !ok || entry.Park == "" {
		entry.Park = UnknownPark
		return entry, false
	}
	return entry, true
}

func ParseParkLookup(data []byte) (ParkLookup, error) {
	var file parksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode parks: %w", err)
	}
	if file.Trails == nil {
		file.Trails = ParkLookup{}
	}
	return file.Trails, nil
}

// LoadParkLookup reads the stem-to-park mapping. A missing file is an empty lookup.
func LoadParkLookup(path string) (ParkLookup, error) {
	if path == "" {
		return ParkLookup{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ParkLookup{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read parks file: %w", err)
	}
	return ParseParkLookup(data)
}
