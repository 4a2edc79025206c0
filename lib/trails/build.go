package trails

import (
	"fmt"
	"math"

	"hikelog/lib/tracks"
)

type TrackPolicy int

const (
	// FirstTrack ignores every track after the first one in a file.
	FirstTrack TrackPolicy = iota
	// MergeTracks joins all tracks in a file into a single trail.
	MergeTracks
)

func ParseTrackPolicy(s string) (TrackPolicy, error) {
	switch s {
	case "", "first":
		return FirstTrack, nil
	case "merge":
		return MergeTracks, nil
	default:
		return FirstTrack, fmt.Errorf("unknown track policy %q", s)
	}
}

type Options struct {
	Lookup       ParkLookup
	TrackPolicy  TrackPolicy
	Downsample   DownsampleMode
	SampleTarget int
	// OnFile is called after each track file has been handled, successfully or not.
	OnFile func(file string)
}

func (o Options) pick(parsed []tracks.Track) tracks.Track {
	if o.TrackPolicy == MergeTracks {
		return tracks.Merge(parsed)
	}
	return parsed[0]
}

func (o Options) path(points []tracks.Point) []tracks.Point {
	if o.Downsample == Simplify {
		return SimplifyPath(points, SimplifyEpsilon)
	}
	return Downsample(points, o.SampleTarget)
}

// BuildTrail produces the summary record for a parsed file, with a downsampled path.
func BuildTrail(file string, parsed []tracks.Track, opts Options) (Trail, error) {
	if len(parsed) == 0 {
		return Trail{}, tracks.ErrNoTracks
	}
	track := opts.pick(parsed)
	if len(track.Points) == 0 {
		return Trail{}, tracks.ErrNoPoints
	}

	trail := summarize(file, track, tracks.CumulativeDistances(track.Points), opts.Lookup)
	trail.Coordinates = toCoordinates(opts.path(track.Points))
	return trail, nil
}

// BuildFullTrail keeps every recorded point and adds an elevation profile.
func BuildFullTrail(file string, parsed []tracks.Track, opts Options) (Trail, error) {
	if len(parsed) == 0 {
		return Trail{}, tracks.ErrNoTracks
	}
	track := opts.pick(parsed)
	if len(track.Points) == 0 {
		return Trail{}, tracks.ErrNoPoints
	}

	cumulative := tracks.CumulativeDistances(track.Points)
	trail := summarize(file, track, cumulative, opts.Lookup)
	trail.Coordinates = toCoordinates(track.Points)
	trail.ElevationProfile = profile(track.Points, cumulative)
	return trail, nil
}

func summarize(file string, track tracks.Track, cumulative []float64, lookup ParkLookup) Trail {
	name := CleanTrailName(track.Name)
	if name == "" {
		name = TrailNameFromFile(file)
	}

	entry, _ := lookup.Resolve(FileStem(file))

	return Trail{
		Park:          entry.Park,
		Trail:         name,
		Length:        LengthMiles(cumulative[len(cumulative)-1]),
		ElevationGain: Feet(tracks.ElevationGain(track.Points)),
		MaxElevation:  Feet(tracks.MaxElevation(track.Points)),
		EstimatedTime: FormatEstimatedTime(track.MovingTime),
		GPXFile:       file,
		When:          entry.When,
		Tags:          entry.Tags,
	}
}

func profile(points []tracks.Point, cumulative []float64) []ProfilePoint {
	out := make([]ProfilePoint, 0, len(points))
	for i, p := range points {
		if !p.HasEle {
			continue
		}
		out = append(out, ProfilePoint{
			Distance:  Round2(MetersToMiles(cumulative[i])),
			Elevation: math.Round(MetersToFeet(p.Ele)),
		})
	}
	return out
}
