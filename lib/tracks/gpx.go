package tracks

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"
)

// ParseGPX returns one Track per <trk> element, in document order.
func ParseGPX(data []byte) ([]Track, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode gpx: %w", err)
	}

	if len(doc.Tracks) == 0 {
		return nil, ErrNoTracks
	}

	tracks := make([]Track, 0, len(doc.Tracks))
	for i := range doc.Tracks {
		trk := &doc.Tracks[i]

		track := Track{Name: trk.Name}
		for _, segment := range trk.Segments {
			for _, point := range segment.Points {
				track.Points = append(track.Points, Point{
					Lat:    point.Latitude,
					Lon:    point.Longitude,
					Ele:    point.Elevation.Value(),
					HasEle: point.Elevation.NotNull(),
					Time:   point.Timestamp,
				})
			}
		}

		if hasTimestamps(track.Points) {
			track.MovingTime = trk.MovingData().MovingTime
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}

func hasTimestamps(points []Point) bool {
	if len(points) < 2 {
		return false
	}
	return !points[0].Time.IsZero() && !points[len(points)-1].Time.IsZero()
}
