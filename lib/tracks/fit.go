package tracks

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tormoder/fit"
)

// ParseFIT returns the activity's record stream as a single unnamed track.
func ParseFIT(data []byte) ([]Track, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	if len(activity.Records) == 0 {
		return nil, ErrNoTracks
	}

	track := Track{}
	for _, record := range activity.Records {
		if record.PositionLat.Invalid() || record.PositionLong.Invalid() {
			continue
		}

		point := Point{
			Lat:  record.PositionLat.Degrees(),
			Lon:  record.PositionLong.Degrees(),
			Time: record.Timestamp,
		}

		ele := record.GetEnhancedAltitudeScaled()
		if math.IsNaN(ele) {
			ele = record.GetAltitudeScaled()
		}
		if !math.IsNaN(ele) {
			point.Ele, point.HasEle = ele, true
		}

		track.Points = append(track.Points, point)
	}

	if len(activity.Sessions) > 0 {
		if timer := activity.Sessions[0].GetTotalTimerTimeScaled(); !math.IsNaN(timer) {
			track.MovingTime = timer
		}
	}

	return []Track{track}, nil
}
