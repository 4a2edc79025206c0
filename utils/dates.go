package utils

import "time"

const isoLayout = "2006-01-02"

// IsoDate is a calendar date kept as its YYYY-MM-DD text so it sorts lexically.
type IsoDate string

func (d IsoDate) String() string {
	return string(d)
}

func (d IsoDate) After(other IsoDate) bool {
	return d > other
}

func (d IsoDate) Time() (time.Time, bool) {
	t, err := time.Parse(isoLayout, string(d))
	return t, err == nil
}

// FormattedString renders "Dec 15, 2025", or the raw text when it isn't an ISO date.
func (d IsoDate) FormattedString() string {
	t, ok := d.Time()
	if !ok {
		return string(d)
	}
	return t.Format("Jan 2, 2006")
}
