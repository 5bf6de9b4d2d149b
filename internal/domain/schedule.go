package domain

import (
	"fmt"
	"time"
)

// LocalToUTC converts a wall-clock slot entered in a browser form into a UTC
// instant. offsetMinutes follows the browser convention: minutes to add to
// local time to reach UTC, so zones west of Greenwich are positive.
func LocalToUTC(date, clock string, offsetMinutes int) (time.Time, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, InvalidInput(fmt.Sprintf("Invalid date %q", date))
	}
	hm, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, InvalidInput(fmt.Sprintf("Invalid time %q", clock))
	}
	minutes := hm.Hour()*60 + hm.Minute() + offsetMinutes
	return day.UTC().Add(time.Duration(minutes) * time.Minute), nil
}
