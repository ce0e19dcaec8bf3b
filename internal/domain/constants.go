package domain

import "time"

// Default configuration values
const (
	DefaultCancellationCutoff   = 4 * time.Hour
	DefaultMaxLocationsPerAdmin = 3
	DefaultMinCourtsPerLocation = 1
	DefaultMaxCourtsPerLocation = 4
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CourtNameFormat is used to name courts created with a location ("Court-1", "Court-2", ...)
const CourtNameFormat = "Court-%d"

// ActiveStatuses статусы, занимающие слот
var ActiveStatuses = []BookingStatus{
	StatusBooked,
}
