package workout

import "errors"

var (
	// ErrNoWorkLaps is returned when the repetition calculator is handed a
	// lap set with zero qualifying work laps. This signals a caller bug (a
	// non-repetition workout routed to the wrong calculator) and is never
	// silently defaulted.
	ErrNoWorkLaps = errors.New("workout: no work laps found")

	// ErrZeroDistance is returned when a pace would divide by zero
	// distance. Failing loudly beats emitting an Inf/NaN pace.
	ErrZeroDistance = errors.New("workout: zero distance")
)
