package apperr

import "errors"

var (
	// ErrNoRecommendation is the defined empty outcome: the history is
	// empty or no cluster survives scoring. It is not a failure and the
	// transport maps it to a not-found response.
	ErrNoRecommendation = errors.New("no recommendation")
)
