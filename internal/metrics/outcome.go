package metrics

import "time"

// Outcome is the terminal result of one HTTP attempt: either a status code
// with the observed latency, or a classified transport failure kind. Exactly
// one Outcome is produced per attempted request.
type Outcome struct {
	StatusCode int
	Latency    time.Duration
	ErrorKind  string
}

// Success builds an outcome for a completed HTTP exchange. Any status code
// counts as a success at the transport level.
func Success(statusCode int, latency time.Duration) Outcome {
	return Outcome{StatusCode: statusCode, Latency: latency}
}

// Failure builds an outcome for a transport-level failure. An empty kind is
// coerced to "other" so unclassified failures are still counted.
func Failure(kind string) Outcome {
	if kind == "" {
		kind = "other"
	}
	return Outcome{ErrorKind: kind}
}

// Failed reports whether the outcome is a transport failure.
func (o Outcome) Failed() bool {
	return o.ErrorKind != ""
}
