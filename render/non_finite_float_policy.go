package render

import "math"

// NonFiniteFloatPolicy controls how Sanitize treats NaN/+Inf/-Inf, which
// have no JSON literal.
type NonFiniteFloatPolicy uint8

const (
	// NonFiniteFloatAsText renders non-finite floats unquoted as NaN, +Inf
	// or -Inf. This is the default.
	NonFiniteFloatAsText NonFiniteFloatPolicy = iota
	// NonFiniteFloatAsNull renders non-finite floats as null.
	NonFiniteFloatAsNull
)

func normalizeNonFiniteFloatPolicy(policy NonFiniteFloatPolicy) NonFiniteFloatPolicy {
	switch policy {
	case NonFiniteFloatAsNull:
		return policy
	default:
		return NonFiniteFloatAsText
	}
}

func nonFiniteText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "+Inf"
	default:
		return "-Inf"
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
