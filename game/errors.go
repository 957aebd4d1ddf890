package game

import "fmt"

// InvalidDraftError reports a malformed draft: repeated picks, too many picks,
// unknown champions or a side holding two champions of one role.
type InvalidDraftError struct {
	Draft  Draft
	Reason string
}

func (e *InvalidDraftError) Error() string {
	return fmt.Sprintf("invalid draft %v: %s", e.Draft, e.Reason)
}

// IllegalPickError reports a pick that is not in the picking side's available set.
type IllegalPickError struct {
	Champion Champion
	Side     Side
	Reason   string
}

func (e *IllegalPickError) Error() string {
	if !e.Side.Valid() {
		return fmt.Sprintf("illegal pick %q: %s", e.Champion, e.Reason)
	}
	return fmt.Sprintf("illegal pick %q for %s side: %s", e.Champion, e.Side, e.Reason)
}

// UnknownChampionError reports a roster or scoring table lookup miss.
type UnknownChampionError struct {
	Champion Champion
	Other    Champion // Pair partner of the failed lookup, empty for single-champion lookups
}

func (e *UnknownChampionError) Error() string {
	if e.Other != "" {
		return fmt.Sprintf("unknown champion pair (%q, %q)", e.Champion, e.Other)
	}
	return fmt.Sprintf("unknown champion %q", e.Champion)
}

// EngineInvariantError signals a legality model or tree bookkeeping bug.
// It is only ever raised with panic and must not be retried.
type EngineInvariantError struct {
	Reason string
}

func (e *EngineInvariantError) Error() string {
	return "engine invariant violated: " + e.Reason
}

// Invariant panics with an EngineInvariantError.
func Invariant(format string, args ...any) {
	panic(&EngineInvariantError{Reason: fmt.Sprintf(format, args...)})
}
