package animal

import "fmt"

// PriorityFor maps a category to its sale priority. Categories are validated
// at the service boundary, so an unknown category here is a programming
// error, not a recoverable condition.
func PriorityFor(c Category) Priority {
	switch c {
	case CategoryCow:
		return PriorityLow
	case CategoryCalf:
		return PriorityMedium
	case CategoryPregnantHeifer, CategoryInseminatedHeifer, CategoryHeifer:
		return PriorityHigh
	}
	panic(fmt.Sprintf("animal: no sale priority for category %q", c))
}
