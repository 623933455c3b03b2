package animal

import "errors"

// ErrCategoryNotEligibleForTesting signals a disease-test attempt on a COW.
// Mature cows are never test subjects; the request is invalid, not a no-op.
var ErrCategoryNotEligibleForTesting = errors.New("animal: category COW is not eligible for disease testing")

// Outcome is the routing decision derived from a test result: where the
// animal goes and whether it became sellable.
type Outcome struct {
	Destination *Destination
	SaleStatus  SaleStatus
	// StatusChanged is false for PENDING/CANCELLED results, which leave the
	// sale status untouched.
	StatusChanged bool
}

// RouteTestOutcome maps a disease-test result to a destination company and
// sale readiness. Pure; the caller applies the mutations.
func RouteTestOutcome(c Category, r TestResult) (Outcome, error) {
	if c == CategoryCow {
		return Outcome{}, ErrCategoryNotEligibleForTesting
	}

	switch r {
	case TestPositive:
		d := DestinationAsyaEt
		return Outcome{Destination: &d, SaleStatus: SaleReady, StatusChanged: true}, nil
	case TestNegative:
		d := DestinationGulvet
		return Outcome{Destination: &d, SaleStatus: SaleReady, StatusChanged: true}, nil
	case TestPending, TestCancelled:
		return Outcome{}, nil
	}
	return Outcome{}, errors.New("animal: unrecognized test result " + string(r))
}
