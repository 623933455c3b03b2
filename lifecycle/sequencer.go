package lifecycle

import (
	"context"
	"fmt"

	"herdflow/animal"
)

// AuthorizeSale checks the strict category sale ordering: an animal may only
// be sold once every unsold animal in a strictly lower priority tier has
// cleared (COW before CALF before the heifer tiers).
//
// The check is best-effort across animals: it only reads the store, and the
// guard serializes operations per animal, not per tier. Two animals in
// different tiers sold at the same instant can both pass before either
// commits. See the concurrency notes in the service doc.
func AuthorizeSale(ctx context.Context, store Store, a animal.Animal) error {
	if a.SaleStatus != animal.SaleReady {
		return ErrNotReadyForSale
	}

	p := animal.PriorityFor(a.Category)

	siblings, err := store.FindByPriorityBelow(ctx, p)
	if err != nil {
		return fmt.Errorf("lifecycle: find lower priority animals: %w", err)
	}

	var blocker *animal.Animal
	for i := range siblings {
		s := siblings[i]
		if !s.Unsold() {
			continue
		}
		if blocker == nil || animal.PriorityFor(s.Category) < animal.PriorityFor(blocker.Category) {
			blocker = &siblings[i]
		}
	}
	if blocker != nil {
		return &SaleOrderViolationError{BlockingCategory: blocker.Category}
	}
	return nil
}
