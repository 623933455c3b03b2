package lifecycle

import (
	"errors"
	"fmt"

	"herdflow/animal"
)

var (
	// ErrAnimalNotFound signals the requested identifier has no record.
	ErrAnimalNotFound = errors.New("lifecycle: animal not found")
	// ErrOperationInProgress signals a concurrent lifecycle operation holds
	// the same animal. Retriable after a delay.
	ErrOperationInProgress = errors.New("lifecycle: operation already in progress for animal")
	// ErrNotReadyForSale signals a sale attempt on an animal that is not in
	// READY_FOR_SALE status.
	ErrNotReadyForSale = errors.New("lifecycle: animal is not ready for sale")
	// ErrInvalidPrice signals a non-positive sale price.
	ErrInvalidPrice = errors.New("lifecycle: sale price must be positive")
)

// SaleOrderViolationError names the category that must be sold out before
// the attempted sale may proceed.
type SaleOrderViolationError struct {
	BlockingCategory animal.Category
}

func (e *SaleOrderViolationError) Error() string {
	return fmt.Sprintf("lifecycle: sale order violation: %s animals must be sold first", e.BlockingCategory)
}
