package lifecycle

import (
	"context"

	"golang.org/x/sync/errgroup"

	"herdflow/animal"
)

// batchConcurrency bounds the worker fan-out for bulk operations.
const batchConcurrency = 8

// BatchItem pairs an animal identifier with its test-result payload.
type BatchItem struct {
	AnimalID string
	Input    TestResultInput
}

// BatchResult reports the per-item outcome of a bulk operation. Err is nil
// on success.
type BatchResult struct {
	AnimalID string
	Animal   animal.Animal
	Err      error
}

// ProcessTestResultBatch runs ProcessTestResult for each item with bounded
// concurrency. Items fail independently; one animal's guard conflict or rule
// violation never aborts the rest. Results are returned in input order.
func (s *Service) ProcessTestResultBatch(ctx context.Context, items []BatchItem) []BatchResult {
	results := make([]BatchResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			a, err := s.ProcessTestResult(ctx, item.AnimalID, item.Input)
			results[i] = BatchResult{AnimalID: item.AnimalID, Animal: a, Err: err}
			return nil
		})
	}

	// Goroutines never return an error; Wait is only a join point.
	_ = g.Wait()
	return results
}
