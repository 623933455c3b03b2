package lifecycle

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"herdflow/animal"
)

// Store is the narrow persistence surface the engine consumes. The herd
// package provides the pgx-backed implementation.
type Store interface {
	FindByID(ctx context.Context, id string) (animal.Animal, bool, error)
	// FindByPriorityBelow returns all animals whose sale priority is
	// strictly lower than p. Callers filter for unsold status.
	FindByPriorityBelow(ctx context.Context, p animal.Priority) ([]animal.Animal, error)
	Save(ctx context.Context, a animal.Animal) error
}

// TestResultInput is the payload for recording a disease-test outcome.
type TestResultInput struct {
	Result animal.TestResult `validate:"required,oneof=PENDING POSITIVE NEGATIVE CANCELLED"`
}

// Service orchestrates the animal lifecycle: test-result processing and sale
// completion. Operations on the same animal are serialized by the guard;
// operations on different animals run concurrently.
type Service struct {
	store    Store
	guard    *Guard
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds a lifecycle service with its own guard.
func NewService(store Store, validate *validator.Validate) *Service {
	if validate == nil {
		validate = validator.New()
	}
	return &Service{
		store:    store,
		guard:    NewGuard(),
		validate: validate,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ProcessTestResult records a disease-test outcome for one animal: routes
// the result to a destination company, flips sale readiness for completed
// results, and persists the updated record.
func (s *Service) ProcessTestResult(ctx context.Context, animalID string, input TestResultInput) (animal.Animal, error) {
	if err := s.validate.Struct(input); err != nil {
		return animal.Animal{}, fmt.Errorf("lifecycle: invalid test result input: %w", err)
	}

	if err := s.guard.Begin(animalID); err != nil {
		return animal.Animal{}, err
	}
	defer s.guard.End(animalID)

	a, err := s.load(ctx, animalID)
	if err != nil {
		return animal.Animal{}, err
	}

	out, err := animal.RouteTestOutcome(a.Category, input.Result)
	if err != nil {
		return animal.Animal{}, err
	}

	now := s.now()
	a.TestResult = input.Result
	a.Destination = out.Destination
	a.TestDate = &now
	if out.StatusChanged {
		a.SaleStatus = out.SaleStatus
	}
	a.UpdatedAt = now

	if err := s.store.Save(ctx, a); err != nil {
		return animal.Animal{}, fmt.Errorf("lifecycle: save test result: %w", err)
	}
	return a, nil
}

// CompleteSale transitions an animal from READY_FOR_SALE to SOLD, provided
// no lower-priority tier still has unsold animals.
func (s *Service) CompleteSale(ctx context.Context, animalID string, price float64) (animal.Animal, error) {
	if err := s.guard.Begin(animalID); err != nil {
		return animal.Animal{}, err
	}
	defer s.guard.End(animalID)

	a, err := s.load(ctx, animalID)
	if err != nil {
		return animal.Animal{}, err
	}

	if err := AuthorizeSale(ctx, s.store, a); err != nil {
		return animal.Animal{}, err
	}

	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return animal.Animal{}, ErrInvalidPrice
	}

	now := s.now()
	a.SaleStatus = animal.SaleSold
	a.SalePrice = &price
	a.SaleDate = &now
	a.UpdatedAt = now

	if err := s.store.Save(ctx, a); err != nil {
		return animal.Animal{}, fmt.Errorf("lifecycle: save sale: %w", err)
	}
	return a, nil
}

// load fetches the animal and re-derives its category when the stored value
// is absent or invalid, so downstream rules always see a validated category.
func (s *Service) load(ctx context.Context, animalID string) (animal.Animal, error) {
	a, found, err := s.store.FindByID(ctx, animalID)
	if err != nil {
		return animal.Animal{}, fmt.Errorf("lifecycle: find animal: %w", err)
	}
	if !found {
		return animal.Animal{}, ErrAnimalNotFound
	}

	if !a.Category.Valid() {
		category, err := animal.Classify(a, s.now())
		if err != nil {
			return animal.Animal{}, err
		}
		a.Category = category
	}
	return a, nil
}
