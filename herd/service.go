package herd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"herdflow/animal"
)

var (
	// ErrInvalidCategory signals a supplied category outside the closed set.
	ErrInvalidCategory = errors.New("herd: invalid category")
	// ErrNotPendingSale signals a mark-ready attempt on an animal that has
	// already left the PENDING sale state.
	ErrNotPendingSale = errors.New("herd: sale status must be PENDING to mark ready for sale")
)

// RegisterParams carries the fields accepted when an animal enters the herd.
// Category is optional; when absent it is derived from the biological
// attributes.
type RegisterParams struct {
	TagNumber        string                 `validate:"required"`
	Sex              animal.Sex             `validate:"required,oneof=MALE FEMALE"`
	BirthDate        *time.Time             `validate:"omitempty"`
	Role             string                 `validate:"omitempty,max=64"`
	PregnancyStatus  animal.PregnancyStatus `validate:"omitempty,oneof=PREGNANT NOT_PREGNANT UNKNOWN"`
	InseminationDate *time.Time             `validate:"omitempty"`
	Category         animal.Category        `validate:"omitempty"`
}

// Service exposes registry operations for the dashboard: registration,
// lookup, listing, the manual PENDING to READY_FOR_SALE transition, and the
// per-tier unsold counts.
type Service struct {
	repo     Repository
	validate *validator.Validate
	idGen    func() string
	now      func() time.Time
}

func NewService(repo Repository, validate *validator.Validate) *Service {
	if validate == nil {
		validate = validator.New()
	}
	return &Service{
		repo:     repo,
		validate: validate,
		idGen:    func() string { return uuid.NewString() },
		now:      time.Now,
	}
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGen = gen
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates an animal record. Category and sale priority are computed
// at creation; a supplied category is validated, never trusted ad hoc.
func (s *Service) Register(ctx context.Context, params RegisterParams) (animal.Animal, error) {
	if err := s.validate.Struct(params); err != nil {
		return animal.Animal{}, fmt.Errorf("herd: invalid registration: %w", err)
	}

	pregnancy := params.PregnancyStatus
	if pregnancy == "" {
		pregnancy = animal.PregnancyNotPregnant
	}

	a := animal.Animal{
		ID:               s.idGen(),
		TagNumber:        params.TagNumber,
		Sex:              params.Sex,
		BirthDate:        params.BirthDate,
		Role:             params.Role,
		PregnancyStatus:  pregnancy,
		InseminationDate: params.InseminationDate,
		TestResult:       animal.TestPending,
		SaleStatus:       animal.SalePending,
	}

	if params.Category != "" {
		if !params.Category.Valid() {
			return animal.Animal{}, ErrInvalidCategory
		}
		a.Category = params.Category
	} else {
		category, err := animal.Classify(a, s.now())
		if err != nil {
			return animal.Animal{}, err
		}
		a.Category = category
	}

	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id string) (animal.Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filters Filters) ([]animal.Animal, int, error) {
	return s.repo.List(ctx, filters)
}

// MarkReadyForSale performs the manual PENDING to READY_FOR_SALE transition.
// Completed disease tests flip readiness on their own; this path covers
// animals sold without testing, such as mature cows.
func (s *Service) MarkReadyForSale(ctx context.Context, id string) (animal.Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return animal.Animal{}, err
	}
	if a.SaleStatus != animal.SalePending {
		return animal.Animal{}, ErrNotPendingSale
	}

	a.SaleStatus = animal.SaleReady
	a.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, a); err != nil {
		return animal.Animal{}, err
	}
	return a, nil
}

// UnsoldCounts reports how many unsold animals remain in each sale tier.
func (s *Service) UnsoldCounts(ctx context.Context) (map[animal.Priority]int, error) {
	return s.repo.UnsoldCountByPriority(ctx)
}
