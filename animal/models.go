package animal

import "time"

// Sex is the biological sex of an animal.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// PregnancyStatus tracks the reproductive state of a female animal.
type PregnancyStatus string

const (
	PregnancyPregnant    PregnancyStatus = "PREGNANT"
	PregnancyNotPregnant PregnancyStatus = "NOT_PREGNANT"
	PregnancyUnknown     PregnancyStatus = "UNKNOWN"
)

// Category is the closed classification driving every downstream business
// rule: test eligibility, destination routing, and sale sequencing.
type Category string

const (
	CategoryCow               Category = "COW"
	CategoryPregnantHeifer    Category = "PREGNANT_HEIFER"
	CategoryInseminatedHeifer Category = "INSEMINATED_HEIFER"
	CategoryHeifer            Category = "HEIFER"
	CategoryCalf              Category = "CALF"
)

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryCow, CategoryPregnantHeifer, CategoryInseminatedHeifer, CategoryHeifer, CategoryCalf:
		return true
	}
	return false
}

// TestResult is the outcome of a disease test.
type TestResult string

const (
	TestPending   TestResult = "PENDING"
	TestPositive  TestResult = "POSITIVE"
	TestNegative  TestResult = "NEGATIVE"
	TestCancelled TestResult = "CANCELLED"
)

// Valid reports whether r is a recognized test result.
func (r TestResult) Valid() bool {
	switch r {
	case TestPending, TestPositive, TestNegative, TestCancelled:
		return true
	}
	return false
}

// SaleStatus is the commercial state of an animal.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleReady     SaleStatus = "READY_FOR_SALE"
	SaleSold      SaleStatus = "SOLD"
	SaleCancelled SaleStatus = "CANCELLED"
)

// Destination is the downstream company an animal is routed to after a
// completed disease test.
type Destination string

const (
	DestinationAsyaEt Destination = "ASYA_ET"
	DestinationGulvet Destination = "GULVET"
)

// Priority is the sale ordinal derived from category. Lower tiers must be
// sold out before higher tiers may sell.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	}
	return "UNKNOWN"
}

// Animal mirrors the animals table.
type Animal struct {
	ID               string
	TagNumber        string
	Sex              Sex
	BirthDate        *time.Time
	Role             string
	PregnancyStatus  PregnancyStatus
	InseminationDate *time.Time
	Category         Category
	TestResult       TestResult
	Destination      *Destination
	TestDate         *time.Time
	SaleStatus       SaleStatus
	SalePrice        *float64
	SaleDate         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Unsold reports whether the animal still blocks higher-priority sales.
// Cancelled animals have left the sale pipeline and do not block.
func (a Animal) Unsold() bool {
	return a.SaleStatus == SalePending || a.SaleStatus == SaleReady
}
