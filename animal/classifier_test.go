package animal

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func monthsAgo(n int) *time.Time {
	t := testNow.AddDate(0, -n, 0)
	return &t
}

func TestClassifyCowRoleWinsRegardlessOfOtherFields(t *testing.T) {
	cases := []Animal{
		{Role: "COW"},
		{Role: "cow", Sex: SexFemale, PregnancyStatus: PregnancyPregnant},
		{Role: " COW ", BirthDate: monthsAgo(6)},
		{Role: "COW", InseminationDate: monthsAgo(2)},
	}

	for _, a := range cases {
		got, err := Classify(a, testNow)
		if err != nil {
			t.Fatalf("Classify(%+v): unexpected error %v", a, err)
		}
		if got != CategoryCow {
			t.Errorf("Classify(%+v) = %s, want COW", a, got)
		}
	}
}

func TestClassifyPregnantAdultFemale(t *testing.T) {
	a := Animal{
		Role:            "HEIFER",
		Sex:             SexFemale,
		PregnancyStatus: PregnancyPregnant,
		BirthDate:       monthsAgo(20),
	}

	got, err := Classify(a, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CategoryPregnantHeifer {
		t.Errorf("got %s, want PREGNANT_HEIFER", got)
	}
}

func TestClassifyInseminatedNotConfirmedPregnant(t *testing.T) {
	a := Animal{
		Sex:              SexFemale,
		PregnancyStatus:  PregnancyUnknown,
		InseminationDate: monthsAgo(1),
		BirthDate:        monthsAgo(20),
	}

	got, err := Classify(a, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CategoryInseminatedHeifer {
		t.Errorf("got %s, want INSEMINATED_HEIFER", got)
	}
}

func TestClassifyByAge(t *testing.T) {
	cases := []struct {
		name string
		a    Animal
		want Category
	}{
		{"six month old is a calf", Animal{Sex: SexFemale, BirthDate: monthsAgo(6)}, CategoryCalf},
		{"eleven month old male is a calf", Animal{Sex: SexMale, BirthDate: monthsAgo(11)}, CategoryCalf},
		{"eighteen month old female is a heifer", Animal{Sex: SexFemale, BirthDate: monthsAgo(18)}, CategoryHeifer},
		{"thirty month old female is mature", Animal{Sex: SexFemale, BirthDate: monthsAgo(30)}, CategoryCow},
		{"eighteen month old male is mature stock", Animal{Sex: SexMale, BirthDate: monthsAgo(18)}, CategoryCow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.a, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassifyMissingBirthDateFails(t *testing.T) {
	a := Animal{Sex: SexFemale, PregnancyStatus: PregnancyNotPregnant}

	_, err := Classify(a, testNow)
	if !errors.Is(err, ErrClassificationIndeterminate) {
		t.Fatalf("got %v, want ErrClassificationIndeterminate", err)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	a := Animal{Sex: SexFemale, BirthDate: monthsAgo(18)}

	first, err := Classify(a, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Classify(a, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("classification not stable: %s then %s", first, second)
	}
}

func TestAgeInMonthsDayBoundary(t *testing.T) {
	birth := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	// Five days short of the twelfth month.
	if got := ageInMonths(birth, testNow); got != 11 {
		t.Errorf("ageInMonths = %d, want 11", got)
	}
}
