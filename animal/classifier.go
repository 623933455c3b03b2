package animal

import (
	"errors"
	"strings"
	"time"
)

// ErrClassificationIndeterminate signals that the biological attributes on
// record are not enough to derive a category. Callers must not guess a
// default; the record needs a birth date or an explicit role first.
var ErrClassificationIndeterminate = errors.New("animal: classification indeterminate: birth date required")

const (
	calfMaxAgeMonths   = 12
	heiferMaxAgeMonths = 24
)

// Classify derives the category of an animal from its biological attributes.
// Deterministic for identical inputs and identical now.
//
// Rules, in order: a mature calved female (role "COW") is a COW regardless
// of other fields; a pregnant adult female is a PREGNANT_HEIFER; an
// inseminated but not yet confirmed-pregnant animal is an
// INSEMINATED_HEIFER; otherwise age decides between CALF and HEIFER.
func Classify(a Animal, now time.Time) (Category, error) {
	role := strings.ToUpper(strings.TrimSpace(a.Role))

	if role == "COW" {
		return CategoryCow, nil
	}
	if a.PregnancyStatus == PregnancyPregnant && a.Sex == SexFemale {
		return CategoryPregnantHeifer, nil
	}
	if a.InseminationDate != nil && a.PregnancyStatus != PregnancyPregnant {
		return CategoryInseminatedHeifer, nil
	}

	if a.BirthDate == nil {
		return "", ErrClassificationIndeterminate
	}

	months := ageInMonths(*a.BirthDate, now)
	if months < calfMaxAgeMonths {
		return CategoryCalf, nil
	}
	if months < heiferMaxAgeMonths && a.Sex == SexFemale {
		return CategoryHeifer, nil
	}

	// Past heifer age, or a male past calf age: mature stock.
	return CategoryCow, nil
}

// ageInMonths counts whole calendar months between birth and now.
func ageInMonths(birth, now time.Time) int {
	if now.Before(birth) {
		return 0
	}
	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())
	total := years*12 + months
	if now.Day() < birth.Day() {
		total--
	}
	if total < 0 {
		return 0
	}
	return total
}
