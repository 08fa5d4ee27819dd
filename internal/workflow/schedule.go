package workflow

import (
	"math"
	"time"
)

// Administrative margin added to every duration estimate, in days.
const margeAdministrative = 2

// Urgent handling compresses a nominal duration by 30%.
const facteurUrgence = 0.7

// Maximum shift AdjustDate accepts, in either direction. The manual override
// is an escape hatch, not a second scheduling pass, so the window stays small.
const maxDecalageJours = 5

// TotalDuration returns the full estimated duration in days for an essai
// type under a priority: the nominal duration, compressed for urgente, plus
// the administrative margin.
func TotalDuration(t EssaiType, priorite Priorite) (int, error) {
	duree, err := NominalDuration(t)
	if err != nil {
		return 0, err
	}
	if priorite == PrioriteUrgente {
		duree = int(math.Ceil(float64(duree) * facteurUrgence))
	}
	return duree + margeAdministrative, nil
}

// ProposeDate computes the earliest completion estimate for an essai of type
// t started today: today plus the total duration. Capacity is checked
// separately; callers pick another date themselves when a day is saturated.
func ProposeDate(t EssaiType, priorite Priorite, today time.Time) (time.Time, error) {
	total, err := TotalDuration(t, priorite)
	if err != nil {
		return time.Time{}, err
	}
	return truncateDay(today).AddDate(0, 0, total), nil
}

// ComputeReturnDate estimates when results will be available for an essai
// sent on dateEnvoi, using the same duration formula as ProposeDate. Shown
// to front-office staff; urgente never yields a later date than normale.
func ComputeReturnDate(dateEnvoi time.Time, t EssaiType, priorite Priorite) (time.Time, error) {
	total, err := TotalDuration(t, priorite)
	if err != nil {
		return time.Time{}, err
	}
	return truncateDay(dateEnvoi).AddDate(0, 0, total), nil
}

// AdjustDate shifts a previously proposed date by deltaDays, forward or
// backward, without reconsulting capacity. Shifts beyond the window are
// validation errors.
func AdjustDate(base time.Time, deltaDays int) (time.Time, error) {
	if deltaDays < -maxDecalageJours || deltaDays > maxDecalageJours {
		return time.Time{}, Validationf("date shift limited to %d days either way", maxDecalageJours)
	}
	return truncateDay(base).AddDate(0, 0, deltaDays), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
