// Package estimate computes the expected food surplus of an event from its
// planned and actual attendance.
//
// Out-of-range inputs yield no result rather than an error: the estimator is
// a hint, and an empty hint is the chosen way to say "nothing to show".
package estimate

import (
	"fmt"
	"math"

	"github.com/Makepad-fr/wegive/internal/model"
)

type Result struct {
	Planned    int
	Actual     int
	Surplus    int
	Percentage float64
}

// Estimate is valid only when planned > 0, actual >= 0 and planned >= actual.
func Estimate(planned, actual int) (Result, bool) {
	if planned <= 0 || actual < 0 || planned < actual {
		return Result{}, false
	}
	surplus := planned - actual
	return Result{
		Planned:    planned,
		Actual:     actual,
		Surplus:    surplus,
		Percentage: float64(surplus) / float64(planned) * 100,
	}, true
}

// EstimateText parses both fields like the donation form does.
// Fields without a leading integer produce no result.
func EstimateText(planned, actual string) (Result, bool) {
	p, ok := model.ParseIntStrict(planned)
	if !ok {
		return Result{}, false
	}
	a, ok := model.ParseIntStrict(actual)
	if !ok {
		return Result{}, false
	}
	return Estimate(p, a)
}

// PercentageLabel rounds half away from zero to one decimal place.
func (r Result) PercentageLabel() string {
	return fmt.Sprintf("%.1f", math.Round(r.Percentage*10)/10)
}

func (r Result) String() string {
	return fmt.Sprintf("Estimated Surplus: %d pax (%s%%). Consider listing this!", r.Surplus, r.PercentageLabel())
}
