package fundtrade

import (
	"fmt"
	"math"
	"sort"
)

// Cashflow is one dated cash movement: negative amounts are money leaving
// the investor, positive amounts are money coming back.
type Cashflow struct {
	Date   Date
	Amount float64
}

// XNPV discounts the cash flows to the earliest flow's date at the given
// annual rate, counting time in fractions of a 365-day year.
func XNPV(rate float64, cashflows []Cashflow) float64 {
	chron := make([]Cashflow, len(cashflows))
	copy(chron, cashflows)
	sort.Slice(chron, func(i, j int) bool { return chron[i].Date.Before(chron[j].Date) })

	t0 := chron[0].Date
	var npv float64
	for _, cf := range chron {
		years := float64(cf.Date.Sub(t0)) / 365.0
		npv += cf.Amount / math.Pow(1+rate, years)
	}
	return npv
}

// xnpvDerivative is dXNPV/drate, closed form.
func xnpvDerivative(rate float64, cashflows []Cashflow) float64 {
	chron := make([]Cashflow, len(cashflows))
	copy(chron, cashflows)
	sort.Slice(chron, func(i, j int) bool { return chron[i].Date.Before(chron[j].Date) })

	t0 := chron[0].Date
	var d float64
	for _, cf := range chron {
		years := float64(cf.Date.Sub(t0)) / 365.0
		d -= years * cf.Amount / math.Pow(1+rate, years+1)
	}
	return d
}

// XIRR root-finds the annualized money-weighted rate of return of the dated
// cash flows with Newton's method, starting from guess. Failure to converge
// is surfaced as ErrNoConvergence, never silently defaulted: a rate that
// does not exist must not look like a rate of 0.
func XIRR(cashflows []Cashflow, guess float64) (float64, error) {
	if len(cashflows) == 0 {
		return 0, fmt.Errorf("xirr: no cash flows")
	}

	const (
		tolerance = 1e-6
		maxIter   = 100
	)

	rate := guess
	for i := 0; i < maxIter; i++ {
		if rate <= -1 {
			// the discount base went non-positive, pull back inside the domain
			rate = -1 + tolerance
		}
		f := XNPV(rate, cashflows)
		if math.Abs(f) < tolerance {
			return rate, nil
		}
		df := xnpvDerivative(rate, cashflows)
		if df == 0 || math.IsNaN(df) || math.IsInf(df, 0) {
			return 0, fmt.Errorf("xirr: vanishing derivative at rate %g: %w", rate, ErrNoConvergence)
		}
		step := f / df
		if math.Abs(step) < tolerance {
			return rate - step, nil
		}
		rate -= step
	}
	return 0, fmt.Errorf("xirr: no root after %d iterations from guess %g: %w", maxIter, guess, ErrNoConvergence)
}
