package fundtrade

import (
	"fmt"
	"math"
)

// PriceRow is one trading day of an instrument: the settled net asset value
// per unit and the corporate-action comment for that day.
//
// The comment encodes the action: 0 is none, a positive value is a cash
// dividend per held unit, a negative value is a split with conversion
// factor -comment (new shares per old share).
type PriceRow struct {
	Date    Date
	NAV     Money
	Comment float64
}

// Dividend returns the per-unit cash dividend distributed on this day.
func (r PriceRow) Dividend() (perUnit Money, ok bool) {
	if r.Comment > 0 {
		return M(r.Comment, r.NAV.Currency()), true
	}
	return Money{}, false
}

// SplitFactor returns the conversion factor of the split carried out on
// this day (new shares per old share).
func (r PriceRow) SplitFactor() (factor Quantity, ok bool) {
	if r.Comment < 0 {
		return Q(-r.Comment), true
	}
	return Quantity{}, false
}

// PriceSeries is the ascending-date NAV history of one instrument, one row
// per valid trading day. Non-trading days are pre-filtered by the provider.
type PriceSeries struct {
	rows []PriceRow
}

// NewPriceSeries validates and wraps provider rows. Rows must be strictly
// ascending by date with positive NAVs; a comment that is not a finite
// number has no recognized corporate-action meaning and is fatal.
func NewPriceSeries(rows []PriceRow) (PriceSeries, error) {
	for i, row := range rows {
		if !row.NAV.IsPositive() {
			return PriceSeries{}, &DataSourceError{Msg: fmt.Sprintf("price row %s: non-positive net value %s", row.Date, row.NAV)}
		}
		if math.IsNaN(row.Comment) || math.IsInf(row.Comment, 0) {
			return PriceSeries{}, &ParserFailure{Msg: fmt.Sprintf("price row %s: comment not recognized", row.Date)}
		}
		if i > 0 && !rows[i-1].Date.Before(row.Date) {
			return PriceSeries{}, &DataSourceError{Msg: fmt.Sprintf("price rows not in ascending date order at %s", row.Date)}
		}
	}
	out := make([]PriceRow, len(rows))
	copy(out, rows)
	return PriceSeries{rows: out}, nil
}

// NewCashPriceSeries synthesizes the price history of a cash-equivalent
// compounding at a flat daily rate from 1.0 on the start date. It behaves
// like a money-market fund with no corporate actions.
func NewCashPriceSeries(dailyRate float64, from, to Date, currency string) (PriceSeries, error) {
	if to.Before(from) {
		return PriceSeries{}, &DataSourceError{Msg: fmt.Sprintf("cash series range %s..%s is empty", from, to)}
	}
	var rows []PriceRow
	for d, i := from, 0; !d.After(to); d, i = d.Add(1), i+1 {
		rows = append(rows, PriceRow{Date: d, NAV: M(math.Pow(1+dailyRate, float64(i)), currency)})
	}
	return NewPriceSeries(rows)
}

// Len returns the number of trading days in the series.
func (p PriceSeries) Len() int { return len(p.rows) }

// First returns the earliest row.
func (p PriceSeries) First() (PriceRow, bool) {
	if len(p.rows) == 0 {
		return PriceRow{}, false
	}
	return p.rows[0], true
}

// Last returns the latest row.
func (p PriceSeries) Last() (PriceRow, bool) {
	if len(p.rows) == 0 {
		return PriceRow{}, false
	}
	return p.rows[len(p.rows)-1], true
}

// Row returns the row of an exact trading day.
func (p PriceSeries) Row(on Date) (PriceRow, bool) {
	for _, row := range p.rows {
		if row.Date == on {
			return row, true
		}
		if row.Date.After(on) {
			break
		}
	}
	return PriceRow{}, false
}

// ExecutionRow resolves the row a trade requested on the given date actually
// executes on: the next trading day on or after it. Off-exchange dates snap
// forward; a date beyond the series end falls back to the last settled day.
func (p PriceSeries) ExecutionRow(on Date) (PriceRow, error) {
	for _, row := range p.rows {
		if !row.Date.Before(on) {
			return row, nil
		}
	}
	if last, ok := p.Last(); ok {
		return last, nil
	}
	return PriceRow{}, &DataSourceError{Msg: "price series is empty"}
}

// NAVAsOf returns the last row on or before the given date, the net value a
// report on that date must use.
func (p PriceSeries) NAVAsOf(on Date) (PriceRow, error) {
	for i := len(p.rows) - 1; i >= 0; i-- {
		if !p.rows[i].Date.After(on) {
			return p.rows[i], nil
		}
	}
	return PriceRow{}, &DataSourceError{Msg: fmt.Sprintf("no price on or before %s", on)}
}

// SpecialDates returns the dates carrying a corporate action, ascending.
func (p PriceSeries) SpecialDates() []Date {
	var dates []Date
	for _, row := range p.rows {
		if row.Comment != 0 {
			dates = append(dates, row.Date)
		}
	}
	return dates
}
