package fundtrade

import "testing"

// CNY is a helper for tests to create yuan money from const
func CNY(v float64) Money { return M(v, "CNY") }

// flatSeries builds a price series of consecutive calendar days at a fixed
// net value, optionally patched with per-date comments.
func flatSeries(t *testing.T, from string, days int, nav float64, comments map[string]float64) PriceSeries {
	t.Helper()
	start := MustParse(from)
	rows := make([]PriceRow, 0, days)
	for i := 0; i < days; i++ {
		d := start.Add(i)
		rows = append(rows, PriceRow{Date: d, NAV: CNY(nav), Comment: comments[d.String()]})
	}
	series, err := NewPriceSeries(rows)
	if err != nil {
		t.Fatalf("building price series: %v", err)
	}
	return series
}

// testFund builds a plain fund with no purchase fee and no redemption fee.
func testFund(t *testing.T, prices PriceSeries) *Instrument {
	t.Helper()
	return &Instrument{
		Code:     "000001",
		Name:     "test fund",
		Currency: "CNY",
		Prices:   prices,
	}
}
