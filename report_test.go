package fundtrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeEngine_Report(t *testing.T) {
	series, err := NewPriceSeries([]PriceRow{
		{Date: MustParse("2020-01-01"), NAV: CNY(1.0)},
		{Date: MustParse("2020-01-10"), NAV: CNY(1.1)},
	})
	require.NoError(t, err)
	inst := testFund(t, series)

	engine, err := NewTradeEngine(inst, StatusTable{
		{Date: MustParse("2020-01-01"), Value: 1000},
	}, WithCutoff(MustParse("2020-01-10")))
	require.NoError(t, err)

	report, err := engine.Report(MustParse("2020-01-10"))
	require.NoError(t, err)

	assert.True(t, report.NAV.Equal(CNY(1.1)))
	assert.True(t, report.HeldShares.Equal(Q(1000)))
	assert.True(t, report.CurrentValue.Equal(CNY(1100.00)))
	assert.True(t, report.CostBasis.Equal(CNY(1.0000)), "cost basis %s", report.CostBasis)
	assert.True(t, report.HoldingCost.Equal(CNY(1000.00)))
	assert.True(t, report.TotalInvested.Equal(CNY(1000.00)))
	assert.True(t, report.TotalWithdrawn.IsZero())
	assert.True(t, report.PeakInvestment.Equal(CNY(1000.00)))
	assert.InDelta(t, 0.5*365.0/9.0, report.TurnoverRate, 1e-12)
	assert.True(t, report.UnrealizedReturn.Equal(CNY(100.00)))
	assert.True(t, report.ReturnRate.Equal(10))
}

func TestTradeEngine_ReportAfterPartialSell(t *testing.T) {
	inst := testFund(t, flatSeries(t, "2020-01-01", 10, 1.0, nil))
	engine, err := NewTradeEngine(inst, StatusTable{
		{Date: MustParse("2020-01-01"), Value: 1000},
		{Date: MustParse("2020-01-05"), Value: -400},
	}, WithCutoff(MustParse("2020-01-10")))
	require.NoError(t, err)

	report, err := engine.Report(MustParse("2020-01-10"))
	require.NoError(t, err)

	assert.True(t, report.HeldShares.Equal(Q(600)))
	assert.True(t, report.TotalWithdrawn.Equal(CNY(400.00)))
	assert.True(t, report.HoldingCost.Equal(CNY(600.00)))
	assert.True(t, report.CostBasis.Equal(CNY(1.0000)))
	assert.True(t, report.UnrealizedReturn.IsZero(), "flat value, no gain yet")
}

func TestTradeEngine_ReportBeforePosition(t *testing.T) {
	series, err := NewPriceSeries([]PriceRow{
		{Date: MustParse("2020-01-01"), NAV: CNY(1.0)},
		{Date: MustParse("2020-01-10"), NAV: CNY(1.1)},
	})
	require.NoError(t, err)
	inst := testFund(t, series)

	engine, err := NewTradeEngine(inst, StatusTable{
		{Date: MustParse("2020-01-05"), Value: 1000}, // snaps to the 10th
	}, WithCutoff(MustParse("2020-01-10")))
	require.NoError(t, err)

	report, err := engine.Report(MustParse("2020-01-05"))
	require.NoError(t, err)
	assert.True(t, report.HeldShares.IsZero(), "no position yet, not an error")
	assert.True(t, report.CurrentValue.IsZero())

	_, err = engine.Report(MustParse("2019-12-31"))
	assert.Error(t, err, "no net value exists before the series starts")
}
