package fundtrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusEntry_Decode(t *testing.T) {
	testCases := []struct {
		name  string
		value float64
		want  Order
	}{
		{name: "zero row", value: 0, want: nil},
		{name: "purchase amount", value: 1000, want: BuyOrder{Amount: CNY(1000)}},
		{name: "purchase with one decimal", value: 250.5, want: BuyOrder{Amount: CNY(250.5)}},
		{
			name:  "purchase with dividend toggle marker",
			value: 1000.05,
			want:  BuyOrder{Amount: CNY(1000), ToggleDividend: true},
		},
		{
			name:  "toggle marker keeps the first decimal",
			value: 250.15,
			want:  BuyOrder{Amount: CNY(250.1), ToggleDividend: true},
		},
		{name: "absolute share redemption", value: -129.14, want: SellSharesOrder{Shares: Q(129.14)}},
		{name: "redeem all", value: -0.005, want: SellRatioOrder{Ratio: 1}},
		{name: "redeem 20 percent", value: -0.001, want: SellRatioOrder{Ratio: 0.2}},
		{name: "share redemption at the ratio boundary", value: -0.0051, want: SellSharesOrder{Shares: Q(0.0051)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StatusEntry{Date: MustParse("2020-01-01"), Value: tc.value}.Decode("CNY")
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			switch want := tc.want.(type) {
			case BuyOrder:
				buy, ok := got.(BuyOrder)
				require.True(t, ok, "got %T", got)
				assert.True(t, buy.Amount.Equal(want.Amount), "amount: got %s want %s", buy.Amount, want.Amount)
				assert.Equal(t, want.ToggleDividend, buy.ToggleDividend)
			case SellSharesOrder:
				sell, ok := got.(SellSharesOrder)
				require.True(t, ok, "got %T", got)
				assert.True(t, sell.Shares.Equal(want.Shares), "shares: got %s want %s", sell.Shares, want.Shares)
			case SellRatioOrder:
				sell, ok := got.(SellRatioOrder)
				require.True(t, ok, "got %T", got)
				assert.InDelta(t, want.Ratio, sell.Ratio, 1e-9)
			}
		})
	}
}

func TestStatusTable_Lookups(t *testing.T) {
	table := StatusTable{
		{Date: MustParse("2020-01-01"), Value: 0},
		{Date: MustParse("2020-01-05"), Value: 1000},
		{Date: MustParse("2020-02-01"), Value: -0.005},
	}

	entry, ok := table.On(MustParse("2020-01-05"))
	require.True(t, ok)
	assert.Equal(t, 1000.0, entry.Value)

	_, ok = table.On(MustParse("2020-01-06"))
	assert.False(t, ok)

	first, ok := table.FirstEffective()
	require.True(t, ok)
	assert.Equal(t, MustParse("2020-01-05"), first.Date, "zero rows are skipped")
}
