package fundtrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLots_Buy(t *testing.T) {
	queue := Lots{}.Buy(Q(100), MustParse("2020-01-01"))
	queue = queue.Buy(Q(50), MustParse("2020-02-01"))

	require.Len(t, queue, 2)
	assert.Equal(t, MustParse("2020-01-01"), queue[0].Open, "insertion order is purchase order")
	assert.True(t, queue.TotalShares().Equal(Q(150)))
}

func TestLots_SellFIFO(t *testing.T) {
	queue := Lots{}.
		Buy(Q(100), MustParse("2020-01-01")).
		Buy(Q(50), MustParse("2020-02-01")).
		Buy(Q(30), MustParse("2020-03-01"))

	testCases := []struct {
		name          string
		sell          float64
		wantConsumed  []LotSlice
		wantRemaining int
		wantLeft      float64
	}{
		{
			name:          "partial oldest lot",
			sell:          40,
			wantConsumed:  []LotSlice{{Open: MustParse("2020-01-01"), Shares: Q(40)}},
			wantRemaining: 3,
			wantLeft:      140,
		},
		{
			name: "spans two lots",
			sell: 120,
			wantConsumed: []LotSlice{
				{Open: MustParse("2020-01-01"), Shares: Q(100)},
				{Open: MustParse("2020-02-01"), Shares: Q(20)},
			},
			wantRemaining: 2,
			wantLeft:      60,
		},
		{
			name: "oversell is capped at the total available",
			sell: 500,
			wantConsumed: []LotSlice{
				{Open: MustParse("2020-01-01"), Shares: Q(100)},
				{Open: MustParse("2020-02-01"), Shares: Q(50)},
				{Open: MustParse("2020-03-01"), Shares: Q(30)},
			},
			wantRemaining: 0,
			wantLeft:      0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			consumed, remaining := queue.Sell(Q(tc.sell))

			require.Len(t, consumed, len(tc.wantConsumed))
			for i, want := range tc.wantConsumed {
				assert.Equal(t, want.Open, consumed[i].Open)
				assert.True(t, consumed[i].Shares.Equal(want.Shares),
					"slice %d shares: got %s want %s", i, consumed[i].Shares, want.Shares)
			}
			assert.Len(t, remaining, tc.wantRemaining, "fully consumed lots are pruned")
			assert.True(t, remaining.TotalShares().Equal(Q(tc.wantLeft)))

			// the receiver is untouched
			assert.True(t, queue.TotalShares().Equal(Q(180)))
		})
	}
}

func TestLots_Scale(t *testing.T) {
	queue := Lots{}.
		Buy(Q(100), MustParse("2020-01-01")).
		Buy(Q(50), MustParse("2020-02-01"))

	scaled := queue.Scale(Q(1.1))

	require.Len(t, scaled, 2)
	assert.Equal(t, MustParse("2020-01-01"), scaled[0].Open, "lot ages survive a split")
	assert.Equal(t, MustParse("2020-02-01"), scaled[1].Open)
	assert.True(t, scaled[0].Shares.Equal(Q(110)))
	assert.True(t, scaled[1].Shares.Equal(Q(55)))
	assert.True(t, queue.TotalShares().Equal(Q(150)), "receiver untouched")
}

func TestLots_CloneSharesNothing(t *testing.T) {
	queue := Lots{}.Buy(Q(100), MustParse("2020-01-01"))
	clone := queue.Clone()

	clone[0].Shares = Q(1)
	assert.True(t, queue[0].Shares.Equal(Q(100)))
}

func TestLots_TotalSharesAsOf(t *testing.T) {
	queue := Lots{}.
		Buy(Q(100), MustParse("2020-01-01")).
		Buy(Q(50), MustParse("2020-02-01"))

	assert.True(t, queue.TotalSharesAsOf(MustParse("2020-01-15")).Equal(Q(100)))
	assert.True(t, queue.TotalSharesAsOf(MustParse("2020-02-01")).Equal(Q(150)))
	assert.True(t, queue.TotalSharesAsOf(MustParse("2019-12-31")).IsZero())
}

func TestLots_Round(t *testing.T) {
	queue := Lots{}.Buy(Q(100), MustParse("2020-01-01")).Scale(Q(1.03335))

	rounded := queue.Round(RoundHalfUp)
	assert.True(t, rounded[0].Shares.Equal(Q(103.34)), "got %s", rounded[0].Shares)

	truncated := queue.Round(RoundDown)
	assert.True(t, truncated[0].Shares.Equal(Q(103.33)), "got %s", truncated[0].Shares)
}
