package fundtrade

// Lot is a discrete batch of shares acquired on one date. The open date must
// survive every later event except a sell, because redemption fee tiers are
// keyed on the age of the original purchase.
type Lot struct {
	Open   Date
	Shares Quantity
}

// LotSlice is the part of a lot actually consumed by a sell, carrying the
// lot's open date for the caller's fee computation.
type LotSlice struct {
	Open   Date
	Shares Quantity
}

// Lots is the FIFO queue of open purchase lots of one instrument, oldest
// first. Operations are pure: they return a fresh slice and never alias the
// receiver, so a queue stored in a snapshot history stays frozen.
type Lots []Lot

// Buy appends a new lot opened on the given date.
func (l Lots) Buy(shares Quantity, on Date) Lots {
	out := l.Clone()
	return append(out, Lot{Open: on, Shares: shares})
}

// Sell consumes shares oldest-lot-first. Each lot yields
// min(lot.Shares, remaining); fully consumed lots are pruned. The request is
// silently capped at the total available: the caller is expected not to
// oversell, the queue enforces it anyway. Returned slices record which lot
// (by open date) each consumed portion came from.
func (l Lots) Sell(shares Quantity) (consumed []LotSlice, remaining Lots) {
	toSell := shares
	for _, currentLot := range l {
		if !toSell.IsPositive() {
			remaining = append(remaining, currentLot)
			continue
		}
		if currentLot.Shares.GreaterThan(toSell) {
			// Partial sale from this lot
			consumed = append(consumed, LotSlice{Open: currentLot.Open, Shares: toSell})
			remaining = append(remaining, Lot{Open: currentLot.Open, Shares: currentLot.Shares.Sub(toSell)})
			toSell = Q(0)
		} else {
			// Full sale of this lot
			consumed = append(consumed, LotSlice{Open: currentLot.Open, Shares: currentLot.Shares})
			toSell = toSell.Sub(currentLot.Shares)
		}
	}
	return consumed, remaining
}

// Scale multiplies every lot's shares by the split factor, keeping the open
// dates untouched so lot ages survive the split.
func (l Lots) Scale(factor Quantity) Lots {
	out := make(Lots, 0, len(l))
	for _, currentLot := range l {
		out = append(out, Lot{Open: currentLot.Open, Shares: currentLot.Shares.Mul(factor)})
	}
	return out
}

// Round settles every lot's shares to 2 decimals with the given policy.
// A split can leave more decimals than shares are ever issued in; the
// overflow is settled per lot so that the queue total and the ledger's
// recorded share delta stay in exact agreement.
func (l Lots) Round(policy RoundPolicy) Lots {
	out := make(Lots, 0, len(l))
	for _, currentLot := range l {
		out = append(out, Lot{Open: currentLot.Open, Shares: currentLot.Shares.Round(policy)})
	}
	return out
}

// Clone returns an identical queue sharing no storage with the receiver.
// A cash dividend changes cash but not shares; the replay still records a
// snapshot for that day, and this is that snapshot.
func (l Lots) Clone() Lots {
	out := make(Lots, len(l))
	copy(out, l)
	return out
}

// TotalShares sums the shares of all open lots.
func (l Lots) TotalShares() Quantity {
	total := Q(0)
	for _, currentLot := range l {
		total = total.Add(currentLot.Shares)
	}
	return total
}

// TotalSharesAsOf sums the shares of lots opened on or before the date.
func (l Lots) TotalSharesAsOf(on Date) Quantity {
	total := Q(0)
	for _, currentLot := range l {
		if !currentLot.Open.After(on) {
			total = total.Add(currentLot.Shares)
		}
	}
	return total
}
