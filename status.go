package fundtrade

import "math"

// StatusEntry is one sparse row of the human-entered trade log: a calendar
// date and the raw recorded value. The value packs the whole instruction:
//
//   - v > 0            purchase amount in currency units
//   - v < -0.005       absolute share count to redeem (negated)
//   - -0.005 <= v < 0  ratio of current holdings to redeem, -0.005 being 100%
//   - a x.x5 second decimal on a purchase flips the instrument's dividend
//     mode for that one event
//
// Decode unpacks it once, at the boundary; the replay only ever sees orders.
type StatusEntry struct {
	Date  Date
	Value float64
}

// StatusTable is the sparse trade log of one instrument, in date order.
type StatusTable []StatusEntry

// On returns the entry recorded on the given date, if any.
func (s StatusTable) On(on Date) (StatusEntry, bool) {
	for _, entry := range s {
		if entry.Date == on {
			return entry, true
		}
		if entry.Date.After(on) {
			break
		}
	}
	return StatusEntry{}, false
}

// FirstEffective returns the earliest entry with a nonzero value.
func (s StatusTable) FirstEffective() (StatusEntry, bool) {
	for _, entry := range s {
		if entry.Value != 0 {
			return entry, true
		}
	}
	return StatusEntry{}, false
}

// Order is a decoded trade instruction.
type Order interface{ order() }

// BuyOrder is a purchase for a gross amount of cash. ToggleDividend flips
// the instrument's default dividend mode for this event only.
type BuyOrder struct {
	Amount         Money
	ToggleDividend bool
}

// SellSharesOrder redeems an absolute number of shares.
type SellSharesOrder struct {
	Shares Quantity
}

// SellRatioOrder redeems a ratio of the shares currently held, 1 being all
// of them.
type SellRatioOrder struct {
	Ratio float64
}

func (BuyOrder) order()        {}
func (SellSharesOrder) order() {}
func (SellRatioOrder) order()  {}

// Decode unpacks the entry's raw value into a tagged order, or nil for a
// zero row. The currency is the instrument's, for the purchase amount.
func (s StatusEntry) Decode(currency string) Order {
	v := s.Value
	switch {
	case v > 0:
		// the dividend-mode toggle rides on the second decimal
		frac := math.Round((10*v-math.Trunc(10*v))*10) / 10
		if frac == 0.5 {
			// drop the marker digit to recover the real amount
			return BuyOrder{Amount: M(math.Trunc(v*10)/10, currency), ToggleDividend: true}
		}
		return BuyOrder{Amount: M(v, currency)}
	case v < -0.005:
		return SellSharesOrder{Shares: Q(-v)}
	case v < 0:
		return SellRatioOrder{Ratio: -v / 0.005}
	default:
		return nil
	}
}
