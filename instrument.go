package fundtrade

import "fmt"

// DividendMode selects what a cash distribution does to the position.
type DividendMode int

const (
	// DividendCash takes distributions as cash; lot ages keep running.
	DividendCash DividendMode = iota
	// DividendReinvest converts distributions into new shares; the new lot
	// starts a fresh aging clock on the distribution date.
	DividendReinvest
)

// Flip returns the opposite mode, for the per-event override.
func (m DividendMode) Flip() DividendMode {
	if m == DividendCash {
		return DividendReinvest
	}
	return DividendCash
}

// Instrument is the full per-instrument configuration of a replay: the
// price history plus every knob that used to be an ambient process-wide
// default. One Instrument is read-only shared input; it never changes
// during a replay.
type Instrument struct {
	Code     string
	Name     string
	Currency string

	// PurchaseFeeRate is the subscription fee netted out of every buy.
	PurchaseFeeRate Percent
	// RedemptionFees is the holding-period fee table applied to sells.
	// nil means redemption is free, the money-market case.
	RedemptionFees *FeeSchedule
	// Rounding settles fractional purchase shares. A few known funds
	// truncate instead of rounding half up.
	Rounding RoundPolicy
	// DividendMode is the default treatment of cash distributions; a
	// status entry can flip it for a single event.
	DividendMode DividendMode
	// SellByValue marks instruments whose sell rows are denominated in
	// cash instead of shares, as money-market funds record them.
	SellByValue bool

	Prices PriceSeries
}

// Validate rejects configurations that contradict the instrument's type.
func (inst *Instrument) Validate() error {
	if inst.Code == "" {
		return &DataSourceError{Msg: "instrument has no code"}
	}
	if inst.Prices.Len() == 0 {
		return &DataSourceError{Msg: fmt.Sprintf("instrument %s has no price history", inst.Code)}
	}
	if inst.PurchaseFeeRate < 0 {
		return &FundTypeError{Msg: fmt.Sprintf("instrument %s: negative purchase fee %s", inst.Code, inst.PurchaseFeeRate)}
	}
	if inst.SellByValue && inst.RedemptionFees != nil {
		return &FundTypeError{Msg: fmt.Sprintf("instrument %s: cash-denominated sells exclude a redemption fee table", inst.Code)}
	}
	return nil
}

// Purchase resolves a buy requested on a date: snaps to the execution day,
// nets the purchase fee out of the gross amount and converts the rest to
// shares under the instrument's rounding policy. The returned cash is the
// (negative) ledger amount, the shares the (positive) lot size.
func (inst *Instrument) Purchase(amount Money, on Date) (exec Date, cash Money, shares Quantity, err error) {
	row, err := inst.Prices.ExecutionRow(on)
	if err != nil {
		return Date{}, Money{}, Quantity{}, err
	}
	net := amount.Div(Q(1 + inst.PurchaseFeeRate.Fraction())).Round2()
	shares = net.DivPrice(row.NAV).Round(inst.Rounding)
	return row.Date, net.Neg(), shares, nil
}

// Redeem resolves a sell of a share count against the FIFO queue: snaps to
// the execution day, caps the request at what is held, consumes lots oldest
// first and prices each consumed slice net of its holding-period fee. The
// returned cash is the (positive) ledger amount, sold the share count
// actually redeemed.
func (inst *Instrument) Redeem(shares Quantity, on Date, queue Lots) (exec Date, cash Money, sold Quantity, remaining Lots, err error) {
	row, err := inst.Prices.ExecutionRow(on)
	if err != nil {
		return Date{}, Money{}, Quantity{}, nil, err
	}

	// Settle the request to 2 decimals before consuming, so the queue loses
	// exactly the share count the ledger will record. A ratio-derived request
	// can carry more decimals than shares are ever issued in.
	available := queue.TotalSharesAsOf(row.Date)
	request := shares.Min(available).Round(RoundHalfUp)
	consumed, remaining := queue.Sell(request)

	sold = Q(0)
	for _, slice := range consumed {
		sold = sold.Add(slice.Shares)
	}
	sold = sold.Round(RoundHalfUp)

	cash = M(0, inst.Currency)
	if inst.RedemptionFees == nil {
		cash = row.NAV.Mul(sold).Round2()
	} else {
		for _, slice := range consumed {
			held := row.Date.Sub(slice.Open)
			rate := inst.RedemptionFees.Rate(held)
			cash = cash.Add(row.NAV.Mul(slice.Shares).Mul(Q(1 - rate.Fraction())).Round2())
		}
	}
	return row.Date, cash, sold, remaining, nil
}

// RedeemValue is Redeem for a sell denominated in cash: the amount is
// converted to shares at the execution day's net value first.
func (inst *Instrument) RedeemValue(amount Money, on Date, queue Lots) (exec Date, cash Money, sold Quantity, remaining Lots, err error) {
	row, err := inst.Prices.ExecutionRow(on)
	if err != nil {
		return Date{}, Money{}, Quantity{}, nil, err
	}
	shares := amount.DivPrice(row.NAV).Round(RoundHalfUp)
	return inst.Redeem(shares, on, queue)
}
