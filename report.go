package fundtrade

// Report is the point-in-time view of a position, derived entirely from the
// ledger prefix up to its date.
type Report struct {
	Date Date
	NAV  Money

	HeldShares   Quantity
	CurrentValue Money
	// CostBasis is the net invested cash per currently held share.
	CostBasis Money
	// HoldingCost is the net cash still tied up: invested minus withdrawn.
	HoldingCost    Money
	TotalInvested  Money
	TotalWithdrawn Money
	// PeakInvestment is the most cash the position ever tied up at once.
	PeakInvestment Money
	// TurnoverRate is the annualized traded volume over twice the peak.
	TurnoverRate float64
	// UnrealizedReturn is the current value plus everything withdrawn,
	// minus everything invested.
	UnrealizedReturn Money
	// ReturnRate is the unrealized return over the peak investment.
	ReturnRate Percent
}

// Report computes the position view on the given date. A date before the
// first ledger row yields a zero position, not an error; a date before the
// price history starts has no net value to report against and fails.
func (e *TradeEngine) Report(on Date) (*Report, error) {
	navRow, err := e.inst.Prices.NAVAsOf(on)
	if err != nil {
		return nil, err
	}

	r := &Report{Date: on, NAV: navRow.NAV}
	part := e.ledger.Through(on)
	if len(part) == 0 {
		return r, nil
	}

	r.HeldShares = part.HeldShares().Round(RoundHalfUp)
	r.CurrentValue = navRow.NAV.Mul(r.HeldShares).Round2()
	r.TotalInvested = part.TotalInvested()
	r.TotalWithdrawn = part.TotalWithdrawn()
	r.HoldingCost = r.TotalInvested.Sub(r.TotalWithdrawn)
	r.PeakInvestment = Bottleneck(part)
	r.TurnoverRate = TurnoverRate(part, on)
	r.UnrealizedReturn = r.CurrentValue.Add(r.TotalWithdrawn).Sub(r.TotalInvested).Round2()

	if r.HeldShares.IsPositive() {
		r.CostBasis = r.HoldingCost.Div(r.HeldShares).RoundTo(4)
	}
	if r.PeakInvestment.IsPositive() {
		r.ReturnRate = Percent(r.UnrealizedReturn.InexactFloat64() / r.PeakInvestment.InexactFloat64() * 100)
	}
	return r, nil
}
