package fundtrade

// CashflowEntry is one row of the reconstructed cash-flow ledger: the money
// and share movement that settled on one day. Negative cash left the
// investor (a purchase), positive cash came back (a redemption or a cash
// dividend).
type CashflowEntry struct {
	Date   Date
	Cash   Money
	Shares Quantity
}

// CashflowLedger is the complete reconstructed history, in date order,
// append-only once built.
type CashflowLedger []CashflowEntry

// Through returns the prefix of rows settled on or before the date.
func (c CashflowLedger) Through(on Date) CashflowLedger {
	for i, entry := range c {
		if entry.Date.After(on) {
			return c[:i]
		}
	}
	return c
}

// HeldShares is the running share position after all rows of the ledger.
func (c CashflowLedger) HeldShares() Quantity {
	total := Q(0)
	for _, entry := range c {
		total = total.Add(entry.Shares)
	}
	return total
}

// TotalInvested is all cash put in, as a positive amount.
func (c CashflowLedger) TotalInvested() Money {
	total := Money{}
	for _, entry := range c {
		if entry.Cash.IsNegative() {
			total = total.Sub(entry.Cash)
		}
	}
	return total.Round2()
}

// TotalWithdrawn is all cash taken back out, as a positive amount.
func (c CashflowLedger) TotalWithdrawn() Money {
	total := Money{}
	for _, entry := range c {
		if entry.Cash.IsPositive() {
			total = total.Add(entry.Cash)
		}
	}
	return total.Round2()
}

// Cashflows converts the ledger rows to solver input.
func (c CashflowLedger) Cashflows() []Cashflow {
	flows := make([]Cashflow, 0, len(c))
	for _, entry := range c {
		flows = append(flows, Cashflow{Date: entry.Date, Amount: entry.Cash.InexactFloat64()})
	}
	return flows
}

// Bottleneck is the peak cumulative net investment over the ledger's
// history, the most money the position ever tied up at once.
func Bottleneck(ledger CashflowLedger) Money {
	if len(ledger) == 0 {
		return Money{}
	}
	sum := Money{}
	peak := Money{}
	for i, entry := range ledger {
		sum = sum.Add(entry.Cash)
		if i == 0 || sum.Neg().GreaterThan(peak) {
			peak = sum.Neg()
		}
	}
	return peak.Round2()
}

// TurnoverRate is the annualized turnover of the position up to end:
// total traded cash over twice the peak investment, scaled to a 365-day
// year. An empty ledger, a zero peak or a same-day history all yield 0.
func TurnoverRate(ledger CashflowLedger, end Date) float64 {
	if len(ledger) == 0 {
		return 0
	}
	peak := Bottleneck(ledger)
	if !peak.IsPositive() {
		return 0
	}
	traded := Money{}
	for _, entry := range ledger {
		traded = traded.Add(entry.Cash.Abs())
	}
	days := end.Sub(ledger[0].Date)
	if days <= 0 {
		return 0
	}
	turnover := traded.InexactFloat64() / peak.InexactFloat64() / 2.0
	return turnover * 365 / float64(days)
}
