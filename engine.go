package fundtrade

import (
	"fmt"

	"go.uber.org/zap"
)

// LotSnapshot freezes the open-lot queue as it stood after one ledger row.
// Fee tiers on a later sell need the lot ages captured at that moment, and
// a report at a historical date must not see lots that did not exist yet.
type LotSnapshot struct {
	Date Date
	Lots Lots
}

// TradeEngine replays the sparse trade log of one instrument against its
// price and corporate-action history, reconstructing the complete cash-flow
// ledger and the parallel lot-queue history. The replay runs eagerly at
// construction; afterwards the engine is read-only, so distinct engines can
// be driven in parallel without locking.
type TradeEngine struct {
	inst    *Instrument
	status  StatusTable
	cutoff  Date
	logger  *zap.Logger
	ledger  CashflowLedger
	history []LotSnapshot
}

// EngineOption configures a TradeEngine at construction.
type EngineOption func(*TradeEngine)

// WithCutoff overrides the replay cutoff, by default yesterday. Replays of
// historical data should pin it to keep reconstruction deterministic.
func WithCutoff(on Date) EngineOption {
	return func(e *TradeEngine) { e.cutoff = on }
}

// WithLogger sets the logger data-quality anomalies are reported to.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *TradeEngine) { e.logger = logger }
}

// NewTradeEngine reconstructs the full ledger of the instrument from its
// status table. Reconstruction from identical inputs is idempotent: the
// resulting ledger and snapshot history are always identical.
func NewTradeEngine(inst *Instrument, status StatusTable, opts ...EngineOption) (*TradeEngine, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	e := &TradeEngine{
		inst:   inst,
		status: status,
		cutoff: Yesterday(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.replay(); err != nil {
		return nil, err
	}
	return e, nil
}

// replay runs the day-by-day reconstruction to the cutoff.
func (e *TradeEngine) replay() error {
	specials := make(map[Date]PriceRow)
	for _, on := range e.inst.Prices.SpecialDates() {
		row, _ := e.inst.Prices.Row(on)
		specials[on] = row
	}

	for {
		more, err := e.step(specials)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// step appends the next ledger row and its lot snapshot, or reports that no
// further date can be processed. A row is either fully applied or not
// appended at all.
func (e *TradeEngine) step(specials map[Date]PriceRow) (bool, error) {
	if len(e.ledger) == 0 {
		return e.first()
	}

	// Walk the cursor one calendar day at a time: corporate-action dates
	// are independent of the sparse trade log and must still be visited.
	cursor := e.ledger[len(e.ledger)-1].Date.Add(1)
	for {
		if cursor.After(e.cutoff) {
			return false, nil
		}
		if _, ok := specials[cursor]; ok {
			break
		}
		if entry, ok := e.status.On(cursor); ok && entry.Value != 0 {
			break
		}
		cursor = cursor.Add(1)
	}

	queue := e.history[len(e.history)-1].Lots
	heldBefore := e.ledger.HeldShares()
	mode := e.inst.DividendMode
	rowDate := cursor
	cash := M(0, e.inst.Currency)
	shares := Q(0)

	// Trade first, corporate action second: a same-day distribution or
	// split applies on top of the day's buy or sell.
	if entry, ok := e.status.On(cursor); ok && entry.Value != 0 {
		switch order := entry.Decode(e.inst.Currency).(type) {
		case BuyOrder:
			if order.ToggleDividend {
				mode = mode.Flip()
			}
			exec, dcash, dshares, err := e.inst.Purchase(order.Amount, cursor)
			if err != nil {
				return false, err
			}
			queue = queue.Buy(dshares, exec)
			rowDate, cash, shares = exec, cash.Add(dcash), shares.Add(dshares)

		case SellSharesOrder:
			requested := order.Shares
			var exec Date
			var dcash Money
			var sold Quantity
			var err error
			if e.inst.SellByValue {
				// the raw value was a cash amount, not a share count
				exec, dcash, sold, queue, err = e.inst.RedeemValue(M(requested.InexactFloat64(), e.inst.Currency), cursor, queue)
			} else {
				exec, dcash, sold, queue, err = e.inst.Redeem(requested, cursor, queue)
				if sold.LessThan(requested) {
					e.logger.Warn("redemption request exceeds held shares, capped",
						zap.String("code", e.inst.Code),
						zap.String("date", cursor.String()),
						zap.String("requested", requested.String()),
						zap.String("sold", sold.String()))
				}
			}
			if err != nil {
				return false, err
			}
			rowDate, cash, shares = exec, cash.Add(dcash), shares.Sub(sold)

		case SellRatioOrder:
			requested := heldBefore.Mul(Q(order.Ratio))
			exec, dcash, sold, remaining, err := e.inst.Redeem(requested, cursor, queue)
			if err != nil {
				return false, err
			}
			queue = remaining
			rowDate, cash, shares = exec, cash.Add(dcash), shares.Sub(sold)
		}
	}

	// A forward snap can only land behind the cursor when the price history
	// ends before the trade date; such an order can never execute and
	// rewriting it to the stale last row would replay this day forever.
	if rowDate.Before(cursor) {
		return false, &DataSourceError{Msg: fmt.Sprintf("instrument %s: trade on %s is past the end of the price history", e.inst.Code, cursor)}
	}

	if row, ok := specials[cursor]; ok {
		if perUnit, divOK := row.Dividend(); divOK {
			// Distributions accrue on the shares held before today's
			// trade row; a same-day purchase is not entitled yet.
			if mode == DividendCash {
				cash = cash.Add(perUnit.Mul(heldBefore).Round2())
				queue = queue.Clone()
			} else {
				dshares := heldBefore.Mul(perUnit.DivPrice(row.NAV)).Round(RoundHalfUp)
				queue = queue.Buy(dshares, cursor)
				shares = shares.Add(dshares)
			}
		} else if factor, splitOK := row.SplitFactor(); splitOK {
			// The split scales the post-trade queue, ages untouched;
			// per-lot rounding keeps queue and ledger in agreement.
			scaled := queue.Scale(factor).Round(RoundHalfUp)
			shares = shares.Add(scaled.TotalShares().Sub(queue.TotalShares()))
			queue = scaled
		}
	}

	e.ledger = append(e.ledger, CashflowEntry{Date: rowDate, Cash: cash.Round2(), Shares: shares})
	e.history = append(e.history, LotSnapshot{Date: rowDate, Lots: queue})
	return true, nil
}

// first seeds the ledger from the earliest effective status entry.
func (e *TradeEngine) first() (bool, error) {
	entry, ok := e.status.FirstEffective()
	if !ok || entry.Date.After(e.cutoff) {
		return false, nil
	}

	order, isBuy := entry.Decode(e.inst.Currency).(BuyOrder)
	if !isBuy {
		return false, &TradeBehaviorError{Msg: fmt.Sprintf("instrument %s: cannot sell on %s before ever buying", e.inst.Code, entry.Date)}
	}

	exec, cash, shares, err := e.inst.Purchase(order.Amount, entry.Date)
	if err != nil {
		return false, err
	}
	if exec.Before(entry.Date) {
		return false, &DataSourceError{Msg: fmt.Sprintf("instrument %s: trade on %s is past the end of the price history", e.inst.Code, entry.Date)}
	}
	e.ledger = append(e.ledger, CashflowEntry{Date: exec, Cash: cash.Round2(), Shares: shares})
	e.history = append(e.history, LotSnapshot{Date: exec, Lots: Lots{}.Buy(shares, exec)})
	return true, nil
}

// Instrument returns the replayed instrument's configuration.
func (e *TradeEngine) Instrument() *Instrument { return e.inst }

// Cutoff returns the last date the replay was allowed to process.
func (e *TradeEngine) Cutoff() Date { return e.cutoff }

// Ledger returns the full reconstructed cash-flow history.
func (e *TradeEngine) Ledger() CashflowLedger {
	out := make(CashflowLedger, len(e.ledger))
	copy(out, e.ledger)
	return out
}

// LotHistory returns the full lot-snapshot history, one per ledger row.
func (e *TradeEngine) LotHistory() []LotSnapshot {
	out := make([]LotSnapshot, len(e.history))
	copy(out, e.history)
	return out
}

// LotsAsOf returns the open-lot queue as it stood on the given date.
func (e *TradeEngine) LotsAsOf(on Date) Lots {
	var queue Lots
	for _, snap := range e.history {
		if snap.Date.After(on) {
			break
		}
		queue = snap.Lots
	}
	return queue.Clone()
}

// HeldShares returns the share position on the given date.
func (e *TradeEngine) HeldShares(on Date) Quantity {
	return e.ledger.Through(on).HeldShares().Round(RoundHalfUp)
}

// NAV returns the last settled net value on or before the given date.
func (e *TradeEngine) NAV(on Date) (Money, error) {
	row, err := e.inst.Prices.NAVAsOf(on)
	if err != nil {
		return Money{}, err
	}
	return row.NAV, nil
}

// CurrentValue returns the market value of the position on the given date.
func (e *TradeEngine) CurrentValue(on Date) (Money, error) {
	nav, err := e.NAV(on)
	if err != nil {
		return Money{}, err
	}
	return nav.Mul(e.HeldShares(on)).Round2(), nil
}

// XIRRRate returns the annualized money-weighted return of the position up
// to the given date, as if every open lot were redeemed at that date's net
// value (fees included). The real ledger is not touched. A position with no
// history yet returns 0.
func (e *TradeEngine) XIRRRate(on Date, guess float64) (float64, error) {
	part := e.ledger.Through(on)
	if len(part) == 0 {
		return 0, nil
	}

	flows := part.Cashflows()
	proceeds := 0.0
	if held := part.HeldShares(); held.IsPositive() {
		_, cash, _, _, err := e.inst.Redeem(held, on, e.LotsAsOf(on))
		if err != nil {
			return 0, err
		}
		proceeds = cash.InexactFloat64()
	}
	flows = append(flows, Cashflow{Date: on, Amount: proceeds})
	return XIRR(flows, guess)
}
